package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"magearena/internal/arena"
	"magearena/internal/raycast"
	"magearena/internal/render"
	"magearena/internal/threading/monitoring"
)

var flagFrames int

var benchCmd = &cobra.Command{
	Use:   "bench",
	Short: "Time ray casting and projection without a window",
	Long: `Turns the player in place for --frames frames, casting and projecting a
full fan each frame, then prints the performance monitor's averages.`,
	RunE: runBench,
}

func init() {
	benchCmd.Flags().IntVar(&flagFrames, "frames", 600, "Number of frames to simulate")
}

func runBench(cmd *cobra.Command, args []string) error {
	if flagFrames <= 0 {
		return fmt.Errorf("--frames must be positive, got %d", flagFrames)
	}

	a, err := newApp(context.Background(), appOptions{headless: true})
	if err != nil {
		return err
	}
	defer a.Close()

	if err := a.session.Update(0, arena.Input{Enter: true}); err != nil {
		return err
	}

	monitor := a.threading.PerformanceMonitor
	projector := render.NewProjector(render.ViewFromConfig(a.cfg),
		render.NewPalette(a.cfg.Colors.Walls, render.RGB(a.cfg.Colors.WallDefault)))
	player := a.session.Player()
	numRays := a.cfg.Raycast.NumRays

	var (
		rays []raycast.Ray
		cols []render.Column
		hits int
	)
	for i := 0; i < flagFrames; i++ {
		frame := monitor.StartFrame()

		timer := monitor.StartRaycast(numRays)
		rays = a.session.Rays()
		timer.EndRaycast()

		monitor.ProfiledFunction(monitoring.StageProject, func() {
			cols = projector.Columns(rays, cols)
		})
		hits += len(cols)

		player.Rotate(0.01)
		frame.EndFrame()
	}

	m := a.threading.GetPerformanceMetrics()
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Frames:        %d\n", m.Frames)
	fmt.Fprintf(out, "Workers:       %d\n", a.cfg.Raycast.Workers)
	fmt.Fprintf(out, "Rays cast:     %d\n", m.RaysCast)
	fmt.Fprintf(out, "Wall columns:  %d\n", hits)
	fmt.Fprintf(out, "Avg frame:     %v\n", m.AvgFrameTime)
	fmt.Fprintf(out, "Avg raycast:   %v\n", m.AvgRaycastTime)
	fmt.Fprintf(out, "Last project:  %v\n", m.ProjectTime)
	fmt.Fprintf(out, "Memory:        %d MB\n", m.MemoryUsageMB)
	return nil
}
