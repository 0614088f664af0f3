package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/gdamore/tcell/v2"
	"github.com/spf13/cobra"

	"magearena/internal/termview"
)

var termCmd = &cobra.Command{
	Use:   "term",
	Short: "Play in the terminal",
	Long: `Play in the terminal. Walls are drawn with a shading ramp, enemies as
colored blocks and the minimap in the top-left corner.

Keys: wasd or arrows move and turn, 1/2 cast, Esc pauses, q quits.`,
	RunE: runTerm,
}

func runTerm(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	a, err := newApp(ctx, appOptions{stdinTaken: true})
	if err != nil {
		return err
	}
	defer a.Close()

	screen, err := tcell.NewScreen()
	if err != nil {
		return err
	}
	if err := screen.Init(); err != nil {
		return err
	}
	defer screen.Fini()
	screen.HideCursor()

	t := termview.New(screen, a.session, termview.Options{
		Logger: a.logger,
		Ramp:   a.cfg.Term.Ramp,
		Frame:  a.cfg.TerminalFrame(),
	})
	return t.Run(ctx)
}
