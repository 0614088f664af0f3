package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"magearena/internal/arena"
	"magearena/internal/config"
	"magearena/internal/render"
	"magearena/internal/threading/core"
	"magearena/internal/world"
)

var mapsCmd = &cobra.Command{
	Use:   "maps",
	Short: "Inspect arena files",
}

var mapsValidateCmd = &cobra.Command{
	Use:   "validate <file>...",
	Short: "Check that arenas load and their spawns are clear",
	Long: `Loads each text or YAML arena and builds a session on it, reporting the
first problem found per file. Files are checked concurrently.

Examples:
  magearena maps validate arenas/cross.txt
  magearena maps validate arenas/*.yaml`,
	Args: cobra.MinimumNArgs(1),
	RunE: runMapsValidate,
}

var mapsShowCmd = &cobra.Command{
	Use:   "show [file]",
	Short: "Print an arena as text (default: the configured arena)",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runMapsShow,
}

func init() {
	mapsCmd.AddCommand(mapsValidateCmd)
	mapsCmd.AddCommand(mapsShowCmd)
}

func runMapsValidate(cmd *cobra.Command, args []string) error {
	cfg, _, err := loadConfig()
	if err != nil {
		return err
	}

	loader := world.NewMapLoader(cfg.GetTileSize())
	results := core.ParallelMapWithContext(cmd.Context(), args, func(path string) mapReport {
		return checkMapFile(cfg, loader, path)
	})

	out := cmd.OutOrStdout()
	failed := 0
	for _, r := range results {
		if r.err != nil {
			failed++
			fmt.Fprintf(out, "%s: %v\n", r.path, r.err)
			continue
		}
		fmt.Fprintf(out, "%s: ok (%dx%d, %d open cells)\n", r.path, r.cols, r.rows, r.open)
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d arenas failed validation", failed, len(results))
	}
	return nil
}

type mapReport struct {
	path             string
	cols, rows, open int
	err              error
}

func checkMapFile(cfg *config.Config, loader *world.MapLoader, path string) mapReport {
	r := mapReport{path: path}
	md, err := loader.LoadMap(path)
	if err != nil {
		r.err = err
		return r
	}
	if err := validateArena(cfg, md); err != nil {
		r.err = err
		return r
	}
	r.cols, r.rows, r.open = md.Grid.Width(), md.Grid.Height(), md.Grid.OpenCells()
	return r
}

// validateArena builds a session on md, which checks the player spawn and
// every configured enemy spawn.
func validateArena(cfg *config.Config, md *world.MapData) error {
	_, err := arena.New(cfg, md.Grid, arena.Options{Spawn: arena.SpawnFromMap(md)})
	return err
}

func runMapsShow(cmd *cobra.Command, args []string) error {
	cfg, _, err := loadConfig()
	if err != nil {
		return err
	}
	path := cfg.World.Arena
	if len(args) == 1 {
		path = args[0]
	}
	md, err := world.NewMapLoader(cfg.GetTileSize()).Load(path)
	if err != nil {
		return err
	}
	walls := render.NewPalette(cfg.Colors.Walls, render.RGB(cfg.Colors.WallDefault))
	fmt.Fprint(cmd.OutOrStdout(), renderMap(md, walls))
	return nil
}

var (
	emptyStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	startStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("46"))
)

// renderMap draws one character per cell: the wall code in its palette color,
// '.' for open floor and '@' for the map's spawn cell.
func renderMap(md *world.MapData, walls *render.Palette) string {
	var b strings.Builder
	for row, cells := range md.Grid.Rows() {
		for col, code := range cells {
			switch {
			case md.HasStart && col == md.StartCol && row == md.StartRow:
				b.WriteString(startStyle.Render("@"))
			case code == world.CellEmpty:
				b.WriteString(emptyStyle.Render("."))
			default:
				c := walls.Color(code)
				hex := fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
				b.WriteString(lipgloss.NewStyle().Foreground(lipgloss.Color(hex)).Render(wallGlyph(code)))
			}
		}
		b.WriteByte('\n')
	}
	return b.String()
}

func wallGlyph(code int) string {
	if code >= 1 && code <= 9 {
		return strconv.Itoa(code)
	}
	return "#"
}
