// magearena is a first-person raycasting arena where spells are cast by
// keyboard or by voice.
//
// Usage:
//
//	magearena [play]              - Open the game window (default)
//	magearena term                - Play in the terminal
//	magearena bench               - Time casting and projection headlessly
//	magearena maps validate <f>.. - Check arena files
//	magearena maps show [f]       - Print an arena as text
//	magearena runs [-i]           - Show recorded runs
//	magearena serve               - Share the run history over SSH
//
// Global flags:
//
//	--config <path>      - YAML file layered over the embedded defaults
//	--log-level <level>  - debug, info, warn or error
//	--seed <value>       - RNG seed for enemy wandering (0 = time based)
//	--workers <n>        - Ray caster workers (-1 = from config)
package main

import (
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
)

var (
	flagConfig   string
	flagLogLevel string
	flagSeed     uint64
	flagWorkers  int
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		log.Fatal(err)
	}
}

var rootCmd = &cobra.Command{
	Use:   "magearena",
	Short: "Mage Arena 3D - a raycasting arena driven by spells",
	Long: `Mage Arena 3D is a first-person raycasting arena. Clear each phase by
defeating its enemies with the required spell.

Controls:
  W/S        - Move forward/back
  A/D        - Strafe
  Left/Right - Turn (the mouse also turns and looks up/down)
  1 / 2      - Cast fireball / lightning
  ESC        - Pause (quit from the menu)
  R / M      - Resume / back to menu while paused
  Enter      - Start, or continue after a run ends`,
	SilenceUsage: true,
	RunE:         runPlay,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to a YAML config layered over the defaults")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "", "Log level: debug, info, warn, error (default from config)")
	rootCmd.PersistentFlags().Uint64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().IntVar(&flagWorkers, "workers", -1, "Ray caster workers (-1 = from config)")

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(termCmd)
	rootCmd.AddCommand(benchCmd)
	rootCmd.AddCommand(mapsCmd)
	rootCmd.AddCommand(runsCmd)
	rootCmd.AddCommand(serveCmd)
}

func newLogger(level string) (*log.Logger, error) {
	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          "magearena",
	})
	if level == "" {
		return logger, nil
	}
	lvl, err := log.ParseLevel(level)
	if err != nil {
		return nil, err
	}
	logger.SetLevel(lvl)
	return logger, nil
}
