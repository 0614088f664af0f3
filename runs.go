package main

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"magearena/internal/config"
	"magearena/internal/runsview"
	"magearena/internal/storage"
)

var (
	flagRunsLimit int
	flagRunsBest  bool
	flagRunsDB    string
	flagRunsTUI   bool
)

var runsCmd = &cobra.Command{
	Use:   "runs",
	Short: "Show recorded runs",
	Long: `Display the most recent runs, or the best ones with --best (furthest
phase first, then the most kills, then the fastest).

Examples:
  magearena runs
  magearena runs --best --limit 5
  magearena runs -i                  # browse interactively`,
	Args: cobra.NoArgs,
	RunE: runRuns,
}

func init() {
	runsCmd.Flags().IntVar(&flagRunsLimit, "limit", 10, "Number of runs to show")
	runsCmd.Flags().BoolVar(&flagRunsBest, "best", false, "Rank runs instead of listing the newest")
	runsCmd.Flags().StringVar(&flagRunsDB, "db", "", "Database path (default from config)")
	runsCmd.Flags().BoolVarP(&flagRunsTUI, "interactive", "i", false, "Browse runs in a full-screen view")
}

// openRunStore opens the database named by --db, or the configured one.
func openRunStore(cfg *config.Config, dbFlag string) (*storage.Store, error) {
	path := dbFlag
	if path == "" {
		path = cfg.StoragePath()
	}
	store, err := storage.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening run history: %w", err)
	}
	return store, nil
}

func runRuns(cmd *cobra.Command, args []string) error {
	cfg, _, err := loadConfig()
	if err != nil {
		return err
	}
	store, err := openRunStore(cfg, flagRunsDB)
	if err != nil {
		return err
	}
	defer store.Close()

	if flagRunsTUI {
		return runsview.Run(store)
	}

	var runs []storage.Run
	if flagRunsBest {
		runs, err = store.BestRuns(flagRunsLimit)
	} else {
		runs, err = store.RecentRuns(flagRunsLimit)
	}
	if err != nil {
		return fmt.Errorf("reading runs: %w", err)
	}
	counts, err := store.CountByOutcome()
	if err != nil {
		return fmt.Errorf("counting runs: %w", err)
	}

	out := cmd.OutOrStdout()
	if len(runs) == 0 {
		fmt.Fprintln(out, "No runs recorded yet.")
		fmt.Fprintln(out)
		fmt.Fprintln(out, "Play 'magearena' to record the first one!")
		return nil
	}
	fmt.Fprintln(out, formatRuns(runs))
	fmt.Fprintln(out, formatCounts(counts))
	return nil
}

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Padding(0, 1)
	cellStyle   = lipgloss.NewStyle().Padding(0, 1)
)

// formatRuns renders runs as a table in the order given.
func formatRuns(runs []storage.Run) string {
	t := table.New().
		Border(lipgloss.NormalBorder()).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return cellStyle
		}).
		Headers("#", "Date", "Outcome", "Phase", "Kills", "Spells", "Health", "Time")

	for i, r := range runs {
		t.Row(
			strconv.Itoa(i+1),
			r.StartedAt.Local().Format("2006-01-02 15:04"),
			r.Outcome,
			strconv.Itoa(r.Phase),
			strconv.Itoa(r.Kills),
			strconv.Itoa(r.SpellsCast),
			strconv.Itoa(r.Health),
			r.Duration().Round(time.Second).String(),
		)
	}
	return t.String()
}

// formatCounts lists outcome totals alphabetically.
func formatCounts(counts map[string]int) string {
	keys := make([]string, 0, len(counts))
	total := 0
	for k, n := range counts {
		keys = append(keys, k)
		total += n
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s %d", k, counts[k]))
	}
	return fmt.Sprintf("Total: %d (%s)", total, strings.Join(parts, ", "))
}
