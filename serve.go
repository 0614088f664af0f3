package main

import (
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"magearena/internal/runsview"
)

var (
	flagSSHAddr     string
	flagHostKey     string
	flagServeDB     string
	flagIdleTimeout int
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Share the run history over SSH",
	Long: `Start an SSH server where every connection gets the interactive run
browser. All clients read the same database.

Host key handling:
  - If --host-key is provided, uses that key file
  - Otherwise, a key is generated next to the run database

Examples:
  magearena serve                  # Listen on :23234
  magearena serve --ssh :2222      # Listen on port 2222
  magearena serve --db ./runs.db   # Use a specific database

Connect with:
  ssh localhost -p 23234`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&flagSSHAddr, "ssh", ":23234", "SSH server address (host:port)")
	serveCmd.Flags().StringVar(&flagHostKey, "host-key", "", "Path to host key file (generated if missing)")
	serveCmd.Flags().StringVar(&flagServeDB, "db", "", "Database path (default from config)")
	serveCmd.Flags().IntVar(&flagIdleTimeout, "idle-timeout", 30, "Idle timeout in minutes before disconnecting")
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, logger, err := loadConfig()
	if err != nil {
		return err
	}
	store, err := openRunStore(cfg, flagServeDB)
	if err != nil {
		return err
	}
	defer store.Close()

	srvCfg := runsview.DefaultServerConfig()
	srvCfg.Address = flagSSHAddr
	srvCfg.HostKeyPath = hostKeyPath(flagHostKey, flagServeDB, cfg.StoragePath())
	srvCfg.IdleTimeout = time.Duration(flagIdleTimeout) * time.Minute

	server, err := runsview.NewServer(srvCfg, store, logger.WithPrefix("magearena-ssh"))
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Serving run history on %s\n", server.Addr())
	fmt.Fprintln(out, "Press Ctrl+C to stop")

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return server.ListenAndServe(ctx)
}

// hostKeyPath picks the explicit key, or host_key beside the database.
func hostKeyPath(explicit, dbFlag, configured string) string {
	if explicit != "" {
		return explicit
	}
	db := dbFlag
	if db == "" {
		db = configured
	}
	return filepath.Join(filepath.Dir(db), "host_key")
}
