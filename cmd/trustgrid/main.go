package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"github.com/nvandessel/trustgrid/internal/config"
	"github.com/nvandessel/trustgrid/internal/logging"
	"github.com/nvandessel/trustgrid/internal/pathutil"
)

var (
	version = "0.1.0-dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "trustgrid",
		Short: "Trust propagation cellular automaton",
		Long: `trustgrid simulates how trust spreads across a grid of cells.

Each cell holds info points and grades them into a trust level (null, low,
medium, high) with a fuzzy credibility evaluator. Propagator cells start full
and pass points to neighbours that trust them, one generation at a time.`,
		SilenceUsage: true,
	}

	// Global flags
	rootCmd.PersistentFlags().Bool("json", false, "Output as JSON (for agent consumption)")
	rootCmd.PersistentFlags().String("config", "", "Config file (default ~/.trustgrid/config.yaml)")

	rootCmd.AddCommand(
		newVersionCmd(),
		newRunCmd(),
		newWatchCmd(),
		newGradeCmd(),
		newConfigCmd(),
		newMCPServerCmd(),
	)

	return rootCmd
}

// loadConfig loads the configuration named by --config, or the default
// locations. Callers validate after applying their own flags.
func loadConfig(cmd *cobra.Command) (*config.TrustgridConfig, error) {
	path, _ := cmd.Flags().GetString("config")
	cfg, err := config.LoadPath(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	return cfg, nil
}

// newLoggers builds the stderr logger and, at debug level or below, the
// generation trace. The trace is written to cfg.Logging.Dir, or
// ~/.trustgrid/logs when unset.
func newLoggers(cfg *config.TrustgridConfig) (*slog.Logger, *logging.TraceLogger) {
	logger := logging.NewLogger(cfg.Logging.Level, os.Stderr)

	dir := cfg.Logging.Dir
	if dir == "" {
		dir = "~/.trustgrid/logs"
	}
	dir, err := pathutil.ExpandHome(dir)
	if err != nil {
		logger.Warn("generation trace disabled", "error", err)
		return logger, nil
	}
	return logger, logging.NewTraceLogger(dir, cfg.Logging.Level)
}

// signalContext returns a context cancelled on SIGINT or SIGTERM.
func signalContext(parent context.Context) (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(parent)
	sigChan := make(chan os.Signal, 1)
	notifySignals(sigChan)
	go func() {
		defer signal.Stop(sigChan)
		select {
		case <-sigChan:
			cancel()
		case <-ctx.Done():
		}
	}()
	return ctx, cancel
}
