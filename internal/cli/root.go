package cli

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"dirsweep/internal/config"
	"dirsweep/internal/exitcodes"
	"dirsweep/internal/history"
	"dirsweep/internal/logging"
	"dirsweep/internal/run"
)

var (
	configPath  string
	targetNames []string
	force       bool
	dryRun      bool
	strict      bool
	historyPath string
	logFile     string
	verbose     bool
)

// errPartialFailure marks a completed run with removal failures under --strict.
var errPartialFailure = errors.New("completed with removal failures")

var rootCmd = &cobra.Command{
	Use:   "dirsweep [root]",
	Short: "Find and remove folders by name",
	Long: `dirsweep recursively scans a directory tree for folders whose name
exactly matches one of the given target names, reports them with their
aggregate size, asks for confirmation, and removes them.

By default the current working directory is scanned. Matched folders are
removed recursively; a dry run previews the result without touching the
filesystem. A single failed removal never aborts the batch.

Exit codes: 0 on success (including no matches and user cancellation),
1 for invalid flags or an unusable root path, 2 when --strict is set and
any removal failed.`,
	Example: `  # Remove build output folders below the current directory
  dirsweep --name bin --name obj

  # Preview what would be removed from a project tree
  dirsweep ~/src/myproject -n node_modules --dry-run

  # Remove without prompting, fail the build on partial errors
  dirsweep /var/builds -n target,dist --force --strict

  # Record removals to an audit log
  dirsweep -n bin,obj --force --history-db ~/.dirsweep/removals.db`,
	Args:          cobra.MaximumNArgs(1),
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runSweep,
}

func init() {
	rootCmd.Flags().StringSliceVarP(&targetNames, "name", "n", nil, "folder name to remove; repeatable or comma-separated")
	rootCmd.Flags().BoolVarP(&force, "force", "f", false, "remove without asking for confirmation")
	rootCmd.Flags().BoolVarP(&dryRun, "dry-run", "d", false, "preview removals without deleting anything")
	rootCmd.Flags().BoolVar(&strict, "strict", false, "exit with status 2 when any removal fails")
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "path to YAML config with defaults")
	rootCmd.Flags().StringVar(&historyPath, "history-db", "", "SQLite file recording every removal")
	rootCmd.Flags().StringVar(&logFile, "log-file", "", "mirror diagnostics to this file")
	rootCmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "print scan and removal diagnostics to stderr")

	rootCmd.AddCommand(historyCmd)
}

// Execute runs the CLI and returns the process exit code.
func Execute() int {
	if err := rootCmd.Execute(); err != nil {
		if errors.Is(err, errPartialFailure) {
			return exitcodes.PartialFailure
		}
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return exitcodes.InvalidInvocation
	}
	return exitcodes.Success
}

func runSweep(cmd *cobra.Command, args []string) error {
	cfg := &config.Config{}
	if configPath != "" {
		loaded, err := config.Load(configPath)
		if err != nil {
			return err
		}
		cfg = loaded
	}

	names := targetNames
	if len(names) == 0 {
		names = cfg.DefaultNames
	}
	if len(names) == 0 {
		return errors.New("at least one target name is required (--name)")
	}

	root := "."
	if len(args) > 0 {
		root = args[0]
	}

	logger, err := buildLogger(cfg)
	if err != nil {
		return err
	}

	var db *history.DB
	dbPath := historyPath
	if dbPath == "" {
		dbPath = cfg.HistoryDB
	}
	if dbPath != "" {
		db, err = history.Open(dbPath)
		if err != nil {
			return err
		}
		defer func() {
			if err := db.Close(); err != nil {
				logger.Printf("ERROR: failed to close history database: %v", err)
			}
		}()
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	opts := run.Options{
		Root:           root,
		Names:          names,
		Force:          force,
		DryRun:         dryRun,
		ProtectedPaths: cfg.ProtectedPaths,
	}
	deps := run.Deps{
		Logger: logger,
		In:     os.Stdin,
		Out:    os.Stdout,
		DB:     db,
	}

	summary, err := run.Sweep(ctx, opts, deps)
	if err != nil {
		return err
	}

	if (strict || cfg.Strict) && summary.Failed > 0 {
		return errPartialFailure
	}
	return nil
}

func buildLogger(cfg *config.Config) (*log.Logger, error) {
	path := logFile
	if path == "" {
		path = cfg.Logging.File
	}
	if path != "" {
		return logging.NewWithFile(path, verbose)
	}
	return logging.New(verbose), nil
}
