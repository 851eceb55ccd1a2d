package main

import (
	"os"
	"path/filepath"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/walteh/filesort/pkg/classify"
	"github.com/walteh/filesort/pkg/config"
	"github.com/walteh/filesort/pkg/hash"
	"github.com/walteh/filesort/pkg/log"
	"github.com/walteh/filesort/pkg/resolve"
	"github.com/walteh/filesort/pkg/scan"
	"github.com/walteh/filesort/pkg/status"
	"github.com/walteh/filesort/pkg/transfer"
	"gitlab.com/tozd/go/errors"
)

var (
	// Flags
	configFile         string
	debug              bool
	quiet              bool
	deleteSource       bool
	dryRun             bool
	fileType           string
	recursive          bool
	workers            int
	noCleanup          bool
	noRecursiveCleanup bool
)

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "filesort SOURCE DESTINATION",
		Short: "Sort files from a source directory into a destination directory",
		Long: `filesort moves or copies files into a destination directory in
parallel, skipping content-identical duplicates, renaming colliding
files, and sweeping up the empty directories a move leaves behind.`,
		Args:         cobra.ExactArgs(2),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, args[0], args[1])
		},
	}
	addRootFlags(cmd)
	return cmd
}

// addRootFlags adds shared flags to the root command
func addRootFlags(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&configFile, "config", "c", "", "config file path (.yaml or .hcl)")
	cmd.Flags().BoolVarP(&debug, "debug", "d", false, "enable debug logging")
	cmd.Flags().BoolVarP(&quiet, "quiet", "q", false, "suppress the progress display")
	cmd.Flags().BoolVar(&deleteSource, "delete-source", false, "delete source files after successful copy")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "resolve and record but move nothing")
	cmd.Flags().StringVarP(&fileType, "type", "t", "", "only transfer files of one kind (image, video, audio)")
	cmd.Flags().BoolVarP(&recursive, "recursive", "r", false, "include files in subdirectories")
	cmd.Flags().IntVarP(&workers, "workers", "w", 0, "parallel transfer workers (default: available CPUs)")
	cmd.Flags().BoolVar(&noCleanup, "no-cleanup", false, "disable cleanup of empty directories")
	cmd.Flags().BoolVar(&noRecursiveCleanup, "no-recursive-cleanup", false, "only clean direct children of source directories")
}

// setupLogging configures zerolog based on flags
func setupLogging() zerolog.Level {
	level := zerolog.InfoLevel
	if debug {
		level = zerolog.DebugLevel
	}
	zerolog.SetGlobalLevel(level)
	zlog := zerolog.New(os.Stderr).With().Timestamp().Logger().Level(level)
	zerolog.DefaultContextLogger = &zlog
	return level
}

// loadConfig loads the config file when one is given, else defaults
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	ctx := cmd.Context()
	if configFile == "" {
		return config.Default(), nil
	}
	cfg, err := config.Load(ctx, configFile)
	if err != nil {
		return nil, errors.Errorf("loading config: %w", err)
	}
	return cfg, nil
}

// applyFlags lets explicitly set flags override file values
func applyFlags(cmd *cobra.Command, cfg *config.Config) {
	flags := cmd.Flags()
	if flags.Changed("delete-source") {
		cfg.DeleteSource = deleteSource
	}
	if flags.Changed("dry-run") {
		cfg.DryRun = dryRun
	}
	if flags.Changed("type") {
		cfg.Type = fileType
	}
	if flags.Changed("recursive") {
		cfg.Recursive = recursive
	}
	if flags.Changed("workers") {
		cfg.Workers = workers
	}
	if noCleanup {
		cfg.Cleanup.Enabled = false
	}
	if noRecursiveCleanup {
		cfg.Cleanup.Recursive = false
	}
}

func run(cmd *cobra.Command, source, destination string) error {
	level := setupLogging()
	ctx := cmd.Context()
	userLogger := log.New(os.Stdout, level)

	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	applyFlags(cmd, cfg)

	absDestination, err := filepath.Abs(destination)
	if err != nil {
		return errors.Errorf("resolving destination path: %w", err)
	}
	cfg.Destination = absDestination

	var kind classify.Kind
	if cfg.Type != "" {
		kind, err = classify.ParseKind(cfg.Type)
		if err != nil {
			return err
		}
	}

	sources, err := scan.Files(ctx, source, scan.Options{
		Recursive:      cfg.Recursive,
		Kind:           kind,
		IgnorePatterns: cfg.Cleanup.IgnoreNames,
	})
	if err != nil {
		return errors.Errorf("scanning source directory: %w", err)
	}
	if len(sources) == 0 {
		userLogger.Warning("no matching files found")
		return nil
	}

	resolver, err := resolve.New(hash.Equal)
	if err != nil {
		return err
	}
	ledger := status.NewLedger()
	engine, err := transfer.New(transfer.Options{
		Ledger:       ledger,
		Resolver:     resolver,
		DeleteSource: cfg.DeleteSource,
		DryRun:       cfg.DryRun,
		Cleanup:      cfg.Cleanup,
		Workers:      cfg.Workers,
	})
	if err != nil {
		return errors.Errorf("creating transfer engine: %w", err)
	}

	mode := "copying"
	if cfg.DeleteSource {
		mode = "moving"
	}
	if cfg.DryRun {
		mode = "dry run, " + mode + " nothing"
	}
	userLogger.Header(mode + " " + source + " → " + cfg.Destination)

	var stop func()
	if !quiet && !cfg.DryRun {
		stop = startProgress(ledger, len(sources))
	}
	transferErr := engine.Transfer(ctx, sources, cfg.Destination)
	if stop != nil {
		stop()
	}

	for _, entry := range ledger.Entries() {
		userLogger.LogFileOperation(ctx, log.FileOperation{
			Source: entry.Source,
			Dest:   entry.Dest,
			State:  entry.State,
			Size:   entry.Size,
			Err:    entry.Err,
		})
	}
	userLogger.LogSummary(ctx, ledger.Summary())

	if transferErr != nil {
		userLogger.Errorf("transfer failed: %v", transferErr)
		return transferErr
	}
	if cfg.DryRun {
		userLogger.Success("dry run complete")
	} else {
		userLogger.Success("all files processed")
	}
	return nil
}
