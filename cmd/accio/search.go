package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/yourusername/accio/internal/config"
	"github.com/yourusername/accio/internal/logger"
	"github.com/yourusername/accio/internal/monitor"
	"github.com/yourusername/accio/internal/progress"
	"github.com/yourusername/accio/internal/prompt"
	"github.com/yourusername/accio/internal/scanner"
)

// monitorInterval is how often --monitor samples resource usage.
const monitorInterval = time.Second

// searchOptions holds the search subcommand flags.
type searchOptions struct {
	dir            string
	parallel       bool
	workers        int
	followSymlinks bool
	noProgress     bool
	monitor        bool
}

// NewSearchCommand creates the search subcommand.
func NewSearchCommand(a *app) *cobra.Command {
	opts := &searchOptions{}

	cmd := &cobra.Command{
		Use:   "search <filename>",
		Short: "Search a directory tree for files named <filename>",
		Long: `Search walks a directory tree and prints every file named <filename>.
Names are compared ignoring ASCII letter case; directories never match.

When --dir is not given the directory is read from standard input, and when
neither --parallel nor the config file picks a strategy you are asked.

Exit code: 0 when the search completes (with or without matches), 1 on
error, 130 when interrupted`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runSearch(cmd, args[0], opts)
		},
	}

	cmd.Flags().StringVarP(&opts.dir, "dir", "d", "", "root directory to search (prompted when absent)")
	cmd.Flags().BoolVarP(&opts.parallel, "parallel", "p", false, "use the parallel engine")
	cmd.Flags().IntVar(&opts.workers, "workers", 0,
		fmt.Sprintf("parallel slot count (0 = NumCPU*%d, max %d)", scanner.DefaultWorkerMultiplier, config.MaxWorkers))
	cmd.Flags().BoolVar(&opts.followSymlinks, "follow-symlinks", true, "recurse into symlinked directories")
	cmd.Flags().BoolVar(&opts.noProgress, "no-progress", false, "disable the progress spinner")
	cmd.Flags().BoolVar(&opts.monitor, "monitor", false, "sample goroutines and memory and print a report")

	return cmd
}

func (a *app) runSearch(cmd *cobra.Command, target string, opts *searchOptions) error {
	out := cmd.OutOrStdout()
	ask := prompt.New(cmd.InOrStdin(), out)

	dir := opts.dir
	if dir == "" {
		var err error
		if dir, err = ask.Directory(); err != nil {
			return fmt.Errorf("failed to read directory: %w", err)
		}
	}

	if err := scanner.ValidateRoot(dir); err != nil {
		fmt.Fprintf(cmd.ErrOrStderr(), "The path '%s' is not a valid directory.\n", dir)
		logger.Debug("Rejected search root: %v", err)
		return &reportedError{err: err}
	}

	parallel, err := a.useParallel(cmd, opts, ask)
	if err != nil {
		return err
	}

	workers := a.cfg.Workers
	if cmd.Flags().Changed("workers") {
		workers = opts.workers
	}
	if workers < 0 || workers > config.MaxWorkers {
		return fmt.Errorf("--workers must be between 0 and %d, got %d", config.MaxWorkers, workers)
	}

	followSymlinks := a.cfg.FollowSymlinks
	if cmd.Flags().Changed("follow-symlinks") {
		followSymlinks = opts.followSymlinks
	}

	mode := scanner.Sequential
	if parallel {
		mode = scanner.Parallel
	}

	counter := &scanner.VisitCounter{}
	searcher := scanner.NewSearcher(scanner.Options{
		Mode:           mode,
		Workers:        workers,
		FollowSymlinks: followSymlinks,
		Counter:        counter,
		OnError:        dirErrorHandler(),
	})

	fmt.Fprintf(out, "Starting %s search...\n", mode)

	var spin *progress.Spinner
	if a.cfg.Progress && !opts.noProgress && isTerminal(out) {
		spin = progress.NewSpinner(out, counter.Load)
		spin.Start()
	}

	var mon *monitor.Monitor
	monCtx, stopMonitor := context.WithCancel(cmd.Context())
	defer stopMonitor()
	if opts.monitor {
		poolSize := 0
		if parallel {
			poolSize = searcher.Workers()
		}
		mon = monitor.NewMonitor(poolSize)
		go mon.Start(monCtx, monitorInterval, counter.Load)
		logger.Info("Resource monitoring enabled")
	}

	result, err := searcher.Search(cmd.Context(), dir, target)
	stopMonitor()
	if spin != nil {
		spin.Stop()
	}
	if result == nil {
		return err
	}

	printResult(out, result, useColor(out))
	if mon != nil {
		fmt.Fprintln(out, mon.GenerateReport())
	}

	logger.WithFields(logger.Fields{
		"search_id":    result.ID,
		"mode":         result.Mode.String(),
		"matches":      len(result.Paths),
		"dirs_visited": result.DirsVisited,
	}).Info("Search finished in %v", result.Duration)

	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return fmt.Errorf("search timed out: %w", err)
		}
		return err
	}
	return nil
}

// dirErrorHandler returns the listing-failure hook for a search: skipped
// directories are logged at DEBUG level, and no hook is installed when that
// level is filtered out.
func dirErrorHandler() func(path string, err error) {
	if !logger.Enabled(logger.DEBUG) {
		return nil
	}
	return func(path string, err error) {
		logger.LogDirWarning(path, err.Error())
	}
}

// useParallel decides the strategy: the --parallel flag if given, then the
// config file, then the user.
func (a *app) useParallel(cmd *cobra.Command, opts *searchOptions, ask *prompt.Prompter) (bool, error) {
	if cmd.Flags().Changed("parallel") {
		return opts.parallel, nil
	}
	if a.cfg.Parallel != nil {
		return *a.cfg.Parallel, nil
	}
	return ask.UseParallel()
}

// useColor reports whether out should get ANSI colors: it must be a terminal
// and color must not be disabled globally (NO_COLOR, TERM=dumb).
func useColor(out io.Writer) bool {
	return isTerminal(out) && !color.NoColor
}

// printResult writes the search summary followed by the matching paths.
func printResult(out io.Writer, result *scanner.SearchResult, colorize bool) {
	elapsed := progress.FormatDuration(result.Duration)

	if len(result.Paths) == 0 {
		fmt.Fprintf(out, "No file named '%s' found. (Completed in %s)\n", result.Target, elapsed)
		return
	}

	green := color.New(color.FgGreen)
	if colorize {
		green.EnableColor()
	} else {
		green.DisableColor()
	}
	fmt.Fprintf(out, "%s (Completed in %s)\n", green.Sprint("Found the following files:"), elapsed)

	for _, path := range result.Paths {
		fmt.Fprintln(out, path)
	}
}
