package main

import (
	"fmt"
	"io"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/yourusername/accio/internal/config"
	"github.com/yourusername/accio/internal/logger"
)

// Version is injected at build time via -ldflags
var Version = "dev"

// app carries the global flags and the loaded configuration to subcommands.
type app struct {
	configPath string
	logFile    string
	verbose    bool

	cfg *config.Config
}

// NewRootCommand creates the root accio command with all subcommands.
func NewRootCommand() *cobra.Command {
	a := &app{cfg: config.DefaultConfig()}

	cmd := &cobra.Command{
		Use:   "accio",
		Short: "Find files by name in a directory tree",
		Long: `Accio walks a directory tree and lists every file whose name matches
the given filename, ignoring ASCII letter case.

The walk runs either sequentially (results in depth-first order) or in
parallel, forking a goroutine per subdirectory. Directories that cannot be
read are skipped.`,
		Version:      Version,
		SilenceUsage: true,
		// Errors are printed by run so the exit code and message stay together.
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup()
		},
	}

	cmd.PersistentFlags().StringVar(&a.configPath, "config", "",
		fmt.Sprintf("config file (default $%s or %s)", config.EnvConfigPath, config.DefaultPath()))
	cmd.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "enable debug logging")
	cmd.PersistentFlags().StringVar(&a.logFile, "log-file", "", "also write log lines to this file")

	cmd.AddCommand(NewSearchCommand(a))
	cmd.AddCommand(NewLsCommand())
	cmd.AddCommand(NewPwdCommand())

	return cmd
}

// setup loads the configuration and starts logging.
func (a *app) setup() error {
	path := config.ResolvePath(a.configPath)
	cfg, err := config.LoadConfig(path)
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config %s: %w", path, err)
	}
	a.cfg = cfg

	level, err := logger.ParseLevel(cfg.LogLevel)
	if err != nil {
		return err
	}
	if a.verbose {
		level = logger.DEBUG
	}

	logFile := cfg.LogFile
	if a.logFile != "" {
		logFile = a.logFile
	}
	if err := logger.SetupLogging(level, logFile); err != nil {
		return fmt.Errorf("failed to setup logging: %w", err)
	}

	logger.Debug("Loaded configuration from %s", path)
	return nil
}

// isTerminal reports whether w is an interactive terminal.
func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
