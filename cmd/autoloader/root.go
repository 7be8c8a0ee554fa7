package main

import (
	"fmt"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/kingrea/autoloader/internal/config"
	"github.com/kingrea/autoloader/internal/logging"
)

// app holds what every command needs once flags are parsed.
type app struct {
	baseDir   string
	logLevel  string
	logFormat string
	verbose   bool

	cfg      *config.Config
	logger   *zap.Logger
	closeLog func() error
}

func newApp() *app {
	return &app{logger: zap.NewNop()}
}

func (a *app) rootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "autoloader",
		Short: "Locate and load the installed dependency manifest",
		Long: `autoloader checks the project's own vendor/autoload.php, then the
autoload.php of a parent project three directories up, and loads the first
one it finds. When neither exists it prints "Please run composer install."
and exits non-zero.`,
		Version:           version,
		Args:              usageArgs(cobra.NoArgs),
		SilenceErrors:     true,
		SilenceUsage:      true,
		PersistentPreRunE: a.setup,
		RunE:              a.runLoad,
	}
	cmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return &exitError{code: 2, msg: err.Error()}
	})

	cmd.PersistentFlags().StringVar(&a.baseDir, "base-dir", "", "Directory candidates are resolved against (default: directory of this executable)")
	cmd.PersistentFlags().StringVar(&a.logLevel, "log-level", "", "Log level: debug, info, warn, error (overrides settings)")
	cmd.PersistentFlags().StringVar(&a.logFormat, "log-format", "", "Log format: console or json (overrides settings)")
	cmd.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "Enable debug logging")

	cmd.AddCommand(
		a.newLoadCmd(),
		a.newStatusCmd(),
		a.newListCmd(),
		a.newWaitCmd(),
		a.newInitCmd(),
	)
	return cmd
}

func usageArgs(check cobra.PositionalArgs) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if err := check(cmd, args); err != nil {
			return &exitError{code: 2, msg: err.Error()}
		}
		return nil
	}
}

// setup resolves the base dir, reads settings and builds the logger.
func (a *app) setup(cmd *cobra.Command, _ []string) error {
	base := a.baseDir
	if base == "" {
		var err error
		base, err = config.DefaultBaseDir()
		if err != nil {
			return err
		}
	}
	cfg, err := config.New(base)
	if err != nil {
		return err
	}
	if a.logLevel != "" {
		cfg.Settings.Log.Level = a.logLevel
	}
	if a.verbose {
		cfg.Settings.Log.Level = "debug"
	}
	if a.logFormat != "" {
		cfg.Settings.Log.Format = a.logFormat
	}
	if err := cfg.Settings.Validate(); err != nil {
		return &exitError{code: 2, msg: fmt.Sprintf("config: %v", err)}
	}

	logger, closeLog, err := logging.New(logging.Options{
		Level:    cfg.Settings.Log.Level,
		Format:   cfg.Settings.Log.Format,
		FilePath: cfg.LogFilePath(),
		Output:   cmd.ErrOrStderr(),
	})
	if err != nil {
		return err
	}
	a.cfg = cfg
	a.logger = logger.With(zap.String("base_dir", cfg.BaseDir))
	a.closeLog = closeLog
	return nil
}

func (a *app) close() {
	if a.closeLog != nil {
		_ = a.closeLog()
		a.closeLog = nil
	}
}

// interactive reports whether w is a terminal the TUI can draw on.
func interactive(w any) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
