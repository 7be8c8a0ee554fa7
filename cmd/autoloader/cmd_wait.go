package main

import (
	"context"
	"errors"
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/kingrea/autoloader/internal/bootstrap"
	"github.com/kingrea/autoloader/internal/registry"
	"github.com/kingrea/autoloader/internal/tui"
	"github.com/kingrea/autoloader/internal/watch"
)

func (a *app) newWaitCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "wait",
		Short: "Block until dependencies are installed, then load them",
		Long: `wait watches the manifest candidates and loads the manifest as soon as
one appears, for example while "composer install" runs in another terminal.
When the timeout expires it fails exactly like the load command.`,
		Args: usageArgs(cobra.NoArgs),
		RunE: a.runWait,
	}
	cmd.Flags().Duration("timeout", 0, "Give up after this long (default from settings, 0 in settings means no limit)")
	cmd.Flags().Bool("no-tui", false, "Print plain progress lines instead of the spinner")
	return cmd
}

func (a *app) runWait(cmd *cobra.Command, _ []string) error {
	timeout := a.cfg.Settings.Wait.Timeout
	if cmd.Flags().Changed("timeout") {
		timeout, _ = cmd.Flags().GetDuration("timeout")
	}
	noTUI, _ := cmd.Flags().GetBool("no-tui")

	loc, err := bootstrap.NewLocator(a.cfg, registry.New(), a.logger)
	if err != nil {
		return err
	}
	paths := loc.Paths()

	ctx := cmd.Context()
	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}
	waitFn := func(ctx context.Context) (string, error) {
		return watch.Wait(ctx, paths, watch.Options{
			Rescan: a.cfg.Settings.Wait.Rescan,
			Logger: a.logger,
		})
	}

	started := time.Now()
	var waitErr error
	if !noTUI && interactive(cmd.ErrOrStderr()) {
		waitErr = a.waitWithTUI(ctx, cmd, paths, waitFn)
	} else {
		fmt.Fprintf(cmd.ErrOrStderr(), "waiting for %d manifest candidates under %s\n", len(paths), loc.BaseDir())
		var found string
		found, waitErr = waitFn(ctx)
		if waitErr == nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "found %s\n", found)
		}
	}
	switch {
	case waitErr == nil:
	case errors.Is(waitErr, context.DeadlineExceeded):
		// Fall through to a normal load, which reports "not installed".
		a.logger.Debug("wait timed out", zap.Duration("timeout", timeout))
	case errors.Is(waitErr, context.Canceled):
		return &exitError{code: 130, msg: "interrupted"}
	default:
		return waitErr
	}
	a.logger.Debug("wait finished", zap.Duration("elapsed", time.Since(started)))
	return a.runLoad(cmd, nil)
}

func (a *app) waitWithTUI(ctx context.Context, cmd *cobra.Command, paths []string, waitFn tui.WaitFunc) error {
	model := tui.NewWaitModel(ctx, paths, waitFn)
	program := tea.NewProgram(model, tea.WithOutput(cmd.ErrOrStderr()), tea.WithContext(ctx))
	final, err := program.Run()
	if err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		return fmt.Errorf("wait: run ui: %w", err)
	}
	if m, ok := final.(tui.WaitModel); ok && m.Err() == nil && m.Found() != "" {
		return nil
	}
	if m, ok := final.(tui.WaitModel); ok && m.Err() != nil {
		return m.Err()
	}
	if ctxErr := ctx.Err(); ctxErr != nil {
		return ctxErr
	}
	return context.Canceled
}
