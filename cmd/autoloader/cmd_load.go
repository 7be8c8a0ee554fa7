package main

import (
	"errors"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/kingrea/autoloader/internal/bootstrap"
	"github.com/kingrea/autoloader/locator"
)

func (a *app) newLoadCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "load",
		Short: "Load the first installed manifest (default command)",
		Args:  usageArgs(cobra.NoArgs),
		RunE:  a.runLoad,
	}
}

// runLoad prints nothing on success. A missing manifest surfaces as a
// *locator.ManifestNotFoundError for exitCode to report.
func (a *app) runLoad(cmd *cobra.Command, _ []string) error {
	session, err := bootstrap.Run(cmd.Context(), a.cfg, a.logger)
	if err != nil {
		var notFound *locator.ManifestNotFoundError
		if errors.As(err, &notFound) {
			a.logger.Debug("dependencies not installed", zap.Strings("checked", notFound.Candidates))
		}
		return err
	}
	a.logger.Info("dependencies loaded",
		zap.String("manifest", session.Result.Path),
		zap.Int("definitions", session.Registry.Len()))
	return nil
}
