package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kingrea/autoloader/internal/config"
)

func (a *app) newInitCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Write a default .autoloader/config.yaml into the base directory",
		Args:  usageArgs(cobra.NoArgs),
		RunE: func(cmd *cobra.Command, _ []string) error {
			path, err := config.Init(a.cfg.BaseDir)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "settings: %s\n", path)
			return nil
		},
	}
}
