package main

import (
	"encoding/json"
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/kingrea/autoloader/internal/bootstrap"
	"github.com/kingrea/autoloader/manifest"
)

func (a *app) newListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "Load the manifest and list the definitions it registered",
		Args:  usageArgs(cobra.NoArgs),
		RunE:  a.runList,
	}
	cmd.Flags().Bool("json", false, "Output as JSON")
	return cmd
}

type listedDefinition struct {
	manifest.Definition
	Source string `json:"source"`
}

func (a *app) runList(cmd *cobra.Command, _ []string) error {
	asJSON, _ := cmd.Flags().GetBool("json")
	session, err := bootstrap.Run(cmd.Context(), a.cfg, a.logger)
	if err != nil {
		return err
	}
	entries := session.Registry.Entries()
	out := cmd.OutOrStdout()

	if asJSON {
		rows := make([]listedDefinition, len(entries))
		for i, e := range entries {
			rows[i] = listedDefinition{Definition: e.Definition, Source: e.Path}
		}
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(rows)
	}

	tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tKIND\tVERSION\tSOURCE")
	for _, e := range entries {
		version := e.Definition.Version
		if version == "" {
			version = "-"
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", e.Definition.ID, e.Definition.Kind, version, e.Path)
	}
	return tw.Flush()
}
