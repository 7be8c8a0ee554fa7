package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kingrea/autoloader/internal/bootstrap"
	"github.com/kingrea/autoloader/internal/registry"
	"github.com/kingrea/autoloader/internal/tui"
)

func (a *app) newStatusCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show which manifest candidate would be loaded",
		Args:  usageArgs(cobra.NoArgs),
		RunE:  a.runStatus,
	}
	cmd.Flags().Bool("json", false, "Output as JSON")
	return cmd
}

type candidateStatus struct {
	Candidate string `json:"candidate"`
	Path      string `json:"path"`
	Exists    bool   `json:"exists"`
	State     string `json:"state"`
}

func (a *app) runStatus(cmd *cobra.Command, _ []string) error {
	asJSON, _ := cmd.Flags().GetBool("json")
	loc, err := bootstrap.NewLocator(a.cfg, registry.New(), a.logger)
	if err != nil {
		return err
	}
	statuses := loc.Inspect()
	labels := tui.CandidateLabels(statuses)
	out := cmd.OutOrStdout()

	if asJSON {
		rows := make([]candidateStatus, len(statuses))
		for i, s := range statuses {
			rows[i] = candidateStatus{Candidate: s.Candidate, Path: s.Path, Exists: s.Exists, State: labels[i]}
		}
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		if err := enc.Encode(rows); err != nil {
			return err
		}
	} else {
		fmt.Fprintln(out, tui.RenderStatus(loc.BaseDir(), statuses))
	}

	for _, label := range labels {
		if label == tui.LabelSelected {
			return nil
		}
	}
	return &exitError{code: 1}
}
