package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"mixfetch/internal/deps"
	"mixfetch/internal/preflight"
)

func newDepsCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "deps",
		Short: "Check that yt-dlp and ffmpeg are available",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			statuses := preflight.CheckSystemDeps(cfg)
			fmt.Fprintln(cmd.OutOrStdout(), renderDepsTable(statuses))
			if missing := missingRequired(statuses); missing > 0 {
				return errors.New("required dependencies missing")
			}
			return nil
		},
	}
}

func renderDepsTable(statuses []deps.Status) string {
	rows := make([][]string, 0, len(statuses))
	for _, status := range statuses {
		state := "Missing"
		detail := status.Detail
		if status.Available {
			state = "Available"
			detail = status.Path
		} else if status.Optional {
			state = "Missing (optional)"
		}
		rows = append(rows, []string{status.Name, status.Command, state, detail})
	}
	return renderTable(
		[]string{"Dependency", "Command", "Status", "Detail"},
		rows,
		[]columnAlignment{alignLeft, alignLeft, alignLeft, alignLeft},
	)
}

func missingRequired(statuses []deps.Status) int {
	count := 0
	for _, status := range statuses {
		if !status.Available && !status.Optional {
			count++
		}
	}
	return count
}
