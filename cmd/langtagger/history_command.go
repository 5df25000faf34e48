package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"langtagger/internal/api"
	"langtagger/internal/state"
)

func newHistoryCommand(ctx *commandContext) *cobra.Command {
	var limit int
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "history [run-id]",
		Short: "List recent passes, or show one run in detail",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			store, err := state.Open(cfg)
			if err != nil {
				return err
			}
			defer store.Close()

			if len(args) == 1 {
				id := strings.TrimSpace(args[0])
				record, err := store.Run(cmd.Context(), id)
				if err != nil {
					return err
				}
				if record == nil {
					return fmt.Errorf("run %q not found", id)
				}
				return printRun(cmd, api.FromRunRecord(*record), asJSON)
			}

			records, err := store.Runs(cmd.Context(), limit)
			if err != nil {
				return err
			}
			runs := api.FromRunRecords(records)
			if asJSON {
				return writeJSON(cmd, api.RunListResponse{Runs: runs})
			}
			out := cmd.OutOrStdout()
			if len(runs) == 0 {
				fmt.Fprintln(out, "No runs recorded")
				return nil
			}
			fmt.Fprint(out, historyTable(runs))
			return nil
		},
	}
	cmd.Flags().IntVarP(&limit, "limit", "n", 20, "Number of runs to list")
	addJSONFlag(cmd, &asJSON)
	return cmd
}

func historyTable(runs []api.Run) string {
	rows := make([][]string, 0, len(runs))
	for _, run := range runs {
		processed := 0
		for _, section := range run.Scopes {
			processed += section.Processed
		}
		rows = append(rows, []string{
			run.ID,
			run.StartedAt,
			run.Scope,
			run.Trigger,
			run.Status,
			fmt.Sprintf("%d", processed),
			formatDurationMS(run.DurationMS),
		})
	}
	return renderTable("",
		[]string{"ID", "Started", "Scope", "Trigger", "Status", "Processed", "Duration"},
		rows,
		[]columnAlignment{alignLeft, alignLeft, alignLeft, alignLeft, alignLeft, alignRight, alignRight},
	)
}
