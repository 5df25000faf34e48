package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"sort"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"langtagger/internal/api"
	"langtagger/internal/daemon"
	"langtagger/internal/scan"
	"langtagger/internal/services"
)

const daemonProbeTimeout = 500 * time.Millisecond

type passOptions struct {
	local bool
	json  bool
}

func addPassFlags(cmd *cobra.Command, opts *passOptions) {
	cmd.Flags().BoolVar(&opts.local, "local", false, "Run in this process even when a daemon is reachable")
	addJSONFlag(cmd, &opts.json)
}

// runPass executes a pass through the daemon when one answers, otherwise in
// this process. Both paths share the scan lock and run history.
func runPass(
	cmd *cobra.Command,
	ctx *commandContext,
	opts passOptions,
	remote func(context.Context, *api.Client) (api.Run, error),
	local func(context.Context, *scan.Orchestrator) (scan.Report, error),
) error {
	signalCtx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if !opts.local {
		client, err := ctx.apiClient()
		if err != nil {
			return err
		}
		if client.Probe(signalCtx, daemonProbeTimeout) {
			run, err := remote(signalCtx, client)
			if err != nil {
				return err
			}
			return printRun(cmd, run, opts.json)
		}
	}

	rt, err := ctx.openRuntime()
	if err != nil {
		return err
	}
	defer rt.Close()

	passCtx := services.WithTrigger(signalCtx, daemon.TriggerManual)
	report, err := local(passCtx, rt.orch)
	if report.RunID == "" {
		return err
	}
	if printErr := printRun(cmd, api.FromReport(report, daemon.TriggerManual), opts.json); printErr != nil {
		return printErr
	}
	return err
}

func printRun(cmd *cobra.Command, run api.Run, asJSON bool) error {
	if asJSON {
		return writeJSON(cmd, run)
	}
	fmt.Fprint(cmd.OutOrStdout(), formatRun(run))
	return nil
}

func formatRun(run api.Run) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Run %s: %s (%s)\n", run.ID, run.Status, formatDurationMS(run.DurationMS))
	if run.Error != "" {
		fmt.Fprintf(&b, "Error: %s\n", run.Error)
	}
	if len(run.Scopes) == 0 {
		return b.String()
	}
	rows := make([][]string, 0, len(run.Scopes))
	for _, section := range run.Scopes {
		rows = append(rows, []string{
			section.Scope,
			strconv.Itoa(section.Processed),
			strconv.Itoa(section.Total),
			formatOutcomes(section.Outcomes),
		})
	}
	title := run.Scope
	if run.FullRefresh {
		title += " (full refresh)"
	}
	b.WriteString(renderTable(title,
		[]string{"Scope", "Processed", "Total", "Outcomes"},
		rows,
		[]columnAlignment{alignLeft, alignRight, alignRight, alignLeft},
	))
	return b.String()
}

func formatOutcomes(outcomes map[string]int) string {
	if len(outcomes) == 0 {
		return "-"
	}
	keys := make([]string, 0, len(outcomes))
	for key := range outcomes {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, key := range keys {
		parts = append(parts, fmt.Sprintf("%s=%d", key, outcomes[key]))
	}
	return strings.Join(parts, " ")
}

func formatDurationMS(ms int64) string {
	return (time.Duration(ms) * time.Millisecond).Round(time.Millisecond).String()
}

func newScanCommand(ctx *commandContext) *cobra.Command {
	var opts passOptions
	var scopeFlag string
	var full bool

	cmd := &cobra.Command{
		Use:   "scan",
		Short: "Tag library items with audio and subtitle languages",
		Long: "Inspect video files with ffmpeg and tag movies, series, seasons, episodes, and collections " +
			"with the languages found. Scopes: movies, series, collections, externalsubtitles, everything.",
		RunE: func(cmd *cobra.Command, args []string) error {
			scope, err := scan.ParseScope(scopeFlag)
			if err != nil {
				return err
			}
			return runPass(cmd, ctx, opts,
				func(c context.Context, client *api.Client) (api.Run, error) {
					return client.Scan(c, string(scope), full)
				},
				func(c context.Context, orch *scan.Orchestrator) (scan.Report, error) {
					return orch.Scan(c, full, scope)
				},
			)
		},
	}
	cmd.Flags().StringVarP(&scopeFlag, "scope", "s", string(scan.ScopeEverything), "Library section to scan")
	cmd.Flags().BoolVar(&full, "full", false, "Re-inspect items that already carry language tags")
	addPassFlags(cmd, &opts)
	return cmd
}

func newRemoveTagsCommand(ctx *commandContext) *cobra.Command {
	var opts passOptions
	var yes bool

	cmd := &cobra.Command{
		Use:   "remove-tags",
		Short: "Remove every audio and subtitle language tag from the library",
		RunE: func(cmd *cobra.Command, args []string) error {
			if !yes {
				return fmt.Errorf("remove-tags strips language tags from every item; pass --yes to confirm")
			}
			return runPass(cmd, ctx, opts,
				func(c context.Context, client *api.Client) (api.Run, error) {
					return client.RemoveTags(c)
				},
				func(c context.Context, orch *scan.Orchestrator) (scan.Report, error) {
					return orch.RemoveAll(c)
				},
			)
		},
	}
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Confirm tag removal")
	addPassFlags(cmd, &opts)
	return cmd
}

func newNonMediaCommand(ctx *commandContext) *cobra.Command {
	var opts passOptions
	var remove bool

	cmd := &cobra.Command{
		Use:   "non-media",
		Short: "Tag playlists, photos, music, and books with the non-media tag",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPass(cmd, ctx, opts,
				func(c context.Context, client *api.Client) (api.Run, error) {
					return client.NonMedia(c, remove)
				},
				func(c context.Context, orch *scan.Orchestrator) (scan.Report, error) {
					if remove {
						return orch.RemoveNonMedia(c)
					}
					return orch.TagNonMedia(c)
				},
			)
		},
	}
	cmd.Flags().BoolVar(&remove, "remove", false, "Remove the non-media tag instead of adding it")
	addPassFlags(cmd, &opts)
	return cmd
}
