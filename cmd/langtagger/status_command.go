package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"langtagger/internal/api"
	"langtagger/internal/deps"
	"langtagger/internal/state"
)

func newStatusCommand(ctx *commandContext) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show daemon, dependency, and last-run status",
		RunE: func(cmd *cobra.Command, args []string) error {
			status, err := collectStatus(cmd.Context(), ctx)
			if err != nil {
				return err
			}
			if asJSON {
				return writeJSON(cmd, status)
			}
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, strings.Join(statusLines(status, shouldColorize(out)), "\n"))
			return nil
		},
	}
	addJSONFlag(cmd, &asJSON)
	return cmd
}

// collectStatus asks the daemon first and falls back to local inspection.
func collectStatus(parent context.Context, ctx *commandContext) (api.DaemonStatus, error) {
	client, err := ctx.apiClient()
	if err != nil {
		return api.DaemonStatus{}, err
	}
	if client.Probe(parent, daemonProbeTimeout) {
		return client.Status(parent)
	}

	cfg, err := ctx.ensureConfig()
	if err != nil {
		return api.DaemonStatus{}, err
	}
	status := api.DaemonStatus{
		Backend:      cfg.Library.Backend,
		DatabasePath: cfg.DatabasePath(),
		LockFilePath: cfg.LockPath(),
		Dependencies: api.FromDependencies(deps.CheckBinaries([]deps.Requirement{
			deps.FFmpegRequirement(cfg.FFmpegBinary()),
		})),
	}
	store, err := state.Open(cfg)
	if err != nil {
		return status, err
	}
	defer store.Close()
	runs, err := store.Runs(parent, 1)
	if err != nil {
		return status, err
	}
	if len(runs) > 0 {
		last := api.FromRunRecord(runs[0])
		status.LastRun = &last
	}
	return status, nil
}

func statusLines(status api.DaemonStatus, colorize bool) []string {
	lines := renderSectionHeader("langtagger", colorize)
	if status.Running {
		lines = append(lines, renderStatusLine("Daemon", statusOK, fmt.Sprintf("Running (pid %d)", status.PID), colorize))
	} else {
		lines = append(lines, renderStatusLine("Daemon", statusInfo, "Not running", colorize))
	}
	lines = append(lines, renderStatusLine("Backend", statusInfo, status.Backend, colorize))
	lines = append(lines, renderStatusLine("Database", statusInfo, status.DatabasePath, colorize))

	switch {
	case status.Current != nil:
		message := fmt.Sprintf("%s %s since %s", status.Current.Operation, status.Current.Scope, status.Current.StartedAt)
		lines = append(lines, renderStatusLine("Current pass", statusWarn, strings.Join(strings.Fields(message), " "), colorize))
	default:
		lines = append(lines, renderStatusLine("Current pass", statusInfo, "Idle", colorize))
	}

	if status.LastRun != nil {
		lines = append(lines, renderStatusLine("Last run", runStatusKind(status.LastRun.Status), lastRunMessage(*status.LastRun), colorize))
	} else {
		lines = append(lines, renderStatusLine("Last run", statusInfo, "None recorded", colorize))
	}
	if status.Schedule != nil {
		message := fmt.Sprintf("%s (%s, full refresh: %s)", status.Schedule.Expression, status.Schedule.Scope, yesNo(status.Schedule.FullRefresh))
		if status.Schedule.Next != "" {
			message += ", next " + status.Schedule.Next
		}
		lines = append(lines, renderStatusLine("Schedule", statusInfo, message, colorize))
	}

	lines = append(lines, "")
	lines = append(lines, renderSectionHeader("Dependencies", colorize)...)
	lines = append(lines, dependencyLines(status.Dependencies, colorize)...)
	return lines
}

func lastRunMessage(run api.Run) string {
	message := fmt.Sprintf("%s %s at %s", run.Scope, run.Status, run.StartedAt)
	if run.Error != "" {
		message += ": " + run.Error
	}
	return message
}

func runStatusKind(status string) statusKind {
	switch state.RunStatus(status) {
	case state.RunCompleted:
		return statusOK
	case state.RunCancelled, state.RunRunning:
		return statusWarn
	case state.RunFailed:
		return statusError
	default:
		return statusInfo
	}
}
