package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"langtagger/internal/logs"
)

const (
	logFollowWait = 2 * time.Second
	logFollowPoll = 250 * time.Millisecond
)

func newLogsCommand(ctx *commandContext) *cobra.Command {
	var (
		lines  int
		follow bool
		filter logs.Filter
	)

	cmd := &cobra.Command{
		Use:   "logs",
		Short: "Show recent log records",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			path := cfg.LogPath()
			if path == "" {
				return fmt.Errorf("file logging is disabled (paths.log_dir is empty)")
			}

			signalCtx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			out := cmd.OutOrStdout()
			result, err := logs.Tail(signalCtx, path, logs.TailOptions{Offset: -1, Limit: lines, Filter: filter})
			if err != nil {
				return err
			}
			for _, record := range result.Records {
				fmt.Fprintln(out, record.Format())
			}
			if !follow {
				return nil
			}

			offset := result.Offset
			for {
				result, err := logs.Tail(signalCtx, path, logs.TailOptions{
					Offset: offset,
					Follow: true,
					Wait:   logFollowWait,
					Filter: filter,
				})
				if err != nil {
					if signalCtx.Err() != nil {
						return nil
					}
					return err
				}
				for _, record := range result.Records {
					fmt.Fprintln(out, record.Format())
				}
				offset = result.Offset
				if len(result.Records) > 0 {
					continue
				}
				// Tail returns at once while the log file does not exist yet.
				select {
				case <-signalCtx.Done():
					return nil
				case <-time.After(logFollowPoll):
				}
			}
		},
	}
	cmd.Flags().IntVarP(&lines, "lines", "n", 50, "Number of records to show")
	cmd.Flags().BoolVarP(&follow, "follow", "f", false, "Keep printing new records")
	cmd.Flags().StringVar(&filter.ScanID, "scan", "", "Only records from this pass")
	cmd.Flags().StringVar(&filter.ItemID, "item", "", "Only records about this library item")
	cmd.Flags().StringVar(&filter.Component, "component", "", "Only records from this component")
	cmd.Flags().StringVar(&filter.MinLevel, "level", "", "Minimum level (debug, info, warn, error)")
	return cmd
}
