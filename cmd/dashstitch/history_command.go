package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"dashstitch/internal/journal"
)

func newHistoryCommand(ctx *commandContext) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "history [RUN_ID]",
		Short: "Show recent merge runs recorded in the journal",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			if !cfg.Journal.Enabled {
				return fmt.Errorf("run history is disabled; enable [journal] in %s", ctx.configPath)
			}

			store, err := journal.Open(cfg.Journal.Path)
			if err != nil {
				return fmt.Errorf("open run history: %w", err)
			}
			defer store.Close()

			if len(args) == 1 {
				return printRunJobs(cmd, store, args[0])
			}
			return printRecentRuns(cmd, store, limit)
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 20, "Maximum number of runs to show")
	return cmd
}

func printRecentRuns(cmd *cobra.Command, store *journal.Store, limit int) error {
	runs, err := store.RecentRuns(cmd.Context(), limit)
	if err != nil {
		return fmt.Errorf("read run history: %w", err)
	}
	out := cmd.OutOrStdout()
	if len(runs) == 0 {
		fmt.Fprintln(out, "no runs recorded yet")
		return nil
	}

	rows := make([][]string, 0, len(runs))
	for _, run := range runs {
		rows = append(rows, []string{
			run.ID,
			run.StartedAt.Local().Format("2006-01-02 15:04:05"),
			run.FinishedAt.Sub(run.StartedAt).Round(time.Second).String(),
			fmt.Sprintf("%d", run.Groups),
			fmt.Sprintf("%d", run.Succeeded),
			fmt.Sprintf("%d", run.Failed),
			run.SourceRoot,
			run.DestRoot,
		})
	}
	fmt.Fprintln(out, renderTable(
		[]string{"Run", "Started", "Elapsed", "Groups", "Done", "Failed", "Source", "Destination"},
		rows,
		[]columnAlignment{alignLeft, alignLeft, alignRight, alignRight, alignRight, alignRight, alignLeft, alignLeft},
	))
	return nil
}

func printRunJobs(cmd *cobra.Command, store *journal.Store, runID string) error {
	jobs, err := store.RunJobs(cmd.Context(), runID)
	if err != nil {
		return fmt.Errorf("read run %s: %w", runID, err)
	}
	out := cmd.OutOrStdout()
	if len(jobs) == 0 {
		fmt.Fprintf(out, "no jobs recorded for run %s\n", runID)
		return nil
	}

	rows := make([][]string, 0, len(jobs))
	for _, job := range jobs {
		rows = append(rows, []string{
			job.OutputPath,
			fmt.Sprintf("%d", job.Sources),
			job.Status,
			job.Detail,
		})
	}
	fmt.Fprintln(out, renderTable(
		[]string{"Output", "Sources", "Status", "Detail"},
		rows,
		[]columnAlignment{alignLeft, alignRight, alignLeft, alignLeft},
	))
	return nil
}
