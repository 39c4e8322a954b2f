package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"dashstitch/internal/config"
	"dashstitch/internal/deps"
	"dashstitch/internal/engine"
	"dashstitch/internal/journal"
	"dashstitch/internal/logging"
	"dashstitch/internal/pipeline"
	"dashstitch/internal/runlock"
)

func newMergeCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "merge SOURCE DESTINATION",
		Short: "Merge clips under SOURCE into hourly videos under DESTINATION",
		Long: `Merge scans SOURCE recursively for dashcam clips named
{YYYYMMDD}_{HHMMSS}_{tag}.mp4, groups them per camera and per hour, and
encodes each group into DESTINATION/{date}/{front|rear}/{date}-{hour}.mp4.
Groups whose output file already exists are skipped, so an interrupted
run can simply be repeated.

Individual probe or merge failures are reported and never abort the
run; merge always exits successfully once it has started.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runMerge(cmd, ctx, args[0], args[1])
		},
	}
}

func runMerge(cmd *cobra.Command, ctx *commandContext, srcArg, destArg string) error {
	cfg, err := ctx.ensureConfig()
	if err != nil {
		return err
	}

	srcRoot, err := config.ExpandPath(srcArg)
	if err != nil {
		return fmt.Errorf("resolve source path: %w", err)
	}
	destRoot, err := config.ExpandPath(destArg)
	if err != nil {
		return fmt.Errorf("resolve destination path: %w", err)
	}

	logger, err := logging.NewFromConfig(cfg)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}

	out := cmd.OutOrStdout()
	errOut := cmd.ErrOrStderr()
	for _, status := range deps.Missing(deps.Check(deps.Required(cfg))) {
		fmt.Fprintf(errOut, "warn: %s unavailable: %s\n", status.Name, status.Detail)
	}

	lock, err := runlock.Acquire(destRoot)
	if err != nil {
		return err
	}
	defer func() {
		if releaseErr := lock.Release(); releaseErr != nil {
			logger.Warn("release destination lock", logging.Error(releaseErr))
		}
	}()

	opts := []pipeline.Option{
		pipeline.WithLogger(logger),
		pipeline.WithOutput(out),
	}
	if cfg.Journal.Enabled {
		store, openErr := journal.Open(cfg.Journal.Path)
		if openErr != nil {
			fmt.Fprintf(errOut, "warn: run history unavailable: %v\n", openErr)
		} else {
			defer store.Close()
			opts = append(opts, pipeline.WithJournal(store))
		}
	}

	eng := engine.NewFFmpeg(
		engine.WithFFmpegBinary(cfg.Encode.FFmpegBinary),
		engine.WithFFprobeBinary(cfg.Encode.FFprobeBinary),
	)

	summary, err := pipeline.New(cfg, eng, opts...).Run(cmd.Context(), srcRoot, destRoot)
	if err != nil {
		return fmt.Errorf("scan %s: %w", srcRoot, err)
	}
	if summary.Groups > 0 {
		renderSummary(out, summary)
	}
	return nil
}

// renderSummary prints the per-group outcome. Interactive terminals get
// a table; everything else gets plain lines that stay grep-friendly in
// cron mail and log files.
func renderSummary(out io.Writer, summary pipeline.Summary) {
	elapsed := summary.FinishedAt.Sub(summary.StartedAt).Round(time.Millisecond)
	fmt.Fprintf(out, "merged %d of %d groups in %s\n", summary.Succeeded, summary.Groups, elapsed)

	if !writerIsTerminal(out) {
		for _, result := range summary.Results {
			status := "done"
			if !result.Succeeded() {
				status = "failed"
			}
			fmt.Fprintf(out, "%s %s sources=%d elapsed=%s\n",
				status, result.OutputPath, result.Sources, result.Elapsed.Round(time.Millisecond))
		}
		return
	}

	rows := make([][]string, 0, len(summary.Results))
	for _, result := range summary.Results {
		status := "done"
		if !result.Succeeded() {
			status = "failed"
		}
		rows = append(rows, []string{
			filepath.Base(result.OutputPath),
			fmt.Sprintf("%d", result.Sources),
			status,
			result.Elapsed.Round(time.Millisecond).String(),
		})
	}
	fmt.Fprintln(out, renderTable(
		[]string{"Output", "Sources", "Status", "Elapsed"},
		rows,
		[]columnAlignment{alignLeft, alignRight, alignLeft, alignRight},
	))
}

func writerIsTerminal(w io.Writer) bool {
	file, ok := w.(*os.File)
	return ok && (isatty.IsTerminal(file.Fd()) || isatty.IsCygwinTerminal(file.Fd()))
}
