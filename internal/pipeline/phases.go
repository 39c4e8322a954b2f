package pipeline

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"sync"

	"dashstitch/internal/catalog"
	"dashstitch/internal/logging"
	"dashstitch/internal/media/ffprobe"
	"dashstitch/internal/merge"
	"dashstitch/internal/planner"
)

// probePhase inspects every source concurrently and returns the probe
// results keyed by path, plus the per-path failures. A failed probe is
// recorded and skipped; the groups that reference it fail later at plan
// time with a diagnostic naming the source.
func (c *Coordinator) probePhase(ctx context.Context, logger *slog.Logger, sources []string) (map[string]ffprobe.Result, map[string]error) {
	var mu sync.Mutex
	probes := make(map[string]ffprobe.Result, len(sources))
	failures := make(map[string]error)

	jobs := make(chan string)
	var wg sync.WaitGroup
	for i := 0; i < c.cfg.Workers.Probe; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for path := range jobs {
				result, err := c.engine.Probe(ctx, path)
				mu.Lock()
				if err != nil {
					failures[path] = err
					fmt.Fprintf(c.out, "probe %s failed: %v\n", path, err)
					logger.Error("probe failed", logging.String("path", path), logging.Error(err))
				} else {
					probes[path] = result
				}
				mu.Unlock()
			}
		}()
	}

	for _, path := range sources {
		jobs <- path
	}
	close(jobs)
	wg.Wait()

	return probes, failures
}

// mergePhase plans and executes every group under the merge worker
// bound. Results land in a slot per group, indexed by group position,
// so no job can clobber another's outcome. Completion order follows
// whichever engine call returns first; the countdown reflects that.
func (c *Coordinator) mergePhase(ctx context.Context, logger *slog.Logger, groups []catalog.Group, probes map[string]ffprobe.Result) []merge.Result {
	fmt.Fprintf(c.out, "queued %d merges\n", len(groups))

	results := make([]merge.Result, len(groups))
	remaining := len(groups)
	var mu sync.Mutex

	jobs := make(chan int)
	var wg sync.WaitGroup
	for i := 0; i < c.cfg.Workers.Merge; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for idx := range jobs {
				group := groups[idx]
				results[idx] = c.runJob(ctx, logger, group, probes)

				mu.Lock()
				remaining--
				c.report(results[idx])
				fmt.Fprintf(c.out, "%d of %d remain\n", remaining, len(groups))
				mu.Unlock()
			}
		}()
	}

	for idx := range groups {
		jobs <- idx
	}
	close(jobs)
	wg.Wait()

	return results
}

func (c *Coordinator) runJob(ctx context.Context, logger *slog.Logger, group catalog.Group, probes map[string]ffprobe.Result) merge.Result {
	plan, err := planner.Build(group, probes)
	if err != nil {
		logger.Error("plan failed",
			logging.String("output", group.OutputPath),
			logging.Error(err))
		return merge.Result{
			OutputPath: group.OutputPath,
			Sources:    len(group.Sources),
			Err:        fmt.Errorf("plan %s: %w", group.OutputPath, err),
		}
	}

	fmt.Fprintf(c.out, "starting %s bit_rate=%d from %d videos\n",
		plan.OutputPath, plan.BitRate, len(plan.Segments))
	logger.Info("merge started",
		logging.String("output", plan.OutputPath),
		logging.Int64("bit_rate", plan.BitRate),
		logging.Int("sources", len(plan.Segments)))

	result := merge.Execute(ctx, c.engine, plan, c.cfg.Encode)
	if result.Succeeded() {
		logger.Info("merge finished",
			logging.String("output", result.OutputPath),
			logging.Duration("elapsed", result.Elapsed))
	} else {
		logger.Error("merge failed",
			logging.String("output", result.OutputPath),
			logging.Error(result.Err))
	}
	return result
}

// report prints one job's outcome in the line-oriented protocol.
// Callers hold the print lock so multi-line diagnostics stay together.
func (c *Coordinator) report(result merge.Result) {
	if result.Succeeded() {
		fmt.Fprintf(c.out, "done %s\n", result.OutputPath)
	} else {
		fmt.Fprintf(c.out, "%s failed: %v\n", result.OutputPath, result.Err)
	}
	writeDiagnostic(c.out, result.OutputPath+" stdout", result.Stdout)
	writeDiagnostic(c.out, result.OutputPath+" stderr", result.Stderr)
}

// writeDiagnostic prints captured engine output, title first, each line
// indented so it reads as one block under the status line.
func writeDiagnostic(w io.Writer, title, text string) {
	text = strings.TrimRight(text, "\n")
	if text == "" {
		return
	}
	fmt.Fprintln(w, title)
	for _, line := range strings.Split(text, "\n") {
		fmt.Fprintf(w, "\t%s\n", line)
	}
}
