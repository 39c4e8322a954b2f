package pipeline

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/google/uuid"

	"dashstitch/internal/catalog"
	"dashstitch/internal/config"
	"dashstitch/internal/engine"
	"dashstitch/internal/journal"
	"dashstitch/internal/logging"
	"dashstitch/internal/merge"
)

// Coordinator drives one run through its phases:
// Discovering -> Probing -> Merging -> Done. Transitions only move
// forward; the probe phase must fully drain before any merge job
// starts because every plan needs the complete probed-metadata set.
type Coordinator struct {
	cfg     *config.Config
	engine  engine.Engine
	logger  *slog.Logger
	journal *journal.Store
	out     io.Writer
}

// Option configures a Coordinator.
type Option func(*Coordinator)

// WithLogger sets the diagnostic logger.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Coordinator) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithJournal enables run-history recording.
func WithJournal(store *journal.Store) Option {
	return func(c *Coordinator) {
		c.journal = store
	}
}

// WithOutput redirects the line-oriented status protocol (default
// stdout).
func WithOutput(w io.Writer) Option {
	return func(c *Coordinator) {
		if w != nil {
			c.out = w
		}
	}
}

// New constructs a Coordinator.
func New(cfg *config.Config, eng engine.Engine, opts ...Option) *Coordinator {
	c := &Coordinator{
		cfg:    cfg,
		engine: eng,
		logger: logging.NewNop(),
		out:    os.Stdout,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Summary aggregates one run's outcome.
type Summary struct {
	RunID         string
	StartedAt     time.Time
	FinishedAt    time.Time
	Groups        int
	SourcesProbed int
	ProbesFailed  int
	Succeeded     int
	Failed        int
	Results       []merge.Result
}

// Run executes the full pipeline for one source/destination pair. The
// returned error covers discovery-level failures only; individual probe
// and merge failures are reported in the Summary and never abort the
// run or their sibling jobs.
func (c *Coordinator) Run(ctx context.Context, srcRoot, destRoot string) (Summary, error) {
	summary := Summary{
		RunID:     uuid.NewString(),
		StartedAt: time.Now(),
	}
	logger := c.logger.With(logging.String("run", summary.RunID))

	groups, err := catalog.Scan(srcRoot, destRoot)
	if err != nil {
		return summary, err
	}
	summary.Groups = len(groups)
	logger.Info("discovery finished",
		logging.Int("groups", len(groups)),
		logging.String("source", srcRoot),
		logging.String("destination", destRoot))

	if len(groups) == 0 {
		fmt.Fprintln(c.out, "nothing to merge")
		summary.FinishedAt = time.Now()
		return summary, nil
	}

	sources := catalog.SourceUnion(groups)
	probes, probeFailures := c.probePhase(ctx, logger, sources)
	summary.SourcesProbed = len(probes)
	summary.ProbesFailed = len(probeFailures)
	fmt.Fprintf(c.out, "probed %d of %d videos\n", len(probes), len(sources))

	summary.Results = c.mergePhase(ctx, logger, groups, probes)
	for _, result := range summary.Results {
		if result.Succeeded() {
			summary.Succeeded++
		} else {
			summary.Failed++
		}
	}
	summary.FinishedAt = time.Now()

	c.record(ctx, logger, srcRoot, destRoot, summary)
	logger.Info("run finished",
		logging.Int("succeeded", summary.Succeeded),
		logging.Int("failed", summary.Failed),
		logging.Duration("elapsed", summary.FinishedAt.Sub(summary.StartedAt)))
	return summary, nil
}

// record writes the run to the journal when one is configured. Journal
// trouble is reported but never fails the run.
func (c *Coordinator) record(ctx context.Context, logger *slog.Logger, srcRoot, destRoot string, summary Summary) {
	if c.journal == nil {
		return
	}

	jobs := make([]journal.Job, 0, len(summary.Results))
	for _, result := range summary.Results {
		job := journal.Job{
			OutputPath: result.OutputPath,
			Sources:    result.Sources,
			Status:     journal.StatusDone,
		}
		if !result.Succeeded() {
			job.Status = journal.StatusFailed
			job.Detail = result.Err.Error()
		}
		jobs = append(jobs, job)
	}

	run := journal.Run{
		ID:         summary.RunID,
		SourceRoot: srcRoot,
		DestRoot:   destRoot,
		StartedAt:  summary.StartedAt,
		FinishedAt: summary.FinishedAt,
		Groups:     summary.Groups,
		Succeeded:  summary.Succeeded,
		Failed:     summary.Failed,
	}
	if err := c.journal.RecordRun(ctx, run, jobs); err != nil {
		logger.Warn("journal write failed", logging.Error(err))
	}
}
