// Package merge executes planned encode jobs against the media engine
// and publishes finished outputs atomically.
package merge

import (
	"context"
	"fmt"
	"time"

	"dashstitch/internal/config"
	"dashstitch/internal/engine"
	"dashstitch/internal/fileutil"
	"dashstitch/internal/planner"
)

// Result is the outcome of one merge job, successful or not. It exists
// to flow back to the coordinator for reporting and is never persisted
// beyond the run journal.
type Result struct {
	OutputPath string
	Sources    int
	Err        error
	Stdout     string
	Stderr     string
	Elapsed    time.Duration
}

// Succeeded reports whether the output was published.
func (r Result) Succeeded() bool {
	return r.Err == nil
}

// Execute runs one job: create the output's parent directories, hand
// the engine a request targeting the partial sibling path, and rename
// into place on success. A failed engine call leaves the partial file
// behind for inspection and never touches the final path.
func Execute(ctx context.Context, eng engine.Engine, plan planner.Plan, enc config.Encode) Result {
	start := time.Now()
	result := Result{OutputPath: plan.OutputPath, Sources: len(plan.Segments)}

	if err := fileutil.EnsureParentDir(plan.OutputPath); err != nil {
		result.Err = err
		result.Elapsed = time.Since(start)
		return result
	}

	partialPath := fileutil.PartialPath(plan.OutputPath)
	req := engine.Request{
		Segments: plan.Segments,
		Output: engine.Output{
			Path:          partialPath,
			Container:     enc.Container,
			VideoCodec:    enc.VideoCodec,
			VideoBitRate:  plan.BitRate,
			FrameRate:     enc.FrameRate,
			AudioCodec:    enc.AudioCodec,
			AudioChannels: enc.AudioChannels,
			AudioBitRate:  enc.AudioBitRate,
			SampleRate:    enc.SampleRate,
		},
	}

	stdout, stderr, err := eng.Transcode(ctx, req)
	result.Stdout = stdout
	result.Stderr = stderr
	if err != nil {
		result.Err = fmt.Errorf("transcode %s: %w", plan.OutputPath, err)
		result.Elapsed = time.Since(start)
		return result
	}

	if err := fileutil.Publish(partialPath, plan.OutputPath); err != nil {
		result.Err = err
	}
	result.Elapsed = time.Since(start)
	return result
}
