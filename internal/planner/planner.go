// Package planner turns a probed merge group into a concrete encode
// plan for the media engine.
package planner

import (
	"errors"
	"fmt"

	"dashstitch/internal/catalog"
	"dashstitch/internal/engine"
	"dashstitch/internal/media/ffprobe"
)

var (
	// ErrSourceNotProbed marks a group that references a clip whose
	// probe failed or never ran. The probe phase records the original
	// failure; this error keeps the merge phase from touching the group.
	ErrSourceNotProbed = errors.New("source clip has no probe result")

	// ErrNoVideoStream marks a clip with no usable video stream. Audio
	// is optional, video is not.
	ErrNoVideoStream = errors.New("no video stream in source clip")
)

// Plan is the finished encode specification for one output file:
// segments in group order and the chosen target bit rate.
type Plan struct {
	OutputPath string
	BitRate    int64
	Segments   []engine.Segment
}

// Build assembles the plan for one group. Every source contributes
// exactly one video and one audio reference: clips without sound get a
// synthetic silent track sized to their video duration, preserving
// strict 1:1 interleaving through the concatenation.
//
// The target bit rate is the maximum across the group's video streams,
// never an average, so the highest-quality segment is not degraded.
func Build(group catalog.Group, probes map[string]ffprobe.Result) (Plan, error) {
	plan := Plan{
		OutputPath: group.OutputPath,
		Segments:   make([]engine.Segment, 0, len(group.Sources)),
	}

	for _, src := range group.Sources {
		probe, ok := probes[src]
		if !ok {
			return Plan{}, fmt.Errorf("%w: %s", ErrSourceNotProbed, src)
		}

		video := probe.VideoStream()
		if video == nil {
			return Plan{}, fmt.Errorf("%w: %s", ErrNoVideoStream, src)
		}

		if bitRate := videoBitRate(probe, video); bitRate > plan.BitRate {
			plan.BitRate = bitRate
		}

		segment := engine.Segment{Path: src}
		if probe.AudioStream() == nil {
			segment.SilentAudio = true
			segment.DurationSeconds = videoDuration(probe, video)
		}
		plan.Segments = append(plan.Segments, segment)
	}

	return plan, nil
}

// videoBitRate prefers the stream's own value and falls back to the
// container bit rate, which dashcam firmware sometimes reports instead.
func videoBitRate(probe ffprobe.Result, video *ffprobe.Stream) int64 {
	if rate := video.BitRateBPS(); rate > 0 {
		return rate
	}
	return probe.BitRate()
}

func videoDuration(probe ffprobe.Result, video *ffprobe.Stream) float64 {
	if dur := video.DurationSeconds(); dur > 0 {
		return dur
	}
	return probe.DurationSeconds()
}
