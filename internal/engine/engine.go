// Package engine abstracts the external media tool that inspects and
// concatenates clips. The pipeline only ever talks to the Engine
// interface; tests substitute a fake, production wires the ffmpeg CLI.
package engine

import (
	"context"

	"dashstitch/internal/media/ffprobe"
)

// Segment is one source clip's contribution to a concatenation: its
// video stream plus either its native audio stream or a synthesized
// silent one sized to the video's duration.
type Segment struct {
	Path            string
	SilentAudio     bool
	DurationSeconds float64
}

// Output describes the encode profile and destination of a job.
type Output struct {
	Path          string
	Container     string
	VideoCodec    string
	VideoBitRate  int64
	FrameRate     int
	AudioCodec    string
	AudioChannels int
	AudioBitRate  int
	// SampleRate applies to synthesized silent audio inputs.
	SampleRate int
}

// Request is a complete declarative concatenate-and-encode job:
// segments in presentation order, one output.
type Request struct {
	Segments []Segment
	Output   Output
}

// Engine is the media tool contract. Transcode returns the tool's
// stdout and stderr verbatim so failures can be reported with full
// diagnostics.
type Engine interface {
	Probe(ctx context.Context, path string) (ffprobe.Result, error)
	Transcode(ctx context.Context, req Request) (stdout, stderr string, err error)
}
