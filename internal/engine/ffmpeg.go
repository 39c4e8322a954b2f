package engine

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strconv"
	"strings"

	"dashstitch/internal/media/ffprobe"
)

var commandContext = exec.CommandContext

// Option configures the ffmpeg-backed engine.
type Option func(*FFmpeg)

// WithFFmpegBinary overrides the default ffmpeg binary name.
func WithFFmpegBinary(binary string) Option {
	return func(e *FFmpeg) {
		if binary != "" {
			e.ffmpegBinary = binary
		}
	}
}

// WithFFprobeBinary overrides the default ffprobe binary name.
func WithFFprobeBinary(binary string) Option {
	return func(e *FFmpeg) {
		if binary != "" {
			e.ffprobeBinary = binary
		}
	}
}

// FFmpeg drives the ffmpeg and ffprobe command-line tools.
type FFmpeg struct {
	ffmpegBinary  string
	ffprobeBinary string
}

// NewFFmpeg constructs an ffmpeg engine using defaults.
func NewFFmpeg(opts ...Option) *FFmpeg {
	eng := &FFmpeg{ffmpegBinary: "ffmpeg", ffprobeBinary: "ffprobe"}
	for _, opt := range opts {
		opt(eng)
	}
	return eng
}

// Probe inspects a single clip.
func (e *FFmpeg) Probe(ctx context.Context, path string) (ffprobe.Result, error) {
	return ffprobe.Inspect(ctx, e.ffprobeBinary, path)
}

// Transcode runs one concatenate-and-encode job. Both output channels
// are returned regardless of outcome; on failure the error also carries
// them for callers that only keep the error.
func (e *FFmpeg) Transcode(ctx context.Context, req Request) (string, string, error) {
	if len(req.Segments) == 0 {
		return "", "", errors.New("transcode: no segments")
	}
	if req.Output.Path == "" {
		return "", "", errors.New("transcode: no output path")
	}

	args := transcodeArgs(req)
	cmd := commandContext(ctx, e.ffmpegBinary, args...)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return stdout.String(), stderr.String(), &Error{
			Err:    fmt.Errorf("%s: %w", e.ffmpegBinary, err),
			Stdout: stdout.String(),
			Stderr: stderr.String(),
		}
	}
	return stdout.String(), stderr.String(), nil
}

// transcodeArgs builds the full ffmpeg invocation for a request.
//
// Inputs are laid out as all file inputs first, in segment order, then
// one lavfi anullsrc input per silent segment. The filter graph
// interleaves one video and one audio reference per segment into a
// single concat node, keeping strict 1:1 stream pairing.
func transcodeArgs(req Request) []string {
	args := []string{"-hide_banner", "-loglevel", "error", "-y"}

	for _, seg := range req.Segments {
		args = append(args, "-i", seg.Path)
	}

	silentIndex := len(req.Segments)
	silentInputs := make(map[int]int)
	for i, seg := range req.Segments {
		if !seg.SilentAudio {
			continue
		}
		source := fmt.Sprintf("anullsrc=channel_layout=mono:sample_rate=%d:duration=%ss",
			req.Output.SampleRate, formatSeconds(seg.DurationSeconds))
		args = append(args, "-f", "lavfi", "-i", source)
		silentInputs[i] = silentIndex
		silentIndex++
	}

	var filter strings.Builder
	for i, seg := range req.Segments {
		fmt.Fprintf(&filter, "[%d:v:0]", i)
		if seg.SilentAudio {
			fmt.Fprintf(&filter, "[%d:a:0]", silentInputs[i])
		} else {
			fmt.Fprintf(&filter, "[%d:a:0]", i)
		}
	}
	fmt.Fprintf(&filter, "concat=n=%d:v=1:a=1[v][a]", len(req.Segments))

	args = append(args,
		"-filter_complex", filter.String(),
		"-map", "[v]",
		"-map", "[a]",
		"-f", req.Output.Container,
		"-c:v", req.Output.VideoCodec,
		"-b:v", strconv.FormatInt(req.Output.VideoBitRate, 10),
		"-r", strconv.Itoa(req.Output.FrameRate),
		"-c:a", req.Output.AudioCodec,
		"-ac", strconv.Itoa(req.Output.AudioChannels),
		"-b:a", strconv.Itoa(req.Output.AudioBitRate),
		req.Output.Path,
	)
	return args
}

func formatSeconds(seconds float64) string {
	return strconv.FormatFloat(seconds, 'f', -1, 64)
}

var _ Engine = (*FFmpeg)(nil)
