package testsupport

import (
	"context"
	"fmt"
	"os"
	"sync"

	"dashstitch/internal/engine"
	"dashstitch/internal/media/ffprobe"
)

// FakeEngine is an in-memory engine.Engine. Probe results are served
// from a map; Transcode writes a placeholder file at the requested
// output path unless the path is marked as failing. All methods are
// safe for concurrent use.
type FakeEngine struct {
	mu sync.Mutex

	ProbeResults map[string]ffprobe.Result
	ProbeErrors  map[string]error

	// FailOutputs maps output paths to the stderr text their transcode
	// failure should carry.
	FailOutputs map[string]string

	TranscodeRequests []engine.Request
}

// NewFakeEngine returns an empty fake ready to be populated.
func NewFakeEngine() *FakeEngine {
	return &FakeEngine{
		ProbeResults: make(map[string]ffprobe.Result),
		ProbeErrors:  make(map[string]error),
		FailOutputs:  make(map[string]string),
	}
}

// AddClip registers a probe result describing a clip with a video
// stream and, optionally, an audio stream.
func (f *FakeEngine) AddClip(path string, bitRate int64, duration float64, withAudio bool) {
	f.mu.Lock()
	defer f.mu.Unlock()

	streams := []ffprobe.Stream{{
		CodecType: "video",
		CodecName: "h264",
		BitRate:   fmt.Sprintf("%d", bitRate),
		Duration:  fmt.Sprintf("%g", duration),
	}}
	if withAudio {
		streams = append(streams, ffprobe.Stream{CodecType: "audio", CodecName: "aac", Channels: 1})
	}
	f.ProbeResults[path] = ffprobe.Result{
		Streams: streams,
		Format:  ffprobe.Format{Duration: fmt.Sprintf("%g", duration)},
	}
}

func (f *FakeEngine) Probe(_ context.Context, path string) (ffprobe.Result, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if err, ok := f.ProbeErrors[path]; ok {
		return ffprobe.Result{}, err
	}
	if result, ok := f.ProbeResults[path]; ok {
		return result, nil
	}
	return ffprobe.Result{}, fmt.Errorf("fake engine: unknown clip %s", path)
}

func (f *FakeEngine) Transcode(_ context.Context, req engine.Request) (string, string, error) {
	f.mu.Lock()
	f.TranscodeRequests = append(f.TranscodeRequests, req)
	stderr, fail := f.failureFor(req.Output.Path)
	f.mu.Unlock()

	if fail {
		return "", stderr, &engine.Error{
			Err:    fmt.Errorf("fake engine: transcode to %s failed", req.Output.Path),
			Stderr: stderr,
		}
	}

	if err := os.WriteFile(req.Output.Path, []byte("merged"), 0o644); err != nil {
		return "", "", err
	}
	return "frame=1 fps=0.0", "", nil
}

// failureFor matches both the partial path and the final path so tests
// can key failures on whichever they find natural.
func (f *FakeEngine) failureFor(outputPath string) (string, bool) {
	for path, stderr := range f.FailOutputs {
		if path == outputPath || outputPath == path+".partial.mp4" {
			return stderr, true
		}
	}
	return "", false
}

var _ engine.Engine = (*FakeEngine)(nil)
