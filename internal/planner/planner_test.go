package planner

import (
	"errors"
	"strings"
	"testing"

	"dashstitch/internal/catalog"
	"dashstitch/internal/media/ffprobe"
)

func probeWithAudio(bitRate, duration string) ffprobe.Result {
	return ffprobe.Result{
		Streams: []ffprobe.Stream{
			{CodecType: "video", BitRate: bitRate, Duration: duration},
			{CodecType: "audio", Channels: 1},
		},
	}
}

func probeVideoOnly(bitRate, duration string) ffprobe.Result {
	return ffprobe.Result{
		Streams: []ffprobe.Stream{
			{CodecType: "video", BitRate: bitRate, Duration: duration},
		},
	}
}

func TestBuildMixedAudioGroup(t *testing.T) {
	// Two front-camera clips in the same hour: one with audio at
	// 1.5 Mb/s, one silent at 2.5 Mb/s lasting 45 seconds.
	group := catalog.Group{
		OutputPath: "/dst/20240813/front/20240813-09.mp4",
		Sources:    []string{"/src/a.mp4", "/src/b.mp4"},
	}
	probes := map[string]ffprobe.Result{
		"/src/a.mp4": probeWithAudio("1500000", "60"),
		"/src/b.mp4": probeVideoOnly("2500000", "45"),
	}

	plan, err := Build(group, probes)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}

	if plan.BitRate != 2_500_000 {
		t.Errorf("bit rate = %d, want max 2500000", plan.BitRate)
	}
	if len(plan.Segments) != 2 {
		t.Fatalf("segments = %d, want 2", len(plan.Segments))
	}
	if plan.Segments[0].SilentAudio {
		t.Error("first segment has native audio, must not be silent")
	}
	if !plan.Segments[1].SilentAudio {
		t.Error("second segment lacks audio, must be silent")
	}
	if plan.Segments[1].DurationSeconds != 45 {
		t.Errorf("silent duration = %v, want 45", plan.Segments[1].DurationSeconds)
	}
	if plan.Segments[0].Path != "/src/a.mp4" || plan.Segments[1].Path != "/src/b.mp4" {
		t.Errorf("segment order lost: %+v", plan.Segments)
	}
}

func TestBuildOneAudioRefPerSource(t *testing.T) {
	group := catalog.Group{
		OutputPath: "/dst/out.mp4",
		Sources:    []string{"/s/1.mp4", "/s/2.mp4", "/s/3.mp4", "/s/4.mp4"},
	}
	probes := map[string]ffprobe.Result{
		"/s/1.mp4": probeVideoOnly("1000", "10"),
		"/s/2.mp4": probeWithAudio("1000", "10"),
		"/s/3.mp4": probeVideoOnly("1000", "10"),
		"/s/4.mp4": probeWithAudio("1000", "10"),
	}

	plan, err := Build(group, probes)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}

	// N sources, M without audio: N segments total, M synthetic.
	if len(plan.Segments) != 4 {
		t.Fatalf("segments = %d, want 4", len(plan.Segments))
	}
	silent := 0
	for _, seg := range plan.Segments {
		if seg.SilentAudio {
			silent++
		}
	}
	if silent != 2 {
		t.Fatalf("silent segments = %d, want 2", silent)
	}
}

func TestBuildBitRateIsMaxNotSum(t *testing.T) {
	group := catalog.Group{
		OutputPath: "/dst/out.mp4",
		Sources:    []string{"/s/1.mp4", "/s/2.mp4", "/s/3.mp4"},
	}
	probes := map[string]ffprobe.Result{
		"/s/1.mp4": probeWithAudio("2000000", "60"),
		"/s/2.mp4": probeWithAudio("3000000", "60"),
		"/s/3.mp4": probeWithAudio("1000000", "60"),
	}

	plan, err := Build(group, probes)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if plan.BitRate != 3_000_000 {
		t.Fatalf("bit rate = %d, want 3000000 (max, not sum or average)", plan.BitRate)
	}
}

func TestBuildFallsBackToContainerMetadata(t *testing.T) {
	group := catalog.Group{OutputPath: "/dst/out.mp4", Sources: []string{"/s/1.mp4"}}
	probes := map[string]ffprobe.Result{
		"/s/1.mp4": {
			Streams: []ffprobe.Stream{{CodecType: "video"}},
			Format:  ffprobe.Format{BitRate: "1800000", Duration: "59.9"},
		},
	}

	plan, err := Build(group, probes)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if plan.BitRate != 1_800_000 {
		t.Errorf("bit rate fallback = %d", plan.BitRate)
	}
	if plan.Segments[0].DurationSeconds != 59.9 {
		t.Errorf("duration fallback = %v", plan.Segments[0].DurationSeconds)
	}
}

func TestBuildFailsWhenProbeMissing(t *testing.T) {
	group := catalog.Group{OutputPath: "/dst/out.mp4", Sources: []string{"/s/gone.mp4"}}

	_, err := Build(group, map[string]ffprobe.Result{})
	if !errors.Is(err, ErrSourceNotProbed) {
		t.Fatalf("err = %v, want ErrSourceNotProbed", err)
	}
	if !strings.Contains(err.Error(), "/s/gone.mp4") {
		t.Fatalf("error must name the missing source: %v", err)
	}
}

func TestBuildFailsWithoutVideoStream(t *testing.T) {
	group := catalog.Group{OutputPath: "/dst/out.mp4", Sources: []string{"/s/audio-only.mp4"}}
	probes := map[string]ffprobe.Result{
		"/s/audio-only.mp4": {Streams: []ffprobe.Stream{{CodecType: "audio"}}},
	}

	_, err := Build(group, probes)
	if !errors.Is(err, ErrNoVideoStream) {
		t.Fatalf("err = %v, want ErrNoVideoStream", err)
	}
	if !strings.Contains(err.Error(), "/s/audio-only.mp4") {
		t.Fatalf("error must name the offending source: %v", err)
	}
}
