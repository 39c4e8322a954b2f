package naming

import (
	"path/filepath"
	"testing"
	"time"
)

func TestParseClipNameValid(t *testing.T) {
	cases := []struct {
		name string
		kind CameraKind
		when time.Time
	}{
		{"20240813_091545_NF.mp4", KindFront, time.Date(2024, 8, 13, 9, 15, 45, 0, time.UTC)},
		{"20240813_093000_NR.mp4", KindRear, time.Date(2024, 8, 13, 9, 30, 0, 0, time.UTC)},
		{"20231231_235959_EF.mp4", KindFront, time.Date(2023, 12, 31, 23, 59, 59, 0, time.UTC)},
	}

	for _, tc := range cases {
		clip, ok := ParseClipName(tc.name)
		if !ok {
			t.Fatalf("ParseClipName(%q) rejected a valid name", tc.name)
		}
		if clip.Kind != tc.kind {
			t.Errorf("ParseClipName(%q) kind = %s, want %s", tc.name, clip.Kind, tc.kind)
		}
		if !clip.CapturedAt.Equal(tc.when) {
			t.Errorf("ParseClipName(%q) time = %s, want %s", tc.name, clip.CapturedAt, tc.when)
		}
	}
}

func TestParseClipNameRejects(t *testing.T) {
	names := []string{
		"",
		"20240813_091545_NF.avi",
		"20240813_091545_NF",
		"20240813_091545.mp4",
		"20240813_091545_NX.mp4",
		"20240813_091545_.mp4",
		"2024_0813_091545_NF.mp4",
		"not-a-clip.mp4",
		"2024ab13_091545_NF.mp4",
		"20240813_0915_NF.mp4",
		".DS_Store",
		"thumbs.db",
	}
	for _, name := range names {
		if _, ok := ParseClipName(name); ok {
			t.Errorf("ParseClipName(%q) accepted a non-clip name", name)
		}
	}
}

func TestParseClipNameSameHourDifferentKinds(t *testing.T) {
	front, ok := ParseClipName("20240813_090000_NF.mp4")
	if !ok || front.Kind != KindFront {
		t.Fatalf("expected front clip, got %+v ok=%v", front, ok)
	}
	rear, ok := ParseClipName("20240813_093000_NR.mp4")
	if !ok || rear.Kind != KindRear {
		t.Fatalf("expected rear clip, got %+v ok=%v", rear, ok)
	}

	dest := "/archive"
	if OutputPath(dest, front.Kind, front.CapturedAt) == OutputPath(dest, rear.Kind, rear.CapturedAt) {
		t.Fatal("front and rear clips from the same hour must map to different outputs")
	}
}

func TestOutputPath(t *testing.T) {
	captured := time.Date(2024, 8, 13, 9, 15, 45, 0, time.UTC)
	got := OutputPath("/dst", KindFront, captured)
	want := filepath.Join("/dst", "20240813", "front", "20240813-09.mp4")
	if got != want {
		t.Fatalf("OutputPath = %q, want %q", got, want)
	}
}

func TestOutputPathTruncatesToHour(t *testing.T) {
	a := time.Date(2024, 8, 13, 9, 0, 1, 0, time.UTC)
	b := time.Date(2024, 8, 13, 9, 59, 59, 0, time.UTC)
	c := time.Date(2024, 8, 13, 10, 0, 0, 0, time.UTC)

	if OutputPath("/d", KindRear, a) != OutputPath("/d", KindRear, b) {
		t.Error("clips within one hour must share an output path")
	}
	if OutputPath("/d", KindRear, a) == OutputPath("/d", KindRear, c) {
		t.Error("clips in different hours must not share an output path")
	}
}
