package catalog

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func writeFile(t *testing.T, path string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir %s: %v", path, err)
	}
	if err := os.WriteFile(path, []byte("clip"), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

func TestScanPartitionsByKindAndHour(t *testing.T) {
	src := t.TempDir()
	dst := t.TempDir()

	// Two front clips in hour 09, one front clip in hour 10, one rear
	// clip in hour 09, plus noise that must be ignored.
	writeFile(t, filepath.Join(src, "sub", "20240813_091545_NF.mp4"))
	writeFile(t, filepath.Join(src, "20240813_090000_NF.mp4"))
	writeFile(t, filepath.Join(src, "20240813_100000_NF.mp4"))
	writeFile(t, filepath.Join(src, "20240813_093000_NR.mp4"))
	writeFile(t, filepath.Join(src, "notes.txt"))
	writeFile(t, filepath.Join(src, "sub", "thumbnail.jpg"))

	groups, err := Scan(src, dst)
	if err != nil {
		t.Fatalf("Scan: %v", err)
	}
	if len(groups) != 3 {
		t.Fatalf("expected 3 groups, got %d: %+v", len(groups), groups)
	}

	byOutput := make(map[string][]string)
	for _, g := range groups {
		byOutput[g.OutputPath] = g.Sources
	}

	front09 := filepath.Join(dst, "20240813", "front", "20240813-09.mp4")
	sources, ok := byOutput[front09]
	if !ok {
		t.Fatalf("missing front 09 group, got %v", byOutput)
	}
	wantSources := []string{
		filepath.Join(src, "20240813_090000_NF.mp4"),
		filepath.Join(src, "sub", "20240813_091545_NF.mp4"),
	}
	if !reflect.DeepEqual(sources, wantSources) {
		t.Errorf("front 09 sources = %v, want %v", sources, wantSources)
	}

	rear09 := filepath.Join(dst, "20240813", "rear", "20240813-09.mp4")
	if got := byOutput[rear09]; len(got) != 1 {
		t.Errorf("rear 09 sources = %v", got)
	}

	front10 := filepath.Join(dst, "20240813", "front", "20240813-10.mp4")
	if got := byOutput[front10]; len(got) != 1 {
		t.Errorf("front 10 sources = %v", got)
	}
}

func TestScanEveryClipInExactlyOneGroup(t *testing.T) {
	src := t.TempDir()
	dst := t.TempDir()
	clips := []string{
		"20240813_080000_NF.mp4",
		"20240813_081000_NF.mp4",
		"20240813_080000_NR.mp4",
		"20240814_080000_NF.mp4",
	}
	for _, name := range clips {
		writeFile(t, filepath.Join(src, name))
	}

	groups, err := Scan(src, dst)
	if err != nil {
		t.Fatalf("Scan: %v", err)
	}

	seen := make(map[string]int)
	for _, g := range groups {
		for _, s := range g.Sources {
			seen[s]++
		}
	}
	if len(seen) != len(clips) {
		t.Fatalf("expected %d distinct sources, got %d", len(clips), len(seen))
	}
	for path, count := range seen {
		if count != 1 {
			t.Errorf("%s appears in %d groups", path, count)
		}
	}
}

func TestScanSkipsExistingOutputs(t *testing.T) {
	src := t.TempDir()
	dst := t.TempDir()
	writeFile(t, filepath.Join(src, "20240813_090000_NF.mp4"))
	writeFile(t, filepath.Join(src, "20240813_091000_NF.mp4"))
	writeFile(t, filepath.Join(src, "20240813_100000_NF.mp4"))

	// The hour-09 output already exists; its group must be absent.
	writeFile(t, filepath.Join(dst, "20240813", "front", "20240813-09.mp4"))

	groups, err := Scan(src, dst)
	if err != nil {
		t.Fatalf("Scan: %v", err)
	}
	if len(groups) != 1 {
		t.Fatalf("expected 1 group, got %+v", groups)
	}
	want := filepath.Join(dst, "20240813", "front", "20240813-10.mp4")
	if groups[0].OutputPath != want {
		t.Fatalf("group output = %q, want %q", groups[0].OutputPath, want)
	}
}

func TestScanEmptyTree(t *testing.T) {
	groups, err := Scan(t.TempDir(), t.TempDir())
	if err != nil {
		t.Fatalf("Scan: %v", err)
	}
	if len(groups) != 0 {
		t.Fatalf("expected no groups, got %+v", groups)
	}
}

func TestScanMissingRootFails(t *testing.T) {
	if _, err := Scan(filepath.Join(t.TempDir(), "absent"), t.TempDir()); err == nil {
		t.Fatal("expected error for missing source root")
	}
}

func TestSourceUnion(t *testing.T) {
	groups := []Group{
		{OutputPath: "b", Sources: []string{"/s/2.mp4", "/s/3.mp4"}},
		{OutputPath: "a", Sources: []string{"/s/1.mp4"}},
	}
	got := SourceUnion(groups)
	want := []string{"/s/1.mp4", "/s/2.mp4", "/s/3.mp4"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("SourceUnion = %v, want %v", got, want)
	}
}
