// Package testsupport provides shared fixtures for dashstitch tests:
// temp-dir seeded configs, clip files, and a fake media engine.
package testsupport

import (
	"os"
	"path/filepath"
	"testing"

	"dashstitch/internal/config"
)

// NewConfig produces a config seeded with unique temp directories per
// test. The journal is disabled by default; tests that exercise it
// enable it explicitly.
func NewConfig(t testing.TB) *config.Config {
	t.Helper()

	base := t.TempDir()
	cfg := config.Default()
	cfg.Paths.LogDir = filepath.Join(base, "logs")
	cfg.Journal.Enabled = false
	cfg.Journal.Path = filepath.Join(base, "logs", "history.db")
	return &cfg
}

// WriteClip creates a small placeholder clip file under dir and returns
// its path.
func WriteClip(t testing.TB, dir, name string) string {
	t.Helper()

	path := filepath.Join(dir, name)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir for %s: %v", path, err)
	}
	if err := os.WriteFile(path, []byte("clip-bytes"), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
	return path
}
