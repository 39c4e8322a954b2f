package fileutil

import (
	"fmt"
	"os"
	"path/filepath"
)

// PartialPath returns the temporary sibling a merge job writes before
// publishing, e.g. "20240813-09.mp4" -> "20240813-09.mp4.partial.mp4".
// Keeping the container extension lets the media engine pick the muxer
// from the name.
func PartialPath(outputPath string) string {
	return outputPath + ".partial" + filepath.Ext(outputPath)
}

// EnsureParentDir creates the directory that will hold path.
func EnsureParentDir(path string) error {
	dir := filepath.Dir(path)
	if dir == "." || dir == "" {
		return nil
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create directory %q: %w", dir, err)
	}
	return nil
}

// Publish atomically moves the finished partial file into its final
// position. Readers of the final path see either nothing or a complete
// file, never a half-written one.
func Publish(partialPath, outputPath string) error {
	if err := os.Rename(partialPath, outputPath); err != nil {
		return fmt.Errorf("publish %q: %w", outputPath, err)
	}
	return nil
}
