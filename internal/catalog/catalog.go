// Package catalog discovers source clips and buckets them into merge
// groups, one group per camera per hour.
package catalog

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"

	"dashstitch/internal/naming"
)

// Group is all source clips destined for one merged hourly output.
// Sources are sorted by path; the upstream naming convention makes path
// order chronological within the hour. A group is built once and never
// mutated afterwards.
type Group struct {
	OutputPath string
	Sources    []string
}

// Scan walks srcRoot, classifies every file name, and partitions the
// clips by output path under destRoot. Non-clip files are skipped
// silently. Groups whose output already exists are dropped entirely;
// skip-if-exists is the pipeline's only resume mechanism. Scan is pure
// discovery: it creates nothing under destRoot.
func Scan(srcRoot, destRoot string) ([]Group, error) {
	byOutput := make(map[string][]string)
	outputExists := make(map[string]bool)

	err := filepath.WalkDir(srcRoot, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}

		clip, ok := naming.ParseClipName(d.Name())
		if !ok {
			return nil
		}

		outputPath := naming.OutputPath(destRoot, clip.Kind, clip.CapturedAt)
		exists, seen := outputExists[outputPath]
		if !seen {
			_, statErr := os.Stat(outputPath)
			exists = statErr == nil
			outputExists[outputPath] = exists
		}
		if exists {
			return nil
		}

		byOutput[outputPath] = append(byOutput[outputPath], path)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("scan %q: %w", srcRoot, err)
	}

	groups := make([]Group, 0, len(byOutput))
	for outputPath, sources := range byOutput {
		sort.Strings(sources)
		groups = append(groups, Group{OutputPath: outputPath, Sources: sources})
	}
	sort.Slice(groups, func(i, j int) bool {
		return groups[i].OutputPath < groups[j].OutputPath
	})
	return groups, nil
}

// SourceUnion returns every distinct source path referenced by the
// groups, sorted. Each clip classifies into exactly one group, but the
// probe phase treats the union as a set regardless.
func SourceUnion(groups []Group) []string {
	seen := make(map[string]struct{})
	var paths []string
	for _, group := range groups {
		for _, src := range group.Sources {
			if _, ok := seen[src]; ok {
				continue
			}
			seen[src] = struct{}{}
			paths = append(paths, src)
		}
	}
	sort.Strings(paths)
	return paths
}
