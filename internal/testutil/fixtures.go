package testutil

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"testing"
)

// BuildTree creates the given entries below root. Each entry is a
// slash-separated relative path; entries ending in "/" are directories, all
// others are empty files. Parent directories are created as needed.
func BuildTree(root string, entries ...string) error {
	for _, entry := range entries {
		full := filepath.Join(root, filepath.FromSlash(entry))

		if strings.HasSuffix(entry, "/") {
			if err := os.MkdirAll(full, 0755); err != nil {
				return fmt.Errorf("failed to create directory %s: %w", full, err)
			}
			continue
		}

		if err := os.MkdirAll(filepath.Dir(full), 0755); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", filepath.Dir(full), err)
		}
		if err := os.WriteFile(full, nil, 0644); err != nil {
			return fmt.Errorf("failed to create file %s: %w", full, err)
		}
	}
	return nil
}

// CreateTree creates a temporary directory populated by BuildTree and
// returns its path. The directory is removed when the test finishes.
func CreateTree(t testing.TB, entries ...string) string {
	t.Helper()

	root := t.TempDir()
	if err := BuildTree(root, entries...); err != nil {
		t.Fatalf("Failed to build test tree: %v", err)
	}
	return root
}

// GenerateTestTree creates a regular tree below dir: every directory holds
// filesPerDir files named after names (cycling through the list) and, until
// config.MaxDepth is reached, config.MaxSubdirs subdirectories. It returns
// the number of directories created, including dir itself.
func GenerateTestTree(dir string, depth int, filesPerDir int, names []string, config TestConfig) (int, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return 0, fmt.Errorf("failed to create directory %s: %w", dir, err)
	}

	for i := 0; i < filesPerDir && len(names) > 0; i++ {
		name := names[(depth+i)%len(names)]
		filename := filepath.Join(dir, name)
		if _, err := os.Stat(filename); err == nil {
			filename = filepath.Join(dir, fmt.Sprintf("%d_%s", i, name))
		}
		if err := os.WriteFile(filename, nil, 0644); err != nil {
			return 0, fmt.Errorf("failed to create file %s: %w", filename, err)
		}
	}

	dirs := 1
	if depth >= config.MaxDepth {
		return dirs, nil
	}

	for i := 0; i < config.MaxSubdirs; i++ {
		subdir := filepath.Join(dir, fmt.Sprintf("subdir_%d_%d", depth, i))
		n, err := GenerateTestTree(subdir, depth+1, filesPerDir, names, config)
		if err != nil {
			return 0, err
		}
		dirs += n
	}
	return dirs, nil
}

// FindByWalk is a reference search built on filepath.WalkDir. It returns
// every non-directory path below root whose base name satisfies matches,
// sorted.
func FindByWalk(root string, matches func(name string) bool) ([]string, error) {
	found := make([]string, 0)
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && matches(d.Name()) {
			found = append(found, path)
		}
		return nil
	})
	sort.Strings(found)
	return found, err
}

// CountDirs recursively counts directories below root, including root.
func CountDirs(root string) (int, error) {
	count := 0
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			count++
		}
		return nil
	})
	return count, err
}

// Sorted returns a sorted copy of paths, for comparing unordered results.
func Sorted(paths []string) []string {
	out := make([]string, len(paths))
	copy(out, paths)
	sort.Strings(out)
	return out
}
