package testutil

import (
	"fmt"
	"path"
	"strings"
	"testing"

	"pgregory.net/rapid"
)

// RapidCheck wraps rapid.Check and sets the iteration count from the active
// test intensity via RAPID_CHECKS, which rapid reads on each run.
func RapidCheck(t *testing.T, fn func(*rapid.T)) {
	t.Helper()

	config := GetTestConfig()
	t.Setenv("RAPID_CHECKS", fmt.Sprintf("%d", config.IterationCount))

	if config.VerboseOutput {
		t.Logf("Property test starting with %d iterations (intensity: %s)",
			config.IterationCount, config.Intensity)
	}

	rapid.Check(t, fn)
}

// TreeGenerator returns a generator of random trees in the BuildTree entry
// format. File names are drawn from names, so callers control how often a
// target name (in varying letter case) appears. Entries are ordered parents
// first and never collide, even on case-insensitive filesystems.
func TreeGenerator(config TestConfig, names []string) *rapid.Generator[[]string] {
	return rapid.Custom(func(t *rapid.T) []string {
		entries := make([]string, 0)
		used := make(map[string]bool)

		var grow func(dir string, depth int)
		grow = func(dir string, depth int) {
			numFiles := rapid.IntRange(0, config.MaxFilesPerDir).Draw(t, "numFiles")
			for i := 0; i < numFiles; i++ {
				name := rapid.SampledFrom(names).Draw(t, "fileName")
				p := path.Join(dir, name)
				if used[strings.ToLower(p)] {
					continue
				}
				used[strings.ToLower(p)] = true
				entries = append(entries, p)
			}

			if depth >= config.MaxDepth {
				return
			}

			numDirs := rapid.IntRange(0, config.MaxSubdirs).Draw(t, "numDirs")
			for i := 0; i < numDirs; i++ {
				sub := path.Join(dir, fmt.Sprintf("d%d", i))
				if used[sub] {
					continue
				}
				used[sub] = true
				entries = append(entries, sub+"/")
				grow(sub, depth+1)
			}
		}

		grow("", 0)
		return entries
	})
}
