package main

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yourusername/accio/internal/logger"
	"github.com/yourusername/accio/internal/scanner"
)

func TestPrintResult(t *testing.T) {
	result := &scanner.SearchResult{
		Target:   "a.txt",
		Paths:    []string{"/x/a.txt", "/x/y/A.TXT"},
		Duration: 125 * time.Second,
	}

	var out bytes.Buffer
	printResult(&out, result, false)
	assert.Equal(t, "Found the following files: (Completed in 2mins 5secs)\n/x/a.txt\n/x/y/A.TXT\n", out.String())

	out.Reset()
	printResult(&out, &scanner.SearchResult{Target: "a.txt", Paths: []string{}}, true)
	assert.Equal(t, "No file named 'a.txt' found. (Completed in 0mins 0secs)\n", out.String())
}

// The green header is either fully wrapped (set and reset codes) or plain,
// whatever the global color setting is, and the paths are never colored.
func TestPrintResult_ColorStates(t *testing.T) {
	saved := color.NoColor
	t.Cleanup(func() { color.NoColor = saved })

	result := &scanner.SearchResult{
		Target:   "a.txt",
		Paths:    []string{"/x/a.txt", "/x/y/A.TXT"},
		Duration: 125 * time.Second,
	}
	const paths = "/x/a.txt\n/x/y/A.TXT\n"

	tests := []struct {
		name     string
		noColor  bool
		colorize bool
		want     string
	}{
		{"global on, colorize", false, true,
			"\x1b[32mFound the following files:\x1b[0m (Completed in 2mins 5secs)\n" + paths},
		{"global off, colorize", true, true,
			"\x1b[32mFound the following files:\x1b[0m (Completed in 2mins 5secs)\n" + paths},
		{"global on, plain", false, false,
			"Found the following files: (Completed in 2mins 5secs)\n" + paths},
		{"global off, plain", true, false,
			"Found the following files: (Completed in 2mins 5secs)\n" + paths},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			color.NoColor = tt.noColor

			var out bytes.Buffer
			printResult(&out, result, tt.colorize)

			got := out.String()
			assert.Equal(t, tt.want, got)
			assert.Equal(t, strings.Count(got, "\x1b[32m"), strings.Count(got, "\x1b[0m"),
				"escape codes must be balanced")
		})
	}
}

func TestUseColor(t *testing.T) {
	saved := color.NoColor
	t.Cleanup(func() { color.NoColor = saved })

	for _, noColor := range []bool{false, true} {
		color.NoColor = noColor
		assert.False(t, useColor(&bytes.Buffer{}), "non-terminal writers never get color")
	}
}

func TestDirErrorHandler_FollowsLogLevel(t *testing.T) {
	t.Cleanup(func() { _ = logger.SetupLogging(logger.WARNING, "") })

	require.NoError(t, logger.SetupLogging(logger.WARNING, ""))
	assert.Nil(t, dirErrorHandler(), "no hook when DEBUG is filtered out")

	logFile := filepath.Join(t.TempDir(), "accio.log")
	require.NoError(t, logger.SetupLogging(logger.DEBUG, logFile))
	handler := dirErrorHandler()
	require.NotNil(t, handler)

	handler("/locked", errors.New("permission denied"))
	require.NoError(t, logger.Close())

	data, err := os.ReadFile(logFile)
	require.NoError(t, err)
	assert.Contains(t, string(data), `Skipped directory path=/locked reason="permission denied"`)
}
