// Package testutil provides shared helpers for tests: an intensity switch
// that scales property tests, directory tree fixtures, rapid generators for
// random trees, and timeout guards for concurrent code.
package testutil

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// TestIntensity represents the thoroughness level of test execution.
type TestIntensity int

const (
	// IntensityQuick runs tests with small trees for fast feedback during development.
	IntensityQuick TestIntensity = iota
	// IntensityThorough runs tests with larger, deeper trees in CI.
	IntensityThorough
)

// String returns the string representation of the test intensity.
func (ti TestIntensity) String() string {
	switch ti {
	case IntensityQuick:
		return "quick"
	case IntensityThorough:
		return "thorough"
	default:
		return "unknown"
	}
}

// TestConfig holds the limits used when generating test trees.
type TestConfig struct {
	Intensity TestIntensity

	// Number of iterations for property tests
	IterationCount int

	// Maximum directory depth below the root
	MaxDepth int

	// Maximum subdirectories created in one directory
	MaxSubdirs int

	// Maximum files created in one directory
	MaxFilesPerDir int

	// Timeout for a single guarded operation
	Timeout time.Duration

	VerboseOutput bool
}

// GetTestConfig returns the configuration selected by the TEST_INTENSITY,
// TEST_QUICK and VERBOSE_TESTS environment variables. TEST_QUICK wins over
// TEST_INTENSITY; the default is quick.
func GetTestConfig() TestConfig {
	config := TestConfig{Intensity: IntensityQuick}

	if !ParseBool(os.Getenv("TEST_QUICK")) {
		config.Intensity = ParseIntensity(os.Getenv("TEST_INTENSITY"))
	}

	switch config.Intensity {
	case IntensityThorough:
		config.IterationCount = 100
		config.MaxDepth = 6
		config.MaxSubdirs = 5
		config.MaxFilesPerDir = 12
		config.Timeout = 2 * time.Minute
	default:
		config.IterationCount = 20
		config.MaxDepth = 3
		config.MaxSubdirs = 3
		config.MaxFilesPerDir = 5
		config.Timeout = 30 * time.Second
	}

	config.VerboseOutput = ParseBool(os.Getenv("VERBOSE_TESTS"))
	return config
}

// ParseIntensity parses a string into a TestIntensity value.
// Returns IntensityQuick for invalid or empty strings.
func ParseIntensity(s string) TestIntensity {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "thorough":
		return IntensityThorough
	default:
		return IntensityQuick
	}
}

// ParseBool parses a string into a boolean value.
// Accepts "1", "true", "yes" (case-insensitive) and any non-zero integer as true.
func ParseBool(s string) bool {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "true" || s == "yes" {
		return true
	}
	if i, err := strconv.Atoi(s); err == nil && i != 0 {
		return true
	}
	return false
}
