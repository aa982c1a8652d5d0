package testutil

import (
	"context"
	"fmt"
	"testing"
)

// WithTimeout runs fn on its own goroutine and waits for it to return or for
// the configured timeout to elapse. It guards tests of concurrent code where a
// missed join would otherwise hang the whole test binary. Panics in fn are
// reported as errors.
func WithTimeout(t *testing.T, fn func(ctx context.Context)) error {
	t.Helper()

	timeout := GetTestConfig().Timeout
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	done := make(chan error, 1)
	go func() {
		defer func() {
			if r := recover(); r != nil {
				done <- fmt.Errorf("test panicked: %v", r)
			}
		}()

		fn(ctx)
		done <- nil
	}()

	select {
	case err := <-done:
		if err != nil {
			return fmt.Errorf("test failed: %w", err)
		}
		return nil
	case <-ctx.Done():
		return fmt.Errorf("test timed out after %s", timeout)
	}
}

// WithTimeoutT is WithTimeout that fails the test on timeout or panic.
func WithTimeoutT(t *testing.T, fn func(ctx context.Context)) {
	t.Helper()

	if err := WithTimeout(t, fn); err != nil {
		t.Fatal(err)
	}
}

// TimeoutContext creates a context bounded by the configured timeout.
func TimeoutContext(t *testing.T) (context.Context, context.CancelFunc) {
	t.Helper()

	return context.WithTimeout(context.Background(), GetTestConfig().Timeout)
}

// SkipIfSlow skips the test or benchmark under -short in quick mode.
func SkipIfSlow(t testing.TB, reason string) {
	t.Helper()

	if GetTestConfig().Intensity == IntensityQuick && testing.Short() {
		t.Skipf("Skipping slow test in quick mode: %s", reason)
	}
}
