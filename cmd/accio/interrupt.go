package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
)

// SetupInterruptHandler returns a context that is cancelled on the first
// Ctrl+C or SIGTERM. A running search then stops descending and returns what
// it has found so far.
func SetupInterruptHandler() (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(context.Background())

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	go func() {
		select {
		case <-sigChan:
			cancel()
		case <-ctx.Done():
		}
		signal.Stop(sigChan)
	}()

	return ctx, cancel
}
