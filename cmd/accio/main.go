// Package main provides the command-line interface for accio, a tool that
// finds every file with a given name below a directory, either sequentially
// or with a parallel fork-join walk.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/yourusername/accio/internal/logger"
)

// Exit codes.
const (
	ExitOK          = 0
	ExitError       = 1
	ExitInterrupted = 130
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

// run executes the command line in args and returns the process exit code.
func run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	defer logger.Close()

	ctx, cancel := SetupInterruptHandler()
	defer cancel()

	root := NewRootCommand()
	root.SetArgs(args)
	root.SetIn(stdin)
	root.SetOut(stdout)
	root.SetErr(stderr)

	err := root.ExecuteContext(ctx)
	return exitCode(err, stderr)
}

// exitCode maps a command error to an exit code, printing it unless the
// command already told the user.
func exitCode(err error, stderr io.Writer) int {
	if err == nil {
		return ExitOK
	}

	if errors.Is(err, context.Canceled) {
		fmt.Fprintln(stderr, "Search interrupted.")
		return ExitInterrupted
	}

	var reported *reportedError
	if !errors.As(err, &reported) {
		fmt.Fprintf(stderr, "Error: %v\n", err)
	}
	return ExitError
}

// reportedError marks an error whose message has already been written.
type reportedError struct {
	err error
}

func (e *reportedError) Error() string { return e.err.Error() }
func (e *reportedError) Unwrap() error { return e.err }
