// Package prompt asks the user for missing search parameters on an
// interactive terminal.
package prompt

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/yourusername/accio/internal/logger"
)

const (
	// DirectoryQuestion asks for the root directory of a search.
	DirectoryQuestion = "Enter directory path to scan: "
	// ParallelQuestion asks whether to use the parallel engine.
	ParallelQuestion = "Use parallel search? (y/n): "
)

// Prompter reads answers line by line from in and writes questions to out.
type Prompter struct {
	in  *bufio.Reader
	out io.Writer
}

// New creates a Prompter. in is wrapped in a bufio.Reader so the whole line,
// spaces included, is read.
func New(in io.Reader, out io.Writer) *Prompter {
	return &Prompter{in: bufio.NewReader(in), out: out}
}

// Line writes question and returns the next input line with surrounding
// whitespace removed (handles both \n and \r\n). A final line without a
// newline is returned as-is; io.EOF is returned only when nothing was typed.
func (p *Prompter) Line(question string) (string, error) {
	if _, err := fmt.Fprint(p.out, question); err != nil {
		return "", fmt.Errorf("failed to write prompt: %w", err)
	}

	input, err := p.in.ReadString('\n')
	if err != nil {
		if errors.Is(err, io.EOF) && input != "" {
			return strings.TrimSpace(input), nil
		}
		return "", err
	}
	return strings.TrimSpace(input), nil
}

// Directory asks for the directory to scan.
func (p *Prompter) Directory() (string, error) {
	dir, err := p.Line(DirectoryQuestion)
	if err != nil {
		logger.Warning("Failed to read directory: %v", err)
		return "", err
	}
	logger.Debug("User entered directory: %s", dir)
	return dir, nil
}

// Confirm asks a yes/no question. "y" and "yes" in any letter case are yes;
// any other answer, or end of input, is no.
func (p *Prompter) Confirm(question string) (bool, error) {
	answer, err := p.Line(question)
	if err != nil {
		if errors.Is(err, io.EOF) {
			return false, nil
		}
		logger.Warning("Failed to read user input: %v", err)
		return false, err
	}
	return IsYes(answer), nil
}

// UseParallel asks whether to run the parallel engine.
func (p *Prompter) UseParallel() (bool, error) {
	return p.Confirm(ParallelQuestion)
}

// IsYes reports whether answer is an affirmative reply.
func IsYes(answer string) bool {
	switch strings.ToLower(strings.TrimSpace(answer)) {
	case "y", "yes":
		return true
	default:
		return false
	}
}
