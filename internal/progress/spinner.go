// Package progress renders a live "directories scanned" spinner while a
// search runs, plus the duration and number formatting used in search
// summaries.
package progress

import (
	"fmt"
	"io"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
)

// Spinner redraws a single status line with the number of directories
// scanned so far. The animation is a bubbles spinner.Model advanced by the
// spinner's own ticker instead of a bubbletea program, so it can share
// stdout with line-oriented output. count is polled on every frame and must
// be safe to read concurrently.
type Spinner struct {
	out   io.Writer
	count func() int64

	mu    sync.Mutex
	model spinner.Model
	width int // width of the last rendered line, for clearing

	stopOnce sync.Once
	stop     chan struct{}
	done     chan struct{}
}

// NewSpinner creates a spinner that writes to out and reads the current count
// from count.
func NewSpinner(out io.Writer, count func() int64) *Spinner {
	return &Spinner{
		out:   out,
		count: count,
		model: spinner.New(spinner.WithSpinner(spinner.Line)),
		stop:  make(chan struct{}),
		done:  make(chan struct{}),
	}
}

// Start begins rendering on a background goroutine. The first frame is drawn
// immediately.
func (s *Spinner) Start() {
	interval := s.model.Spinner.FPS
	if interval <= 0 {
		interval = 100 * time.Millisecond
	}

	s.render()
	go func() {
		defer close(s.done)

		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			select {
			case <-s.stop:
				return
			case <-ticker.C:
				s.advance()
				s.render()
			}
		}
	}()
}

// Stop halts rendering, waits for the render goroutine and erases the status
// line. Stop is idempotent and must only be called after Start.
func (s *Spinner) Stop() {
	s.stopOnce.Do(func() {
		close(s.stop)
		<-s.done

		s.mu.Lock()
		defer s.mu.Unlock()
		fmt.Fprintf(s.out, "\r%s\r", strings.Repeat(" ", s.width))
		s.width = 0
	})
}

// Line returns the status text for the current frame.
func (s *Spinner) Line() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.line()
}

// advance moves the model to its next frame. The returned tea.Cmd only
// schedules the next tick for a bubbletea program, so it is dropped.
func (s *Spinner) advance() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.model, _ = s.model.Update(spinner.TickMsg{})
}

func (s *Spinner) line() string {
	return fmt.Sprintf("%s Directories scanned: %d", s.model.View(), s.count())
}

func (s *Spinner) render() {
	s.mu.Lock()
	defer s.mu.Unlock()

	line := s.line()

	// Pad over any leftovers of a longer previous line.
	pad := ""
	if s.width > len(line) {
		pad = strings.Repeat(" ", s.width-len(line))
	}
	fmt.Fprintf(s.out, "\r%s%s", line, pad)
	if len(line) > s.width {
		s.width = len(line)
	}
}
