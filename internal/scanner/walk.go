package scanner

import (
	"context"
	"sync"

	"github.com/samber/lo"

	"github.com/yourusername/accio/internal/match"
)

// walker holds the state shared by every directory visit of one search.
type walker struct {
	ctx     context.Context
	target  string
	sink    match.Sink
	counter *VisitCounter
	list    func(dir string) ([]Entry, error)
	onError func(path string, err error)

	// sem holds one token per running subtree goroutine (Parallel only).
	sem chan struct{}
}

// visit lists dir once, records matching files and returns its subdirectories
// in listing order. A listing failure yields no subdirectories.
func (w *walker) visit(dir string) []Entry {
	if w.ctx.Err() != nil {
		return nil
	}
	w.counter.Inc()

	entries, err := w.list(dir)
	if err != nil {
		if w.onError != nil {
			w.onError(dir, err)
		}
		return nil
	}

	dirs, files := lo.FilterReject(entries, func(e Entry, _ int) bool {
		return e.IsDir
	})

	for _, f := range files {
		if match.Name(f.Name, w.target) {
			w.sink.Add(f.Path)
		}
	}
	return dirs
}

func (w *walker) sequential(dir string) {
	for _, sub := range w.visit(dir) {
		w.sequential(sub.Path)
	}
}

// parallel forks a goroutine per subdirectory while worker slots are free and
// walks the rest inline, so a full pool never blocks. It returns only after
// every subtree it started has finished.
func (w *walker) parallel(dir string) {
	subdirs := w.visit(dir)

	var wg sync.WaitGroup
	for _, sub := range subdirs {
		select {
		case w.sem <- struct{}{}:
			wg.Add(1)
			go func(path string) {
				defer wg.Done()
				defer func() { <-w.sem }()
				w.parallel(path)
			}(sub.Path)
		default:
			w.parallel(sub.Path)
		}
	}
	wg.Wait()
}
