// Package scanner walks a directory tree looking for files with a given name.
//
// Two strategies are available. Sequential walks depth-first on the calling
// goroutine and yields matches in pre-order, files before subdirectories at
// every level. Parallel forks one goroutine per subdirectory (bounded by a
// worker semaphore) and joins them before returning; its result order is
// unspecified.
//
// Directories that cannot be listed contribute nothing and never abort the
// walk.
package scanner

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"runtime"
	"time"

	"github.com/google/uuid"

	"github.com/yourusername/accio/internal/logger"
	"github.com/yourusername/accio/internal/match"
)

// DefaultWorkerMultiplier is multiplied by NumCPU to determine the default
// number of concurrently running subtree goroutines in Parallel mode.
const DefaultWorkerMultiplier = 4

var (
	// ErrInvalidRoot is returned when the search root is missing or not a directory.
	ErrInvalidRoot = errors.New("not a valid directory")
	// ErrEmptyTarget is returned when the target filename is empty.
	ErrEmptyTarget = errors.New("target filename is empty")
)

// Mode selects the traversal strategy.
type Mode int

const (
	// Sequential walks the tree depth-first on a single goroutine.
	Sequential Mode = iota
	// Parallel walks subdirectories concurrently.
	Parallel
)

// String returns the lower-case mode name.
func (m Mode) String() string {
	switch m {
	case Sequential:
		return "sequential"
	case Parallel:
		return "parallel"
	default:
		return "unknown"
	}
}

// Options configures a Searcher.
type Options struct {
	// Mode selects sequential or parallel traversal.
	Mode Mode

	// Workers bounds the number of subtree goroutines running at once in
	// Parallel mode. When every slot is taken a subtree is walked inline by
	// the goroutine that found it. 0 or negative means NumCPU * 4.
	Workers int

	// FollowSymlinks makes symlinks that resolve to directories recursable.
	// When false they are treated as file entries.
	FollowSymlinks bool

	// Counter, if set, is incremented once per directory visited so that a
	// progress display can poll it while the search runs.
	Counter *VisitCounter

	// OnError, if set, receives every directory listing failure. It may be
	// called concurrently in Parallel mode. Failures are otherwise silent.
	OnError func(path string, err error)
}

// SearchResult is the outcome of one search.
type SearchResult struct {
	ID          string        // Unique id of this search, used in log lines
	Root        string        // Root directory searched
	Target      string        // Filename searched for
	Mode        Mode          // Strategy used
	Paths       []string      // Matching paths (pre-order for Sequential, unordered for Parallel)
	DirsVisited int64         // Directories visited, including the root
	Duration    time.Duration // Wall-clock time of the walk
}

// Searcher runs filename searches with a fixed configuration.
// A Searcher is safe to reuse for multiple searches.
type Searcher struct {
	mode           Mode
	workers        int
	followSymlinks bool
	counter        *VisitCounter
	onError        func(path string, err error)
	list           listFunc
}

// NewSearcher creates a Searcher from opts.
func NewSearcher(opts Options) *Searcher {
	workers := opts.Workers
	if workers <= 0 {
		workers = runtime.NumCPU() * DefaultWorkerMultiplier
	}

	return &Searcher{
		mode:           opts.Mode,
		workers:        workers,
		followSymlinks: opts.FollowSymlinks,
		counter:        opts.Counter,
		onError:        opts.OnError,
		list:           listDir,
	}
}

// Workers returns the effective parallel slot count.
func (s *Searcher) Workers() int {
	return s.workers
}

// Search validates root and walks it looking for files named target.
//
// Invalid roots fail fast with an error wrapping ErrInvalidRoot. If ctx is
// cancelled the walk stops descending, waits for running goroutines, and the
// partial result is returned together with ctx.Err().
func (s *Searcher) Search(ctx context.Context, root, target string) (*SearchResult, error) {
	if target == "" {
		return nil, ErrEmptyTarget
	}
	if err := ValidateRoot(root); err != nil {
		return nil, err
	}

	result := &SearchResult{
		ID:     uuid.NewString(),
		Root:   root,
		Target: target,
		Mode:   s.mode,
	}
	log := logger.WithFields(logger.Fields{"search_id": result.ID, "mode": s.mode.String()})
	log.Debug("Starting search for %q under %s", target, root)

	counter := s.counter
	if counter == nil {
		counter = &VisitCounter{}
	}
	visitedBefore := counter.Load()

	start := time.Now()
	result.Paths = s.run(ctx, root, target, counter)
	result.Duration = time.Since(start)
	result.DirsVisited = counter.Load() - visitedBefore

	log.Debug("Search complete: %d matches, %d directories visited in %v",
		len(result.Paths), result.DirsVisited, result.Duration)

	if err := ctx.Err(); err != nil {
		log.Debug("Search interrupted: %v", err)
		return result, err
	}
	return result, nil
}

// run walks root without validating it.
func (s *Searcher) run(ctx context.Context, root, target string, counter *VisitCounter) []string {
	w := &walker{
		ctx:     ctx,
		target:  target,
		counter: counter,
		onError: s.onError,
		list: func(dir string) ([]Entry, error) {
			return s.list(dir, s.followSymlinks)
		},
	}

	if s.mode == Parallel {
		sink := match.NewSync()
		w.sink = sink
		w.sem = make(chan struct{}, s.workers)
		w.parallel(root)
		return sink.Paths()
	}

	sink := match.NewSlice()
	w.sink = sink
	w.sequential(root)
	return sink.Paths()
}

// ValidateRoot checks that path exists and is a directory.
func ValidateRoot(path string) error {
	if path == "" {
		return fmt.Errorf("%w: empty path", ErrInvalidRoot)
	}

	info, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("%w: %s does not exist", ErrInvalidRoot, path)
		}
		return fmt.Errorf("%w: cannot access %s: %v", ErrInvalidRoot, path, err)
	}
	if !info.IsDir() {
		return fmt.Errorf("%w: %s is not a directory", ErrInvalidRoot, path)
	}
	return nil
}

// SearchSequential walks root depth-first and returns matches in pre-order.
// root is not validated; an unreadable root yields an empty result.
func SearchSequential(root, target string) []string {
	s := NewSearcher(Options{Mode: Sequential, FollowSymlinks: true})
	return s.run(context.Background(), root, target, &VisitCounter{})
}

// SearchParallel walks root concurrently and returns matches in no
// particular order. root is not validated; an unreadable root yields an
// empty result.
func SearchParallel(root, target string) []string {
	s := NewSearcher(Options{Mode: Parallel, FollowSymlinks: true})
	return s.run(context.Background(), root, target, &VisitCounter{})
}
