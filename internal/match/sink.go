package match

import "sync"

// Sink is an append-only collection of matched paths.
type Sink interface {
	// Add appends one matched path.
	Add(path string)
	// Paths returns a copy of the collected paths.
	Paths() []string
	// Len returns the number of collected paths.
	Len() int
}

// Slice is a Sink for a single goroutine. Paths are kept in insertion order.
type Slice struct {
	paths []string
}

// NewSlice creates an empty unsynchronized sink.
func NewSlice() *Slice {
	return &Slice{paths: make([]string, 0)}
}

// Add appends path.
func (s *Slice) Add(path string) {
	s.paths = append(s.paths, path)
}

// Paths returns a copy of the collected paths in insertion order.
func (s *Slice) Paths() []string {
	out := make([]string, len(s.paths))
	copy(out, s.paths)
	return out
}

// Len returns the number of collected paths.
func (s *Slice) Len() int {
	return len(s.paths)
}

// Sync is a Sink that is safe for concurrent use. Appends are serialized by a
// mutex; the resulting order depends on goroutine scheduling.
type Sync struct {
	mu    sync.Mutex
	paths []string
}

// NewSync creates an empty mutex-guarded sink.
func NewSync() *Sync {
	return &Sync{paths: make([]string, 0)}
}

// Add appends path. Safe to call from multiple goroutines.
func (s *Sync) Add(path string) {
	s.mu.Lock()
	s.paths = append(s.paths, path)
	s.mu.Unlock()
}

// Paths returns a copy of the collected paths.
func (s *Sync) Paths() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]string, len(s.paths))
	copy(out, s.paths)
	return out
}

// Len returns the number of collected paths.
func (s *Sync) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.paths)
}
