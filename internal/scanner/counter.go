package scanner

import "sync/atomic"

// VisitCounter counts visited directories. It is safe for concurrent use and
// may be read while a search is still running.
type VisitCounter struct {
	n atomic.Int64
}

// Inc records one visited directory.
func (c *VisitCounter) Inc() {
	c.n.Add(1)
}

// Load returns the current count.
func (c *VisitCounter) Load() int64 {
	return c.n.Load()
}
