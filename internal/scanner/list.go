package scanner

// Entry is one item of a directory listing.
type Entry struct {
	Name  string // Base name
	Path  string // Parent path joined with Name
	IsDir bool   // True if the entry is recursed into
}

// listFunc returns a snapshot of dir's entries. On error the snapshot is
// discarded and no entries are returned.
type listFunc func(dir string, followSymlinks bool) ([]Entry, error)
