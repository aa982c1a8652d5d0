//go:build !windows

package scanner

import (
	"io/fs"
	"os"
	"path/filepath"
)

// listDir reads dir with os.ReadDir, which returns entries sorted by name.
// Symlinks are stat'ed and treated as directories only when followSymlinks
// is set and the target is a directory.
func listDir(dir string, followSymlinks bool) ([]Entry, error) {
	dirEntries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	entries := make([]Entry, 0, len(dirEntries))
	for _, d := range dirEntries {
		fullPath := filepath.Join(dir, d.Name())
		isDir := d.IsDir()

		if !isDir && followSymlinks && d.Type()&fs.ModeSymlink != 0 {
			if info, statErr := os.Stat(fullPath); statErr == nil {
				isDir = info.IsDir()
			}
		}

		entries = append(entries, Entry{
			Name:  d.Name(),
			Path:  fullPath,
			IsDir: isDir,
		})
	}
	return entries, nil
}
