//go:build windows

package scanner

import (
	"fmt"
	"path/filepath"

	"golang.org/x/sys/windows"
)

// listDir enumerates dir with FindFirstFile/FindNextFile, which avoids the
// per-entry Lstat that os.ReadDir performs on Windows.
//
// Directory symlinks and junctions carry FILE_ATTRIBUTE_DIRECTORY together
// with FILE_ATTRIBUTE_REPARSE_POINT; they are recursed into only when
// followSymlinks is set.
func listDir(dir string, followSymlinks bool) ([]Entry, error) {
	pattern, err := windows.UTF16PtrFromString(filepath.Join(dir, "*"))
	if err != nil {
		return nil, fmt.Errorf("failed to convert search path to UTF-16: %w", err)
	}

	var findData windows.Win32finddata
	handle, err := windows.FindFirstFile(pattern, &findData)
	if err != nil {
		if err == windows.ERROR_FILE_NOT_FOUND {
			return []Entry{}, nil
		}
		return nil, fmt.Errorf("FindFirstFile failed: %w", err)
	}
	defer windows.FindClose(handle)

	entries := make([]Entry, 0)
	for {
		name := windows.UTF16ToString(findData.FileName[:])
		if name != "." && name != ".." {
			attrs := findData.FileAttributes
			isDir := attrs&windows.FILE_ATTRIBUTE_DIRECTORY != 0
			if isDir && !followSymlinks && attrs&windows.FILE_ATTRIBUTE_REPARSE_POINT != 0 {
				isDir = false
			}

			entries = append(entries, Entry{
				Name:  name,
				Path:  filepath.Join(dir, name),
				IsDir: isDir,
			})
		}

		err = windows.FindNextFile(handle, &findData)
		if err != nil {
			if err == windows.ERROR_NO_MORE_FILES {
				break
			}
			return nil, fmt.Errorf("FindNextFile failed: %w", err)
		}
	}
	return entries, nil
}
