package bugg

import (
	"io"
	"io/fs"
)

// FilesystemManager provides read-only access to the SD card tree.
// It abstracts file access so validation can be tested without touching the real filesystem.
type FilesystemManager interface {
	// Stat returns file info for path, following symlinks.
	Stat(path string) (fs.FileInfo, error)

	// ReadDir lists the entries of a directory.
	ReadDir(path string) ([]fs.DirEntry, error)

	// ReadFile returns the full contents of a file.
	ReadFile(path string) ([]byte, error)

	// Open opens a file for reading.
	Open(path string) (io.ReadCloser, error)
}

// isDir reports whether path exists and is a directory.
func isDir(fsmgr FilesystemManager, path string) bool {
	info, err := fsmgr.Stat(path)
	return err == nil && info.IsDir()
}
