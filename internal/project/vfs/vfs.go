// Package vfs abstracts the file system the editor loads from, saves to and
// walks for the finder. OSFS is the real file system; MemFS backs tests.
package vfs

import (
	"io/fs"
	"time"
)

// FS is the file system surface the editor needs.
type FS interface {
	// ReadFile reads the whole file.
	ReadFile(path string) ([]byte, error)

	// WriteFile replaces the file's content, creating it with perm if it
	// does not exist.
	WriteFile(path string, data []byte, perm fs.FileMode) error

	// Stat describes path.
	Stat(path string) (FileInfo, error)

	// ReadDir lists a directory, sorted by name.
	ReadDir(path string) ([]FileInfo, error)

	// MkdirAll creates a directory and its parents.
	MkdirAll(path string, perm fs.FileMode) error

	// Abs returns an absolute form of path.
	Abs(path string) (string, error)

	// Rel returns target relative to base.
	Rel(base, target string) (string, error)

	// Join joins path elements with the file system's separator.
	Join(elem ...string) string

	// Exists reports whether path exists.
	Exists(path string) bool
}

// FileInfo describes a file or directory.
type FileInfo struct {
	path    string
	name    string
	size    int64
	mode    fs.FileMode
	modTime time.Time
}

// NewFileInfo creates a FileInfo.
func NewFileInfo(path, name string, size int64, mode fs.FileMode, modTime time.Time) FileInfo {
	return FileInfo{path: path, name: name, size: size, mode: mode, modTime: modTime}
}

// Path returns the full path.
func (fi FileInfo) Path() string { return fi.path }

// Name returns the base name.
func (fi FileInfo) Name() string { return fi.name }

// Size returns the size in bytes.
func (fi FileInfo) Size() int64 { return fi.size }

// Mode returns the file mode.
func (fi FileInfo) Mode() fs.FileMode { return fi.mode }

// ModTime returns the modification time.
func (fi FileInfo) ModTime() time.Time { return fi.modTime }

// IsDir reports whether this is a directory.
func (fi FileInfo) IsDir() bool { return fi.mode.IsDir() }

// IsRegular reports whether this is a regular file.
func (fi FileInfo) IsRegular() bool { return fi.mode.IsRegular() }

// IsSymlink reports whether this is a symbolic link.
func (fi FileInfo) IsSymlink() bool { return fi.mode&fs.ModeSymlink != 0 }
