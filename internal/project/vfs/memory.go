package vfs

import (
	"errors"
	"io/fs"
	"path"
	"slices"
	"strings"
	"sync"
	"syscall"
	"time"
)

var (
	errIsDir    = syscall.EISDIR
	errNotDir   = syscall.ENOTDIR
	errNotUnder = errors.New("target is not under base")
)

// MemFS is an in-memory file system with slash-separated absolute paths.
// Relative paths are taken from "/". It is safe for concurrent use.
type MemFS struct {
	mu    sync.RWMutex
	files map[string]*memFile
	dirs  map[string]bool

	// failWrites makes WriteFile fail for matching paths.
	failWrites map[string]error
}

type memFile struct {
	content []byte
	mode    fs.FileMode
	modTime time.Time
}

// NewMemFS creates an empty file system holding only "/".
func NewMemFS() *MemFS {
	return &MemFS{
		files:      make(map[string]*memFile),
		dirs:       map[string]bool{"/": true},
		failWrites: make(map[string]error),
	}
}

var _ FS = (*MemFS)(nil)

// ReadFile reads the whole file.
func (m *MemFS) ReadFile(p string) ([]byte, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	p = clean(p)
	f, ok := m.files[p]
	if !ok {
		if m.dirs[p] {
			return nil, &fs.PathError{Op: "read", Path: p, Err: errIsDir}
		}
		return nil, &fs.PathError{Op: "read", Path: p, Err: fs.ErrNotExist}
	}
	return slices.Clone(f.content), nil
}

// WriteFile writes a file. The parent directory must exist.
func (m *MemFS) WriteFile(p string, data []byte, perm fs.FileMode) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	p = clean(p)
	if err, ok := m.failWrites[p]; ok {
		return &fs.PathError{Op: "write", Path: p, Err: err}
	}
	if m.dirs[p] {
		return &fs.PathError{Op: "write", Path: p, Err: errIsDir}
	}
	if !m.dirs[path.Dir(p)] {
		return &fs.PathError{Op: "write", Path: p, Err: fs.ErrNotExist}
	}
	if old, ok := m.files[p]; ok {
		perm = old.mode
	}
	m.files[p] = &memFile{content: slices.Clone(data), mode: perm, modTime: time.Now()}
	return nil
}

// FailWrites makes every later WriteFile to p fail with err. A nil err
// clears the failure.
func (m *MemFS) FailWrites(p string, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err == nil {
		delete(m.failWrites, clean(p))
		return
	}
	m.failWrites[clean(p)] = err
}

// Stat describes p.
func (m *MemFS) Stat(p string) (FileInfo, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.stat(clean(p))
}

func (m *MemFS) stat(p string) (FileInfo, error) {
	if f, ok := m.files[p]; ok {
		return NewFileInfo(p, path.Base(p), int64(len(f.content)), f.mode, f.modTime), nil
	}
	if m.dirs[p] {
		return NewFileInfo(p, path.Base(p), 0, fs.ModeDir|0o755, time.Time{}), nil
	}
	return FileInfo{}, &fs.PathError{Op: "stat", Path: p, Err: fs.ErrNotExist}
}

// ReadDir lists the direct children of a directory, sorted by name.
func (m *MemFS) ReadDir(p string) ([]FileInfo, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	p = clean(p)
	if !m.dirs[p] {
		if _, ok := m.files[p]; ok {
			return nil, &fs.PathError{Op: "readdir", Path: p, Err: errNotDir}
		}
		return nil, &fs.PathError{Op: "readdir", Path: p, Err: fs.ErrNotExist}
	}

	var entries []FileInfo
	child := func(q string) bool { return q != p && path.Dir(q) == p }
	for q := range m.files {
		if child(q) {
			info, _ := m.stat(q)
			entries = append(entries, info)
		}
	}
	for q := range m.dirs {
		if child(q) {
			info, _ := m.stat(q)
			entries = append(entries, info)
		}
	}
	slices.SortFunc(entries, func(a, b FileInfo) int { return strings.Compare(a.Name(), b.Name()) })
	return entries, nil
}

// MkdirAll creates a directory and its parents.
func (m *MemFS) MkdirAll(p string, _ fs.FileMode) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	cur := "/"
	for _, part := range strings.Split(strings.Trim(clean(p), "/"), "/") {
		if part == "" {
			continue
		}
		cur = path.Join(cur, part)
		if _, ok := m.files[cur]; ok {
			return &fs.PathError{Op: "mkdir", Path: cur, Err: errNotDir}
		}
		m.dirs[cur] = true
	}
	return nil
}

// Abs cleans p; every MemFS path is absolute.
func (m *MemFS) Abs(p string) (string, error) {
	return clean(p), nil
}

// Rel returns target relative to base.
func (m *MemFS) Rel(base, target string) (string, error) {
	base, target = clean(base), clean(target)
	if target == base {
		return ".", nil
	}
	prefix := strings.TrimSuffix(base, "/") + "/"
	if !strings.HasPrefix(target, prefix) {
		return "", errNotUnder
	}
	return strings.TrimPrefix(target, prefix), nil
}

// Join joins path elements with '/'.
func (m *MemFS) Join(elem ...string) string {
	return path.Join(elem...)
}

// Exists reports whether p is a file or directory.
func (m *MemFS) Exists(p string) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	p = clean(p)
	_, ok := m.files[p]
	return ok || m.dirs[p]
}

// AddFile creates a file and its parent directories.
func (m *MemFS) AddFile(p, content string) error {
	if err := m.MkdirAll(path.Dir(clean(p)), 0o755); err != nil {
		return err
	}
	return m.WriteFile(p, []byte(content), 0o644)
}

// Files returns every file path, sorted.
func (m *MemFS) Files() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	files := make([]string, 0, len(m.files))
	for f := range m.files {
		files = append(files, f)
	}
	slices.Sort(files)
	return files
}

func clean(p string) string {
	return path.Clean("/" + p)
}
