// Package watcher notices when files open in the editor change on disk.
//
// fsnotify watches the directories holding tracked files, since editors and
// tools often replace a file by renaming over it. Events for untracked
// names are dropped, and bursts for one path are coalesced before delivery.
package watcher

import (
	"errors"
	"fmt"
)

// Errors returned by the watcher.
var (
	ErrWatcherClosed = errors.New("watcher is closed")
	ErrNotTracked    = errors.New("file is not tracked")
)

// Op is a set of file system operations.
type Op uint32

const (
	OpCreate Op = 1 << iota
	OpWrite
	OpRemove
	OpRename
	OpChmod
)

var opNames = []struct {
	op   Op
	name string
}{
	{OpCreate, "CREATE"},
	{OpWrite, "WRITE"},
	{OpRemove, "REMOVE"},
	{OpRename, "RENAME"},
	{OpChmod, "CHMOD"},
}

// String lists the operations in op joined by '|'.
func (op Op) String() string {
	s := ""
	for _, n := range opNames {
		if op.Has(n.op) {
			if s != "" {
				s += "|"
			}
			s += n.name
		}
	}
	if s == "" {
		return fmt.Sprintf("Op(%d)", uint32(op))
	}
	return s
}

// Has reports whether op includes o.
func (op Op) Has(o Op) bool {
	return op&o == o
}

// Gone reports whether the file may no longer exist at its path.
func (op Op) Gone() bool {
	return op&(OpRemove|OpRename) != 0
}

// Event reports a change to a tracked file. Path is absolute.
type Event struct {
	Path string
	Op   Op
}

func (e Event) String() string {
	return e.Op.String() + " " + e.Path
}
