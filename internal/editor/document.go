package editor

import (
	"time"

	"github.com/dshills/kestrel/internal/engine/buffer"
	"github.com/dshills/kestrel/internal/engine/cursor"
	"github.com/dshills/kestrel/internal/project/vfs"
)

// document is an open buffer with the file state the editor tracks for it.
type document struct {
	buf *buffer.Buffer

	// abs is the absolute path used for lookups and file watching. Empty
	// for scratch and help buffers.
	abs string

	// encoding is the encoding the file was read with; saves restore it.
	encoding vfs.Encoding

	// stamp is the file's size and modification time at the last load or
	// save. A change event with the same stamp is our own write.
	stamp stamp

	// name overrides the buffer's display name.
	name string

	// marks holds the lowercase marks and the context mark under '\''.
	// Positions are not adjusted by edits; they are clamped when used.
	marks map[rune]cursor.Pos
}

func (d *document) setMark(r rune, p cursor.Pos) {
	if r == '`' {
		r = '\''
	}
	if d.marks == nil {
		d.marks = make(map[rune]cursor.Pos)
	}
	d.marks[r] = p
}

func (d *document) mark(r rune) (cursor.Pos, bool) {
	if r == '`' {
		r = '\''
	}
	p, ok := d.marks[r]
	return p, ok
}

type stamp struct {
	size    int64
	modTime time.Time
}

func (s stamp) same(o stamp) bool {
	return s.size == o.size && s.modTime.Equal(o.modTime)
}

func stampOf(fi vfs.FileInfo) stamp {
	return stamp{size: fi.Size(), modTime: fi.ModTime()}
}

// Name returns the display name.
func (d *document) Name() string {
	if d.name != "" {
		return d.name
	}
	return d.buf.Name()
}

// documents is the buffer table. Windows refer to entries by buffer ID.
type documents struct {
	byID  map[buffer.ID]*document
	order []buffer.ID
}

func newDocuments() *documents {
	return &documents{byID: make(map[buffer.ID]*document)}
}

func (ds *documents) add(d *document) {
	id := d.buf.ID()
	if _, ok := ds.byID[id]; !ok {
		ds.order = append(ds.order, id)
	}
	ds.byID[id] = d
}

func (ds *documents) get(id buffer.ID) (*document, bool) {
	d, ok := ds.byID[id]
	return d, ok
}

// byPath finds the document loaded from abs.
func (ds *documents) byPath(abs string) (*document, bool) {
	if abs == "" {
		return nil, false
	}
	for _, id := range ds.order {
		if d := ds.byID[id]; d.abs == abs {
			return d, true
		}
	}
	return nil, false
}

func (ds *documents) remove(id buffer.ID) {
	if _, ok := ds.byID[id]; !ok {
		return
	}
	delete(ds.byID, id)
	for i, o := range ds.order {
		if o == id {
			ds.order = append(ds.order[:i], ds.order[i+1:]...)
			break
		}
	}
}

// all returns the documents in the order they were opened.
func (ds *documents) all() []*document {
	out := make([]*document, 0, len(ds.order))
	for _, id := range ds.order {
		out = append(out, ds.byID[id])
	}
	return out
}

func (ds *documents) count() int {
	return len(ds.order)
}
