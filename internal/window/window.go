// Package window binds a buffer to a cursor and a viewport.
//
// Several windows may show the same buffer. Each keeps its own cursor and
// scroll position and re-clamps them after the buffer changes under it.
package window

import (
	"github.com/dshills/kestrel/internal/engine/buffer"
	"github.com/dshills/kestrel/internal/engine/cursor"
	"github.com/dshills/kestrel/internal/renderer/viewport"
)

// ID identifies a window within an editor.
type ID int

// Window is a view onto one buffer.
type Window struct {
	id     ID
	buf    buffer.ID
	cursor cursor.Cursor
	view   *viewport.Viewport
}

// New creates a window showing buf with a text area of width by height cells.
func New(id ID, buf buffer.ID, width, height int) *Window {
	return &Window{id: id, buf: buf, view: viewport.New(width, height)}
}

// ID returns the window identifier.
func (w *Window) ID() ID {
	return w.id
}

// Buffer returns the ID of the buffer the window shows.
func (w *Window) Buffer() buffer.ID {
	return w.buf
}

// Cursor returns the window's cursor.
func (w *Window) Cursor() cursor.Cursor {
	return w.cursor
}

// Viewport returns the window's viewport.
func (w *Window) Viewport() *viewport.Viewport {
	return w.view
}

// SetCursor moves the cursor, clamping it into t under b, and scrolls the
// viewport so the cursor line stays visible.
func (w *Window) SetCursor(t cursor.Text, c cursor.Cursor, b cursor.Bound) {
	w.cursor = c.Clamp(t, b)
	w.follow()
}

// Bind shows a different buffer and resets the cursor and scroll position.
func (w *Window) Bind(buf buffer.ID, t cursor.Text) {
	w.buf = buf
	w.cursor = cursor.Cursor{}
	w.view.ScrollTo(0)
	w.Reclamp(t, cursor.BoundLastChar)
}

// Reclamp brings the cursor and viewport back into t after an edit made
// through this or another window.
func (w *Window) Reclamp(t cursor.Text, b cursor.Bound) {
	w.cursor = w.cursor.Clamp(t, b)
	w.view.Clamp(t.LineCount())
	w.follow()
}

// Resize changes the size of the text area.
func (w *Window) Resize(width, height int) {
	w.view.Resize(width, height)
	w.follow()
}

// follow scrolls vertically only. Horizontal scroll needs screen widths,
// which the renderer resolves with FollowColumn.
func (w *Window) follow() {
	w.view.Follow(w.cursor.Line, w.view.LeftColumn())
}

// FollowColumn scrolls horizontally so screen column col is visible.
func (w *Window) FollowColumn(col int) {
	w.view.Follow(w.cursor.Line, col)
}
