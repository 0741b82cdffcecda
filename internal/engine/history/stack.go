package history

import (
	"errors"
	"time"
)

// Common errors for history operations.
var (
	ErrNothingToUndo = errors.New("nothing to undo")
	ErrNothingToRedo = errors.New("nothing to redo")
)

// DefaultMaxEntries bounds the undo stack when New is given zero.
const DefaultMaxEntries = 1000

// Entry is one undo step.
type Entry struct {
	Name      string
	Ops       OperationList
	Timestamp time.Time
}

// History holds the undo and redo stacks for one buffer.
// It is not safe for concurrent use.
type History struct {
	undoStack []*Entry
	redoStack []*Entry

	depth     int
	groupName string
	groupOps  OperationList

	maxEntries int
}

// New creates a history bounded to maxEntries undo steps.
func New(maxEntries int) *History {
	if maxEntries <= 0 {
		maxEntries = DefaultMaxEntries
	}
	return &History{maxEntries: maxEntries}
}

// Record adds an applied operation. Inside a group it joins the open entry;
// otherwise it becomes an entry of its own. Recording clears the redo stack.
func (h *History) Record(op Operation) {
	if op.IsNoop() {
		return
	}
	if h.depth > 0 {
		h.groupOps = append(h.groupOps, op)
		return
	}
	h.push(&Entry{Ops: OperationList{op}, Timestamp: time.Now()})
}

func (h *History) push(e *Entry) {
	h.undoStack = append(h.undoStack, e)
	h.redoStack = nil
	if excess := len(h.undoStack) - h.maxEntries; excess > 0 {
		h.undoStack = h.undoStack[excess:]
	}
}

// Undo reverts the most recent entry on e and returns the lowest offset it
// touched, where the cursor belongs afterwards.
func (h *History) Undo(e Editable) (int, error) {
	h.closeGroup()
	if len(h.undoStack) == 0 {
		return 0, ErrNothingToUndo
	}

	entry := h.undoStack[len(h.undoStack)-1]
	off, err := entry.Ops.Invert().apply(e)
	if err != nil {
		return 0, err
	}
	h.undoStack = h.undoStack[:len(h.undoStack)-1]
	h.redoStack = append(h.redoStack, entry)
	return off, nil
}

// Redo reapplies the most recently undone entry.
func (h *History) Redo(e Editable) (int, error) {
	h.closeGroup()
	if len(h.redoStack) == 0 {
		return 0, ErrNothingToRedo
	}

	entry := h.redoStack[len(h.redoStack)-1]
	off, err := entry.Ops.apply(e)
	if err != nil {
		return 0, err
	}
	h.redoStack = h.redoStack[:len(h.redoStack)-1]
	h.undoStack = append(h.undoStack, entry)
	return off, nil
}

// CanUndo reports whether an undo step is available.
func (h *History) CanUndo() bool {
	return len(h.undoStack) > 0 || len(h.groupOps) > 0
}

// CanRedo reports whether a redo step is available.
func (h *History) CanRedo() bool {
	return len(h.redoStack) > 0
}

// UndoCount returns the number of undo steps.
func (h *History) UndoCount() int {
	return len(h.undoStack)
}

// RedoCount returns the number of redo steps.
func (h *History) RedoCount() int {
	return len(h.redoStack)
}

// BeginGroup opens a group. Nested calls are counted; the name of the
// outermost group is kept.
func (h *History) BeginGroup(name string) {
	if h.depth == 0 {
		h.groupName = name
		h.groupOps = nil
	}
	h.depth++
}

// EndGroup closes one level of grouping. Closing the outermost level turns
// the collected operations into a single entry.
func (h *History) EndGroup() {
	if h.depth == 0 {
		return
	}
	h.depth--
	if h.depth == 0 {
		h.flushGroup()
	}
}

// closeGroup force-closes any open group so undo never splits one.
func (h *History) closeGroup() {
	if h.depth > 0 {
		h.depth = 0
		h.flushGroup()
	}
}

func (h *History) flushGroup() {
	if len(h.groupOps) > 0 {
		h.push(&Entry{Name: h.groupName, Ops: h.groupOps, Timestamp: time.Now()})
	}
	h.groupOps = nil
	h.groupName = ""
}

// IsGrouping reports whether a group is open.
func (h *History) IsGrouping() bool {
	return h.depth > 0
}

// Clear drops all history.
func (h *History) Clear() {
	h.undoStack = nil
	h.redoStack = nil
	h.depth = 0
	h.groupOps = nil
	h.groupName = ""
}

// SetMaxEntries changes the undo bound, dropping the oldest entries if
// needed.
func (h *History) SetMaxEntries(n int) {
	if n <= 0 {
		n = DefaultMaxEntries
	}
	h.maxEntries = n
	if excess := len(h.undoStack) - n; excess > 0 {
		h.undoStack = h.undoStack[excess:]
	}
}

// Top returns the newest undo entry, or nil. Entries are never reused, so
// comparing Top values tells whether the text moved away from a saved state.
func (h *History) Top() *Entry {
	if len(h.undoStack) == 0 {
		return nil
	}
	return h.undoStack[len(h.undoStack)-1]
}

// PeekUndo returns the entry the next Undo would revert.
func (h *History) PeekUndo() (*Entry, bool) {
	if len(h.undoStack) == 0 {
		return nil, false
	}
	return h.undoStack[len(h.undoStack)-1], true
}
