package history

// GroupScope closes a group when End is called, typically via defer:
//
//	defer h.GroupScope("paste").End()
type GroupScope struct {
	history *History
	active  bool
}

// GroupScope opens a group and returns its scope.
func (h *History) GroupScope(name string) *GroupScope {
	h.BeginGroup(name)
	return &GroupScope{history: h, active: true}
}

// End closes the group. Only the first call has effect.
func (g *GroupScope) End() {
	if g.active {
		g.history.EndGroup()
		g.active = false
	}
}

// Transaction runs fn inside a group. Operations recorded before an error
// stay in history so the buffer and its undo stack agree.
func (h *History) Transaction(name string, fn func() error) error {
	h.BeginGroup(name)
	defer h.EndGroup()
	return fn()
}

// Checkpoint marks an undo depth to return to.
type Checkpoint struct {
	depth int
}

// Checkpoint returns the current undo depth.
func (h *History) Checkpoint() Checkpoint {
	return Checkpoint{depth: len(h.undoStack)}
}

// UndoTo undoes entries until the stack is back at cp.
func (h *History) UndoTo(cp Checkpoint, e Editable) error {
	for len(h.undoStack) > cp.depth {
		if _, err := h.Undo(e); err != nil {
			return err
		}
	}
	return nil
}
