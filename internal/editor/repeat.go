package editor

import (
	"github.com/dshills/kestrel/internal/engine/cursor"
	"github.com/dshills/kestrel/internal/input/mode"
	"github.com/dshills/kestrel/internal/input/vim"
)

// change is what "." repeats: the action that made the change and, when
// it opened an insert session, everything typed until Esc.
type change struct {
	head  vim.Action
	typed []vim.Action
}

// repeatHead returns the action "." should replay for a, or nil when a is
// not a change. It runs before a is applied, while a visual selection
// still exists.
func (e *Editor) repeatHead(a vim.Action) vim.Action {
	switch a := a.(type) {
	case vim.Operate:
		if a.Operator != vim.OpYank {
			return a
		}
	case vim.VisualOperate:
		if a.Operator != vim.OpYank {
			return e.visualRepeat(a)
		}
	case vim.DeleteChar, vim.Paste, vim.Join, vim.ReplaceChar, vim.ToggleCase, vim.EnterInsert:
		return a
	}
	return nil
}

// visualRepeat turns a visual operator into one that covers as much text
// from the cursor: the same number of lines, or characters for a selection
// within one line. Charwise selections over several lines do not repeat.
func (e *Editor) visualRepeat(a vim.VisualOperate) vim.Action {
	start, end := e.selection()
	op := vim.Operate{Operator: a.Operator, Register: a.Register}
	switch {
	case e.modes.Mode() == mode.VisualLine:
		op.Count, op.Lines = end.Line-start.Line+1, true
	case start.Line == end.Line:
		op.Count, op.Motion = end.Col-start.Col+1, &cursor.Right
	default:
		return nil
	}
	return op
}

// record notes a completed action for ".". Actions typed in an insert
// session that a change opened are collected until the session ends.
func (e *Editor) record(a, head vim.Action, ok bool) {
	if e.replaying {
		return
	}
	if e.pendingChange != nil {
		if e.modes.Mode() == mode.Insert {
			e.pendingChange.typed = append(e.pendingChange.typed, a)
			return
		}
		e.last, e.pendingChange = e.pendingChange, nil
		return
	}
	if !ok || head == nil {
		return
	}
	ch := &change{head: head}
	if e.modes.Mode() == mode.Insert {
		e.pendingChange = ch
		return
	}
	e.last = ch
}

// repeat is ".". A count replaces the count of the repeated change and is
// kept for the next ".".
func (e *Editor) repeat(count int) error {
	if e.last == nil {
		return nil
	}
	if count > 0 {
		e.last = &change{head: withCount(e.last.head, count), typed: e.last.typed}
	}
	ch := e.last

	e.replaying = true
	defer func() { e.replaying = false }()

	if err := e.apply(ch.head); err != nil {
		return err
	}
	for _, a := range ch.typed {
		if err := e.apply(a); err != nil {
			break
		}
	}
	if e.modes.Mode() == mode.Insert {
		e.exitInsert()
	}
	return nil
}

func withCount(a vim.Action, n int) vim.Action {
	switch a := a.(type) {
	case vim.Operate:
		a.Count = n
		return a
	case vim.DeleteChar:
		a.Count = n
		return a
	case vim.Paste:
		a.Count = n
		return a
	case vim.Join:
		a.Count = n
		return a
	case vim.ReplaceChar:
		a.Count = n
		return a
	case vim.ToggleCase:
		a.Count = n
		return a
	}
	return a
}
