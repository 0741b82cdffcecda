package editor

import (
	"github.com/dshills/kestrel/internal/engine/cursor"
	"github.com/dshills/kestrel/internal/input/mode"
	"github.com/dshills/kestrel/internal/input/vim"
)

func (e *Editor) enterVisual(linewise bool) error {
	to := mode.Visual
	if linewise {
		to = mode.VisualLine
	}
	return e.modes.EnterVisual(to, e.Cursor().Pos())
}

func (e *Editor) exitVisual() {
	e.modes.Reset()
	e.setCursor(e.Cursor())
}

// swapAnchor is "o" in Visual mode.
func (e *Editor) swapAnchor() {
	a := e.anchor()
	e.modes.SetAnchor(e.Cursor().Pos())
	e.moveTo(a)
}

// selectObject replaces the selection with a text object around the cursor.
func (e *Editor) selectObject(a vim.SelectObject) {
	buf := e.Buffer()
	s, ok := a.Object.Select(buf, e.Cursor(), a.Inner)
	if !ok || s.IsEmpty() {
		return
	}
	end := s.End
	switch {
	case end.Col > 0:
		end.Col--
	case end.Line > s.Start.Line:
		end.Line--
		end.Col = max(cursor.LineLen(buf, end.Line)-1, 0)
	}
	e.modes.SetAnchor(s.Start)
	e.moveTo(end)
}

// anchor returns the selection anchor clamped into the buffer, which may
// have shrunk under it.
func (e *Editor) anchor() cursor.Pos {
	a := e.modes.Anchor()
	return cursor.At(a.Line, a.Col).Clamp(e.Buffer(), cursor.BoundLastChar).Pos()
}

// selection returns the ordered, inclusive ends of the visual selection.
func (e *Editor) selection() (start, end cursor.Pos) {
	start, end = e.anchor(), e.Cursor().Pos()
	if end.Before(start) {
		start, end = end, start
	}
	return start, end
}

// selectionSpan converts the selection to an operator span. A selection
// ending on an empty line takes that line's newline with it.
func (e *Editor) selectionSpan() cursor.Span {
	buf := e.Buffer()
	start, end := e.selection()
	if e.modes.Mode() == mode.VisualLine {
		return cursor.Span{Start: cursor.Pos{Line: start.Line}, End: cursor.Pos{Line: end.Line}, Linewise: true}
	}

	n := cursor.LineLen(buf, end.Line)
	switch {
	case end.Col < n:
		end.Col++
	case end.Line+1 < buf.LineCount():
		end = cursor.Pos{Line: end.Line + 1}
	default:
		end.Col = n
	}
	return cursor.Span{Start: start, End: end}
}

func (e *Editor) visualOperate(a vim.VisualOperate) error {
	s := e.selectionSpan()
	e.modes.Reset()
	return e.applyOperator(a.Operator, a.Register, s)
}
