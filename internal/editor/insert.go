package editor

import (
	"strings"
	"unicode/utf8"

	"github.com/dshills/kestrel/internal/engine/buffer"
	"github.com/dshills/kestrel/internal/engine/cursor"
	"github.com/dshills/kestrel/internal/input/mode"
	"github.com/dshills/kestrel/internal/input/vim"
	"github.com/dshills/kestrel/internal/renderer/layout"
)

// enterInsert starts an insert session. Everything typed until Esc is one
// undo step, including the line o and O open.
func (e *Editor) enterInsert(at vim.InsertPoint) error {
	buf := e.Buffer()
	if buf.ReadOnly() {
		return buffer.ErrReadOnly
	}
	c := e.Cursor()
	if err := e.modes.Switch(mode.Insert); err != nil {
		return err
	}
	buf.BeginGroup("insert")
	e.inserting = true

	switch at {
	case vim.InsertLineStart:
		c = cursor.At(c.Line, cursor.FirstNonBlank(buf, c.Line))
	case vim.Append:
		if cursor.LineLen(buf, c.Line) > 0 {
			c = cursor.At(c.Line, c.Col+1)
		}
	case vim.AppendLineEnd:
		c = cursor.At(c.Line, cursor.LineLen(buf, c.Line))
	case vim.OpenBelow, vim.OpenAbove:
		off := buf.LineStart(c.Line)
		line := c.Line
		if at == vim.OpenBelow {
			off += cursor.LineLen(buf, c.Line)
			line++
		}
		if err := buf.Insert(off, "\n"); err != nil {
			e.exitInsert()
			return err
		}
		e.changed(buf)
		c = cursor.At(line, 0)
	}
	e.setCursor(c)
	return nil
}

// exitInsert ends the insert session and steps the cursor back onto the
// last character typed. On an empty line it stays at column 0.
func (e *Editor) exitInsert() {
	if e.inserting {
		e.Buffer().EndGroup()
		e.inserting = false
	}
	c := e.Cursor()
	e.modes.Reset()
	if c.Col > 0 {
		c.Col--
	}
	c.DesiredCol = c.Col
	e.setCursor(c)
}

// insertText types text at the cursor. A tab becomes spaces up to the next
// tab stop when expandtab is set.
func (e *Editor) insertText(text string) error {
	buf := e.Buffer()
	c := e.Cursor()
	if text == "\t" && e.opts.ExpandTab {
		col := layout.Lay(buf.Line(c.Line), e.opts.TabStop).ScreenCol(c.Col)
		text = strings.Repeat(" ", e.opts.TabStop-col%e.opts.TabStop)
	}

	off, err := buf.OffsetOf(c.Line, c.Col)
	if err != nil {
		return err
	}
	if err := buf.Insert(off, text); err != nil {
		return err
	}
	e.changed(buf)
	return e.moveToOffset(off + utf8.RuneCountInString(text))
}

// backspace deletes the character before the cursor, joining with the
// previous line at column 0.
func (e *Editor) backspace() error {
	buf := e.Buffer()
	c := e.Cursor()
	off, err := buf.OffsetOf(c.Line, c.Col)
	if err != nil || off == 0 {
		return err
	}
	if err := buf.Delete(off-1, off); err != nil {
		return err
	}
	e.changed(buf)
	return e.moveToOffset(off - 1)
}

// deleteForward deletes the character under the cursor, joining with the
// next line at the end of a line.
func (e *Editor) deleteForward() error {
	buf := e.Buffer()
	c := e.Cursor()
	off, err := buf.OffsetOf(c.Line, c.Col)
	if err != nil || off >= buf.Len() {
		return err
	}
	if err := buf.Delete(off, off+1); err != nil {
		return err
	}
	e.changed(buf)
	return e.moveToOffset(off)
}

func (e *Editor) moveToOffset(off int) error {
	pos, err := e.Buffer().PositionOf(off)
	if err != nil {
		return err
	}
	e.moveTo(cursor.Pos{Line: pos.Line, Col: pos.Col})
	return nil
}
