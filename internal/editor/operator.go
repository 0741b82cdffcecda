package editor

import (
	"errors"
	"fmt"
	"strings"
	"unicode"

	"github.com/dshills/kestrel/internal/engine/buffer"
	"github.com/dshills/kestrel/internal/engine/cursor"
	"github.com/dshills/kestrel/internal/engine/history"
	"github.com/dshills/kestrel/internal/input/mode"
	"github.com/dshills/kestrel/internal/input/vim"
	"github.com/dshills/kestrel/internal/register"
)

// reportLines is the line count above which yanks, deletes and pastes
// report how many lines they touched.
const reportLines = 2

// region is a span resolved to buffer offsets and register text.
type region struct {
	start, end int
	text       string
	kind       register.Kind
	lines      int
}

func (e *Editor) resolve(s cursor.Span) (region, error) {
	buf := e.Buffer()
	if s.Linewise {
		first, last := s.Start.Line, min(s.End.Line, buf.LineCount()-1)
		var b strings.Builder
		for l := first; l <= last; l++ {
			b.WriteString(buf.Line(l))
			b.WriteByte('\n')
		}
		r := region{text: b.String(), kind: register.LineWise, lines: last - first + 1}
		switch {
		case last+1 < buf.LineCount():
			r.start, r.end = buf.LineStart(first), buf.LineStart(last+1)
		case first > 0:
			// The last line has no newline of its own; take the one before.
			r.start, r.end = buf.LineStart(first)-1, buf.Len()
		default:
			r.start, r.end = 0, buf.Len()
		}
		return r, nil
	}

	start, err := buf.OffsetOf(s.Start.Line, s.Start.Col)
	if err != nil {
		return region{}, err
	}
	end, err := buf.OffsetOf(s.End.Line, s.End.Col)
	if err != nil {
		return region{}, err
	}
	text, err := buf.Slice(start, end)
	if err != nil {
		return region{}, err
	}
	return region{
		start: start,
		end:   end,
		text:  text,
		kind:  register.CharacterWise,
		lines: strings.Count(text, "\n") + 1,
	}, nil
}

// edit runs fn as one undo step and re-clamps the windows on the buffer.
func (e *Editor) edit(name string, fn func(b *buffer.Buffer) error) error {
	buf := e.Buffer()
	if buf.ReadOnly() {
		return buffer.ErrReadOnly
	}
	buf.BeginGroup(name)
	err := fn(buf)
	buf.EndGroup()
	e.changed(buf)
	return err
}

// operatorSpan resolves the text an Operate action covers. It returns
// errNoTarget when the motion, jump or object finds nothing to act on.
func (e *Editor) operatorSpan(a vim.Operate) (cursor.Span, error) {
	buf := e.Buffer()
	c := e.Cursor()

	switch {
	case a.Lines:
		last := min(c.Line+max(a.Count, 1)-1, buf.LineCount()-1)
		return cursor.Span{Start: cursor.Pos{Line: c.Line}, End: cursor.Pos{Line: last}, Linewise: true}, nil

	case a.Object != nil:
		s, ok := a.Object.Select(buf, c, a.Inner)
		if !ok {
			return cursor.Span{}, errNoTarget
		}
		return s, nil

	case a.Jump != nil:
		to, kind, err := e.target(a.Jump, a.Count)
		if err != nil {
			return cursor.Span{}, err
		}
		return cursor.SpanOf(buf, kind, c.Pos(), to.Pos()), nil

	case a.Motion != nil:
		m := a.Motion
		if a.Operator == vim.OpChange && !cursor.IsBlankAt(buf, c.Pos()) {
			if s, ok := changeWord(buf, c, m, a.Count); ok {
				return s, nil
			}
		}
		to := m.ApplyPending(buf, c, a.Count)
		if m.Failed(c, to) {
			return cursor.Span{}, errNoTarget
		}
		return cursor.SpanOf(buf, m.Kind, c.Pos(), to.Pos()), nil
	}
	return cursor.Span{}, errNoTarget
}

// changeWord makes "cw" act like "ce" on a non-blank. On the last
// character of a word the first step covers only that character.
func changeWord(t cursor.Text, c cursor.Cursor, m *cursor.Motion, count int) (cursor.Span, bool) {
	var end *cursor.Motion
	big := false
	switch m {
	case &cursor.WordForward:
		end = &cursor.WordEnd
	case &cursor.BigWordForward:
		end, big = &cursor.BigWordEnd, true
	default:
		return cursor.Span{}, false
	}

	n := max(count, 1)
	if cursor.AtWordEnd(t, c.Pos(), big) {
		n--
	}
	to := c
	if n > 0 {
		to = end.ApplyPending(t, c, n)
	}
	return cursor.SpanOf(t, cursor.Inclusive, c.Pos(), to.Pos()), true
}

func (e *Editor) operate(a vim.Operate) error {
	s, err := e.operatorSpan(a)
	if err != nil {
		return err
	}
	if s.IsEmpty() && a.Operator != vim.OpChange {
		return nil
	}
	return e.applyOperator(a.Operator, a.Register, s)
}

// applyOperator yanks, deletes, changes, re-cases or shifts a span.
// Deleting writes the registers first, then removes the text; changing
// also opens an insert session in the same undo step.
func (e *Editor) applyOperator(op vim.Operator, reg rune, s cursor.Span) error {
	buf := e.Buffer()
	if op != vim.OpYank && buf.ReadOnly() {
		return buffer.ErrReadOnly
	}
	r, err := e.resolve(s)
	if err != nil {
		return err
	}

	switch op {
	case vim.OpYank:
		if err := e.regs.Yank(reg, r.text, r.kind); err != nil {
			return err
		}
		if s.Linewise {
			c := e.Cursor()
			c.Line = s.Start.Line
			e.setCursor(c)
		} else {
			e.moveTo(s.Start)
		}
		if s.Linewise && r.lines > reportLines {
			e.SetStatus(fmt.Sprintf("%d lines yanked", r.lines))
		}
		return nil

	case vim.OpDelete:
		if err := e.regs.Delete(reg, r.text, r.kind); err != nil {
			return err
		}
		if err := e.edit("delete", func(b *buffer.Buffer) error {
			return b.Delete(r.start, r.end)
		}); err != nil {
			return err
		}
		if s.Linewise {
			line := min(s.Start.Line, buf.LineCount()-1)
			e.moveTo(cursor.Pos{Line: line, Col: cursor.FirstNonBlank(buf, line)})
			if r.lines > reportLines {
				e.SetStatus(fmt.Sprintf("%d fewer lines", r.lines))
			}
		} else {
			e.moveTo(s.Start)
		}
		return nil

	case vim.OpChange:
		if err := e.regs.Delete(reg, r.text, r.kind); err != nil {
			return err
		}
		start, end, at := r.start, r.end, s.Start
		if s.Linewise {
			// Keep one empty line to type into.
			last := min(s.End.Line, buf.LineCount()-1)
			start = buf.LineStart(s.Start.Line)
			end = buf.LineStart(last) + cursor.LineLen(buf, last)
			at = cursor.Pos{Line: s.Start.Line}
		}
		buf.BeginGroup("change")
		if err := buf.Delete(start, end); err != nil {
			buf.EndGroup()
			return err
		}
		if err := e.modes.Switch(mode.Insert); err != nil {
			buf.EndGroup()
			return err
		}
		e.inserting = true
		e.changed(buf)
		e.moveTo(at)
		return nil

	case vim.OpLower, vim.OpUpper, vim.OpToggleCase:
		return e.changeCase(op, s, r)

	case vim.OpIndent, vim.OpOutdent:
		return e.shift(op, s)
	}
	return fmt.Errorf("unknown operator %q", rune(op))
}

// caseMapper returns the rune mapping of a case operator.
func caseMapper(op vim.Operator) func(rune) rune {
	switch op {
	case vim.OpLower:
		return unicode.ToLower
	case vim.OpUpper:
		return unicode.ToUpper
	}
	return toggleRune
}

func toggleRune(r rune) rune {
	if unicode.IsUpper(r) {
		return unicode.ToLower(r)
	}
	return unicode.ToUpper(r)
}

// changeCase maps every character of a span. Registers are untouched.
func (e *Editor) changeCase(op vim.Operator, s cursor.Span, r region) error {
	buf := e.Buffer()
	start, end := r.start, r.end
	if s.Linewise {
		last := min(s.End.Line, buf.LineCount()-1)
		start = buf.LineStart(s.Start.Line)
		end = buf.LineStart(last) + cursor.LineLen(buf, last)
	}
	text, err := buf.Slice(start, end)
	if err != nil {
		return err
	}
	if mapped := strings.Map(caseMapper(op), text); mapped != text {
		if err := e.edit("case", func(b *buffer.Buffer) error {
			return b.Replace(start, end, mapped)
		}); err != nil {
			return err
		}
	}

	if s.Linewise {
		c := e.Cursor()
		c.Line = s.Start.Line
		e.setCursor(c)
		if r.lines > reportLines {
			e.SetStatus(fmt.Sprintf("%d lines changed", r.lines))
		}
		return nil
	}
	e.moveTo(s.Start)
	return nil
}

// toggleCase is "~": count characters from the cursor switch case and the
// cursor moves past them, stopping on the last character of the line.
func (e *Editor) toggleCase(count int) error {
	buf := e.Buffer()
	c := e.Cursor()
	l := cursor.LineLen(buf, c.Line)
	if l == 0 {
		return nil
	}
	end := min(c.Col+max(count, 1), l)
	start, err := buf.OffsetOf(c.Line, c.Col)
	if err != nil {
		return err
	}
	text, err := buf.Slice(start, start+end-c.Col)
	if err != nil {
		return err
	}
	if err := e.edit("case", func(b *buffer.Buffer) error {
		return b.Replace(start, start+end-c.Col, strings.Map(toggleRune, text))
	}); err != nil {
		return err
	}
	e.moveTo(cursor.Pos{Line: c.Line, Col: min(end, l-1)})
	return nil
}

// shift is > and <: every non-empty line of the span gains or loses one
// shiftwidth of indent. The new indent uses tabs unless expandtab is set.
func (e *Editor) shift(op vim.Operator, s cursor.Span) error {
	buf := e.Buffer()
	first, last := s.Start.Line, min(s.End.Line, buf.LineCount()-1)
	if !s.Linewise && s.End.Col == 0 && last > first {
		last--
	}
	sw, ts := e.opts.shiftWidth(), e.opts.TabStop

	err := e.edit("shift", func(b *buffer.Buffer) error {
		for l := first; l <= last; l++ {
			line := b.Line(l)
			if line == "" {
				continue
			}
			lead := len(line) - len(strings.TrimLeft(line, " \t"))
			width := indentWidth(line[:lead], ts)
			if op == vim.OpIndent {
				width += sw
			} else {
				width = max(width-sw, 0)
			}
			start := b.LineStart(l)
			if err := b.Replace(start, start+lead, e.indent(width)); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return err
	}

	e.moveTo(cursor.Pos{Line: first, Col: cursor.FirstNonBlank(buf, first)})
	if n := last - first + 1; n > reportLines {
		e.SetStatus(fmt.Sprintf("%d lines %ced 1 time", n, rune(op)))
	}
	return nil
}

// indentWidth returns the screen width of leading blanks.
func indentWidth(lead string, tabStop int) int {
	w := 0
	for _, r := range lead {
		if r == '\t' {
			w += tabStop - w%tabStop
		} else {
			w++
		}
	}
	return w
}

// indent builds leading blanks of the given width.
func (e *Editor) indent(width int) string {
	if e.opts.ExpandTab {
		return strings.Repeat(" ", width)
	}
	ts := e.opts.TabStop
	return strings.Repeat("\t", width/ts) + strings.Repeat(" ", width%ts)
}

// deleteChar is x and X: a characterwise delete within the line.
func (e *Editor) deleteChar(a vim.DeleteChar) error {
	buf := e.Buffer()
	c := e.Cursor()
	n := max(a.Count, 1)
	l := cursor.LineLen(buf, c.Line)

	start, end := c.Col, min(c.Col+n, l)
	if a.Before {
		start, end = max(c.Col-n, 0), c.Col
	}
	if start >= end {
		return nil
	}
	s := cursor.Span{Start: cursor.Pos{Line: c.Line, Col: start}, End: cursor.Pos{Line: c.Line, Col: end}}
	return e.applyOperator(vim.OpDelete, a.Register, s)
}

func registerName(r rune) string {
	if r == 0 {
		r = register.Unnamed
	}
	return string(r)
}

func (e *Editor) paste(a vim.Paste) error {
	content, err := e.regs.Get(a.Register)
	if err != nil {
		return err
	}
	if content.IsEmpty() {
		return fmt.Errorf("%w: %s", register.ErrEmpty, registerName(a.Register))
	}

	buf := e.Buffer()
	p := register.Place(buf, e.Cursor().Pos(), content, a.Count, a.Before)
	off, err := buf.OffsetOf(p.At.Line, p.At.Col)
	if err != nil {
		return err
	}
	if err := e.edit("paste", func(b *buffer.Buffer) error {
		return b.Insert(off, p.Text)
	}); err != nil {
		return err
	}
	e.moveTo(p.Cursor)

	if content.Kind == register.LineWise {
		if n := strings.Count(content.Text, "\n") * max(a.Count, 1); n > reportLines {
			e.SetStatus(fmt.Sprintf("%d more lines", n))
		}
	}
	return nil
}

func (e *Editor) undo(count int) error {
	return e.stepHistory(count, "Already at oldest change", history.ErrNothingToUndo, (*buffer.Buffer).Undo)
}

func (e *Editor) redo(count int) error {
	return e.stepHistory(count, "Already at newest change", history.ErrNothingToRedo, (*buffer.Buffer).Redo)
}

// stepHistory steps undo or redo count times and puts the cursor where the
// last step changed the text.
func (e *Editor) stepHistory(count int, limit string, exhausted error, step func(*buffer.Buffer) (int, error)) error {
	buf := e.Buffer()
	off, done := 0, 0
	for range max(count, 1) {
		o, err := step(buf)
		if errors.Is(err, exhausted) {
			break
		}
		if err != nil {
			return err
		}
		off = o
		done++
	}
	if done == 0 {
		e.SetStatus(limit)
		return nil
	}

	e.changed(buf)
	pos, err := buf.PositionOf(off)
	if err != nil {
		return err
	}
	e.moveTo(cursor.Pos{Line: pos.Line, Col: pos.Col})
	return nil
}

// join is J: count lines (at least two) become one. Leading blanks of each
// joined line are dropped and one space separates the parts, except after
// a blank, before ')' or around an empty line.
func (e *Editor) join(count int) error {
	buf := e.Buffer()
	c := e.Cursor()
	last := min(c.Line+max(count, 2)-1, buf.LineCount()-1)
	if last == c.Line {
		return nil
	}

	col := 0
	err := e.edit("join", func(b *buffer.Buffer) error {
		for range last - c.Line {
			cur := b.Line(c.Line)
			next := b.Line(c.Line + 1)
			trimmed := strings.TrimLeft(next, " \t")

			sep := " "
			if cur == "" || trimmed == "" || strings.HasSuffix(cur, " ") ||
				strings.HasSuffix(cur, "\t") || strings.HasPrefix(trimmed, ")") {
				sep = ""
			}

			curLen := cursor.LineLen(b, c.Line)
			start := b.LineStart(c.Line) + curLen
			end := b.LineStart(c.Line+1) + len([]rune(next)) - len([]rune(trimmed))
			if err := b.Replace(start, end, sep); err != nil {
				return err
			}
			col = curLen
			if sep == "" && curLen > 0 {
				col = curLen - 1
			}
		}
		return nil
	})
	if err != nil {
		return err
	}
	e.moveTo(cursor.Pos{Line: c.Line, Col: col})
	return nil
}

// replaceChar is r{char}: count characters from the cursor are replaced.
// Nothing changes when the line is too short.
func (e *Editor) replaceChar(a vim.ReplaceChar) error {
	buf := e.Buffer()
	c := e.Cursor()
	n := max(a.Count, 1)
	if c.Col+n > cursor.LineLen(buf, c.Line) {
		return nil
	}
	off, err := buf.OffsetOf(c.Line, c.Col)
	if err != nil {
		return err
	}
	if err := e.edit("replace", func(b *buffer.Buffer) error {
		return b.Replace(off, off+n, strings.Repeat(string(a.Char), n))
	}); err != nil {
		return err
	}
	e.moveTo(cursor.Pos{Line: c.Line, Col: c.Col + n - 1})
	return nil
}
