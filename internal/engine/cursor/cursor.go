package cursor

import (
	"fmt"
	"math"
	"unicode/utf8"
)

// Text is the line-oriented view of a buffer that motions read.
type Text interface {
	LineCount() int
	Line(n int) string
}

// EndOfLine is the desired column set by "$"; vertical motions then stick
// to the end of every line they pass.
const EndOfLine = math.MaxInt

// Bound selects how far right a cursor may rest on a line.
type Bound uint8

const (
	// BoundLastChar keeps the cursor on the last character (Normal mode).
	BoundLastChar Bound = iota

	// BoundPastEnd allows the position after the last character (Insert
	// mode and operator targets).
	BoundPastEnd
)

// Cursor is a position in a buffer. It is an immutable value type.
type Cursor struct {
	Line       int
	Col        int
	DesiredCol int
}

// At returns a cursor at line and col whose desired column is col.
func At(line, col int) Cursor {
	return Cursor{Line: line, Col: col, DesiredCol: col}
}

// Pos returns the cursor's position without the desired column.
func (c Cursor) Pos() Pos {
	return Pos{Line: c.Line, Col: c.Col}
}

// String returns a human-readable representation of the cursor.
func (c Cursor) String() string {
	return fmt.Sprintf("(%d:%d)", c.Line, c.Col)
}

// Pos is a line and column without desired-column memory.
type Pos struct {
	Line int
	Col  int
}

// Compare returns -1, 0 or 1 as p is before, equal to or after o.
func (p Pos) Compare(o Pos) int {
	switch {
	case p.Line != o.Line:
		if p.Line < o.Line {
			return -1
		}
		return 1
	case p.Col < o.Col:
		return -1
	case p.Col > o.Col:
		return 1
	}
	return 0
}

// Before reports whether p comes before o.
func (p Pos) Before(o Pos) bool {
	return p.Compare(o) < 0
}

// LineLen returns the character length of line n.
func LineLen(t Text, n int) int {
	return utf8.RuneCountInString(t.Line(n))
}

// MaxCol returns the rightmost column allowed on line n under b.
func MaxCol(t Text, n int, b Bound) int {
	l := LineLen(t, n)
	if b == BoundLastChar && l > 0 {
		return l - 1
	}
	return l
}

// Clamp returns c moved into the text under b. The desired column is kept.
func (c Cursor) Clamp(t Text, b Bound) Cursor {
	c.Line = min(max(c.Line, 0), t.LineCount()-1)
	c.Col = min(max(c.Col, 0), MaxCol(t, c.Line, b))
	return c
}

// Valid reports whether c lies inside the text under b.
func (c Cursor) Valid(t Text, b Bound) bool {
	return c.Line >= 0 && c.Line < t.LineCount() &&
		c.Col >= 0 && c.Col <= MaxCol(t, c.Line, b)
}

// FirstNonBlank returns the column of the first non-blank character of line
// n, or the last column when the line is all blanks.
func FirstNonBlank(t Text, n int) int {
	col := 0
	for _, r := range t.Line(n) {
		if r != ' ' && r != '\t' {
			return col
		}
		col++
	}
	return max(col-1, 0)
}
