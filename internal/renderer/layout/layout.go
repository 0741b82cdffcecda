// Package layout maps buffer characters to screen columns.
package layout

import (
	"github.com/mattn/go-runewidth"
)

// Line is the screen layout of one buffer line. Tabs expand to the next
// tab stop; wide characters take two columns; zero-width characters share
// the column of the character before them.
type Line struct {
	Runes []rune

	// Cols holds the screen column where each rune starts, with one extra
	// entry for the column after the last rune.
	Cols []int

	TabStop int
}

// Lay computes the layout of text with tabs every tabStop columns.
func Lay(text string, tabStop int) Line {
	if tabStop < 1 {
		tabStop = 8
	}
	runes := []rune(text)
	cols := make([]int, len(runes)+1)
	col := 0
	for i, r := range runes {
		cols[i] = col
		col += Width(r, col, tabStop)
	}
	cols[len(runes)] = col
	return Line{Runes: runes, Cols: cols, TabStop: tabStop}
}

// Width returns the columns r takes when it starts at screen column col.
func Width(r rune, col, tabStop int) int {
	if r == '\t' {
		return tabStop - col%tabStop
	}
	if r < ' ' || r == 0x7f {
		// Control characters show as ^X.
		return 2
	}
	return runewidth.RuneWidth(r)
}

// Width returns the total screen width of the line.
func (l Line) Width() int {
	return l.Cols[len(l.Cols)-1]
}

// ScreenCol returns the screen column of character col. Columns past the
// end continue one cell per character.
func (l Line) ScreenCol(col int) int {
	if col < 0 {
		return 0
	}
	if col < len(l.Cols) {
		return l.Cols[col]
	}
	return l.Width() + col - len(l.Runes)
}

// CharAt returns the character index covering screen column sc.
func (l Line) CharAt(sc int) int {
	for i := range l.Runes {
		if sc < l.Cols[i+1] {
			return i
		}
	}
	return len(l.Runes)
}

// Glyph is one cell of drawn text.
type Glyph struct {
	Rune rune

	// Char is the index of the buffer character the cell shows.
	Char int
}

// Cells renders the line as cells starting at screen column left, at most
// width cells. A wide character cut by the left edge shows as a blank, and
// its second cell is a Glyph with Rune 0.
func (l Line) Cells(left, width int) []Glyph {
	out := make([]Glyph, 0, width)
	for i, r := range l.Runes {
		start, end := l.Cols[i], l.Cols[i+1]
		if end <= left || start == end {
			continue
		}
		if start >= left+width {
			break
		}
		for c := start; c < end; c++ {
			if c < left || c >= left+width {
				continue
			}
			out = append(out, Glyph{Rune: glyph(r, c-start, start < left), Char: i})
		}
	}
	return out
}

// glyph returns the rune shown in cell n of character r.
func glyph(r rune, n int, clipped bool) rune {
	switch {
	case r == '\t':
		return ' '
	case r < ' ' || r == 0x7f:
		if n == 0 {
			return '^'
		}
		return r ^ 0x40
	case clipped:
		return ' '
	case n > 0:
		return 0
	}
	return r
}
