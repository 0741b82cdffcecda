// Package viewport tracks the visible part of a buffer in a window.
package viewport

// Viewport is the visible window into a buffer: the first visible line, the
// first visible screen column and the size in cells. It scrolls immediately;
// there is no animation.
type Viewport struct {
	topLine    int
	leftColumn int

	width  int
	height int

	// scrollOff keeps this many lines visible above and below the cursor
	// when the viewport is tall enough.
	scrollOff int
}

// New creates a viewport with the given size.
// Width and height are clamped to a minimum of 1.
func New(width, height int) *Viewport {
	return &Viewport{width: max(width, 1), height: max(height, 1)}
}

// Width returns the viewport width in cells.
func (v *Viewport) Width() int {
	return v.width
}

// Height returns the viewport height in lines.
func (v *Viewport) Height() int {
	return v.height
}

// TopLine returns the first visible line.
func (v *Viewport) TopLine() int {
	return v.topLine
}

// BottomLine returns the last line the viewport can show.
func (v *Viewport) BottomLine() int {
	return v.topLine + v.height - 1
}

// LeftColumn returns the first visible screen column.
func (v *Viewport) LeftColumn() int {
	return v.leftColumn
}

// Resize changes the viewport size. Width and height are clamped to a
// minimum of 1.
func (v *Viewport) Resize(width, height int) {
	v.width = max(width, 1)
	v.height = max(height, 1)
}

// SetScrollOff sets the number of context lines kept around the cursor.
func (v *Viewport) SetScrollOff(n int) {
	v.scrollOff = max(n, 0)
}

// ScrollOff returns the context line count.
func (v *Viewport) ScrollOff() int {
	return v.scrollOff
}

// effectiveScrollOff never lets the margins overlap.
func (v *Viewport) effectiveScrollOff() int {
	return min(v.scrollOff, (v.height-1)/2)
}

// VisibleRange returns the first and last visible lines for a buffer with
// lineCount lines.
func (v *Viewport) VisibleRange(lineCount int) (first, last int) {
	return v.topLine, min(v.BottomLine(), max(lineCount-1, 0))
}

// IsLineVisible reports whether line is on screen.
func (v *Viewport) IsLineVisible(line int) bool {
	return line >= v.topLine && line <= v.BottomLine()
}

// Follow scrolls the least amount needed to show the cursor at line and
// screen column col. It reports whether the viewport moved.
func (v *Viewport) Follow(line, col int) bool {
	top, left := v.topLine, v.leftColumn
	off := v.effectiveScrollOff()

	if line-off < v.topLine {
		v.topLine = max(line-off, 0)
	}
	if line+off > v.BottomLine() {
		v.topLine = line + off - v.height + 1
	}

	if col < v.leftColumn {
		v.leftColumn = col
	}
	if col >= v.leftColumn+v.width {
		v.leftColumn = col - v.width + 1
	}

	return top != v.topLine || left != v.leftColumn
}

// ScrollTo makes line the top line.
func (v *Viewport) ScrollTo(line int) {
	v.topLine = max(line, 0)
}

// ScrollBy moves the top line by delta lines, stopping at the first line.
func (v *Viewport) ScrollBy(delta int) {
	v.ScrollTo(v.topLine + delta)
}

// HalfPage returns the number of lines a half-page scroll moves.
func (v *Viewport) HalfPage() int {
	return max(v.height/2, 1)
}

// Clamp keeps the top line inside a buffer of lineCount lines. Call it after
// a structural edit shrinks the buffer.
func (v *Viewport) Clamp(lineCount int) {
	v.topLine = min(v.topLine, max(lineCount-1, 0))
}

// LineToRow converts a buffer line to a screen row relative to the viewport.
func (v *Viewport) LineToRow(line int) int {
	return line - v.topLine
}

// RowToLine converts a screen row to a buffer line.
func (v *Viewport) RowToLine(row int) int {
	return v.topLine + row
}

// ColumnToScreen converts an absolute screen column to a viewport column.
func (v *Viewport) ColumnToScreen(col int) int {
	return col - v.leftColumn
}
