package backend

import "github.com/mattn/go-runewidth"

// Attr is a set of text attributes.
type Attr uint8

// Text attributes.
const (
	AttrNone Attr = 0
	AttrBold Attr = 1 << (iota - 1)
	AttrDim
	AttrUnderline
	AttrReverse
)

// Has reports whether a contains attr.
func (a Attr) Has(attr Attr) bool {
	return a&attr != 0
}

// Color is a terminal palette color. ColorDefault leaves the terminal's own
// color in place.
type Color int16

// Colors used by the editor.
const (
	ColorDefault Color = -1
	ColorBlack   Color = 0
	ColorRed     Color = 1
	ColorGreen   Color = 2
	ColorYellow  Color = 3
	ColorBlue    Color = 4
	ColorMagenta Color = 5
	ColorCyan    Color = 6
	ColorWhite   Color = 7
	ColorGray    Color = 8
)

// Style is the look of a cell.
type Style struct {
	Fg    Color
	Bg    Color
	Attrs Attr
}

// DefaultStyle uses the terminal's colors and no attributes.
var DefaultStyle = Style{Fg: ColorDefault, Bg: ColorDefault}

// Foreground returns s with fg as the foreground color.
func (s Style) Foreground(fg Color) Style {
	s.Fg = fg
	return s
}

// Background returns s with bg as the background color.
func (s Style) Background(bg Color) Style {
	s.Bg = bg
	return s
}

// With returns s with attr added.
func (s Style) With(attr Attr) Style {
	s.Attrs |= attr
	return s
}

// Cell is one screen cell. A wide character occupies its cell and a
// continuation cell with Rune 0 to its right.
type Cell struct {
	Rune  rune
	Style Style
}

// EmptyCell is a blank in the default style.
var EmptyCell = Cell{Rune: ' ', Style: DefaultStyle}

// RuneWidth returns the number of columns r occupies: 0, 1 or 2.
func RuneWidth(r rune) int {
	return runewidth.RuneWidth(r)
}
