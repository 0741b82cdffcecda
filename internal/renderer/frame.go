package renderer

import (
	"github.com/dshills/kestrel/internal/engine/cursor"
	"github.com/dshills/kestrel/internal/renderer/backend"
	"github.com/dshills/kestrel/internal/renderer/statusline"
	"github.com/dshills/kestrel/internal/renderer/viewport"
)

// Frame is everything drawn in one refresh.
type Frame struct {
	Windows []Window

	// CommandActive shows Command after Prompt on the bottom line. An
	// empty Prompt is ":".
	CommandActive bool
	Prompt        string
	Command       string

	// Message is shown on the bottom line when no command is typed.
	Message      string
	MessageError bool

	// Finder, when set, is drawn over the lower part of the screen.
	Finder *Finder

	CursorStyle backend.CursorStyle
}

// Window is one window's content.
type Window struct {
	Text   cursor.Text
	View   *viewport.Viewport
	Cursor cursor.Cursor
	Active bool

	// Selection is the visual selection, nil outside Visual mode.
	Selection *Selection

	Status  statusline.Info
	Number  bool
	TabStop int
}

// Selection is an inclusive range of characters, or of whole lines when
// Linewise is set. Start is not after End.
type Selection struct {
	Start    cursor.Pos
	End      cursor.Pos
	Linewise bool
}

// Contains reports whether character col of line is selected.
func (s *Selection) Contains(line, col int) bool {
	if s == nil || line < s.Start.Line || line > s.End.Line {
		return false
	}
	if s.Linewise {
		return true
	}
	p := cursor.Pos{Line: line, Col: col}
	return !p.Before(s.Start) && !s.End.Before(p)
}

// Finder is the finder overlay.
type Finder struct {
	Prompt string
	Query  string
	Items  []FinderItem

	// Selected indexes Items.
	Selected int

	// Total is the number of candidates searched.
	Total   int
	Loading bool
}

// FinderItem is one ranked result with the matched character indexes.
type FinderItem struct {
	Text      string
	Positions []int
}

// Rect is a screen area.
type Rect struct {
	X, Y          int
	Width, Height int
}

// Split divides a screen of width by height cells among n stacked windows.
// The last row is left for the command line. Each rect includes the
// window's status line as its last row; extra rows go to the last window.
func Split(width, height, n int) []Rect {
	n = max(n, 1)
	avail := max(height-1, n*2)
	each := avail / n
	rects := make([]Rect, n)
	y := 0
	for i := range rects {
		h := each
		if i == n-1 {
			h = avail - y
		}
		rects[i] = Rect{X: 0, Y: y, Width: width, Height: h}
		y += h
	}
	return rects
}
