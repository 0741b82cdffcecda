package renderer

import (
	"fmt"
	"strings"

	"github.com/dshills/kestrel/internal/renderer/backend"
	"github.com/dshills/kestrel/internal/renderer/gutter"
	"github.com/dshills/kestrel/internal/renderer/layout"
	"github.com/dshills/kestrel/internal/renderer/statusline"
)

// Renderer draws frames. It is used only from the editor loop.
type Renderer struct {
	b     backend.Backend
	theme Theme
}

// New creates a renderer drawing on b.
func New(b backend.Backend) *Renderer {
	return &Renderer{b: b, theme: DefaultTheme()}
}

// SetTheme replaces the styles.
func (r *Renderer) SetTheme(t Theme) {
	r.theme = t
}

// Draw renders f and flushes it to the display.
func (r *Renderer) Draw(f Frame) {
	width, height := r.b.Size()
	if width <= 0 || height <= 0 {
		return
	}
	r.b.Clear()

	curX, curY, showCursor := 0, 0, false
	rects := Split(width, height, len(f.Windows))
	for i, w := range f.Windows {
		x, y, ok := r.drawWindow(w, rects[i])
		if w.Active && ok {
			curX, curY, showCursor = x, y, true
		}
	}

	bottom := height - 1
	switch {
	case f.Finder != nil:
		curX, curY = r.drawFinder(f.Finder, width, bottom)
		showCursor = true
	case f.CommandActive:
		prompt := f.Prompt
		if prompt == "" {
			prompt = ":"
		}
		text := statusline.Truncate(prompt+f.Command, width-1)
		r.drawText(0, bottom, width, text, r.theme.Text)
		curX, curY, showCursor = statusline.Width(text), bottom, true
	case f.Message != "":
		style := r.theme.Message
		if f.MessageError {
			style = r.theme.Error
		}
		r.drawText(0, bottom, width, statusline.Truncate(f.Message, width), style)
	}

	if showCursor {
		r.b.SetCursorStyle(f.CursorStyle)
		r.b.ShowCursor(curX, curY)
	} else {
		r.b.HideCursor()
	}
	r.b.Show()
}

// drawWindow draws a window's text and status line and returns the screen
// position of its cursor.
func (r *Renderer) drawWindow(w Window, rect Rect) (int, int, bool) {
	textRows := max(rect.Height-1, 1)
	lineCount := w.Text.LineCount()
	gw := gutter.Width(lineCount, w.Number)
	textWidth := max(rect.Width-gw, 1)

	cur := w.Text.Line(w.Cursor.Line)
	curLayout := layout.Lay(cur, w.TabStop)
	curCol := curLayout.ScreenCol(w.Cursor.Col)
	w.View.Resize(textWidth, textRows)
	w.View.Follow(w.Cursor.Line, curCol)

	top, left := w.View.TopLine(), w.View.LeftColumn()
	for row := 0; row < textRows; row++ {
		y := rect.Y + row
		line := top + row
		if line >= lineCount {
			r.drawText(rect.X, y, rect.Width, gutter.Filler(gw), r.theme.Filler)
			continue
		}
		if gw > 0 {
			style := r.theme.LineNumber
			if line == w.Cursor.Line && w.Active {
				style = r.theme.CursorLineNr
			}
			r.drawText(rect.X, y, gw, gutter.Format(line, gw), style)
		}
		r.drawLine(w, line, rect.X+gw, y, left, textWidth)
	}

	r.drawStatus(w, rect)

	x := rect.X + gw + curCol - left
	y := rect.Y + w.Cursor.Line - top
	return x, y, y >= rect.Y && y < rect.Y+textRows
}

func (r *Renderer) drawLine(w Window, line, x, y, left, width int) {
	l := layout.Lay(w.Text.Line(line), w.TabStop)
	glyphs := l.Cells(left, width)
	for i, g := range glyphs {
		style := r.theme.Text
		if w.Selection.Contains(line, g.Char) {
			style = r.theme.Selection
		}
		r.b.SetCell(x+i, y, backend.Cell{Rune: g.Rune, Style: style})
	}
	// An empty selected line shows one highlighted cell.
	if len(l.Runes) == 0 && left == 0 && w.Selection.Contains(line, 0) {
		r.b.SetCell(x, y, backend.Cell{Rune: ' ', Style: r.theme.Selection})
	}
}

func (r *Renderer) drawStatus(w Window, rect Rect) {
	y := rect.Y + rect.Height - 1
	info := w.Status
	if !w.Active {
		info.Mode = ""
		info.Pending = ""
	}
	text := statusline.Compose(info, rect.Width)

	style := r.theme.StatusInactive
	if w.Active {
		style = r.theme.Status
	}
	r.drawText(rect.X, y, rect.Width, text, style)

	// Color the mode label.
	if ms, ok := r.theme.Modes[info.Mode]; ok && info.Mode != "" {
		label := " " + info.Mode + " "
		r.drawText(rect.X, y, statusline.Width(label), label, ms)
	}
}

func (r *Renderer) drawFinder(f *Finder, width, bottom int) (int, int) {
	rows := min(len(f.Items), max(bottom-1, 0))
	start := bottom - rows
	for i := 0; i < rows; i++ {
		item := f.Items[i]
		y := start + i
		base := r.theme.FinderItem
		marker := "  "
		if i == f.Selected {
			base = r.theme.FinderSelected
			marker = "> "
		}
		r.drawText(0, y, width, strings.Repeat(" ", width), base)
		r.drawText(0, y, 2, marker, base)

		matched := make(map[int]bool, len(item.Positions))
		for _, p := range item.Positions {
			matched[p] = true
		}
		x := 2
		for ci, ch := range []rune(item.Text) {
			cw := backend.RuneWidth(ch)
			if x+cw > width {
				break
			}
			style := base
			if matched[ci] {
				style = r.theme.FinderMatch
				if i == f.Selected {
					style = style.With(backend.AttrReverse)
				}
			}
			r.b.SetCell(x, bottom-rows+i, backend.Cell{Rune: ch, Style: style})
			x += max(cw, 1)
		}
	}

	count := fmt.Sprintf("%d/%d", len(f.Items), f.Total)
	if f.Loading {
		count += " ..."
	}
	prompt := f.Prompt + f.Query
	r.drawText(0, bottom, width, strings.Repeat(" ", width), r.theme.Text)
	r.drawText(0, bottom, width, statusline.Truncate(f.Prompt, width), r.theme.FinderPrompt)
	pw := statusline.Width(f.Prompt)
	r.drawText(pw, bottom, width-pw, statusline.Truncate(f.Query, max(width-pw-1, 0)), r.theme.Text)
	if cw := statusline.Width(count); statusline.Width(prompt)+cw+2 <= width {
		r.drawText(width-cw-1, bottom, cw, count, r.theme.LineNumber)
	}
	return min(statusline.Width(prompt), width-1), bottom
}

// drawText writes s from x, y, using at most width cells.
func (r *Renderer) drawText(x, y, width int, s string, style backend.Style) {
	end := x + width
	for _, ch := range s {
		w := backend.RuneWidth(ch)
		if w == 0 {
			continue
		}
		if x+w > end {
			return
		}
		r.b.SetCell(x, y, backend.Cell{Rune: ch, Style: style})
		if w == 2 {
			r.b.SetCell(x+1, y, backend.Cell{Style: style})
		}
		x += w
	}
}
