package renderer

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/dshills/kestrel/internal/engine/cursor"
	"github.com/dshills/kestrel/internal/renderer/backend"
	"github.com/dshills/kestrel/internal/renderer/statusline"
	"github.com/dshills/kestrel/internal/renderer/viewport"
)

type lines []string

func (l lines) LineCount() int { return max(len(l), 1) }

func (l lines) Line(n int) string {
	if n < 0 || n >= len(l) {
		return ""
	}
	return l[n]
}

func window(text lines, c cursor.Cursor) Window {
	return Window{
		Text:    text,
		View:    viewport.New(1, 1),
		Cursor:  c,
		Active:  true,
		TabStop: 8,
		Status:  statusline.Info{Mode: "NORMAL", Name: "a.txt", Line: c.Line, Col: c.Col, LineCount: text.LineCount()},
	}
}

func TestDrawSingleWindow(t *testing.T) {
	m := backend.NewMemory(30, 6)
	New(m).Draw(Frame{Windows: []Window{window(lines{"abc", "def"}, cursor.At(1, 2))}})

	got := []string{m.Row(0), m.Row(1), m.Row(2), m.Row(3)}
	want := []string{"abc", "def", "~", "~"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("rows mismatch (-want +got):\n%s", diff)
	}
	if status := m.Row(4); !strings.HasPrefix(status, " NORMAL  a.txt") {
		t.Errorf("status = %q", status)
	}
	x, y, visible, _ := m.Cursor()
	if x != 2 || y != 1 || !visible {
		t.Errorf("cursor at %d,%d visible=%v, want 2,1", x, y, visible)
	}
}

func TestDrawLineNumbersAndTabs(t *testing.T) {
	m := backend.NewMemory(30, 4)
	w := window(lines{"\tx"}, cursor.At(0, 1))
	w.Number = true
	w.TabStop = 4
	New(m).Draw(Frame{Windows: []Window{w}})

	if got := m.Row(0); got != "  1     x" {
		t.Errorf("row 0 = %q", got)
	}
	x, _, _, _ := m.Cursor()
	if x != 8 {
		t.Errorf("cursor x = %d, want 8 (gutter 4 + tab 4)", x)
	}
}

func TestDrawScrollsToCursor(t *testing.T) {
	m := backend.NewMemory(10, 5)
	text := lines{"0", "1", "2", "3", "4", "5"}
	w := window(text, cursor.At(5, 0))
	New(m).Draw(Frame{Windows: []Window{w}})

	if w.View.TopLine() != 3 {
		t.Errorf("TopLine = %d, want 3", w.View.TopLine())
	}
	if got := m.Row(2); got != "5" {
		t.Errorf("row 2 = %q, want 5", got)
	}
}

func TestDrawHorizontalScroll(t *testing.T) {
	m := backend.NewMemory(5, 3)
	w := window(lines{"abcdefghij"}, cursor.At(0, 7))
	New(m).Draw(Frame{Windows: []Window{w}})

	if w.View.LeftColumn() != 3 {
		t.Errorf("LeftColumn = %d, want 3", w.View.LeftColumn())
	}
	if got := m.Row(0); got != "defgh" {
		t.Errorf("row 0 = %q", got)
	}
}

func TestDrawSelection(t *testing.T) {
	m := backend.NewMemory(20, 4)
	w := window(lines{"abcdef"}, cursor.At(0, 3))
	w.Selection = &Selection{Start: cursor.Pos{Line: 0, Col: 1}, End: cursor.Pos{Line: 0, Col: 3}}
	r := New(m)
	r.Draw(Frame{Windows: []Window{w}})

	sel := r.theme.Selection
	for x := 0; x < 6; x++ {
		want := x >= 1 && x <= 3
		if got := m.Cell(x, 0).Style == sel; got != want {
			t.Errorf("cell %d selected = %v, want %v", x, got, want)
		}
	}
}

func TestDrawCommandLineAndMessage(t *testing.T) {
	m := backend.NewMemory(20, 4)
	w := window(lines{"x"}, cursor.At(0, 0))
	r := New(m)

	r.Draw(Frame{Windows: []Window{w}, CommandActive: true, Command: "wq"})
	if got := m.Row(3); got != ":wq" {
		t.Errorf("command line = %q", got)
	}
	x, y, _, _ := m.Cursor()
	if x != 3 || y != 3 {
		t.Errorf("cursor = %d,%d, want 3,3", x, y)
	}

	r.Draw(Frame{Windows: []Window{w}, CommandActive: true, Prompt: "?", Command: "fo+"})
	if got := m.Row(3); got != "?fo+" {
		t.Errorf("search line = %q", got)
	}

	r.Draw(Frame{Windows: []Window{w}, Message: "E37: No write", MessageError: true})
	if got := m.Row(3); got != "E37: No write" {
		t.Errorf("message = %q", got)
	}
	if m.Cell(0, 3).Style != r.theme.Error {
		t.Error("error message should use the error style")
	}
}

func TestDrawTwoWindows(t *testing.T) {
	m := backend.NewMemory(20, 9)
	top := window(lines{"top"}, cursor.At(0, 0))
	top.Active = false
	bottom := window(lines{"bottom"}, cursor.At(0, 0))
	New(m).Draw(Frame{Windows: []Window{top, bottom}})

	if m.Row(0) != "top" || m.Row(4) != "bottom" {
		t.Errorf("rows = %q / %q", m.Row(0), m.Row(4))
	}
	if status := m.Row(3); strings.Contains(status, "NORMAL") {
		t.Errorf("inactive status shows the mode: %q", status)
	}
	_, y, _, _ := m.Cursor()
	if y != 4 {
		t.Errorf("cursor row = %d, want 4", y)
	}
}

func TestDrawFinder(t *testing.T) {
	m := backend.NewMemory(30, 8)
	w := window(lines{"x"}, cursor.At(0, 0))
	r := New(m)
	r.Draw(Frame{
		Windows: []Window{w},
		Finder: &Finder{
			Prompt: "Files> ",
			Query:  "mai",
			Items: []FinderItem{
				{Text: "src/main", Positions: []int{4, 5, 6}},
				{Text: "mail.go", Positions: []int{0, 1, 2}},
			},
			Selected: 0,
			Total:    3,
		},
	})

	if got := m.Row(5); got != "> src/main" {
		t.Errorf("first item = %q", got)
	}
	if got := m.Row(6); got != "  mail.go" {
		t.Errorf("second item = %q", got)
	}
	if got := m.Row(7); !strings.HasPrefix(got, "Files> mai") || !strings.HasSuffix(got, "2/3") {
		t.Errorf("prompt = %q", got)
	}
	x, y, _, _ := m.Cursor()
	if x != 10 || y != 7 {
		t.Errorf("cursor = %d,%d, want 10,7", x, y)
	}
}

func TestSplit(t *testing.T) {
	got := Split(80, 25, 3)
	want := []Rect{
		{X: 0, Y: 0, Width: 80, Height: 8},
		{X: 0, Y: 8, Width: 80, Height: 8},
		{X: 0, Y: 16, Width: 80, Height: 8},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Split mismatch (-want +got):\n%s", diff)
	}

	got = Split(80, 24, 2)
	if got[1].Height != 12 || got[0].Height != 11 {
		t.Errorf("remainder should go to the last window: %+v", got)
	}
}

func TestSelectionContains(t *testing.T) {
	s := &Selection{Start: cursor.Pos{Line: 1, Col: 2}, End: cursor.Pos{Line: 2, Col: 1}}
	tests := []struct {
		line, col int
		want      bool
	}{
		{1, 1, false},
		{1, 2, true},
		{1, 50, true},
		{2, 1, true},
		{2, 2, false},
		{0, 5, false},
	}
	for _, tt := range tests {
		if got := s.Contains(tt.line, tt.col); got != tt.want {
			t.Errorf("Contains(%d, %d) = %v, want %v", tt.line, tt.col, got, tt.want)
		}
	}

	s.Linewise = true
	if !s.Contains(1, 0) {
		t.Error("linewise selection covers whole lines")
	}
	var none *Selection
	if none.Contains(0, 0) {
		t.Error("nil selection contains nothing")
	}
}
