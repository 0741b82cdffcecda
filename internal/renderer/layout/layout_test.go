package layout

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestLay(t *testing.T) {
	tests := []struct {
		name  string
		text  string
		tab   int
		cols  []int
		width int
	}{
		{"ascii", "abc", 8, []int{0, 1, 2, 3}, 3},
		{"tab at start", "\tx", 8, []int{0, 8, 9}, 9},
		{"tab mid stop", "ab\tc", 4, []int{0, 1, 2, 4, 5}, 5},
		{"wide", "日本", 8, []int{0, 2, 4}, 4},
		{"control", "a\x01", 8, []int{0, 1, 3}, 3},
		{"empty", "", 8, []int{0}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := Lay(tt.text, tt.tab)
			if diff := cmp.Diff(tt.cols, l.Cols); diff != "" {
				t.Errorf("Cols mismatch (-want +got):\n%s", diff)
			}
			if l.Width() != tt.width {
				t.Errorf("Width = %d, want %d", l.Width(), tt.width)
			}
		})
	}
}

func TestScreenColAndCharAt(t *testing.T) {
	l := Lay("a\tb日", 4)

	if got := l.ScreenCol(2); got != 4 {
		t.Errorf("ScreenCol(2) = %d, want 4", got)
	}
	if got := l.ScreenCol(4); got != 7 {
		t.Errorf("ScreenCol(4) = %d, want 7", got)
	}
	if got := l.ScreenCol(6); got != 9 {
		t.Errorf("ScreenCol past end = %d, want 9", got)
	}
	if got := l.CharAt(2); got != 1 {
		t.Errorf("CharAt(2) = %d, want 1 (inside the tab)", got)
	}
	if got := l.CharAt(6); got != 3 {
		t.Errorf("CharAt(6) = %d, want 3", got)
	}
	if got := l.CharAt(20); got != 4 {
		t.Errorf("CharAt past end = %d, want 4", got)
	}
}

func TestCells(t *testing.T) {
	runes := func(gs []Glyph) string {
		out := make([]rune, 0, len(gs))
		for _, g := range gs {
			if g.Rune == 0 {
				out = append(out, '_')
				continue
			}
			out = append(out, g.Rune)
		}
		return string(out)
	}

	tests := []struct {
		name        string
		text        string
		left, width int
		want        string
	}{
		{"plain", "hello", 0, 10, "hello"},
		{"clipped right", "hello", 0, 3, "hel"},
		{"scrolled", "hello", 2, 10, "llo"},
		{"tab", "\tx", 0, 10, "    x"},
		{"wide", "日x", 0, 10, "日_x"},
		{"wide cut on left", "日x", 1, 10, " x"},
		{"control", "a\x01", 0, 10, "a^A"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tab := 8
			if tt.name == "tab" {
				tab = 4
			}
			got := runes(Lay(tt.text, tab).Cells(tt.left, tt.width))
			if got != tt.want {
				t.Errorf("Cells = %q, want %q", got, tt.want)
			}
		})
	}
}
