package gutter

import "testing"

func TestWidth(t *testing.T) {
	tests := []struct {
		lines int
		show  bool
		want  int
	}{
		{10, false, 0},
		{1, true, 4},
		{999, true, 4},
		{1000, true, 5},
		{123456, true, 7},
	}
	for _, tt := range tests {
		if got := Width(tt.lines, tt.show); got != tt.want {
			t.Errorf("Width(%d, %v) = %d, want %d", tt.lines, tt.show, got, tt.want)
		}
	}
}

func TestFormat(t *testing.T) {
	tests := []struct {
		line, width int
		want        string
	}{
		{0, 4, "  1 "},
		{41, 4, " 42 "},
		{999, 5, "1000 "},
		{12345, 4, "346 "},
		{0, 0, ""},
	}
	for _, tt := range tests {
		if got := Format(tt.line, tt.width); got != tt.want {
			t.Errorf("Format(%d, %d) = %q, want %q", tt.line, tt.width, got, tt.want)
		}
	}
	if got := Filler(4); got != "~   " {
		t.Errorf("Filler(4) = %q", got)
	}
}
