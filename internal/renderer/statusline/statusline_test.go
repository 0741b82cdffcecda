package statusline

import (
	"strings"
	"testing"
)

func TestCompose(t *testing.T) {
	info := Info{Mode: "NORMAL", Name: "main.go", Dirty: true, Line: 4, Col: 2, LineCount: 10}
	got := Compose(info, 40)

	if Width(got) != 40 {
		t.Errorf("width = %d, want 40: %q", Width(got), got)
	}
	if !strings.HasPrefix(got, " NORMAL  main.go [+]") {
		t.Errorf("left side = %q", got)
	}
	if !strings.HasSuffix(got, "5:3   50% ") {
		t.Errorf("right side = %q", got)
	}
}

func TestComposeFlagsAndPending(t *testing.T) {
	info := Info{Mode: "VISUAL", Name: "help", ReadOnly: true, LineCount: 1, Pending: `"a2d`}
	got := Compose(info, 50)
	if !strings.Contains(got, "help [RO]") {
		t.Errorf("missing read-only flag: %q", got)
	}
	if !strings.Contains(got, `"a2d  1:1  100%`) {
		t.Errorf("missing pending keys: %q", got)
	}
}

func TestComposeShortensName(t *testing.T) {
	info := Info{Name: "very/long/path/to/some/file.txt", LineCount: 1}
	got := Compose(info, 30)
	if Width(got) > 30 {
		t.Errorf("width = %d: %q", Width(got), got)
	}
	if !strings.Contains(got, "<") || !strings.Contains(got, "file.txt") {
		t.Errorf("name should be cut from the left: %q", got)
	}
}

func TestTruncate(t *testing.T) {
	tests := []struct {
		s     string
		width int
		want  string
	}{
		{"hello", 10, "hello"},
		{"hello", 3, "hel"},
		{"日本語", 5, "日本"},
		{"éé", 1, "é"},
		{"abc", 0, ""},
	}
	for _, tt := range tests {
		if got := Truncate(tt.s, tt.width); got != tt.want {
			t.Errorf("Truncate(%q, %d) = %q, want %q", tt.s, tt.width, got, tt.want)
		}
	}
}

func TestTruncateLeft(t *testing.T) {
	tests := []struct {
		s     string
		width int
		want  string
	}{
		{"short", 10, "short"},
		{"src/editor/main.go", 8, "<main.go"},
		{"日本語", 5, "<本語"},
		{"abc", 1, "<"},
	}
	for _, tt := range tests {
		if got := TruncateLeft(tt.s, tt.width); got != tt.want {
			t.Errorf("TruncateLeft(%q, %d) = %q, want %q", tt.s, tt.width, got, tt.want)
		}
	}
}

func TestPercent(t *testing.T) {
	if p := (Info{Line: 0, LineCount: 4}).Percent(); p != 25 {
		t.Errorf("Percent = %d, want 25", p)
	}
	if p := (Info{LineCount: 1}).Percent(); p != 100 {
		t.Errorf("Percent = %d, want 100", p)
	}
}
