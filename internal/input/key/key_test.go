package key

import (
	"errors"
	"testing"
)

func TestParse(t *testing.T) {
	tests := []struct {
		spec string
		want Event
	}{
		{"a", NewRuneEvent('a', ModNone)},
		{"A", NewRuneEvent('A', ModNone)},
		{"@", NewRuneEvent('@', ModNone)},
		{"<Esc>", NewSpecialEvent(KeyEscape, ModNone)},
		{"<esc>", NewSpecialEvent(KeyEscape, ModNone)},
		{"<CR>", NewSpecialEvent(KeyEnter, ModNone)},
		{"<Enter>", NewSpecialEvent(KeyEnter, ModNone)},
		{"<BS>", NewSpecialEvent(KeyBackspace, ModNone)},
		{"<Space>", NewRuneEvent(' ', ModNone)},
		{"<lt>", NewRuneEvent('<', ModNone)},
		{"<C-p>", NewRuneEvent('p', ModCtrl)},
		{"<C-P>", NewRuneEvent('p', ModCtrl)},
		{"<A-x>", NewRuneEvent('x', ModAlt)},
		{"<C-S-Left>", NewSpecialEvent(KeyLeft, ModCtrl|ModShift)},
		{"<Down>", NewSpecialEvent(KeyDown, ModNone)},
	}

	for _, tt := range tests {
		t.Run(tt.spec, func(t *testing.T) {
			got, err := Parse(tt.spec)
			if err != nil {
				t.Fatalf("Parse(%q) error = %v", tt.spec, err)
			}
			if got != tt.want {
				t.Errorf("Parse(%q) = %#v, want %#v", tt.spec, got, tt.want)
			}
		})
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		spec string
		err  error
	}{
		{"", ErrEmptySpec},
		{"ab", ErrInvalidSpec},
		{"<Q-x>", ErrInvalidSpec},
		{"<Esc", ErrUnmatchedBracket},
	}
	for _, tt := range tests {
		if _, err := Parse(tt.spec); !errors.Is(err, tt.err) {
			t.Errorf("Parse(%q) error = %v, want %v", tt.spec, err, tt.err)
		}
	}
}

func TestParseKeys(t *testing.T) {
	events, err := ParseKeys("iZ<Esc>d2w<C-r>")
	if err != nil {
		t.Fatal(err)
	}
	want := []Event{
		NewRuneEvent('i', ModNone),
		NewRuneEvent('Z', ModNone),
		NewSpecialEvent(KeyEscape, ModNone),
		NewRuneEvent('d', ModNone),
		NewRuneEvent('2', ModNone),
		NewRuneEvent('w', ModNone),
		Ctrl('r'),
	}
	if len(events) != len(want) {
		t.Fatalf("got %d events, want %d", len(events), len(want))
	}
	for i := range want {
		if events[i] != want[i] {
			t.Errorf("event %d = %#v, want %#v", i, events[i], want[i])
		}
	}

	if got := FormatKeys(events); got != "iZ<Esc>d2w<C-r>" {
		t.Errorf("FormatKeys = %q", got)
	}
}

func TestParseKeysLiteralBracket(t *testing.T) {
	events := MustParseKeys("a<")
	if len(events) != 2 || !events[1].Is('<') {
		t.Errorf("events = %v", events)
	}
}

func TestEventPredicates(t *testing.T) {
	a := NewRuneEvent('a', ModNone)
	if !a.IsChar() || !a.Is('a') || a.IsCtrl('a') {
		t.Error("plain rune predicates")
	}
	if r, ok := a.Char(); !ok || r != 'a' {
		t.Errorf("Char() = %q, %v", r, ok)
	}

	cp := Ctrl('P')
	if cp.IsChar() || !cp.IsCtrl('p') {
		t.Error("ctrl predicates")
	}

	esc := MustParse("<Esc>")
	if !esc.IsEscape() || esc.IsChar() {
		t.Error("escape predicates")
	}
	if !MustParse("<Up>").Key.IsArrow() {
		t.Error("Up should be an arrow key")
	}
}

func TestEventString(t *testing.T) {
	tests := []struct {
		e    Event
		want string
	}{
		{NewRuneEvent('x', ModNone), "x"},
		{NewRuneEvent(' ', ModNone), "<Space>"},
		{Ctrl('w'), "<C-w>"},
		{NewSpecialEvent(KeyBackspace, ModNone), "<BS>"},
		{NewSpecialEvent(KeyRight, ModShift), "<S-Right>"},
	}
	for _, tt := range tests {
		if got := tt.e.String(); got != tt.want {
			t.Errorf("String() = %q, want %q", got, tt.want)
		}
	}
}
