package buffer

import (
	"errors"
	"strings"
	"testing"

	"pgregory.net/rapid"
)

func TestNewBufferIsOneEmptyLine(t *testing.T) {
	b := New()
	if !b.IsEmpty() || b.Len() != 0 {
		t.Errorf("expected empty buffer, got length %d", b.Len())
	}
	if b.LineCount() != 1 {
		t.Errorf("expected 1 line, got %d", b.LineCount())
	}
	if line, err := b.LineText(0); err != nil || line != "" {
		t.Errorf("LineText(0) = %q, %v", line, err)
	}
	if b.Name() != "[No Name]" {
		t.Errorf("Name = %q", b.Name())
	}
	if b.Dirty() {
		t.Error("new buffer should be clean")
	}
}

func TestLoadRoundTrip(t *testing.T) {
	tests := []struct {
		name  string
		text  string
		lines int
		le    LineEnding
	}{
		{"empty", "", 1, LineEndingLF},
		{"single newline", "\n", 1, LineEndingLF},
		{"no final newline", "a\nb", 2, LineEndingLF},
		{"final newline", "a\nb\n", 2, LineEndingLF},
		{"crlf", "one\r\ntwo\r\n", 2, LineEndingCRLF},
		{"cr", "one\rtwo\r", 2, LineEndingCR},
		{"blank lines", "a\n\n\nb\n", 4, LineEndingLF},
		{"unicode", "héllo\n日本語\n", 2, LineEndingLF},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := NewFromString(tt.text)
			if got := b.Text(); got != tt.text {
				t.Errorf("Text() = %q, want %q", got, tt.text)
			}
			if b.LineCount() != tt.lines {
				t.Errorf("LineCount = %d, want %d", b.LineCount(), tt.lines)
			}
			if b.LineEnding() != tt.le {
				t.Errorf("LineEnding = %v, want %v", b.LineEnding(), tt.le)
			}
			if b.Dirty() {
				t.Error("Load should leave the buffer clean")
			}
		})
	}
}

func TestLoadRoundTripProperty(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		sep := rapid.SampledFrom([]string{"\n", "\r\n", "\r"}).Draw(t, "sep")
		lines := rapid.SliceOfN(rapid.StringMatching(`[a-zé \t]{0,12}`), 0, 20).Draw(t, "lines")
		text := strings.Join(lines, sep)
		if rapid.Bool().Draw(t, "final") {
			text += sep
		}

		b := NewFromString(text)
		if got := b.Text(); got != text {
			t.Fatalf("Text() = %q, want %q", got, text)
		}
		if b.LineCount() < 1 {
			t.Fatalf("LineCount = %d", b.LineCount())
		}
	})
}

func TestInsertDelete(t *testing.T) {
	b := NewFromString("hello world")

	if err := b.Insert(5, ","); err != nil {
		t.Fatal(err)
	}
	if b.String() != "hello, world" {
		t.Errorf("after insert: %q", b.String())
	}
	if !b.Dirty() {
		t.Error("insert should set dirty")
	}

	if err := b.Delete(0, 7); err != nil {
		t.Fatal(err)
	}
	if b.String() != "world" {
		t.Errorf("after delete: %q", b.String())
	}

	if err := b.Insert(b.Len(), "!"); err != nil {
		t.Errorf("insert at end should succeed: %v", err)
	}
}

func TestOutOfBounds(t *testing.T) {
	b := NewFromString("ab\ncd")

	checks := []struct {
		name string
		err  error
	}{
		{"insert past end", b.Insert(6, "x")},
		{"insert negative", b.Insert(-1, "x")},
		{"delete past end", b.Delete(3, 10)},
		{"delete reversed", b.Delete(3, 1)},
	}
	for _, c := range checks {
		if !errors.Is(c.err, ErrOutOfBounds) {
			t.Errorf("%s: err = %v, want ErrOutOfBounds", c.name, c.err)
		}
	}

	if _, err := b.LineText(2); !errors.Is(err, ErrOutOfBounds) {
		t.Errorf("LineText(2) err = %v", err)
	}
	if _, err := b.LineLength(-1); !errors.Is(err, ErrOutOfBounds) {
		t.Errorf("LineLength(-1) err = %v", err)
	}
	if _, err := b.CharAt(5); !errors.Is(err, ErrOutOfBounds) {
		t.Errorf("CharAt(5) err = %v", err)
	}
	if _, err := b.OffsetOf(0, 3); !errors.Is(err, ErrOutOfBounds) {
		t.Errorf("OffsetOf(0, 3) err = %v", err)
	}
	if b.String() != "ab\ncd" || b.Dirty() {
		t.Error("failed edits must not change the buffer")
	}
}

func TestLineQueries(t *testing.T) {
	b := NewFromString("abc\n\ndéf\n")

	tests := []struct {
		line int
		text string
		n    int
	}{
		{0, "abc", 3},
		{1, "", 0},
		{2, "déf", 3},
	}
	for _, tt := range tests {
		text, err := b.LineText(tt.line)
		if err != nil || text != tt.text {
			t.Errorf("LineText(%d) = %q, %v", tt.line, text, err)
		}
		n, err := b.LineLength(tt.line)
		if err != nil || n != tt.n {
			t.Errorf("LineLength(%d) = %d, %v", tt.line, n, err)
		}
	}

	off, err := b.OffsetOf(2, 3)
	if err != nil || off != 8 {
		t.Errorf("OffsetOf(2, 3) = %d, %v; want 8", off, err)
	}
	r, err := b.CharAt(6)
	if err != nil || r != 'é' {
		t.Errorf("CharAt(6) = %q, %v", r, err)
	}
	pos, err := b.PositionOf(7)
	if err != nil || pos != (Position{Line: 2, Col: 2}) {
		t.Errorf("PositionOf(7) = %+v, %v", pos, err)
	}
}

func TestReadOnly(t *testing.T) {
	b := NewFromString("help text", WithReadOnly())
	if err := b.Insert(0, "x"); !errors.Is(err, ErrReadOnly) {
		t.Errorf("Insert err = %v, want ErrReadOnly", err)
	}
	if b.String() != "help text" {
		t.Errorf("read-only buffer changed: %q", b.String())
	}
}

func TestUndoRedoRestoresCleanState(t *testing.T) {
	b := NewFromString("abc\n")

	b.BeginGroup("insert")
	_ = b.Insert(0, "x")
	_ = b.Insert(1, "y")
	b.EndGroup()
	if b.String() != "xyabc" {
		t.Fatalf("text = %q", b.String())
	}

	off, err := b.Undo()
	if err != nil {
		t.Fatal(err)
	}
	if b.String() != "abc" || off != 0 {
		t.Errorf("after undo: %q at %d", b.String(), off)
	}
	if b.Dirty() {
		t.Error("undo back to the loaded state should clear dirty")
	}

	if _, err := b.Redo(); err != nil {
		t.Fatal(err)
	}
	if b.String() != "xyabc" || !b.Dirty() {
		t.Errorf("after redo: %q dirty=%v", b.String(), b.Dirty())
	}

	b.MarkSaved()
	if _, err := b.Undo(); err != nil {
		t.Fatal(err)
	}
	if !b.Dirty() {
		t.Error("undo past the saved state should set dirty")
	}
}

func TestSnapshotIsStable(t *testing.T) {
	b := NewFromString("one\ntwo")
	snap := b.Snapshot()
	_ = b.Insert(0, "zero\n")

	if snap.LineCount() != 2 || snap.Line(0) != "one" {
		t.Errorf("snapshot changed: %d lines, first %q", snap.LineCount(), snap.Line(0))
	}
	if snap.Line(9) != "" || snap.LineLen(-1) != 0 {
		t.Error("snapshot should clamp out-of-range lines")
	}
	if b.LineCount() != 3 {
		t.Errorf("buffer LineCount = %d", b.LineCount())
	}
}

func TestDetectLineEnding(t *testing.T) {
	tests := []struct {
		text string
		want LineEnding
	}{
		{"", LineEndingLF},
		{"a\nb", LineEndingLF},
		{"a\r\nb\r\nc\n", LineEndingCRLF},
		{"a\rb", LineEndingCR},
	}
	for _, tt := range tests {
		if got := DetectLineEnding(tt.text); got != tt.want {
			t.Errorf("DetectLineEnding(%q) = %v, want %v", tt.text, got, tt.want)
		}
	}
}

func TestInsertNormalizesSeparators(t *testing.T) {
	b := NewFromString("ab")
	if err := b.Insert(1, "x\r\ny"); err != nil {
		t.Fatal(err)
	}
	if b.LineCount() != 2 || b.String() != "ax\nyb" {
		t.Errorf("text = %q", b.String())
	}
}

func TestIDsAreUnique(t *testing.T) {
	if New().ID() == New().ID() {
		t.Error("buffers should get distinct IDs")
	}
}
