package cursor

import (
	"regexp"
	"testing"

	"pgregory.net/rapid"
)

type lines []string

func (l lines) LineCount() int { return max(len(l), 1) }

func (l lines) Line(n int) string {
	if n < 0 || n >= len(l) {
		return ""
	}
	return l[n]
}

func TestScenarioVerticalAndLineEnds(t *testing.T) {
	text := lines{"abc", "def"}
	c := At(0, 0)

	c = Down.Apply(text, c, 0, BoundLastChar)
	if c.Pos() != (Pos{1, 0}) {
		t.Fatalf("j: got %v, want (1:0)", c)
	}
	c = LineEnd.Apply(text, c, 0, BoundLastChar)
	if c.Pos() != (Pos{1, 2}) {
		t.Fatalf("$: got %v, want (1:2)", c)
	}
	c = LineStart.Apply(text, c, 0, BoundLastChar)
	if c.Pos() != (Pos{1, 0}) {
		t.Fatalf("0: got %v, want (1:0)", c)
	}
}

func TestHorizontalMotions(t *testing.T) {
	text := lines{"hello", ""}
	tests := []struct {
		name   string
		motion *Motion
		from   Cursor
		count  int
		bound  Bound
		want   Pos
	}{
		{"h clamps at 0", &Left, At(0, 1), 5, BoundLastChar, Pos{0, 0}},
		{"l clamps at last char", &Right, At(0, 3), 9, BoundLastChar, Pos{0, 4}},
		{"l past end in insert", &Right, At(0, 3), 9, BoundPastEnd, Pos{0, 5}},
		{"l on empty line", &Right, At(1, 0), 1, BoundLastChar, Pos{1, 0}},
		{"$ on empty line", &LineEnd, At(1, 0), 1, BoundLastChar, Pos{1, 0}},
		{"^ skips blanks", &FirstNonBlankMotion, At(0, 3), 1, BoundLastChar, Pos{0, 0}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.motion.Apply(text, tt.from, tt.count, tt.bound)
			if got.Pos() != tt.want {
				t.Errorf("got %v, want %v", got, tt.want)
			}
		})
	}
}

func TestStickyColumn(t *testing.T) {
	text := lines{"long line here", "ab", "", "another long line"}
	c := At(0, 10)

	c = Down.Apply(text, c, 1, BoundLastChar)
	if c.Col != 1 {
		t.Errorf("short line col = %d, want 1", c.Col)
	}
	c = Down.Apply(text, c, 1, BoundLastChar)
	if c.Col != 0 {
		t.Errorf("empty line col = %d, want 0", c.Col)
	}
	c = Down.Apply(text, c, 1, BoundLastChar)
	if c.Col != 10 {
		t.Errorf("long line col = %d, want 10 (desired column)", c.Col)
	}

	c = LineEnd.Apply(text, At(0, 0), 1, BoundLastChar)
	c = Down.Apply(text, c, 1, BoundLastChar)
	if c.Col != 1 {
		t.Errorf("after $ and j col = %d, want end of line 1", c.Col)
	}
}

func TestDocumentMotions(t *testing.T) {
	text := lines{"  first", "second", "   third"}

	if got := DocumentEnd.Apply(text, At(0, 0), 0, BoundLastChar); got.Pos() != (Pos{2, 3}) {
		t.Errorf("G = %v, want (2:3)", got)
	}
	if got := DocumentStart.Apply(text, At(2, 5), 0, BoundLastChar); got.Pos() != (Pos{0, 2}) {
		t.Errorf("gg = %v, want (0:2)", got)
	}
	if got := DocumentEnd.Apply(text, At(0, 0), 2, BoundLastChar); got.Line != 1 {
		t.Errorf("2G line = %d, want 1", got.Line)
	}
	if got := DocumentStart.Apply(text, At(0, 0), 99, BoundLastChar); got.Line != 2 {
		t.Errorf("99gg line = %d, want 2", got.Line)
	}
}

func TestWordMotions(t *testing.T) {
	text := lines{"foo.bar baz", "", "  qux"}

	tests := []struct {
		name   string
		motion *Motion
		from   Pos
		count  int
		want   Pos
	}{
		{"w to punct", &WordForward, Pos{0, 0}, 1, Pos{0, 3}},
		{"w from punct", &WordForward, Pos{0, 3}, 1, Pos{0, 4}},
		{"w over blank", &WordForward, Pos{0, 4}, 1, Pos{0, 8}},
		{"w stops at empty line", &WordForward, Pos{0, 8}, 1, Pos{1, 0}},
		{"w from empty line", &WordForward, Pos{1, 0}, 1, Pos{2, 2}},
		{"w at end stays on last char", &WordForward, Pos{2, 2}, 1, Pos{2, 4}},
		{"3w", &WordForward, Pos{0, 0}, 3, Pos{0, 8}},
		{"W skips punct", &BigWordForward, Pos{0, 0}, 1, Pos{0, 8}},
		{"b to word start", &WordBackward, Pos{0, 10}, 1, Pos{0, 8}},
		{"b to previous word", &WordBackward, Pos{0, 8}, 1, Pos{0, 4}},
		{"b stops at empty line", &WordBackward, Pos{2, 2}, 1, Pos{1, 0}},
		{"b at start stays", &WordBackward, Pos{0, 0}, 1, Pos{0, 0}},
		{"B", &BigWordBackward, Pos{0, 8}, 1, Pos{0, 0}},
		{"e", &WordEnd, Pos{0, 0}, 1, Pos{0, 2}},
		{"e from end of word", &WordEnd, Pos{0, 2}, 1, Pos{0, 3}},
		{"E", &BigWordEnd, Pos{0, 0}, 1, Pos{0, 6}},
		{"e crosses lines", &WordEnd, Pos{0, 10}, 1, Pos{2, 4}},
		{"ge to previous word end", &WordEndBackward, Pos{0, 8}, 1, Pos{0, 6}},
		{"ge stops on punct", &WordEndBackward, Pos{0, 4}, 1, Pos{0, 3}},
		{"ge stops at empty line", &WordEndBackward, Pos{2, 2}, 1, Pos{1, 0}},
		{"2ge", &WordEndBackward, Pos{0, 8}, 2, Pos{0, 3}},
		{"gE skips punct", &BigWordEndBackward, Pos{0, 8}, 1, Pos{0, 6}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.motion.Apply(text, At(tt.from.Line, tt.from.Col), tt.count, BoundLastChar)
			if got.Pos() != tt.want {
				t.Errorf("got %v, want %v", got.Pos(), tt.want)
			}
		})
	}
}

func TestPendingWordStaysOnLine(t *testing.T) {
	text := lines{"foo bar", "baz"}

	got := WordForward.ApplyPending(text, At(0, 4), 1)
	if got.Pos() != (Pos{0, 7}) {
		t.Errorf("dw on last word = %v, want (0:7)", got.Pos())
	}
	got = WordForward.ApplyPending(text, At(0, 0), 1)
	if got.Pos() != (Pos{0, 4}) {
		t.Errorf("dw = %v, want (0:4)", got.Pos())
	}
	got = WordForward.ApplyPending(text, At(1, 0), 1)
	if got.Pos() != (Pos{1, 3}) {
		t.Errorf("dw on last line = %v, want (1:3)", got.Pos())
	}
}

func TestSpanOf(t *testing.T) {
	text := lines{"abcdef", "gh"}

	tests := []struct {
		name     string
		kind     Kind
		from, to Pos
		want     Span
	}{
		{"exclusive forward", Exclusive, Pos{0, 1}, Pos{0, 4}, Span{Start: Pos{0, 1}, End: Pos{0, 4}}},
		{"exclusive backward", Exclusive, Pos{0, 4}, Pos{0, 1}, Span{Start: Pos{0, 1}, End: Pos{0, 4}}},
		{"inclusive", Inclusive, Pos{0, 1}, Pos{0, 5}, Span{Start: Pos{0, 1}, End: Pos{0, 6}}},
		{"linewise", Linewise, Pos{1, 1}, Pos{0, 3}, Span{Start: Pos{0, 0}, End: Pos{1, 0}, Linewise: true}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := SpanOf(text, tt.kind, tt.from, tt.to); got != tt.want {
				t.Errorf("SpanOf = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestTextObjects(t *testing.T) {
	text := lines{`call("a b", x)  end`, "fn {", "  body", "}"}

	tests := []struct {
		name  string
		obj   *TextObject
		at    Pos
		inner bool
		want  Span
		ok    bool
	}{
		{"iw", &WordObject, Pos{0, 1}, true, Span{Start: Pos{0, 0}, End: Pos{0, 4}}, true},
		{"aw takes leading blanks at line end", &WordObject, Pos{0, 17}, false, Span{Start: Pos{0, 14}, End: Pos{0, 19}}, true},
		{"aw on blanks takes next word", &WordObject, Pos{0, 15}, false, Span{Start: Pos{0, 14}, End: Pos{0, 19}}, true},
		{"iW", &BigWordObject, Pos{0, 0}, true, Span{Start: Pos{0, 0}, End: Pos{0, 7}}, true},
		{`i"`, &DoubleQuoteObject, Pos{0, 6}, true, Span{Start: Pos{0, 6}, End: Pos{0, 9}}, true},
		{`a"`, &DoubleQuoteObject, Pos{0, 6}, false, Span{Start: Pos{0, 5}, End: Pos{0, 10}}, true},
		{`i" before the quotes`, &DoubleQuoteObject, Pos{0, 0}, true, Span{Start: Pos{0, 6}, End: Pos{0, 9}}, true},
		{"i(", &ParenObject, Pos{0, 12}, true, Span{Start: Pos{0, 5}, End: Pos{0, 13}}, true},
		{"a(", &ParenObject, Pos{0, 12}, false, Span{Start: Pos{0, 4}, End: Pos{0, 14}}, true},
		{"i( on the paren", &ParenObject, Pos{0, 4}, true, Span{Start: Pos{0, 5}, End: Pos{0, 13}}, true},
		{"i{ multi-line", &BraceObject, Pos{2, 3}, true, Span{Start: Pos{2, 0}, End: Pos{3, 0}}, true},
		{"a{ multi-line", &BraceObject, Pos{2, 3}, false, Span{Start: Pos{1, 3}, End: Pos{3, 1}}, true},
		{"no brackets", &BracketObject, Pos{0, 3}, true, Span{}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := tt.obj.Select(text, At(tt.at.Line, tt.at.Col), tt.inner)
			if ok != tt.ok || got != tt.want {
				t.Errorf("Select = %+v, %v; want %+v, %v", got, ok, tt.want, tt.ok)
			}
		})
	}
}

func TestJumpMotions(t *testing.T) {
	text := lines{"if (a[0]) {", "  x()", "}", "", "", "tail", "end"}

	tests := []struct {
		name   string
		motion *Motion
		from   Pos
		count  int
		want   Pos
	}{
		{"% from open paren", &MatchPair, Pos{0, 3}, 0, Pos{0, 8}},
		{"% finds the first bracket on the line", &MatchPair, Pos{0, 0}, 0, Pos{0, 8}},
		{"% back to open", &MatchPair, Pos{0, 8}, 0, Pos{0, 3}},
		{"% nested", &MatchPair, Pos{0, 5}, 0, Pos{0, 7}},
		{"% across lines", &MatchPair, Pos{0, 10}, 0, Pos{2, 0}},
		{"% from close across lines", &MatchPair, Pos{2, 0}, 0, Pos{0, 10}},
		{"% without bracket stays", &MatchPair, Pos{5, 0}, 0, Pos{5, 0}},
		{"} to blank line", &ParagraphForward, Pos{0, 4}, 1, Pos{3, 0}},
		{"} skips blank run", &ParagraphForward, Pos{3, 0}, 1, Pos{6, 2}},
		{"2}", &ParagraphForward, Pos{0, 0}, 2, Pos{6, 2}},
		{"{ to blank line", &ParagraphBackward, Pos{6, 1}, 1, Pos{4, 0}},
		{"{ to start", &ParagraphBackward, Pos{2, 0}, 1, Pos{0, 0}},
		{"50%", &PercentLine, Pos{0, 0}, 50, Pos{3, 0}},
		{"100%", &PercentLine, Pos{0, 0}, 100, Pos{6, 0}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.motion.Apply(text, At(tt.from.Line, tt.from.Col), tt.count, BoundLastChar)
			if got.Pos() != tt.want {
				t.Errorf("got %v, want %v", got.Pos(), tt.want)
			}
		})
	}

	if !MatchPair.Failed(At(5, 0), At(5, 0)) {
		t.Error("% without bracket should fail")
	}
	if Down.Failed(At(0, 0), At(1, 0)) {
		t.Error("j that moved should not fail")
	}
}

func TestFindChar(t *testing.T) {
	text := lines{"a,b,c,d"}

	tests := []struct {
		name   string
		find   Find
		from   int
		count  int
		repeat bool
		want   int
		ok     bool
	}{
		{"f", Find{Char: ','}, 0, 1, false, 1, true},
		{"2f", Find{Char: ','}, 0, 2, false, 3, true},
		{"f missing", Find{Char: 'z'}, 0, 1, false, 0, false},
		{"f too many", Find{Char: ','}, 0, 9, false, 0, false},
		{"t", Find{Char: ',', Till: true}, 0, 1, false, 0, true},
		{"t repeated skips adjacent", Find{Char: ',', Till: true}, 0, 1, true, 2, true},
		{"F", Find{Char: ',', Backward: true}, 6, 1, false, 5, true},
		{"T", Find{Char: ',', Backward: true, Till: true}, 6, 1, false, 6, true},
		{"T repeated", Find{Char: ',', Backward: true, Till: true}, 6, 1, true, 4, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := FindChar(text, At(0, tt.from), tt.find, tt.count, tt.repeat)
			if ok != tt.ok || got.Col != tt.want {
				t.Errorf("FindChar = %v, %v; want col %d, %v", got, ok, tt.want, tt.ok)
			}
		})
	}

	if f := (Find{Char: 'x', Till: true}).Reversed(); !f.Backward || f.Kind() != Exclusive {
		t.Errorf("Reversed = %+v", f)
	}
}

func TestSearch(t *testing.T) {
	text := lines{"foo bar", "bar foo", "baz"}
	re := regexp.MustCompile("foo")

	tests := []struct {
		name     string
		from     Pos
		backward bool
		count    int
		want     Pos
		wrapped  bool
	}{
		{"forward", Pos{0, 0}, false, 1, Pos{1, 4}, false},
		{"forward wraps", Pos{1, 4}, false, 1, Pos{0, 0}, true},
		{"forward count", Pos{0, 0}, false, 2, Pos{0, 0}, true},
		{"backward", Pos{2, 1}, true, 1, Pos{1, 4}, false},
		{"backward wraps", Pos{0, 0}, true, 1, Pos{1, 4}, true},
		{"backward on the same line", Pos{1, 6}, true, 1, Pos{1, 4}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, wrapped, ok := Search(text, tt.from, re, tt.backward, tt.count)
			if !ok || got != tt.want || wrapped != tt.wrapped {
				t.Errorf("Search = %v, %v, %v; want %v, %v", got, wrapped, ok, tt.want, tt.wrapped)
			}
		})
	}

	if _, _, ok := Search(text, Pos{}, regexp.MustCompile("qux"), false, 1); ok {
		t.Error("missing pattern should not match")
	}
	got, _, _ := Search(lines{"é foo"}, Pos{}, re, false, 1)
	if got != (Pos{0, 2}) {
		t.Errorf("multibyte line: got %v, want (0:2)", got)
	}
}

func TestWordUnder(t *testing.T) {
	text := lines{"  foo_1 (bar)", "..."}
	tests := []struct {
		at   Pos
		want string
		ok   bool
	}{
		{Pos{0, 4}, "foo_1", true},
		{Pos{0, 0}, "foo_1", true},
		{Pos{0, 8}, "bar", true},
		{Pos{0, 12}, "", false},
		{Pos{1, 0}, "", false},
	}
	for _, tt := range tests {
		got, ok := WordUnder(text, At(tt.at.Line, tt.at.Col))
		if got != tt.want || ok != tt.ok {
			t.Errorf("WordUnder(%v) = %q, %v", tt.at, got, ok)
		}
	}
}

var allMotions = []*Motion{
	&Left, &Right, &Up, &Down, &LineStart, &FirstNonBlankMotion, &LineEnd,
	&DocumentStart, &DocumentEnd, &WordForward, &WordBackward, &WordEnd,
	&BigWordForward, &BigWordBackward, &BigWordEnd, &WordEndBackward,
	&BigWordEndBackward, &ParagraphForward, &ParagraphBackward, &MatchPair,
	&PercentLine,
}

func drawText(t *rapid.T) lines {
	return rapid.SliceOfN(rapid.StringMatching(`[a-c .(é\t]{0,10}`), 1, 8).Draw(t, "lines")
}

func drawCursor(t *rapid.T, text lines, b Bound) Cursor {
	line := rapid.IntRange(0, text.LineCount()-1).Draw(t, "line")
	col := rapid.IntRange(0, MaxCol(text, line, b)).Draw(t, "col")
	return At(line, col)
}

func TestMotionsKeepCursorInBounds(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		text := drawText(t)
		b := rapid.SampledFrom([]Bound{BoundLastChar, BoundPastEnd}).Draw(t, "bound")
		c := drawCursor(t, text, b)
		m := rapid.SampledFrom(allMotions).Draw(t, "motion")
		count := rapid.IntRange(0, 5).Draw(t, "count")

		got := m.Apply(text, c, count, b)
		if !got.Valid(text, b) {
			t.Fatalf("%s from %v produced invalid %v", m.Name, c, got)
		}
		if p := m.ApplyPending(text, c, count); !p.Valid(text, BoundPastEnd) {
			t.Fatalf("%s pending from %v produced invalid %v", m.Name, c, p)
		}
	})
}

func TestCountLaw(t *testing.T) {
	repeatable := []*Motion{&Left, &Right, &Up, &Down, &WordForward, &WordBackward}
	rapid.Check(t, func(t *rapid.T) {
		text := drawText(t)
		c := drawCursor(t, text, BoundLastChar)
		m := rapid.SampledFrom(repeatable).Draw(t, "motion")
		n := rapid.IntRange(1, 4).Draw(t, "count")

		once := m.Apply(text, c, n, BoundLastChar)
		stepped := c
		for i := 0; i < n; i++ {
			stepped = m.Apply(text, stepped, 1, BoundLastChar)
		}
		if once.Pos() != stepped.Pos() {
			t.Fatalf("%s: count %d gave %v, repeated gave %v", m.Name, n, once.Pos(), stepped.Pos())
		}
	})
}

func TestWordEndAndBlankQueries(t *testing.T) {
	text := lines{"foo.bar  x"}

	tests := []struct {
		col   int
		big   bool
		end   bool
		blank bool
	}{
		{0, false, false, false},
		{2, false, true, false},
		{3, false, true, false},
		{3, true, false, false},
		{6, true, true, false},
		{7, false, false, true},
		{9, false, true, false},
		{10, false, false, true},
	}
	for _, tt := range tests {
		p := Pos{0, tt.col}
		if got := AtWordEnd(text, p, tt.big); got != tt.end {
			t.Errorf("AtWordEnd(col %d, big %v) = %v", tt.col, tt.big, got)
		}
		if got := IsBlankAt(text, p); got != tt.blank {
			t.Errorf("IsBlankAt(col %d) = %v", tt.col, got)
		}
	}
}
