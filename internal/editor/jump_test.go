package editor

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dshills/kestrel/internal/engine/cursor"
	"github.com/dshills/kestrel/internal/input/mode"
)

func TestFindChar(t *testing.T) {
	tests := []struct {
		name string
		text string
		keys string
		want []string
	}{
		{"f then di(", "f(a, b)", "f(di(", []string{"f()"}},
		{"f without a match types nothing", "f(a, b)", "fdx", []string{"(a, b)"}},
		{"dt", "a,b,c", "dt,", []string{",b,c"}},
		{"df with count", "a,b,c,d", "d2f,", []string{"c,d"}},
		{"dT backward", "abc,def", "$dT,", []string{"abc,f"}},
		{"; repeats f", "a,b,c,d", "f,;x", []string{"a,bc,d"}},
		{", reverses", "a,b,c,d", "f,;;,x", []string{"a,bc,d"}},
		{"; after t does not stick", "a,b,c", "t,;x", []string{"a,,c"}},
		{"d; uses the last find", "a,b,c,d", "f,0d;", []string{"b,c,d"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e, _ := newTestEditor(t, tt.text)
			feed(e, tt.keys)
			assert.Equal(t, tt.want, lines(e))
			assert.Equal(t, mode.Normal, e.Mode())
		})
	}
}

func TestSearch(t *testing.T) {
	e, _ := newTestEditor(t, "foo bar\nbar foo\nbaz foo")

	feed(e, "/fo")
	f := e.Frame()
	require.True(t, f.CommandActive)
	assert.Equal(t, "/", f.Prompt)
	assert.Equal(t, "fo", f.Command)

	feed(e, "o<CR>")
	assert.Equal(t, mode.Normal, e.Mode())
	assert.Equal(t, cursor.Pos{Line: 1, Col: 4}, pos(e))
	assert.Equal(t, "/foo", e.Status().Message)

	feed(e, "n")
	assert.Equal(t, cursor.Pos{Line: 2, Col: 4}, pos(e))
	feed(e, "n")
	assert.Equal(t, cursor.Pos{}, pos(e))
	assert.Equal(t, "search hit BOTTOM, continuing at TOP", e.Status().Message)
	feed(e, "N")
	assert.Equal(t, cursor.Pos{Line: 2, Col: 4}, pos(e))
	assert.Equal(t, "search hit TOP, continuing at BOTTOM", e.Status().Message)

	feed(e, "?bar<CR>")
	assert.Equal(t, cursor.Pos{Line: 1, Col: 0}, pos(e))
	feed(e, "n")
	assert.Equal(t, cursor.Pos{Line: 0, Col: 4}, pos(e), "n keeps the backward direction")

	feed(e, "/<CR>")
	assert.Equal(t, cursor.Pos{Line: 1, Col: 0}, pos(e), "an empty pattern reuses the last one")

	feed(e, "/qux<CR>")
	assert.Equal(t, StatusError, e.Status().Severity)
	assert.Equal(t, "pattern not found: qux", e.Status().Message)
	assert.Equal(t, cursor.Pos{Line: 1, Col: 0}, pos(e))

	feed(e, "/a(<CR>")
	assert.Equal(t, StatusError, e.Status().Severity)

	feed(e, "/ba<Esc>")
	assert.Equal(t, mode.Normal, e.Mode())
	assert.Equal(t, cursor.Pos{Line: 1, Col: 0}, pos(e))
}

func TestSearchWithoutPattern(t *testing.T) {
	e, _ := newTestEditor(t, "abc")
	feed(e, "n")
	assert.Equal(t, StatusError, e.Status().Severity)
	assert.Equal(t, "no previous regular expression", e.Status().Message)
}

func TestSearchWordUnderCursor(t *testing.T) {
	e, _ := newTestEditor(t, "foo bar foobar foo")

	feed(e, "*")
	assert.Equal(t, cursor.Pos{Col: 15}, pos(e), "* matches whole words only")
	feed(e, "#")
	assert.Equal(t, cursor.Pos{}, pos(e))
	feed(e, "n")
	assert.Equal(t, cursor.Pos{Col: 15}, pos(e), "n after # searches backward")

	e, _ = newTestEditor(t, "  ...")
	feed(e, "*")
	assert.Equal(t, "no string under cursor", e.Status().Message)
}

func TestSearchCase(t *testing.T) {
	e, _ := newTestEditor(t, "x\nfoo")

	feed(e, "/FOO<CR>")
	assert.Equal(t, StatusError, e.Status().Severity)

	feed(e, ":set ic<CR>/FOO<CR>")
	assert.Equal(t, cursor.Pos{Line: 1}, pos(e))

	feed(e, "gg:set scs<CR>/FOO<CR>")
	assert.Equal(t, StatusError, e.Status().Severity, "smartcase respects an uppercase pattern")
	feed(e, "/fOo<CR>")
	assert.Equal(t, StatusError, e.Status().Severity)
	feed(e, "/foo<CR>")
	assert.Equal(t, cursor.Pos{Line: 1}, pos(e))
}

func TestOperatorWithSearch(t *testing.T) {
	e, _ := newTestEditor(t, "foo bar foo")
	feed(e, "/bar<CR>0dn")
	assert.Equal(t, []string{"bar foo"}, lines(e))
}

func TestMarks(t *testing.T) {
	e, _ := newTestEditor(t, "one\n  two\nthree")

	feed(e, "jllma")
	feed(e, "G`a")
	assert.Equal(t, cursor.Pos{Line: 1, Col: 2}, pos(e))
	feed(e, "gg'a")
	assert.Equal(t, cursor.Pos{Line: 1, Col: 2}, pos(e), "' goes to the first non-blank")
	feed(e, "0G'a")
	assert.Equal(t, cursor.Pos{Line: 1, Col: 2}, pos(e))

	feed(e, "'b")
	assert.Equal(t, StatusError, e.Status().Severity)
	assert.Equal(t, "mark not set: b", e.Status().Message)

	feed(e, "Gd'a")
	assert.Equal(t, []string{"one"}, lines(e))

	feed(e, "`a")
	assert.Equal(t, cursor.Pos{Col: 2}, pos(e), "a mark past the end is clamped")
}

func TestContextMark(t *testing.T) {
	e, _ := newTestEditor(t, "a\nb\nc\nd")

	feed(e, "jG")
	assert.Equal(t, 3, pos(e).Line)
	feed(e, "''")
	assert.Equal(t, 1, pos(e).Line)
	feed(e, "``")
	assert.Equal(t, 3, pos(e).Line)

	feed(e, "ggjj")
	feed(e, "''")
	assert.Equal(t, 3, pos(e).Line, "j is not a jump")
}

func TestJumpMotions(t *testing.T) {
	tests := []struct {
		name string
		text string
		keys string
		want []string
		pos  cursor.Pos
	}{
		{"d%", "x (a [b]) y", "f(d%", []string{"x  y"}, cursor.Pos{Col: 2}},
		{"% without bracket does nothing", "abc", "d%", []string{"abc"}, cursor.Pos{}},
		{"d}", "a\nb\n\nc", "d}", []string{"", "c"}, cursor.Pos{}},
		{"d{", "a\n\nb\nc", "Gd{", []string{"a", "c"}, cursor.Pos{Line: 1}},
		{"dge", "foo bar", "$dge", []string{"fo"}, cursor.Pos{Col: 1}},
		{"50%", "1\n2\n3\n4", "50%", []string{"1", "2", "3", "4"}, cursor.Pos{Line: 1}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e, _ := newTestEditor(t, tt.text)
			feed(e, tt.keys)
			assert.Equal(t, tt.want, lines(e))
			assert.Equal(t, tt.pos, pos(e))
		})
	}
}
