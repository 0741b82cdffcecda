package editor

import (
	"errors"
	"fmt"
	"regexp"
	"unicode"

	"github.com/dshills/kestrel/internal/engine/cursor"
	"github.com/dshills/kestrel/internal/input/vim"
)

// errNoTarget is a motion or jump that finds nowhere to go. It fails
// quietly; only a running macro notices.
var errNoTarget = errors.New("no target")

// Search and mark errors.
var (
	errPatternNotFound = errors.New("pattern not found")
	errBadPattern      = errors.New("invalid pattern")
	errNoPrevious      = errors.New("no previous regular expression")
	errNoWord          = errors.New("no string under cursor")
	errMarkNotSet      = errors.New("mark not set")
)

// searchState is the last search pattern, reused by n, N and an empty
// pattern at the prompt.
type searchState struct {
	pattern  string
	backward bool
}

func (e *Editor) move(a vim.Move) error {
	buf := e.Buffer()
	c := e.Cursor()

	if a.Jump != nil {
		to, _, err := e.target(a.Jump, a.Count)
		if err != nil {
			return err
		}
		if a.Jump.Kind != vim.JumpFind && a.Jump.Kind != vim.JumpRepeatFind {
			e.doc().setMark('\'', c.Pos())
		}
		e.setCursor(to)
		return nil
	}

	to := a.Motion.Apply(buf, c, a.Count, e.bound())
	if a.Motion.Failed(c, to) {
		return errNoTarget
	}
	if a.Motion.Jump {
		e.doc().setMark('\'', c.Pos())
	}
	e.setCursor(to)
	return nil
}

// target resolves a jump from the cursor. kind says how an operator
// treats the text up to it.
func (e *Editor) target(j *vim.Jump, count int) (cursor.Cursor, cursor.Kind, error) {
	buf := e.Buffer()
	c := e.Cursor()

	switch j.Kind {
	case vim.JumpFind, vim.JumpRepeatFind:
		f := j.Find
		repeat := j.Kind == vim.JumpRepeatFind
		if repeat {
			if e.lastFind == nil {
				return c, 0, errNoTarget
			}
			f = *e.lastFind
			if j.Reverse {
				f = f.Reversed()
			}
		} else {
			last := f
			e.lastFind = &last
		}
		to, ok := cursor.FindChar(buf, c, f, count, repeat)
		if !ok {
			return c, 0, errNoTarget
		}
		return to, f.Kind(), nil

	case vim.JumpSearchWord:
		word, ok := cursor.WordUnder(buf, c)
		if !ok {
			return c, 0, errNoWord
		}
		e.search = searchState{pattern: wordPattern(word), backward: j.Reverse}
		return e.searchNext(false, count)

	case vim.JumpSearchNext:
		return e.searchNext(j.Reverse, count)

	case vim.JumpMark:
		p, ok := e.doc().mark(j.Mark)
		if !ok {
			return c, 0, fmt.Errorf("%w: %c", errMarkNotSet, j.Mark)
		}
		p = cursor.At(p.Line, p.Col).Clamp(buf, cursor.BoundLastChar).Pos()
		if j.Linewise {
			return cursor.At(p.Line, cursor.FirstNonBlank(buf, p.Line)), cursor.Linewise, nil
		}
		return cursor.At(p.Line, p.Col), cursor.Exclusive, nil
	}
	return c, 0, errNoTarget
}

// wordPattern matches word as a whole keyword, as "*" searches for it.
func wordPattern(word string) string {
	q := regexp.QuoteMeta(word)
	for _, r := range word {
		if r > unicode.MaxASCII {
			// \b only knows ASCII word characters.
			return q
		}
	}
	return `\b` + q + `\b`
}

// compile builds the search regexp, case-insensitive under ignorecase
// unless smartcase sees an uppercase letter.
func (e *Editor) compile(pattern string) (*regexp.Regexp, error) {
	expr := pattern
	if e.opts.IgnoreCase && !(e.opts.SmartCase && hasUpper(pattern)) {
		expr = "(?i)" + expr
	}
	re, err := regexp.Compile(expr)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", errBadPattern, pattern)
	}
	return re, nil
}

func hasUpper(s string) bool {
	for _, r := range s {
		if unicode.IsUpper(r) {
			return true
		}
	}
	return false
}

// searchNext finds the last pattern again, the other way when reverse is
// set. Wrapping around the text is reported on the status line.
func (e *Editor) searchNext(reverse bool, count int) (cursor.Cursor, cursor.Kind, error) {
	c := e.Cursor()
	if e.search.pattern == "" {
		return c, 0, errNoPrevious
	}
	re, err := e.compile(e.search.pattern)
	if err != nil {
		return c, 0, err
	}

	backward := e.search.backward != reverse
	to, wrapped, ok := cursor.Search(e.Buffer(), c.Pos(), re, backward, count)
	if !ok {
		return c, 0, fmt.Errorf("%w: %s", errPatternNotFound, e.search.pattern)
	}

	switch {
	case wrapped && backward:
		e.SetStatus("search hit TOP, continuing at BOTTOM")
	case wrapped:
		e.SetStatus("search hit BOTTOM, continuing at TOP")
	case backward:
		e.SetStatus("?" + e.search.pattern)
	default:
		e.SetStatus("/" + e.search.pattern)
	}
	return cursor.At(to.Line, to.Col), cursor.Exclusive, nil
}

func (e *Editor) enterSearch(backward bool) error {
	prompt := '/'
	if backward {
		prompt = '?'
	}
	return e.modes.EnterPrompt(prompt)
}

// runSearch is Enter at the search prompt. An empty pattern searches for
// the last one again in the new direction.
func (e *Editor) runSearch(a vim.Search) error {
	e.modes.Reset()
	pattern := a.Pattern
	if pattern == "" {
		if e.search.pattern == "" {
			return errNoPrevious
		}
		pattern = e.search.pattern
	}
	if _, err := e.compile(pattern); err != nil {
		return err
	}
	e.search = searchState{pattern: pattern, backward: a.Backward}
	e.log.Debug("search", "pattern", pattern, "backward", a.Backward)
	return e.move(vim.Move{Jump: &vim.Jump{Kind: vim.JumpSearchNext}})
}

func (e *Editor) setMark(r rune) {
	e.doc().setMark(r, e.Cursor().Pos())
}
