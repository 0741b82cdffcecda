package cursor

import "unicode"

// class is a character class for word motions.
type class uint8

const (
	classBlank class = iota
	classPunct
	classWord
)

// classify returns the class of r. With big set every non-blank is a word
// character, giving the blank-delimited WORD motions.
func classify(r rune, big bool) class {
	switch {
	case r == ' ' || r == '\t' || r == '\n' || unicode.IsSpace(r):
		return classBlank
	case big || r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r):
		return classWord
	default:
		return classPunct
	}
}

// walker steps through a text one position at a time. The column equal to a
// line's length is that line's newline; on the last line it is the end of
// the text.
type walker struct {
	t     Text
	lines map[int][]rune
	big   bool
}

func newWalker(t Text, big bool) *walker {
	return &walker{t: t, lines: make(map[int][]rune), big: big}
}

func (w *walker) line(n int) []rune {
	if l, ok := w.lines[n]; ok {
		return l
	}
	l := []rune(w.t.Line(n))
	w.lines[n] = l
	return l
}

func (w *walker) at(p Pos) rune {
	l := w.line(p.Line)
	if p.Col < len(l) {
		return l[p.Col]
	}
	return '\n'
}

func (w *walker) class(p Pos) class {
	return classify(w.at(p), w.big)
}

func (w *walker) eof(p Pos) bool {
	return p.Line >= w.t.LineCount()-1 && p.Col >= len(w.line(p.Line))
}

func (w *walker) bof(p Pos) bool {
	return p.Line == 0 && p.Col == 0
}

// emptyLine reports whether p is the start of an empty line; word motions
// stop there.
func (w *walker) emptyLine(p Pos) bool {
	return p.Col == 0 && len(w.line(p.Line)) == 0
}

func (w *walker) next(p Pos) Pos {
	if p.Col < len(w.line(p.Line)) {
		return Pos{p.Line, p.Col + 1}
	}
	if p.Line < w.t.LineCount()-1 {
		return Pos{p.Line + 1, 0}
	}
	return p
}

func (w *walker) prev(p Pos) Pos {
	if p.Col > 0 {
		return Pos{p.Line, p.Col - 1}
	}
	if p.Line > 0 {
		return Pos{p.Line - 1, len(w.line(p.Line - 1))}
	}
	return p
}

type stepFunc func(w *walker, p Pos) Pos

// stepWordForward moves to the start of the next word, stopping on empty
// lines and at the end of the text.
func stepWordForward(w *walker, p Pos) Pos {
	start := p
	if c := w.class(p); c != classBlank {
		for !w.eof(p) && w.class(p) == c {
			p = w.next(p)
		}
	}
	for !w.eof(p) && w.class(p) == classBlank {
		if p != start && w.emptyLine(p) {
			break
		}
		p = w.next(p)
	}
	return p
}

// stepWordBackward moves to the start of the current or previous word.
func stepWordBackward(w *walker, p Pos) Pos {
	start := p
	p = w.prev(p)
	for !w.bof(p) && w.class(p) == classBlank {
		if p != start && w.emptyLine(p) {
			return p
		}
		p = w.prev(p)
	}
	c := w.class(p)
	for p.Col > 0 && w.class(Pos{p.Line, p.Col - 1}) == c {
		p.Col--
	}
	return p
}

// stepWordEnd moves to the last character of the current or next word.
func stepWordEnd(w *walker, p Pos) Pos {
	p = w.next(p)
	for !w.eof(p) && w.class(p) == classBlank {
		p = w.next(p)
	}
	c := w.class(p)
	for p.Col+1 < len(w.line(p.Line)) && w.class(Pos{p.Line, p.Col + 1}) == c {
		p.Col++
	}
	return p
}

// stepWordEndBackward moves to the last character of the previous word,
// stopping on empty lines.
func stepWordEndBackward(w *walker, p Pos) Pos {
	start := p
	if c := w.class(p); c != classBlank {
		for !w.bof(p) && w.class(p) == c {
			p = w.prev(p)
		}
	}
	for !w.bof(p) && w.class(p) == classBlank {
		if p != start && w.emptyLine(p) {
			return p
		}
		p = w.prev(p)
	}
	return p
}

func wordMotion(big bool, step stepFunc) MoveFunc {
	return func(t Text, c Cursor, count int, b Bound) Cursor {
		w := newWalker(t, big)
		p := c.Pos()
		for i := 0; i < times(count); i++ {
			n := step(w, p)
			if n == p {
				break
			}
			p = n
		}
		return At(p.Line, p.Col)
	}
}

// pendingWordForward is "w" as an operator target: the last step never
// carries the span past the end of the line it started on.
func pendingWordForward(big bool) MoveFunc {
	return func(t Text, c Cursor, count int, _ Bound) Cursor {
		w := newWalker(t, big)
		p := c.Pos()
		for i := 0; i < times(count); i++ {
			n := stepWordForward(w, p)
			if n == p {
				break
			}
			if i == times(count)-1 && n.Line > p.Line {
				n = Pos{p.Line, len(w.line(p.Line))}
				if n.Col == p.Col {
					// Already at the line end: the span covers the newline.
					n = Pos{p.Line + 1, 0}
				}
			}
			p = n
		}
		return At(p.Line, p.Col)
	}
}

// WordUnder returns the keyword under or after the cursor on its line,
// as "*" searches for it. ok is false when the rest of the line has no
// word characters.
func WordUnder(t Text, c Cursor) (word string, ok bool) {
	line := []rune(t.Line(c.Line))
	col := max(c.Col, 0)
	for col < len(line) && classify(line[col], false) != classWord {
		col++
	}
	if col >= len(line) {
		return "", false
	}
	start, end := col, col+1
	for start > 0 && classify(line[start-1], false) == classWord {
		start--
	}
	for end < len(line) && classify(line[end], false) == classWord {
		end++
	}
	return string(line[start:end]), true
}

// IsBlankAt reports whether p is on a blank or past the end of its line.
func IsBlankAt(t Text, p Pos) bool {
	line := []rune(t.Line(p.Line))
	return p.Col < 0 || p.Col >= len(line) || classify(line[p.Col], false) == classBlank
}

// AtWordEnd reports whether p is on the last character of a word.
func AtWordEnd(t Text, p Pos, big bool) bool {
	line := []rune(t.Line(p.Line))
	if p.Col < 0 || p.Col >= len(line) {
		return false
	}
	c := classify(line[p.Col], big)
	return c != classBlank && (p.Col+1 == len(line) || classify(line[p.Col+1], big) != c)
}
