package cursor

// paragraphForward is "}": the next empty line after the current
// paragraph, or the end of the last line.
func paragraphForward(t Text, c Cursor, count int, _ Bound) Cursor {
	n := t.LineCount()
	line := c.Line
	for range times(count) {
		for line < n-1 && LineLen(t, line) == 0 {
			line++
		}
		for line < n-1 && LineLen(t, line) > 0 {
			line++
		}
		if LineLen(t, line) > 0 {
			return Cursor{Line: line, Col: LineLen(t, line), DesiredCol: EndOfLine}
		}
	}
	return At(line, 0)
}

// paragraphBackward is "{": the previous empty line before the current
// paragraph, or the start of the text.
func paragraphBackward(t Text, c Cursor, count int, _ Bound) Cursor {
	line := c.Line
	for range times(count) {
		for line > 0 && LineLen(t, line) == 0 {
			line--
		}
		for line > 0 && LineLen(t, line) > 0 {
			line--
		}
	}
	return At(line, 0)
}

var pairs = map[rune]struct {
	match   rune
	forward bool
}{
	'(': {')', true}, ')': {'(', false},
	'[': {']', true}, ']': {'[', false},
	'{': {'}', true}, '}': {'{', false},
}

// matchPair is "%": the first bracket at or after the cursor on its line
// jumps to its partner, counting nesting across lines. The cursor stays
// put when there is no bracket or no partner.
func matchPair(t Text, c Cursor, _ int, _ Bound) Cursor {
	line := []rune(t.Line(c.Line))
	col := max(c.Col, 0)
	for col < len(line) {
		if _, ok := pairs[line[col]]; ok {
			break
		}
		col++
	}
	if col >= len(line) {
		return c
	}

	open := line[col]
	p := pairs[open]
	w := newWalker(t, false)
	pos := Pos{Line: c.Line, Col: col}
	depth := 0
	for {
		next := w.next(pos)
		if !p.forward {
			next = w.prev(pos)
		}
		if next == pos {
			return c
		}
		pos = next
		switch w.at(pos) {
		case open:
			depth++
		case p.match:
			if depth == 0 {
				return At(pos.Line, pos.Col)
			}
			depth--
		}
	}
}

// Find is a character search within the line: f, F, t or T.
type Find struct {
	Char     rune
	Backward bool

	// Till stops one character short of the match.
	Till bool
}

// Reversed returns the search in the other direction, as "," uses it.
func (f Find) Reversed() Find {
	f.Backward = !f.Backward
	return f
}

// Kind returns how an operator treats the span: forward searches include
// the target, backward ones stop before the cursor.
func (f Find) Kind() Kind {
	if f.Backward {
		return Exclusive
	}
	return Inclusive
}

// FindChar moves to the count-th occurrence of f.Char on the cursor line.
// ok is false when there are not that many; c is then returned unchanged.
// With repeat set, as for ";" and ",", a till search skips a match right
// next to the cursor so it does not stick.
func FindChar(t Text, c Cursor, f Find, count int, repeat bool) (Cursor, bool) {
	line := []rune(t.Line(c.Line))
	step := 1
	if f.Backward {
		step = -1
	}
	i := c.Col
	if f.Till && repeat {
		i += step
	}
	for n := times(count); n > 0; {
		i += step
		if i < 0 || i >= len(line) {
			return c, false
		}
		if line[i] == f.Char {
			n--
		}
	}
	if f.Till {
		i -= step
	}
	return At(c.Line, i), true
}
