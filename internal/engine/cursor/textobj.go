package cursor

// SelectFunc returns the span of a text object around c. ok is false when
// there is no such object at the cursor.
type SelectFunc func(t Text, c Cursor, inner bool) (span Span, ok bool)

// TextObject selects text by structure rather than by movement.
type TextObject struct {
	Name   string
	Select SelectFunc
}

// Standard text objects.
var (
	WordObject = TextObject{Name: "word", Select: func(t Text, c Cursor, inner bool) (Span, bool) {
		return selectWord(t, c, inner, false)
	}}

	BigWordObject = TextObject{Name: "WORD", Select: func(t Text, c Cursor, inner bool) (Span, bool) {
		return selectWord(t, c, inner, true)
	}}

	DoubleQuoteObject = quoteObject("doubleQuote", '"')
	SingleQuoteObject = quoteObject("singleQuote", '\'')
	BacktickObject    = quoteObject("backtick", '`')

	ParenObject   = blockObject("paren", '(', ')')
	BracketObject = blockObject("bracket", '[', ']')
	BraceObject   = blockObject("brace", '{', '}')
	AngleObject   = blockObject("angle", '<', '>')
)

func selectWord(t Text, c Cursor, inner, big bool) (Span, bool) {
	line := []rune(t.Line(c.Line))
	if len(line) == 0 {
		return Span{}, false
	}
	col := min(max(c.Col, 0), len(line)-1)
	cls := classify(line[col], big)

	start, end := col, col+1
	for start > 0 && classify(line[start-1], big) == cls {
		start--
	}
	for end < len(line) && classify(line[end], big) == cls {
		end++
	}

	if !inner {
		if cls == classBlank {
			if end < len(line) {
				next := classify(line[end], big)
				for end < len(line) && classify(line[end], big) == next {
					end++
				}
			}
		} else {
			trail := end
			for trail < len(line) && classify(line[trail], big) == classBlank {
				trail++
			}
			if trail > end {
				end = trail
			} else {
				for start > 0 && classify(line[start-1], big) == classBlank {
					start--
				}
			}
		}
	}

	return Span{Start: Pos{c.Line, start}, End: Pos{c.Line, end}}, true
}

func quoteObject(name string, q rune) TextObject {
	return TextObject{Name: name, Select: func(t Text, c Cursor, inner bool) (Span, bool) {
		return selectQuote(t, c, inner, q)
	}}
}

// selectQuote pairs unescaped quotes on the cursor line from the left and
// picks the first pair that ends at or after the cursor.
func selectQuote(t Text, c Cursor, inner bool, q rune) (Span, bool) {
	line := []rune(t.Line(c.Line))

	var quotes []int
	for i, r := range line {
		if r == q && (i == 0 || line[i-1] != '\\') {
			quotes = append(quotes, i)
		}
	}

	for k := 0; k+1 < len(quotes); k += 2 {
		open, closing := quotes[k], quotes[k+1]
		if closing < c.Col {
			continue
		}
		if inner {
			return Span{Start: Pos{c.Line, open + 1}, End: Pos{c.Line, closing}}, true
		}
		start, end := open, closing+1
		trail := end
		for trail < len(line) && classify(line[trail], false) == classBlank {
			trail++
		}
		if trail > end {
			end = trail
		} else {
			for start > 0 && classify(line[start-1], false) == classBlank {
				start--
			}
		}
		return Span{Start: Pos{c.Line, start}, End: Pos{c.Line, end}}, true
	}
	return Span{}, false
}

func blockObject(name string, open, closing rune) TextObject {
	return TextObject{Name: name, Select: func(t Text, c Cursor, inner bool) (Span, bool) {
		return selectBlock(t, c, inner, open, closing)
	}}
}

// selectBlock finds the innermost open/closing pair around the cursor,
// which may span lines.
func selectBlock(t Text, c Cursor, inner bool, open, closing rune) (Span, bool) {
	w := newWalker(t, false)
	p := c.Clamp(t, BoundLastChar).Pos()

	o, found := p, w.at(p) == open
	if !found {
		depth := 0
		for q := p; !w.bof(q); {
			q = w.prev(q)
			switch w.at(q) {
			case closing:
				depth++
			case open:
				if depth == 0 {
					o, found = q, true
				} else {
					depth--
				}
			}
			if found {
				break
			}
		}
	}
	if !found {
		return Span{}, false
	}

	var cl Pos
	found = false
	depth := 0
	for q := o; !w.eof(q) && !found; {
		q = w.next(q)
		switch w.at(q) {
		case open:
			depth++
		case closing:
			if depth == 0 {
				cl, found = q, true
			} else {
				depth--
			}
		}
	}
	if !found {
		return Span{}, false
	}

	if !inner {
		return Span{Start: o, End: Pos{cl.Line, cl.Col + 1}}, true
	}

	start := w.next(o)
	if o.Col == len(w.line(o.Line))-1 && o.Line < cl.Line {
		start = Pos{o.Line + 1, 0}
	}
	end := cl
	if cl.Line > start.Line && onlyBlanksBefore(w.line(cl.Line), cl.Col) {
		end = Pos{cl.Line, 0}
	}
	if end.Before(start) {
		end = start
	}
	return Span{Start: start, End: end}, true
}

func onlyBlanksBefore(line []rune, col int) bool {
	for _, r := range line[:col] {
		if r != ' ' && r != '\t' {
			return false
		}
	}
	return true
}
