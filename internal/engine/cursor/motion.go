package cursor

// Kind says how an operator treats the span a motion covers.
type Kind uint8

const (
	// Exclusive spans stop before the target character.
	Exclusive Kind = iota

	// Inclusive spans include the target character.
	Inclusive

	// Linewise spans cover whole lines.
	Linewise
)

// String returns the kind name.
func (k Kind) String() string {
	switch k {
	case Inclusive:
		return "inclusive"
	case Linewise:
		return "linewise"
	default:
		return "exclusive"
	}
}

// MoveFunc moves c count times. count is 0 when the user typed none;
// motions that distinguish "no count" (G, gg) rely on that.
type MoveFunc func(t Text, c Cursor, count int, b Bound) Cursor

// Motion is a named cursor movement.
type Motion struct {
	Name string
	Kind Kind
	Move MoveFunc

	// Pending, when set, replaces Move while an operator is waiting.
	Pending MoveFunc

	// MustMove marks motions that fail when they cannot move the cursor;
	// an operator given a failed motion does nothing.
	MustMove bool

	// Jump marks motions that leave the previous position in the context
	// mark, like G and %.
	Jump bool
}

// Failed reports whether moving from c to to counts as a failed motion.
func (m *Motion) Failed(c, to Cursor) bool {
	if !m.MustMove {
		return false
	}
	if m.Kind == Linewise {
		return to.Line == c.Line
	}
	return to.Pos() == c.Pos()
}

// Apply runs the motion and clamps the result under b.
func (m *Motion) Apply(t Text, c Cursor, count int, b Bound) Cursor {
	return m.Move(t, c, count, b).Clamp(t, b)
}

// ApplyPending runs the motion as an operator target.
func (m *Motion) ApplyPending(t Text, c Cursor, count int) Cursor {
	move := m.Move
	if m.Pending != nil {
		move = m.Pending
	}
	return move(t, c, count, BoundPastEnd).Clamp(t, BoundPastEnd)
}

func times(count int) int {
	return max(count, 1)
}

// Standard motions.
var (
	Left = Motion{Name: "left", Kind: Exclusive, Move: func(t Text, c Cursor, count int, b Bound) Cursor {
		c.Col = max(min(c.Col, MaxCol(t, c.Line, b))-times(count), 0)
		c.DesiredCol = c.Col
		return c
	}}

	Right = Motion{Name: "right", Kind: Exclusive, Move: func(t Text, c Cursor, count int, b Bound) Cursor {
		c.Col = min(c.Col+times(count), MaxCol(t, c.Line, b))
		c.DesiredCol = c.Col
		return c
	}}

	Down = Motion{Name: "down", Kind: Linewise, MustMove: true, Move: func(t Text, c Cursor, count int, b Bound) Cursor {
		return vertical(t, c, c.Line+times(count), b)
	}}

	Up = Motion{Name: "up", Kind: Linewise, MustMove: true, Move: func(t Text, c Cursor, count int, b Bound) Cursor {
		return vertical(t, c, c.Line-times(count), b)
	}}

	LineStart = Motion{Name: "lineStart", Kind: Exclusive, Move: func(t Text, c Cursor, _ int, _ Bound) Cursor {
		return At(c.Line, 0)
	}}

	FirstNonBlankMotion = Motion{Name: "firstNonBlank", Kind: Exclusive, Move: func(t Text, c Cursor, _ int, _ Bound) Cursor {
		return At(c.Line, FirstNonBlank(t, c.Line))
	}}

	LineEnd = Motion{Name: "lineEnd", Kind: Inclusive, Move: func(t Text, c Cursor, count int, _ Bound) Cursor {
		line := min(c.Line+times(count)-1, t.LineCount()-1)
		return Cursor{Line: line, Col: MaxCol(t, line, BoundLastChar), DesiredCol: EndOfLine}
	}}

	DocumentStart = Motion{Name: "documentStart", Kind: Linewise, Jump: true, Move: func(t Text, c Cursor, count int, _ Bound) Cursor {
		line := 0
		if count > 0 {
			line = min(count-1, t.LineCount()-1)
		}
		return At(line, FirstNonBlank(t, line))
	}}

	DocumentEnd = Motion{Name: "documentEnd", Kind: Linewise, Jump: true, Move: func(t Text, c Cursor, count int, _ Bound) Cursor {
		line := t.LineCount() - 1
		if count > 0 {
			line = min(count-1, line)
		}
		return At(line, FirstNonBlank(t, line))
	}}

	WordForward = Motion{Name: "wordForward", Kind: Exclusive,
		Move:    wordMotion(false, stepWordForward),
		Pending: pendingWordForward(false),
	}

	WordBackward = Motion{Name: "wordBackward", Kind: Exclusive, Move: wordMotion(false, stepWordBackward)}

	WordEnd = Motion{Name: "wordEnd", Kind: Inclusive, Move: wordMotion(false, stepWordEnd)}

	BigWordForward = Motion{Name: "WORDForward", Kind: Exclusive,
		Move:    wordMotion(true, stepWordForward),
		Pending: pendingWordForward(true),
	}

	BigWordBackward = Motion{Name: "WORDBackward", Kind: Exclusive, Move: wordMotion(true, stepWordBackward)}

	BigWordEnd = Motion{Name: "WORDEnd", Kind: Inclusive, Move: wordMotion(true, stepWordEnd)}

	WordEndBackward = Motion{Name: "wordEndBackward", Kind: Inclusive, Move: wordMotion(false, stepWordEndBackward)}

	BigWordEndBackward = Motion{Name: "WORDEndBackward", Kind: Inclusive, Move: wordMotion(true, stepWordEndBackward)}

	ParagraphForward = Motion{Name: "paragraphForward", Kind: Exclusive, Jump: true, Move: paragraphForward}

	ParagraphBackward = Motion{Name: "paragraphBackward", Kind: Exclusive, Jump: true, Move: paragraphBackward}

	MatchPair = Motion{Name: "matchPair", Kind: Inclusive, Jump: true, MustMove: true, Move: matchPair}

	// PercentLine is {count}%: the line count percent of the way down.
	PercentLine = Motion{Name: "percentLine", Kind: Linewise, Jump: true, Move: func(t Text, c Cursor, count int, _ Bound) Cursor {
		pct := min(max(count, 1), 100)
		line := max((pct*t.LineCount()+99)/100-1, 0)
		return At(line, FirstNonBlank(t, line))
	}}
)

// vertical moves to line and re-resolves the column from the desired column.
func vertical(t Text, c Cursor, line int, b Bound) Cursor {
	c.Line = min(max(line, 0), t.LineCount()-1)
	c.Col = min(c.DesiredCol, MaxCol(t, c.Line, b))
	return c
}

// Span is a region of text between two positions. End is exclusive for
// characterwise spans; for linewise spans only the lines matter.
type Span struct {
	Start    Pos
	End      Pos
	Linewise bool
}

// IsEmpty reports whether a characterwise span covers nothing.
func (s Span) IsEmpty() bool {
	return !s.Linewise && s.Start == s.End
}

// SpanOf returns the span an operator covers when a motion of kind k moves
// the cursor from one position to another.
func SpanOf(t Text, k Kind, from, to Pos) Span {
	if to.Before(from) {
		from, to = to, from
	}
	switch k {
	case Linewise:
		return Span{Start: Pos{Line: from.Line}, End: Pos{Line: to.Line}, Linewise: true}
	case Inclusive:
		if LineLen(t, to.Line) > 0 {
			to.Col = min(to.Col+1, LineLen(t, to.Line))
		}
	}
	return Span{Start: from, End: to}
}
