package register

import (
	"strings"
	"unicode/utf8"

	"github.com/dshills/kestrel/internal/engine/cursor"
)

// Placement describes a paste: insert Text at At, then put the cursor at
// Cursor. The manager computes it; the editor performs the edit.
type Placement struct {
	At     cursor.Pos
	Text   string
	Cursor cursor.Pos
}

// Place computes where content c goes when pasted count times relative to
// the cursor at p. Character-wise text goes after the cursor character (at
// the cursor on an empty line, or before it when before is set). Line-wise
// text goes as whole lines below the cursor line (above with before), and
// the cursor moves to the first non-blank of the first inserted line.
func Place(t cursor.Text, p cursor.Pos, c Content, count int, before bool) Placement {
	text := strings.Repeat(c.Text, max(count, 1))
	if c.Kind == LineWise {
		return placeLines(t, p, text, before)
	}

	col := p.Col
	if !before && cursor.LineLen(t, p.Line) > 0 {
		col++
	}
	at := cursor.Pos{Line: p.Line, Col: min(col, cursor.LineLen(t, p.Line))}

	end := at
	if strings.Contains(text, "\n") {
		// Multi-line text leaves the cursor at the start of the paste.
		return Placement{At: at, Text: text, Cursor: at}
	}
	end.Col += max(utf8.RuneCountInString(text)-1, 0)
	return Placement{At: at, Text: text, Cursor: end}
}

func placeLines(t cursor.Text, p cursor.Pos, text string, before bool) Placement {
	if !strings.HasSuffix(text, "\n") {
		text += "\n"
	}
	first, _, _ := strings.Cut(text, "\n")
	col := firstNonBlank(first)

	if before {
		return Placement{
			At:     cursor.Pos{Line: p.Line},
			Text:   text,
			Cursor: cursor.Pos{Line: p.Line, Col: col},
		}
	}
	// Insert after the cursor line's end so the last line of the buffer
	// needs no trailing newline.
	return Placement{
		At:     cursor.Pos{Line: p.Line, Col: cursor.LineLen(t, p.Line)},
		Text:   "\n" + strings.TrimSuffix(text, "\n"),
		Cursor: cursor.Pos{Line: p.Line + 1, Col: col},
	}
}

func firstNonBlank(line string) int {
	col := 0
	for _, r := range line {
		if r != ' ' && r != '\t' {
			return col
		}
		col++
	}
	return max(col-1, 0)
}
