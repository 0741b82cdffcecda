// Package gutter formats the line number column.
package gutter

import (
	"strconv"
	"strings"
)

// MinDigits matches Vim's default numberwidth of 4 (three digits and a
// space).
const MinDigits = 3

// Width returns the gutter width for a buffer of lineCount lines,
// including the separating space. It is 0 when numbers are off.
func Width(lineCount int, show bool) int {
	if !show {
		return 0
	}
	return max(len(strconv.Itoa(max(lineCount, 1))), MinDigits) + 1
}

// Format returns the right-aligned label for 0-based line in a gutter of
// width cells.
func Format(line, width int) string {
	if width <= 0 {
		return ""
	}
	s := strconv.Itoa(line + 1)
	pad := width - 1 - len(s)
	if pad < 0 {
		return s[len(s)-(width-1):] + " "
	}
	return strings.Repeat(" ", pad) + s + " "
}

// Filler returns the label for rows past the end of the buffer.
func Filler(width int) string {
	if width <= 0 {
		return "~"
	}
	return "~" + strings.Repeat(" ", width-1)
}
