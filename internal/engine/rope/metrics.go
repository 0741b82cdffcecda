package rope

import "unicode/utf8"

// Point is a zero-based line/column position. Column counts characters.
type Point struct {
	Line   int
	Column int
}

// TextSummary holds aggregated metrics for a span of text.
// Summaries form a monoid under Add, which lets internal nodes cache the
// summary of each child and seek without touching leaf text.
type TextSummary struct {
	// Bytes is the UTF-8 byte count.
	Bytes int

	// Chars is the rune count.
	Chars int

	// Lines is the number of newline characters.
	Lines int

	// LastLineChars is the rune count after the last newline.
	LastLineChars int

	// Flags indicate text properties for fast paths.
	Flags TextFlags
}

// TextFlags indicate text properties for fast paths.
type TextFlags uint8

const (
	// FlagASCII indicates every character is ASCII, so chars == bytes.
	FlagASCII TextFlags = 1 << iota

	// FlagHasNewlines indicates the text contains newline characters.
	FlagHasNewlines
)

// Add combines two summaries, s followed by other.
func (s TextSummary) Add(other TextSummary) TextSummary {
	if s.Bytes == 0 {
		return other
	}
	if other.Bytes == 0 {
		return s
	}

	result := TextSummary{
		Bytes: s.Bytes + other.Bytes,
		Chars: s.Chars + other.Chars,
		Lines: s.Lines + other.Lines,
		Flags: s.Flags & other.Flags & FlagASCII,
	}

	if other.Lines > 0 {
		result.LastLineChars = other.LastLineChars
	} else {
		result.LastLineChars = s.LastLineChars + other.LastLineChars
	}

	if (s.Flags|other.Flags)&FlagHasNewlines != 0 {
		result.Flags |= FlagHasNewlines
	}

	return result
}

// IsZero reports whether the summary describes empty text.
func (s TextSummary) IsZero() bool {
	return s.Bytes == 0
}

// ComputeSummary calculates metrics for a string.
func ComputeSummary(s string) TextSummary {
	sum := TextSummary{Bytes: len(s), Flags: FlagASCII}

	var lineChars int
	for _, r := range s {
		sum.Chars++
		if r >= utf8.RuneSelf {
			sum.Flags &^= FlagASCII
		}
		if r == '\n' {
			sum.Lines++
			sum.Flags |= FlagHasNewlines
			lineChars = 0
			continue
		}
		lineChars++
	}
	sum.LastLineChars = lineChars

	return sum
}

// CountChars returns the number of runes in s.
func CountChars(s string) int {
	return utf8.RuneCountInString(s)
}
