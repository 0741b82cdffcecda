package cursor

import (
	"regexp"
	"slices"
	"unicode/utf8"
)

// Search finds the count-th match of re after from (before it when
// backward), wrapping around the end of the text. Matches never span
// lines. wrapped reports that the search passed the end (or start) of
// the text; ok is false when re matches nowhere.
func Search(t Text, from Pos, re *regexp.Regexp, backward bool, count int) (to Pos, wrapped, ok bool) {
	to = from
	for range times(count) {
		var w bool
		if backward {
			to, w, ok = searchBackward(t, to, re)
		} else {
			to, w, ok = searchForward(t, to, re)
		}
		if !ok {
			return from, false, false
		}
		wrapped = wrapped || w
	}
	return to, wrapped, true
}

func searchForward(t Text, from Pos, re *regexp.Regexp) (Pos, bool, bool) {
	n := t.LineCount()
	for i := 0; i <= n; i++ {
		line := (from.Line + i) % n
		for _, col := range matchCols(t.Line(line), re) {
			if i == 0 && col <= from.Col {
				continue
			}
			if i == n && col > from.Col {
				break
			}
			return Pos{Line: line, Col: col}, from.Line+i >= n, true
		}
	}
	return from, false, false
}

func searchBackward(t Text, from Pos, re *regexp.Regexp) (Pos, bool, bool) {
	n := t.LineCount()
	for i := 0; i <= n; i++ {
		line := ((from.Line-i)%n + n) % n
		cols := matchCols(t.Line(line), re)
		slices.Reverse(cols)
		for _, col := range cols {
			if i == 0 && col >= from.Col {
				continue
			}
			if i == n && col < from.Col {
				break
			}
			return Pos{Line: line, Col: col}, from.Line-i < 0, true
		}
	}
	return from, false, false
}

// matchCols returns the rune columns where re matches in s, in order.
func matchCols(s string, re *regexp.Regexp) []int {
	locs := re.FindAllStringIndex(s, -1)
	cols := make([]int, 0, len(locs))
	for _, loc := range locs {
		cols = append(cols, utf8.RuneCountInString(s[:loc[0]]))
	}
	return cols
}
