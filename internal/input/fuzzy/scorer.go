package fuzzy

import (
	"fmt"
	"slices"
	"sync"
	"unicode"

	"github.com/junegunn/fzf/src/algo"
	"github.com/junegunn/fzf/src/util"
)

// Scorer decides whether text matches query and how well. query is already
// lowercased when matching is case-insensitive. positions are rune indices
// into text, ascending.
type Scorer interface {
	Score(text string, query []rune, caseSensitive bool) (score int, positions []int, ok bool)
}

// NewScorer returns the scorer registered under name: "path" (or "") and
// "fzf".
func NewScorer(name string) (Scorer, error) {
	switch name {
	case "", "path":
		return PathScorer{}, nil
	case "fzf":
		return NewFzfScorer(), nil
	}
	return nil, fmt.Errorf("fuzzy: unknown algorithm %q", name)
}

// Path scoring weights.
const (
	matchBonus       = 16
	startBonus       = 32
	consecutiveBonus = 24
	boundaryBonus    = 16
	maxGapPenalty    = 8
	lengthDivisor    = 4
)

// PathScorer scores subsequence matches over file paths.
type PathScorer struct{}

// Score implements Scorer.
func (PathScorer) Score(text string, query []rune, caseSensitive bool) (int, []int, bool) {
	original := []rune(text)
	if len(query) == 0 {
		return 0, nil, true
	}
	folded := original
	if !caseSensitive {
		folded = make([]rune, len(original))
		for i, r := range original {
			folded[i] = unicode.ToLower(r)
		}
	}

	positions := locate(folded, query)
	if positions == nil {
		return 0, nil, false
	}

	score := matchBonus * len(positions)
	if positions[0] == 0 {
		score += startBonus
	}
	for i, p := range positions {
		if i > 0 {
			if gap := p - positions[i-1] - 1; gap == 0 {
				score += consecutiveBonus
			} else {
				score -= min(gap, maxGapPenalty)
			}
		}
		if p > 0 && isBoundary(original, p) {
			score += boundaryBonus
		}
	}
	score -= (len(original) - len(positions)) / lengthDivisor
	return score, positions, true
}

// locate finds the shortest window ending at the earliest complete match,
// then matches greedily inside it. It returns nil when query is not a
// subsequence of text.
func locate(text, query []rune) []int {
	qi, end := 0, -1
	for i, r := range text {
		if r == query[qi] {
			qi++
			if qi == len(query) {
				end = i
				break
			}
		}
	}
	if end < 0 {
		return nil
	}

	start := end
	qi = len(query) - 1
	for i := end; i >= 0; i-- {
		if text[i] == query[qi] {
			qi--
			if qi < 0 {
				start = i
				break
			}
		}
	}

	positions := make([]int, 0, len(query))
	qi = 0
	for i := start; i <= end && qi < len(query); i++ {
		if text[i] == query[qi] {
			positions = append(positions, i)
			qi++
		}
	}
	return positions
}

func isBoundary(runes []rune, idx int) bool {
	if idx == 0 {
		return true
	}
	prev, cur := runes[idx-1], runes[idx]
	switch prev {
	case '/', '\\', '_', '-', '.', ' ':
		return true
	}
	return unicode.IsLower(prev) && unicode.IsUpper(cur)
}

var fzfInit sync.Once

// FzfScorer scores with fzf's FuzzyMatchV2 algorithm.
type FzfScorer struct {
	slabs *sync.Pool
}

// NewFzfScorer creates an fzf-backed scorer.
func NewFzfScorer() FzfScorer {
	fzfInit.Do(func() { algo.Init("default") })
	return FzfScorer{slabs: &sync.Pool{New: func() any {
		return util.MakeSlab(100*1024, 2048)
	}}}
}

// Score implements Scorer.
func (s FzfScorer) Score(text string, query []rune, caseSensitive bool) (int, []int, bool) {
	if len(query) == 0 {
		return 0, nil, true
	}
	slab := s.slabs.Get().(*util.Slab)
	defer s.slabs.Put(slab)

	chars := util.ToChars([]byte(text))
	res, pos := algo.FuzzyMatchV2(caseSensitive, false, true, &chars, query, true, slab)
	if res.Start < 0 {
		return 0, nil, false
	}
	var positions []int
	if pos != nil {
		positions = slices.Clone(*pos)
		slices.Sort(positions)
	}
	return res.Score, positions, true
}
