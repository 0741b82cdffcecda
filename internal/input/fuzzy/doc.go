// Package fuzzy ranks file paths against a typed query for the file finder.
//
// A candidate matches when every query character appears in it in order.
// Matches are ranked best first; equal scores go to the shorter path, then
// to the lexicographically smaller one. No match is an empty result, never
// an error.
//
// # Scorers
//
// PathScorer is the default. It rewards contiguous runs and matches at path
// segment boundaries (after '/', '_', '-', '.', or a camelCase hump) and
// penalizes unmatched length. FzfScorer delegates to fzf's FuzzyMatchV2 and
// is selected with finder.algorithm = "fzf".
//
// # Usage
//
//	m := fuzzy.NewMatcher(fuzzy.DefaultOptions())
//	results := m.Match("mai", fuzzy.Paths(candidates), 20)
//
// Finder wraps a Matcher with the interactive state of the finder overlay:
// the query, the candidate set and the selected row.
//
// Matcher is safe for concurrent use. Finder is not; it belongs to the
// editor loop.
package fuzzy
