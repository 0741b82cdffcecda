package fuzzy

import "strings"

// Prompt precedes the query in the finder's input line.
const Prompt = "Files> "

// DefaultMaxResults is the number of rows the finder shows.
const DefaultMaxResults = 20

// Finder is the state of one finder session: candidates, the query being
// typed, the ranked rows and the selected row.
type Finder struct {
	matcher    *Matcher
	maxResults int

	items    []Item
	query    []rune
	ranked   []Result // every match for query
	results  []Result
	selected int
	loading  bool
}

// NewFinder creates an empty finder. maxResults <= 0 uses
// DefaultMaxResults.
func NewFinder(m *Matcher, maxResults int) *Finder {
	if maxResults <= 0 {
		maxResults = DefaultMaxResults
	}
	return &Finder{matcher: m, maxResults: maxResults}
}

// Reset clears the query and candidates for a new session.
func (f *Finder) Reset() {
	f.items = nil
	f.query = f.query[:0]
	f.ranked = nil
	f.results = nil
	f.selected = 0
	f.loading = false
	f.matcher.ClearCache()
}

// SetCandidates replaces the candidate paths.
func (f *Finder) SetCandidates(paths []string) {
	f.items = Paths(paths)
	f.matcher.ClearCache()
	f.refresh()
}

// AddCandidates appends paths found by a walk still in progress. Only the
// new paths are scored; their matches are merged into the current ranking.
func (f *Finder) AddCandidates(paths []string) {
	batch := Paths(paths)
	f.items = append(f.items, batch...)
	f.matcher.ClearCache()
	if f.blank() {
		f.refresh()
		return
	}
	f.ranked = MergeResults(f.ranked, f.matcher.Rank(string(f.query), batch), 0)
	f.show()
}

// SetLoading marks whether candidates are still arriving.
func (f *Finder) SetLoading(loading bool) { f.loading = loading }

// Loading reports whether candidates are still arriving.
func (f *Finder) Loading() bool { return f.loading }

// Candidates returns the number of candidates.
func (f *Finder) Candidates() int { return len(f.items) }

// Query returns the typed query.
func (f *Finder) Query() string { return string(f.query) }

// Line returns the prompt followed by the query.
func (f *Finder) Line() string { return Prompt + string(f.query) }

// Type appends r to the query.
func (f *Finder) Type(r rune) {
	f.query = append(f.query, r)
	f.selected = 0
	f.refresh()
}

// Backspace removes the last query character. It reports false when the
// query was already empty.
func (f *Finder) Backspace() bool {
	if len(f.query) == 0 {
		return false
	}
	f.query = f.query[:len(f.query)-1]
	f.selected = 0
	f.refresh()
	return true
}

// Clear empties the query.
func (f *Finder) Clear() {
	f.query = f.query[:0]
	f.selected = 0
	f.refresh()
}

// Next moves the selection down, wrapping.
func (f *Finder) Next() {
	if len(f.results) > 0 {
		f.selected = (f.selected + 1) % len(f.results)
	}
}

// Prev moves the selection up, wrapping.
func (f *Finder) Prev() {
	if len(f.results) > 0 {
		f.selected = (f.selected - 1 + len(f.results)) % len(f.results)
	}
}

// Results returns the ranked rows.
func (f *Finder) Results() []Result { return f.results }

// SelectedIndex returns the selected row.
func (f *Finder) SelectedIndex() int { return f.selected }

// Selected returns the selected result, if any.
func (f *Finder) Selected() (Result, bool) {
	if f.selected < len(f.results) {
		return f.results[f.selected], true
	}
	return Result{}, false
}

// blank reports whether the query matches everything in given order.
func (f *Finder) blank() bool {
	return strings.TrimSpace(string(f.query)) == ""
}

func (f *Finder) refresh() {
	limit := 0
	if f.blank() {
		limit = f.maxResults
	}
	f.ranked = f.matcher.Match(string(f.query), f.items, limit)
	f.show()
}

func (f *Finder) show() {
	f.results = applyLimit(f.ranked, f.maxResults)
	if f.selected >= len(f.results) {
		f.selected = max(len(f.results)-1, 0)
	}
}
