package fuzzy

import (
	"slices"
	"strings"
	"sync"
	"unicode/utf8"
)

// Item is a candidate.
type Item struct {
	// Text is matched against the query.
	Text string

	// Data is carried through to results untouched.
	Data any
}

// Paths wraps plain strings as items.
func Paths(paths []string) []Item {
	items := make([]Item, len(paths))
	for i, p := range paths {
		items[i] = Item{Text: p}
	}
	return items
}

// Result is a matched item.
type Result struct {
	Item  Item
	Score int

	// Positions are the rune indices of matched characters in Item.Text.
	Positions []int
}

// better reports whether a ranks before b: higher score, then fewer
// characters, then lexicographic.
func better(a, b Result) bool {
	if a.Score != b.Score {
		return a.Score > b.Score
	}
	la, lb := utf8.RuneCountInString(a.Item.Text), utf8.RuneCountInString(b.Item.Text)
	if la != lb {
		return la < lb
	}
	return a.Item.Text < b.Item.Text
}

func compareResults(a, b Result) int {
	switch {
	case better(a, b):
		return -1
	case better(b, a):
		return 1
	}
	return 0
}

// Options configures a Matcher.
type Options struct {
	// CacheSize bounds the number of cached queries. 0 disables caching.
	CacheSize int

	// CaseSensitive disables case folding.
	CaseSensitive bool

	// Workers is the number of goroutines used for large candidate sets.
	// 0 uses the number of CPUs.
	Workers int
}

// DefaultOptions returns the options the finder uses.
func DefaultOptions() Options {
	return Options{CacheSize: 256}
}

// parallelThreshold is the candidate count above which matching fans out.
const parallelThreshold = 4096

// Matcher ranks items against queries.
type Matcher struct {
	mu      sync.RWMutex
	cache   *Cache
	scorer  Scorer
	options Options
}

// NewMatcher creates a matcher using PathScorer.
func NewMatcher(opts Options) *Matcher {
	var cache *Cache
	if opts.CacheSize > 0 {
		cache = NewCache(opts.CacheSize)
	}
	return &Matcher{cache: cache, scorer: PathScorer{}, options: opts}
}

// SetScorer replaces the scorer and drops cached results.
func (m *Matcher) SetScorer(s Scorer) {
	m.mu.Lock()
	m.scorer = s
	m.mu.Unlock()
	m.ClearCache()
}

// Match returns items matching query, best first, at most limit of them
// (limit <= 0 means all). An empty query returns items in their given
// order. Cached results belong to one candidate set; call ClearCache when
// the items change.
func (m *Matcher) Match(query string, items []Item, limit int) []Result {
	query = m.normalize(query)
	if query == "" {
		return firstItems(items, limit)
	}

	if m.cache != nil {
		if cached, ok := m.cache.Get(query); ok {
			return applyLimit(cached, limit)
		}
	}

	results := m.rank([]rune(query), items)
	if m.cache != nil {
		m.cache.Set(query, results)
	}
	return applyLimit(results, limit)
}

// Rank scores items against query like Match but bypasses the cache and
// returns every match. It suits a batch of new candidates whose results
// are merged into an earlier ranking with MergeResults.
func (m *Matcher) Rank(query string, items []Item) []Result {
	query = m.normalize(query)
	if query == "" {
		return firstItems(items, 0)
	}
	return m.rank([]rune(query), items)
}

func (m *Matcher) rank(query []rune, items []Item) []Result {
	var results []Result
	if len(items) > parallelThreshold {
		results = m.matchParallel(query, items)
	} else {
		results = m.matchAll(query, items)
	}
	slices.SortFunc(results, compareResults)
	return results
}

// MergeResults merges two rankings into a new one, keeping at most limit
// rows (limit <= 0 keeps all). Neither input is modified.
func MergeResults(a, b []Result, limit int) []Result {
	n := len(a) + len(b)
	if limit > 0 {
		n = min(n, limit)
	}
	out := make([]Result, 0, n)
	i, j := 0, 0
	for len(out) < n {
		switch {
		case j == len(b) || (i < len(a) && compareResults(a[i], b[j]) <= 0):
			out = append(out, a[i])
			i++
		default:
			out = append(out, b[j])
			j++
		}
	}
	return out
}

// ClearCache drops every cached query.
func (m *Matcher) ClearCache() {
	if m.cache != nil {
		m.cache.Clear()
	}
}

func (m *Matcher) normalize(query string) string {
	query = strings.TrimSpace(query)
	if !m.options.CaseSensitive {
		query = strings.ToLower(query)
	}
	return query
}

func (m *Matcher) matchItem(query []rune, item Item) (Result, bool) {
	m.mu.RLock()
	s := m.scorer
	m.mu.RUnlock()

	score, pos, ok := s.Score(item.Text, query, m.options.CaseSensitive)
	if !ok {
		return Result{}, false
	}
	return Result{Item: item, Score: score, Positions: pos}, true
}

func (m *Matcher) matchAll(query []rune, items []Item) []Result {
	var results []Result
	for _, it := range items {
		if r, ok := m.matchItem(query, it); ok {
			results = append(results, r)
		}
	}
	return results
}

func firstItems(items []Item, limit int) []Result {
	n := len(items)
	if limit > 0 {
		n = min(n, limit)
	}
	results := make([]Result, n)
	for i := range n {
		results[i] = Result{Item: items[i]}
	}
	return results
}

func applyLimit(results []Result, limit int) []Result {
	if limit <= 0 || limit >= len(results) {
		return results
	}
	return results[:limit]
}
