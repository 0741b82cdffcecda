package fuzzy

import (
	"fmt"
	"slices"
	"sync/atomic"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func texts(results []Result) []string {
	out := make([]string, len(results))
	for i, r := range results {
		out[i] = r.Item.Text
	}
	return out
}

func TestSubsequenceFilter(t *testing.T) {
	m := NewMatcher(DefaultOptions())
	items := Paths([]string{"src/main", "src/editor", "readme"})

	got := texts(m.Match("mai", items, 0))
	if diff := cmp.Diff([]string{"src/main"}, got); diff != "" {
		t.Errorf("Match(mai) mismatch (-want +got):\n%s", diff)
	}

	if got := m.Match("xyz", items, 0); len(got) != 0 {
		t.Errorf("Match(xyz) = %v, want no results", texts(got))
	}
}

func TestPathScorer(t *testing.T) {
	tests := []struct {
		text      string
		query     string
		score     int
		positions []int
	}{
		{"main.go", "main", 168, []int{0, 1, 2, 3}},
		{"src/main", "mai", 111, []int{4, 5, 6}},
		{"fooBar", "b", 31, []int{3}},
		{"abc", "ac", 63, []int{0, 2}},
		{"a_xa_b", "ab", 46, []int{3, 5}},
	}

	for _, tt := range tests {
		t.Run(tt.text+"/"+tt.query, func(t *testing.T) {
			score, pos, ok := PathScorer{}.Score(tt.text, []rune(tt.query), false)
			if !ok {
				t.Fatal("expected a match")
			}
			if score != tt.score {
				t.Errorf("score = %d, want %d", score, tt.score)
			}
			if diff := cmp.Diff(tt.positions, pos); diff != "" {
				t.Errorf("positions mismatch (-want +got):\n%s", diff)
			}
		})
	}

	if _, _, ok := (PathScorer{}).Score("readme", []rune("mai"), false); ok {
		t.Error("readme should not match mai")
	}
}

func TestRanking(t *testing.T) {
	tests := []struct {
		name  string
		query string
		items []string
		want  []string
	}{
		{
			name:  "score",
			query: "main",
			items: []string{"domain.go", "src/main.go", "main.go"},
			want:  []string{"main.go", "src/main.go", "domain.go"},
		},
		{
			name:  "tie goes to lexicographic",
			query: "x",
			items: []string{"b/x", "a/x"},
			want:  []string{"a/x", "b/x"},
		},
		{
			name:  "tie goes to shorter",
			query: "x",
			items: []string{"ab/x", "a/x"},
			want:  []string{"a/x", "ab/x"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := NewMatcher(Options{})
			got := texts(m.Match(tt.query, Paths(tt.items), 0))
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("ranking mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestCaseSensitivity(t *testing.T) {
	items := Paths([]string{"main.go", "Main.go"})

	if got := NewMatcher(DefaultOptions()).Match("MAIN", items, 0); len(got) != 2 {
		t.Errorf("case-insensitive: got %v", texts(got))
	}

	got := NewMatcher(Options{CaseSensitive: true}).Match("Main", items, 0)
	if diff := cmp.Diff([]string{"Main.go"}, texts(got)); diff != "" {
		t.Errorf("case-sensitive mismatch (-want +got):\n%s", diff)
	}
}

func TestEmptyQueryAndLimit(t *testing.T) {
	m := NewMatcher(DefaultOptions())
	items := Paths([]string{"c", "b", "a"})

	if diff := cmp.Diff([]string{"c", "b"}, texts(m.Match("  ", items, 2))); diff != "" {
		t.Errorf("empty query mismatch (-want +got):\n%s", diff)
	}
	if got := m.Match("", items, 0); len(got) != 3 {
		t.Errorf("empty query without limit returned %d", len(got))
	}

	many := Paths([]string{"a1", "a2", "a3", "a4"})
	if got := m.Match("a", many, 3); len(got) != 3 {
		t.Errorf("limit ignored: %d results", len(got))
	}
}

func TestMatcherCache(t *testing.T) {
	m := NewMatcher(DefaultOptions())
	items := Paths([]string{"src/main", "src/mail"})

	first := m.Match("ma", items, 0)
	if m.cache.Len() != 1 {
		t.Fatalf("cache len = %d, want 1", m.cache.Len())
	}
	first[0].Item.Text = "mutated"

	second := m.Match("ma", items, 0)
	if second[0].Item.Text == "mutated" {
		t.Error("cache returned shared results")
	}

	m.ClearCache()
	if m.cache.Len() != 0 {
		t.Errorf("cache len after clear = %d", m.cache.Len())
	}
}

func TestCacheEviction(t *testing.T) {
	c := NewCache(2)
	c.Set("a", []Result{{Score: 1}})
	c.Set("b", []Result{{Score: 2}})
	if _, ok := c.Get("a"); !ok {
		t.Fatal("a should be cached")
	}
	c.Set("c", []Result{{Score: 3}})

	if _, ok := c.Get("b"); ok {
		t.Error("b should have been evicted")
	}
	for _, q := range []string{"a", "c"} {
		if _, ok := c.Get(q); !ok {
			t.Errorf("%s should be cached", q)
		}
	}
}

func TestParallelMatchesSequential(t *testing.T) {
	paths := make([]string, parallelThreshold+500)
	for i := range paths {
		paths[i] = fmt.Sprintf("pkg%d/file%d.go", i%37, i)
	}
	items := Paths(paths)

	m := NewMatcher(Options{Workers: 4})
	got := m.Match("f12", items, 0)

	want := m.matchAll([]rune("f12"), items)
	slices.SortFunc(want, compareResults)

	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("parallel results differ (-want +got):\n%s", diff)
	}
}

func TestFzfScorer(t *testing.T) {
	s, err := NewScorer("fzf")
	if err != nil {
		t.Fatal(err)
	}

	_, pos, ok := s.Score("src/main", []rune("mai"), false)
	if !ok {
		t.Fatal("src/main should match mai")
	}
	if diff := cmp.Diff([]int{4, 5, 6}, pos); diff != "" {
		t.Errorf("positions mismatch (-want +got):\n%s", diff)
	}
	if _, _, ok := s.Score("readme", []rune("mai"), false); ok {
		t.Error("readme should not match mai")
	}

	m := NewMatcher(DefaultOptions())
	m.SetScorer(s)
	got := texts(m.Match("mai", Paths([]string{"src/main", "src/editor", "readme"}), 0))
	if diff := cmp.Diff([]string{"src/main"}, got); diff != "" {
		t.Errorf("fzf filter mismatch (-want +got):\n%s", diff)
	}
}

func TestNewScorer(t *testing.T) {
	for _, name := range []string{"", "path", "fzf"} {
		if _, err := NewScorer(name); err != nil {
			t.Errorf("NewScorer(%q): %v", name, err)
		}
	}
	if _, err := NewScorer("levenshtein"); err == nil {
		t.Error("expected an error for an unknown algorithm")
	}
}

func TestFinderSession(t *testing.T) {
	f := NewFinder(NewMatcher(DefaultOptions()), 2)
	f.SetCandidates([]string{"src/main", "src/editor", "readme"})

	if len(f.Results()) != 2 {
		t.Errorf("empty query shows %d rows, want 2", len(f.Results()))
	}

	for _, r := range "mai" {
		f.Type(r)
	}
	if f.Line() != "Files> mai" {
		t.Errorf("Line = %q", f.Line())
	}
	sel, ok := f.Selected()
	if !ok || sel.Item.Text != "src/main" {
		t.Errorf("Selected = %q, %v", sel.Item.Text, ok)
	}

	for range 3 {
		if !f.Backspace() {
			t.Fatal("Backspace on a non-empty query should succeed")
		}
	}
	if f.Backspace() {
		t.Error("Backspace on an empty query should report false")
	}

	f.Next()
	if f.SelectedIndex() != 1 {
		t.Errorf("after Next: %d", f.SelectedIndex())
	}
	f.Next()
	if f.SelectedIndex() != 0 {
		t.Errorf("Next should wrap: %d", f.SelectedIndex())
	}
	f.Prev()
	if f.SelectedIndex() != 1 {
		t.Errorf("Prev should wrap: %d", f.SelectedIndex())
	}

	f.Type('z')
	f.Type('z')
	if _, ok := f.Selected(); ok {
		t.Error("no results should leave nothing selected")
	}
	f.Clear()
	if f.Query() != "" || len(f.Results()) != 2 {
		t.Errorf("after Clear: query %q, %d rows", f.Query(), len(f.Results()))
	}
}

func TestFinderStreamingCandidates(t *testing.T) {
	f := NewFinder(NewMatcher(DefaultOptions()), 0)
	f.SetLoading(true)
	f.Type('g')
	f.Type('o')

	f.AddCandidates([]string{"a.go"})
	f.AddCandidates([]string{"b.go", "README"})
	f.SetLoading(false)

	if f.Loading() {
		t.Error("loading should be cleared")
	}
	if f.Candidates() != 3 {
		t.Errorf("Candidates = %d", f.Candidates())
	}
	if diff := cmp.Diff([]string{"a.go", "b.go"}, texts(f.Results())); diff != "" {
		t.Errorf("results mismatch (-want +got):\n%s", diff)
	}

	f.Reset()
	if f.Candidates() != 0 || f.Query() != "" {
		t.Error("Reset should clear the session")
	}
}

// countingScorer scores like PathScorer and counts its calls.
type countingScorer struct {
	calls atomic.Int64
}

func (s *countingScorer) Score(text string, query []rune, caseSensitive bool) (int, []int, bool) {
	s.calls.Add(1)
	return PathScorer{}.Score(text, query, caseSensitive)
}

// flatScorer matches everything with the same score.
type flatScorer struct{}

func (flatScorer) Score(string, []rune, bool) (int, []int, bool) { return 1, nil, true }

func TestTieCountsCharacters(t *testing.T) {
	m := NewMatcher(Options{})
	m.SetScorer(flatScorer{})

	got := texts(m.Match("q", Paths([]string{"abcd", "ééé"}), 0))
	if diff := cmp.Diff([]string{"ééé", "abcd"}, got); diff != "" {
		t.Errorf("ranking mismatch (-want +got):\n%s", diff)
	}
}

func TestFinderScoresEachCandidateOnce(t *testing.T) {
	scorer := &countingScorer{}
	m := NewMatcher(DefaultOptions())
	m.SetScorer(scorer)
	f := NewFinder(m, 3)
	f.Type('g')
	f.Type('o')
	scorer.calls.Store(0)

	var all []string
	for batch := range 10 {
		paths := make([]string, 5)
		for i := range paths {
			paths[i] = fmt.Sprintf("dir%d/f%d.go", batch%3, batch*5+i)
		}
		all = append(all, paths...)
		f.AddCandidates(paths)
	}

	if got := scorer.calls.Load(); got != int64(len(all)) {
		t.Errorf("scored %d times for %d candidates", got, len(all))
	}

	want := NewMatcher(Options{}).Match("go", Paths(all), 3)
	if diff := cmp.Diff(want, f.Results()); diff != "" {
		t.Errorf("streamed ranking differs from a full match (-want +got):\n%s", diff)
	}
}

func TestFinderStreamingKeepsSelection(t *testing.T) {
	f := NewFinder(NewMatcher(DefaultOptions()), 0)
	f.Type('g')
	f.AddCandidates([]string{"a.go", "b.go"})
	f.Next()
	f.AddCandidates([]string{"c.go"})
	if f.SelectedIndex() != 1 {
		t.Errorf("selection moved to %d", f.SelectedIndex())
	}
}

func TestMergeResults(t *testing.T) {
	r := func(text string, score int) Result { return Result{Item: Item{Text: text}, Score: score} }
	a := []Result{r("x", 9), r("yy", 5), r("z", 1)}
	b := []Result{r("w", 7), r("v", 5), r("u", 0)}

	got := texts(MergeResults(a, b, 0))
	if diff := cmp.Diff([]string{"x", "w", "v", "yy", "z", "u"}, got); diff != "" {
		t.Errorf("merge mismatch (-want +got):\n%s", diff)
	}
	if got := texts(MergeResults(a, b, 2)); !slices.Equal(got, []string{"x", "w"}) {
		t.Errorf("limited merge = %v", got)
	}
	if got := texts(MergeResults(nil, b, 0)); !slices.Equal(got, []string{"w", "v", "u"}) {
		t.Errorf("merge with empty = %v", got)
	}
	if a[1].Item.Text != "yy" {
		t.Error("merge modified its input")
	}
}
