package fuzzy

import (
	"runtime"

	"golang.org/x/sync/errgroup"
)

// matchParallel splits items into chunks scored on at most Workers
// goroutines. Order is restored by the caller's sort.
func (m *Matcher) matchParallel(query []rune, items []Item) []Result {
	workers := m.options.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	chunk := max((len(items)+workers-1)/workers, 256)

	parts := make([][]Result, (len(items)+chunk-1)/chunk)
	var g errgroup.Group
	g.SetLimit(workers)
	for i := range parts {
		start := i * chunk
		end := min(start+chunk, len(items))
		g.Go(func() error {
			parts[i] = m.matchAll(query, items[start:end])
			return nil
		})
	}
	_ = g.Wait()

	var n int
	for _, p := range parts {
		n += len(p)
	}
	results := make([]Result, 0, n)
	for _, p := range parts {
		results = append(results, p...)
	}
	return results
}
