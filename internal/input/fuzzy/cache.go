package fuzzy

import "github.com/jellydator/ttlcache/v3"

// Cache is an LRU of ranked results keyed by normalized query. Entries do
// not expire; the least recently used query is evicted when the cache is
// full. It is safe for concurrent use.
type Cache struct {
	c *ttlcache.Cache[string, []Result]
}

// NewCache creates a cache holding at most maxSize queries.
func NewCache(maxSize int) *Cache {
	if maxSize <= 0 {
		maxSize = 100
	}
	return &Cache{c: ttlcache.New(
		ttlcache.WithCapacity[string, []Result](uint64(maxSize)),
		ttlcache.WithTTL[string, []Result](ttlcache.NoTTL),
	)}
}

// Get returns a copy of the results cached for query.
func (c *Cache) Get(query string) ([]Result, bool) {
	item := c.c.Get(query)
	if item == nil {
		return nil, false
	}
	return copyResults(item.Value()), true
}

// Set stores results for query.
func (c *Cache) Set(query string, results []Result) {
	c.c.Set(query, copyResults(results), ttlcache.NoTTL)
}

// Clear empties the cache.
func (c *Cache) Clear() {
	c.c.DeleteAll()
}

// Len returns the number of cached queries.
func (c *Cache) Len() int {
	return c.c.Len()
}

func copyResults(results []Result) []Result {
	out := make([]Result, len(results))
	for i, r := range results {
		out[i] = r
		if r.Positions != nil {
			out[i].Positions = append([]int(nil), r.Positions...)
		}
	}
	return out
}
