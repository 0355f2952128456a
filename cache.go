// cache.go -- memoized Finder results
//
// Grounded on dbreader.go's use of hashicorp/golang-lru/arc/v2 to avoid
// redundant disk/CPU work for repeated lookups of the same key.
// ResultCache applies the identical idea in front of Find: an interactive
// session that re-queries a hash it already resolved (or already proved
// absent) skips the full two-phase search.
//
// License GPLv2
//
// This software does not come with any express or implied
// warranty; it is provided "as is". No claim  is made to its
// suitability for any purpose.

package rainbow

import (
	"github.com/hashicorp/golang-lru/arc/v2"
)

// cacheEntry distinguishes "found, value is seed" from "searched and
// confirmed absent", so misses are cached too.
type cacheEntry struct {
	seed  string
	found bool
}

// ResultCache memoizes Find results keyed by the target hash bytes. It
// is safe for concurrent use.
type ResultCache struct {
	c *arc.ARCCache[string, cacheEntry]
}

// NewResultCache creates a cache retaining up to size recent results.
func NewResultCache(size int) (*ResultCache, error) {
	if size <= 0 {
		size = 128
	}
	c, err := arc.NewARC[string, cacheEntry](size)
	if err != nil {
		return nil, err
	}
	return &ResultCache{c: c}, nil
}

// FindCached behaves like Find, but consults and populates cache first.
func FindCached(t *Table, target []byte, opts FindOptions, cache *ResultCache) (string, bool) {
	key := string(target)
	if cache != nil {
		if e, ok := cache.c.Get(key); ok {
			return e.seed, e.found
		}
	}

	seed, found := Find(t, target, opts)
	if cache != nil {
		cache.c.Add(key, cacheEntry{seed: seed, found: found})
	}
	return seed, found
}
