// core/props/cache.go
package props

import (
	"sync/atomic"

	lru "github.com/hashicorp/golang-lru/v2"

	"primerset/core/model"
	"primerset/core/thermo"
)

type cacheKey struct {
	seq  string
	cond thermo.Conditions
}

type cacheEntry struct {
	vals model.Values
	err  error
}

// Cache memoizes an Evaluator by (sequence, conditions). Relaxation and the
// Tm sweep re-read the same primers many times; intrinsic values never change
// for a fixed sequence and condition set.
type Cache struct {
	next         Evaluator
	lru          *lru.Cache[cacheKey, cacheEntry]
	hits, misses atomic.Int64
}

// NewCache wraps next with an LRU of the given size.
func NewCache(next Evaluator, size int) (*Cache, error) {
	if size <= 0 {
		size = 4096
	}
	c, err := lru.New[cacheKey, cacheEntry](size)
	if err != nil {
		return nil, err
	}
	return &Cache{next: next, lru: c}, nil
}

func (c *Cache) Names() []model.Property { return c.next.Names() }

func (c *Cache) Evaluate(seq string, cond thermo.Conditions) (model.Values, error) {
	k := cacheKey{seq: seq, cond: cond}
	if e, ok := c.lru.Get(k); ok {
		c.hits.Add(1)
		return e.vals.Clone(), e.err
	}
	c.misses.Add(1)
	v, err := c.next.Evaluate(seq, cond)
	c.lru.Add(k, cacheEntry{vals: v.Clone(), err: err})
	return v, err
}

// Stats returns hit and miss counts.
func (c *Cache) Stats() (hits, misses int64) { return c.hits.Load(), c.misses.Load() }
