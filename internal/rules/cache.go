package rules

import (
	"fmt"

	"github.com/dgraph-io/ristretto"
)

// Cache is a bounded cache of parsed rule sets keyed by source text and route
// range. Earlier element generations cached compiled logic in an unbounded
// map; this one evicts by total source size, so hosts that rewrite settings
// frequently cannot grow it without limit.
type Cache struct {
	inner *ristretto.Cache
}

// NewCache creates a rule-set cache bounded to roughly maxBytes of rule
// source text.
func NewCache(maxBytes int64) (*Cache, error) {
	inner, err := ristretto.NewCache(&ristretto.Config{
		NumCounters: 1e4,
		MaxCost:     maxBytes,
		BufferItems: 64,
	})
	if err != nil {
		return nil, err
	}
	return &Cache{inner: inner}, nil
}

// Get returns the parsed rule set for source, parsing and caching on miss.
func (c *Cache) Get(source string, maxRoute int) (*RuleSet, error) {
	key := fmt.Sprintf("%d:%s", maxRoute, source)

	if v, ok := c.inner.Get(key); ok {
		if rs, ok := v.(*RuleSet); ok {
			return rs, nil
		}
	}

	rs, err := ParseRuleSet(source, maxRoute)
	if err != nil {
		return nil, err
	}

	c.inner.Set(key, rs, int64(len(source)))
	return rs, nil
}

// Wait blocks until pending cache writes are applied. Tests use this to make
// hits deterministic.
func (c *Cache) Wait() {
	c.inner.Wait()
}

// Close releases the cache's resources.
func (c *Cache) Close() {
	c.inner.Close()
}
