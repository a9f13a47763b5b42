package rules

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleRules = `
rules:
  - all:
      - field: roi_count
        operator: gt
        value: 5
    route: 2
  - all:
      - field: other_data.kind
        operator: eq
        value: urgent
      - field: other_data.score
        operator: gte
        value: 0.9
    route: 3
default: 1
`

func TestParseRuleSet(t *testing.T) {
	rs, err := ParseRuleSet(sampleRules, 4)
	require.NoError(t, err)
	require.Len(t, rs.Rules, 2)
	assert.Equal(t, 1, rs.Default)
	assert.Equal(t, 2, rs.Rules[0].Route)
	assert.Len(t, rs.Rules[1].All, 2)
}

func TestParseRuleSet_Errors(t *testing.T) {
	t.Run("bad yaml", func(t *testing.T) {
		_, err := ParseRuleSet("rules: [::", 4)
		assert.Error(t, err)
	})

	t.Run("route out of range", func(t *testing.T) {
		_, err := ParseRuleSet(sampleRules, 2)
		assert.Error(t, err)
	})

	t.Run("invalid operator", func(t *testing.T) {
		src := "rules:\n  - all:\n      - field: x\n        operator: regex\n        value: 1\n    route: 1\n"
		_, err := ParseRuleSet(src, 4)
		assert.Error(t, err)
	})

	t.Run("default defaults to route1", func(t *testing.T) {
		rs, err := ParseRuleSet("rules: []\n", 4)
		require.NoError(t, err)
		assert.Equal(t, 1, rs.Default)
	})
}

func TestRuleSet_Evaluate(t *testing.T) {
	rs, err := ParseRuleSet(sampleRules, 4)
	require.NoError(t, err)

	t.Run("first match wins", func(t *testing.T) {
		route, err := rs.Evaluate(map[string]any{"roi_count": 8})
		require.NoError(t, err)
		assert.Equal(t, 2, route)
	})

	t.Run("conjunction must fully hold", func(t *testing.T) {
		ctx := map[string]any{
			"roi_count":  1,
			"other_data": map[string]any{"kind": "urgent", "score": 0.5},
		}
		route, err := rs.Evaluate(ctx)
		require.NoError(t, err)
		assert.Equal(t, 1, route, "partial match falls through to default")

		ctx["other_data"] = map[string]any{"kind": "urgent", "score": 0.95}
		route, err = rs.Evaluate(ctx)
		require.NoError(t, err)
		assert.Equal(t, 3, route)
	})

	t.Run("no match uses default", func(t *testing.T) {
		route, err := rs.Evaluate(map[string]any{"roi_count": 0})
		require.NoError(t, err)
		assert.Equal(t, 1, route)
	})

	t.Run("empty rule always matches", func(t *testing.T) {
		rs, err := ParseRuleSet("rules:\n  - route: 2\ndefault: 1\n", 2)
		require.NoError(t, err)
		route, err := rs.Evaluate(map[string]any{})
		require.NoError(t, err)
		assert.Equal(t, 2, route)
	})
}

func TestCache(t *testing.T) {
	cache, err := NewCache(1 << 20)
	require.NoError(t, err)
	defer cache.Close()

	first, err := cache.Get(sampleRules, 4)
	require.NoError(t, err)
	cache.Wait()

	second, err := cache.Get(sampleRules, 4)
	require.NoError(t, err)
	assert.Same(t, first, second, "second lookup should hit the cache")

	// A different route range is a different cache entry.
	third, err := cache.Get(sampleRules, 10)
	require.NoError(t, err)
	assert.NotSame(t, first, third)
}

func TestCache_ParseErrorNotCached(t *testing.T) {
	cache, err := NewCache(1 << 20)
	require.NoError(t, err)
	defer cache.Close()

	_, err = cache.Get("rules: [::", 4)
	assert.Error(t, err)
}
