package chart

import (
	"fmt"

	lru "github.com/hashicorp/golang-lru/v2"
)

// DefaultCacheSize bounds the number of cached results.
const DefaultCacheSize = 256

// CachedCalculator memoizes another Calculator by chart file and rate.
type CachedCalculator struct {
	inner Calculator
	cache *lru.Cache[string, FinalResult]
}

var _ Calculator = (*CachedCalculator)(nil)

// NewCachedCalculator wraps inner with an LRU cache of size entries. A
// size of zero or less uses DefaultCacheSize.
func NewCachedCalculator(inner Calculator, size int) (*CachedCalculator, error) {
	if size <= 0 {
		size = DefaultCacheSize
	}
	cache, err := lru.New[string, FinalResult](size)
	if err != nil {
		return nil, fmt.Errorf("difficulty cache: %w", err)
	}
	return &CachedCalculator{inner: inner, cache: cache}, nil
}

// Calculate implements Calculator.
func (c *CachedCalculator) Calculate(chart *ChartData, rate float64) FinalResult {
	if chart == nil {
		return c.inner.Calculate(nil, rate)
	}
	key := CacheKey(chart.Filename, rate)
	if result, ok := c.cache.Get(key); ok {
		return result
	}
	result := c.inner.Calculate(chart, rate)
	c.cache.Add(key, result)
	return result
}

// Len returns the number of cached results.
func (c *CachedCalculator) Len() int {
	return c.cache.Len()
}

// Purge empties the cache.
func (c *CachedCalculator) Purge() {
	c.cache.Purge()
}

// CacheKey builds the "file@rate" key for a chart at a rate. Rates are
// rounded to two decimals so 0.1 steps that drift in float math share a key.
func CacheKey(filename string, rate float64) string {
	return fmt.Sprintf("%s@%.2f", filename, rate)
}
