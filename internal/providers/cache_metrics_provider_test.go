package providers

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

type cacheMetricsTestMetrics struct {
	noopMetrics
	hits   int
	misses int
}

func (m *cacheMetricsTestMetrics) IncCacheHits()   { m.hits++ }
func (m *cacheMetricsTestMetrics) IncCacheMisses() { m.misses++ }

type cacheMetricsTestInner struct {
	data   map[string][]byte
	purged  bool
}

func (c *cacheMetricsTestInner) Get(key string) ([]byte, bool) {
	v, ok := c.data[key]
	return v, ok
}
func (c *cacheMetricsTestInner) Set(key string, value []byte) { c.data[key] = value }
func (c *cacheMetricsTestInner) Purge() {
	c.data = map[string][]byte{}
	c.purged = true
}
func (c *cacheMetricsTestInner) EntryCount() int64 { return int64(len(c.data)) }

func newInstrumentedTestCache(data map[string][]byte) (*MetricsCacheProvider, *cacheMetricsTestInner, *cacheMetricsTestMetrics, *cacheTestLogger) {
	inner := &cacheMetricsTestInner{data: data}
	metrics := &cacheMetricsTestMetrics{}
	logger := &cacheTestLogger{}
	return &MetricsCacheProvider{inner: inner, metrics: metrics, logger: logger}, inner, metrics, logger
}

func TestMetricsCacheProvider_CountsHitsAndMisses(t *testing.T) {
	cache, _, metrics, _ := newInstrumentedTestCache(map[string][]byte{"/gems?": []byte(`[]`)})

	val, ok := cache.Get("/gems?")
	assert.True(t, ok)
	assert.Equal(t, []byte(`[]`), val)

	cache.Get("/categories?")
	cache.Get("/search?term=notes")

	assert.Equal(t, 1, metrics.hits)
	assert.Equal(t, 2, metrics.misses)
}

func TestMetricsCacheProvider_SetDoesNotCount(t *testing.T) {
	cache, inner, metrics, _ := newInstrumentedTestCache(map[string][]byte{})

	cache.Set("/gems?", []byte(`[]`))

	assert.Equal(t, int64(1), inner.EntryCount())
	assert.Zero(t, metrics.hits+metrics.misses)
}

func TestMetricsCacheProvider_PurgeLogs(t *testing.T) {
	cache, inner, _, logger := newInstrumentedTestCache(map[string][]byte{"a": nil, "b": nil})

	cache.Purge()

	assert.True(t, inner.purged)
	assert.Zero(t, cache.EntryCount())
	assert.Equal(t, 1, logger.infos)
}

func TestNewInstrumentedCacheProvider(t *testing.T) {
	metrics := &cacheMetricsTestMetrics{}

	disabled := NewInstrumentedCacheProvider(responseCacheConfig(false, 1, time.Minute), &cacheTestLogger{}, metrics)
	assert.IsType(t, &noopCache{}, disabled)
	disabled.Get("/gems?")
	assert.Zero(t, metrics.misses)

	enabled := NewInstrumentedCacheProvider(responseCacheConfig(true, 1, time.Minute), &cacheTestLogger{}, metrics)
	assert.IsType(t, &MetricsCacheProvider{}, enabled)
	enabled.Get("/gems?")
	assert.Equal(t, 1, metrics.misses)
}
