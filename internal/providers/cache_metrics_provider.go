package providers

import "gemscout/internal/structures"

// MetricsCacheProvider wraps the response cache with hit/miss counters.
type MetricsCacheProvider struct {
	inner   CacheProviderInterface
	metrics MetricsProviderInterface
	logger  Logger
}

func (c *MetricsCacheProvider) Get(key string) ([]byte, bool) {
	val, ok := c.inner.Get(key)
	if !ok {
		c.metrics.IncCacheMisses()
		return nil, false
	}
	c.metrics.IncCacheHits()
	return val, true
}

func (c *MetricsCacheProvider) Set(key string, value []byte) {
	c.inner.Set(key, value)
}

func (c *MetricsCacheProvider) Purge() {
	dropped := c.inner.EntryCount()
	c.inner.Purge()
	c.logger.Infof(TypeApp, "Response cache purged, %d responses dropped", dropped)
}

func (c *MetricsCacheProvider) EntryCount() int64 {
	return c.inner.EntryCount()
}

// NewInstrumentedCacheProvider skips instrumentation when caching is off so
// a disabled cache does not report a 100% miss rate.
func NewInstrumentedCacheProvider(conf *structures.Config, logger Logger, metrics MetricsProviderInterface) CacheProviderInterface {
	inner := NewCacheProvider(conf, logger)
	if _, disabled := inner.(*noopCache); disabled {
		return inner
	}
	return &MetricsCacheProvider{
		inner:   inner,
		metrics: metrics,
		logger:  logger,
	}
}
