package providers

import (
	"gemscout/internal/structures"
	"github.com/coocood/freecache"
	"time"
	"unsafe"
)

const bytesPerMB = 1024 * 1024

// CacheProviderInterface memoizes rendered JSON responses under the
// normalized request URL. Purge drops everything, e.g. after a warm-up
// refreshed the underlying catalog data.
type CacheProviderInterface interface {
	Get(key string) ([]byte, bool)
	Set(key string, value []byte)
	Purge()
	EntryCount() int64
}

type CacheProvider struct {
	cache      *freecache.Cache
	ttlSeconds int
	logger     Logger
}

func NewCacheProvider(conf *structures.Config, logger Logger) CacheProviderInterface {
	if !conf.Cache.Enabled || conf.Cache.Size <= 0 {
		logger.Infof(TypeApp, "Response cache disabled")
		return &noopCache{}
	}

	ttl := max(conf.Cache.TTL, time.Second)
	logger.Infof(TypeApp, "Response cache: %dMB, responses expire after %s", conf.Cache.Size, ttl)

	return &CacheProvider{
		cache:      freecache.NewCache(conf.Cache.Size * bytesPerMB),
		ttlSeconds: int(ttl / time.Second),
		logger:     logger,
	}
}

// keyBytes views the key without copying; freecache hashes and copies it.
func keyBytes(s string) []byte {
	if len(s) == 0 {
		return nil
	}
	return unsafe.Slice(unsafe.StringData(s), len(s))
}

func (c *CacheProvider) Get(key string) ([]byte, bool) {
	val, err := c.cache.Get(keyBytes(key))
	return val, err == nil
}

// Set skips responses larger than freecache's per-entry limit
// (1/1024 of the cache size); they are recomputed on the next request.
func (c *CacheProvider) Set(key string, value []byte) {
	if err := c.cache.Set(keyBytes(key), value, c.ttlSeconds); err != nil {
		c.logger.Debugf(TypeGet, "response for %s not cached (%d bytes): %s", key, len(value), err)
	}
}

func (c *CacheProvider) Purge() {
	c.cache.Clear()
}

func (c *CacheProvider) EntryCount() int64 {
	return c.cache.EntryCount()
}

type noopCache struct{}

func (n *noopCache) Get(_ string) ([]byte, bool) { return nil, false }
func (n *noopCache) Set(_ string, _ []byte)      {}
func (n *noopCache) Purge()                      {}
func (n *noopCache) EntryCount() int64           { return 0 }
