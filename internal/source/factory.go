package source

import (
	"gemscout/internal/providers"
	"gemscout/internal/store"
	"gemscout/internal/structures"
)

// NewCatalogSource builds the gateway client behind the read-through cache.
func NewCatalogSource(conf *structures.Config, cacheStore store.CacheStoreInterface, logger providers.Logger, metrics providers.MetricsProviderInterface) CatalogSourceInterface {
	upstream := NewHTTPSource(conf, logger)
	logger.Infof(providers.TypeSource, "Catalog source %s (%s/%s)", upstream.baseURL, conf.Source.Country, conf.Source.Lang)
	return NewCachedSource(upstream, cacheStore, conf.Source.Country, conf.Source.Lang, logger, metrics)
}
