package di

import (
	"gemscout/internal/providers"
	"gemscout/internal/store"
	"gemscout/internal/structures"
)

func provideCacheStore(conf *structures.Config, logger providers.Logger, metrics providers.MetricsProviderInterface) (store.CacheStoreInterface, func(), error) {
	cacheStore, err := store.NewCacheStore(conf, logger, metrics)
	if err != nil {
		return nil, nil, err
	}
	cleanup := func() {
		if err := cacheStore.Persist(); err != nil {
			logger.Errorf(providers.TypeApp, "Persist cache store: %s", err)
		}
		if err := cacheStore.Close(); err != nil {
			logger.Errorf(providers.TypeApp, "Close cache store: %s", err)
		}
		logger.Close()
	}
	return cacheStore, cleanup, nil
}
