package store

import (
	"gemscout/internal/providers"
	"gemscout/internal/structures"
)

// NewCacheStore opens the backend selected by store.driver.
func NewCacheStore(conf *structures.Config, logger providers.Logger, metrics providers.MetricsProviderInterface) (CacheStoreInterface, error) {
	compressor, err := NewZstdCompressor()
	if err != nil {
		return nil, err
	}

	if conf.Store.Driver == "file" {
		logger.Infof(providers.TypeApp, "Cache store: file snapshot %s", conf.Persistence.FilePath)
		return NewFileStore(conf.Persistence.FilePath, conf.Store.TTL, compressor, logger, metrics)
	}

	db, err := providers.NewDatabaseProvider(conf, logger)
	if err != nil {
		compressor.Close()
		return nil, err
	}
	return NewGormStore(db, conf.Store.TTL, compressor, logger, metrics)
}
