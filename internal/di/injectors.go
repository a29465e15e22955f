//go:build wireinject
// +build wireinject

package di

import (
	"gemscout/internal"
	"gemscout/internal/controllers"
	"gemscout/internal/developer"
	"gemscout/internal/jobs"
	"gemscout/internal/providers"
	"gemscout/internal/services"
	"gemscout/internal/source"
	"gemscout/internal/store"
	"gemscout/internal/structures"
	wire "github.com/google/wire"
)

var coreSet = wire.NewSet(
	providers.NewConfigProvider,
	providers.NewLogProvider,
	providers.NewMetricsProvider,

	source.NewCatalogSource,
	developer.NewProfiler,
	services.NewOpportunityService,
)

func InitApp(cfg *structures.CliFlags) (*internal.App, error) {

	wire.Build(
		coreSet,
		store.NewCacheStore,
		providers.NewInstrumentedCacheProvider,

		controllers.NewApiController,
		controllers.NewHealthController,
		jobs.NewScheduler,
		internal.InitRoutes,
		internal.NewHandler,
		internal.NewApp,
	)

	return nil, nil
}

// InitService builds the classifier stack without the HTTP server. The
// cleanup func flushes and closes the cache store.
func InitService(cfg *structures.CliFlags) (services.OpportunityServiceInterface, func(), error) {

	wire.Build(
		coreSet,
		provideCacheStore,
	)

	return nil, nil, nil
}
