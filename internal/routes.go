package internal

import (
	"gemscout/internal/controllers"
	"gemscout/internal/providers"
	"net/http"
)

func InitRoutes(apiController *controllers.ApiController) providers.RouterProviderInterface {
	routers := providers.NewRouterProvider()

	routers.Get("/opportunities/low-rated", http.HandlerFunc(apiController.LowRated))
	routers.Get("/opportunities/solo-dev", http.HandlerFunc(apiController.SoloDev))
	routers.Get("/opportunities/niche-profitable", http.HandlerFunc(apiController.NicheProfitable))
	routers.Get("/opportunities/trending", http.HandlerFunc(apiController.Trending))
	routers.Get("/gems", http.HandlerFunc(apiController.Gems))

	routers.Get("/search", http.HandlerFunc(apiController.Search))
	routers.Get("/app/{appId}", http.HandlerFunc(apiController.App))
	routers.Get("/app/{appId}/similar", http.HandlerFunc(apiController.Similar))
	routers.Get("/developer/{devId}", http.HandlerFunc(apiController.Developer))
	routers.Get("/categories", http.HandlerFunc(apiController.Categories))

	routers.Post("/cache/purge", http.HandlerFunc(apiController.PurgeCache))
	return routers
}
