package controllers

import (
	"gemscout/internal/models"
	"gemscout/internal/providers"
	"gemscout/internal/services"
	json "github.com/goccy/go-json"
	"github.com/spf13/cast"
	"net/http"
)

type ApiController struct {
	logger  providers.Logger
	service services.OpportunityServiceInterface
	cache   providers.CacheProviderInterface
}

type errorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

func NewApiController(logger providers.Logger, service services.OpportunityServiceInterface, cache providers.CacheProviderInterface) *ApiController {
	return &ApiController{
		logger:  logger,
		service: service,
		cache:   cache,
	}
}

// cacheKey is the path plus the query with keys sorted.
func cacheKey(r *http.Request) string {
	return r.URL.Path + "?" + r.URL.Query().Encode()
}

func writeJSON(w http.ResponseWriter, status int, body []byte) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(body)
}

func (ac *ApiController) writeError(w http.ResponseWriter, r *http.Request, status int, title string, err error) {
	resp := errorResponse{Error: title}
	if err != nil {
		resp.Message = err.Error()
		ac.logger.Errorf(providers.GetLogTypeByRequestType(r.Method), "%s %s: %s: %s", r.Method, r.URL.Path, title, err)
	}
	gson, _ := json.Marshal(resp)
	writeJSON(w, status, gson)
}

func (ac *ApiController) serveFromCacheOrCompute(w http.ResponseWriter, r *http.Request, title string, compute func() (any, error)) {
	key := cacheKey(r)
	if data, ok := ac.cache.Get(key); ok {
		writeJSON(w, http.StatusOK, data)
		return
	}

	result, err := compute()
	if err != nil {
		ac.writeError(w, r, http.StatusInternalServerError, title, err)
		return
	}

	gson, err := json.Marshal(result)
	if err != nil {
		ac.writeError(w, r, http.StatusInternalServerError, title, err)
		return
	}

	// a result computed for a request that went away may be partial
	if r.Context().Err() == nil {
		ac.cache.Set(key, gson)
	}
	writeJSON(w, http.StatusOK, gson)
}

func (ac *ApiController) serve(w http.ResponseWriter, r *http.Request, title string, compute func() (any, error)) {
	result, err := compute()
	if err != nil {
		ac.writeError(w, r, http.StatusInternalServerError, title, err)
		return
	}
	gson, err := json.Marshal(result)
	if err != nil {
		ac.writeError(w, r, http.StatusInternalServerError, title, err)
		return
	}
	writeJSON(w, http.StatusOK, gson)
}

func (ac *ApiController) LowRated(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	opts := services.LowRatedOptions{
		Category:    q.Get("category"),
		MinInstalls: cast.ToInt64(q.Get("minInstalls")),
		MaxRating:   cast.ToFloat64(q.Get("maxRating")),
		Count:       cast.ToInt(q.Get("num")),
	}
	ac.serveFromCacheOrCompute(w, r, "Failed to find low-rated opportunities", func() (any, error) {
		return ac.service.LowRated(r.Context(), opts), nil
	})
}

func (ac *ApiController) SoloDev(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	opts := services.SoloDevOptions{
		Category:    q.Get("category"),
		MinInstalls: cast.ToInt64(q.Get("minInstalls")),
		Count:       cast.ToInt(q.Get("num")),
	}
	ac.serveFromCacheOrCompute(w, r, "Failed to find solo dev apps", func() (any, error) {
		return ac.service.SoloDev(r.Context(), opts), nil
	})
}

func (ac *ApiController) NicheProfitable(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	opts := services.NicheOptions{
		Category: q.Get("category"),
		Count:    cast.ToInt(q.Get("num")),
	}
	ac.serveFromCacheOrCompute(w, r, "Failed to find niche profitable apps", func() (any, error) {
		return ac.service.NicheProfitable(r.Context(), opts), nil
	})
}

func (ac *ApiController) Trending(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	opts := services.TrendingOptions{
		Category: q.Get("category"),
		DaysBack: cast.ToInt(q.Get("daysBack")),
		Count:    cast.ToInt(q.Get("num")),
	}
	ac.serveFromCacheOrCompute(w, r, "Failed to find trending apps", func() (any, error) {
		return ac.service.Trending(r.Context(), opts), nil
	})
}

func (ac *ApiController) Gems(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	opts := services.GemOptions{
		Category: q.Get("category"),
		Count:    cast.ToInt(q.Get("num")),
	}
	ac.serveFromCacheOrCompute(w, r, "Failed to find gems", func() (any, error) {
		return ac.service.Gems(r.Context(), opts), nil
	})
}

func (ac *ApiController) Search(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	term := q.Get("term")
	if term == "" {
		ac.writeError(w, r, http.StatusBadRequest, "Search term is required", nil)
		return
	}
	query := models.SearchQuery{
		Term:  term,
		Count: cast.ToInt(q.Get("num")),
		Price: q.Get("price"),
	}
	ac.serve(w, r, "Search failed", func() (any, error) {
		return ac.service.Search(r.Context(), query)
	})
}

func (ac *ApiController) App(w http.ResponseWriter, r *http.Request) {
	appID := r.PathValue("appId")
	ac.serve(w, r, "Failed to get app details", func() (any, error) {
		return ac.service.App(r.Context(), appID)
	})
}

func (ac *ApiController) Similar(w http.ResponseWriter, r *http.Request) {
	appID := r.PathValue("appId")
	ac.serve(w, r, "Failed to get similar apps", func() (any, error) {
		return ac.service.Similar(r.Context(), appID)
	})
}

func (ac *ApiController) Developer(w http.ResponseWriter, r *http.Request) {
	devID := r.PathValue("devId")
	ac.serve(w, r, "Failed to get developer info", func() (any, error) {
		return ac.service.Developer(r.Context(), devID)
	})
}

func (ac *ApiController) Categories(w http.ResponseWriter, r *http.Request) {
	ac.serveFromCacheOrCompute(w, r, "Failed to get categories", func() (any, error) {
		return ac.service.Categories(), nil
	})
}

// PurgeCache drops every cached response so the next requests recompute.
func (ac *ApiController) PurgeCache(w http.ResponseWriter, r *http.Request) {
	dropped := ac.cache.EntryCount()
	ac.cache.Purge()
	ac.logger.Infof(providers.GetLogTypeByRequestType(r.Method), "response cache purged, %d entries dropped", dropped)
	gson, _ := json.Marshal(map[string]int64{"purged": dropped})
	writeJSON(w, http.StatusOK, gson)
}
