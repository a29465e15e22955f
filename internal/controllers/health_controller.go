package controllers

import (
	"gemscout/internal/providers"
	"gemscout/internal/structures"
	json "github.com/goccy/go-json"
	"net/http"
	"time"
)

type HealthController struct {
	conf      *structures.Config
	cache     providers.CacheProviderInterface
	startTime time.Time
}

type storeHealth struct {
	Driver string `json:"driver"`
	TTL    string `json:"ttl"`
}

type sourceHealth struct {
	BaseURL string `json:"baseUrl"`
	Country string `json:"country"`
	Lang    string `json:"lang"`
}

type healthResponse struct {
	Status         string       `json:"status"`
	Uptime         string       `json:"uptime"`
	UptimeSeconds  int64        `json:"uptime_seconds"`
	Store          storeHealth  `json:"store"`
	Source         sourceHealth `json:"source"`
	CachedReplies  int64        `json:"cached_responses"`
	WarmupInterval string       `json:"warmup_interval,omitempty"`
}

// Health reports liveness plus the catalog wiring the process runs with.
func (hc *HealthController) Health(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method Not Allowed", http.StatusMethodNotAllowed)
		return
	}

	uptime := time.Since(hc.startTime).Truncate(time.Second)
	resp := healthResponse{
		Status:        "ok",
		Uptime:        uptime.String(),
		UptimeSeconds: int64(uptime / time.Second),
		Store: storeHealth{
			Driver: hc.conf.Store.Driver,
			TTL:    hc.conf.Store.TTL.String(),
		},
		Source: sourceHealth{
			BaseURL: hc.conf.Source.BaseURL,
			Country: hc.conf.Source.Country,
			Lang:    hc.conf.Source.Lang,
		},
		CachedReplies: hc.cache.EntryCount(),
	}
	if interval := hc.conf.Scan.WarmupInterval; interval > 0 {
		resp.WarmupInterval = interval.String()
	}

	gson, err := json.Marshal(resp)
	if err != nil {
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, gson)
}

func NewHealthController(conf *structures.Config, cache providers.CacheProviderInterface) *HealthController {
	return &HealthController{
		conf:      conf,
		cache:     cache,
		startTime: time.Now(),
	}
}
