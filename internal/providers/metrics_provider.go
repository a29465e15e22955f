package providers

import (
	"gemscout/internal/structures"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"time"
)

type MetricsProviderInterface interface {
	IncRequestsTotal(endpoint string, status int)
	ObserveRequestDuration(endpoint string, duration time.Duration)
	IncCacheHits()
	IncCacheMisses()
	IncSourceCalls(operation string, ok bool)
	IncStoreLookups(kind string, hit bool)
	ObserveScanDuration(classifier string, duration time.Duration)
	SetOpportunitiesFound(classifier string, count int)
	ObservePersistenceDuration(duration time.Duration)
}

type MetricsProvider struct {
	requestsTotal       *prometheus.CounterVec
	requestDuration     *prometheus.HistogramVec
	cacheHits           prometheus.Counter
	cacheMisses         prometheus.Counter
	sourceCalls         *prometheus.CounterVec
	storeLookups        *prometheus.CounterVec
	scanDuration        *prometheus.HistogramVec
	opportunitiesFound  *prometheus.GaugeVec
	persistenceDuration prometheus.Histogram
}

func (m *MetricsProvider) IncRequestsTotal(endpoint string, status int) {
	m.requestsTotal.WithLabelValues(endpoint, httpStatusBucket(status)).Inc()
}

func (m *MetricsProvider) ObserveRequestDuration(endpoint string, duration time.Duration) {
	m.requestDuration.WithLabelValues(endpoint).Observe(duration.Seconds())
}

func (m *MetricsProvider) IncCacheHits() {
	m.cacheHits.Inc()
}

func (m *MetricsProvider) IncCacheMisses() {
	m.cacheMisses.Inc()
}

func (m *MetricsProvider) IncSourceCalls(operation string, ok bool) {
	m.sourceCalls.WithLabelValues(operation, outcomeLabel(ok, "ok", "error")).Inc()
}

func (m *MetricsProvider) IncStoreLookups(kind string, hit bool) {
	m.storeLookups.WithLabelValues(kind, outcomeLabel(hit, "hit", "miss")).Inc()
}

func (m *MetricsProvider) ObserveScanDuration(classifier string, duration time.Duration) {
	m.scanDuration.WithLabelValues(classifier).Observe(duration.Seconds())
}

func (m *MetricsProvider) SetOpportunitiesFound(classifier string, count int) {
	m.opportunitiesFound.WithLabelValues(classifier).Set(float64(count))
}

func (m *MetricsProvider) ObservePersistenceDuration(duration time.Duration) {
	m.persistenceDuration.Observe(duration.Seconds())
}

func outcomeLabel(ok bool, yes, no string) string {
	if ok {
		return yes
	}
	return no
}

func httpStatusBucket(code int) string {
	switch {
	case code < 200:
		return "1xx"
	case code < 300:
		return "2xx"
	case code < 400:
		return "3xx"
	case code < 500:
		return "4xx"
	default:
		return "5xx"
	}
}

func NewMetricsProvider(conf *structures.Config) MetricsProviderInterface {
	if !conf.Metrics.Enabled {
		return &noopMetrics{}
	}

	return &MetricsProvider{
		requestsTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "gemscout_requests_total",
			Help: "Total number of HTTP requests",
		}, []string{"endpoint", "status"}),

		requestDuration: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "gemscout_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		}, []string{"endpoint"}),

		cacheHits: promauto.NewCounter(prometheus.CounterOpts{
			Name: "gemscout_cache_hits_total",
			Help: "Total number of response cache hits",
		}),

		cacheMisses: promauto.NewCounter(prometheus.CounterOpts{
			Name: "gemscout_cache_misses_total",
			Help: "Total number of response cache misses",
		}),

		sourceCalls: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "gemscout_source_calls_total",
			Help: "Calls made to the catalog source by operation and outcome",
		}, []string{"operation", "outcome"}),

		storeLookups: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "gemscout_store_lookups_total",
			Help: "Cache store lookups by kind and outcome",
		}, []string{"kind", "outcome"}),

		scanDuration: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "gemscout_scan_duration_seconds",
			Help:    "Classifier run duration in seconds",
			Buckets: []float64{0.5, 1, 2.5, 5, 10, 30, 60, 120, 300},
		}, []string{"classifier"}),

		opportunitiesFound: promauto.NewGaugeVec(prometheus.GaugeOpts{
			Name: "gemscout_opportunities_found",
			Help: "Number of results returned by the last classifier run",
		}, []string{"classifier"}),

		persistenceDuration: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "gemscout_persistence_duration_seconds",
			Help:    "Duration of cache store snapshot writes in seconds",
			Buckets: prometheus.DefBuckets,
		}),
	}
}

// noopMetrics is used when metrics are disabled.
type noopMetrics struct{}

func (n *noopMetrics) IncRequestsTotal(_ string, _ int)                 {}
func (n *noopMetrics) ObserveRequestDuration(_ string, _ time.Duration) {}
func (n *noopMetrics) IncCacheHits()                                    {}
func (n *noopMetrics) IncCacheMisses()                                  {}
func (n *noopMetrics) IncSourceCalls(_ string, _ bool)                  {}
func (n *noopMetrics) IncStoreLookups(_ string, _ bool)                 {}
func (n *noopMetrics) ObserveScanDuration(_ string, _ time.Duration)    {}
func (n *noopMetrics) SetOpportunitiesFound(_ string, _ int)            {}
func (n *noopMetrics) ObservePersistenceDuration(_ time.Duration)       {}
