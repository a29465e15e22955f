package providers

import (
	"gemscout/internal/structures"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func useTestRegistry(t *testing.T) {
	reg := prometheus.NewRegistry()
	prometheus.DefaultRegisterer = reg
	prometheus.DefaultGatherer = reg
	t.Cleanup(func() {
		prometheus.DefaultRegisterer = prometheus.NewRegistry()
		prometheus.DefaultGatherer = prometheus.DefaultRegisterer.(prometheus.Gatherer)
	})
}

func TestNoopMetrics_WhenDisabled(t *testing.T) {
	conf := &structures.Config{
		Metrics: structures.MetricsConfig{Enabled: false},
	}
	m := NewMetricsProvider(conf)
	_, ok := m.(*noopMetrics)
	assert.True(t, ok, "should return noopMetrics when disabled")

	m.IncRequestsTotal("/test", 200)
	m.ObserveRequestDuration("/test", time.Millisecond)
	m.IncCacheHits()
	m.IncCacheMisses()
	m.IncSourceCalls("search", true)
	m.IncStoreLookups("developer", false)
	m.ObserveScanDuration("gems", time.Second)
	m.SetOpportunitiesFound("gems", 3)
	m.ObservePersistenceDuration(time.Millisecond)
}

func TestMetricsProvider_WhenEnabled(t *testing.T) {
	useTestRegistry(t)

	conf := &structures.Config{
		Metrics: structures.MetricsConfig{Enabled: true},
	}
	m := NewMetricsProvider(conf)
	_, ok := m.(*MetricsProvider)
	assert.True(t, ok, "should return MetricsProvider when enabled")
}

func TestMetricsProvider_IncrementCounters(t *testing.T) {
	useTestRegistry(t)

	conf := &structures.Config{
		Metrics: structures.MetricsConfig{Enabled: true},
	}
	m := NewMetricsProvider(conf).(*MetricsProvider)

	m.IncRequestsTotal("/gems", 200)
	m.IncRequestsTotal("/gems", 500)
	m.ObserveRequestDuration("/gems", 5*time.Millisecond)
	m.IncCacheHits()
	m.IncCacheMisses()
	m.IncSourceCalls("detail", false)
	m.IncSourceCalls("detail", false)
	m.IncStoreLookups("listing", true)
	m.ObserveScanDuration("trending", 2*time.Second)
	m.SetOpportunitiesFound("trending", 7)

	assert.Equal(t, float64(2), testutil.ToFloat64(m.sourceCalls.WithLabelValues("detail", "error")))
	assert.Equal(t, float64(1), testutil.ToFloat64(m.storeLookups.WithLabelValues("listing", "hit")))
	assert.Equal(t, float64(7), testutil.ToFloat64(m.opportunitiesFound.WithLabelValues("trending")))
}

func TestHttpStatusBucket(t *testing.T) {
	tests := []struct {
		code     int
		expected string
	}{
		{100, "1xx"},
		{200, "2xx"},
		{201, "2xx"},
		{301, "3xx"},
		{400, "4xx"},
		{404, "4xx"},
		{500, "5xx"},
		{503, "5xx"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.expected, httpStatusBucket(tt.code))
	}
}
