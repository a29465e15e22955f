package internal

import (
	"gemscout/internal/controllers"
	"gemscout/internal/structures"
	"gemscout/internal/testutil"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewHandler_InfrastructureRoutes(t *testing.T) {
	conf := &structures.Config{Metrics: structures.MetricsConfig{Enabled: true}}
	router := newRouteTestRouter(&routeTestMockService{})
	metrics := &testutil.MockMetrics{}
	h := NewHandler(controllers.NewHealthController(conf, &routeTestCache{}), conf, router, metrics)

	for _, path := range []string{"/health", "/metrics", "/categories"} {
		rr := httptest.NewRecorder()
		h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, path, nil))
		assert.Equal(t, http.StatusOK, rr.Code, path)
	}
}

func TestNewHandler_MetricsDisabled(t *testing.T) {
	conf := &structures.Config{}
	h := NewHandler(controllers.NewHealthController(conf, &routeTestCache{}), conf, newRouteTestRouter(&routeTestMockService{}), &testutil.MockMetrics{})

	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusNotFound, rr.Code)
}
