package source

import (
	"context"
	"errors"
	"gemscout/internal/models"
	"gemscout/internal/structures"
	"gemscout/internal/testutil"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestHTTPSource(t *testing.T, handler http.Handler) *HTTPSource {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	conf := &structures.Config{Source: structures.SourceConfig{
		BaseURL:    srv.URL,
		Country:    "us",
		Lang:       "en",
		RPS:        1000,
		MaxRetries: 2,
		Timeout:    2 * time.Second,
	}}
	s := NewHTTPSource(conf, &testutil.MockLogger{})
	s.backoff = func(int) time.Duration { return time.Millisecond }
	return s
}

func TestHTTPSource_List(t *testing.T) {
	s := newTestHTTPSource(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/list", r.URL.Path)
		assert.Equal(t, "FINANCE", r.URL.Query().Get("category"))
		assert.Equal(t, "TOP_PAID", r.URL.Query().Get("collection"))
		assert.Equal(t, "us", r.URL.Query().Get("country"))
		assert.Equal(t, "en", r.URL.Query().Get("lang"))
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[
			{"appId":"com.example.budget","title":"Budget","developerId":"dev1","minInstalls":50000,"score":4.1,"updated":1709251200000},
			{"title":"no id"}
		]`))
	}))

	res, err := s.List(context.Background(), models.ListQuery{Category: "FINANCE", Collection: models.CollectionTopPaid, Count: 10, FullDetail: true})
	require.NoError(t, err)
	require.Len(t, res, 1)
	assert.Equal(t, "com.example.budget", res[0].AppID)
	assert.Equal(t, int64(50000), res[0].MinInstalls)
	assert.True(t, res[0].Detailed)
	assert.Equal(t, time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC), res[0].Updated)
	assert.False(t, res[0].ScrapedAt.IsZero())
}

func TestHTTPSource_RetriesOnServerError(t *testing.T) {
	var calls atomic.Int32
	s := newTestHTTPSource(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) < 3 {
			w.WriteHeader(http.StatusTooManyRequests)
			return
		}
		w.Write([]byte(`{"appId":"com.example.notes","title":"Notes"}`))
	}))

	l, err := s.Detail(context.Background(), "com.example.notes")
	require.NoError(t, err)
	assert.Equal(t, "Notes", l.Title)
	assert.True(t, l.Detailed)
	assert.Equal(t, int32(3), calls.Load())
}

func TestHTTPSource_GivesUpAfterMaxRetries(t *testing.T) {
	var calls atomic.Int32
	s := newTestHTTPSource(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusBadGateway)
	}))

	_, err := s.Search(context.Background(), models.SearchQuery{Term: "notes", Count: 5})
	assert.Error(t, err)
	assert.Equal(t, int32(3), calls.Load())
}

func TestHTTPSource_NotFoundIsNotRetried(t *testing.T) {
	var calls atomic.Int32
	s := newTestHTTPSource(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		assert.Equal(t, "/developers/Some Dev/apps", r.URL.Path)
		w.WriteHeader(http.StatusNotFound)
	}))

	_, err := s.DeveloperApps(context.Background(), "Some Dev", 60)
	assert.True(t, errors.Is(err, ErrNotFound))
	assert.Equal(t, int32(1), calls.Load())
}

func TestHTTPSource_MalformedResponse(t *testing.T) {
	s := newTestHTTPSource(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{not json`))
	}))

	_, err := s.Similar(context.Background(), "com.example.notes", true)
	assert.Error(t, err)
}

func TestHTTPSource_ContextCancelled(t *testing.T) {
	s := newTestHTTPSource(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	s.backoff = func(int) time.Duration { return time.Hour }

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	_, err := s.List(ctx, models.ListQuery{Category: "APPLICATION", Collection: models.CollectionTopFree})
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestCategories(t *testing.T) {
	cats := Categories()
	require.NotEmpty(t, cats)
	assert.Equal(t, Category{ID: "APPLICATION", Label: "APPLICATION"}, cats[0])
	assert.Contains(t, cats, Category{ID: "ART_AND_DESIGN", Label: "ART AND DESIGN"})
	assert.True(t, IsCategory("GAME_PUZZLE"))
	assert.False(t, IsCategory("NOT_A_CATEGORY"))
}
