package store

import (
	"context"
	"fmt"
	"gemscout/internal/models"
	"gemscout/internal/testutil"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestGormStore(t *testing.T) (*GormStore, *testutil.MockMetrics) {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)

	compressor, err := NewZstdCompressor()
	require.NoError(t, err)

	metrics := &testutil.MockMetrics{}
	s, err := NewGormStore(db, DefaultTTL, compressor, &testutil.MockLogger{}, metrics)
	require.NoError(t, err)
	t.Cleanup(func() {
		compressor.Close()
		_ = s.Close()
	})
	return s, metrics
}

func fixedClock(at time.Time) func() time.Time {
	return func() time.Time { return at }
}

func TestGormStore_PutGet(t *testing.T) {
	s, metrics := newTestGormStore(t)
	ctx := context.Background()

	_, ok := s.Get(ctx, "search|term=notes")
	assert.False(t, ok)

	require.NoError(t, s.Put(ctx, "search|term=notes", []byte(`[{"appId":"a"}]`)))
	entry, ok := s.Get(ctx, "search|term=notes")
	require.True(t, ok)
	assert.Equal(t, `[{"appId":"a"}]`, string(entry.Payload))

	require.NoError(t, s.Put(ctx, "search|term=notes", []byte(`[]`)))
	entry, ok = s.Get(ctx, "search|term=notes")
	require.True(t, ok)
	assert.Equal(t, `[]`, string(entry.Payload), "last write wins")

	assert.Equal(t, 2, metrics.StoreHits)
	assert.Equal(t, 1, metrics.StoreMisses)
}

func TestGormStore_TTLBoundary(t *testing.T) {
	s, _ := newTestGormStore(t)
	ctx := context.Background()
	base := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

	s.policy.now = fixedClock(base)
	require.NoError(t, s.Put(ctx, "k", []byte("v")))
	require.NoError(t, s.PutDeveloper(ctx, &models.Developer{DeveloperID: "dev", Name: "Dev", AppCount: 2}))

	s.policy.now = fixedClock(base.Add(23*time.Hour + 59*time.Minute))
	_, ok := s.Get(ctx, "k")
	assert.True(t, ok)
	_, ok = s.GetDeveloper(ctx, "dev")
	assert.True(t, ok)

	s.policy.now = fixedClock(base.Add(24*time.Hour + time.Minute))
	_, ok = s.Get(ctx, "k")
	assert.False(t, ok)
	_, ok = s.GetDeveloper(ctx, "dev")
	assert.False(t, ok)

	// a refresh restarts the clock
	require.NoError(t, s.Put(ctx, "k", []byte("v2")))
	entry, ok := s.Get(ctx, "k")
	require.True(t, ok)
	assert.Equal(t, "v2", string(entry.Payload))
}

func TestGormStore_Listings(t *testing.T) {
	s, _ := newTestGormStore(t)
	ctx := context.Background()
	updated := time.Date(2024, 2, 10, 0, 0, 0, 0, time.UTC)

	err := s.PutListings(ctx, []*models.Listing{
		{AppID: "com.example.notes", Title: "Notes", DeveloperID: "dev", MinInstalls: 50000, Score: 4.2, Updated: updated, Detailed: true},
		nil,
		{AppID: ""},
	})
	require.NoError(t, err)

	l, ok := s.GetListing(ctx, "com.example.notes")
	require.True(t, ok)
	assert.Equal(t, "Notes", l.Title)
	assert.Equal(t, int64(50000), l.MinInstalls)
	assert.True(t, l.Detailed)
	assert.True(t, l.Updated.Equal(updated))
	assert.False(t, l.ScrapedAt.IsZero())

	require.NoError(t, s.PutListings(ctx, []*models.Listing{{AppID: "com.example.notes", Title: "Notes Pro", MinInstalls: 100000}}))
	l, ok = s.GetListing(ctx, "com.example.notes")
	require.True(t, ok)
	assert.Equal(t, "Notes Pro", l.Title)
	assert.Equal(t, int64(100000), l.MinInstalls)

	_, ok = s.GetListing(ctx, "com.example.missing")
	assert.False(t, ok)
}

func TestGormStore_PutListingsKeepsFullerRecord(t *testing.T) {
	s, _ := newTestGormStore(t)
	ctx := context.Background()
	base := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	s.policy.now = fixedClock(base)

	require.NoError(t, s.PutListings(ctx, []*models.Listing{
		{AppID: "x", MinInstalls: 50000, Description: "full", Detailed: true},
	}))
	require.NoError(t, s.PutListings(ctx, []*models.Listing{
		{AppID: "x", Title: "X", Detailed: true},
		{AppID: "x", Score: 4.1},
	}))

	l, ok := s.GetListing(ctx, "x")
	require.True(t, ok)
	assert.Equal(t, "X", l.Title)
	assert.Equal(t, int64(50000), l.MinInstalls)
	assert.Equal(t, "full", l.Description)
	assert.Equal(t, 4.1, l.Score)

	// an expired row is replaced rather than merged
	s.policy.now = fixedClock(base.Add(25 * time.Hour))
	require.NoError(t, s.PutListings(ctx, []*models.Listing{{AppID: "x", Title: "Fresh"}}))
	l, ok = s.GetListing(ctx, "x")
	require.True(t, ok)
	assert.Equal(t, "Fresh", l.Title)
	assert.Zero(t, l.MinInstalls)
	assert.Empty(t, l.Description)
}

func TestGormStore_PutDeveloperRequiresID(t *testing.T) {
	s, _ := newTestGormStore(t)
	assert.Error(t, s.PutDeveloper(context.Background(), &models.Developer{Name: "x"}))
	assert.Error(t, s.PutDeveloper(context.Background(), nil))
}

func TestFresh(t *testing.T) {
	now := time.Date(2024, 3, 2, 12, 0, 0, 0, time.UTC)
	assert.True(t, Fresh(now.Add(-24*time.Hour), now, DefaultTTL))
	assert.False(t, Fresh(now.Add(-24*time.Hour-time.Second), now, DefaultTTL))
	assert.False(t, Fresh(time.Time{}, now, DefaultTTL))
	assert.True(t, Fresh(now, now, DefaultTTL))
}
