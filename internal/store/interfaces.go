package store

import (
	"context"
	"gemscout/internal/models"
	"time"
)

const DefaultTTL = 24 * time.Hour

// CacheStoreInterface is a TTL-aware read-through layer. A stale entry and a
// missing entry look the same to callers: both report ok == false.
type CacheStoreInterface interface {
	Get(ctx context.Context, key string) (*models.CacheEntry, bool)
	Put(ctx context.Context, key string, payload []byte) error
	GetListing(ctx context.Context, appID string) (*models.Listing, bool)
	PutListings(ctx context.Context, listings []*models.Listing) error
	GetDeveloper(ctx context.Context, developerID string) (*models.Developer, bool)
	PutDeveloper(ctx context.Context, dev *models.Developer) error
	Persist() error
	Close() error
}

type CompressorInterface interface {
	Compress(val []byte) ([]byte, error)
	Decompress(val []byte) ([]byte, error)
	Close()
}

type ttlPolicy struct {
	ttl time.Duration
	now func() time.Time
}

func newTTLPolicy(ttl time.Duration) ttlPolicy {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return ttlPolicy{ttl: ttl, now: time.Now}
}

func (p ttlPolicy) fresh(scrapedAt time.Time) bool {
	return Fresh(scrapedAt, p.now(), p.ttl)
}

// merge folds incoming into a still-fresh stored row so a sparser record
// never erases fields a fuller one already carries.
func (p ttlPolicy) merge(prev, incoming *models.Listing, now time.Time) *models.Listing {
	row := *incoming
	if prev != nil && p.fresh(prev.ScrapedAt) {
		row = *prev
		row.Overwrite(incoming)
	}
	row.ScrapedAt = now
	return &row
}

// Fresh reports whether an entry scraped at scrapedAt is still usable at now.
func Fresh(scrapedAt, now time.Time, ttl time.Duration) bool {
	if scrapedAt.IsZero() {
		return false
	}
	return now.Sub(scrapedAt) <= ttl
}
