package store

import (
	"context"
	"errors"
	"fmt"
	"gemscout/internal/models"
	"gemscout/internal/providers"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"time"
)

// GormStore keeps listings, developers and query results in SQL tables.
// Query payloads are stored zstd-compressed.
type GormStore struct {
	db         *gorm.DB
	compressor CompressorInterface
	logger     providers.Logger
	metrics    providers.MetricsProviderInterface
	policy     ttlPolicy
}

func NewGormStore(db *gorm.DB, ttl time.Duration, compressor CompressorInterface, logger providers.Logger, metrics providers.MetricsProviderInterface) (*GormStore, error) {
	if err := db.AutoMigrate(&models.Listing{}, &models.Developer{}, &models.CacheEntry{}); err != nil {
		return nil, fmt.Errorf("migrate cache store: %w", err)
	}
	return &GormStore{
		db:         db,
		compressor: compressor,
		logger:     logger,
		metrics:    metrics,
		policy:     newTTLPolicy(ttl),
	}, nil
}

func (s *GormStore) Get(ctx context.Context, key string) (*models.CacheEntry, bool) {
	var entry models.CacheEntry
	// Find instead of First: a miss is not an error worth logging
	result := s.db.WithContext(ctx).Where("key = ?", key).Limit(1).Find(&entry)
	if result.Error != nil {
		s.logger.Warnf(providers.TypeApp, "cache store read %s: %s", key, result.Error)
		return s.miss("query")
	}
	if result.RowsAffected == 0 || !s.policy.fresh(entry.ScrapedAt) {
		return s.miss("query")
	}
	payload, err := s.compressor.Decompress(entry.Payload)
	if err != nil {
		s.logger.Warnf(providers.TypeApp, "cache store payload %s: %s", key, err)
		return s.miss("query")
	}
	entry.Payload = payload
	s.metrics.IncStoreLookups("query", true)
	return &entry, true
}

func (s *GormStore) miss(kind string) (*models.CacheEntry, bool) {
	s.metrics.IncStoreLookups(kind, false)
	return nil, false
}

func (s *GormStore) Put(ctx context.Context, key string, payload []byte) error {
	compressed, err := s.compressor.Compress(payload)
	if err != nil {
		return err
	}
	entry := models.CacheEntry{Key: key, Payload: compressed, ScrapedAt: s.policy.now()}
	result := s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"payload", "scraped_at"}),
	}).Create(&entry)
	if result.Error != nil {
		return fmt.Errorf("failed to write key %s: %w", key, result.Error)
	}
	return nil
}

func (s *GormStore) GetListing(ctx context.Context, appID string) (*models.Listing, bool) {
	var listing models.Listing
	result := s.db.WithContext(ctx).Where("app_id = ?", appID).Limit(1).Find(&listing)
	if result.Error != nil {
		s.logger.Warnf(providers.TypeApp, "cache store read listing %s: %s", appID, result.Error)
	}
	if result.Error != nil || result.RowsAffected == 0 || !s.policy.fresh(listing.ScrapedAt) {
		s.metrics.IncStoreLookups("listing", false)
		return nil, false
	}
	s.metrics.IncStoreLookups("listing", true)
	return &listing, true
}

func (s *GormStore) PutListings(ctx context.Context, listings []*models.Listing) error {
	ids := make([]string, 0, len(listings))
	for _, l := range listings {
		if l != nil && l.AppID != "" {
			ids = append(ids, l.AppID)
		}
	}
	if len(ids) == 0 {
		return nil
	}

	var existing []*models.Listing
	if err := s.db.WithContext(ctx).Where("app_id IN ?", ids).Find(&existing).Error; err != nil {
		return fmt.Errorf("failed to load %d listings for merge: %w", len(ids), err)
	}
	current := make(map[string]*models.Listing, len(existing)+len(ids))
	for _, e := range existing {
		current[e.AppID] = e
	}

	now := s.policy.now()
	rows := make([]*models.Listing, 0, len(ids))
	position := make(map[string]int, len(ids))
	for _, l := range listings {
		if l == nil || l.AppID == "" {
			continue
		}
		row := s.policy.merge(current[l.AppID], l, now)
		current[l.AppID] = row
		if i, ok := position[l.AppID]; ok {
			rows[i] = row
			continue
		}
		position[l.AppID] = len(rows)
		rows = append(rows, row)
	}

	result := s.db.WithContext(ctx).Clauses(clause.OnConflict{UpdateAll: true}).Create(&rows)
	if result.Error != nil {
		return fmt.Errorf("failed to upsert %d listings: %w", len(rows), result.Error)
	}
	return nil
}

func (s *GormStore) GetDeveloper(ctx context.Context, developerID string) (*models.Developer, bool) {
	var dev models.Developer
	result := s.db.WithContext(ctx).Where("developer_id = ?", developerID).Limit(1).Find(&dev)
	if result.Error != nil {
		s.logger.Warnf(providers.TypeApp, "cache store read developer %s: %s", developerID, result.Error)
	}
	if result.Error != nil || result.RowsAffected == 0 || !s.policy.fresh(dev.ScrapedAt) {
		s.metrics.IncStoreLookups("developer", false)
		return nil, false
	}
	s.metrics.IncStoreLookups("developer", true)
	return &dev, true
}

func (s *GormStore) PutDeveloper(ctx context.Context, dev *models.Developer) error {
	if dev == nil || dev.DeveloperID == "" {
		return errors.New("developer id is required")
	}
	row := *dev
	row.ScrapedAt = s.policy.now()
	result := s.db.WithContext(ctx).Clauses(clause.OnConflict{UpdateAll: true}).Create(&row)
	if result.Error != nil {
		return fmt.Errorf("failed to upsert developer %s: %w", dev.DeveloperID, result.Error)
	}
	return nil
}

// Persist is a no-op: every write already hit the database.
func (s *GormStore) Persist() error {
	return nil
}

func (s *GormStore) Close() error {
	s.compressor.Close()
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
