package store

import (
	"context"
	"errors"
	"gemscout/internal/models"
	"gemscout/internal/providers"
	json "github.com/goccy/go-json"
	"go.uber.org/atomic"
	"os"
	"sync"
	"time"
)

const snapshotVersion = 1

type snapshot struct {
	Version    int                           `json:"version"`
	Listings   map[string]*models.Listing    `json:"listings"`
	Developers map[string]*models.Developer  `json:"developers"`
	Entries    map[string]*models.CacheEntry `json:"entries"`
}

// FileStore keeps the cache in memory and snapshots it to a single
// zstd-compressed JSON file. Writes mark the store dirty; Persist only
// touches disk when something changed.
type FileStore struct {
	mu         sync.RWMutex
	path       string
	data       snapshot
	dirty      atomic.Bool
	compressor CompressorInterface
	logger     providers.Logger
	metrics    providers.MetricsProviderInterface
	policy     ttlPolicy
}

func NewFileStore(path string, ttl time.Duration, compressor CompressorInterface, logger providers.Logger, metrics providers.MetricsProviderInterface) (*FileStore, error) {
	fs := &FileStore{
		path:       path,
		data:       emptySnapshot(),
		compressor: compressor,
		logger:     logger,
		metrics:    metrics,
		policy:     newTTLPolicy(ttl),
	}
	if err := fs.load(); err != nil {
		return nil, err
	}
	return fs, nil
}

func emptySnapshot() snapshot {
	return snapshot{
		Version:    snapshotVersion,
		Listings:   make(map[string]*models.Listing),
		Developers: make(map[string]*models.Developer),
		Entries:    make(map[string]*models.CacheEntry),
	}
}

func (s *FileStore) load() error {
	raw, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}

	decompressed, err := s.compressor.Decompress(raw)
	if err != nil {
		return err
	}

	loaded := emptySnapshot()
	if err := json.Unmarshal(decompressed, &loaded); err != nil {
		return err
	}
	if loaded.Listings == nil {
		loaded.Listings = make(map[string]*models.Listing)
	}
	if loaded.Developers == nil {
		loaded.Developers = make(map[string]*models.Developer)
	}
	if loaded.Entries == nil {
		loaded.Entries = make(map[string]*models.CacheEntry)
	}

	s.mu.Lock()
	s.data = loaded
	s.mu.Unlock()
	s.logger.Infof(providers.TypeApp, "Loaded cache snapshot %s: %d listings, %d developers, %d queries",
		s.path, len(loaded.Listings), len(loaded.Developers), len(loaded.Entries))
	return nil
}

func (s *FileStore) Get(_ context.Context, key string) (*models.CacheEntry, bool) {
	s.mu.RLock()
	entry, ok := s.data.Entries[key]
	s.mu.RUnlock()
	if !ok || !s.policy.fresh(entry.ScrapedAt) {
		s.metrics.IncStoreLookups("query", false)
		return nil, false
	}
	s.metrics.IncStoreLookups("query", true)
	out := *entry
	return &out, true
}

func (s *FileStore) Put(_ context.Context, key string, payload []byte) error {
	entry := &models.CacheEntry{Key: key, Payload: append([]byte(nil), payload...), ScrapedAt: s.policy.now()}
	s.mu.Lock()
	s.data.Entries[key] = entry
	s.mu.Unlock()
	s.dirty.Store(true)
	return nil
}

func (s *FileStore) GetListing(_ context.Context, appID string) (*models.Listing, bool) {
	s.mu.RLock()
	listing, ok := s.data.Listings[appID]
	s.mu.RUnlock()
	if !ok || !s.policy.fresh(listing.ScrapedAt) {
		s.metrics.IncStoreLookups("listing", false)
		return nil, false
	}
	s.metrics.IncStoreLookups("listing", true)
	out := *listing
	return &out, true
}

func (s *FileStore) PutListings(_ context.Context, listings []*models.Listing) error {
	now := s.policy.now()
	s.mu.Lock()
	for _, l := range listings {
		if l == nil || l.AppID == "" {
			continue
		}
		s.data.Listings[l.AppID] = s.policy.merge(s.data.Listings[l.AppID], l, now)
	}
	s.mu.Unlock()
	s.dirty.Store(true)
	return nil
}

func (s *FileStore) GetDeveloper(_ context.Context, developerID string) (*models.Developer, bool) {
	s.mu.RLock()
	dev, ok := s.data.Developers[developerID]
	s.mu.RUnlock()
	if !ok || !s.policy.fresh(dev.ScrapedAt) {
		s.metrics.IncStoreLookups("developer", false)
		return nil, false
	}
	s.metrics.IncStoreLookups("developer", true)
	out := *dev
	return &out, true
}

func (s *FileStore) PutDeveloper(_ context.Context, dev *models.Developer) error {
	if dev == nil || dev.DeveloperID == "" {
		return errors.New("developer id is required")
	}
	row := *dev
	row.ScrapedAt = s.policy.now()
	s.mu.Lock()
	s.data.Developers[dev.DeveloperID] = &row
	s.mu.Unlock()
	s.dirty.Store(true)
	return nil
}

// Persist writes the snapshot atomically through a temp file and rename.
func (s *FileStore) Persist() error {
	if !s.dirty.Swap(false) {
		return nil
	}
	start := time.Now()

	s.mu.RLock()
	jsonData, err := json.Marshal(s.data)
	s.mu.RUnlock()
	if err != nil {
		s.dirty.Store(true)
		return err
	}

	if err = s.writeAtomic(jsonData); err != nil {
		s.dirty.Store(true)
		return err
	}
	s.metrics.ObservePersistenceDuration(time.Since(start))
	return nil
}

func (s *FileStore) writeAtomic(jsonData []byte) error {
	data, err := s.compressor.Compress(jsonData)
	if err != nil {
		return err
	}

	tmpFile := s.path + ".tmp"
	file, err := os.Create(tmpFile)
	if err != nil {
		return err
	}

	if _, err = file.Write(data); err != nil {
		file.Close()
		os.Remove(tmpFile)
		return err
	}

	if err = file.Sync(); err != nil {
		file.Close()
		os.Remove(tmpFile)
		return err
	}

	if err = file.Close(); err != nil {
		os.Remove(tmpFile)
		return err
	}

	return os.Rename(tmpFile, s.path)
}

func (s *FileStore) Close() error {
	err := s.Persist()
	s.compressor.Close()
	return err
}
