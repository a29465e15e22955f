package testutil

import (
	"context"
	"errors"
	"gemscout/internal/models"
	"gemscout/internal/providers"
	"sync"
	"time"
)

// MockLogger implements providers.Logger and records calls.
type MockLogger struct {
	mu   sync.Mutex
	Logs []LogEntry
}

type LogEntry struct {
	Level  string
	Type   providers.TypeEnum
	Format string
	Args   []interface{}
}

func (m *MockLogger) record(level string, t providers.TypeEnum, format string, args ...interface{}) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Logs = append(m.Logs, LogEntry{Level: level, Type: t, Format: format, Args: args})
}

func (m *MockLogger) Errorf(t providers.TypeEnum, format string, args ...interface{}) {
	m.record("error", t, format, args...)
}
func (m *MockLogger) Warnf(t providers.TypeEnum, format string, args ...interface{}) {
	m.record("warn", t, format, args...)
}
func (m *MockLogger) Debugf(t providers.TypeEnum, format string, args ...interface{}) {
	m.record("debug", t, format, args...)
}
func (m *MockLogger) Infof(t providers.TypeEnum, format string, args ...interface{}) {
	m.record("info", t, format, args...)
}
func (m *MockLogger) Fatalf(t providers.TypeEnum, format string, args ...interface{}) {
	m.record("fatal", t, format, args...)
}
func (m *MockLogger) Close() {}

// Count returns how many entries were logged at level.
func (m *MockLogger) Count(level string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for _, l := range m.Logs {
		if l.Level == level {
			n++
		}
	}
	return n
}

// MockMetrics implements providers.MetricsProviderInterface.
type MockMetrics struct {
	mu          sync.Mutex
	SourceCalls map[string]int
	StoreHits   int
	StoreMisses int
	Found       map[string]int
}

func (m *MockMetrics) IncRequestsTotal(_ string, _ int)                 {}
func (m *MockMetrics) ObserveRequestDuration(_ string, _ time.Duration) {}
func (m *MockMetrics) IncCacheHits()                                    {}
func (m *MockMetrics) IncCacheMisses()                                  {}
func (m *MockMetrics) ObserveScanDuration(_ string, _ time.Duration)    {}
func (m *MockMetrics) ObservePersistenceDuration(_ time.Duration)       {}

func (m *MockMetrics) IncSourceCalls(operation string, ok bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.SourceCalls == nil {
		m.SourceCalls = make(map[string]int)
	}
	if !ok {
		operation += ":error"
	}
	m.SourceCalls[operation]++
}

func (m *MockMetrics) IncStoreLookups(_ string, hit bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if hit {
		m.StoreHits++
	} else {
		m.StoreMisses++
	}
}

func (m *MockMetrics) SetOpportunitiesFound(classifier string, count int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Found == nil {
		m.Found = make(map[string]int)
	}
	m.Found[classifier] = count
}

// MockCache implements providers.CacheProviderInterface.
type MockCache struct {
	mu     sync.Mutex
	Data   map[string][]byte
	Purges int
}

func NewMockCache() *MockCache {
	return &MockCache{Data: make(map[string][]byte)}
}

func (m *MockCache) Get(key string) ([]byte, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	val, ok := m.Data[key]
	return val, ok
}

func (m *MockCache) Set(key string, value []byte) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Data[key] = value
}

func (m *MockCache) Purge() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Data = make(map[string][]byte)
	m.Purges++
}

func (m *MockCache) EntryCount() int64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return int64(len(m.Data))
}

var ErrMockNotFound = errors.New("mock: not found")

// MockSource implements source.CatalogSourceInterface from fixed tables.
// Missing entries return ErrMockNotFound; entries in Fail always error.
type MockSource struct {
	mu         sync.Mutex
	Searches   map[string][]*models.Listing // term → results
	Lists      map[string][]*models.Listing // collection → results
	Details    map[string]*models.Listing   // appId → detail
	Developers map[string][]*models.Listing // developerId → apps
	Similars   map[string][]*models.Listing // appId → similar
	Fail       map[string]bool              // "op:key" → forced failure
	Calls      []string
}

func (m *MockSource) call(op, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Calls = append(m.Calls, op+":"+key)
	if m.Fail[op+":"+key] {
		return errors.New("mock: forced failure " + op + ":" + key)
	}
	return nil
}

// CallCount returns how many calls were made for op (and key when not empty).
func (m *MockSource) CallCount(op, key string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for _, c := range m.Calls {
		if c == op+":"+key || (key == "" && len(c) > len(op) && c[:len(op)+1] == op+":") {
			n++
		}
	}
	return n
}

func (m *MockSource) Search(_ context.Context, q models.SearchQuery) ([]*models.Listing, error) {
	if err := m.call("search", q.Term); err != nil {
		return nil, err
	}
	res, ok := m.Searches[q.Term]
	if !ok {
		return nil, ErrMockNotFound
	}
	return cloneListings(res, q.Count), nil
}

func (m *MockSource) List(_ context.Context, q models.ListQuery) ([]*models.Listing, error) {
	if err := m.call("list", q.Collection); err != nil {
		return nil, err
	}
	res, ok := m.Lists[q.Collection]
	if !ok {
		return nil, ErrMockNotFound
	}
	return cloneListings(res, q.Count), nil
}

func (m *MockSource) Detail(_ context.Context, appID string) (*models.Listing, error) {
	if err := m.call("detail", appID); err != nil {
		return nil, err
	}
	l, ok := m.Details[appID]
	if !ok {
		return nil, ErrMockNotFound
	}
	out := *l
	return &out, nil
}

func (m *MockSource) DeveloperApps(_ context.Context, developerID string, count int) ([]*models.Listing, error) {
	if err := m.call("developer", developerID); err != nil {
		return nil, err
	}
	res, ok := m.Developers[developerID]
	if !ok {
		return nil, ErrMockNotFound
	}
	return cloneListings(res, count), nil
}

func (m *MockSource) Similar(_ context.Context, appID string, _ bool) ([]*models.Listing, error) {
	if err := m.call("similar", appID); err != nil {
		return nil, err
	}
	res, ok := m.Similars[appID]
	if !ok {
		return nil, ErrMockNotFound
	}
	return cloneListings(res, 0), nil
}

func cloneListings(in []*models.Listing, limit int) []*models.Listing {
	out := make([]*models.Listing, 0, len(in))
	for _, l := range in {
		if limit > 0 && len(out) >= limit {
			break
		}
		c := *l
		out = append(out, &c)
	}
	return out
}

// MockStore is an in-memory store.CacheStoreInterface without TTL.
type MockStore struct {
	mu         sync.Mutex
	Entries    map[string][]byte
	Listings   map[string]*models.Listing
	Developers map[string]*models.Developer
	PutErr     error
}

func NewMockStore() *MockStore {
	return &MockStore{
		Entries:    make(map[string][]byte),
		Listings:   make(map[string]*models.Listing),
		Developers: make(map[string]*models.Developer),
	}
}

func (m *MockStore) Get(_ context.Context, key string) (*models.CacheEntry, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.Entries[key]
	if !ok {
		return nil, false
	}
	return &models.CacheEntry{Key: key, Payload: p, ScrapedAt: time.Now()}, true
}

func (m *MockStore) Put(_ context.Context, key string, payload []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.PutErr != nil {
		return m.PutErr
	}
	m.Entries[key] = payload
	return nil
}

func (m *MockStore) GetListing(_ context.Context, appID string) (*models.Listing, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	l, ok := m.Listings[appID]
	if !ok {
		return nil, false
	}
	out := *l
	return &out, true
}

func (m *MockStore) PutListings(_ context.Context, listings []*models.Listing) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.PutErr != nil {
		return m.PutErr
	}
	for _, l := range listings {
		c := *l
		if prev, ok := m.Listings[l.AppID]; ok {
			c = *prev
			c.Overwrite(l)
		}
		m.Listings[l.AppID] = &c
	}
	return nil
}

func (m *MockStore) GetDeveloper(_ context.Context, developerID string) (*models.Developer, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	d, ok := m.Developers[developerID]
	if !ok {
		return nil, false
	}
	out := *d
	return &out, true
}

func (m *MockStore) PutDeveloper(_ context.Context, dev *models.Developer) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.PutErr != nil {
		return m.PutErr
	}
	c := *dev
	m.Developers[dev.DeveloperID] = &c
	return nil
}

func (m *MockStore) Persist() error { return nil }
func (m *MockStore) Close() error   { return nil }
