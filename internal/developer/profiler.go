package developer

import (
	"context"
	"gemscout/internal/models"
	"gemscout/internal/providers"
	"gemscout/internal/source"
	"gemscout/internal/store"
	"sync"
)

// AppsPerLookup is how many of a developer's apps are requested to count
// their catalogue.
const AppsPerLookup = 60

// Profile is a resolved developer. Apps is only set when the profile was
// fetched from the source in this call.
type Profile struct {
	DeveloperID string
	Name        string
	AppCount    int
	Cached      bool
	Apps        []*models.Listing
}

type memoEntry struct {
	profile  Profile
	resolved bool
}

// Memo remembers resolved and unresolved developers for one classification
// run. Create one per run; never share it between requests.
type Memo struct {
	mu      sync.Mutex
	entries map[string]memoEntry
}

func NewMemo() *Memo {
	return &Memo{entries: make(map[string]memoEntry)}
}

func (m *Memo) get(id string) (memoEntry, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	e, ok := m.entries[id]
	return e, ok
}

func (m *Memo) set(id string, e memoEntry) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries[id] = e
}

func (m *Memo) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.entries)
}

type ProfilerInterface interface {
	Resolve(ctx context.Context, memo *Memo, developerID string) (Profile, bool)
}

type Profiler struct {
	source source.CatalogSourceInterface
	store  store.CacheStoreInterface
	logger providers.Logger
}

func NewProfiler(src source.CatalogSourceInterface, cacheStore store.CacheStoreInterface, logger providers.Logger) ProfilerInterface {
	return &Profiler{source: src, store: cacheStore, logger: logger}
}

// Resolve looks a developer up in the run memo, then the store, then the
// source. A failed lookup returns ok == false and is remembered in memo so
// the source is asked at most once per developer per run.
func (p *Profiler) Resolve(ctx context.Context, memo *Memo, developerID string) (Profile, bool) {
	if memo != nil {
		if e, ok := memo.get(developerID); ok {
			return e.profile, e.resolved
		}
	}

	profile, ok := p.lookup(ctx, developerID)
	if memo != nil {
		memo.set(developerID, memoEntry{profile: profile, resolved: ok})
	}
	return profile, ok
}

func (p *Profiler) lookup(ctx context.Context, developerID string) (Profile, bool) {
	if developerID == "" {
		return Profile{}, false
	}

	if dev, ok := p.store.GetDeveloper(ctx, developerID); ok {
		return Profile{DeveloperID: dev.DeveloperID, Name: dev.Name, AppCount: dev.AppCount, Cached: true}, true
	}

	apps, err := p.source.DeveloperApps(ctx, developerID, AppsPerLookup)
	if err != nil {
		p.logger.Warnf(providers.TypeScan, "developer %s unresolved: %s", developerID, err)
		return Profile{}, false
	}

	name := developerID
	if len(apps) > 0 && apps[0].Developer != "" {
		name = apps[0].Developer
	}
	profile := Profile{DeveloperID: developerID, Name: name, AppCount: len(apps), Apps: apps}

	if err = p.store.PutDeveloper(ctx, &models.Developer{DeveloperID: developerID, Name: name, AppCount: len(apps)}); err != nil {
		p.logger.Warnf(providers.TypeScan, "store developer %s: %s", developerID, err)
	}
	return profile, true
}
