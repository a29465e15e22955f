package source

import (
	"context"
	"gemscout/internal/models"
	"gemscout/internal/providers"
	"gemscout/internal/store"
	json "github.com/goccy/go-json"
	"strconv"
)

// CachedSource is a read-through decorator: list, search and similar
// results are served from the store while fresh, detail lookups are served
// from stored detailed listings that already carry install data. Every
// detailed record fetched upstream is merged into the listings table.
type CachedSource struct {
	upstream CatalogSourceInterface
	store    store.CacheStoreInterface
	locale   string
	logger   providers.Logger
	metrics  providers.MetricsProviderInterface
}

func NewCachedSource(upstream CatalogSourceInterface, cacheStore store.CacheStoreInterface, country, lang string, logger providers.Logger, metrics providers.MetricsProviderInterface) *CachedSource {
	return &CachedSource{
		upstream: upstream,
		store:    cacheStore,
		locale:   "country=" + country + "|lang=" + lang,
		logger:   logger,
		metrics:  metrics,
	}
}

func (s *CachedSource) key(signature string) string {
	return signature + "|" + s.locale
}

func (s *CachedSource) Search(ctx context.Context, q models.SearchQuery) ([]*models.Listing, error) {
	return s.readThrough(ctx, "search", s.key(q.Signature()), func() ([]*models.Listing, error) {
		return s.upstream.Search(ctx, q)
	})
}

func (s *CachedSource) List(ctx context.Context, q models.ListQuery) ([]*models.Listing, error) {
	return s.readThrough(ctx, "list", s.key(q.Signature()), func() ([]*models.Listing, error) {
		return s.upstream.List(ctx, q)
	})
}

func (s *CachedSource) Similar(ctx context.Context, appID string, fullDetail bool) ([]*models.Listing, error) {
	key := s.key("similar|app=" + appID + "|full=" + strconv.FormatBool(fullDetail))
	return s.readThrough(ctx, "similar", key, func() ([]*models.Listing, error) {
		return s.upstream.Similar(ctx, appID, fullDetail)
	})
}

func (s *CachedSource) Detail(ctx context.Context, appID string) (*models.Listing, error) {
	if cached, ok := s.store.GetListing(ctx, appID); ok && cached.Detailed && !cached.NeedsDetail() {
		return cached, nil
	}
	listing, err := s.upstream.Detail(ctx, appID)
	s.metrics.IncSourceCalls("detail", err == nil)
	if err != nil {
		return nil, err
	}
	s.writeListings(ctx, []*models.Listing{listing})
	return listing, nil
}

// DeveloperApps is not cached here; the developer profiler owns that record.
func (s *CachedSource) DeveloperApps(ctx context.Context, developerID string, count int) ([]*models.Listing, error) {
	apps, err := s.upstream.DeveloperApps(ctx, developerID, count)
	s.metrics.IncSourceCalls("developer", err == nil)
	if err != nil {
		return nil, err
	}
	s.writeListings(ctx, apps)
	return apps, nil
}

func (s *CachedSource) readThrough(ctx context.Context, op, key string, fetch func() ([]*models.Listing, error)) ([]*models.Listing, error) {
	if entry, ok := s.store.Get(ctx, key); ok {
		var cached []*models.Listing
		err := json.Unmarshal(entry.Payload, &cached)
		if err == nil {
			return cached, nil
		}
		s.logger.Warnf(providers.TypeSource, "discarding cached %s: %s", key, err)
	}

	listings, err := fetch()
	s.metrics.IncSourceCalls(op, err == nil)
	if err != nil {
		return nil, err
	}

	payload, err := json.Marshal(listings)
	if err != nil {
		s.logger.Warnf(providers.TypeSource, "encode %s: %s", key, err)
	} else if err = s.store.Put(ctx, key, payload); err != nil {
		s.logger.Warnf(providers.TypeSource, "cache %s: %s", key, err)
	}
	s.writeListings(ctx, listings)
	return listings, nil
}

func (s *CachedSource) writeListings(ctx context.Context, listings []*models.Listing) {
	detailed := make([]*models.Listing, 0, len(listings))
	for _, l := range listings {
		if l != nil && l.Detailed {
			detailed = append(detailed, l)
		}
	}
	if len(detailed) == 0 {
		return
	}
	if err := s.store.PutListings(ctx, detailed); err != nil {
		s.logger.Warnf(providers.TypeSource, "write-through of %d listings: %s", len(detailed), err)
	}
}
