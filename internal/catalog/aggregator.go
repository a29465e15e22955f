package catalog

import (
	"context"
	"gemscout/internal/models"
	"gemscout/internal/providers"
	"gemscout/internal/source"
	"golang.org/x/sync/errgroup"
)

// Aggregator turns coarse queries into deduplicated, detail-enriched
// listings. Individual source failures are logged and skipped.
type Aggregator struct {
	source source.CatalogSourceInterface
	logger providers.Logger
}

func NewAggregator(src source.CatalogSourceInterface, logger providers.Logger) *Aggregator {
	return &Aggregator{source: src, logger: logger}
}

// GatherByCollections lists every collection concurrently and concatenates
// the successful results in collection order.
func (a *Aggregator) GatherByCollections(ctx context.Context, category string, collections []string, count int) []*models.Listing {
	batches := make([][]*models.Listing, len(collections))
	var g errgroup.Group
	for i, collection := range collections {
		q := models.ListQuery{Category: category, Collection: collection, Count: count, FullDetail: true}
		g.Go(func() error {
			if res, ok := Attempt(a.logger, "list "+category+"/"+collection, func() ([]*models.Listing, error) {
				return a.source.List(ctx, q)
			}); ok {
				batches[i] = res
			}
			return nil
		})
	}
	_ = g.Wait()
	return Collect(batches)
}

// GatherByKeywords searches each niche keyword of the category in turn.
func (a *Aggregator) GatherByKeywords(ctx context.Context, category string, keywordLimit, count int) []*models.Listing {
	keywords := limitKeywords(KeywordsFor(category), keywordLimit)
	return AttemptEach(a.logger, keywords,
		func(kw string) string { return "search " + kw },
		func(kw string) ([]*models.Listing, error) {
			return a.source.Search(ctx, models.SearchQuery{Term: kw, Count: count, Price: models.PriceAll, FullDetail: true})
		})
}

// EnrichMissingDetail fetches detail for up to maxBatch listings that lack
// install data and merges it in place. Listings whose fetch fails keep what
// they had. Returns the number of listings enriched.
func (a *Aggregator) EnrichMissingDetail(ctx context.Context, listings []*models.Listing, maxBatch int) int {
	enriched, queued := 0, 0
	for _, l := range listings {
		if queued >= maxBatch {
			break
		}
		if !l.NeedsDetail() {
			continue
		}
		queued++
		detail, ok := Attempt(a.logger, "detail "+l.AppID, func() (*models.Listing, error) {
			return a.source.Detail(ctx, l.AppID)
		})
		if !ok {
			continue
		}
		l.Overwrite(detail)
		enriched++
	}
	if queued > 0 {
		a.logger.Debugf(providers.TypeScan, "Enriched %d of %d listings missing detail", enriched, queued)
	}
	return enriched
}

// Dedupe keeps one listing per app id. A duplicate only fills fields the
// first record lacks. Input records are not modified.
func Dedupe(listings []*models.Listing) []*models.Listing {
	index := make(map[string]int, len(listings))
	out := make([]*models.Listing, 0, len(listings))
	for _, l := range listings {
		if l == nil || l.AppID == "" {
			continue
		}
		if i, ok := index[l.AppID]; ok {
			out[i].Enrich(l)
			continue
		}
		c := *l
		index[l.AppID] = len(out)
		out = append(out, &c)
	}
	return out
}
