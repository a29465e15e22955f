package services

import (
	"context"
	"fmt"
	"gemscout/internal/catalog"
	"gemscout/internal/developer"
	"gemscout/internal/models"
	"gemscout/internal/providers"
	"gemscout/internal/scoring"
	"gemscout/internal/source"
	"gemscout/internal/structures"
	"github.com/google/uuid"
	"sort"
	"strings"
	"time"
)

const (
	ClassifierLowRated = "low-rated"
	ClassifierSoloDev  = "solo-dev"
	ClassifierNiche    = "niche-profitable"
	ClassifierTrending = "trending"
	ClassifierGems     = "gems"
)

const defaultEnrichBatch = 20

type OpportunityServiceInterface interface {
	LowRated(ctx context.Context, opts LowRatedOptions) []*models.Opportunity
	SoloDev(ctx context.Context, opts SoloDevOptions) []*models.Opportunity
	NicheProfitable(ctx context.Context, opts NicheOptions) []*models.Opportunity
	Trending(ctx context.Context, opts TrendingOptions) []*models.Opportunity
	Gems(ctx context.Context, opts GemOptions) []*models.Opportunity

	Search(ctx context.Context, q models.SearchQuery) ([]*models.Listing, error)
	App(ctx context.Context, appID string) (*models.Listing, error)
	Similar(ctx context.Context, appID string) ([]*models.Listing, error)
	Developer(ctx context.Context, developerID string) (*DeveloperInfo, error)
	Categories() []source.Category
}

type DeveloperInfo struct {
	DeveloperID string            `json:"devId"`
	Name        string            `json:"name"`
	AppCount    int               `json:"appCount"`
	Apps        []*models.Listing `json:"apps,omitempty"`
	FromCache   bool              `json:"fromCache,omitempty"`
}

// OpportunityService runs the classifiers. Classifiers never fail: a run
// where nothing could be fetched returns an empty list.
type OpportunityService struct {
	source          source.CatalogSourceInterface
	aggregator      *catalog.Aggregator
	profiler        developer.ProfilerInterface
	logger          providers.Logger
	metrics         providers.MetricsProviderInterface
	defaultCategory string
	enrichBatch     int
	gemCategories   []string
	now             func() time.Time
}

func NewOpportunityService(conf *structures.Config, src source.CatalogSourceInterface, profiler developer.ProfilerInterface, logger providers.Logger, metrics providers.MetricsProviderInterface) OpportunityServiceInterface {
	enrichBatch := conf.Scan.EnrichBatch
	if enrichBatch <= 0 {
		enrichBatch = defaultEnrichBatch
	}
	gemCategories := conf.Scan.GemCategories
	if len(gemCategories) == 0 {
		gemCategories = catalog.NicheCategories()
	}
	return &OpportunityService{
		source:          src,
		aggregator:      catalog.NewAggregator(src, logger),
		profiler:        profiler,
		logger:          logger,
		metrics:         metrics,
		defaultCategory: orDefault(conf.Scan.DefaultCategory, catalog.DefaultCategory),
		enrichBatch:     enrichBatch,
		gemCategories:   gemCategories,
		now:             time.Now,
	}
}

type run struct {
	id         string
	classifier string
	started    time.Time
}

func (s *OpportunityService) begin(classifier, category string) run {
	r := run{id: uuid.NewString(), classifier: classifier, started: time.Now()}
	s.logger.Debugf(providers.TypeScan, "[%s] %s started, category=%s", r.id, classifier, category)
	return r
}

func (s *OpportunityService) finish(r run, results []*models.Opportunity) []*models.Opportunity {
	elapsed := time.Since(r.started)
	s.metrics.ObserveScanDuration(r.classifier, elapsed)
	s.metrics.SetOpportunitiesFound(r.classifier, len(results))
	s.logger.Infof(providers.TypeScan, "[%s] %s found %d opportunities in %s", r.id, r.classifier, len(results), elapsed)
	return results
}

// gatherCollections is the two-phase protocol: list, dedupe, then backfill
// missing detail for a bounded batch.
func (s *OpportunityService) gatherCollections(ctx context.Context, category string, collections []string, count, enrichBatch int) []*models.Listing {
	listings := catalog.Dedupe(s.aggregator.GatherByCollections(ctx, category, collections, count))
	s.aggregator.EnrichMissingDetail(ctx, listings, enrichBatch)
	return listings
}

func (s *OpportunityService) LowRated(ctx context.Context, opts LowRatedOptions) []*models.Opportunity {
	opts = opts.withDefaults(s.defaultCategory)
	r := s.begin(ClassifierLowRated, opts.Category)

	listings := s.gatherCollections(ctx, opts.Category,
		[]string{models.CollectionTopFree, models.CollectionTopPaid}, opts.Count, s.enrichBatch)

	results := make([]*models.Opportunity, 0)
	for _, l := range listings {
		if l.MinInstalls < opts.MinInstalls || l.Score <= 0 || l.Score > opts.MaxRating {
			continue
		}
		results = append(results, &models.Opportunity{
			Listing:           *l,
			OpportunityReason: fmt.Sprintf("%s downloads but only %.1f stars", models.FormatInstalls(l.MinInstalls), l.Score),
		})
	}
	sortByInstalls(results)
	return s.finish(r, results)
}

func (s *OpportunityService) SoloDev(ctx context.Context, opts SoloDevOptions) []*models.Opportunity {
	opts = opts.withDefaults(s.defaultCategory)
	r := s.begin(ClassifierSoloDev, opts.Category)

	found := s.aggregator.GatherByKeywords(ctx, opts.Category, opts.KeywordLimit, opts.Count)
	candidates := make([]*models.Listing, 0, len(found))
	for _, l := range found {
		if l.DeveloperID != "" && l.MinInstalls >= opts.MinInstalls {
			candidates = append(candidates, l)
		}
	}

	memo := developer.NewMemo()
	results := make([]*models.Opportunity, 0)
	for _, l := range catalog.Dedupe(candidates) {
		profile, ok := s.profiler.Resolve(ctx, memo, l.DeveloperID)
		if !ok || profile.AppCount <= 0 || profile.AppCount > opts.MaxApps {
			continue
		}
		results = append(results, &models.Opportunity{
			Listing:           *l,
			DeveloperAppCount: profile.AppCount,
			OpportunityReason: fmt.Sprintf("Solo dev (%d apps) with %s downloads", profile.AppCount, models.FormatInstalls(l.MinInstalls)),
		})
	}
	sortByInstalls(results)
	return s.finish(r, results)
}

func (s *OpportunityService) NicheProfitable(ctx context.Context, opts NicheOptions) []*models.Opportunity {
	opts = opts.withDefaults(s.defaultCategory, s.enrichBatch)
	r := s.begin(ClassifierNiche, opts.Category)

	listings := s.gatherCollections(ctx, opts.Category,
		[]string{models.CollectionTopPaid, models.CollectionGrossing}, opts.Count, opts.EnrichBatch)

	results := make([]*models.Opportunity, 0, len(listings))
	for _, l := range listings {
		results = append(results, &models.Opportunity{Listing: *l, OpportunityReason: nicheReason(l)})
	}
	sortByInstalls(results)
	return s.finish(r, results)
}

func nicheReason(l *models.Listing) string {
	var parts []string
	if !l.Free {
		parts = append(parts, fmt.Sprintf("Paid ($%.2f)", l.Price))
	}
	if l.OffersIAP {
		parts = append(parts, "Has IAP")
	}
	if l.MinInstalls >= 1_000 {
		parts = append(parts, models.FormatInstalls(l.MinInstalls)+" downloads")
	}
	if len(parts) == 0 {
		return "In top grossing/paid"
	}
	return strings.Join(parts, " + ")
}

func (s *OpportunityService) Trending(ctx context.Context, opts TrendingOptions) []*models.Opportunity {
	opts = opts.withDefaults(s.defaultCategory)
	r := s.begin(ClassifierTrending, opts.Category)

	listings := s.gatherCollections(ctx, opts.Category,
		[]string{models.CollectionTopFree, models.CollectionTopPaid}, opts.Count, s.enrichBatch)

	cutoff := s.now().AddDate(0, 0, -opts.DaysBack)
	results := make([]*models.Opportunity, 0)
	for _, l := range listings {
		if l.Updated.IsZero() || l.Updated.Before(cutoff) {
			continue
		}
		results = append(results, &models.Opportunity{
			Listing:           *l,
			OpportunityReason: fmt.Sprintf("Updated %s with %s downloads", l.Updated.Format(time.DateOnly), models.FormatInstalls(l.MinInstalls)),
		})
	}
	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Updated.After(results[j].Updated)
	})
	return s.finish(r, results)
}

func (s *OpportunityService) Gems(ctx context.Context, opts GemOptions) []*models.Opportunity {
	opts = opts.withDefaults()
	categories := []string{opts.Category}
	if opts.Category == "" {
		categories = s.gemCategories
		if len(categories) > opts.CategoryLimit {
			categories = categories[:opts.CategoryLimit]
		}
	}
	r := s.begin(ClassifierGems, fmt.Sprint(categories))

	var found []*models.Listing
	for _, category := range categories {
		found = append(found, s.aggregator.GatherByKeywords(ctx, category, opts.KeywordLimit, opts.Count)...)
	}

	memo := developer.NewMemo()
	results := make([]*models.Opportunity, 0)
	for _, l := range catalog.Dedupe(found) {
		if !scoring.PreFilter(l) {
			continue
		}
		profile, ok := s.profiler.Resolve(ctx, memo, l.DeveloperID)
		if !scoring.PassesDeveloperGate(profile.AppCount, ok) {
			continue
		}
		gem := scoring.Score(l, profile.AppCount)
		if !scoring.Qualifies(gem.Total) {
			continue
		}
		breakdown := gem.Breakdown
		results = append(results, &models.Opportunity{
			Listing:           *l,
			GemScore:          gem.Total,
			GemBreakdown:      &breakdown,
			GemReason:         gem.Reason,
			DeveloperAppCount: profile.AppCount,
		})
	}
	sort.SliceStable(results, func(i, j int) bool {
		return results[i].GemScore > results[j].GemScore
	})
	s.logger.Debugf(providers.TypeScan, "[%s] %d listings searched, %d developers looked up", r.id, len(found), memo.Len())
	return s.finish(r, results)
}

func sortByInstalls(results []*models.Opportunity) {
	sort.SliceStable(results, func(i, j int) bool {
		return results[i].MinInstalls > results[j].MinInstalls
	})
}

func (s *OpportunityService) Search(ctx context.Context, q models.SearchQuery) ([]*models.Listing, error) {
	if q.Count <= 0 {
		q.Count = 30
	}
	if q.Price == "" {
		q.Price = models.PriceAll
	}
	q.FullDetail = true
	return s.source.Search(ctx, q)
}

func (s *OpportunityService) App(ctx context.Context, appID string) (*models.Listing, error) {
	return s.source.Detail(ctx, appID)
}

func (s *OpportunityService) Similar(ctx context.Context, appID string) ([]*models.Listing, error) {
	return s.source.Similar(ctx, appID, true)
}

func (s *OpportunityService) Developer(ctx context.Context, developerID string) (*DeveloperInfo, error) {
	profile, ok := s.profiler.Resolve(ctx, developer.NewMemo(), developerID)
	if !ok {
		return nil, fmt.Errorf("developer %s could not be resolved", developerID)
	}
	return &DeveloperInfo{
		DeveloperID: profile.DeveloperID,
		Name:        profile.Name,
		AppCount:    profile.AppCount,
		Apps:        profile.Apps,
		FromCache:   profile.Cached,
	}, nil
}

func (s *OpportunityService) Categories() []source.Category {
	return source.Categories()
}
