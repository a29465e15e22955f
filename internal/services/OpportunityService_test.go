package services

import (
	"context"
	"gemscout/internal/developer"
	"gemscout/internal/models"
	"gemscout/internal/structures"
	"gemscout/internal/testutil"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testNow = time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

func newTestService(src *testutil.MockSource) (*OpportunityService, *testutil.MockMetrics) {
	conf := &structures.Config{Scan: structures.ScanConfig{EnrichBatch: 10}}
	logger := &testutil.MockLogger{}
	metrics := &testutil.MockMetrics{}
	profiler := developer.NewProfiler(src, testutil.NewMockStore(), logger)
	svc := NewOpportunityService(conf, src, profiler, logger, metrics).(*OpportunityService)
	svc.now = func() time.Time { return testNow }
	return svc, metrics
}

func ids(results []*models.Opportunity) []string {
	out := make([]string, 0, len(results))
	for _, r := range results {
		out = append(out, r.AppID)
	}
	return out
}

func TestLowRated(t *testing.T) {
	src := &testutil.MockSource{Lists: map[string][]*models.Listing{
		models.CollectionTopFree: {
			{AppID: "popular-bad", MinInstalls: 200_000, Score: 3.2},
			{AppID: "popular-good", MinInstalls: 60_000, Score: 4.5},
			{AppID: "small-bad", MinInstalls: 10_000, Score: 2.0},
		},
	}}
	svc, metrics := newTestService(src)

	res := svc.LowRated(context.Background(), LowRatedOptions{})

	require.Len(t, res, 1)
	assert.Equal(t, "popular-bad", res[0].AppID)
	assert.Contains(t, res[0].OpportunityReason, "200.0K")
	assert.Contains(t, res[0].OpportunityReason, "3.2")
	assert.Equal(t, "200.0K downloads but only 3.2 stars", res[0].OpportunityReason)
	assert.Equal(t, 1, metrics.Found[ClassifierLowRated])
	assert.Equal(t, 1, src.CallCount("list", models.CollectionTopPaid), "paid collection attempted even though it fails")
}

func TestLowRated_SortsAndSkipsUnrated(t *testing.T) {
	src := &testutil.MockSource{Lists: map[string][]*models.Listing{
		models.CollectionTopFree: {
			{AppID: "a", MinInstalls: 80_000, Score: 3.0},
			{AppID: "unrated", MinInstalls: 900_000, Score: 0},
		},
		models.CollectionTopPaid: {
			{AppID: "b", MinInstalls: 500_000, Score: 3.5},
			{AppID: "a", MinInstalls: 80_000, Score: 3.0},
		},
	}}
	svc, _ := newTestService(src)

	res := svc.LowRated(context.Background(), LowRatedOptions{Category: "TOOLS"})
	assert.Equal(t, []string{"b", "a"}, ids(res))
}

func TestLowRated_SourceDown(t *testing.T) {
	svc, metrics := newTestService(&testutil.MockSource{})
	res := svc.LowRated(context.Background(), LowRatedOptions{})
	assert.NotNil(t, res)
	assert.Empty(t, res)
	assert.Equal(t, 0, metrics.Found[ClassifierLowRated])
}

func TestTrending(t *testing.T) {
	src := &testutil.MockSource{Lists: map[string][]*models.Listing{
		models.CollectionTopFree: {
			{AppID: "fresh", MinInstalls: 1_000, Updated: testNow.AddDate(0, 0, -10)},
			{AppID: "old", MinInstalls: 50_000_000, Updated: testNow.AddDate(0, 0, -200)},
			{AppID: "undated", MinInstalls: 5_000},
		},
		models.CollectionTopPaid: {
			{AppID: "fresher", MinInstalls: 2_000, Updated: testNow.AddDate(0, 0, -1)},
		},
	}}
	svc, _ := newTestService(src)

	res := svc.Trending(context.Background(), TrendingOptions{DaysBack: 90})
	assert.Equal(t, []string{"fresher", "fresh"}, ids(res))
	assert.Equal(t, "Updated 2024-05-22 with 1.0K downloads", res[1].OpportunityReason)

	res = svc.Trending(context.Background(), TrendingOptions{DaysBack: 5})
	assert.Equal(t, []string{"fresher"}, ids(res))
}

func TestSoloDev(t *testing.T) {
	src := &testutil.MockSource{
		Searches: map[string][]*models.Listing{
			"budget tracker": {
				{AppID: "solo", DeveloperID: "solo-dev", MinInstalls: 20_000},
				{AppID: "tiny", DeveloperID: "solo-dev", MinInstalls: 500},
				{AppID: "big", DeveloperID: "studio", MinInstalls: 900_000},
			},
			"expense manager": {
				{AppID: "solo2", DeveloperID: "solo-dev", MinInstalls: 80_000},
				{AppID: "orphan", MinInstalls: 80_000},
				{AppID: "ghosted", DeveloperID: "ghost", MinInstalls: 80_000},
			},
		},
		Developers: map[string][]*models.Listing{
			"solo-dev": {{AppID: "solo"}, {AppID: "solo2"}},
			"studio":   {{AppID: "1"}, {AppID: "2"}, {AppID: "3"}, {AppID: "4"}, {AppID: "5"}, {AppID: "6"}},
		},
	}
	svc, _ := newTestService(src)

	res := svc.SoloDev(context.Background(), SoloDevOptions{Category: "FINANCE"})

	assert.Equal(t, []string{"solo2", "solo"}, ids(res))
	assert.Equal(t, 2, res[0].DeveloperAppCount)
	assert.Equal(t, "Solo dev (2 apps) with 80.0K downloads", res[0].OpportunityReason)
	assert.Equal(t, 1, src.CallCount("developer", "solo-dev"), "one lookup per developer per run")
	assert.Equal(t, 1, src.CallCount("developer", "ghost"))
	assert.Equal(t, 4, src.CallCount("search", ""))
}

func TestNicheProfitable(t *testing.T) {
	src := &testutil.MockSource{
		Lists: map[string][]*models.Listing{
			models.CollectionTopPaid: {
				{AppID: "paid", Price: 4.99, MinInstalls: 10_000},
				{AppID: "sparse", Title: "Sparse"},
			},
			models.CollectionGrossing: {
				{AppID: "iap", Free: true, OffersIAP: true, MinInstalls: 500_000},
				{AppID: "paid", Price: 4.99, MinInstalls: 10_000, OffersIAP: true, Detailed: true},
				{AppID: "plain", Free: true, MinInstalls: 500},
			},
		},
		Details: map[string]*models.Listing{
			"sparse": {AppID: "sparse", Free: true, MinInstalls: 1_000_000, Detailed: true},
		},
	}
	svc, _ := newTestService(src)

	res := svc.NicheProfitable(context.Background(), NicheOptions{})

	require.Equal(t, []string{"sparse", "iap", "paid", "plain"}, ids(res))
	assert.Equal(t, "Sparse", res[0].Title, "detail merge keeps list data")
	assert.Equal(t, "1.0M downloads", res[0].OpportunityReason)
	assert.Equal(t, "Has IAP + 500.0K downloads", res[1].OpportunityReason)
	assert.Equal(t, "Paid ($4.99) + Has IAP + 10.0K downloads", res[2].OpportunityReason)
	assert.Equal(t, "In top grossing/paid", res[3].OpportunityReason)
}

func TestGems(t *testing.T) {
	src := &testutil.MockSource{
		Searches: map[string][]*models.Listing{
			"habit tracker": {
				// 25 + 25 + 15 + 15 + 15
				{AppID: "gem", Developer: "Tiny Co", DeveloperID: "tiny", MinInstalls: 100_000, Free: true, OffersIAP: true, GenreID: "HEALTH_AND_FITNESS", Score: 4.4},
				// 20 + 20 + 0 + 0 + 0 = 40
				{AppID: "edge", Developer: "Duo Co", DeveloperID: "duo", MinInstalls: 10_000, Free: true, GenreID: "GAME_PUZZLE"},
				// 15 + 20 + 0 + 0 + 0 = 35
				{AppID: "below", Developer: "Quad Co", DeveloperID: "quad", MinInstalls: 10_000, Free: true, GenreID: "GAME_PUZZLE"},
				{AppID: "brand", Developer: "Google LLC", DeveloperID: "google", MinInstalls: 100_000, GenreID: "TOOLS"},
				{AppID: "huge", Developer: "Tiny Co", DeveloperID: "tiny", MinInstalls: 50_000_000},
				{AppID: "prolific", Developer: "Factory", DeveloperID: "factory", MinInstalls: 100_000, GenreID: "TOOLS", Score: 4.2},
				{AppID: "lost", Developer: "Lost", DeveloperID: "lost", MinInstalls: 100_000, GenreID: "TOOLS", Score: 4.2},
			},
			"water reminder": {
				{AppID: "gem", Developer: "Tiny Co", DeveloperID: "tiny"},
			},
		},
		Developers: map[string][]*models.Listing{
			"tiny":    make([]*models.Listing, 1),
			"duo":     make([]*models.Listing, 2),
			"quad":    make([]*models.Listing, 4),
			"factory": make([]*models.Listing, 16),
			"google":  make([]*models.Listing, 1),
		},
	}
	for id, apps := range src.Developers {
		for i := range apps {
			apps[i] = &models.Listing{AppID: id + "-app"}
		}
	}
	svc, metrics := newTestService(src)

	res := svc.Gems(context.Background(), GemOptions{Category: "HEALTH_AND_FITNESS", KeywordLimit: 2})

	require.Equal(t, []string{"gem", "edge"}, ids(res))
	assert.Equal(t, 95, res[0].GemScore)
	assert.Equal(t, 1, res[0].DeveloperAppCount)
	require.NotNil(t, res[0].GemBreakdown)
	assert.Equal(t, 25, res[0].GemBreakdown.DevScore)
	assert.Equal(t, "Solo dev (1 app) | 100.0K downloads | Monetized via IAP | 4.4 stars", res[0].GemReason)
	assert.Equal(t, 40, res[1].GemScore)

	assert.Equal(t, 0, src.CallCount("developer", "google"), "pre-filter runs before lookups")
	assert.Equal(t, 1, src.CallCount("developer", "tiny"))
	assert.Equal(t, 2, metrics.Found[ClassifierGems])
}

func TestGems_DefaultCategories(t *testing.T) {
	src := &testutil.MockSource{}
	svc, _ := newTestService(src)

	res := svc.Gems(context.Background(), GemOptions{CategoryLimit: 2, KeywordLimit: 1})
	assert.NotNil(t, res)
	assert.Empty(t, res)
	assert.Equal(t, 1, src.CallCount("search", "drawing app"))
	assert.Equal(t, 1, src.CallCount("search", "car maintenance"))
	assert.Equal(t, 2, src.CallCount("search", ""))
}

func TestDeveloper(t *testing.T) {
	src := &testutil.MockSource{Developers: map[string][]*models.Listing{
		"indie": {{AppID: "a", Developer: "Indie"}},
	}}
	svc, _ := newTestService(src)

	info, err := svc.Developer(context.Background(), "indie")
	require.NoError(t, err)
	assert.Equal(t, "Indie", info.Name)
	assert.Len(t, info.Apps, 1)

	_, err = svc.Developer(context.Background(), "nobody")
	assert.Error(t, err)
}

func TestSearchDefaults(t *testing.T) {
	src := &testutil.MockSource{Searches: map[string][]*models.Listing{
		"notes": {{AppID: "a"}},
	}}
	svc, _ := newTestService(src)

	res, err := svc.Search(context.Background(), models.SearchQuery{Term: "notes"})
	require.NoError(t, err)
	assert.Len(t, res, 1)
	assert.NotEmpty(t, svc.Categories())
}
