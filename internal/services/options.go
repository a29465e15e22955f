package services

const (
	defaultLowRatedMinInstalls = 50_000
	defaultLowRatedMaxRating   = 3.5
	defaultCollectionCount     = 100

	defaultSoloMinInstalls  = 1_000
	defaultSoloMaxApps      = 5
	defaultSoloKeywordLimit = 4
	defaultSoloCount        = 30

	defaultTrendingDaysBack = 90

	defaultGemCategoryLimit = 6
	defaultGemKeywordLimit  = 5
	defaultGemCount         = 15
)

type LowRatedOptions struct {
	Category    string
	MinInstalls int64
	MaxRating   float64
	Count       int
}

func (o LowRatedOptions) withDefaults(category string) LowRatedOptions {
	o.Category = orDefault(o.Category, category)
	if o.MinInstalls <= 0 {
		o.MinInstalls = defaultLowRatedMinInstalls
	}
	if o.MaxRating <= 0 {
		o.MaxRating = defaultLowRatedMaxRating
	}
	if o.Count <= 0 {
		o.Count = defaultCollectionCount
	}
	return o
}

type SoloDevOptions struct {
	Category     string
	MinInstalls  int64
	MaxApps      int
	KeywordLimit int
	Count        int
}

func (o SoloDevOptions) withDefaults(category string) SoloDevOptions {
	o.Category = orDefault(o.Category, category)
	if o.MinInstalls <= 0 {
		o.MinInstalls = defaultSoloMinInstalls
	}
	if o.MaxApps <= 0 {
		o.MaxApps = defaultSoloMaxApps
	}
	if o.KeywordLimit <= 0 {
		o.KeywordLimit = defaultSoloKeywordLimit
	}
	if o.Count <= 0 {
		o.Count = defaultSoloCount
	}
	return o
}

type NicheOptions struct {
	Category    string
	Count       int
	EnrichBatch int
}

func (o NicheOptions) withDefaults(category string, enrichBatch int) NicheOptions {
	o.Category = orDefault(o.Category, category)
	if o.Count <= 0 {
		o.Count = defaultCollectionCount
	}
	if o.EnrichBatch <= 0 {
		o.EnrichBatch = enrichBatch
	}
	return o
}

type TrendingOptions struct {
	Category string
	DaysBack int
	Count    int
}

func (o TrendingOptions) withDefaults(category string) TrendingOptions {
	o.Category = orDefault(o.Category, category)
	if o.DaysBack <= 0 {
		o.DaysBack = defaultTrendingDaysBack
	}
	if o.Count <= 0 {
		o.Count = defaultCollectionCount
	}
	return o
}

// GemOptions searches a single category when Category is set, otherwise the
// first CategoryLimit niche categories.
type GemOptions struct {
	Category      string
	CategoryLimit int
	KeywordLimit  int
	Count         int
}

func (o GemOptions) withDefaults() GemOptions {
	if o.CategoryLimit <= 0 {
		o.CategoryLimit = defaultGemCategoryLimit
	}
	if o.KeywordLimit <= 0 {
		o.KeywordLimit = defaultGemKeywordLimit
	}
	if o.Count <= 0 {
		o.Count = defaultGemCount
	}
	return o
}

func orDefault(v, def string) string {
	if v == "" {
		return def
	}
	return v
}
