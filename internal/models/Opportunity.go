package models

// GemBreakdown holds the five bounded sub-scores of a gem score.
type GemBreakdown struct {
	DevScore          int `json:"devScore"`
	InstallScore      int `json:"installScore"`
	MonetizationScore int `json:"monetizationScore"`
	CategoryScore     int `json:"categoryScore"`
	RatingScore       int `json:"ratingScore"`
}

func (b GemBreakdown) Total() int {
	return b.DevScore + b.InstallScore + b.MonetizationScore + b.CategoryScore + b.RatingScore
}

// Opportunity is a Listing annotated by a classifier. It is derived per
// request and never persisted.
type Opportunity struct {
	Listing
	OpportunityReason string        `json:"opportunityReason,omitempty"`
	GemScore          int           `json:"gemScore,omitempty"`
	GemBreakdown      *GemBreakdown `json:"gemBreakdown,omitempty"`
	GemReason         string        `json:"gemReason,omitempty"`
	DeveloperAppCount int           `json:"developerAppCount,omitempty"`
}
