package scoring

import (
	"fmt"
	"gemscout/internal/catalog"
	"gemscout/internal/models"
	"strings"
)

const (
	GemThreshold = 40

	MinCandidateInstalls = 1_000
	MaxCandidateInstalls = 10_000_000
	MaxDeveloperApps     = 15
)

type Result struct {
	Total     int
	Breakdown models.GemBreakdown
	Reason    string
}

// Score rates a listing for a developer with appCount published apps.
func Score(l *models.Listing, appCount int) Result {
	b := models.GemBreakdown{
		DevScore:          DevSizeScore(appCount),
		InstallScore:      InstallScore(l.MinInstalls),
		MonetizationScore: MonetizationScore(l),
		CategoryScore:     CategoryScore(genreKey(l)),
		RatingScore:       RatingScore(l.Score),
	}
	return Result{Total: b.Total(), Breakdown: b, Reason: reason(l, appCount)}
}

// genreKey prefers the genre id and falls back to the display genre.
func genreKey(l *models.Listing) string {
	if l.GenreID != "" {
		return l.GenreID
	}
	return l.Genre
}

func Qualifies(total int) bool {
	return total >= GemThreshold
}

func DevSizeScore(appCount int) int {
	switch {
	case appCount == 1:
		return 25
	case appCount >= 2 && appCount <= 3:
		return 20
	case appCount >= 4 && appCount <= 5:
		return 15
	case appCount >= 6 && appCount <= 10:
		return 5
	default:
		return 0
	}
}

func InstallScore(installs int64) int {
	switch {
	case installs >= 50_000 && installs <= 500_000:
		return 25
	case installs >= 10_000 && installs < 50_000:
		return 20
	case installs > 500_000 && installs <= 2_000_000:
		return 15
	case installs > 2_000_000 && installs <= 5_000_000:
		return 5
	default:
		return 0
	}
}

func MonetizationScore(l *models.Listing) int {
	paid := l.IsPaid()
	switch {
	case paid && l.OffersIAP:
		return 20
	case l.OffersIAP:
		return 15
	case paid:
		return 10
	default:
		return 0
	}
}

// CategoryScore favours genres outside the crowded and mid-tier sets. An
// unknown genre scores like a mid-tier one.
func CategoryScore(genreID string) int {
	switch {
	case genreID == "":
		return 10
	case catalog.IsCompetitive(genreID):
		return 0
	case catalog.IsMidTier(genreID):
		return 10
	default:
		return 15
	}
}

// RatingScore tops out at 4.0–4.7; higher ratings are treated as saturated
// and score nothing.
func RatingScore(rating float64) int {
	switch {
	case rating >= 4.0 && rating <= 4.7:
		return 15
	case rating >= 3.5 && rating < 4.0:
		return 10
	case rating >= 3.0 && rating < 3.5:
		return 5
	default:
		return 0
	}
}

func reason(l *models.Listing, appCount int) string {
	var parts []string
	if appCount <= 3 {
		noun := "apps"
		if appCount == 1 {
			noun = "app"
		}
		parts = append(parts, fmt.Sprintf("Solo dev (%d %s)", appCount, noun))
	}
	if l.MinInstalls > 0 {
		parts = append(parts, models.FormatInstalls(l.MinInstalls)+" downloads")
	}
	if l.OffersIAP {
		parts = append(parts, "Monetized via IAP")
	} else if !l.Free {
		parts = append(parts, fmt.Sprintf("Paid ($%.2f)", l.Price))
	}
	if l.Score > 0 {
		parts = append(parts, fmt.Sprintf("%.1f stars", l.Score))
	}
	return strings.Join(parts, " | ")
}
