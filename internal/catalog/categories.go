package catalog

import (
	"gemscout/internal/source"
	"strings"
)

const DefaultCategory = "APPLICATION"

var competitiveCategories = map[string]struct{}{
	"SOCIAL":        {},
	"COMMUNICATION": {},
	"ENTERTAINMENT": {},
}

var midTierCategories = map[string]struct{}{
	"SHOPPING":           {},
	"FINANCE":            {},
	"TRAVEL_AND_LOCAL":   {},
	"PHOTOGRAPHY":        {},
	"MUSIC_AND_AUDIO":    {},
	"VIDEO_PLAYERS":      {},
	"NEWS_AND_MAGAZINES": {},
}

// never searched for gems: too broad or not real niches
var nonNicheCategories = map[string]struct{}{
	"APPLICATION":        {},
	"ANDROID_WEAR":       {},
	"WATCH_FACE":         {},
	"LIBRARIES_AND_DEMO": {},
}

// IsCompetitive covers every game genre plus the crowded social categories.
func IsCompetitive(genreID string) bool {
	if strings.HasPrefix(genreID, "GAME") {
		return true
	}
	_, ok := competitiveCategories[genreID]
	return ok
}

func IsMidTier(genreID string) bool {
	_, ok := midTierCategories[genreID]
	return ok
}

// NicheCategories returns the gem search order: store categories minus the
// competitive and catch-all ones.
func NicheCategories() []string {
	var out []string
	for _, c := range source.Categories() {
		if IsCompetitive(c.ID) {
			continue
		}
		if _, skip := nonNicheCategories[c.ID]; skip {
			continue
		}
		out = append(out, c.ID)
	}
	return out
}
