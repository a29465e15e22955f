package scoring

import (
	"gemscout/internal/models"
	"strings"
)

// brandBlacklist holds lower-case substrings of large platform, publisher,
// bank and retail developer names.
var brandBlacklist = []string{
	"google", "meta", "facebook", "microsoft", "amazon", "apple", "samsung", "uber", "lyft",
	"airbnb", "pinterest", "snap", "snapchat", "twitter", "tiktok", "bytedance", "spotify",
	"netflix", "adobe", "oracle", "ibm", "salesforce", "paypal", "stripe", "square",
	"block, inc", "intuit", "walmart", "target", "starbucks", "mcdonalds", "burger king",
	"coca-cola", "pepsi", "nike", "adidas", "bank of america", "chase", "wells fargo",
	"citibank", "capital one", "american express", "visa", "mastercard", "disney", "warner",
	"paramount", "sony", "ea ", "electronic arts", "activision", "blizzard", "epic games",
	"riot", "supercell", "king", "zynga", "roblox", "tencent", "netease", "zoom", "slack",
	"dropbox", "evernote", "notion labs", "doordash", "grubhub", "instacart", "postmates",
	"booking.com", "expedia", "tripadvisor", "kayak", "linkedin", "indeed", "glassdoor",
	"robinhood", "coinbase", "binance", "crypto.com", "duolingo", "khan academy",
	"coursera", "fitbit", "garmin", "peloton", "ring", "nest", "philips", "honeywell",
}

func IsBlacklisted(developerName string) bool {
	lower := strings.ToLower(developerName)
	for _, brand := range brandBlacklist {
		if strings.Contains(lower, brand) {
			return true
		}
	}
	return false
}

// PreFilter runs before any developer lookup and drops listings that can
// not be gems whatever their developer.
func PreFilter(l *models.Listing) bool {
	if l.DeveloperID == "" {
		return false
	}
	if l.MinInstalls > MaxCandidateInstalls || l.MinInstalls < MinCandidateInstalls {
		return false
	}
	return !IsBlacklisted(l.Developer)
}

// PassesDeveloperGate drops unresolved developers and large catalogues.
// It is independent of the developer-size sub-score.
func PassesDeveloperGate(appCount int, resolved bool) bool {
	return resolved && appCount >= 1 && appCount <= MaxDeveloperApps
}
