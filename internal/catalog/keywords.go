package catalog

import "strings"

var categoryKeywords = map[string][]string{
	"FINANCE":             {"budget tracker", "expense manager", "bill reminder", "debt payoff", "savings goal", "invoice maker"},
	"HEALTH_AND_FITNESS":  {"habit tracker", "water reminder", "intermittent fasting", "step counter", "workout log", "sleep tracker"},
	"PRODUCTIVITY":        {"todo list", "pomodoro timer", "note taking", "time tracker", "pdf scanner", "checklist"},
	"EDUCATION":           {"flashcards", "vocabulary builder", "math practice", "study planner", "language flashcards", "quiz maker"},
	"LIFESTYLE":           {"journal app", "gratitude journal", "mood tracker", "daily planner", "affirmations", "period tracker"},
	"TOOLS":               {"qr scanner", "unit converter", "file manager", "battery saver", "flashlight", "calculator"},
	"BUSINESS":            {"invoice generator", "time clock", "crm small business", "receipt scanner", "employee scheduling", "inventory manager"},
	"FOOD_AND_DRINK":      {"meal planner", "recipe keeper", "calorie counter", "grocery list", "diet tracker", "wine journal"},
	"TRAVEL_AND_LOCAL":    {"trip planner", "packing list", "travel journal", "currency converter", "offline maps", "flight tracker"},
	"PHOTOGRAPHY":         {"photo editor", "collage maker", "background remover", "watermark", "photo scanner", "camera filters"},
	"MUSIC_AND_AUDIO":     {"metronome", "guitar tuner", "white noise", "podcast player", "ringtone maker", "voice recorder"},
	"ART_AND_DESIGN":      {"drawing app", "coloring book", "logo maker", "tattoo design", "pixel art", "sketchbook"},
	"AUTO_AND_VEHICLES":   {"car maintenance", "fuel log", "obd2 scanner", "mileage tracker", "parking reminder", "car expenses"},
	"BEAUTY":              {"makeup tutorial", "hairstyle try on", "skin care routine", "nail art", "beauty camera", "face yoga"},
	"BOOKS_AND_REFERENCE": {"reading tracker", "bible study", "dictionary offline", "book notes", "audiobook player", "quotes"},
	"COMICS":              {"comic reader", "manga reader", "comic maker", "webtoon", "meme generator", "cbz reader"},
	"DATING":              {"dating advice", "couples app", "relationship tracker", "date ideas", "love calculator", "anniversary countdown"},
	"EVENTS":              {"event planner", "wedding planner", "countdown timer", "party planner", "rsvp", "ticket scanner"},
	"HOUSE_AND_HOME":      {"home inventory", "chore chart", "plant care", "home design", "moving checklist", "smart home remote"},
	"MAPS_AND_NAVIGATION": {"gps speedometer", "hiking trails", "offline gps", "route planner", "compass", "altimeter"},
	"MEDICAL":             {"pill reminder", "blood pressure log", "symptom tracker", "medical dictionary", "glucose tracker", "first aid"},
	"PARENTING":           {"baby tracker", "breastfeeding log", "baby sleep", "chore tracker kids", "pregnancy tracker", "baby names"},
	"PERSONALIZATION":     {"icon pack", "widget maker", "live wallpaper", "keyboard theme", "launcher", "lock screen"},
	"SPORTS":              {"golf scorecard", "running tracker", "team manager", "scoreboard", "fishing log", "climbing log"},
	"WEATHER":             {"weather radar", "tide times", "pollen forecast", "storm tracker", "uv index", "moon phase"},
	"SHOPPING":            {"price tracker", "shopping list", "coupon organizer", "wishlist", "barcode scanner price", "receipt organizer"},
	"NEWS_AND_MAGAZINES":  {"rss reader", "news aggregator", "local news", "newsletter reader", "podcast news", "magazine reader"},
	"VIDEO_PLAYERS":       {"video editor", "video compressor", "slow motion", "video to mp3", "screen recorder", "subtitle player"},
}

// KeywordsFor returns the search terms for category. Categories without an
// entry get three generated terms.
func KeywordsFor(category string) []string {
	if kw, ok := categoryKeywords[category]; ok {
		out := make([]string, len(kw))
		copy(out, kw)
		return out
	}
	c := strings.ToLower(strings.ReplaceAll(category, "_", " "))
	return []string{c + " app", c + " tracker", "best " + c}
}

func limitKeywords(keywords []string, limit int) []string {
	if limit > 0 && len(keywords) > limit {
		return keywords[:limit]
	}
	return keywords
}
