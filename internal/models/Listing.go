package models

import "time"

// Listing is one catalog entry keyed by AppID. Records from list and search
// endpoints are often partial; Detailed marks a record that came from a
// full-detail fetch.
type Listing struct {
	AppID       string    `json:"appId" gorm:"primaryKey"`
	Title       string    `json:"title"`
	Developer   string    `json:"developer"`
	DeveloperID string    `json:"developerId,omitempty" gorm:"index"`
	Score       float64   `json:"score"`
	Ratings     int64     `json:"ratings"`
	Reviews     int64     `json:"reviews"`
	MinInstalls int64     `json:"minInstalls"`
	MaxInstalls int64     `json:"maxInstalls"`
	Price       float64   `json:"price"`
	Currency    string    `json:"currency,omitempty"`
	Free        bool      `json:"free"`
	OffersIAP   bool      `json:"offersIAP"`
	Genre       string    `json:"genre"`
	GenreID     string    `json:"genreId" gorm:"index"`
	Icon        string    `json:"icon"`
	URL         string    `json:"url"`
	Description string    `json:"description,omitempty"`
	Updated     time.Time `json:"updated"`
	Detailed    bool      `json:"detailed"`
	ScrapedAt   time.Time `json:"scrapedAt"`
}

// NeedsDetail reports whether the record lacks the install estimate that
// every classifier ranks by.
func (l *Listing) NeedsDetail() bool {
	return l.MinInstalls == 0
}

// IsPaid is true for listings with a non-zero upfront price.
func (l *Listing) IsPaid() bool {
	return !l.Free && l.Price > 0
}

// Enrich fills fields that are empty on l from other. Existing values are
// kept, so a sparse duplicate can only add information.
func (l *Listing) Enrich(other *Listing) {
	if other == nil || other.AppID != l.AppID {
		return
	}
	fillString(&l.Title, other.Title)
	fillString(&l.Developer, other.Developer)
	fillString(&l.DeveloperID, other.DeveloperID)
	fillFloat(&l.Score, other.Score)
	fillInt(&l.Ratings, other.Ratings)
	fillInt(&l.Reviews, other.Reviews)
	fillInt(&l.MinInstalls, other.MinInstalls)
	fillInt(&l.MaxInstalls, other.MaxInstalls)
	fillFloat(&l.Price, other.Price)
	fillString(&l.Currency, other.Currency)
	fillString(&l.Genre, other.Genre)
	fillString(&l.GenreID, other.GenreID)
	fillString(&l.Icon, other.Icon)
	fillString(&l.URL, other.URL)
	fillString(&l.Description, other.Description)
	if l.Updated.IsZero() {
		l.Updated = other.Updated
	}
	// flags from a sparse record are not trustworthy
	if other.Detailed && !l.Detailed {
		l.Free = other.Free
		l.OffersIAP = other.OffersIAP
		l.Detailed = true
	}
	if other.ScrapedAt.After(l.ScrapedAt) {
		l.ScrapedAt = other.ScrapedAt
	}
}

// Overwrite merges an explicitly fetched detail record into l. Non-empty
// detail fields win; empty detail fields never erase what l already has.
func (l *Listing) Overwrite(detail *Listing) {
	if detail == nil || detail.AppID != l.AppID {
		return
	}
	setString(&l.Title, detail.Title)
	setString(&l.Developer, detail.Developer)
	setString(&l.DeveloperID, detail.DeveloperID)
	setFloat(&l.Score, detail.Score)
	setInt(&l.Ratings, detail.Ratings)
	setInt(&l.Reviews, detail.Reviews)
	setInt(&l.MinInstalls, detail.MinInstalls)
	setInt(&l.MaxInstalls, detail.MaxInstalls)
	setFloat(&l.Price, detail.Price)
	setString(&l.Currency, detail.Currency)
	setString(&l.Genre, detail.Genre)
	setString(&l.GenreID, detail.GenreID)
	setString(&l.Icon, detail.Icon)
	setString(&l.URL, detail.URL)
	setString(&l.Description, detail.Description)
	if !detail.Updated.IsZero() {
		l.Updated = detail.Updated
	}
	if detail.Detailed {
		l.Free = detail.Free
		l.OffersIAP = detail.OffersIAP
		l.Detailed = true
	}
	if detail.ScrapedAt.After(l.ScrapedAt) {
		l.ScrapedAt = detail.ScrapedAt
	}
}

func fillString(dst *string, v string) {
	if *dst == "" {
		*dst = v
	}
}

func fillInt(dst *int64, v int64) {
	if *dst == 0 {
		*dst = v
	}
}

func fillFloat(dst *float64, v float64) {
	if *dst == 0 {
		*dst = v
	}
}

func setString(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}

func setInt(dst *int64, v int64) {
	if v != 0 {
		*dst = v
	}
}

func setFloat(dst *float64, v float64) {
	if v != 0 {
		*dst = v
	}
}
