package source

import (
	"gemscout/internal/models"
	"time"
)

// wireListing is the gateway's JSON shape; "updated" is epoch milliseconds.
type wireListing struct {
	AppID       string  `json:"appId"`
	Title       string  `json:"title"`
	Developer   string  `json:"developer"`
	DeveloperID string  `json:"developerId"`
	Score       float64 `json:"score"`
	Ratings     int64   `json:"ratings"`
	Reviews     int64   `json:"reviews"`
	MinInstalls int64   `json:"minInstalls"`
	MaxInstalls int64   `json:"maxInstalls"`
	Price       float64 `json:"price"`
	Currency    string  `json:"currency"`
	Free        bool    `json:"free"`
	OffersIAP   bool    `json:"offersIAP"`
	Genre       string  `json:"genre"`
	GenreID     string  `json:"genreId"`
	Icon        string  `json:"icon"`
	URL         string  `json:"url"`
	Description string  `json:"description"`
	Updated     int64   `json:"updated"`
}

func (w *wireListing) toListing(detailed bool, scrapedAt time.Time) *models.Listing {
	l := &models.Listing{
		AppID:       w.AppID,
		Title:       w.Title,
		Developer:   w.Developer,
		DeveloperID: w.DeveloperID,
		Score:       w.Score,
		Ratings:     w.Ratings,
		Reviews:     w.Reviews,
		MinInstalls: w.MinInstalls,
		MaxInstalls: w.MaxInstalls,
		Price:       w.Price,
		Currency:    w.Currency,
		Free:        w.Free,
		OffersIAP:   w.OffersIAP,
		Genre:       w.Genre,
		GenreID:     w.GenreID,
		Icon:        w.Icon,
		URL:         w.URL,
		Description: w.Description,
		Detailed:    detailed,
		ScrapedAt:   scrapedAt,
	}
	if w.Updated > 0 {
		l.Updated = time.UnixMilli(w.Updated).UTC()
	}
	return l
}

func toListings(in []wireListing, detailed bool, scrapedAt time.Time) []*models.Listing {
	out := make([]*models.Listing, 0, len(in))
	for i := range in {
		if in[i].AppID == "" {
			continue
		}
		out = append(out, in[i].toListing(detailed, scrapedAt))
	}
	return out
}
