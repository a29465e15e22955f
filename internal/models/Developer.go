package models

import "time"

type Developer struct {
	DeveloperID string    `json:"developerId" gorm:"primaryKey"`
	Name        string    `json:"name"`
	AppCount    int       `json:"appCount"`
	ScrapedAt   time.Time `json:"scrapedAt"`
}

// CacheEntry holds an opaque result blob under an entity id or a composed
// query signature.
type CacheEntry struct {
	Key       string    `json:"key" gorm:"primaryKey"`
	Payload   []byte    `json:"payload"`
	ScrapedAt time.Time `json:"scrapedAt"`
}
