package source

import (
	"context"
	"errors"
	"gemscout/internal/models"
)

var ErrNotFound = errors.New("not found in catalog")

// CatalogSourceInterface is the marketplace boundary. Locale is fixed per
// instance. Every call may fail; callers treat failures as per-item misses.
type CatalogSourceInterface interface {
	Search(ctx context.Context, q models.SearchQuery) ([]*models.Listing, error)
	List(ctx context.Context, q models.ListQuery) ([]*models.Listing, error)
	Detail(ctx context.Context, appID string) (*models.Listing, error)
	DeveloperApps(ctx context.Context, developerID string, count int) ([]*models.Listing, error)
	Similar(ctx context.Context, appID string, fullDetail bool) ([]*models.Listing, error)
}
