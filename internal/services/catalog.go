package services

import (
	"context"
	"time"

	"github.com/gourmet-gacha/gacha/internal/models"
)

// Catalog loads the restaurant sheet and serves draws from it
type Catalog interface {
	// Load fetches and parses the sheet, using the document cache when fresh.
	// A failed load keeps the previously loaded dataset, if any.
	Load(ctx context.Context) error

	// Reload is Load bypassing the document cache.
	Reload(ctx context.Context) error

	// Draw picks up to models.MaxDrawResults listings matching query.
	// It returns apperrors.ErrDatasetNotReady until a load has succeeded.
	Draw(ctx context.Context, query string) (models.DrawResult, error)

	// Status reports the load phase and the size of the current dataset.
	Status() models.CatalogStatus

	// LastError returns the failure of the latest load, or nil after a success.
	LastError() error

	// Dataset returns the current dataset, or nil before the first successful load.
	Dataset() *models.Dataset

	// RunRefresher reloads the sheet every interval until ctx is done.
	RunRefresher(ctx context.Context, interval time.Duration)
}
