package gacha

import (
	"sync/atomic"

	"github.com/gourmet-gacha/gacha/internal/models"
)

// Store holds the dataset currently served to draws.
// Readers get a consistent snapshot while a reload swaps in a new dataset.
type Store struct {
	current atomic.Pointer[models.Dataset]
}

// NewStore creates an empty store.
func NewStore() *Store {
	return &Store{}
}

// Replace swaps in ds as the current dataset.
func (s *Store) Replace(ds *models.Dataset) {
	s.current.Store(ds)
}

// Snapshot returns the current dataset and whether one has been loaded.
func (s *Store) Snapshot() (*models.Dataset, bool) {
	ds := s.current.Load()
	return ds, ds != nil
}
