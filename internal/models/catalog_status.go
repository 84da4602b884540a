package models

import "time"

// Load phases reported by CatalogStatus
const (
	LoadPhaseLoading   = "loading"
	LoadPhaseReady     = "ready"
	LoadPhaseLoadError = "load-error"
)

// CatalogStatus describes the dataset currently served to draws
type CatalogStatus struct {
	Phase     string    `json:"phase"`
	Listings  int       `json:"listings"`
	Source    string    `json:"source,omitempty"`
	LoadedAt  time.Time `json:"loadedAt,omitzero"`
	LastError string    `json:"lastError,omitempty"` // user-facing message of the latest failed load
}
