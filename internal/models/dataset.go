package models

import "time"

// Dataset is the ordered collection of listings loaded from one fetch of the sheet.
// It is never mutated after construction; reloads build a new Dataset.
type Dataset struct {
	Listings []Listing `json:"listings"`
	Source   string    `json:"source"`
	LoadedAt time.Time `json:"loadedAt"`
}

// Len returns the number of listings, treating a nil dataset as empty.
func (d *Dataset) Len() int {
	if d == nil {
		return 0
	}
	return len(d.Listings)
}
