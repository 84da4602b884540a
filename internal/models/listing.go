package models

import "strings"

// Listing represents one restaurant row extracted from the source sheet
type Listing struct {
	Name     string `json:"name"`
	Genre    string `json:"genre"`              // "genre1" or "genre1, genre2"
	Link     string `json:"link,omitempty"`     // Google Maps URL, optional
	Location string `json:"location,omitempty"` // city or area name
	Station  string `json:"station,omitempty"`
	Station2 string `json:"station2,omitempty"`
}

// HasLink reports whether the listing can be opened as an outbound link.
func (l Listing) HasLink() bool {
	return strings.TrimSpace(l.Link) != ""
}

// Place joins location and stations the way result cards display them,
// e.g. "奈良市 / 近鉄奈良 / JR奈良".
func (l Listing) Place() string {
	parts := make([]string, 0, 3)
	for _, p := range []string{l.Location, l.Station, l.Station2} {
		if p != "" {
			parts = append(parts, p)
		}
	}
	return strings.Join(parts, " / ")
}
