package models

import "time"

// SheetDocument is the raw body of the sheet export as fetched over HTTP
type SheetDocument struct {
	URL         string    `json:"url"`
	ContentType string    `json:"contentType"`
	Body        []byte    `json:"body"`
	FetchedAt   time.Time `json:"fetchedAt"`
}
