package models

// MaxDrawResults is the largest number of listings a single draw returns
const MaxDrawResults = 5

// DrawResult holds the listings picked by one draw
type DrawResult struct {
	Query    string    `json:"query"`
	Listings []Listing `json:"listings"`
	PoolSize int       `json:"poolSize"` // number of listings that matched the query
}

// Empty reports whether the draw found nothing.
func (r DrawResult) Empty() bool {
	return len(r.Listings) == 0
}
