// Package gacha holds the draw engine, the current dataset and the
// presentation state shared by every front end.
package gacha

import (
	"math/rand/v2"
	"sync"

	"github.com/gourmet-gacha/gacha/internal/kana"
	"github.com/gourmet-gacha/gacha/internal/models"
)

// Source orders the candidate pool of a draw. *rand.Rand satisfies it.
type Source interface {
	Shuffle(n int, swap func(i, j int))
}

// globalSource uses the process-wide generator, which is randomly seeded.
type globalSource struct{}

func (globalSource) Shuffle(n int, swap func(i, j int)) {
	rand.Shuffle(n, swap)
}

// Engine filters listings by query and picks a random subset of the matches.
type Engine struct {
	mu  sync.Mutex
	src Source
}

// NewEngine creates an engine drawing from src, or from the process-wide
// generator when src is nil.
func NewEngine(src Source) *Engine {
	if src == nil {
		src = globalSource{}
	}
	return &Engine{src: src}
}

// Draw returns up to models.MaxDrawResults listings matching query in random order.
// An empty query draws from every listing. No match yields an empty result.
func (e *Engine) Draw(listings []models.Listing, query string) models.DrawResult {
	pool := Filter(listings, query)

	e.mu.Lock()
	e.src.Shuffle(len(pool), func(i, j int) {
		pool[i], pool[j] = pool[j], pool[i]
	})
	e.mu.Unlock()

	if len(pool) > models.MaxDrawResults {
		picked := make([]models.Listing, models.MaxDrawResults)
		copy(picked, pool)
		return models.DrawResult{Query: query, Listings: picked, PoolSize: len(pool)}
	}
	return models.DrawResult{Query: query, Listings: pool, PoolSize: len(pool)}
}

// Filter returns a new slice holding the listings whose genre, location,
// station or station2 contains query after kana normalization.
// An empty query matches everything. The input slice is never modified.
func Filter(listings []models.Listing, query string) []models.Listing {
	if query == "" {
		pool := make([]models.Listing, len(listings))
		copy(pool, listings)
		return pool
	}

	q := kana.ToHiragana(query)
	pool := make([]models.Listing, 0, len(listings))
	for _, l := range listings {
		if Matches(l, q) {
			pool = append(pool, l)
		}
	}
	return pool
}

// Matches reports whether any searchable field of l contains the normalized query q.
func Matches(l models.Listing, q string) bool {
	for _, field := range [...]string{l.Genre, l.Location, l.Station, l.Station2} {
		if kana.Contains(field, q) {
			return true
		}
	}
	return false
}
