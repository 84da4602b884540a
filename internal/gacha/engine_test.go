package gacha

import (
	"fmt"
	"math/rand/v2"
	"sync"
	"testing"

	"github.com/gourmet-gacha/gacha/internal/models"
)

// reverseSource is a deterministic Source that reverses the pool.
type reverseSource struct{}

func (reverseSource) Shuffle(n int, swap func(i, j int)) {
	for i, j := 0, n-1; i < j; i, j = i+1, j-1 {
		swap(i, j)
	}
}

func numbered(n int, genre string) []models.Listing {
	out := make([]models.Listing, n)
	for i := range out {
		out[i] = models.Listing{Name: fmt.Sprintf("店%02d", i), Genre: genre}
	}
	return out
}

func TestEngine_EmptyQueryDrawsMinOfFive(t *testing.T) {
	e := NewEngine(nil)

	for _, size := range []int{0, 1, 4, 5, 6, 30} {
		t.Run(fmt.Sprintf("size=%d", size), func(t *testing.T) {
			res := e.Draw(numbered(size, "和食"), "")
			if want := min(models.MaxDrawResults, size); len(res.Listings) != want {
				t.Errorf("len = %d, want %d", len(res.Listings), want)
			}
			if res.PoolSize != size {
				t.Errorf("PoolSize = %d, want %d", res.PoolSize, size)
			}
		})
	}
}

func TestEngine_NoMatchIsEmptyResult(t *testing.T) {
	res := NewEngine(nil).Draw(numbered(8, "和食"), "イタリアン")
	if !res.Empty() {
		t.Fatalf("Expected empty result, got %v", res.Listings)
	}
	if res.PoolSize != 0 {
		t.Errorf("PoolSize = %d, want 0", res.PoolSize)
	}
	if res.Query != "イタリアン" {
		t.Errorf("Query = %q", res.Query)
	}
}

func TestEngine_FieldOR(t *testing.T) {
	listings := []models.Listing{
		{Name: "genre hit", Genre: "ラーメン"},
		{Name: "location hit", Genre: "和食", Location: "なら町"},
		{Name: "station hit", Genre: "和食", Station: "近鉄ナラ"},
		{Name: "station2 hit", Genre: "Cafe", Station2: "ナラ駅"},
		{Name: "miss", Genre: "Cafe", Location: "京都"},
	}

	tests := []struct {
		query string
		want  []string
	}{
		{"なら", []string{"location hit", "station hit", "station2 hit"}},
		{"ナラ", []string{"location hit", "station hit", "station2 hit"}},
		{"らーめん", []string{"genre hit"}},
		{"Cafe", []string{"station2 hit", "miss"}},
		{"cafe", nil},
	}

	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			got := Filter(listings, tt.query)
			if len(got) != len(tt.want) {
				t.Fatalf("Filter(%q) = %v, want %v", tt.query, got, tt.want)
			}
			for i, name := range tt.want {
				if got[i].Name != name {
					t.Errorf("Filter(%q)[%d] = %q, want %q", tt.query, i, got[i].Name, name)
				}
			}
		})
	}
}

func TestEngine_Station2OnlyMatch(t *testing.T) {
	listings := []models.Listing{{Name: "喫茶", Genre: "Cafe", Station2: "Nara-eki"}}

	res := NewEngine(nil).Draw(listings, "Nara")
	if len(res.Listings) != 1 || res.Listings[0].Name != "喫茶" {
		t.Fatalf("Expected the station2-only listing, got %v", res.Listings)
	}
}

func TestEngine_FixedSourceSubset(t *testing.T) {
	pool := numbered(12, "ラーメン")
	e := NewEngine(reverseSource{})

	for round := 0; round < 3; round++ {
		res := e.Draw(pool, "らーめん")
		if len(res.Listings) != models.MaxDrawResults {
			t.Fatalf("round %d: len = %d, want %d", round, len(res.Listings), models.MaxDrawResults)
		}

		seen := map[string]bool{}
		for _, l := range res.Listings {
			if seen[l.Name] {
				t.Errorf("round %d: duplicate %q", round, l.Name)
			}
			seen[l.Name] = true
		}

		// Reversed pool: the last five rows, last first.
		for i, l := range res.Listings {
			if want := pool[len(pool)-1-i].Name; l.Name != want {
				t.Errorf("round %d: [%d] = %q, want %q", round, i, l.Name, want)
			}
		}
	}
}

func TestEngine_SeededSourceSubset(t *testing.T) {
	pool := numbered(20, "和食")
	index := map[string]bool{}
	for _, l := range pool {
		index[l.Name] = true
	}

	e := NewEngine(rand.New(rand.NewPCG(1, 2)))
	for round := 0; round < 50; round++ {
		res := e.Draw(pool, "")
		seen := map[string]bool{}
		for _, l := range res.Listings {
			if !index[l.Name] {
				t.Fatalf("round %d: %q is not in the pool", round, l.Name)
			}
			if seen[l.Name] {
				t.Fatalf("round %d: duplicate %q", round, l.Name)
			}
			seen[l.Name] = true
		}
	}
}

func TestEngine_DuplicateRowsAreDistinct(t *testing.T) {
	listings := []models.Listing{
		{Name: "同名", Genre: "和食"},
		{Name: "同名", Genre: "和食"},
	}
	res := NewEngine(reverseSource{}).Draw(listings, "")
	if len(res.Listings) != 2 {
		t.Fatalf("Expected both duplicate rows, got %d", len(res.Listings))
	}
}

func TestEngine_DoesNotMutateInput(t *testing.T) {
	listings := numbered(10, "和食")
	before := make([]models.Listing, len(listings))
	copy(before, listings)

	NewEngine(reverseSource{}).Draw(listings, "")

	for i := range listings {
		if listings[i] != before[i] {
			t.Fatalf("input modified at %d: %v != %v", i, listings[i], before[i])
		}
	}
}

func TestEngine_ResultDoesNotAliasPool(t *testing.T) {
	listings := numbered(3, "和食")
	res := NewEngine(reverseSource{}).Draw(listings, "")
	res.Listings[0].Name = "changed"

	for _, l := range listings {
		if l.Name == "changed" {
			t.Fatal("Result shares memory with the input listings")
		}
	}
}

func TestEngine_ConcurrentDraws(t *testing.T) {
	e := NewEngine(rand.New(rand.NewPCG(7, 7)))
	pool := numbered(40, "和食")

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 50; j++ {
				if res := e.Draw(pool, "わしょく"); len(res.Listings) != 0 {
					t.Errorf("unexpected match for hiragana reading of kanji genre: %v", res.Listings)
					return
				}
				if res := e.Draw(pool, "和食"); len(res.Listings) != models.MaxDrawResults {
					t.Errorf("len = %d, want %d", len(res.Listings), models.MaxDrawResults)
					return
				}
			}
		}()
	}
	wg.Wait()
}
