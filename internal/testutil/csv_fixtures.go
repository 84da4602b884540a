package testutil

import (
	"fmt"
	"strings"

	"github.com/gourmet-gacha/gacha/internal/models"
)

// JapaneseHeader is the column layout of the original sheet.
var JapaneseHeader = []string{"店名", "ジャンル", "ジャンル2", "マップ", "地名", "駅名", "駅名2"}

// BilingualHeader is the later column layout with English keys.
var BilingualHeader = []string{"name(店名)", "genre1", "genre2", "link(Gmap)", "location(市)", "station1(駅)", "station2(駅)"}

// ListingRowOptions contains options for generating a sheet row
type ListingRowOptions struct {
	Name     string
	Genre1   string
	Genre2   string
	Link     string
	Location string
	Station  string
	Station2 string
}

// GenerateSheetCSV generates a CSV export with the given header and rows in the
// column order of JapaneseHeader / BilingualHeader. Every cell is quoted, as in
// the gviz CSV export.
func GenerateSheetCSV(header []string, rows []ListingRowOptions) string {
	var sb strings.Builder

	sb.WriteString(joinCSV(header))
	sb.WriteString("\n")

	for _, row := range rows {
		sb.WriteString(joinCSV([]string{
			row.Name, row.Genre1, row.Genre2, row.Link, row.Location, row.Station, row.Station2,
		}))
		sb.WriteString("\n")
	}

	return sb.String()
}

// SampleListings returns n distinct listings named "店1".."店n" with the given genre.
func SampleListings(n int, genre string) []models.Listing {
	listings := make([]models.Listing, n)
	for i := range listings {
		listings[i] = models.Listing{
			Name:     fmt.Sprintf("店%d", i+1),
			Genre:    genre,
			Location: "奈良市",
		}
	}
	return listings
}

func joinCSV(cells []string) string {
	quoted := make([]string, len(cells))
	for i, c := range cells {
		quoted[i] = `"` + c + `"`
	}
	return strings.Join(quoted, ",")
}
