package parser

import (
	"bytes"
	"fmt"
	"io"

	"github.com/gourmet-gacha/gacha/internal/apperrors"
	"github.com/gourmet-gacha/gacha/internal/config"
	"github.com/gourmet-gacha/gacha/internal/models"
)

// ListingParser implements the Parser interface for the restaurant sheet export
type ListingParser struct{}

// NewListingParser creates a new listing parser instance
func NewListingParser() *ListingParser {
	return &ListingParser{}
}

// Parse reads the CSV export and returns one listing per data row that has a name.
// The first non-blank line is the header; later lines are mapped onto it by position.
func (p *ListingParser) Parse(body io.Reader, contentType string) ([]models.Listing, error) {
	logger := config.GetLogger()

	raw, err := io.ReadAll(body)
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet: %w", err)
	}
	if len(raw) == 0 {
		return nil, &apperrors.ErrEmptySheet{}
	}

	reader, err := NewUTF8Reader(bytes.NewReader(raw), contentType)
	if err != nil {
		return nil, fmt.Errorf("failed to decode sheet: %w", err)
	}
	decoded, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("failed to decode sheet: %w", err)
	}
	text := string(decoded)

	if looksLikeHTML(text, contentType) {
		title := htmlTitle(text)
		logger.Warn().Str("title", title).Msg("Sheet export returned an HTML page")
		return nil, &apperrors.ErrSheetNotPublished{Title: title}
	}

	lines := splitLines(text)
	if len(lines) < 2 {
		return nil, &apperrors.ErrEmptySheet{Lines: len(lines)}
	}

	header := ParseLine(lines[0])
	logger.Debug().Strs("header", header).Int("rows", len(lines)-1).Msg("Parsing sheet rows")

	listings := make([]models.Listing, 0, len(lines)-1)
	skipped := 0
	for _, line := range lines[1:] {
		listing := listingFromRecord(newRecord(header, ParseLine(line)))
		if trim(listing.Name) == "" {
			skipped++
			continue
		}
		listings = append(listings, listing)
	}

	logger.Debug().Int("listings", len(listings)).Int("skipped", skipped).Msg("Completed sheet parsing")
	return listings, nil
}

func listingFromRecord(rec record) models.Listing {
	genre := rec.get(FieldGenre1)
	if genre2 := rec.get(FieldGenre2); genre2 != "" {
		genre = genre + ", " + genre2
	}

	return models.Listing{
		Name:     rec.get(FieldName),
		Genre:    genre,
		Link:     rec.get(FieldLink),
		Location: rec.get(FieldLocation),
		Station:  rec.get(FieldStation),
		Station2: rec.get(FieldStation2),
	}
}
