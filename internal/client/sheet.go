package client

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/failsafe-go/failsafe-go"
	"github.com/failsafe-go/failsafe-go/circuitbreaker"

	"github.com/gourmet-gacha/gacha/internal/apperrors"
	"github.com/gourmet-gacha/gacha/internal/cache"
	"github.com/gourmet-gacha/gacha/internal/config"
	"github.com/gourmet-gacha/gacha/internal/models"
)

// FetchSheet returns the sheet export, served from the document cache when fresh.
func (c *client) FetchSheet(ctx context.Context) (*models.SheetDocument, error) {
	logger := config.GetLogger()

	if c.cache != nil {
		if doc, ok := cache.GetJSON[*models.SheetDocument](c.cache, c.sheetURL); ok && doc != nil {
			logger.Debug().Str("url", c.sheetURL).Time("fetched_at", doc.FetchedAt).Msg("Sheet served from cache")
			return doc, nil
		}
	}

	return c.RefreshSheet(ctx)
}

// RefreshSheet downloads the sheet export even if a cached copy exists.
func (c *client) RefreshSheet(ctx context.Context) (*models.SheetDocument, error) {
	logger := config.GetLogger()

	doc, err := failsafe.With(c.breaker).WithContext(ctx).Get(func() (*models.SheetDocument, error) {
		return c.download(ctx)
	})
	if err != nil {
		if errors.Is(err, circuitbreaker.ErrOpen) {
			return nil, fmt.Errorf("sheet fetch suspended after repeated failures: %w", err)
		}
		return nil, err
	}

	if c.cache != nil {
		if err := cache.SetJSON(c.cache, c.sheetURL, doc); err != nil {
			logger.Warn().Err(err).Str("url", c.sheetURL).Msg("Failed to cache sheet document")
		}
	}

	return doc, nil
}

// EvictSheet drops the cached export so the next FetchSheet downloads it again.
func (c *client) EvictSheet() {
	if c.cache == nil {
		return
	}
	logger := config.GetLogger()
	c.cache.Delete(c.sheetURL)
	logger.Debug().Str("url", c.sheetURL).Msg("Cached sheet evicted")
}

// download performs a single GET of the export URL.
func (c *client) download(ctx context.Context) (*models.SheetDocument, error) {
	logger := config.GetLogger()
	start := time.Now()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.sheetURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "text/csv, text/plain;q=0.9, */*;q=0.1")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch sheet: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return nil, &apperrors.ErrUpstreamStatus{Code: resp.StatusCode, Status: http.StatusText(resp.StatusCode)}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet body: %w", err)
	}

	logger.Info().
		Str("url", c.sheetURL).
		Int("bytes", len(body)).
		Dur("duration", time.Since(start)).
		Msg("Sheet downloaded")

	return &models.SheetDocument{
		URL:         c.sheetURL,
		ContentType: resp.Header.Get("Content-Type"),
		Body:        body,
		FetchedAt:   time.Now(),
	}, nil
}
