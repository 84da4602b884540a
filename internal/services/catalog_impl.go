package services

import (
	"bytes"
	"context"
	"errors"
	"sync"
	"time"

	"github.com/getsentry/sentry-go"

	"github.com/gourmet-gacha/gacha/internal/apperrors"
	"github.com/gourmet-gacha/gacha/internal/client"
	"github.com/gourmet-gacha/gacha/internal/config"
	"github.com/gourmet-gacha/gacha/internal/gacha"
	"github.com/gourmet-gacha/gacha/internal/metrics"
	"github.com/gourmet-gacha/gacha/internal/models"
	"github.com/gourmet-gacha/gacha/internal/parser"
)

// DefaultCatalog implements Catalog on top of the sheet client, the listing
// parser and the draw engine
type DefaultCatalog struct {
	client client.Client
	parser parser.Parser[models.Listing]
	engine *gacha.Engine
	store  *gacha.Store

	loadMu  sync.Mutex // serializes Load and Reload
	errMu   sync.RWMutex
	lastErr error
}

// NewCatalog creates a catalog. A nil engine draws from the process-wide random source.
func NewCatalog(c client.Client, p parser.Parser[models.Listing], engine *gacha.Engine) *DefaultCatalog {
	if engine == nil {
		engine = gacha.NewEngine(nil)
	}
	return &DefaultCatalog{
		client: c,
		parser: p,
		engine: engine,
		store:  gacha.NewStore(),
	}
}

// Load fetches and parses the sheet, using the document cache when fresh.
func (c *DefaultCatalog) Load(ctx context.Context) error {
	return c.load(ctx, c.client.FetchSheet)
}

// Reload fetches and parses the sheet, bypassing the document cache.
func (c *DefaultCatalog) Reload(ctx context.Context) error {
	return c.load(ctx, c.client.RefreshSheet)
}

func (c *DefaultCatalog) load(ctx context.Context, fetch func(context.Context) (*models.SheetDocument, error)) error {
	logger := config.GetLogger()

	c.loadMu.Lock()
	defer c.loadMu.Unlock()

	start := time.Now()
	ds, err := c.fetchDataset(ctx, fetch)
	if err != nil {
		metrics.SheetLoadsTotal.WithLabelValues(metrics.StatusError).Inc()
		sentry.CaptureException(err)
		c.setLastErr(err)

		logger.Error().Err(err).Str("url", c.client.SheetURL()).Msg("Failed to load sheet")
		return err
	}

	c.store.Replace(ds)
	c.setLastErr(nil)
	metrics.SheetLoadsTotal.WithLabelValues(metrics.StatusSuccess).Inc()
	metrics.ListingsLoaded.Set(float64(ds.Len()))

	logger.Info().
		Int("listings", ds.Len()).
		Str("url", ds.Source).
		Dur("duration", time.Since(start)).
		Msg("Sheet loaded")
	return nil
}

func (c *DefaultCatalog) fetchDataset(ctx context.Context, fetch func(context.Context) (*models.SheetDocument, error)) (*models.Dataset, error) {
	doc, err := fetch(ctx)
	if err != nil {
		return nil, err
	}

	// parser errors are shown to users as is
	listings, err := c.parser.Parse(bytes.NewReader(doc.Body), doc.ContentType)
	if err != nil {
		c.client.EvictSheet()
		return nil, err
	}

	return &models.Dataset{
		Listings: listings,
		Source:   doc.URL,
		LoadedAt: time.Now(),
	}, nil
}

// Draw picks up to models.MaxDrawResults listings matching query.
func (c *DefaultCatalog) Draw(ctx context.Context, query string) (models.DrawResult, error) {
	if err := ctx.Err(); err != nil {
		return models.DrawResult{}, err
	}

	ds, ok := c.store.Snapshot()
	if !ok {
		metrics.DrawsTotal.WithLabelValues(metrics.OutcomeNotReady).Inc()
		return models.DrawResult{}, apperrors.NewDatasetNotReadyError(c.LastError())
	}

	logger := config.GetLogger()
	result := c.engine.Draw(ds.Listings, query)
	metrics.ObserveDraw(result.PoolSize, len(result.Listings))

	logger.Debug().
		Str("query", query).
		Int("pool", result.PoolSize).
		Int("picked", len(result.Listings)).
		Msg("Draw completed")
	return result, nil
}

// Status reports the load phase and the size of the current dataset.
func (c *DefaultCatalog) Status() models.CatalogStatus {
	ds, loaded := c.store.Snapshot()
	lastErr := c.LastError()

	status := models.CatalogStatus{
		Phase:     models.LoadPhaseLoading,
		LastError: apperrors.UserMessage(lastErr),
	}
	switch {
	case loaded:
		status.Phase = models.LoadPhaseReady
		status.Listings = ds.Len()
		status.Source = ds.Source
		status.LoadedAt = ds.LoadedAt
	case lastErr != nil:
		status.Phase = models.LoadPhaseLoadError
	}
	return status
}

// Dataset returns the current dataset, or nil before the first successful load.
func (c *DefaultCatalog) Dataset() *models.Dataset {
	ds, _ := c.store.Snapshot()
	return ds
}

// RunRefresher reloads the sheet every interval until ctx is done.
// A non-positive interval returns immediately.
func (c *DefaultCatalog) RunRefresher(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		return
	}
	logger := config.GetLogger()
	logger.Info().Dur("interval", interval).Msg("Sheet refresher started")

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			logger.Info().Msg("Sheet refresher stopped")
			return
		case <-ticker.C:
			if err := c.Reload(ctx); err != nil && !errors.Is(err, context.Canceled) {
				logger.Warn().Err(err).Msg("Scheduled sheet reload failed, keeping current dataset")
			}
		}
	}
}

func (c *DefaultCatalog) setLastErr(err error) {
	c.errMu.Lock()
	c.lastErr = err
	c.errMu.Unlock()
}

// LastError returns the failure of the latest load, or nil after a success.
func (c *DefaultCatalog) LastError() error {
	c.errMu.RLock()
	defer c.errMu.RUnlock()
	return c.lastErr
}
