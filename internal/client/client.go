package client

import (
	"context"
	"net/http"
	"net/url"
	"time"

	"github.com/failsafe-go/failsafe-go/circuitbreaker"

	"github.com/gourmet-gacha/gacha/internal/cache"
	"github.com/gourmet-gacha/gacha/internal/config"
	"github.com/gourmet-gacha/gacha/internal/models"
)

// cacheGroup labels the sheet document cache in Prometheus metrics.
const cacheGroup = "sheet"

// Client defines the interface for fetching the restaurant sheet export
type Client interface {
	// FetchSheet returns the sheet export, served from the document cache when fresh.
	FetchSheet(ctx context.Context) (*models.SheetDocument, error)

	// RefreshSheet downloads the sheet export even if a cached copy exists,
	// and replaces the cached copy on success.
	RefreshSheet(ctx context.Context) (*models.SheetDocument, error)

	// EvictSheet drops the cached export. Callers use it when a fetched
	// document is rejected so it is not served again from the cache.
	EvictSheet()

	// SheetURL returns the export URL this client reads.
	SheetURL() string

	// Close releases any resources held by the client (e.g., cache connections).
	Close() error
}

// client implements the Client interface
type client struct {
	httpClient *http.Client
	sheetURL   string
	cache      cache.Cache // nil when caching is disabled
	breaker    circuitbreaker.CircuitBreaker[*models.SheetDocument]
}

// NewClient creates a new client instance with proxy and cache configuration if provided
func NewClient(cfg *config.Config) Client {
	logger := config.GetLogger()

	// Clone DefaultTransport to preserve all its settings (timeouts, connection pooling, HTTP/2, etc.)
	baseTransport := http.DefaultTransport.(*http.Transport).Clone()

	if cfg.ProxyConnectionString != "" {
		proxyURL, err := url.Parse(cfg.ProxyConnectionString)
		if err != nil {
			// Log error but continue without proxy
			logger.Warn().Err(err).Str("proxy", cfg.ProxyConnectionString).Msg("Invalid proxy URL, continuing without proxy")
		} else {
			baseTransport.Proxy = http.ProxyURL(proxyURL)
		}
	}

	userAgent := cfg.UserAgent
	if userAgent == "" {
		userAgent = config.GetUserAgent()
	}

	httpClient := &http.Client{
		Timeout:   cfg.ClientTimeoutDuration(),
		Transport: newSheetTransport(baseTransport, userAgent),
	}

	return &client{
		httpClient: httpClient,
		sheetURL:   cfg.SheetCSVURL(),
		cache:      newDocumentCache(cfg),
		breaker:    newBreaker(),
	}
}

// newBreaker stops hitting the sheet after three consecutive failed fetches
// and lets a single trial request through once a minute.
func newBreaker() circuitbreaker.CircuitBreaker[*models.SheetDocument] {
	return circuitbreaker.NewBuilder[*models.SheetDocument]().
		WithFailureThreshold(3).
		WithDelay(time.Minute).
		Build()
}

// newDocumentCache builds the configured cache provider. A provider that cannot
// be created (e.g. Redis unreachable) disables caching instead of failing startup.
func newDocumentCache(cfg *config.Config) cache.Cache {
	logger := config.GetLogger()

	provider := cfg.Cache.Provider
	if provider == "" {
		provider = "memory"
	}
	if provider == "none" {
		return nil
	}

	size := cfg.Cache.Size
	if size <= 0 {
		size = 16
	}

	c, err := cache.New(provider, cache.ProviderConfig{
		Size:          size,
		TTL:           cfg.CacheTTL(),
		Logger:        cache.NewZerologLogger(logger),
		RedisAddress:  cfg.Cache.Redis.Address,
		RedisPassword: cfg.Cache.Redis.Password,
		RedisDB:       cfg.Cache.Redis.DB,
		Group:         cacheGroup,
	})
	if err != nil {
		logger.Warn().Err(err).Str("provider", provider).Msg("Sheet cache unavailable, continuing without cache")
		return nil
	}
	return c
}

// SheetURL returns the export URL this client reads.
func (c *client) SheetURL() string {
	return c.sheetURL
}

// Close releases any resources held by the client, such as cache connections.
func (c *client) Close() error {
	if c.cache == nil {
		return nil
	}
	return c.cache.Close()
}
