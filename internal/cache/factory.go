package cache

import (
	"fmt"
	"slices"
	"sync"
	"time"
)

// ProviderConfig configures a cache provider.
type ProviderConfig struct {
	Size    int           // maximum number of entries
	TTL     time.Duration // per-entry lifetime
	OnEvict EvictCallback // optional
	Logger  Logger        // receives backend errors; nil discards them

	RedisAddress  string
	RedisPassword string
	RedisDB       int

	// Group names the cache in gacha_cache_* metrics. An empty group disables metrics.
	Group string
}

// Provider builds a Cache from its config.
type Provider func(cfg ProviderConfig) (Cache, error)

var (
	providersMu sync.RWMutex
	providers   = make(map[string]Provider)
)

// Register makes a provider available to New. Providers register from init;
// registering a nil provider or a name twice panics.
func Register(name string, p Provider) {
	providersMu.Lock()
	defer providersMu.Unlock()

	if p == nil {
		panic("cache: Register provider is nil")
	}
	if _, exists := providers[name]; exists {
		panic(fmt.Sprintf("cache: provider %q already registered", name))
	}
	providers[name] = p
}

// New builds a cache with the named provider. With a non-empty cfg.Group the
// cache is metered: lookups and evictions are counted and the entry count is
// read from Len at scrape time.
func New(name string, cfg ProviderConfig) (Cache, error) {
	providersMu.RLock()
	p, ok := providers[name]
	providersMu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("cache: unknown provider %q (registered: %v)", name, RegisteredProviders())
	}
	if cfg.Group == "" {
		return p(cfg)
	}

	evictions := EvictionsTotal.WithLabelValues(cfg.Group)
	onEvict := cfg.OnEvict
	cfg.OnEvict = func(key string, value []byte) {
		evictions.Inc()
		if onEvict != nil {
			onEvict(key, value)
		}
	}

	inner, err := p(cfg)
	if err != nil {
		return nil, err
	}
	return newMeteredCache(inner, cfg.Group), nil
}

// RegisteredProviders returns the registered provider names in sorted order.
func RegisteredProviders() []string {
	providersMu.RLock()
	defer providersMu.RUnlock()

	names := make([]string, 0, len(providers))
	for name := range providers {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}
