package cache

import (
	lru "github.com/hashicorp/golang-lru/v2/expirable"
)

func init() {
	Register("memory", newMemoryCache)
}

// memoryCache is the in-process provider and the default for a single instance.
type memoryCache struct {
	*lru.LRU[string, []byte]
}

func newMemoryCache(cfg ProviderConfig) (Cache, error) {
	return &memoryCache{
		LRU: lru.NewLRU(cfg.Size, lru.EvictCallback[string, []byte](cfg.OnEvict), cfg.TTL),
	}, nil
}

func (m *memoryCache) Set(key string, value []byte) { m.Add(key, value) }
func (m *memoryCache) Delete(key string)            { m.Remove(key) }
func (m *memoryCache) Close() error                 { return nil }
