package cache

import "github.com/prometheus/client_golang/prometheus"

// meteredCache counts lookups and exposes the entry count of inner under group.
type meteredCache struct {
	inner Cache
	group string
	hits  prometheus.Counter
	miss  prometheus.Counter
}

func newMeteredCache(inner Cache, group string) *meteredCache {
	registerEntries(group, inner.Len)
	return &meteredCache{
		inner: inner,
		group: group,
		hits:  LookupsTotal.WithLabelValues(group, lookupHit),
		miss:  LookupsTotal.WithLabelValues(group, lookupMiss),
	}
}

func (c *meteredCache) Get(key string) ([]byte, bool) {
	val, ok := c.inner.Get(key)
	if ok {
		c.hits.Inc()
	} else {
		c.miss.Inc()
	}
	return val, ok
}

func (c *meteredCache) Set(key string, value []byte) { c.inner.Set(key, value) }
func (c *meteredCache) Delete(key string)            { c.inner.Delete(key) }
func (c *meteredCache) Contains(key string) bool     { return c.inner.Contains(key) }
func (c *meteredCache) Len() int                     { return c.inner.Len() }

func (c *meteredCache) Close() error {
	unregisterEntries(c.group)
	return c.inner.Close()
}
