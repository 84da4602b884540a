// Package cache stores fetched sheet documents between loads. Values are
// opaque bytes; see GetJSON and SetJSON for the typed helpers the client uses.
package cache

// EvictCallback is called when an entry leaves the cache because of size or age.
// Redis evicts on the server and only reports size evictions.
type EvictCallback func(key string, value []byte)

// Cache is a size-bounded key/value store with per-entry expiry.
type Cache interface {
	// Get returns the value for key and marks it as recently used.
	Get(key string) ([]byte, bool)

	// Set stores value under key, replacing any previous value.
	Set(key string, value []byte)

	// Delete removes key if present.
	Delete(key string)

	// Contains reports whether key is present without touching its recency.
	Contains(key string) bool

	// Len returns the number of live entries.
	Len() int

	// Close releases connections held by the provider.
	Close() error
}
