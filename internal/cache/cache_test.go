package cache

import (
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"
)

const testSheetKey = "https://docs.google.com/spreadsheets/d/abc/gviz/tq?tqx=out:csv"

func newMemory(t *testing.T, cfg ProviderConfig) Cache {
	t.Helper()
	c, err := New("memory", cfg)
	if err != nil {
		t.Fatalf("New memory cache: %v", err)
	}
	t.Cleanup(func() { _ = c.Close() })
	return c
}

func TestFactory_UnknownProvider(t *testing.T) {
	if _, err := New("nonexistent", ProviderConfig{}); err == nil {
		t.Fatal("Expected error for unknown provider")
	}
}

func TestFactory_RegisteredProviders(t *testing.T) {
	names := RegisteredProviders()
	want := []string{"memory", "redis"}
	if len(names) != len(want) {
		t.Fatalf("RegisteredProviders() = %v, want %v", names, want)
	}
	for i := range want {
		if names[i] != want[i] {
			t.Errorf("RegisteredProviders()[%d] = %q, want %q", i, names[i], want[i])
		}
	}
}

func TestFactory_RedisUnreachable(t *testing.T) {
	_, err := New("redis", ProviderConfig{Size: 4, TTL: time.Minute, RedisAddress: "localhost:59999"})
	if err == nil {
		t.Fatal("Expected error when connecting to an unreachable Redis")
	}
}

func TestMemoryCache_GetSetOverwrite(t *testing.T) {
	c := newMemory(t, ProviderConfig{Size: 4, TTL: time.Hour})

	if val, ok := c.Get(testSheetKey); ok || val != nil {
		t.Fatalf("Expected miss on empty cache, got %q, %v", val, ok)
	}

	c.Set(testSheetKey, []byte("v1"))
	c.Set(testSheetKey, []byte("v2"))

	val, ok := c.Get(testSheetKey)
	if !ok || string(val) != "v2" {
		t.Fatalf("Get() = %q, %v; want v2, true", val, ok)
	}
	if !c.Contains(testSheetKey) {
		t.Error("Expected Contains to report the stored key")
	}
	if c.Len() != 1 {
		t.Errorf("Len() = %d, want 1", c.Len())
	}
}

func TestMemoryCache_Eviction(t *testing.T) {
	var evicted []string
	c := newMemory(t, ProviderConfig{
		Size:    2,
		TTL:     time.Hour,
		OnEvict: func(key string, _ []byte) { evicted = append(evicted, key) },
	})

	c.Set("sheet-a", []byte("1"))
	c.Set("sheet-b", []byte("2"))
	c.Set("sheet-c", []byte("3"))

	if len(evicted) != 1 || evicted[0] != "sheet-a" {
		t.Fatalf("Expected eviction of sheet-a, got %v", evicted)
	}
	if c.Contains("sheet-a") || !c.Contains("sheet-b") || !c.Contains("sheet-c") {
		t.Error("Expected only the oldest entry to be evicted")
	}
}

func TestMemoryCache_Delete(t *testing.T) {
	c := newMemory(t, ProviderConfig{Size: 4, TTL: time.Hour})

	c.Set(testSheetKey, []byte("doc"))
	c.Delete(testSheetKey)
	c.Delete("absent")

	if _, ok := c.Get(testSheetKey); ok {
		t.Error("Expected deleted entry to be gone")
	}
	if c.Len() != 0 {
		t.Errorf("Len() = %d, want 0", c.Len())
	}
}

func TestMemoryCache_TTLExpiry(t *testing.T) {
	c := newMemory(t, ProviderConfig{Size: 4, TTL: 20 * time.Millisecond})

	c.Set(testSheetKey, []byte("doc"))
	time.Sleep(60 * time.Millisecond)

	if _, ok := c.Get(testSheetKey); ok {
		t.Error("Expected entry to expire after its TTL")
	}
}

type sheetDoc struct {
	URL  string `json:"url"`
	Body []byte `json:"body"`
}

func TestJSON_RoundTrip(t *testing.T) {
	c := newMemory(t, ProviderConfig{Size: 4, TTL: time.Hour})

	in := sheetDoc{URL: testSheetKey, Body: []byte("店名,ジャンル1\n")}
	if err := SetJSON(c, testSheetKey, in); err != nil {
		t.Fatalf("SetJSON: %v", err)
	}

	out, ok := GetJSON[sheetDoc](c, testSheetKey)
	if !ok {
		t.Fatal("Expected GetJSON hit")
	}
	if out.URL != in.URL || string(out.Body) != string(in.Body) {
		t.Errorf("GetJSON() = %+v, want %+v", out, in)
	}
}

func TestJSON_CorruptEntryIsMiss(t *testing.T) {
	c := newMemory(t, ProviderConfig{Size: 4, TTL: time.Hour})
	c.Set(testSheetKey, []byte("{not json"))

	if _, ok := GetJSON[sheetDoc](c, testSheetKey); ok {
		t.Error("Expected undecodable entry to be reported as a miss")
	}
}

func TestZerologLogger_Error(t *testing.T) {
	l := NewZerologLogger(zerolog.Nop())
	l.Error("redis cache Get failed", errors.New("connection refused"))
}
