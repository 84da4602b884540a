package gacha

import (
	"testing"

	"github.com/gourmet-gacha/gacha/internal/models"
)

func TestStore_SnapshotReplace(t *testing.T) {
	s := NewStore()

	if ds, ok := s.Snapshot(); ok || ds != nil {
		t.Fatalf("Expected empty store, got %v, %v", ds, ok)
	}

	first := &models.Dataset{Listings: numbered(2, "和食")}
	s.Replace(first)
	if ds, ok := s.Snapshot(); !ok || ds != first {
		t.Fatalf("Snapshot() = %v, %v; want first dataset", ds, ok)
	}

	second := &models.Dataset{}
	s.Replace(second)
	ds, ok := s.Snapshot()
	if !ok || ds != second {
		t.Fatalf("Snapshot() = %v, %v; want second dataset", ds, ok)
	}
	if ds.Len() != 0 {
		t.Errorf("Len() = %d, want 0", ds.Len())
	}

	// The earlier snapshot is unaffected by the swap.
	if first.Len() != 2 {
		t.Errorf("first.Len() = %d, want 2", first.Len())
	}
}
