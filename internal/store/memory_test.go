package store

import (
	"testing"
	"time"

	"github.com/i474232898/air-quality-aggregation/internal/airquality"
)

func readings(n int) []airquality.Reading {
	return make([]airquality.Reading, n)
}

func TestMemoryCacheExpiry(t *testing.T) {
	now := time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC)
	c := NewMemoryCache(time.Hour, 0)
	c.now = func() time.Time { return now }

	if _, expired := c.Get("missing"); !expired {
		t.Fatalf("expected missing key to be reported as expired")
	}

	c.Set("A|daily", readings(3))
	got, expired := c.Get("A|daily")
	if expired || len(got) != 3 {
		t.Fatalf("expected fresh entry, got expired=%v len=%d", expired, len(got))
	}

	now = now.Add(time.Hour)
	if _, expired := c.Get("A|daily"); expired {
		t.Fatalf("entry exactly at TTL should still be fresh")
	}

	now = now.Add(time.Second)
	got, expired = c.Get("A|daily")
	if !expired {
		t.Fatalf("expected entry older than TTL to be expired")
	}
	if len(got) != 3 {
		t.Fatalf("expected stale readings to still be returned")
	}
}

func TestMemoryCacheRetention(t *testing.T) {
	now := time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC)
	c := NewMemoryCache(time.Hour, 2)
	c.now = func() time.Time { return now }

	c.Set("a", readings(1))
	now = now.Add(time.Minute)
	c.Set("b", readings(1))
	now = now.Add(time.Minute)
	c.Set("c", readings(1))

	if c.Len() != 2 {
		t.Fatalf("expected 2 entries, got %d", c.Len())
	}
	if _, expired := c.Get("a"); !expired {
		t.Fatalf("expected oldest entry to be evicted")
	}

	// Setting an existing key refreshes it without evicting.
	now = now.Add(time.Minute)
	c.Set("b", readings(2))
	if got, _ := c.Get("b"); len(got) != 2 || c.Len() != 2 {
		t.Fatalf("expected b to be replaced in place")
	}

	// Expired entries are dropped on the next write.
	now = now.Add(2 * time.Hour)
	c.Set("d", readings(1))
	if c.Len() != 1 {
		t.Fatalf("expected expired entries to be purged, got %d", c.Len())
	}
}

func TestNewMemoryCacheDefaultTTL(t *testing.T) {
	c := NewMemoryCache(0, 0)
	if c.ttl != DefaultTTL {
		t.Fatalf("expected default ttl, got %v", c.ttl)
	}
}
