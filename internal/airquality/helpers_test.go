package airquality

import (
	"testing"
	"time"
)

// at parses a "2006-01-02 15:04" timestamp in UTC.
func at(t *testing.T, s string) time.Time {
	t.Helper()
	ts, err := time.Parse("2006-01-02 15:04", s)
	if err != nil {
		t.Fatalf("bad test timestamp %q: %v", s, err)
	}
	return ts
}

// reading builds a Reading from alternating key/value pairs.
func reading(ts time.Time, kv ...any) Reading {
	r := Reading{Timestamp: ts, Values: map[Pollutant]any{}, Status: map[Pollutant]string{}}
	for i := 0; i+1 < len(kv); i += 2 {
		r.Values[kv[i].(Pollutant)] = kv[i+1]
	}
	return r
}
