package airquality

import (
	"context"
	"fmt"
	"strconv"
	"time"
)

// WindowKind selects one of the sensor API query shapes.
type WindowKind string

const (
	WindowDaily    WindowKind = "daily"    // last 24 hours
	WindowMonthly  WindowKind = "monthly"  // last 30 days
	WindowPeriodic WindowKind = "periodic" // explicit start/end/interval
)

// Interval presets used by the analytics views, in minutes.
const (
	IntervalHourly = 60
	IntervalDaily  = 1440
)

// Window describes the time span requested from a Source.
type Window struct {
	Kind     WindowKind
	Start    time.Time
	End      time.Time
	Interval int // minutes, periodic only
}

// Daily and Monthly are the preset windows.
var (
	Daily   = Window{Kind: WindowDaily}
	Monthly = Window{Kind: WindowMonthly}
)

// Periodic builds an explicit window.
func Periodic(start, end time.Time, intervalMinutes int) Window {
	return Window{Kind: WindowPeriodic, Start: start, End: end, Interval: intervalMinutes}
}

// Validate checks that a periodic window is complete and ordered.
func (w Window) Validate() error {
	switch w.Kind {
	case WindowDaily, WindowMonthly:
		return nil
	case WindowPeriodic:
		if w.Start.IsZero() || w.End.IsZero() {
			return fmt.Errorf("periodic window requires start and end")
		}
		if w.End.Before(w.Start) {
			return fmt.Errorf("periodic window end %s is before start %s", w.End, w.Start)
		}
		if w.Interval <= 0 {
			return fmt.Errorf("periodic window requires a positive interval")
		}
		return nil
	default:
		return fmt.Errorf("unknown window kind %q", w.Kind)
	}
}

// Cacheable reports whether results for the window may be served from cache.
func (w Window) Cacheable() bool {
	return w.Kind == WindowDaily || w.Kind == WindowMonthly
}

// Key returns a canonical string for indexing the window in caches.
func (w Window) Key() string {
	if w.Kind != WindowPeriodic {
		return string(w.Kind)
	}
	return string(w.Kind) + ":" + w.Start.Format(time.RFC3339) + ":" + w.End.Format(time.RFC3339) + ":" + strconv.Itoa(w.Interval)
}

// AlertRange selects alerts between Start and End. The zero range means the
// recent feed, which the sensor API defines as the last two days.
type AlertRange struct {
	Start time.Time
	End   time.Time
}

// Recent reports whether r asks for the recent feed.
func (r AlertRange) Recent() bool {
	return r.Start.IsZero() && r.End.IsZero()
}

// Validate checks that an explicit range is complete and ordered.
func (r AlertRange) Validate() error {
	if r.Recent() {
		return nil
	}
	if r.Start.IsZero() || r.End.IsZero() {
		return fmt.Errorf("alert range requires start and end")
	}
	if r.End.Before(r.Start) {
		return fmt.Errorf("alert range end %s is before start %s", r.End, r.Start)
	}
	return nil
}

// Source abstracts the remote sensor network API.
// Network failures, non-2xx statuses and error payloads all surface as errors.
type Source interface {
	Fetch(ctx context.Context, station string, window Window) ([]Reading, error)

	// Latest returns the most recent hourly reading of every reporting
	// station, with Reading.Station set.
	Latest(ctx context.Context) ([]Reading, error)

	Alerts(ctx context.Context, r AlertRange) ([]Alert, error)
}

// Cache holds fetched readings for a fixed time-to-live. A missing key is reported as expired.
type Cache interface {
	Get(key string) (readings []Reading, expired bool)
	Set(key string, readings []Reading)
}
