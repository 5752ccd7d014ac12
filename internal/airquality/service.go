package airquality

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"sync"
	"time"
)

// Service fetches station readings through a Source and feeds them to the aggregators.
type Service struct {
	source  Source
	cache   Cache
	tables  Tables
	catalog *Catalog
	logger  *slog.Logger
}

// NewService creates a new Service. cache may be nil to disable caching.
func NewService(source Source, cache Cache, tables Tables, catalog *Catalog, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	if tables == nil {
		tables = Tables{}
	}
	return &Service{
		source:  source,
		cache:   cache,
		tables:  tables,
		catalog: catalog,
		logger:  logger,
	}
}

// Tables returns the injected category tables.
func (s *Service) Tables() Tables {
	return s.tables
}

// Catalog returns the station catalogue, which may be nil.
func (s *Service) Catalog() *Catalog {
	return s.catalog
}

// FetchResult is the joined outcome of a multi-station fetch.
type FetchResult struct {
	Series []StationSeries
	Failed []string
}

// FetchStations fetches every station concurrently and waits for all of them.
// A failed station is logged and contributes zero readings; it never aborts the others.
func (s *Service) FetchStations(ctx context.Context, stations []string, window Window) FetchResult {
	var (
		wg     sync.WaitGroup
		mu     sync.Mutex
		failed []string
	)

	series := make([]StationSeries, len(stations))
	for i, st := range stations {
		series[i] = StationSeries{Station: st, Label: s.catalog.Label(st)}

		wg.Add(1)
		go func(i int, st string) {
			defer wg.Done()

			readings, err := s.fetchOne(ctx, st, window)
			if err != nil {
				// Log and continue; partial results are still aggregated.
				s.logger.Warn("station fetch failed", "station", st, "window", window.Key(), "error", err)
				mu.Lock()
				failed = append(failed, st)
				mu.Unlock()
				return
			}
			series[i].Readings = readings
		}(i, st)
	}

	wg.Wait()
	sort.Strings(failed)

	s.logger.Debug("stations fetched", "requested", len(stations), "failed", len(failed), "window", window.Key())
	return FetchResult{Series: series, Failed: failed}
}

func (s *Service) fetchOne(ctx context.Context, station string, window Window) ([]Reading, error) {
	key := station + "|" + window.Key()
	if s.cache != nil && window.Cacheable() {
		if readings, expired := s.cache.Get(key); !expired {
			return readings, nil
		}
	}
	if s.source == nil {
		return nil, fmt.Errorf("no reading source configured")
	}
	readings, err := s.source.Fetch(ctx, station, window)
	if err != nil {
		return nil, err
	}
	if s.cache != nil && window.Cacheable() {
		s.cache.Set(key, readings)
	}
	return readings, nil
}

// Refresh fetches a station bypassing the cache and stores the result.
// The scheduler uses it to keep preset windows warm.
func (s *Service) Refresh(ctx context.Context, station string, window Window) error {
	if s.source == nil {
		return fmt.Errorf("no reading source configured")
	}
	readings, err := s.source.Fetch(ctx, station, window)
	if err != nil {
		return fmt.Errorf("refresh %s %s: %w", station, window.Key(), err)
	}
	if s.cache != nil && window.Cacheable() {
		s.cache.Set(station+"|"+window.Key(), readings)
	}
	return nil
}

// RoseQuery selects the readings and layout of a pollution rose.
type RoseQuery struct {
	Station     string
	Pollutant   Pollutant
	Window      Window
	SectorCount int
	Mode        DirectionMode
}

// RoseResult is a rose plus the stations that could not be fetched.
type RoseResult struct {
	Rose
	Failed []string `json:"failedStations"`
}

// Rose fetches one station and aggregates its pollution rose.
func (s *Service) Rose(ctx context.Context, q RoseQuery) RoseResult {
	res := s.Roses(ctx, RosesQuery{
		Stations:    []string{q.Station},
		Pollutant:   q.Pollutant,
		Window:      q.Window,
		SectorCount: q.SectorCount,
		Mode:        q.Mode,
	})
	return RoseResult{Rose: res.Roses[0].Rose, Failed: res.Failed}
}

// RosesQuery selects the stations of a network-wide rose overlay.
// An empty station list means every catalogue station.
type RosesQuery struct {
	Stations    []string
	Pollutant   Pollutant
	Window      Window
	SectorCount int
	Mode        DirectionMode
}

// StationRose is the rose of a single station.
type StationRose struct {
	Station string `json:"station"`
	Label   string `json:"label"`
	Rose
}

// RosesResult holds one rose per requested station, in request order.
type RosesResult struct {
	Roses  []StationRose `json:"roses"`
	Failed []string      `json:"failedStations"`
}

// Roses fetches every station concurrently and aggregates a rose for each.
func (s *Service) Roses(ctx context.Context, q RosesQuery) RosesResult {
	stations := q.Stations
	if len(stations) == 0 && s.catalog != nil {
		for _, st := range s.catalog.Stations() {
			stations = append(stations, st.ID)
		}
	}

	res := s.FetchStations(ctx, stations, q.Window)
	table := s.tables.For(q.Pollutant)
	out := RosesResult{Roses: make([]StationRose, 0, len(res.Series)), Failed: nonNil(res.Failed)}
	for _, series := range res.Series {
		out.Roses = append(out.Roses, StationRose{
			Station: series.Station,
			Label:   series.DisplayName(),
			Rose: AggregateRose(series.Readings, q.Pollutant, table, RoseOptions{
				SectorCount: q.SectorCount,
				Mode:        q.Mode,
			}),
		})
	}
	return out
}

// HistogramQuery selects stations and bins for a histogram.
type HistogramQuery struct {
	Stations  []string
	Pollutant Pollutant
	Window    Window
	Bins      int
}

// HistogramResult is a histogram plus the stations that could not be fetched.
type HistogramResult struct {
	Histogram
	Failed []string `json:"failedStations"`
}

// Histogram fans out over the stations and bins their values on shared edges.
func (s *Service) Histogram(ctx context.Context, q HistogramQuery) HistogramResult {
	res := s.FetchStations(ctx, q.Stations, q.Window)
	return HistogramResult{
		Histogram: AggregateHistogram(res.Series, q.Pollutant, q.Bins),
		Failed:    nonNil(res.Failed),
	}
}

// ParallelQuery selects stations and the clock hour to compare.
type ParallelQuery struct {
	Stations  []string
	Pollutant Pollutant
	Start     time.Time
	End       time.Time
	Hour      int
}

// ParallelResult is a parallel view plus the stations that could not be fetched.
type ParallelResult struct {
	Parallel
	Failed []string `json:"failedStations"`
}

// Parallel fetches hourly data for the range and compares one clock hour across days.
func (s *Service) Parallel(ctx context.Context, q ParallelQuery) ParallelResult {
	res := s.FetchStations(ctx, q.Stations, Periodic(q.Start, endOfDay(q.End), IntervalHourly))
	return ParallelResult{
		Parallel: AggregateParallel(res.Series, q.Pollutant, q.Hour, &DateRange{Start: q.Start, End: q.End}),
		Failed:   nonNil(res.Failed),
	}
}

// CalendarQuery selects a station and date range for a calendar plot.
type CalendarQuery struct {
	Station   string
	Pollutant Pollutant
	Start     time.Time
	End       time.Time
}

// CalendarResult is a calendar plus the stations that could not be fetched.
type CalendarResult struct {
	Calendar
	Failed []string `json:"failedStations"`
}

// Calendar fetches daily values for the range and groups them by month.
func (s *Service) Calendar(ctx context.Context, q CalendarQuery) CalendarResult {
	res := s.FetchStations(ctx, []string{q.Station}, Periodic(q.Start, endOfDay(q.End), IntervalDaily))
	return CalendarResult{
		Calendar: AggregateCalendar(res.Series[0].Readings, q.Pollutant, s.tables.For(q.Pollutant)),
		Failed:   nonNil(res.Failed),
	}
}

// SeriesQuery selects a station and the keys to chart.
type SeriesQuery struct {
	Station    string
	Pollutants []Pollutant
	Window     Window
}

// SeriesResult is a time series plus the stations that could not be fetched.
type SeriesResult struct {
	TimeSeries
	Failed []string `json:"failedStations"`
}

// Series fetches one station and returns its chart series and export table.
func (s *Service) Series(ctx context.Context, q SeriesQuery) SeriesResult {
	res := s.FetchStations(ctx, []string{q.Station}, q.Window)
	return SeriesResult{
		TimeSeries: AggregateSeries(res.Series[0].Readings, q.Pollutants),
		Failed:     nonNil(res.Failed),
	}
}

const latestCacheKey = "latest_hour"

// SnapshotResult is the latest-hour view of the network.
type SnapshotResult struct {
	Snapshot
}

// Latest returns the latest reading of every station classified for key.
// Unlike the per-station views, a failed upstream call is an error here
// because there is no partial result to show.
func (s *Service) Latest(ctx context.Context, key Pollutant) (SnapshotResult, error) {
	readings, err := s.latestReadings(ctx)
	if err != nil {
		return SnapshotResult{}, err
	}
	var stations []Station
	if s.catalog != nil {
		stations = s.catalog.Stations()
	}
	return SnapshotResult{Snapshot: AggregateSnapshot(stations, readings, key, s.tables.For(key))}, nil
}

func (s *Service) latestReadings(ctx context.Context) ([]Reading, error) {
	if s.cache != nil {
		if readings, expired := s.cache.Get(latestCacheKey); !expired {
			return readings, nil
		}
	}
	if s.source == nil {
		return nil, fmt.Errorf("no reading source configured")
	}
	readings, err := s.source.Latest(ctx)
	if err != nil {
		return nil, fmt.Errorf("latest readings: %w", err)
	}
	if s.cache != nil {
		s.cache.Set(latestCacheKey, readings)
	}
	return readings, nil
}

// RefreshLatest re-fetches the latest-hour snapshot bypassing the cache.
func (s *Service) RefreshLatest(ctx context.Context) error {
	if s.source == nil {
		return fmt.Errorf("no reading source configured")
	}
	readings, err := s.source.Latest(ctx)
	if err != nil {
		return fmt.Errorf("refresh latest readings: %w", err)
	}
	if s.cache != nil {
		s.cache.Set(latestCacheKey, readings)
	}
	return nil
}

// AlertQuery selects an alert range and caps the number of alerts returned.
type AlertQuery struct {
	Range AlertRange
	Limit int
}

// Alerts fetches the alert feed. Alerts are never cached.
func (s *Service) Alerts(ctx context.Context, q AlertQuery) (AlertFeed, error) {
	if err := q.Range.Validate(); err != nil {
		return AlertFeed{}, err
	}
	if s.source == nil {
		return AlertFeed{}, fmt.Errorf("no reading source configured")
	}
	alerts, err := s.source.Alerts(ctx, q.Range)
	if err != nil {
		return AlertFeed{}, fmt.Errorf("alerts: %w", err)
	}
	return BuildAlertFeed(alerts, q.Limit), nil
}

// endOfDay is the last second of t's calendar date. Date-granular views fetch
// through it so rows later on the end date are not cut off upstream.
func endOfDay(t time.Time) time.Time {
	return dateOnly(t, t.Location()).AddDate(0, 0, 1).Add(-time.Second)
}

func nonNil(xs []string) []string {
	if xs == nil {
		return []string{}
	}
	return xs
}
