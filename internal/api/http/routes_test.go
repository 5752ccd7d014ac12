package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/i474232898/air-quality-aggregation/internal/airquality"
)

// fakeSource serves canned readings and records the requested windows.
type fakeSource struct {
	mu          sync.Mutex
	windows     []airquality.Window
	alertRanges []airquality.AlertRange
	upstreamErr error
}

func (f *fakeSource) Latest(context.Context) ([]airquality.Reading, error) {
	if f.upstreamErr != nil {
		return nil, f.upstreamErr
	}
	return []airquality.Reading{{
		Station:   airquality.DefaultCatalog().Stations()[0].ID,
		Timestamp: time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC),
		Values: map[airquality.Pollutant]any{
			airquality.AQI:  55.0,
			airquality.PM25: "-9999.0000000",
		},
	}}, nil
}

func (f *fakeSource) Alerts(_ context.Context, r airquality.AlertRange) ([]airquality.Alert, error) {
	f.mu.Lock()
	f.alertRanges = append(f.alertRanges, r)
	f.mu.Unlock()

	if f.upstreamErr != nil {
		return nil, f.upstreamErr
	}
	return []airquality.Alert{
		{Timestamp: time.Date(2024, 1, 1, 8, 0, 0, 0, time.UTC), Message: "PM2.5 above threshold"},
		{Timestamp: time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC), Message: "AQI unhealthy"},
	}, nil
}

func (f *fakeSource) Fetch(_ context.Context, station string, window airquality.Window) ([]airquality.Reading, error) {
	f.mu.Lock()
	f.windows = append(f.windows, window)
	f.mu.Unlock()

	if station == "down" {
		return nil, errors.New("upstream unavailable")
	}
	ts := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	return []airquality.Reading{
		{
			Timestamp: ts,
			Values: map[airquality.Pollutant]any{
				airquality.WD:   10.0,
				airquality.PM25: 20.0,
				airquality.AQI:  55.0,
			},
		},
		{
			Timestamp: ts.AddDate(0, 0, 1),
			Values: map[airquality.Pollutant]any{
				airquality.WD:   100.0,
				airquality.PM25: 60.0,
				airquality.AQI:  130.0,
			},
		},
	}, nil
}

func newTestApp() (*fiber.App, *fakeSource) {
	src := &fakeSource{}
	svc := airquality.NewService(src, nil, airquality.DefaultTables(), airquality.DefaultCatalog(),
		slog.New(slog.NewTextHandler(io.Discard, nil)))
	app := fiber.New()
	RegisterRoutes(app, svc, time.UTC)
	return app, src
}

func doGet(t *testing.T, app *fiber.App, path string, query url.Values) (int, map[string]any) {
	t.Helper()
	target := path
	if len(query) > 0 {
		target += "?" + query.Encode()
	}
	resp, err := app.Test(httptest.NewRequest(http.MethodGet, target, nil), -1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer resp.Body.Close()

	body := map[string]any{}
	if resp.StatusCode == http.StatusOK {
		if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
			t.Fatalf("decode body: %v", err)
		}
	}
	return resp.StatusCode, body
}

func TestStationsEndpoint(t *testing.T) {
	app, _ := newTestApp()

	status, body := doGet(t, app, "/api/v1/stations", nil)
	if status != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, status)
	}
	if stations, ok := body["stations"].([]any); !ok || len(stations) == 0 {
		t.Fatalf("expected stations in body, got %v", body)
	}
}

func TestCategoriesEndpoint(t *testing.T) {
	app, _ := newTestApp()

	status, body := doGet(t, app, "/api/v1/categories/AQI", nil)
	if status != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, status)
	}
	bands, _ := body["bands"].([]any)
	if len(bands) != 7 {
		t.Fatalf("expected 7 AQI bands, got %d", len(bands))
	}
	first := bands[0].(map[string]any)
	if first["name"] != "Good" || first["range"] != "0-50" {
		t.Fatalf("unexpected first band: %v", first)
	}

	if status, _ := doGet(t, app, "/api/v1/categories/XYZ", nil); status != http.StatusBadRequest {
		t.Fatalf("expected status %d for unknown pollutant, got %d", http.StatusBadRequest, status)
	}
}

func TestRoseEndpoint(t *testing.T) {
	app, src := newTestApp()

	status, body := doGet(t, app, "/api/v1/rose", url.Values{
		"station":   {"UET-LHR"},
		"pollutant": {"PM25"},
		"period":    {"monthly"},
	})
	if status != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, status)
	}
	if body["samples"] != float64(2) || body["sectorCount"] != float64(8) {
		t.Fatalf("unexpected rose body: samples=%v sectors=%v", body["samples"], body["sectorCount"])
	}
	if failed, _ := body["failedStations"].([]any); len(failed) != 0 {
		t.Fatalf("expected no failed stations, got %v", failed)
	}
	if src.windows[0].Kind != airquality.WindowMonthly {
		t.Fatalf("expected monthly window, got %s", src.windows[0].Kind)
	}
}

func TestRoseValidation(t *testing.T) {
	app, _ := newTestApp()

	cases := []url.Values{
		{"pollutant": {"PM25"}},
		{"station": {"A"}, "pollutant": {"PM99"}},
		{"station": {"A"}, "pollutant": {"PM25"}, "direction": {"sideways"}},
		{"station": {"A"}, "pollutant": {"PM25"}, "sectors": {"-1"}},
		{"station": {"A"}, "pollutant": {"PM25"}, "period": {"weekly"}},
		{"station": {"A"}, "pollutant": {"PM25"}, "start": {"2024-01-02"}, "end": {"2024-01-01"}},
		{"station": {"A"}, "pollutant": {"PM25"}, "start": {"yesterday"}, "end": {"2024-01-01"}},
	}
	for _, q := range cases {
		if status, _ := doGet(t, app, "/api/v1/rose", q); status != http.StatusBadRequest {
			t.Errorf("query %s: expected status %d, got %d", q.Encode(), http.StatusBadRequest, status)
		}
	}
}

func TestHistogramEndpointReportsFailedStations(t *testing.T) {
	app, src := newTestApp()

	status, body := doGet(t, app, "/api/v1/histogram", url.Values{
		"stations":  {"UET-LHR,down"},
		"pollutant": {"PM25"},
		"bins":      {"4"},
		"start":     {"2024-01-01 00:00"},
		"end":       {"2024-01-03 00:00"},
	})
	if status != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, status)
	}
	failed, _ := body["failedStations"].([]any)
	if len(failed) != 1 || failed[0] != "down" {
		t.Fatalf("expected down to be reported, got %v", failed)
	}
	if labels, _ := body["labels"].([]any); len(labels) != 4 {
		t.Fatalf("expected 4 bins, got %v", body["labels"])
	}

	w := src.windows[0]
	if w.Kind != airquality.WindowPeriodic || w.Interval != airquality.IntervalHourly {
		t.Fatalf("expected hourly periodic window, got %+v", w)
	}
}

func TestParallelEndpoint(t *testing.T) {
	app, _ := newTestApp()

	q := url.Values{
		"stations":  {"UET-LHR"},
		"pollutant": {"AQI"},
		"hour":      {"12"},
		"start":     {"2024-01-01"},
		"end":       {"2024-01-05"},
	}
	status, body := doGet(t, app, "/api/v1/parallel", q)
	if status != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, status)
	}
	series, _ := body["series"].([]any)
	if len(series) != 1 {
		t.Fatalf("expected one series, got %v", body["series"])
	}

	q.Set("hour", "24")
	if status, _ := doGet(t, app, "/api/v1/parallel", q); status != http.StatusBadRequest {
		t.Fatalf("expected status %d for hour 24, got %d", http.StatusBadRequest, status)
	}
	q.Set("hour", "12")
	q.Del("start")
	if status, _ := doGet(t, app, "/api/v1/parallel", q); status != http.StatusBadRequest {
		t.Fatalf("expected status %d without start, got %d", http.StatusBadRequest, status)
	}
}

func TestCalendarEndpoint(t *testing.T) {
	app, src := newTestApp()

	status, body := doGet(t, app, "/api/v1/calendar", url.Values{
		"station":   {"UET-LHR"},
		"pollutant": {"AQI"},
		"start":     {"2024-01-01T00:00:00Z"},
		"end":       {"1706659200"},
	})
	if status != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, status)
	}
	months, _ := body["months"].([]any)
	if len(months) != 1 {
		t.Fatalf("expected one month, got %v", body["months"])
	}
	if src.windows[0].Interval != airquality.IntervalDaily {
		t.Fatalf("expected daily interval, got %d", src.windows[0].Interval)
	}
}

func TestSeriesEndpoint(t *testing.T) {
	app, _ := newTestApp()

	status, body := doGet(t, app, "/api/v1/series", url.Values{
		"station":    {"UET-LHR"},
		"pollutants": {"AQI,PM25"},
	})
	if status != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, status)
	}
	table, _ := body["table"].(map[string]any)
	headers, _ := table["headers"].([]any)
	if len(headers) != 4 || headers[2] != "Dominant Pollutant" {
		t.Fatalf("unexpected headers: %v", headers)
	}

	status, _ = doGet(t, app, "/api/v1/series", url.Values{
		"station":    {"UET-LHR"},
		"pollutants": {"AQI,bogus"},
	})
	if status != http.StatusBadRequest {
		t.Fatalf("expected status %d, got %d", http.StatusBadRequest, status)
	}
}

func TestHistogramEndpointDropsRepeatedStations(t *testing.T) {
	app, src := newTestApp()

	status, body := doGet(t, app, "/api/v1/histogram", url.Values{
		"stations":  {"A, A,B"},
		"pollutant": {"PM25"},
	})
	if status != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, status)
	}
	stations, _ := body["stations"].([]any)
	if len(stations) != 2 || stations[0] != "A" || stations[1] != "B" {
		t.Fatalf("expected each station once in input order, got %v", stations)
	}
	if len(src.windows) != 2 {
		t.Fatalf("expected one fetch per distinct station, got %d", len(src.windows))
	}
	counts, _ := body["counts"].(map[string]any)
	a, _ := counts["A"].([]any)
	total := 0.0
	for _, c := range a {
		total += c.(float64)
	}
	if total != 2 {
		t.Fatalf("expected station A counted once, got %v", a)
	}
}

func TestRosesEndpoint(t *testing.T) {
	app, _ := newTestApp()

	status, body := doGet(t, app, "/api/v1/roses", url.Values{
		"stations":  {"UET-LHR,down,UET-LHR"},
		"pollutant": {"PM25"},
		"sectors":   {"4"},
	})
	if status != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, status)
	}
	roses, _ := body["roses"].([]any)
	if len(roses) != 2 {
		t.Fatalf("expected one rose per distinct station, got %d", len(roses))
	}
	first := roses[0].(map[string]any)
	if first["station"] != "UET-LHR" || first["samples"] != float64(2) || first["sectorCount"] != float64(4) {
		t.Fatalf("unexpected first rose: %v", first)
	}
	if failed, _ := body["failedStations"].([]any); len(failed) != 1 || failed[0] != "down" {
		t.Fatalf("expected down to be reported, got %v", failed)
	}

	status, body = doGet(t, app, "/api/v1/roses", url.Values{"pollutant": {"PM25"}})
	if status != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, status)
	}
	if roses, _ := body["roses"].([]any); len(roses) != len(airquality.DefaultCatalog().Stations()) {
		t.Fatalf("expected a rose per catalogue station, got %d", len(roses))
	}

	if status, _ := doGet(t, app, "/api/v1/roses", url.Values{"pollutant": {"nope"}}); status != http.StatusBadRequest {
		t.Fatalf("expected status %d, got %d", http.StatusBadRequest, status)
	}
}

func TestLatestEndpoint(t *testing.T) {
	app, src := newTestApp()
	catalog := airquality.DefaultCatalog()

	status, body := doGet(t, app, "/api/v1/latest", nil)
	if status != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, status)
	}
	if body["pollutant"] != "AQI" {
		t.Fatalf("expected AQI by default, got %v", body["pollutant"])
	}
	stations, _ := body["stations"].([]any)
	if len(stations) != len(catalog.Stations()) {
		t.Fatalf("expected every catalogue station, got %d", len(stations))
	}
	first := stations[0].(map[string]any)
	if first["id"] != catalog.Stations()[0].ID || first["value"] != float64(55) || first["category"] != "Satisfactory" {
		t.Fatalf("unexpected first station: %v", first)
	}

	_, body = doGet(t, app, "/api/v1/latest", url.Values{"pollutant": {"PM25"}})
	first = body["stations"].([]any)[0].(map[string]any)
	if first["value"] != nil || first["category"] != airquality.NoDataCategory {
		t.Fatalf("expected sentinel PM25 to show as no data, got %v", first)
	}

	if status, _ := doGet(t, app, "/api/v1/latest", url.Values{"pollutant": {"XYZ"}}); status != http.StatusBadRequest {
		t.Fatalf("expected status %d, got %d", http.StatusBadRequest, status)
	}
	src.upstreamErr = errors.New("upstream unavailable")
	if status, _ := doGet(t, app, "/api/v1/latest", nil); status != http.StatusBadGateway {
		t.Fatalf("expected status %d, got %d", http.StatusBadGateway, status)
	}
}

func TestAlertsEndpoint(t *testing.T) {
	app, src := newTestApp()

	status, body := doGet(t, app, "/api/v1/alerts", url.Values{"limit": {"1"}})
	if status != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, status)
	}
	alerts, _ := body["alerts"].([]any)
	if len(alerts) != 1 || alerts[0].(map[string]any)["message"] != "AQI unhealthy" {
		t.Fatalf("expected the newest alert, got %v", alerts)
	}
	if !src.alertRanges[0].Recent() {
		t.Fatalf("expected the recent feed, got %+v", src.alertRanges[0])
	}

	status, _ = doGet(t, app, "/api/v1/alerts", url.Values{"start": {"2024-01-01"}, "end": {"2024-01-03"}})
	if status != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, status)
	}
	if r := src.alertRanges[1]; !r.Start.Equal(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)) || r.Recent() {
		t.Fatalf("expected an explicit range, got %+v", r)
	}

	for _, q := range []url.Values{
		{"start": {"2024-01-01"}},
		{"start": {"2024-01-03"}, "end": {"2024-01-01"}},
		{"limit": {"-1"}},
	} {
		if status, _ := doGet(t, app, "/api/v1/alerts", q); status != http.StatusBadRequest {
			t.Errorf("query %s: expected status %d, got %d", q.Encode(), http.StatusBadRequest, status)
		}
	}

	src.upstreamErr = errors.New("upstream unavailable")
	if status, _ := doGet(t, app, "/api/v1/alerts", nil); status != http.StatusBadGateway {
		t.Fatalf("expected status %d, got %d", http.StatusBadGateway, status)
	}
}

func TestParseTime(t *testing.T) {
	loc := time.FixedZone("PKT", 5*60*60)

	got, err := parseTime("2024-01-01 10:00", loc)
	if err != nil || !got.Equal(time.Date(2024, 1, 1, 10, 0, 0, 0, loc)) {
		t.Fatalf("expected station-local time, got %v %v", got, err)
	}
	got, err = parseTime("2024-01-01T10:00:00Z", loc)
	if err != nil || !got.Equal(time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC)) {
		t.Fatalf("expected RFC3339 to keep its offset, got %v %v", got, err)
	}
	got, err = parseTime("1704103200", loc)
	if err != nil || got.Unix() != 1704103200 {
		t.Fatalf("expected unix seconds, got %v %v", got, err)
	}
	if _, err := parseTime("tomorrow", loc); err == nil {
		t.Fatalf("expected error for invalid time")
	}
}
