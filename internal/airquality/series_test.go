package airquality

import (
	"reflect"
	"testing"
)

func TestAggregateSeries(t *testing.T) {
	late := reading(at(t, "2024-01-01 01:00"), AQI, 55.0, PM25, 30.0)
	late.DominantPollutant = "PM25"
	late.Status[PM25] = StatusValid

	early := reading(at(t, "2024-01-01 00:00"), AQI, 40.0, PM25, 12.0)
	early.DominantPollutant = "N/A"
	early.Status[PM25] = "Calibration"

	undated := Reading{Values: map[Pollutant]any{AQI: 99.0}}

	ts := AggregateSeries([]Reading{late, undated, early}, []Pollutant{AQI, PM25})

	if len(ts.Series) != 2 {
		t.Fatalf("expected one series per key, got %d", len(ts.Series))
	}
	aqi := ts.Series[0]
	if aqi.ID != "AQI" || len(aqi.Points) != 2 || aqi.Points[0].Y != 40 {
		t.Fatalf("unexpected AQI series: %+v", aqi)
	}
	// Chart points ignore status; only the table blanks faulty values.
	if pm := ts.Series[1]; pm.Name != "PM2.5" || len(pm.Points) != 2 {
		t.Fatalf("unexpected PM2.5 series: %+v", pm)
	}

	wantHeaders := []string{"Date Time", "AQI", "Dominant Pollutant", "PM2.5 (µg/m³)"}
	if !reflect.DeepEqual(ts.Table.Headers, wantHeaders) {
		t.Fatalf("unexpected headers: %v", ts.Table.Headers)
	}
	wantRows := [][]string{
		{"2024-01-01 00:00:00", "40", "", ""},
		{"2024-01-01 01:00:00", "55", "PM2.5", "30"},
	}
	if !reflect.DeepEqual(ts.Table.Rows, wantRows) {
		t.Fatalf("unexpected rows: %v", ts.Table.Rows)
	}
}

func TestAggregateSeriesWithoutAQI(t *testing.T) {
	r := reading(at(t, "2024-01-01 00:00"), Temp, 21.5)
	ts := AggregateSeries([]Reading{r}, []Pollutant{Temp})

	if !reflect.DeepEqual(ts.Table.Headers, []string{"Date Time", "Temp (°C)"}) {
		t.Fatalf("unexpected headers: %v", ts.Table.Headers)
	}
}
