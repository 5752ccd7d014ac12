package airquality

import (
	"time"
)

// Pollutant is a measurement key as it appears in sensor API rows.
type Pollutant string

const (
	AQI  Pollutant = "AQI"
	O3   Pollutant = "O3"
	CO   Pollutant = "CO"
	SO2  Pollutant = "SO2"
	NO   Pollutant = "NO"
	NO2  Pollutant = "NO2"
	NOX  Pollutant = "NOX"
	PM10 Pollutant = "PM10"
	PM25 Pollutant = "PM25"
	WS   Pollutant = "WS"
	WD   Pollutant = "WD"
	Temp Pollutant = "Temp"
	RH   Pollutant = "RH"
	BP   Pollutant = "BP"
	Rain Pollutant = "Rain"
	SR   Pollutant = "SR"
)

// Pollutants lists every known key in display order.
var Pollutants = []Pollutant{AQI, O3, CO, SO2, NO, NO2, NOX, PM10, PM25, WS, WD, Temp, RH, BP, Rain, SR}

var units = map[Pollutant]string{
	AQI:  "AQI",
	O3:   "µg/m³",
	CO:   "mg/m³",
	SO2:  "µg/m³",
	NO:   "µg/m³",
	NO2:  "µg/m³",
	NOX:  "µg/m³",
	PM10: "µg/m³",
	PM25: "µg/m³",
	WS:   "m/s",
	WD:   "Deg",
	Temp: "°C",
	RH:   "%",
	BP:   "hPa",
	Rain: "mm",
	SR:   "W/m²",
}

// ParsePollutant returns the known key matching s.
func ParsePollutant(s string) (Pollutant, bool) {
	for _, p := range Pollutants {
		if string(p) == s {
			return p, true
		}
	}
	return "", false
}

// Unit returns the measurement unit, or "" for unknown keys.
func (p Pollutant) Unit() string {
	return units[p]
}

// DisplayName is the user-facing name of the key.
func (p Pollutant) DisplayName() string {
	if p == PM25 {
		return "PM2.5"
	}
	return string(p)
}

// LabelWithUnit is used for table headers, e.g. "PM2.5 (µg/m³)". AQI has no unit suffix.
func (p Pollutant) LabelWithUnit() string {
	u := p.Unit()
	if u == "" || u == "AQI" {
		return p.DisplayName()
	}
	return p.DisplayName() + " (" + u + ")"
}

// Reading is one timestamped multi-pollutant sample from a station.
// A zero Timestamp means the source timestamp could not be parsed.
type Reading struct {
	// Station is only set by sources that return several stations in one payload.
	Station string

	Timestamp time.Time
	Values    map[Pollutant]any
	Status    map[Pollutant]string

	// DominantPollutant is only meaningful when AQI is present.
	DominantPollutant string
}

// HasTime reports whether the reading can take part in aggregation.
func (r Reading) HasTime() bool {
	return !r.Timestamp.IsZero()
}

// Value returns the sanitized value for key.
func (r Reading) Value(key Pollutant) (float64, bool) {
	return Sanitize(r.Values[key])
}

// CheckedValue is like Value but also honours the per-key validity status.
func (r Reading) CheckedValue(key Pollutant) (float64, bool) {
	return SanitizeWithStatus(r.Values[key], r.Status[key])
}

// StationSeries holds the readings fetched for one station.
type StationSeries struct {
	Station  string    `json:"station"`
	Label    string    `json:"label,omitempty"`
	Readings []Reading `json:"-"`
}

// DisplayName is the label used in chart legends and table headers.
func (s StationSeries) DisplayName() string {
	if s.Label != "" {
		return s.Label
	}
	return s.Station
}

// Table is a display-ready tabular result.
type Table struct {
	Headers []string   `json:"headers"`
	Rows    [][]string `json:"rows"`
}

func emptyTable() Table {
	return Table{Headers: []string{}, Rows: [][]string{}}
}

// Point is one chart sample.
type Point struct {
	X time.Time `json:"x"`
	Y float64   `json:"y"`
}

// Series is a named, ordered list of points.
type Series struct {
	ID     string  `json:"id"`
	Name   string  `json:"name"`
	Points []Point `json:"points"`
}
