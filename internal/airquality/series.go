package airquality

import (
	"sort"
)

const dateTimeLayout = "2006-01-02 15:04:05"

// TimeSeries is the plain chronological view of one station.
type TimeSeries struct {
	Pollutants []Pollutant `json:"pollutants"`
	Series     []Series    `json:"series"`
	Table      Table       `json:"table"`
}

// AggregateSeries builds one chart series per key and an export table.
// Chart points go through the sanitizer only; table cells also blank values
// whose status is a fault code. Requesting AQI adds a dominant pollutant column.
func AggregateSeries(readings []Reading, keys []Pollutant) TimeSeries {
	rows := make([]Reading, 0, len(readings))
	for _, r := range readings {
		if r.HasTime() {
			rows = append(rows, r)
		}
	}
	sort.SliceStable(rows, func(i, j int) bool { return rows[i].Timestamp.Before(rows[j].Timestamp) })

	ts := TimeSeries{
		Pollutants: append([]Pollutant{}, keys...),
		Series:     make([]Series, 0, len(keys)),
	}
	for _, k := range keys {
		s := Series{ID: string(k), Name: k.DisplayName(), Points: []Point{}}
		for _, r := range rows {
			if v, ok := r.Value(k); ok {
				s.Points = append(s.Points, Point{X: r.Timestamp, Y: v})
			}
		}
		ts.Series = append(ts.Series, s)
	}

	headers := []string{"Date Time"}
	for _, k := range keys {
		headers = append(headers, k.LabelWithUnit())
		if k == AQI {
			headers = append(headers, "Dominant Pollutant")
		}
	}
	ts.Table = Table{Headers: headers, Rows: make([][]string, 0, len(rows))}
	for _, r := range rows {
		cells := []string{r.Timestamp.Format(dateTimeLayout)}
		for _, k := range keys {
			cell := ""
			if v, ok := r.CheckedValue(k); ok {
				cell = formatValue(v)
			}
			cells = append(cells, cell)
			if k == AQI {
				dominant := ""
				if r.DominantPollutant != "" && r.DominantPollutant != "N/A" {
					dominant = Pollutant(r.DominantPollutant).DisplayName()
				}
				cells = append(cells, dominant)
			}
		}
		ts.Table.Rows = append(ts.Table.Rows, cells)
	}
	return ts
}
