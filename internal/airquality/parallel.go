package airquality

import (
	"sort"
	"time"
)

const dateLayout = "2006-01-02"

// DateRange bounds a query by calendar date, inclusive on both ends.
// A zero Start or End leaves that side open.
type DateRange struct {
	Start time.Time
	End   time.Time
}

func (d *DateRange) includes(day time.Time) bool {
	if d == nil {
		return true
	}
	if !d.Start.IsZero() && day.Before(dateOnly(d.Start, day.Location())) {
		return false
	}
	if !d.End.IsZero() && day.After(dateOnly(d.End, day.Location())) {
		return false
	}
	return true
}

// dateOnly truncates t to midnight of its calendar date, expressed in loc.
func dateOnly(t time.Time, loc *time.Location) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, loc)
}

// Parallel compares one clock hour across days and stations.
type Parallel struct {
	Pollutant Pollutant `json:"pollutant"`
	Hour      int       `json:"hour"`
	Series    []Series  `json:"series"`
	Table     Table     `json:"table"`
}

// AggregateParallel keeps readings taken at hour (station-local clock), optionally
// restricted to dateRange. Stations without a qualifying point are left out of
// Series but keep an all-empty column in Table.
func AggregateParallel(series []StationSeries, key Pollutant, hour int, dateRange *DateRange) Parallel {
	if hour < 0 {
		hour = 0
	}
	if hour > 23 {
		hour = 23
	}
	p := Parallel{
		Pollutant: key,
		Hour:      hour,
		Series:    []Series{},
	}

	type dayRow struct {
		date   time.Time
		values map[int]float64
	}
	days := map[string]*dayRow{}

	for i, s := range series {
		var points []Point
		for _, r := range s.Readings {
			if !r.HasTime() || r.Timestamp.Hour() != hour {
				continue
			}
			v, ok := r.Value(key)
			if !ok {
				continue
			}
			ts := r.Timestamp
			day := dateOnly(ts, ts.Location())
			if !dateRange.includes(day) {
				continue
			}
			atHour := time.Date(day.Year(), day.Month(), day.Day(), hour, 0, 0, 0, day.Location())
			points = append(points, Point{X: atHour, Y: v})

			k := day.Format(dateLayout)
			row, ok := days[k]
			if !ok {
				row = &dayRow{date: day, values: map[int]float64{}}
				days[k] = row
			}
			row.values[i] = v
		}
		if len(points) == 0 {
			continue
		}
		sort.SliceStable(points, func(a, b int) bool { return points[a].X.Before(points[b].X) })
		p.Series = append(p.Series, Series{ID: s.Station, Name: s.DisplayName(), Points: points})
	}

	headers := []string{"Date"}
	for _, s := range series {
		headers = append(headers, s.DisplayName())
	}
	keys := make([]string, 0, len(days))
	for k := range days {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	p.Table = Table{Headers: headers, Rows: make([][]string, 0, len(keys))}
	for _, k := range keys {
		row := days[k]
		cells := make([]string, 0, len(series)+1)
		cells = append(cells, k)
		for i := range series {
			if v, ok := row.values[i]; ok {
				cells = append(cells, formatValue(v))
			} else {
				cells = append(cells, "")
			}
		}
		p.Table.Rows = append(p.Table.Rows, cells)
	}
	return p
}
