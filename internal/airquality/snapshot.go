package airquality

import (
	"sort"
	"time"
)

// StationSnapshot is the latest value of one station, as drawn on the map.
type StationSnapshot struct {
	Station
	Timestamp *time.Time `json:"timestamp"`
	Value     *float64   `json:"value"`
	Category  string     `json:"category"`
	Color     string     `json:"color,omitempty"`
}

// Snapshot is the network-wide latest-hour view of one pollutant.
type Snapshot struct {
	Pollutant Pollutant         `json:"pollutant"`
	Stations  []StationSnapshot `json:"stations"`
	Table     Table             `json:"table"`
}

// AggregateSnapshot joins the station list with the latest readings. Every
// listed station appears, NoDataCategory marking those without a usable value;
// reporting stations missing from the list are appended by id.
func AggregateSnapshot(stations []Station, latest []Reading, key Pollutant, table CategoryTable) Snapshot {
	byStation := map[string]Reading{}
	for _, r := range latest {
		if r.Station == "" || !r.HasTime() {
			continue
		}
		if prev, ok := byStation[r.Station]; ok && !r.Timestamp.After(prev.Timestamp) {
			continue
		}
		byStation[r.Station] = r
	}

	listed := make(map[string]bool, len(stations))
	all := append([]Station{}, stations...)
	for _, st := range stations {
		listed[st.ID] = true
	}
	var extra []string
	for id := range byStation {
		if !listed[id] {
			extra = append(extra, id)
		}
	}
	sort.Strings(extra)
	for _, id := range extra {
		all = append(all, Station{ID: id, Label: id})
	}

	snap := Snapshot{
		Pollutant: key,
		Stations:  make([]StationSnapshot, 0, len(all)),
		Table: Table{
			Headers: []string{"Station", "City", "Date Time", key.LabelWithUnit(), "Category"},
			Rows:    make([][]string, 0, len(all)),
		},
	}
	for _, st := range all {
		entry := StationSnapshot{Station: st, Category: NoDataCategory}
		dateCell, valueCell := "", ""
		if r, ok := byStation[st.ID]; ok {
			ts := r.Timestamp
			entry.Timestamp = &ts
			dateCell = ts.Format(dateTimeLayout)
			if v, ok := r.Value(key); ok {
				entry.Value = &v
				entry.Category = ""
				valueCell = formatValue(v)
				if band, ok := Classify(v, table); ok {
					entry.Category = band.Name
					entry.Color = band.Color
				}
			}
		}
		snap.Stations = append(snap.Stations, entry)
		snap.Table.Rows = append(snap.Table.Rows, []string{st.Label, st.City, dateCell, valueCell, entry.Category})
	}
	return snap
}
