package airquality

import (
	"fmt"
	"math"
	"strconv"
)

// DefaultBinCount is used when the caller does not ask for a bin count.
const DefaultBinCount = 20

// Histogram holds per-station counts over bins shared by every station.
type Histogram struct {
	Pollutant Pollutant        `json:"pollutant"`
	Edges     []float64        `json:"edges"`
	Labels    []string         `json:"labels"`
	Counts    map[string][]int `json:"counts"`
	Stations  []string         `json:"stations"`
	Table     Table            `json:"table"`
}

// AggregateHistogram computes one set of bin edges from the global min and max
// over all stations, so station histograms compare bin for bin.
func AggregateHistogram(series []StationSeries, key Pollutant, binCount int) Histogram {
	if binCount < 1 {
		binCount = DefaultBinCount
	}
	h := Histogram{
		Pollutant: key,
		Edges:     []float64{},
		Labels:    []string{},
		Counts:    map[string][]int{},
		Stations:  make([]string, 0, len(series)),
		Table:     emptyTable(),
	}

	lo, hi := math.Inf(1), math.Inf(-1)
	seen := make(map[string]bool, len(series))
	kept := make([]StationSeries, 0, len(series))
	values := make([][]float64, 0, len(series))
	for _, s := range series {
		// A repeated station would share one Counts entry; keep the first.
		if seen[s.Station] {
			continue
		}
		seen[s.Station] = true
		kept = append(kept, s)
		h.Stations = append(h.Stations, s.Station)

		var vs []float64
		for _, r := range s.Readings {
			if !r.HasTime() {
				continue
			}
			v, ok := r.Value(key)
			if !ok {
				continue
			}
			vs = append(vs, v)
			lo = math.Min(lo, v)
			hi = math.Max(hi, v)
		}
		values = append(values, vs)
	}
	series = kept
	if math.IsInf(lo, 1) {
		return h
	}
	if lo == hi {
		hi = lo + 1
		if hi == lo {
			// +1 is below the float spacing at this magnitude.
			step := math.Abs(lo) * 1e-9
			if hi = lo + step; math.IsInf(hi, 0) {
				hi, lo = lo, lo-step
			}
		}
	}

	// Scale before subtracting so that hi-lo cannot overflow.
	n := float64(binCount)
	width := hi/n - lo/n
	if math.IsInf(width, 0) || math.IsNaN(width) || width <= 0 {
		return h
	}
	h.Edges = make([]float64, binCount+1)
	for i := range h.Edges {
		f := float64(i) / n
		h.Edges[i] = lo*(1-f) + hi*f
	}
	h.Edges[0], h.Edges[binCount] = lo, hi
	h.Labels = make([]string, binCount)
	for i := range h.Labels {
		h.Labels[i] = fmt.Sprintf("%.2f – %.2f", h.Edges[i], h.Edges[i+1])
	}

	for i, s := range series {
		counts := make([]int, binCount)
		for _, v := range values[i] {
			idx := int(math.Floor(v/width - lo/width))
			if idx < 0 {
				idx = 0
			}
			if idx >= binCount {
				idx = binCount - 1
			}
			counts[idx]++
		}
		h.Counts[s.Station] = counts
	}

	h.Table = Table{
		Headers: []string{"Bin"},
		Rows:    make([][]string, binCount),
	}
	for _, s := range series {
		h.Table.Headers = append(h.Table.Headers, s.DisplayName())
	}
	for b, label := range h.Labels {
		row := make([]string, 0, len(series)+1)
		row = append(row, label)
		for _, st := range h.Stations {
			row = append(row, strconv.Itoa(h.Counts[st][b]))
		}
		h.Table.Rows[b] = row
	}
	return h
}
