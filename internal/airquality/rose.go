package airquality

import (
	"math"
	"strconv"
)

// CategoryShare is one legend entry of a rose.
type CategoryShare struct {
	Name    string `json:"name"`
	Count   int    `json:"count"`
	Percent int    `json:"percent"`
}

// Rose is the per-sector category distribution of a pollutant.
type Rose struct {
	Pollutant   Pollutant       `json:"pollutant"`
	SectorCount int             `json:"sectorCount"`
	Mode        DirectionMode   `json:"mode"`
	Categories  []string        `json:"categories"`
	Sectors     []SectorDetail  `json:"sectors"`
	PerSector   [][]int         `json:"perSector"`
	PerCategory []CategoryShare `json:"perCategory"`
	Samples     int             `json:"samples"`
	Table       Table           `json:"table"`
}

// SectorDetail carries raw counts next to the drawing geometry of a sector.
type SectorDetail struct {
	SectorGeometry
	Total  int   `json:"total"`
	Counts []int `json:"counts"`
}

// RoseOptions controls AggregateRose. Zero values select the defaults.
type RoseOptions struct {
	SectorCount int
	Mode        DirectionMode

	// SectorCorrection and LegendCorrection default to CorrectToLargest and
	// DistributeByRank respectively.
	SectorCorrection PercentCorrection
	LegendCorrection PercentCorrection
}

// AggregateRose bins readings by wind direction and classifies key against table.
// Readings without a usable timestamp, direction, value or category are skipped.
func AggregateRose(readings []Reading, key Pollutant, table CategoryTable, opts RoseOptions) Rose {
	n := opts.SectorCount
	if n < 1 {
		n = DefaultSectorCount
	}
	mode := opts.Mode
	if mode == "" {
		mode = DirectionFrom
	}
	sectorFix := opts.SectorCorrection
	if sectorFix == nil {
		sectorFix = CorrectToLargest
	}
	legendFix := opts.LegendCorrection
	if legendFix == nil {
		legendFix = DistributeByRank
	}

	counts := make([][]int, n)
	for i := range counts {
		counts[i] = make([]int, len(table))
	}
	totals := make([]int, len(table))
	samples := 0

	for _, r := range readings {
		if !r.HasTime() || len(table) == 0 {
			continue
		}
		wd, ok := r.Value(WD)
		if !ok || math.IsNaN(wd) {
			continue
		}
		v, ok := r.Value(key)
		if !ok {
			continue
		}
		s := Sector(wd, n, mode)
		c := classifyIndex(v, table)
		counts[s][c]++
		totals[c]++
		samples++
	}

	geometry := Geometry(n)
	names := table.Names()
	rose := Rose{
		Pollutant:   key,
		SectorCount: n,
		Mode:        mode,
		Categories:  names,
		Sectors:     make([]SectorDetail, n),
		PerSector:   make([][]int, n),
		PerCategory: make([]CategoryShare, len(table)),
		Samples:     samples,
	}
	for i := 0; i < n; i++ {
		rose.PerSector[i] = sectorFix(counts[i])
		rose.Sectors[i] = SectorDetail{
			SectorGeometry: geometry[i],
			Total:          sumInts(counts[i]),
			Counts:         counts[i],
		}
	}
	legend := legendFix(totals)
	for i, name := range names {
		rose.PerCategory[i] = CategoryShare{Name: name, Count: totals[i], Percent: legend[i]}
	}
	rose.Table = roseTable(geometry, names, rose.PerSector)
	return rose
}

func roseTable(geometry []SectorGeometry, names []string, perSector [][]int) Table {
	t := Table{
		Headers: append([]string{"Direction"}, names...),
		Rows:    make([][]string, len(perSector)),
	}
	for i, percs := range perSector {
		row := make([]string, 0, len(percs)+1)
		row = append(row, geometry[i].Label)
		for _, p := range percs {
			row = append(row, strconv.Itoa(p)+"%")
		}
		t.Rows[i] = row
	}
	return t
}
