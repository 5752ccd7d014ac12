package airquality

import (
	"fmt"
	"math"
	"strconv"
)

// DirectionMode selects whether wind direction is read as "blowing from" or "blowing toward".
type DirectionMode string

const (
	DirectionFrom DirectionMode = "from"
	DirectionTo   DirectionMode = "to"
)

// DefaultSectorCount is the number of compass wedges used by the rose.
const DefaultSectorCount = 8

// ParseDirectionMode accepts "from" and "to"; empty means from.
func ParseDirectionMode(s string) (DirectionMode, error) {
	switch s {
	case "", string(DirectionFrom):
		return DirectionFrom, nil
	case string(DirectionTo):
		return DirectionTo, nil
	default:
		return "", fmt.Errorf("invalid direction mode %q (allowed: from, to)", s)
	}
}

// Sector assigns a finite degree value to one of sectorCount compass wedges.
// Sector 0 is the wedge labelled North. Callers must drop non-finite degrees.
func Sector(degree float64, sectorCount int, mode DirectionMode) int {
	if sectorCount < 1 {
		sectorCount = DefaultSectorCount
	}
	if mode == DirectionTo {
		degree += 180
	}
	d := math.Mod(degree, 360)
	if d < 0 {
		d += 360
	}
	width := 360 / float64(sectorCount)
	idx := int(math.Floor(d/width)) % sectorCount
	if idx < 0 {
		idx += sectorCount
	}
	return idx
}

// SectorGeometry describes where sector i is drawn, in degrees clockwise from North.
// Assignment by Sector is a plain floor-divide; a renderer that wants North
// centred in wedge 0 rotates every wedge by Offset. Both facts live here only.
type SectorGeometry struct {
	Index  int     `json:"index"`
	Label  string  `json:"label"`
	Start  float64 `json:"startDeg"`
	End    float64 `json:"endDeg"`
	Offset float64 `json:"offsetDeg"`
}

// Geometry returns the drawing geometry for every sector.
func Geometry(sectorCount int) []SectorGeometry {
	if sectorCount < 1 {
		sectorCount = DefaultSectorCount
	}
	width := 360 / float64(sectorCount)
	labels := SectorLabels(sectorCount)
	out := make([]SectorGeometry, sectorCount)
	for i := range out {
		out[i] = SectorGeometry{
			Index:  i,
			Label:  labels[i],
			Start:  float64(i) * width,
			End:    float64(i+1) * width,
			Offset: -width / 2,
		}
	}
	return out
}

var (
	labels4  = []string{"N", "E", "S", "W"}
	labels8  = []string{"N", "NE", "E", "SE", "S", "SW", "W", "NW"}
	labels16 = []string{"N", "NNE", "NE", "ENE", "E", "ESE", "SE", "SSE", "S", "SSW", "SW", "WSW", "W", "WNW", "NW", "NNW"}
)

// SectorLabels names the sectors; counts without compass names get their index.
func SectorLabels(sectorCount int) []string {
	switch sectorCount {
	case 4:
		return append([]string(nil), labels4...)
	case 8:
		return append([]string(nil), labels8...)
	case 16:
		return append([]string(nil), labels16...)
	}
	out := make([]string, sectorCount)
	for i := range out {
		out[i] = strconv.Itoa(i)
	}
	return out
}
