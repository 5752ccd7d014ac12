package airquality

import (
	"errors"
	"fmt"
	"strings"

	"github.com/i474232898/air-quality-aggregation/internal/common"
)

// RangeKind is the shape of a band's bounds.
type RangeKind int

const (
	RangeClosed  RangeKind = iota // min <= v <= max
	RangeBelow                    // v < max
	RangeAbove                    // v > min
	RangeAtLeast                  // v >= min
	RangeExact                    // v == min
)

func (k RangeKind) String() string {
	switch k {
	case RangeClosed:
		return "closed"
	case RangeBelow:
		return "lt"
	case RangeAbove:
		return "gt"
	case RangeAtLeast:
		return "gte"
	case RangeExact:
		return "eq"
	default:
		return "unknown"
	}
}

// Range is a parsed band bound. Only the fields relevant to Kind are set.
type Range struct {
	Kind RangeKind
	Min  float64
	Max  float64
}

// Contains reports whether v falls inside the range.
func (r Range) Contains(v float64) bool {
	switch r.Kind {
	case RangeClosed:
		return v >= r.Min && v <= r.Max
	case RangeBelow:
		return v < r.Max
	case RangeAbove:
		return v > r.Min
	case RangeAtLeast:
		return v >= r.Min
	case RangeExact:
		return v == r.Min
	default:
		return false
	}
}

var ErrInvalidRange = errors.New("invalid category range")

// ParseRange converts a legend range string such as "15.1-35 µg/m³", "< 10°C",
// "> 80%" or "401+" into a Range. Unit text is ignored.
func ParseRange(s string) (Range, error) {
	trimmed := strings.TrimSpace(s)
	lead := strings.HasPrefix(trimmed, "<") || strings.HasPrefix(trimmed, ">")

	switch {
	case strings.Contains(trimmed, "-") && !lead:
		parts := strings.Split(trimmed, "-")
		if len(parts) != 2 {
			return Range{}, fmt.Errorf("%w %q: expected min-max", ErrInvalidRange, s)
		}
		lo, okLo := common.LeadingFloat(common.StripNonNumeric(parts[0]))
		hi, okHi := common.LeadingFloat(common.StripNonNumeric(parts[1]))
		if !okLo || !okHi {
			return Range{}, fmt.Errorf("%w %q: bounds are not numeric", ErrInvalidRange, s)
		}
		return Range{Kind: RangeClosed, Min: lo, Max: hi}, nil
	case strings.Contains(trimmed, "<"):
		v, ok := common.LeadingFloat(common.StripNonNumeric(trimmed))
		if !ok {
			return Range{}, fmt.Errorf("%w %q", ErrInvalidRange, s)
		}
		return Range{Kind: RangeBelow, Max: v}, nil
	case strings.Contains(trimmed, "+"):
		v, ok := common.LeadingFloat(common.StripNonNumeric(trimmed))
		if !ok {
			return Range{}, fmt.Errorf("%w %q", ErrInvalidRange, s)
		}
		return Range{Kind: RangeAtLeast, Min: v}, nil
	case strings.Contains(trimmed, ">"):
		v, ok := common.LeadingFloat(common.StripNonNumeric(trimmed))
		if !ok {
			return Range{}, fmt.Errorf("%w %q", ErrInvalidRange, s)
		}
		return Range{Kind: RangeAbove, Min: v}, nil
	}

	// A bare number such as "0 mm" names a single value.
	v, ok := common.LeadingFloat(common.StripNonNumeric(trimmed))
	if !ok {
		return Range{}, fmt.Errorf("%w %q: unrecognised shape", ErrInvalidRange, s)
	}
	return Range{Kind: RangeExact, Min: v}, nil
}

// Band is one named severity range of a pollutant.
type Band struct {
	Name  string `json:"name" yaml:"name"`
	Color string `json:"color" yaml:"color"`
	Label string `json:"range" yaml:"range"`
	Range Range  `json:"-" yaml:"-"`
}

// CategoryTable is an ordered list of bands; order decides ties.
type CategoryTable []Band

// Names returns the band names in table order.
func (t CategoryTable) Names() []string {
	out := make([]string, len(t))
	for i, b := range t {
		out[i] = b.Name
	}
	return out
}

// Classify returns the first band containing value. When nothing matches the
// last band is returned, so values above every bound get the most severe
// category. An empty table classifies nothing.
func Classify(value float64, table CategoryTable) (Band, bool) {
	if len(table) == 0 {
		return Band{}, false
	}
	idx := classifyIndex(value, table)
	return table[idx], true
}

func classifyIndex(value float64, table CategoryTable) int {
	for i, b := range table {
		if b.Range.Contains(value) {
			return i
		}
	}
	return len(table) - 1
}

// Tables is the per-pollutant category configuration.
type Tables map[Pollutant]CategoryTable

// For returns the table for key; a missing key yields an empty table.
func (t Tables) For(key Pollutant) CategoryTable {
	if t == nil {
		return nil
	}
	return t[key]
}

// RawBand is the configuration form of a band before its range is parsed.
type RawBand struct {
	Name  string `yaml:"name" json:"name"`
	Color string `yaml:"color" json:"color"`
	Range string `yaml:"range" json:"range"`
}

// BuildTables parses every range once. Unknown pollutant keys are rejected.
func BuildTables(raw map[string][]RawBand) (Tables, error) {
	out := make(Tables, len(raw))
	for key, bands := range raw {
		p, ok := ParsePollutant(key)
		if !ok {
			return nil, fmt.Errorf("category table for unknown pollutant %q", key)
		}
		table := make(CategoryTable, 0, len(bands))
		for _, rb := range bands {
			r, err := ParseRange(rb.Range)
			if err != nil {
				return nil, fmt.Errorf("pollutant %s band %q: %w", key, rb.Name, err)
			}
			table = append(table, Band{Name: rb.Name, Color: rb.Color, Label: rb.Range, Range: r})
		}
		out[p] = table
	}
	return out, nil
}

// MergeTables returns base with every table from override replacing its counterpart.
func MergeTables(base, override Tables) Tables {
	out := make(Tables, len(base)+len(override))
	for k, v := range base {
		out[k] = v
	}
	for k, v := range override {
		out[k] = v
	}
	return out
}

// NoDataCategory marks calendar cells without a usable value.
const NoDataCategory = "No Data"

