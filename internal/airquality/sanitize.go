package airquality

import (
	"encoding/json"
	"math"
	"regexp"
	"strconv"
	"strings"
)

// SentinelValue is the device fault code the sensor API writes in place of a reading.
const (
	SentinelValue  = "-9999.0000000"
	sentinelNumber = -9999.0

	StatusValid = "Valid"
)

// plainNumber is the decimal notation the sensor API writes. Go-only syntax
// such as hex floats or digit separators is not accepted.
var plainNumber = regexp.MustCompile(`^[+-]?(\d+\.?\d*|\.\d+)([eE][+-]?\d+)?$`)

var errorStrings = map[string]struct{}{
	"Incomplete": {},
	"N/A":        {},
	"Invalid":    {},
}

// IsErrorValue reports whether raw is one of the API's error strings.
func IsErrorValue(raw any) bool {
	s, ok := raw.(string)
	if !ok {
		return false
	}
	_, ok = errorStrings[s]
	return ok
}

// Sanitize turns a raw field value into a finite number. The boolean is false
// when the value must be treated as absent.
func Sanitize(raw any) (float64, bool) {
	switch v := raw.(type) {
	case nil:
		return 0, false
	case float64:
		return finite(v)
	case float32:
		return finite(float64(v))
	case int:
		return finite(float64(v))
	case int64:
		return finite(float64(v))
	case json.Number:
		return parseNumeric(v.String())
	case string:
		if IsErrorValue(v) {
			return 0, false
		}
		return parseNumeric(v)
	default:
		return 0, false
	}
}

// SanitizeWithStatus applies Sanitize and then suppresses values whose status
// field is present and not "Valid".
func SanitizeWithStatus(raw any, status string) (float64, bool) {
	if status != "" && status != StatusValid {
		return 0, false
	}
	return Sanitize(raw)
}

func parseNumeric(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	if s == "" || s == SentinelValue || !plainNumber.MatchString(s) {
		return 0, false
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return finite(f)
}

func finite(f float64) (float64, bool) {
	if math.IsNaN(f) || math.IsInf(f, 0) || f == sentinelNumber {
		return 0, false
	}
	return f, true
}

// formatValue renders a number the way the dashboard tables show it.
func formatValue(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
