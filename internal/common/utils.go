package common

import (
	"regexp"
	"strconv"
	"strings"
)

var (
	nonNumeric    = regexp.MustCompile(`[^0-9.\-]`)
	leadingNumber = regexp.MustCompile(`^-?(\d+\.?\d*|\.\d+)`)
)

// StripNonNumeric drops every character except digits, '.' and '-',
// so "65.1 µg/m³" becomes "65.1".
func StripNonNumeric(s string) string {
	return nonNumeric.ReplaceAllString(s, "")
}

// LeadingFloat parses the longest numeric prefix of s.
func LeadingFloat(s string) (float64, bool) {
	m := leadingNumber.FindString(s)
	if m == "" {
		return 0, false
	}
	f, err := strconv.ParseFloat(m, 64)
	if err != nil {
		return 0, false
	}
	return f, true
}

// SplitList splits a comma separated list, trimming blanks and dropping empty items.
func SplitList(s string) []string {
	var out []string
	for _, item := range strings.Split(s, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}
