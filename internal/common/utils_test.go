package common

import (
	"reflect"
	"testing"
)

func TestStripNonNumeric(t *testing.T) {
	if got := StripNonNumeric("65.1 µg/m³"); got != "65.1" {
		t.Fatalf("got %q", got)
	}
	if got := StripNonNumeric("< -5°C"); got != "-5" {
		t.Fatalf("got %q", got)
	}
}

func TestLeadingFloat(t *testing.T) {
	tests := []struct {
		in   string
		want float64
		ok   bool
	}{
		{"401", 401, true},
		{"550.1", 550.1, true},
		{"-5", -5, true},
		{".5", 0.5, true},
		{"1.2.3", 1.2, true},
		{"", 0, false},
		{".", 0, false},
	}
	for _, tt := range tests {
		got, ok := LeadingFloat(tt.in)
		if ok != tt.ok || got != tt.want {
			t.Errorf("LeadingFloat(%q) = %v, %v; want %v, %v", tt.in, got, ok, tt.want, tt.ok)
		}
	}
}

func TestSplitList(t *testing.T) {
	if got := SplitList(" a, b ,,c "); !reflect.DeepEqual(got, []string{"a", "b", "c"}) {
		t.Fatalf("got %q", got)
	}
	if got := SplitList(""); len(got) != 0 {
		t.Fatalf("expected empty list, got %q", got)
	}
}
