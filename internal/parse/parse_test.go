package parse

import (
	"encoding/json"
	"testing"
)

func TestISO8601(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected int64
		ok       bool
	}{
		{"standard with zone", "2015-05-25T18:25:00Z", 1432578300, true},
		{"standard with offset", "2015-05-25T20:25:00+02:00", 1432578300, true},
		{"space separator", "2015-05-25 18:25:00", 1432578300, true},
		{"space separator with offset", "2015-05-25 20:25:00+02:00", 1432578300, true},
		{"space before offset", "2015-05-25 20:25:00 +02:00", 1432578300, true},
		{"no zone read as UTC", "2015-05-25T18:25:00", 1432578300, true},
		{"epoch", "1970-01-01T00:00:00Z", 0, true},
		{"empty", "", 0, false},
		{"garbage", "next tuesday", 0, false},
		{"date only", "2015-05-25", 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ISO8601(tt.input)
			if ok != tt.ok {
				t.Fatalf("ISO8601(%q) ok = %v, want %v", tt.input, ok, tt.ok)
			}
			if ok && got != tt.expected {
				t.Errorf("ISO8601(%q) = %d, want %d", tt.input, got, tt.expected)
			}
		})
	}
}

func TestDuration(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected int64
		ok       bool
	}{
		{"hours minutes seconds", "00:46:26", 2786, true},
		{"long program", "01:02:03", 3723, true},
		{"minutes seconds", "46:26", 2786, true},
		{"plain seconds", "2786", 2786, true},
		{"zero", "0", 0, true},
		{"whitespace", "  00:46:26  ", 2786, true},
		{"empty", "", 0, false},
		{"garbage", "about an hour", 0, false},
		{"too many fields", "1:2:3:4", 0, false},
		{"negative", "-5", 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := Duration(tt.input)
			if ok != tt.ok {
				t.Fatalf("Duration(%q) ok = %v, want %v", tt.input, ok, tt.ok)
			}
			if ok && got != tt.expected {
				t.Errorf("Duration(%q) = %d, want %d", tt.input, got, tt.expected)
			}
		})
	}
}

func TestIntOrNone(t *testing.T) {
	tests := []struct {
		name     string
		input    any
		expected *int
	}{
		{"json number", float64(800), intPtr(800)},
		{"plain int", 544, intPtr(544)},
		{"numeric string", "1500", intPtr(1500)},
		{"padded string", " 64 ", intPtr(64)},
		{"decoder number", json.Number("224"), intPtr(224)},
		{"nil", nil, nil},
		{"word", "fast", nil},
		{"bool", true, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := IntOrNone(tt.input)
			switch {
			case got == nil && tt.expected != nil:
				t.Errorf("IntOrNone(%v) = nil, want %d", tt.input, *tt.expected)
			case got != nil && tt.expected == nil:
				t.Errorf("IntOrNone(%v) = %d, want nil", tt.input, *got)
			case got != nil && *got != *tt.expected:
				t.Errorf("IntOrNone(%v) = %d, want %d", tt.input, *got, *tt.expected)
			}
		})
	}
}

func intPtr(n int) *int { return &n }
