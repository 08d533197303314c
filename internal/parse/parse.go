// Package parse contains tolerant parsers for the loosely typed values
// metadata APIs return. Every parser reports absence instead of failing:
// a missing or garbled field must not abort an otherwise good extraction.
package parse

import (
	"encoding/json"
	"strconv"
	"strings"
	"time"
)

// iso8601Layouts covers the shapes broadcast timestamps show up in: "T" or
// a single space between date and time, timezone as Z, ±hh:mm or absent.
var iso8601Layouts = []string{
	"2006-01-02T15:04:05Z07:00",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05Z07:00",
	"2006-01-02 15:04:05 Z07:00",
	"2006-01-02 15:04:05 -0700",
	"2006-01-02 15:04:05",
}

// ISO8601 parses a timestamp into unix seconds, accepting a space in place
// of the standard "T" separator. Times without a zone are read as UTC.
func ISO8601(s string) (int64, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}
	for _, layout := range iso8601Layouts {
		if t, err := time.ParseInLocation(layout, s, time.UTC); err == nil {
			return t.Unix(), true
		}
	}
	return 0, false
}

// Duration converts "HH:MM:SS", "MM:SS" or plain-seconds strings into
// whole seconds.
func Duration(s string) (int64, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}
	parts := strings.Split(s, ":")
	if len(parts) > 3 {
		return 0, false
	}
	var total int64
	for _, part := range parts {
		n, err := strconv.ParseFloat(strings.TrimSpace(part), 64)
		if err != nil || n < 0 {
			return 0, false
		}
		total = total*60 + int64(n)
	}
	return total, true
}

// IntOrNone converts a decoded JSON value to an int, accepting numbers and
// numeric strings. Anything else is absent, not zero.
func IntOrNone(v any) *int {
	switch n := v.(type) {
	case float64:
		i := int(n)
		return &i
	case int:
		i := n
		return &i
	case json.Number:
		if i, err := n.Int64(); err == nil {
			out := int(i)
			return &out
		}
	case string:
		if i, err := strconv.Atoi(strings.TrimSpace(n)); err == nil {
			return &i
		}
	}
	return nil
}
