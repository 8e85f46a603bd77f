// Package utils provides small, generic helper functions used across
// different layers of the application. These utilities are independent
// of domain or business logic.
package utils

import (
	"strconv"
	"time"
)

// AtoiDefault converts a string to an int using strconv.Atoi.
// If the string is empty or cannot be parsed as an integer,
// it returns the provided default value instead.
func AtoiDefault(s string, def int) int {
	if s == "" {
		return def
	}
	if n, err := strconv.Atoi(s); err == nil {
		return n
	}
	return def
}

// DaysInclusive returns the number of calendar days in the inclusive range
// [start, end], both formatted YYYY-MM-DD. Unparseable input or an end before
// the start yields 0; ranges are not validated upstream, so the debit policy
// must tolerate inverted ones.
func DaysInclusive(start, end string) int {
	const layout = "2006-01-02"
	s, err := time.Parse(layout, start)
	if err != nil {
		return 0
	}
	e, err := time.Parse(layout, end)
	if err != nil {
		return 0
	}
	days := int(e.Sub(s).Hours()/24) + 1
	if days < 0 {
		return 0
	}
	return days
}
