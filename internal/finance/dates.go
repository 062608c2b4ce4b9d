// Package finance is the analytics and forecasting engine of the tracker.
//
// Every function in this package is a pure transform of its arguments: no
// storage access, no clock reads, no logging. Callers pass the current instant
// explicitly and hand in an immutable snapshot of the ledger and profile.
package finance

import (
	"math"
	"strconv"
	"strings"
	"time"
)

const day = 24 * time.Hour

// ParseDate parses a dd.MM.yyyy ledger date at midnight in loc.
// Malformed input (wrong shape, out-of-range fields, 31.02) reports ok=false;
// callers treat such records as belonging to no month or week.
func ParseDate(s string, loc *time.Location) (time.Time, bool) {
	parts := strings.Split(strings.TrimSpace(s), ".")
	if len(parts) != 3 {
		return time.Time{}, false
	}

	d, errD := strconv.Atoi(parts[0])
	m, errM := strconv.Atoi(parts[1])
	y, errY := strconv.Atoi(parts[2])
	if errD != nil || errM != nil || errY != nil {
		return time.Time{}, false
	}
	if m < 1 || m > 12 || d < 1 || d > 31 || y < 1 {
		return time.Time{}, false
	}

	t := time.Date(y, time.Month(m), d, 0, 0, 0, 0, loc)
	if t.Day() != d {
		return time.Time{}, false
	}
	return t, true
}

// inMonth reports whether the ledger date s falls in the given month.
func inMonth(s string, year int, month time.Month, loc *time.Location) bool {
	t, ok := ParseDate(s, loc)
	return ok && t.Year() == year && t.Month() == month
}

// monthStart returns the first day of the month offset months away from t's month.
func monthStart(t time.Time, offset int) time.Time {
	return time.Date(t.Year(), t.Month()+time.Month(offset), 1, 0, 0, 0, 0, t.Location())
}

// DaysInMonth returns the number of days of the given month.
func DaysInMonth(year int, month time.Month, loc *time.Location) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, loc).Day()
}

// ceilDays converts a duration to whole days, rounding up.
func ceilDays(d time.Duration) int {
	return int(math.Ceil(float64(d) / float64(day)))
}
