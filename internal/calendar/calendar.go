// Package calendar holds the date and time-of-day arithmetic used by lesson
// scheduling. Dates are calendar days normalised to midnight UTC so that
// comparisons never depend on a time zone.
package calendar

import (
	"fmt"
	"time"
)

const hoursPerDay = 24

// Date returns the calendar day y-m-d.
func Date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

// DateOf drops the clock part of t, keeping the calendar day as seen in t's location.
func DateOf(t time.Time) time.Time {
	y, m, d := t.Date()
	return Date(y, m, d)
}

// Today returns the current calendar day for the given clock reading.
func Today(now time.Time) time.Time {
	return DateOf(now)
}

// DaysBetween returns the number of whole days from start to end (negative if end is earlier).
func DaysBetween(start, end time.Time) int {
	return int(DateOf(end).Sub(DateOf(start)).Hours() / hoursPerDay)
}

// DateRangesOverlap reports whether [aStart, aEnd] and [bStart, bEnd] share at least one day.
// Bounds are inclusive: ranges touching at a single day overlap.
func DateRangesOverlap(aStart, aEnd, bStart, bEnd time.Time) bool {
	return !aStart.After(bEnd) && !bStart.After(aEnd)
}

// WithinRange reports whether date lies in [start, end].
func WithinRange(date, start, end time.Time) bool {
	return !date.Before(start) && !date.After(end)
}

// MaxOccurrences returns how many occurrences of a lesson repeating every
// intervalWeeks fit between start and end, counting start itself.
//
// The caller must ensure end is not before start; the result is meaningless otherwise.
func MaxOccurrences(intervalWeeks int, start, end time.Time) int {
	if intervalWeeks < 1 {
		panic(fmt.Sprintf("calendar: interval must be at least one week, got %d", intervalWeeks))
	}
	return 1 + floorDiv(DaysBetween(start, end), intervalWeeks*7)
}

func floorDiv(a, b int) int {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}
