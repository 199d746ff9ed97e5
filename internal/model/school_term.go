package model

import (
	"fmt"
	"time"

	"github.com/Freeeeeet/lesson_scheduler/internal/calendar"
)

// SchoolTerm is a named enrolment window. Terms never overlap each other.
type SchoolTerm struct {
	ID        int64     `json:"id"`
	Label     string    `json:"label"`
	StartDate time.Time `json:"start_date"`
	EndDate   time.Time `json:"end_date"`
}

// OverlapsWith reports whether [start, end] shares any day with the term.
func (t *SchoolTerm) OverlapsWith(start, end time.Time) bool {
	return calendar.DateRangesOverlap(t.StartDate, t.EndDate, start, end)
}

// Contains reports whether date falls inside the term, bounds included.
func (t *SchoolTerm) Contains(date time.Time) bool {
	return calendar.WithinRange(date, t.StartDate, t.EndDate)
}

// MaxLessons returns how many lessons every intervalWeeks fit between start and end.
// Nil bounds default to the term's own dates.
func (t *SchoolTerm) MaxLessons(intervalWeeks int, start, end *time.Time) int {
	from, to := t.StartDate, t.EndDate
	if start != nil {
		from = *start
	}
	if end != nil {
		to = *end
	}
	return calendar.MaxOccurrences(intervalWeeks, from, to)
}

func (t *SchoolTerm) String() string {
	return fmt.Sprintf("%s (%s - %s)", t.Label, t.StartDate.Format("02/01/2006"), t.EndDate.Format("02/01/2006"))
}
