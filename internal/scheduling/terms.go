package scheduling

import (
	"sort"
	"time"

	"github.com/Freeeeeet/lesson_scheduler/internal/calendar"
	"github.com/Freeeeeet/lesson_scheduler/internal/model"
)

// AlmostNextTermDays is how close to the end of the current term the next
// term becomes the default for new bookings.
const AlmostNextTermDays = 14

// CheckForClash validates a term's bounds against the other registered terms.
// When updating, others must not contain the term being edited.
func CheckForClash(start, end time.Time, others []*model.SchoolTerm) error {
	var violations Violations

	if !start.Before(end) {
		violations.Add(FieldStartDate, "A term's start date has to be before its end date")
	}

	for _, term := range others {
		if term.OverlapsWith(start, end) {
			violations.Add(FieldStartDate, "The date range you selected clashes with another term")
			break
		}
	}

	return violations.Err()
}

// ExcludeTerm returns terms without the one whose id is id.
func ExcludeTerm(terms []*model.SchoolTerm, id int64) []*model.SchoolTerm {
	out := make([]*model.SchoolTerm, 0, len(terms))
	for _, t := range terms {
		if t.ID != id {
			out = append(out, t)
		}
	}
	return out
}

// CurrentTerm returns the term containing today, or nil.
func CurrentTerm(terms []*model.SchoolTerm, today time.Time) *model.SchoolTerm {
	today = calendar.DateOf(today)
	for _, t := range terms {
		if t.Contains(today) {
			return t
		}
	}
	return nil
}

// NextTerm returns the term following the current one, or the first term
// starting after today when no term is running.
func NextTerm(terms []*model.SchoolTerm, today time.Time) *model.SchoolTerm {
	if len(terms) == 0 {
		return nil
	}
	today = calendar.DateOf(today)

	sorted := make([]*model.SchoolTerm, len(terms))
	copy(sorted, terms)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].StartDate.Before(sorted[j].StartDate)
	})

	if current := CurrentTerm(sorted, today); current != nil {
		for i, t := range sorted {
			if t.ID == current.ID {
				if i == len(sorted)-1 {
					return nil
				}
				return sorted[i+1]
			}
		}
	}

	for _, t := range sorted {
		if today.Before(t.StartDate) {
			return t
		}
	}
	return nil
}

// DefaultTerm picks the term staff are most likely booking into: the current
// term, unless it ends within AlmostNextTermDays and a next term exists.
func DefaultTerm(terms []*model.SchoolTerm, today time.Time) *model.SchoolTerm {
	current := CurrentTerm(terms, today)
	next := NextTerm(terms, today)

	switch {
	case current != nil && next != nil:
		if calendar.DaysBetween(today, current.EndDate) <= AlmostNextTermDays {
			return next
		}
		return current
	case current != nil:
		return current
	default:
		return next
	}
}
