package scheduling

import (
	"time"

	"github.com/Freeeeeet/lesson_scheduler/internal/calendar"
	"github.com/Freeeeeet/lesson_scheduler/internal/model"
)

// IsTeacherAvailable reports whether none of the teacher's existing bookings
// clash with a lesson on day between startTime and endTime, recurring from
// start to end. A clash needs the same weekday, overlapping date ranges and
// overlapping times. When re-validating an edit, leave the edited booking out
// of existing.
func IsTeacherAvailable(existing []*model.LessonBooking, start, end time.Time, day model.Weekday, startTime, endTime calendar.TimeOfDay) bool {
	return findConflict(existing, start, end, day, startTime, endTime) == nil
}

func findConflict(existing []*model.LessonBooking, start, end time.Time, day model.Weekday, startTime, endTime calendar.TimeOfDay) *model.LessonBooking {
	for _, b := range existing {
		if b.Day != day {
			continue
		}
		if !calendar.DateRangesOverlap(start, end, b.EffectiveStartDate(), b.EffectiveEndDate()) {
			continue
		}
		if calendar.TimeRangesOverlap(b.StartTime, b.EndTime(), startTime, endTime) {
			return b
		}
	}
	return nil
}

// ExcludeBooking returns bookings without the one whose id is id.
func ExcludeBooking(bookings []*model.LessonBooking, id int64) []*model.LessonBooking {
	out := make([]*model.LessonBooking, 0, len(bookings))
	for _, b := range bookings {
		if b.ID != id {
			out = append(out, b)
		}
	}
	return out
}
