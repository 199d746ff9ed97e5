package scheduling

import (
	"time"

	"github.com/Freeeeeet/lesson_scheduler/internal/calendar"
	"github.com/Freeeeeet/lesson_scheduler/internal/model"
)

func fixedClock(year int, month time.Month, day int) Clock {
	return func() time.Time {
		return time.Date(year, month, day, 15, 4, 5, 0, time.UTC)
	}
}

func datePtr(year int, month time.Month, day int) *time.Time {
	d := calendar.Date(year, month, day)
	return &d
}

// autumnTerm spans exactly ninety days: 2022-09-01 .. 2022-11-30.
func autumnTerm() *model.SchoolTerm {
	start := calendar.Date(2022, 9, 1)
	return &model.SchoolTerm{ID: 1, Label: "Autumn", StartDate: start, EndDate: start.AddDate(0, 0, 90)}
}

func mondayTuesdayRequest() *model.LessonRequest {
	return &model.LessonRequest{
		ID:           10,
		StudentID:    4,
		Duration:     60,
		Quantity:     2,
		Interval:     1,
		Availability: []model.Weekday{model.Monday, model.Tuesday},
	}
}

func mondayCandidate(term *model.SchoolTerm) Candidate {
	return Candidate{
		Term:      term,
		TeacherID: 3,
		Day:       model.Monday,
		StartTime: calendar.Clock(10, 0),
		Duration:  60,
		Quantity:  2,
		Interval:  1,
	}
}

func timeMonth(m int) time.Month {
	return time.Month(m)
}
