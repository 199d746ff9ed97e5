package scheduling

import (
	"fmt"
	"time"

	"github.com/Freeeeeet/lesson_scheduler/internal/calendar"
	"github.com/Freeeeeet/lesson_scheduler/internal/model"
)

// Clock returns the current instant.
type Clock func() time.Time

// Candidate holds the booking fields proposed by staff. Nil dates mean
// "use the term's own bounds".
type Candidate struct {
	Term      *model.SchoolTerm
	StartDate *time.Time
	EndDate   *time.Time
	TeacherID int64
	AdminID   *int64
	Day       model.Weekday
	StartTime calendar.TimeOfDay
	Duration  int
	Quantity  int
	Interval  int
}

// BookingValidator runs the booking rule set against a lesson request.
type BookingValidator struct {
	now Clock
}

func NewBookingValidator(now Clock) *BookingValidator {
	if now == nil {
		now = time.Now
	}
	return &BookingValidator{now: now}
}

// Validate checks c against request and the teacher's other bookings. Every
// rule is evaluated; on failure the error is a Violations listing each
// problem against its field and no booking is returned. On success the
// returned booking carries the resolved dates and is ready to persist.
func (v *BookingValidator) Validate(c Candidate, request *model.LessonRequest, otherTeacherBookings []*model.LessonBooking) (*model.LessonBooking, error) {
	var violations Violations
	term := c.Term

	if term == nil {
		violations.Add(FieldSchoolTerm, "A school term must be selected")
		return nil, violations
	}

	start, end := resolveDates(c, term)
	endTime := c.StartTime.AddMinutes(c.Duration)

	if !IsTeacherAvailable(otherTeacherBookings, start, end, c.Day, c.StartTime, endTime) {
		violations.Add(FieldTeacher, "The selected teacher is not available at the given time")
	}

	if start.Before(calendar.Today(v.now())) {
		violations.Add(FieldStartDate, "The lesson start date cannot be in the past")
	}

	if !request.IsDayAllowed(c.Day) {
		violations.Add(FieldRegularDay, "Student is not available on the day selected")
	}

	if c.Quantity > request.QuantityLimit() {
		violations.Add(FieldQuantity, "Cannot book in more lessons than the student has requested")
	}

	if c.Duration > request.DurationLimit() {
		violations.Add(FieldDuration, "Cannot book in longer lessons than the student has requested")
	}

	if !term.Contains(end) {
		violations.Add(FieldEndDate, "Schedule end date must be within term time")
	}

	if !end.After(start) {
		violations.Add(FieldEndDate, "Schedule end date must be greater than start date")
	}

	// MaxLessons is only meaningful for an ordered range
	if c.Interval > 0 && !end.Before(start) {
		maxLessons := term.MaxLessons(c.Interval, &start, &end)
		if c.Quantity > maxLessons {
			violations.Add(FieldQuantity, fmt.Sprintf("With the interval and date range provided, a maximum of %d lessons can be booked", maxLessons))
		}
	}

	if !term.Contains(start) {
		violations.Add(FieldStartDate, "Schedule start date must be within term time")
	}

	if len(violations) > 0 {
		return nil, violations
	}

	booking := &model.LessonBooking{
		LessonRequestID: request.ID,
		TeacherID:       c.TeacherID,
		AdminID:         c.AdminID,
		StartDate:       &start,
		EndDate:         &end,
		StartTime:       c.StartTime,
		Day:             c.Day,
		Duration:        c.Duration,
		Quantity:        c.Quantity,
		Interval:        c.Interval,
		TermID:          term.ID,
		Term:            term,
		Request:         request,
		StudentID:       request.StudentID,
	}
	return booking, nil
}

func resolveDates(c Candidate, term *model.SchoolTerm) (time.Time, time.Time) {
	var start, end time.Time
	if c.StartDate != nil {
		start = calendar.DateOf(*c.StartDate)
	} else {
		start = term.StartDate
	}
	if c.EndDate != nil {
		end = calendar.DateOf(*c.EndDate)
	} else {
		end = term.EndDate
	}
	return start, end
}
