package model

import (
	"fmt"
	"time"
)

// Durations lists the lesson lengths, in minutes, that can be requested or booked.
var Durations = []int{15, 30, 45, 60}

const (
	MinQuantity = 1
	MaxQuantity = 25
	MinInterval = 1
	MaxInterval = 4
	MaxNotesLen = 1000
)

// RequestStatus is derived from whether a booking exists for the request
type RequestStatus string

const (
	RequestFulfilled   RequestStatus = "Fulfilled"
	RequestUnfulfilled RequestStatus = "Unfulfilled"
)

// LessonRequest is a guardian's standing ask for a recurring series of lessons.
type LessonRequest struct {
	ID                int64     `json:"id"`
	StudentID         int64     `json:"student_id"`
	Duration          int       `json:"duration"` // в минутах
	Quantity          int       `json:"quantity"`
	Interval          int       `json:"interval"` // недель между уроками
	Availability      []Weekday `json:"availability"`
	Notes             string    `json:"notes"`
	PreviousBookingID *int64    `json:"previous_booking_id"`
	CreatedAt         time.Time `json:"created_at"`

	// Заполняется репозиторием, не хранится в lesson_requests
	BookingID *int64 `json:"booking_id,omitempty"`
}

// AvailabilityDays returns the days in the order the guardian selected them.
// Duplicates are kept.
func (r *LessonRequest) AvailabilityDays() []Weekday {
	days := make([]Weekday, len(r.Availability))
	copy(days, r.Availability)
	return days
}

// IsDayAllowed reports whether day appears in the request's availability.
func (r *LessonRequest) IsDayAllowed(day Weekday) bool {
	for _, d := range r.Availability {
		if d == day {
			return true
		}
	}
	return false
}

func (r *LessonRequest) QuantityLimit() int { return r.Quantity }

func (r *LessonRequest) DurationLimit() int { return r.Duration }

func (r *LessonRequest) IntervalLimit() int { return r.Interval }

// IsFulfilled checks whether a booking references this request
func (r *LessonRequest) IsFulfilled() bool {
	return r.BookingID != nil
}

// Status returns Fulfilled once booked, Unfulfilled otherwise.
func (r *LessonRequest) Status() RequestStatus {
	if r.IsFulfilled() {
		return RequestFulfilled
	}
	return RequestUnfulfilled
}

// AvailabilityFormatted renders the availability as "Monday, Tuesday".
func (r *LessonRequest) AvailabilityFormatted() string {
	out := ""
	for i, d := range r.Availability {
		if i > 0 {
			out += ", "
		}
		out += d.Formatted()
	}
	return out
}

// FormatInterval renders an interval in weeks, e.g. "1 week" or "3 weeks".
func FormatInterval(weeks int) string {
	if weeks == 1 {
		return "1 week"
	}
	return fmt.Sprintf("%d weeks", weeks)
}

// FormatDuration renders a lesson length, e.g. "45 minutes".
func FormatDuration(minutes int) string {
	return fmt.Sprintf("%d minutes", minutes)
}
