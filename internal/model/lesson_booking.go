package model

import (
	"fmt"
	"time"

	"github.com/Freeeeeet/lesson_scheduler/internal/calendar"
	"github.com/shopspring/decimal"
)

// LessonBooking is a scheduled recurring series created by staff from exactly one LessonRequest.
type LessonBooking struct {
	ID              int64              `json:"id"`
	LessonRequestID int64              `json:"lesson_request_id"`
	TermID          int64              `json:"term_id"`
	TeacherID       int64              `json:"teacher_id"`
	AdminID         *int64             `json:"admin_id"`   // nil если админ удалён
	StartDate       *time.Time         `json:"start_date"` // nil = начало семестра
	EndDate         *time.Time         `json:"end_date"`   // nil = конец семестра
	StartTime       calendar.TimeOfDay `json:"start_time"`
	Day             Weekday            `json:"day"`
	Duration        int                `json:"duration"`
	Quantity        int                `json:"quantity"`
	Interval        int                `json:"interval"`
	CreatedAt       time.Time          `json:"created_at"`
	UpdatedAt       time.Time          `json:"updated_at"`

	// Дополнительные поля для удобства (не из БД)
	Term      *SchoolTerm    `json:"term,omitempty"`
	Request   *LessonRequest `json:"request,omitempty"`
	StudentID int64          `json:"student_id,omitempty"`
}

// EffectiveStartDate returns the explicit start date or, when absent, the term's start.
func (b *LessonBooking) EffectiveStartDate() time.Time {
	if b.StartDate != nil {
		return *b.StartDate
	}
	return b.Term.StartDate
}

// EffectiveEndDate returns the explicit end date or, when absent, the term's end.
func (b *LessonBooking) EffectiveEndDate() time.Time {
	if b.EndDate != nil {
		return *b.EndDate
	}
	return b.Term.EndDate
}

// EndTime is the start time plus the lesson duration.
func (b *LessonBooking) EndTime() calendar.TimeOfDay {
	return b.StartTime.AddMinutes(b.Duration)
}

// InvoiceNumber builds the payment reference from the zero-padded student and booking ids.
func (b *LessonBooking) InvoiceNumber() string {
	return InvoiceNumber(b.StudentID, b.ID)
}

// TotalPrice is the per-lesson rate multiplied by the number of lessons.
func (b *LessonBooking) TotalPrice(rate decimal.Decimal) decimal.Decimal {
	return rate.Mul(decimal.NewFromInt(int64(b.Quantity)))
}

// InvoiceNumber formats e.g. student 7, booking 12 as "0007-012".
func InvoiceNumber(studentID, bookingID int64) string {
	return fmt.Sprintf("%04d-%03d", studentID, bookingID)
}
