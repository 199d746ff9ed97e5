package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Transfer is an incoming bank payment matched to a booking by invoice number
type Transfer struct {
	ID              int64           `json:"id"`
	Reference       uuid.UUID       `json:"reference"`
	Date            time.Time       `json:"date"`
	Amount          decimal.Decimal `json:"amount"`
	LessonBookingID int64           `json:"lesson_booking_id"`
	CreatedAt       time.Time       `json:"created_at"`

	// Дополнительные поля для удобства (не из БД)
	StudentID int64 `json:"student_id,omitempty"`
}
