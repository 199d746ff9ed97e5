package service

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"time"

	"github.com/Freeeeeet/lesson_scheduler/internal/calendar"
	"github.com/Freeeeeet/lesson_scheduler/internal/model"
	"github.com/Freeeeeet/lesson_scheduler/internal/scheduling"
	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

// RequestInput данные формы запроса уроков
type RequestInput struct {
	StudentID    int64           `json:"student_id" validate:"required"`
	Duration     int             `json:"duration" validate:"oneof=15 30 45 60"`
	Quantity     int             `json:"quantity" validate:"min=1,max=25"`
	Interval     int             `json:"interval" validate:"min=1,max=4"`
	Availability []model.Weekday `json:"availability" validate:"min=1,unique,dive,weekday"`
	Notes        string          `json:"notes" validate:"max=1000"`
}

// BookingInput данные формы бронирования. Пустые даты означают границы семестра.
type BookingInput struct {
	TermID    int64              `json:"school_term" validate:"required"`
	StartDate *time.Time         `json:"start_date"`
	EndDate   *time.Time         `json:"end_date"`
	TeacherID int64              `json:"teacher" validate:"required"`
	Day       model.Weekday      `json:"regular_day" validate:"weekday"`
	StartTime calendar.TimeOfDay `json:"regular_start_time" validate:"min=0,max=1439"`
	Duration  int                `json:"duration" validate:"oneof=15 30 45 60"`
	Quantity  int                `json:"quantity" validate:"min=1,max=25"`
	Interval  int                `json:"interval" validate:"min=1,max=4"`
}

// TermInput данные формы семестра
type TermInput struct {
	Label     string    `json:"label" validate:"required,max=50"`
	StartDate time.Time `json:"start_date" validate:"required"`
	EndDate   time.Time `json:"end_date" validate:"required"`
}

// TransferInput данные формы банковского перевода
type TransferInput struct {
	InvoiceNumber string          `json:"invoice_ref_no" validate:"required,max=10"`
	Date          time.Time       `json:"date" validate:"required"`
	Amount        decimal.Decimal `json:"balance"`
}

const transferAmountPlaces = 2

var (
	minTransferAmount = decimal.RequireFromString("0.01")
	maxTransferAmount = decimal.NewFromInt(1_000_000)
)

// newValidator настраивает validator: поля называются по json-тегам,
// "weekday" проверяет токен дня недели
func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "" || name == "-" {
			return f.Name
		}
		return name
	})
	_ = v.RegisterValidation("weekday", func(fl validator.FieldLevel) bool {
		return model.Weekday(fl.Field().String()).Valid()
	})
	return v
}

// validateInput переводит ошибки validator в Violations
func validateInput(v *validator.Validate, in any) scheduling.Violations {
	err := v.Struct(in)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return scheduling.Violations{{Field: "form", Message: err.Error()}}
	}

	var violations scheduling.Violations
	for _, fe := range fieldErrs {
		violations.Add(fieldName(fe), messageFor(fe))
	}
	return violations
}

// fieldName отбрасывает индекс элемента: availability[1] -> availability
func fieldName(fe validator.FieldError) string {
	name, _, _ := strings.Cut(fe.Field(), "[")
	return name
}

func messageFor(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "This field is required"
	case "oneof":
		return fmt.Sprintf("Must be one of: %s", strings.ReplaceAll(fe.Param(), " ", ", "))
	case "min":
		if fe.Kind() == reflect.Slice {
			return fmt.Sprintf("Select at least %s", fe.Param())
		}
		return fmt.Sprintf("Must be at least %s", fe.Param())
	case "max":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("Must be at most %s characters", fe.Param())
		}
		return fmt.Sprintf("Must be at most %s", fe.Param())
	case "unique":
		return "Each value may only be selected once"
	case "weekday":
		return "Select a valid day of the week"
	default:
		return fmt.Sprintf("Invalid value (%s)", fe.Tag())
	}
}
