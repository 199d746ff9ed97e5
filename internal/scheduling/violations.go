// Package scheduling decides whether lesson bookings and school terms are
// consistent with each other. Nothing here touches storage: callers load the
// data, ask for a decision and persist the result themselves.
package scheduling

import (
	"errors"
	"strings"
)

// Field tags used in violations.
const (
	FieldTeacher    = "teacher"
	FieldStartDate  = "start_date"
	FieldEndDate    = "end_date"
	FieldRegularDay = "regular_day"
	FieldQuantity   = "quantity"
	FieldDuration   = "duration"
	FieldSchoolTerm = "school_term"
)

// Violation is a single user-correctable problem attached to an input field.
type Violation struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// Violations is the aggregate rejection returned when validation fails.
type Violations []Violation

func (v Violations) Error() string {
	msgs := make([]string, len(v))
	for i, violation := range v {
		msgs[i] = violation.Field + ": " + violation.Message
	}
	return "validation failed: " + strings.Join(msgs, "; ")
}

// Add appends a violation for field.
func (v *Violations) Add(field, message string) {
	*v = append(*v, Violation{Field: field, Message: message})
}

// Fields returns the tag of every violation in report order.
func (v Violations) Fields() []string {
	fields := make([]string, len(v))
	for i, violation := range v {
		fields[i] = violation.Field
	}
	return fields
}

// For returns the messages reported against field.
func (v Violations) For(field string) []string {
	var msgs []string
	for _, violation := range v {
		if violation.Field == field {
			msgs = append(msgs, violation.Message)
		}
	}
	return msgs
}

// Err returns v as an error, or nil if there is nothing to report.
func (v Violations) Err() error {
	if len(v) == 0 {
		return nil
	}
	return v
}

// AsViolations extracts Violations from err.
func AsViolations(err error) (Violations, bool) {
	var v Violations
	if errors.As(err, &v) {
		return v, true
	}
	return nil, false
}
