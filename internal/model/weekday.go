package model

import (
	"fmt"
	"strings"
	"time"
)

// Weekday is one of the seven day tokens a student can be available on.
type Weekday string

const (
	Monday    Weekday = "MONDAY"
	Tuesday   Weekday = "TUESDAY"
	Wednesday Weekday = "WEDNESDAY"
	Thursday  Weekday = "THURSDAY"
	Friday    Weekday = "FRIDAY"
	Saturday  Weekday = "SATURDAY"
	Sunday    Weekday = "SUNDAY"
)

// Weekdays lists the tokens in calendar order.
var Weekdays = []Weekday{Monday, Tuesday, Wednesday, Thursday, Friday, Saturday, Sunday}

// Valid reports whether d is one of the seven known tokens.
func (d Weekday) Valid() bool {
	for _, w := range Weekdays {
		if d == w {
			return true
		}
	}
	return false
}

// Formatted returns the day capitalised, e.g. "Monday".
func (d Weekday) Formatted() string {
	s := string(d)
	if s == "" {
		return s
	}
	return s[:1] + strings.ToLower(s[1:])
}

// WeekdayOf returns the token for a calendar date.
func WeekdayOf(t time.Time) Weekday {
	// time.Sunday == 0
	return Weekdays[(int(t.Weekday())+6)%7]
}

// ParseWeekday accepts a token in any letter case.
func ParseWeekday(s string) (Weekday, error) {
	d := Weekday(strings.ToUpper(strings.TrimSpace(s)))
	if !d.Valid() {
		return "", fmt.Errorf("unknown weekday %q", s)
	}
	return d, nil
}

// JoinWeekdays renders days as the comma-joined form stored in the database.
func JoinWeekdays(days []Weekday) string {
	parts := make([]string, len(days))
	for i, d := range days {
		parts[i] = string(d)
	}
	return strings.Join(parts, ",")
}

// ParseWeekdays reverses JoinWeekdays, preserving order and duplicates.
func ParseWeekdays(s string) ([]Weekday, error) {
	if strings.TrimSpace(s) == "" {
		return nil, nil
	}
	parts := strings.Split(s, ",")
	days := make([]Weekday, 0, len(parts))
	for _, p := range parts {
		d, err := ParseWeekday(p)
		if err != nil {
			return nil, err
		}
		days = append(days, d)
	}
	return days, nil
}
