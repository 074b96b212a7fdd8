// Package calendar provides civil date handling and the lunar new year
// ephemeris used to decide which zodiac year a date belongs to.
package calendar

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// DateLayout is the only accepted input layout (ISO 8601 calendar date).
const DateLayout = "2006-01-02"

// ErrInvalidDate is matched by every *InvalidDateError via errors.Is.
var ErrInvalidDate = errors.New("invalid date")

// InvalidDateError reports input that is not a real YYYY-MM-DD calendar date.
type InvalidDateError struct {
	Input  string
	Reason string
}

func (e *InvalidDateError) Error() string {
	return fmt.Sprintf("invalid date %q: %s", e.Input, e.Reason)
}

// Is makes errors.Is(err, ErrInvalidDate) work for wrapped values.
func (e *InvalidDateError) Is(target error) bool {
	return target == ErrInvalidDate
}

// Date is a plain civil date. No time zone is attached and none is applied.
type Date struct {
	Year  int
	Month time.Month
	Day   int
}

// ParseDate parses a YYYY-MM-DD string.
// Non-numeric input and impossible days (2023-02-30, 2023-13-01) are rejected
// with an *InvalidDateError.
func ParseDate(s string) (Date, error) {
	trimmed := strings.TrimSpace(s)
	if trimmed == "" {
		return Date{}, &InvalidDateError{Input: s, Reason: "date is required"}
	}

	t, err := time.Parse(DateLayout, trimmed)
	if err != nil {
		var pe *time.ParseError
		if errors.As(err, &pe) && pe.Message != "" {
			return Date{}, &InvalidDateError{Input: s, Reason: strings.TrimPrefix(pe.Message, ": ")}
		}
		return Date{}, &InvalidDateError{Input: s, Reason: "use YYYY-MM-DD"}
	}

	return DateOf(t), nil
}

// DateOf takes the civil date of t in t's own location.
func DateOf(t time.Time) Date {
	y, m, d := t.Date()
	return Date{Year: y, Month: m, Day: d}
}

// Time returns midnight UTC of the date.
func (d Date) Time() time.Time {
	return time.Date(d.Year, d.Month, d.Day, 0, 0, 0, 0, time.UTC)
}

// String formats the date as YYYY-MM-DD.
func (d Date) String() string {
	return fmt.Sprintf("%04d-%02d-%02d", d.Year, int(d.Month), d.Day)
}

// Before reports whether the date's month/day comes strictly before b
// within the same year.
func (d Date) Before(b Boundary) bool {
	if d.Month != b.Month {
		return d.Month < b.Month
	}
	return d.Day < b.Day
}
