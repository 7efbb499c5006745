package util

import (
	"fmt"
	"time"
)

// DateFormat is the ISO-8601 calendar date layout used on every surface.
const DateFormat = "2006-01-02"

// Day truncates t to midnight UTC of its calendar day.
func Day(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// NewDate returns midnight UTC of the given calendar day.
func NewDate(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

// ParseDate parses a YYYY-MM-DD string into a UTC calendar date.
func ParseDate(s string) (time.Time, error) {
	t, err := time.Parse(DateFormat, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q want format %q", s, DateFormat)
	}
	return t, nil
}

// MustParseDate is like ParseDate but panics on error.
func MustParseDate(s string) time.Time {
	t, err := ParseDate(s)
	if err != nil {
		panic(err.Error())
	}
	return t
}

// FormatDate formats t as YYYY-MM-DD.
func FormatDate(t time.Time) string { return t.Format(DateFormat) }

// AddDays shifts a calendar date by n days.
func AddDays(t time.Time, n int) time.Time { return Day(t).AddDate(0, 0, n) }
