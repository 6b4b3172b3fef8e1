package utils

import (
	"fmt"
	"time"

	"carcompany-backend/internal/domain"
)

// DateLayout is the yyyy-mm-dd format used by every date column and API field.
const DateLayout = "2006-01-02"

// ParseDate converts a yyyy-mm-dd formatted string into a date at UTC midnight.
func ParseDate(dateStr string) (time.Time, error) {
	t, err := time.Parse(DateLayout, dateStr)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q", domain.ErrInvalidDate, dateStr)
	}
	return t, nil
}

// FormatDate renders the calendar date of t as yyyy-mm-dd.
func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}

// Truncate drops the clock part of t, keeping the calendar date as seen in t's location.
func Truncate(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// DaysBetween returns the number of calendar days from start to end.
// The result is negative when end is before start.
func DaysBetween(start, end time.Time) int {
	return int(Truncate(end).Sub(Truncate(start)).Hours() / 24)
}
