package stock

import (
	"fmt"
	"time"
)

const (
	// DateLayout is the calendar date format stored on stock items.
	DateLayout = "2006-01-02"
	// TimestampLayout is the ISO-8601 format of lastUpdate, always UTC.
	TimestampLayout = "2006-01-02T15:04:05.000Z07:00"
	// DefaultCheckDays applies when a category has no usual expiry check interval.
	DefaultCheckDays = 90
)

// FormatDate formats t as a calendar date.
func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}

// FormatTimestamp formats t as a UTC ISO-8601 timestamp.
func FormatTimestamp(t time.Time) string {
	return t.UTC().Format(TimestampLayout)
}

// AddDays returns date shifted by days.
func AddDays(date string, days int) (string, error) {
	t, err := time.Parse(DateLayout, date)
	if err != nil {
		return "", fmt.Errorf("%w: date %q: %v", ErrInvalidInput, date, err)
	}
	return FormatDate(t.AddDate(0, 0, days)), nil
}

// CheckInterval returns the check interval in days for a category,
// falling back to DefaultCheckDays.
func CheckInterval(category *Category) int {
	if category == nil || category.UsualExpiryCheckDays <= 0 {
		return DefaultCheckDays
	}
	return category.UsualExpiryCheckDays
}
