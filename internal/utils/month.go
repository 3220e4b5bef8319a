package utils

import "time"

const monthKeyFormat = "2006-01"

// MonthKey returns the calendar month key for a point in time, e.g. "2026-08".
func MonthKey(t time.Time) string {
	return t.UTC().Format(monthKeyFormat)
}

// PrevMonthKey returns the month key of the calendar month before t.
func PrevMonthKey(t time.Time) string {
	t = t.UTC()
	firstOfMonth := time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
	return firstOfMonth.AddDate(0, 0, -1).Format(monthKeyFormat)
}

// IsMonthKey reports whether s is a valid "YYYY-MM" month key.
func IsMonthKey(s string) bool {
	_, err := time.Parse(monthKeyFormat, s)
	return err == nil
}
