package service

import (
	"fmt"
	"time"
)

// WeekYearOf formats the ISO week period key, e.g. "2026-W35". Both
// the year and the week come from ISO 8601 numbering, so days around
// New Year land in the week they actually belong to.
func WeekYearOf(t time.Time) string {
	year, week := t.ISOWeek()
	return fmt.Sprintf("%d-W%02d", year, week)
}

// DayKeyOf formats the calendar-day key, e.g. "2026-08-28".
func DayKeyOf(t time.Time) string {
	return t.Format("2006-01-02")
}

func daysInMonth(t time.Time) int {
	firstOfNext := time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location()).AddDate(0, 1, 0)
	return firstOfNext.AddDate(0, 0, -1).Day()
}

// RemainingDays counts the days left in the month after the given day.
func RemainingDays(t time.Time) int {
	return daysInMonth(t) - t.Day()
}
