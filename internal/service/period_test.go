package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestWeekYearOf(t *testing.T) {
	tests := []struct {
		name     string
		date     time.Time
		expected string
	}{
		{
			name:     "Mid-year week",
			date:     time.Date(2026, 8, 28, 10, 0, 0, 0, time.UTC),
			expected: "2026-W35",
		},
		{
			name:     "Single-digit week is zero padded",
			date:     time.Date(2026, 1, 15, 0, 0, 0, 0, time.UTC),
			expected: "2026-W03",
		},
		{
			// Dec 31 2025 is a Wednesday and already belongs to ISO
			// week 1 of 2026.
			name:     "Year boundary uses the ISO week-year",
			date:     time.Date(2025, 12, 31, 23, 59, 0, 0, time.UTC),
			expected: "2026-W01",
		},
		{
			// Jan 1 2027 is a Friday, still ISO week 53 of 2026.
			name:     "New year days can stay in the old week-year",
			date:     time.Date(2027, 1, 1, 0, 0, 0, 0, time.UTC),
			expected: "2026-W53",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, WeekYearOf(tt.date))
		})
	}
}

func TestDayKeyOf(t *testing.T) {
	assert.Equal(t, "2026-08-28", DayKeyOf(time.Date(2026, 8, 28, 23, 59, 59, 0, time.UTC)))
	assert.Equal(t, "2026-01-05", DayKeyOf(time.Date(2026, 1, 5, 0, 0, 0, 0, time.UTC)))
}

func TestRemainingDays(t *testing.T) {
	tests := []struct {
		name     string
		date     time.Time
		expected int
	}{
		{name: "Three days left in August", date: time.Date(2026, 8, 28, 12, 0, 0, 0, time.UTC), expected: 3},
		{name: "Last day of the month", date: time.Date(2026, 8, 31, 12, 0, 0, 0, time.UTC), expected: 0},
		{name: "First day of a 30-day month", date: time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC), expected: 29},
		{name: "Leap February", date: time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC), expected: 28},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, RemainingDays(tt.date))
		})
	}
}
