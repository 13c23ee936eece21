// Package stats derives progress metrics and calendar grids from the workout
// log history and the current plan. Nothing here has an error path.
package stats

import (
	"alcyxob/fitgpt/internal/domain"
	"time"
)

// CalendarCells is the size of a month grid: six rows of seven days.
const CalendarCells = 42

// Day truncates t to a civil date at UTC midnight, keeping t's own calendar fields.
// All date arithmetic in this package works on such values.
func Day(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// FormatDate renders a date as a log key (YYYY-MM-DD).
func FormatDate(t time.Time) string {
	return t.Format(domain.DateLayout)
}

// StartOfWeek is the most recent Sunday on or before t.
// The weekStartsOn setting is not consulted.
func StartOfWeek(t time.Time) time.Time {
	d := Day(t)
	return d.AddDate(0, 0, -int(d.Weekday()))
}

// WeekDates returns the seven days of t's week, Sunday first.
func WeekDates(t time.Time) []time.Time {
	start := StartOfWeek(t)
	dates := make([]time.Time, 0, 7)
	for i := 0; i < 7; i++ {
		dates = append(dates, start.AddDate(0, 0, i))
	}
	return dates
}

// MonthDates returns the 42 days shown for a month: the tail of the previous
// month back to a Sunday, every day of the month, then the head of the next month.
func MonthDates(year int, month time.Month) []time.Time {
	first := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	start := first.AddDate(0, 0, -int(first.Weekday()))
	dates := make([]time.Time, 0, CalendarCells)
	for i := 0; i < CalendarCells; i++ {
		dates = append(dates, start.AddDate(0, 0, i))
	}
	return dates
}

// SameDay reports whether a and b fall on the same calendar date.
func SameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}
