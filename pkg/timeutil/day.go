// Package timeutil has the calendar day, week, and month arithmetic
// shared by the store queries, the layout engine, and the views.
package timeutil

import "time"

// MinutesPerDay is the length of the 24-hour grid.
const MinutesPerDay = 24 * 60

// StartOfDay truncates t to midnight in its own location.
func StartOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// SameDay reports whether a and b fall on the same calendar day.
func SameDay(a, b time.Time) bool {
	return a.Year() == b.Year() && a.Month() == b.Month() && a.Day() == b.Day()
}

// MinutesIntoDay is the number of minutes between midnight and t,
// clamped to [0, MinutesPerDay].
func MinutesIntoDay(t time.Time) int {
	m := int(t.Sub(StartOfDay(t)).Minutes())
	if m < 0 {
		return 0
	}
	if m > MinutesPerDay {
		return MinutesPerDay
	}
	return m
}

// StartOfWeek returns the Sunday midnight at or before t.
func StartOfWeek(t time.Time) time.Time {
	d := StartOfDay(t)
	return d.AddDate(0, 0, -int(d.Weekday()))
}

// DaysOfWeek lists the seven days starting at weekStart.
func DaysOfWeek(weekStart time.Time) []time.Time {
	days := make([]time.Time, 7)
	for i := range days {
		days[i] = StartOfDay(weekStart).AddDate(0, 0, i)
	}
	return days
}

// MonthGrid returns the weeks that cover the month containing t, as
// rows of seven days. Leading and trailing cells belong to the
// adjacent months, mirroring a wall calendar page.
func MonthGrid(t time.Time) [][]time.Time {
	first := time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
	cursor := first.AddDate(0, 0, -int(first.Weekday()))

	daysInMonth := first.AddDate(0, 1, -1).Day()
	rows := (int(first.Weekday()) + daysInMonth + 6) / 7

	grid := make([][]time.Time, rows)
	for r := range grid {
		week := make([]time.Time, 7)
		for c := range week {
			week[c] = cursor
			cursor = cursor.AddDate(0, 0, 1)
		}
		grid[r] = week
	}
	return grid
}

// MonthsOfYear lists the first day of each month of the given year.
func MonthsOfYear(year int, loc *time.Location) []time.Time {
	if loc == nil {
		loc = time.Local
	}
	months := make([]time.Time, 12)
	for i := range months {
		months[i] = time.Date(year, time.Month(i+1), 1, 0, 0, 0, 0, loc)
	}
	return months
}
