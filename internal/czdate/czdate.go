// Package czdate derives human-readable Czech date-range labels from
// structured dates, e.g. "15. - 16. března 2026".
package czdate

import (
	"fmt"
	"time"
)

// Genitive month names, as used after a day number ("15. března").
var months = [...]string{
	"ledna", "února", "března", "dubna", "května", "června",
	"července", "srpna", "září", "října", "listopadu", "prosince",
}

// DayLabel formats a single date, e.g. "15. března 2026".
func DayLabel(d time.Time) string {
	return fmt.Sprintf("%d. %s %d", d.Day(), months[d.Month()-1], d.Year())
}

// RangeLabel formats a date range. Same-month ranges collapse to
// "15. - 16. března 2026"; cross-month ranges spell both months,
// "15. března - 2. dubna 2026"; cross-year ranges spell both years. A nil
// or equal end date yields a single-day label.
func RangeLabel(start time.Time, end *time.Time) string {
	if end == nil || end.Equal(start) {
		return DayLabel(start)
	}

	switch {
	case start.Year() == end.Year() && start.Month() == end.Month():
		return fmt.Sprintf("%d. - %d. %s %d",
			start.Day(), end.Day(), months[end.Month()-1], end.Year())
	case start.Year() == end.Year():
		return fmt.Sprintf("%d. %s - %d. %s %d",
			start.Day(), months[start.Month()-1],
			end.Day(), months[end.Month()-1], end.Year())
	default:
		return DayLabel(start) + " - " + DayLabel(*end)
	}
}
