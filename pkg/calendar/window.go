package calendar

import "time"

// monthGridCells is the fixed size of the month view: 6 full weeks, so the
// grid never changes shape as months start on different weekdays.
const monthGridCells = 42

// Window is a contiguous date range. Start is midnight of the first day;
// End is the first instant after the last day, so all comparisons against a
// window are half-open.
type Window struct {
	Start time.Time
	End   time.Time
}

// Contains reports whether t falls inside the window.
func (w Window) Contains(t time.Time) bool {
	return !t.Before(w.Start) && t.Before(w.End)
}

// DayStart returns midnight of the day containing date, in date's location.
func DayStart(date time.Time) time.Time {
	return time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())
}

// DayEnd returns the first instant after the day containing date.
func DayEnd(date time.Time) time.Time {
	return DayStart(date).AddDate(0, 0, 1)
}

// SameDay reports whether two instants fall on the same calendar day.
func SameDay(a, b time.Time) bool {
	return a.Year() == b.Year() && a.Month() == b.Month() && a.Day() == b.Day()
}

// StartOfWeek returns the Monday at midnight of the week containing date.
// Weeks are ISO: a Sunday belongs to the week that started six days earlier.
func StartOfWeek(date time.Time) time.Time {
	day := DayStart(date)
	delta := (int(day.Weekday()) - int(time.Monday) + 7) % 7
	return day.AddDate(0, 0, -delta)
}

// WeekWindow returns the Monday-anchored week containing date.
func WeekWindow(date time.Time) Window {
	start := StartOfWeek(date)
	return Window{Start: start, End: start.AddDate(0, 0, 7)}
}

// WeekDays returns the seven days of the week containing date.
func WeekDays(date time.Time) []time.Time {
	start := StartOfWeek(date)
	days := make([]time.Time, 7)
	for i := range days {
		days[i] = start.AddDate(0, 0, i)
	}
	return days
}

// MonthGrid returns the 42 consecutive days of the month view for date:
// 6 rows of 7, starting at the Monday on or before the 1st of date's month.
// Leading and trailing cells belong to the adjacent months.
func MonthGrid(date time.Time) []time.Time {
	first := time.Date(date.Year(), date.Month(), 1, 0, 0, 0, 0, date.Location())
	start := StartOfWeek(first)
	days := make([]time.Time, monthGridCells)
	for i := range days {
		days[i] = start.AddDate(0, 0, i)
	}
	return days
}

// MonthWindow returns the window covering the whole 42-cell grid for date's
// month, including the adjacent-month padding cells.
func MonthWindow(date time.Time) Window {
	first := time.Date(date.Year(), date.Month(), 1, 0, 0, 0, 0, date.Location())
	start := StartOfWeek(first)
	return Window{Start: start, End: start.AddDate(0, 0, monthGridCells)}
}
