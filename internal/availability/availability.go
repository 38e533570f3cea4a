// Package availability decides which calendar days and time slots can
// be booked, from the backend's blocked-slot list and local date math.
// Everything here is pure and synchronous.
package availability

import (
	"fmt"
	"time"

	"github.com/jwalitptl/petcare-portal/internal/model"
)

// Day is one cell of the booking calendar grid.
type Day struct {
	Day          int // 0 for leading padding cells
	CurrentMonth bool
	Past         bool
	Blocked      bool
}

// Selectable reports whether the day responds to selection input.
func (d Day) Selectable() bool {
	return d.CurrentMonth && !d.Past && !d.Blocked
}

// TimeOption is one fixed offered slot. Display is the clock-face
// label, Value the 24h HH:MM sent to the backend.
type TimeOption struct {
	Display string
	Value   string
}

// The offered times are a fixed enumeration, not derived from business
// hours configuration.
func MorningTimes() []TimeOption {
	return []TimeOption{
		{Display: "09:00", Value: "09:00"},
		{Display: "10:00", Value: "10:00"},
		{Display: "11:00", Value: "11:00"},
	}
}

func AfternoonTimes() []TimeOption {
	return []TimeOption{
		{Display: "12:00", Value: "12:00"},
		{Display: "01:00", Value: "13:00"},
		{Display: "02:00", Value: "14:00"},
		{Display: "03:00", Value: "15:00"},
		{Display: "04:00", Value: "16:00"},
		{Display: "05:00", Value: "17:00"},
		{Display: "06:00", Value: "18:00"},
		{Display: "07:00", Value: "19:00"},
		{Display: "08:00", Value: "20:00"},
		{Display: "09:00", Value: "21:00"},
	}
}

// FormatDate renders a date as YYYY-MM-DD using its own calendar
// fields, never a UTC conversion, so late-evening local times do not
// shift to the next day.
func FormatDate(t time.Time) string {
	return fmt.Sprintf("%04d-%02d-%02d", t.Year(), int(t.Month()), t.Day())
}

// IsSlotBlocked reports whether the candidate date, and optionally the
// candidate HH:MM time, is blocked. A whole-day entry (nil time) takes
// precedence over any time-level entry. With an empty candidate time
// only the whole-day rule applies.
func IsSlotBlocked(slots []model.BlockedSlot, date time.Time, candidate string) bool {
	day := FormatDate(date)

	for _, slot := range slots {
		if slot.Date != day {
			continue
		}
		if slot.WholeDay() {
			return true
		}
	}

	if candidate == "" {
		return false
	}

	// Blocking a whole afternoon requires one row per hour; a single
	// time row blocks only its own slot.
	want := candidate + ":00"
	for _, slot := range slots {
		if slot.Date == day && !slot.WholeDay() && *slot.Time == want {
			return true
		}
	}
	return false
}

// IsPastDay reports whether date falls strictly before today's
// calendar day, ignoring time of day on both sides.
func IsPastDay(date, today time.Time) bool {
	y1, m1, d1 := date.Date()
	y2, m2, d2 := today.Date()
	if y1 != y2 {
		return y1 < y2
	}
	if m1 != m2 {
		return m1 < m2
	}
	return d1 < d2
}

// SelectableAt combines the past-day rule with the blocked-slot rules
// for one candidate date/time.
func SelectableAt(slots []model.BlockedSlot, date time.Time, candidate string, today time.Time) bool {
	if IsPastDay(date, today) {
		return false
	}
	return !IsSlotBlocked(slots, date, candidate)
}

// MonthGrid enumerates every day of the displayed month, padded to the
// weekday of the 1st, tagging each as past/blocked/selectable.
func MonthGrid(year int, month time.Month, today time.Time, slots []model.BlockedSlot) []Day {
	first := time.Date(year, month, 1, 0, 0, 0, 0, time.Local)
	daysInMonth := first.AddDate(0, 1, -1).Day()

	grid := make([]Day, 0, int(first.Weekday())+daysInMonth)
	for i := 0; i < int(first.Weekday()); i++ {
		grid = append(grid, Day{Past: true})
	}
	for day := 1; day <= daysInMonth; day++ {
		date := time.Date(year, month, day, 0, 0, 0, 0, time.Local)
		grid = append(grid, Day{
			Day:          day,
			CurrentMonth: true,
			Past:         IsPastDay(date, today),
			Blocked:      IsSlotBlocked(slots, date, ""),
		})
	}
	return grid
}

// PreviousMonthDisabled reports whether month navigation backwards
// from the displayed month would leave the bookable range.
func PreviousMonthDisabled(year int, month time.Month, today time.Time) bool {
	return year == today.Year() && month == today.Month()
}
