package availability

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/jwalitptl/petcare-portal/internal/model"
)

func strPtr(s string) *string { return &s }

func TestFormatDateUsesLocalCalendarFields(t *testing.T) {
	// 23:30 local must stay on its own calendar day regardless of what
	// the same instant is in UTC.
	loc := time.FixedZone("UTC+9", 9*60*60)
	d := time.Date(2025, 6, 15, 23, 30, 0, 0, loc)
	assert.Equal(t, "2025-06-15", FormatDate(d))
}

func TestIsSlotBlocked(t *testing.T) {
	slots := []model.BlockedSlot{
		{ID: "1", Date: "2025-06-20"}, // whole day
		{ID: "2", Date: "2025-06-21", Time: strPtr("14:00:00")},
		{ID: "3", Date: "2025-06-21", Time: strPtr("15:00:00")},
	}

	tests := []struct {
		name      string
		date      time.Time
		candidate string
		blocked   bool
	}{
		{"whole day blocks without candidate", date(2025, 6, 20), "", true},
		{"whole day blocks every time", date(2025, 6, 20), "10:00", true},
		{"time entry blocks its own slot", date(2025, 6, 21), "14:00", true},
		{"time entry blocks sibling slot", date(2025, 6, 21), "15:00", true},
		{"time entry leaves other slots open", date(2025, 6, 21), "16:00", false},
		{"time entry does not block the day", date(2025, 6, 21), "", false},
		{"unlisted day is open", date(2025, 6, 22), "10:00", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.blocked, IsSlotBlocked(slots, tt.date, tt.candidate))
		})
	}
}

func TestWholeDayTakesPrecedenceOverTimeEntries(t *testing.T) {
	slots := []model.BlockedSlot{
		{ID: "1", Date: "2025-06-20", Time: strPtr("09:00:00")},
		{ID: "2", Date: "2025-06-20"},
	}
	// Order in the list must not matter.
	assert.True(t, IsSlotBlocked(slots, date(2025, 6, 20), "11:00"))
	assert.True(t, IsSlotBlocked(slots, date(2025, 6, 20), ""))
}

func TestIsPastDay(t *testing.T) {
	today := time.Date(2025, 6, 15, 13, 45, 0, 0, time.Local)

	assert.True(t, IsPastDay(date(2025, 6, 14), today))
	assert.True(t, IsPastDay(date(2024, 12, 31), today))
	// Today itself is not past, whatever the clock says.
	assert.False(t, IsPastDay(date(2025, 6, 15), today))
	assert.False(t, IsPastDay(date(2025, 6, 16), today))
	assert.False(t, IsPastDay(date(2026, 1, 1), today))
}

func TestSelectableAt(t *testing.T) {
	today := date(2025, 6, 15)
	slots := []model.BlockedSlot{
		{ID: "1", Date: "2025-06-20"},
		{ID: "2", Date: "2025-06-21", Time: strPtr("14:00:00")},
	}

	assert.False(t, SelectableAt(slots, date(2025, 6, 10), "10:00", today))
	assert.False(t, SelectableAt(slots, date(2025, 6, 20), "10:00", today))
	assert.False(t, SelectableAt(slots, date(2025, 6, 21), "14:00", today))
	assert.True(t, SelectableAt(slots, date(2025, 6, 21), "10:00", today))
	assert.True(t, SelectableAt(slots, date(2025, 6, 22), "10:00", today))
}

func TestMonthGrid(t *testing.T) {
	today := date(2025, 6, 15)
	slots := []model.BlockedSlot{{ID: "1", Date: "2025-06-20"}}

	grid := MonthGrid(2025, time.June, today, slots)

	// June 1st 2025 is a Sunday, so no padding cells.
	assert.Len(t, grid, 30)
	assert.Equal(t, 1, grid[0].Day)

	// July 1st 2025 is a Tuesday: two padding cells, then 31 days.
	july := MonthGrid(2025, time.July, today, nil)
	assert.Len(t, july, 2+31)
	assert.Equal(t, 0, july[0].Day)
	assert.False(t, july[0].Selectable())
	assert.Equal(t, 1, july[2].Day)

	for _, cell := range grid {
		switch {
		case cell.Day == 0:
			assert.False(t, cell.Selectable())
		case cell.Day < 15:
			assert.True(t, cell.Past, "day %d should be past", cell.Day)
			assert.False(t, cell.Selectable())
		case cell.Day == 20:
			assert.True(t, cell.Blocked)
			assert.False(t, cell.Selectable())
		default:
			assert.True(t, cell.Selectable(), "day %d should be selectable", cell.Day)
		}
	}
}

func TestOfferedTimes(t *testing.T) {
	am := MorningTimes()
	assert.Len(t, am, 3)
	assert.Equal(t, "09:00", am[0].Value)
	assert.Equal(t, "11:00", am[len(am)-1].Value)

	pm := AfternoonTimes()
	assert.Len(t, pm, 10)
	assert.Equal(t, "12:00", pm[0].Value)
	// The display labels stay on the 12-hour clock.
	assert.Equal(t, "01:00", pm[1].Display)
	assert.Equal(t, "13:00", pm[1].Value)
	assert.Equal(t, "09:00", pm[len(pm)-1].Display)
	assert.Equal(t, "21:00", pm[len(pm)-1].Value)
}

func TestPreviousMonthDisabled(t *testing.T) {
	today := date(2025, 6, 15)
	assert.True(t, PreviousMonthDisabled(2025, time.June, today))
	assert.False(t, PreviousMonthDisabled(2025, time.July, today))
	assert.False(t, PreviousMonthDisabled(2026, time.June, today))
}

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.Local)
}
