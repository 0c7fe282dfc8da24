package util

import "testing"

func TestCalendarYear(t *testing.T) {
	tests := []struct {
		name       string
		startYear  int
		startMonth int
		monthIndex int
		want       int
	}{
		{"first month", 2026, 1, 1, 2026},
		{"last month of start year", 2026, 1, 12, 2026},
		{"rolls into next year", 2026, 1, 13, 2027},
		{"mid-year start stays", 2026, 7, 6, 2026},
		{"mid-year start rolls", 2026, 7, 7, 2027},
		{"two years out", 2026, 7, 19, 2028},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CalendarYear(tt.startYear, tt.startMonth, tt.monthIndex); got != tt.want {
				t.Errorf("CalendarYear(%d, %d, %d) = %d, want %d",
					tt.startYear, tt.startMonth, tt.monthIndex, got, tt.want)
			}
		})
	}
}

func TestDaysToMonthShift(t *testing.T) {
	tests := []struct {
		days int
		want int
	}{
		{0, 0},
		{-10, 0},
		{1, 1},
		{30, 1},
		{31, 2},
		{45, 2},
		{60, 2},
		{61, 3},
		{90, 3},
	}
	for _, tt := range tests {
		if got := DaysToMonthShift(tt.days); got != tt.want {
			t.Errorf("DaysToMonthShift(%d) = %d, want %d", tt.days, got, tt.want)
		}
	}
}
