package util

import "math"

// CalendarYear maps a 1-based projection month index onto the calendar year
// it falls in, given the calendar anchor of month 1.
func CalendarYear(startYear, startMonth, monthIndex int) int {
	return startYear + (startMonth-1+monthIndex-1)/12
}

// DaysToMonthShift converts a payment delay in days to a whole-month shift.
// The policy is ceil(days/30); non-positive delays mean no shift.
func DaysToMonthShift(days int) int {
	if days <= 0 {
		return 0
	}
	return int(math.Ceil(float64(days) / 30.0))
}
