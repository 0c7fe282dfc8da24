package service

import "math"

// AmortizationSchedule is a fixed-payment loan schedule relative to the
// loan's own first month. The three slices are parallel and cover months
// 1..n of the loan.
type AmortizationSchedule struct {
	// Payment is the constant monthly payment.
	Payment   float64
	Interest  []float64
	Principal []float64
	// Balance is the outstanding principal after each payment, floored at
	// zero so the final payment never overshoots below zero.
	Balance []float64
}

// AmortizeAnnuity computes the annuity schedule for a loan of the given
// principal, nominal annual rate and duration in months. A non-positive
// duration yields an empty schedule; a zero rate degrades to straight
// division of the principal.
func AmortizeAnnuity(principal, annualRate float64, months int) AmortizationSchedule {
	if months <= 0 {
		return AmortizationSchedule{}
	}

	r := annualRate / 12.0
	var payment float64
	if r == 0 {
		payment = principal / float64(months)
	} else {
		payment = principal * r / (1 - math.Pow(1+r, -float64(months)))
	}

	schedule := AmortizationSchedule{
		Payment:   payment,
		Interest:  make([]float64, months),
		Principal: make([]float64, months),
		Balance:   make([]float64, months),
	}

	balance := principal
	for k := 0; k < months; k++ {
		interest := balance * r
		repaid := payment - interest
		balance = math.Max(0, balance-repaid)
		schedule.Interest[k] = interest
		schedule.Principal[k] = repaid
		schedule.Balance[k] = balance
	}
	return schedule
}
