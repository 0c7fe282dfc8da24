package service

import (
	"math"
	"testing"
)

func TestAmortizeAnnuity_ZeroRate(t *testing.T) {
	// 12000 over 12 months at 0% = 1000 per month, no interest
	schedule := AmortizeAnnuity(12000, 0, 12)

	if schedule.Payment != 1000 {
		t.Errorf("Expected payment 1000, got %f", schedule.Payment)
	}
	for k, interest := range schedule.Interest {
		if interest != 0 {
			t.Errorf("Expected zero interest at month %d, got %f", k+1, interest)
		}
	}
	if got := schedule.Balance[11]; got != 0 {
		t.Errorf("Expected final balance 0, got %f", got)
	}
}

func TestAmortizeAnnuity_WithInterest(t *testing.T) {
	// 10000 over 12 months at 12% annual (1% monthly)
	schedule := AmortizeAnnuity(10000, 0.12, 12)

	// Payment formula: 10000 * 0.01 / (1 - 1.01^-12) ≈ 888.49
	if math.Abs(schedule.Payment-888.4878867834168) > 1e-9 {
		t.Errorf("Unexpected payment: %f", schedule.Payment)
	}

	// First month interest is exactly 1% of the principal
	if math.Abs(schedule.Interest[0]-100) > 1e-9 {
		t.Errorf("Expected first-month interest 100, got %f", schedule.Interest[0])
	}

	// Interest decreases every month as the balance falls
	for k := 1; k < 12; k++ {
		if schedule.Interest[k] >= schedule.Interest[k-1] {
			t.Errorf("Interest did not decrease at month %d", k+1)
		}
	}

	// Principal + interest of every month sum to the constant payment
	var totalPaid float64
	for k := 0; k < 12; k++ {
		if math.Abs(schedule.Interest[k]+schedule.Principal[k]-schedule.Payment) > 1e-9 {
			t.Errorf("Payment split mismatch at month %d", k+1)
		}
		totalPaid += schedule.Principal[k]
	}

	// All principal is repaid and the balance reaches zero
	if math.Abs(totalPaid-10000) > 1e-6 {
		t.Errorf("Expected total principal 10000, got %f", totalPaid)
	}
	if schedule.Balance[11] > 1e-6 {
		t.Errorf("Expected final balance ~0, got %f", schedule.Balance[11])
	}
}

func TestAmortizeAnnuity_NonPositiveMonths(t *testing.T) {
	schedule := AmortizeAnnuity(10000, 0.05, 0)
	if schedule.Payment != 0 || len(schedule.Interest) != 0 || len(schedule.Principal) != 0 || len(schedule.Balance) != 0 {
		t.Errorf("Expected empty schedule for zero months, got %+v", schedule)
	}

	schedule = AmortizeAnnuity(10000, 0.05, -3)
	if len(schedule.Interest) != 0 {
		t.Errorf("Expected empty schedule for negative months")
	}
}

func TestAmortizeAnnuity_BalanceNeverNegative(t *testing.T) {
	schedule := AmortizeAnnuity(5000, 0.2, 24)
	for k, balance := range schedule.Balance {
		if balance < 0 {
			t.Errorf("Balance went negative at month %d: %f", k+1, balance)
		}
	}
}
