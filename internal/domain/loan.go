package domain

import (
	"errors"

	"github.com/shopspring/decimal"
)

var (
	ErrLoanAmountInvalid = errors.New("loan principal must be positive")
	ErrLoanMonthsInvalid = errors.New("loan duration must be at least 1 month")
)

// Loan is a fixed-payment (annuity) loan. The full principal is disbursed
// at StartMonth and repaid over Months monthly payments. Loans with a
// non-positive principal or duration are degenerate and contribute nothing
// to a projection.
type Loan struct {
	Label     string          `json:"label"`
	Principal decimal.Decimal `json:"principal"`
	// AnnualRate is the nominal annual interest rate as a fraction
	// (e.g. 0.04 for 4%). The monthly rate is AnnualRate/12.
	AnnualRate float64 `json:"annualRate"`
	Months     int     `json:"months"`
	StartMonth int     `json:"startMonth"`
}

func (l *Loan) Validate() error {
	if l.Principal.LessThanOrEqual(decimal.Zero) {
		return ErrLoanAmountInvalid
	}
	if l.Months < 1 {
		return ErrLoanMonthsInvalid
	}
	return nil
}
