package domain

import (
	"github.com/shopspring/decimal"
)

// CapitalInjection is an equity contribution landing in a single month.
// It is credited to cash and to equity with no tax treatment.
type CapitalInjection struct {
	Label  string          `json:"label"`
	Amount decimal.Decimal `json:"amount"`
	Month  int             `json:"month"`
}

// Subsidy is a grant landing in a single month, credited to cash with no
// tax treatment.
type Subsidy struct {
	Label  string          `json:"label"`
	Amount decimal.Decimal `json:"amount"`
	Month  int             `json:"month"`
}
