package domain

import (
	"github.com/shopspring/decimal"
)

// ExternalCharge is a recurring operating cost (rent, SaaS, insurance...)
// active over the inclusive month window [StartMonth, EndMonth].
type ExternalCharge struct {
	Label string `json:"label"`
	// MonthlyAmount is the recurring cost per month, excluding VAT.
	MonthlyAmount decimal.Decimal `json:"monthlyAmount"`
	// VATRate is the VAT fraction; nil means the scenario default applies.
	VATRate    *float64 `json:"vatRate,omitempty"`
	StartMonth int      `json:"startMonth"`
	EndMonth   int      `json:"endMonth"`
}
