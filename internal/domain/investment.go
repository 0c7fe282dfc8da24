package domain

import (
	"github.com/shopspring/decimal"
)

// Investment is a capital purchase depreciated straight-line from the
// purchase month over AmortYears years (converted to months, minimum one).
type Investment struct {
	Label string `json:"label"`
	// Amount is the purchase price, excluding VAT.
	Amount decimal.Decimal `json:"amount"`
	// VATRate is the VAT fraction; nil means the scenario default applies.
	VATRate       *float64 `json:"vatRate,omitempty"`
	PurchaseMonth int      `json:"purchaseMonth"`
	AmortYears    int      `json:"amortYears"`
}
