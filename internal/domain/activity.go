package domain

import (
	"errors"

	"github.com/shopspring/decimal"
)

var (
	ErrActivityNameEmpty   = errors.New("activity name is required")
	ErrActivityNameTooLong = errors.New("activity name must be 200 characters or less")
	ErrDuplicateActivity   = errors.New("activity names must be unique")
)

// Activity is a named product or service line. Orders and sales ranges
// reference it by name; the name must be unique within a scenario.
type Activity struct {
	Name string `json:"name"`
	// UnitPrice is the selling price per unit, excluding VAT.
	UnitPrice decimal.Decimal `json:"unitPrice"`
	// VATRate is the VAT fraction for this line (e.g. 0.2). Nil means the
	// scenario default applies.
	VATRate *float64 `json:"vatRate,omitempty"`
	// VariableCostPerUnit is the direct cost per unit sold, excluding VAT.
	VariableCostPerUnit decimal.Decimal `json:"variableCostPerUnit"`
	// VariableCostRate is an additional variable cost expressed as a
	// fraction of the excl.-VAT revenue.
	VariableCostRate float64 `json:"variableCostRate"`
}

func (a *Activity) Validate() error {
	if a.Name == "" {
		return ErrActivityNameEmpty
	}
	if len(a.Name) > 200 {
		return ErrActivityNameTooLong
	}
	return nil
}

// Order is a quantity of one activity sold in one specific month.
// Orders are either entered manually or produced by expanding a SalesRange.
type Order struct {
	Activity string  `json:"activity"`
	Month    int     `json:"month"`
	Quantity float64 `json:"quantity"`
}

// ActivityMap indexes activities by name. Later duplicates win, matching
// map-lookup semantics on the input list.
func ActivityMap(activities []Activity) map[string]Activity {
	m := make(map[string]Activity, len(activities))
	for _, a := range activities {
		m[a.Name] = a
	}
	return m
}
