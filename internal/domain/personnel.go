package domain

import (
	"github.com/shopspring/decimal"
)

// PersonnelLine is one role on the payroll. The line is active over the
// inclusive month window [StartMonth, EndMonth]; the engine clamps the
// window to the projection horizon and ignores inverted windows.
type PersonnelLine struct {
	Title string `json:"title"`
	// MonthlySalary is the gross monthly salary per head.
	MonthlySalary decimal.Decimal `json:"monthlySalary"`
	// EmployerCostRate is the employer burden added on top of gross
	// (e.g. 0.45 for +45%).
	EmployerCostRate float64 `json:"employerCostRate"`
	StartMonth       int     `json:"startMonth"`
	EndMonth         int     `json:"endMonth"`
	// Count is the headcount multiplier. Zero is read as 1 so that records
	// created before the field existed keep their meaning.
	Count int `json:"count,omitempty"`
}

// Headcount returns the effective multiplier for the line.
func (p *PersonnelLine) Headcount() int {
	if p.Count == 0 {
		return 1
	}
	return p.Count
}
