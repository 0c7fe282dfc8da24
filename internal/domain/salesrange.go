package domain

// GrowthBasis selects how a sales range's Growth value is interpreted.
type GrowthBasis string

const (
	// GrowthBasisMonthly applies Growth as a per-month compounding rate.
	GrowthBasisMonthly GrowthBasis = "monthly"
	// GrowthBasisTotal interprets Growth as the total growth over the whole
	// range; the per-month profile follows the Interpolation mode.
	GrowthBasisTotal GrowthBasis = "total"
)

// Interpolation selects the quantity profile used with GrowthBasisTotal.
type Interpolation string

const (
	InterpolationCompound Interpolation = "compound"
	InterpolationLinear   Interpolation = "linear"
)

// SalesRange declares sales of one activity over a month window with a
// growth profile. Ranges are expanded into discrete per-month Orders before
// a projection run. A range whose window is empty after clamping to the
// horizon contributes nothing.
type SalesRange struct {
	Activity   string `json:"activity"`
	StartMonth int    `json:"startMonth"`
	EndMonth   int    `json:"endMonth"`
	// InitialQuantity is the quantity sold in the first month of the range.
	InitialQuantity float64 `json:"initialQuantity"`
	// Growth is either the per-month rate or the total growth over the
	// range, depending on GrowthBasis. Zero means a flat profile.
	Growth float64 `json:"growth"`
	// GrowthBasis defaults to GrowthBasisMonthly when empty.
	GrowthBasis GrowthBasis `json:"growthBasis,omitempty"`
	// Interpolation defaults to InterpolationCompound when empty. Only
	// consulted with GrowthBasisTotal.
	Interpolation Interpolation `json:"interpolation,omitempty"`
}
