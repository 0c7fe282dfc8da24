package service

import (
	"math"
	"sort"

	"github.com/plancast/plancast-backend/internal/domain"
)

// quantityEpsilon is the magnitude below which an aggregated quantity is
// considered noise and dropped from the expansion output.
const quantityEpsilon = 1e-12

// ExpandSalesRanges turns declarative sales ranges into discrete per-month
// orders over the horizon [1, months]. Contributions of multiple ranges to
// the same (activity, month) cell are summed, quantities are rounded to six
// decimal places, and the result is sorted by activity name then month.
func ExpandSalesRanges(ranges []domain.SalesRange, months int) []domain.Order {
	type cell struct {
		activity string
		month    int
	}
	acc := make(map[cell]float64)

	for _, r := range ranges {
		start := r.StartMonth
		if start < 1 {
			start = 1
		}
		end := r.EndMonth
		if end > months {
			end = months
		}
		if end < start {
			continue
		}
		profile := quantityProfile(end-start+1, r.InitialQuantity, r.Growth, r.GrowthBasis, r.Interpolation)
		for t, q := range profile {
			acc[cell{r.Activity, start + t}] += q
		}
	}

	orders := make([]domain.Order, 0, len(acc))
	for c, q := range acc {
		q = math.Round(q*1e6) / 1e6
		if math.Abs(q) <= quantityEpsilon {
			continue
		}
		orders = append(orders, domain.Order{Activity: c.activity, Month: c.month, Quantity: q})
	}
	sort.Slice(orders, func(i, j int) bool {
		if orders[i].Activity != orders[j].Activity {
			return orders[i].Activity < orders[j].Activity
		}
		return orders[i].Month < orders[j].Month
	})
	return orders
}

// quantityProfile produces the per-month quantities of a range with n
// active months starting from q0.
//
// With the monthly basis, growth compounds directly: q(t) = q0*(1+g)^t.
// With the total basis, growth spans the whole range and the interpolation
// mode picks the path between q0 and q0*(1+g): compound derives the
// equivalent per-month rate (1+g)^(1/(n-1))-1, linear walks a straight
// line. Compound interpolation degrades to linear when q0 <= 0 or when
// 1+g is not positive, where the root/power is undefined.
func quantityProfile(n int, q0, growth float64, basis domain.GrowthBasis, interp domain.Interpolation) []float64 {
	if n <= 0 {
		return nil
	}
	if n == 1 {
		return []float64{q0}
	}

	if basis != domain.GrowthBasisTotal {
		return compoundProfile(n, q0, growth)
	}

	if interp == domain.InterpolationLinear || q0 <= 0 || 1+growth <= 0 {
		return linearProfile(n, q0, q0*(1+growth))
	}
	monthly := math.Pow(1+growth, 1/float64(n-1)) - 1
	return compoundProfile(n, q0, monthly)
}

func compoundProfile(n int, q0, monthlyRate float64) []float64 {
	out := make([]float64, n)
	for t := 0; t < n; t++ {
		out[t] = q0 * math.Pow(1+monthlyRate, float64(t))
	}
	return out
}

func linearProfile(n int, q0, qn float64) []float64 {
	out := make([]float64, n)
	step := (qn - q0) / float64(n-1)
	for t := 0; t < n; t++ {
		out[t] = q0 + float64(t)*step
	}
	return out
}
