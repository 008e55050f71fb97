package returns

import (
	"fmt"
	"math"
)

const (
	xirrGuess         = 0.10
	xirrMaxIterations = 50
	xirrTolerance     = 1e-6
)

// XIRR returns the annualized money-weighted rate of return of flows, as a
// fraction (0.10 is 10%).
//
// Flows need not be sorted. The rate r zeroes
//
//	Σ amount / (1+r)^(days/365)
//
// where days counts from the earliest flow. It is found with Newton-Raphson
// starting at 10%.
//
// When every amount has the same sign there is no investment to return on,
// and the rate is 0. Fewer than two flows, a solver that does not converge in
// 50 iterations, or a rate leaving the domain of the discount function yield
// an error matching ErrNoResult.
func XIRR(flows []CashFlow) (float64, error) {
	if len(flows) < 2 {
		return 0, fmt.Errorf("xirr of %d flows: %w", len(flows), ErrInsufficientData)
	}
	if negative, positive := signs(flows); !negative || !positive {
		return 0, nil
	}

	f := newDiscountedFlows(chronologically(flows))
	r := xirrGuess
	for i := 0; i < xirrMaxIterations; i++ {
		npv, slope, err := f.npv(r)
		if err != nil {
			return 0, err
		}
		if slope == 0 {
			return 0, fmt.Errorf("xirr: zero derivative at rate %g: %w", r, ErrNonConvergence)
		}
		next := r - npv/slope
		if math.IsNaN(next) || math.IsInf(next, 0) {
			return 0, fmt.Errorf("xirr: rate diverged from %g: %w", r, ErrNumericOverflow)
		}
		if math.Abs(next-r) < xirrTolerance {
			return next, nil
		}
		r = next
	}
	return 0, fmt.Errorf("xirr: %d iterations, last rate %g: %w", xirrMaxIterations, r, ErrNonConvergence)
}

// discountedFlows holds flows as amounts and year fractions from the first flow.
type discountedFlows struct {
	amounts []float64
	years   []float64
}

// newDiscountedFlows expects chronologically sorted flows.
func newDiscountedFlows(flows []CashFlow) discountedFlows {
	f := discountedFlows{
		amounts: make([]float64, len(flows)),
		years:   make([]float64, len(flows)),
	}
	t0 := flows[0].On
	for i, flow := range flows {
		f.amounts[i] = flow.Amount
		f.years[i] = yearFraction(t0.DaysUntil(flow.On))
	}
	return f
}

// npv returns the net present value at rate r and its derivative with respect to r.
func (f discountedFlows) npv(r float64) (npv, slope float64, err error) {
	base := 1 + r
	if base <= 0 {
		return 0, 0, fmt.Errorf("xirr: rate %g: %w", r, ErrNumericOverflow)
	}
	for i, amount := range f.amounts {
		t := f.years[i]
		if t == 0 {
			npv += amount
			continue
		}
		npv += amount / math.Pow(base, t)
		slope -= t * amount / math.Pow(base, t+1)
	}
	if math.IsNaN(npv) || math.IsInf(npv, 0) || math.IsNaN(slope) || math.IsInf(slope, 0) {
		return 0, 0, fmt.Errorf("xirr: rate %g: %w", r, ErrNumericOverflow)
	}
	return npv, slope, nil
}
