package returns

import (
	"fmt"
	"slices"

	"github.com/etnz/returns/date"
)

// daysPerYear is the day-count basis: actual days over 365.
//
// Stored historical rates were computed with it, changing it changes them.
const daysPerYear = 365.0

// yearFraction converts a number of days into years.
func yearFraction(days int) float64 { return float64(days) / daysPerYear }

// CashFlow is a signed amount of money moving in or out of a position on a given day.
//
// A negative amount is capital contributed to the position, a positive amount
// is capital returned from it.
type CashFlow struct {
	On     date.Date `json:"date"`
	Amount float64   `json:"amount"`
}

// NewCashFlow returns a CashFlow.
func NewCashFlow(on date.Date, amount float64) CashFlow { return CashFlow{On: on, Amount: amount} }

func (f CashFlow) String() string { return fmt.Sprintf("%s %+.2f", f.On, f.Amount) }

// Valuation is the market value of a position on a given day.
type Valuation struct {
	On    date.Date `json:"date"`
	Value float64   `json:"value"`
}

// NewValuation returns a Valuation.
func NewValuation(on date.Date, value float64) Valuation { return Valuation{On: on, Value: value} }

func (v Valuation) String() string { return fmt.Sprintf("%s %.2f", v.On, v.Value) }

// chronologically returns a sorted copy of flows, keeping the input order of same-day flows.
func chronologically(flows []CashFlow) []CashFlow {
	sorted := slices.Clone(flows)
	slices.SortStableFunc(sorted, func(a, b CashFlow) int { return a.On.Compare(b.On) })
	return sorted
}

// sortValuations sorts valuations in place, keeping the input order of same-day values.
func sortValuations(values []Valuation) {
	slices.SortStableFunc(values, func(a, b Valuation) int { return a.On.Compare(b.On) })
}

// signs reports whether flows contain a strictly negative and a strictly positive amount.
func signs(flows []CashFlow) (negative, positive bool) {
	for _, f := range flows {
		switch {
		case f.Amount < 0:
			negative = true
		case f.Amount > 0:
			positive = true
		}
	}
	return negative, positive
}
