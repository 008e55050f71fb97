package returns

import (
	"fmt"

	"github.com/etnz/returns/date"
)

// Period is the interval between two consecutive valuations, with the cash
// flows dated in (Start.On, End.On].
type Period struct {
	Start, End Valuation
	Flows      []CashFlow

	// NetContribution is the money added to the position during the period.
	NetContribution float64
	// WeightedContribution is NetContribution weighted by the fraction of the
	// period remaining after each flow.
	WeightedContribution float64
	// Return is the Modified Dietz return of the period, as a fraction.
	Return float64
	// Skipped is true for a zero-length period, that contributes no growth.
	Skipped bool
}

// Range returns the dates bounding the period.
func (p Period) Range() date.Range { return date.NewRange(p.Start.On, p.End.On) }

// Periods splits valuations into consecutive periods and computes the
// Modified Dietz return of each of them.
//
// Valuations are expected in chronological order. A flow dated on a
// valuation day belongs to the period ending on that day.
func Periods(valuations []Valuation, flows []CashFlow) []Period {
	if len(valuations) < 2 {
		return nil
	}
	periods := make([]Period, 0, len(valuations)-1)
	for i := 1; i < len(valuations); i++ {
		periods = append(periods, newPeriod(valuations[i-1], valuations[i], flows))
	}
	return periods
}

func newPeriod(start, end Valuation, flows []CashFlow) Period {
	p := Period{Start: start, End: end}
	rng := p.Range()
	for _, f := range flows {
		if rng.ContainsAfterStart(f.On) {
			p.Flows = append(p.Flows, f)
		}
	}

	length := rng.Days()
	if length == 0 {
		p.Skipped = true
		return p
	}
	for _, f := range p.Flows {
		contribution := -f.Amount
		weight := float64(f.On.DaysUntil(end.On)) / float64(length)
		p.NetContribution += contribution
		p.WeightedContribution += contribution * weight
	}

	numerator := end.Value - start.Value - p.NetContribution
	denominator := start.Value + p.WeightedContribution
	if denominator != 0 {
		p.Return = numerator / denominator
	}
	return p
}

// LinkedTWR returns the time-weighted return of a position, in percent.
//
// Valuations must be in chronological order. Each consecutive pair bounds a
// period whose Modified Dietz return is computed from the flows in it, then
// all period returns are linked geometrically. Zero-length periods are
// skipped, so a series made only of them has a 0% return.
//
// Fewer than two valuations yield an error matching ErrNoResult.
func LinkedTWR(valuations []Valuation, flows []CashFlow) (Percent, error) {
	if len(valuations) < 2 {
		return 0, fmt.Errorf("twr of %d valuations: %w", len(valuations), ErrInsufficientData)
	}
	return Link(Periods(valuations, flows)), nil
}

// Link chains period returns into a cumulative return in percent.
func Link(periods []Period) Percent {
	twr := 1.0
	for _, p := range periods {
		if p.Skipped {
			continue
		}
		twr *= 1 + p.Return
	}
	return Percent((twr - 1) * 100)
}
