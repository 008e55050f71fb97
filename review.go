package returns

import (
	"fmt"

	"github.com/etnz/returns/date"
)

// Review is the performance of a ledger over a date range.
//
// A return that cannot be computed is kept as an error matching ErrNoResult,
// to be rendered as a neutral value.
type Review struct {
	Range    date.Range
	Currency string
	Value    Performance

	Contributions Money // total deposited in (From, To]
	Withdrawals   Money // total withdrawn in (From, To]

	Valuations []Valuation
	Flows      []CashFlow
	Periods    []Period

	TWR    Percent
	TWRErr error

	XIRR    float64
	XIRRErr error
}

// NewReview computes the time-weighted and money-weighted returns of the
// ledger over r.
//
// The time-weighted return links the value snapshots in r, starting from the
// value held on r.From. The money-weighted return treats the value held on
// r.From as a contribution and the value held on r.To as a withdrawal.
func (l *Ledger) NewReview(r date.Range) (*Review, error) {
	if r.From.After(r.To) {
		return nil, fmt.Errorf("invalid range %s: start after end", r)
	}
	rv := &Review{
		Range:         r,
		Currency:      l.currency,
		Contributions: M(0, l.currency),
		Withdrawals:   M(0, l.currency),
		Flows:         l.CashFlows(r),
	}
	start, hasStart := l.ValueAsOf(r.From)
	end, _ := l.ValueAsOf(r.To)
	rv.Value = NewPerformance(M(0, l.currency).Add(start), M(0, l.currency).Add(end))

	for _, e := range l.entries {
		if !r.ContainsAfterStart(e.Date) {
			continue
		}
		switch e.Command {
		case CmdDeposit:
			rv.Contributions = rv.Contributions.Add(e.Amount)
		case CmdWithdraw:
			rv.Withdrawals = rv.Withdrawals.Add(e.Amount)
		}
	}

	rv.Valuations = l.Valuations(r)
	if hasStart && (len(rv.Valuations) == 0 || rv.Valuations[0].On != r.From) {
		opening := NewValuation(r.From, start.InexactFloat64())
		rv.Valuations = append([]Valuation{opening}, rv.Valuations...)
	}
	rv.Periods = Periods(rv.Valuations, rv.Flows)
	rv.TWR, rv.TWRErr = LinkedTWR(rv.Valuations, rv.Flows)

	rv.XIRR, rv.XIRRErr = XIRR(rv.moneyWeightedFlows())
	return rv, nil
}

// moneyWeightedFlows returns the range flows between the opening and closing values.
func (rv *Review) moneyWeightedFlows() []CashFlow {
	flows := make([]CashFlow, 0, len(rv.Flows)+2)
	if !rv.Value.Start.IsZero() {
		flows = append(flows, NewCashFlow(rv.Range.From, -rv.Value.Start.InexactFloat64()))
	}
	flows = append(flows, rv.Flows...)
	if !rv.Value.End.IsZero() {
		flows = append(flows, NewCashFlow(rv.Range.To, rv.Value.End.InexactFloat64()))
	}
	return flows
}

// NetContribution returns the money added to the position in the range.
func (rv *Review) NetContribution() Money { return rv.Contributions.Sub(rv.Withdrawals) }

// Gain returns the change in value not explained by contributions.
func (rv *Review) Gain() Money { return rv.Value.Change().Sub(rv.NetContribution()) }
