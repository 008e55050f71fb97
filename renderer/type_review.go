package renderer

import (
	"errors"
	"os"
	"strings"
	"time"

	"github.com/etnz/returns"
)

// Now is the current time used in reports.
// It can be pinned with RTN_TESTING_NOW so that reports are reproducible.
func Now() time.Time {
	if s := os.Getenv("RTN_TESTING_NOW"); s != "" {
		t, err := time.Parse("2006-01-02 15:04:05", s)
		if err != nil {
			panic(err)
		}
		return t
	}
	return time.Now()
}

// Review is a struct to represent the review data for rendering.
type Review struct {
	Name          string `json:"name,omitempty"`
	AsOf          string `json:"asOf"`
	From          string `json:"from"`
	To            string `json:"to"`
	Period        string `json:"period,omitempty"` // calendar period of the range, if any
	StartValue    string `json:"startValue"`
	EndValue      string `json:"endValue"`
	Contributions string `json:"contributions"`
	Withdrawals   string `json:"withdrawals"`
	Gain          string `json:"gain"`
	ValueChange   string `json:"valueChange"`
	TWR           string `json:"twr"`
	TWRNote       string `json:"twrNote,omitempty"`
	XIRR          string `json:"xirr"`
	XIRRNote      string `json:"xirrNote,omitempty"`

	Periods []Period `json:"periods,omitempty"`
}

// Period is a line of the sub-period table.
type Period struct {
	From            string `json:"from"`
	To              string `json:"to"`
	StartValue      string `json:"startValue"`
	EndValue        string `json:"endValue"`
	NetContribution string `json:"netContribution"`
	Return          string `json:"return"`
}

// NewReview converts a review for rendering.
func NewReview(name string, rv *returns.Review) *Review {
	m := func(v float64) returns.Money { return returns.M(v, rv.Currency) }
	r := &Review{
		Name:          name,
		AsOf:          Now().Format("2006-01-02 15:04:05"),
		From:          rv.Range.From.String(),
		To:            rv.Range.To.String(),
		StartValue:    rv.Value.Start.String(),
		EndValue:      rv.Value.End.String(),
		Contributions: rv.Contributions.SignedString(),
		Withdrawals:   rv.Withdrawals.SignedString(),
		Gain:          rv.Gain().SignedString(),
		ValueChange:   rv.Value.Percent().SignedString(),
		TWR:           result(rv.TWR, rv.TWRErr),
		TWRNote:       note(rv.TWRErr),
		XIRR:          result(returns.RateToPercent(rv.XIRR), rv.XIRRErr),
		XIRRNote:      note(rv.XIRRErr),
	}
	if _, ok := rv.Range.Period(); ok {
		r.Period = rv.Range.Name() + " " + rv.Range.Identifier()
	}
	for _, p := range rv.Periods {
		line := Period{
			From:            p.Start.On.String(),
			To:              p.End.On.String(),
			StartValue:      m(p.Start.Value).String(),
			EndValue:        m(p.End.Value).String(),
			NetContribution: m(p.NetContribution).SignedString(),
			Return:          returns.RateToPercent(p.Return).SignedString(),
		}
		if p.Skipped {
			line.Return = "skipped"
		}
		r.Periods = append(r.Periods, line)
	}
	return r
}

// result renders a return, or "-" when there is none.
func result(p returns.Percent, err error) string {
	if err != nil {
		return "-"
	}
	return p.SignedString()
}

// note explains a missing return.
func note(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, returns.ErrInsufficientData):
		return "not enough data"
	case errors.Is(err, returns.ErrNonConvergence), errors.Is(err, returns.ErrNumericOverflow):
		return "no stable rate"
	default:
		return strings.TrimSpace(err.Error())
	}
}
