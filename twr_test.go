package returns

import (
	"testing"

	"github.com/etnz/returns/date"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func value(on string, v float64) Valuation { return NewValuation(date.MustParse(on), v) }

func TestLinkedTWR(t *testing.T) {
	testCases := []struct {
		name       string
		valuations []Valuation
		flows      []CashFlow
		want       Percent
	}{
		{
			name:       "simple return",
			valuations: []Valuation{value("2024-01-01", 1000), value("2024-12-31", 1100)},
			want:       10,
		},
		{
			name:       "linked periods",
			valuations: []Valuation{value("2024-01-01", 1000), value("2024-02-01", 1100), value("2024-03-01", 990)},
			want:       -1,
		},
		{
			name:       "mid period deposit",
			valuations: []Valuation{value("2024-01-01", 1000), value("2024-01-31", 1600)},
			// 500 in, half way through a 30 days period.
			flows: []CashFlow{flow("2024-01-16", -500)},
			want:  8,
		},
		{
			name:       "mid period withdrawal",
			valuations: []Valuation{value("2024-01-01", 1000), value("2024-01-31", 600)},
			flows:      []CashFlow{flow("2024-01-16", 500)},
			// numerator 600-1000+500 = 100, denominator 1000-250 = 750
			want: Percent(100 * 100.0 / 750.0),
		},
		{
			name:       "deposit neutralizes growth",
			valuations: []Valuation{value("2024-01-01", 1000), value("2024-01-31", 1500)},
			flows:      []CashFlow{flow("2024-01-31", -500)},
			want:       0,
		},
		{
			name:       "zero length period only",
			valuations: []Valuation{value("2024-01-01", 1000), value("2024-01-01", 5000)},
			want:       0,
		},
		{
			name:       "zero length period is skipped",
			valuations: []Valuation{value("2024-01-01", 1000), value("2024-01-01", 1200), value("2024-02-01", 1320)},
			want:       10,
		},
		{
			name:       "zero denominator",
			valuations: []Valuation{value("2024-01-01", 0), value("2024-01-31", 1000), value("2024-03-01", 1100)},
			flows:      []CashFlow{flow("2024-01-31", -1000)},
			want:       10,
		},
		{
			name:       "flows outside the valuations are ignored",
			valuations: []Valuation{value("2024-01-01", 1000), value("2024-12-31", 1100)},
			flows:      []CashFlow{flow("2023-06-01", -100000), flow("2025-01-01", 100000)},
			want:       10,
		},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := LinkedTWR(tc.valuations, tc.flows)
			require.NoError(t, err)
			assert.InDelta(t, float64(tc.want), float64(got), 1e-9)
		})
	}
}

func TestLinkedTWR_InsufficientData(t *testing.T) {
	for _, valuations := range [][]Valuation{nil, {value("2024-01-01", 1000)}} {
		_, err := LinkedTWR(valuations, []CashFlow{flow("2024-01-01", -1000)})
		assert.ErrorIs(t, err, ErrInsufficientData)
		assert.ErrorIs(t, err, ErrNoResult)
	}
}

func TestPeriods_Boundaries(t *testing.T) {
	valuations := []Valuation{value("2024-01-01", 1000), value("2024-01-31", 1100), value("2024-03-01", 1200)}
	flows := []CashFlow{
		flow("2024-01-01", -400), // on the first start: before any period
		flow("2024-01-31", -50),  // on the first end: first period
		flow("2024-02-10", 20),
	}

	periods := Periods(valuations, flows)
	require.Len(t, periods, 2)

	first := periods[0]
	assert.Equal(t, []CashFlow{flows[1]}, first.Flows)
	assert.Equal(t, 50.0, first.NetContribution)
	assert.Equal(t, 0.0, first.WeightedContribution)
	assert.InDelta(t, 50.0/1000.0, first.Return, 1e-12)

	second := periods[1]
	assert.Equal(t, []CashFlow{flows[2]}, second.Flows)
	assert.Equal(t, -20.0, second.NetContribution)
	assert.False(t, second.Skipped)
}

func TestPeriods_StartDateFlowHasNoEffect(t *testing.T) {
	valuations := []Valuation{value("2024-01-01", 1000), value("2024-01-31", 1100)}
	without := Periods(valuations, nil)
	with := Periods(valuations, []CashFlow{flow("2024-01-01", -250)})

	require.Len(t, with, 1)
	assert.Empty(t, with[0].Flows)
	assert.Equal(t, without[0].Return, with[0].Return)
}

func TestPeriods_ZeroLength(t *testing.T) {
	periods := Periods([]Valuation{value("2024-01-01", 1000), value("2024-01-01", 900)}, []CashFlow{flow("2024-01-01", -100)})
	require.Len(t, periods, 1)
	assert.True(t, periods[0].Skipped)
	assert.Equal(t, 0.0, periods[0].Return)
	assert.Equal(t, Percent(0), Link(periods))
}
