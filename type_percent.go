package returns

import "fmt"

// Percent is a ratio expressed in percent (10 is 10%).
type Percent float64

// RateToPercent converts a fractional rate (0.1) into a Percent (10%).
func RateToPercent(rate float64) Percent { return Percent(rate * 100) }

func (p Percent) Equal(q Percent) bool {
	// it has to be compared with some precision
	const precision = 0.0001
	diff := p - q
	if diff < 0 {
		diff = -diff
	}
	return diff < precision
}

func (p Percent) String() string {
	return fmt.Sprintf("%.2f%%", p)
}

func (p Percent) SignedString() string {
	res := fmt.Sprintf("%+.2f%%", p)
	if res == "+0.00%" || res == "-0.00%" {
		return "-"
	}
	return res
}
