package returns

// Performance holds the value of a position at both ends of a range.
type Performance struct {
	Start, End Money
}

func NewPerformance(start, end Money) Performance {
	return Performance{Start: start, End: end}
}

// Change returns the difference in value, flows included.
func (p Performance) Change() Money {
	return p.End.Sub(p.Start)
}

// Percent returns the simple change in value, or 0 if the start value is zero.
func (p Performance) Percent() Percent {
	if p.Start.IsZero() {
		return 0
	}
	return Percent(100 * p.Change().InexactFloat64() / p.Start.InexactFloat64())
}
