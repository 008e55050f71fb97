package date

import "fmt"

// Range represents a range of dates.
type Range struct{ From, To Date }

// NewRange returns the range between two dates.
func NewRange(from, to Date) Range { return Range{From: from, To: to} }

// Contains return true date is included in the range (boundaries included)
func (r Range) Contains(d Date) bool { return !d.Before(r.From) && !d.After(r.To) }

// ContainsAfterStart reports whether d is in (From, To]: the start day
// belongs to whatever came before the range.
func (r Range) ContainsAfterStart(d Date) bool { return d.After(r.From) && !d.After(r.To) }

// Days returns the number of whole days between From and To.
func (r Range) Days() int { return r.From.DaysUntil(r.To) }

// Name the period range
func (r Range) Name() string {
	p, ok := r.Period()
	if ok {
		return p.String()
	}
	return "special"
}

// Period returns the period of this range if it's a standard one.
func (r Range) Period() (p Period, ok bool) {
	for _, p := range []Period{Daily, Weekly, Monthly, Quarterly, Yearly} {
		if p.Range(r.From) == r {
			return p, true
		}
	}
	return Daily, false
}

// Identifier compute a unique identifier for the Range.
// If the period is defined, use a short insighful name
func (r Range) Identifier() string {
	p, ok := r.Period()
	if !ok {
		return fmt.Sprintf("%s_%s", r.From, r.To)
	}
	switch p {
	case Weekly:
		_, week := r.From.time().ISOWeek()
		return fmt.Sprintf("%d-W%02d", r.From.Year(), week)
	case Monthly:
		return r.From.Format("2006-01")
	case Quarterly:
		return fmt.Sprintf("%d-Q%d", r.From.Year(), (r.From.Month()-1)/3+1)
	case Yearly:
		return r.From.Format("2006")
	default:
		return r.From.String()
	}
}

func (r Range) String() string { return fmt.Sprintf("%s to %s", r.From, r.To) }
