package returns

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/etnz/returns/date"
)

// CommandType identifies the kind of a ledger Entry.
type CommandType string

const (
	CmdDeposit  CommandType = "deposit"  // money put into the position
	CmdWithdraw CommandType = "withdraw" // money taken out of the position
	CmdValue    CommandType = "value"    // market value of the position
)

// ParseCommandType parses a command name.
func ParseCommandType(s string) (CommandType, error) {
	switch c := CommandType(s); c {
	case CmdDeposit, CmdWithdraw, CmdValue:
		return c, nil
	default:
		return "", fmt.Errorf("unknown command %q", s)
	}
}

// Entry is a single line of a ledger.
type Entry struct {
	Command CommandType
	Date    date.Date
	Amount  Money  // Amount moved, or the market value for CmdValue.
	Memo    string // Memo provides an optional rationale or note.
}

// NewDeposit returns a deposit entry.
func NewDeposit(on date.Date, amount Money, memo string) Entry {
	return Entry{Command: CmdDeposit, Date: on, Amount: amount, Memo: memo}
}

// NewWithdraw returns a withdraw entry.
func NewWithdraw(on date.Date, amount Money, memo string) Entry {
	return Entry{Command: CmdWithdraw, Date: on, Amount: amount, Memo: memo}
}

// NewValue returns a valuation snapshot entry.
func NewValue(on date.Date, value Money, memo string) Entry {
	return Entry{Command: CmdValue, Date: on, Amount: value, Memo: memo}
}

// MarshalJSON writes the entry with a stable field order.
func (e Entry) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.Append("command", e.Command)
	w.Append("date", e.Date)
	w.Optional("currency", e.Amount.cur)
	w.Append("amount", e.Amount.value)
	w.Optional("memo", e.Memo)
	return w.MarshalJSON()
}

// CashFlow returns the entry as a flow of the position, and false for valuations.
//
// A deposit is capital contributed to the position, hence a negative amount.
func (e Entry) CashFlow() (CashFlow, bool) {
	switch e.Command {
	case CmdDeposit:
		return NewCashFlow(e.Date, -e.Amount.InexactFloat64()), true
	case CmdWithdraw:
		return NewCashFlow(e.Date, e.Amount.InexactFloat64()), true
	default:
		return CashFlow{}, false
	}
}

// Validate checks the entry fields.
func (e Entry) Validate() error {
	var errs []error
	if _, err := ParseCommandType(string(e.Command)); err != nil {
		errs = append(errs, err)
	}
	if e.Date.IsZero() {
		errs = append(errs, errors.New("missing date"))
	}
	switch {
	case e.Command == CmdValue && e.Amount.IsNegative():
		errs = append(errs, fmt.Errorf("value must not be negative, got %s", e.Amount))
	case e.Command != CmdValue && !e.Amount.IsPositive():
		errs = append(errs, fmt.Errorf("%s amount must be positive, got %s", e.Command, e.Amount))
	}
	if len(errs) > 0 {
		return fmt.Errorf("invalid %s on %s: %w", e.Command, e.Date, errors.Join(errs...))
	}
	return nil
}

// Ledger is the chronological record of a single account.
//
// Entries are always in chronological order; same-day entries keep the order
// they were appended in.
type Ledger struct {
	entries  []Entry
	currency string
}

// NewLedger creates an empty ledger.
func NewLedger() *Ledger { return &Ledger{} }

// Append validates and adds entries to the ledger.
//
// All amounts must share the same currency: converting between currencies is
// not supported. On error, the ledger is left unchanged.
func (l *Ledger) Append(entries ...Entry) error {
	currency := l.currency
	for _, e := range entries {
		if err := e.Validate(); err != nil {
			return err
		}
		c, err := mergeCurrency(currency, e)
		if err != nil {
			return err
		}
		currency = c
	}
	l.currency = currency
	l.entries = append(l.entries, entries...)
	slices.SortStableFunc(l.entries, func(a, b Entry) int { return a.Date.Compare(b.Date) })
	return nil
}

// mergeCurrency returns the ledger currency once e is added to a ledger in currency.
func mergeCurrency(currency string, e Entry) (string, error) {
	c := e.Amount.Currency()
	switch {
	case c == "":
		return currency, nil
	case currency != "" && currency != c:
		return "", fmt.Errorf("%s on %s: currency %s in a %s ledger", e.Command, e.Date, c, currency)
	default:
		return c, nil
	}
}

// NormalizeCurrency returns the canonical form of a currency code ("eur" is "EUR").
func NormalizeCurrency(code string) string { return strings.ToUpper(strings.TrimSpace(code)) }

// Entries returns the ledger entries in chronological order.
func (l *Ledger) Entries() []Entry { return slices.Clone(l.entries) }

// Len returns the number of entries.
func (l *Ledger) Len() int { return len(l.entries) }

// Currency returns the ledger currency, or "" if no entry declares one.
func (l *Ledger) Currency() string { return l.currency }

// Range returns the range from the first to the last entry.
func (l *Ledger) Range() date.Range {
	if len(l.entries) == 0 {
		return date.Range{}
	}
	return date.NewRange(l.entries[0].Date, l.entries[len(l.entries)-1].Date)
}

// CashFlows returns the deposits and withdrawals dated in (r.From, r.To].
func (l *Ledger) CashFlows(r date.Range) []CashFlow {
	var flows []CashFlow
	for _, e := range l.entries {
		if !r.ContainsAfterStart(e.Date) {
			continue
		}
		if f, ok := e.CashFlow(); ok {
			flows = append(flows, f)
		}
	}
	return flows
}

// Valuations returns the value snapshots dated in [r.From, r.To], in chronological order.
func (l *Ledger) Valuations(r date.Range) []Valuation {
	var values []Valuation
	for _, e := range l.entries {
		if e.Command == CmdValue && r.Contains(e.Date) {
			values = append(values, NewValuation(e.Date, e.Amount.InexactFloat64()))
		}
	}
	sortValuations(values)
	return values
}

// ValueAsOf returns the latest value snapshot on or before day.
func (l *Ledger) ValueAsOf(day date.Date) (Money, bool) {
	var (
		v     Money
		found bool
	)
	for _, e := range l.entries {
		if e.Date.After(day) {
			break
		}
		if e.Command == CmdValue {
			v, found = e.Amount, true
		}
	}
	return v, found
}
