package returns

import (
	"bufio"
	"bytes"
	"encoding/json"
	"fmt"
	"io"

	"github.com/PaesslerAG/jsonpath"
	"github.com/etnz/returns/date"
	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

func init() {
	decimal.MarshalJSONWithoutQuotes = true
}

// DefaultSelect is the jsonpath used to find entries in a JSON document.
const DefaultSelect = "$.entries"

// entryRecord is the persisted shape of an Entry, shared by all the formats.
type entryRecord struct {
	Command  string       `json:"command" yaml:"command"`
	Date     date.Date    `json:"date" yaml:"date"`
	Amount   exactDecimal `json:"amount" yaml:"amount"`
	Currency string       `json:"currency" yaml:"currency"`
	Memo     string       `json:"memo" yaml:"memo"`
}

func (r entryRecord) entry() (Entry, error) {
	cmd, err := ParseCommandType(r.Command)
	if err != nil {
		return Entry{}, err
	}
	return Entry{
		Command: cmd,
		Date:    r.Date,
		Amount:  M(r.Amount.Decimal, NormalizeCurrency(r.Currency)),
		Memo:    r.Memo,
	}, nil
}

// exactDecimal is a decimal that can also be read from a YAML number.
type exactDecimal struct{ decimal.Decimal }

// UnmarshalYAML parses the scalar text, so that no precision is lost through float64.
func (d *exactDecimal) UnmarshalYAML(node *yaml.Node) error {
	v, err := decimal.NewFromString(node.Value)
	if err != nil {
		return fmt.Errorf("line %d: invalid amount %q: %w", node.Line, node.Value, err)
	}
	d.Decimal = v
	return nil
}

// DecodeLedger decodes entries from a stream of JSONL data, one entry per line,
// and returns a sorted Ledger.
func DecodeLedger(r io.Reader) (*Ledger, error) {
	var (
		entries  []Entry
		currency string
	)
	scanner := bufio.NewScanner(r)
	line := 0
	for scanner.Scan() {
		line++
		lineBytes := bytes.TrimSpace(scanner.Bytes())
		if len(lineBytes) == 0 {
			continue // Skip empty lines
		}
		var rec entryRecord
		if err := json.Unmarshal(lineBytes, &rec); err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		e, err := rec.entry()
		if err == nil {
			currency, err = checkEntry(currency, e)
		}
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		entries = append(entries, e)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading ledger: %w", err)
	}
	return newLedger(entries)
}

// checkEntry validates e for a ledger in currency, and returns the ledger
// currency once e is added.
func checkEntry(currency string, e Entry) (string, error) {
	if err := e.Validate(); err != nil {
		return "", err
	}
	return mergeCurrency(currency, e)
}

// newLedger returns a ledger holding already checked entries.
func newLedger(entries []Entry) (*Ledger, error) {
	ledger := NewLedger()
	if err := ledger.Append(entries...); err != nil {
		return nil, err
	}
	return ledger, nil
}

// EncodeEntry writes a single entry as a JSONL line.
func EncodeEntry(w io.Writer, e Entry) error {
	b, err := json.Marshal(e)
	if err != nil {
		return fmt.Errorf("encoding %s on %s: %w", e.Command, e.Date, err)
	}
	b = append(b, '\n')
	_, err = w.Write(b)
	return err
}

// EncodeLedger writes all the ledger entries in chronological order.
func EncodeLedger(w io.Writer, l *Ledger) error {
	for _, e := range l.entries {
		if err := EncodeEntry(w, e); err != nil {
			return err
		}
	}
	return nil
}

// DecodeLedgerYAML decodes a YAML document holding an "entries" list.
func DecodeLedgerYAML(r io.Reader) (*Ledger, error) {
	var doc struct {
		Entries []entryRecord `yaml:"entries"`
	}
	if err := yaml.NewDecoder(r).Decode(&doc); err != nil && err != io.EOF {
		return nil, fmt.Errorf("decoding yaml ledger: %w", err)
	}
	return newLedgerFromRecords(doc.Entries)
}

// DecodeLedgerJSON decodes the entries selected by a jsonpath expression in
// an arbitrary JSON document.
//
// The path must select a list of entry objects, or a single one.
func DecodeLedgerJSON(r io.Reader, path string) (*Ledger, error) {
	if path == "" {
		path = DefaultSelect
	}
	dec := json.NewDecoder(r)
	dec.UseNumber() // keep amounts exact
	var doc any
	if err := dec.Decode(&doc); err != nil {
		return nil, fmt.Errorf("decoding json document: %w", err)
	}
	selected, err := jsonpath.Get(path, doc)
	if err != nil {
		return nil, fmt.Errorf("selecting %q: %w", path, err)
	}
	if _, ok := selected.(map[string]any); ok {
		selected = []any{selected}
	}
	raw, err := json.Marshal(selected)
	if err != nil {
		return nil, fmt.Errorf("selecting %q: %w", path, err)
	}
	var records []entryRecord
	if err := json.Unmarshal(raw, &records); err != nil {
		return nil, fmt.Errorf("selecting %q: not a list of entries: %w", path, err)
	}
	return newLedgerFromRecords(records)
}

func newLedgerFromRecords(records []entryRecord) (*Ledger, error) {
	var currency string
	entries := make([]Entry, 0, len(records))
	for i, rec := range records {
		e, err := rec.entry()
		if err == nil {
			currency, err = checkEntry(currency, e)
		}
		if err != nil {
			return nil, fmt.Errorf("entry %d: %w", i+1, err)
		}
		entries = append(entries, e)
	}
	return newLedger(entries)
}
