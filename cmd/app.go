// Package cmd implements the rtn command line application.
package cmd

import (
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/etnz/returns"
	"github.com/etnz/returns/date"
	"github.com/google/subcommands"
	"github.com/rs/zerolog"
)

// Register the subcommands.
// A main package will call Register() to allow subcommands, and Execute() on the user-selected one.
func Register(c *subcommands.Commander, cfg Config) {
	log := NewLogger(cfg, os.Stderr)

	c.Register(&xirrCmd{cfg: cfg, log: log}, "returns")
	c.Register(&twrCmd{cfg: cfg, log: log}, "returns")
	c.Register(&reviewCmd{cfg: cfg}, "returns")

	c.Register(&entryCmd{cmd: returns.CmdDeposit, cfg: cfg, log: log}, "ledger")
	c.Register(&entryCmd{cmd: returns.CmdWithdraw, cfg: cfg, log: log}, "ledger")
	c.Register(&entryCmd{cmd: returns.CmdValue, cfg: cfg, log: log}, "ledger")

	c.Register(&serveCmd{cfg: cfg, log: log}, "server")
	c.Register(&topicCmd{}, "help")
}

// DecodeLedger reads a ledger file, in the format given by its extension.
//
// selector is the JSONPath to the entries of a .json document. It is ignored
// for the other formats.
func DecodeLedger(file, selector string) (*returns.Ledger, error) {
	f, err := os.Open(file)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var l *returns.Ledger
	switch strings.ToLower(filepath.Ext(file)) {
	case ".yaml", ".yml":
		l, err = returns.DecodeLedgerYAML(f)
	case ".json":
		l, err = returns.DecodeLedgerJSON(f, selector)
	default:
		l, err = returns.DecodeLedger(f)
	}
	if err != nil {
		return nil, fmt.Errorf("decoding %q: %w", file, err)
	}
	return l, nil
}

// appendEntry appends a single entry to a JSONL ledger file, creating it if needed.
//
// The entry is checked against the existing entries first, so that a ledger
// never ends up holding two currencies.
func appendEntry(filename string, e returns.Entry) error {
	if ext := strings.ToLower(filepath.Ext(filename)); ext != ".jsonl" && ext != "" {
		return fmt.Errorf("cannot append to %q: only .jsonl ledgers are written", filename)
	}
	l, err := DecodeLedger(filename, "")
	switch {
	case errors.Is(err, fs.ErrNotExist):
		l = returns.NewLedger()
	case err != nil:
		return err
	}
	if err := l.Append(e); err != nil {
		return err
	}

	// Open the file in append mode, creating it if it doesn't exist.
	f, err := os.OpenFile(filename, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return fmt.Errorf("opening ledger file %q: %w", filename, err)
	}
	if err := returns.EncodeEntry(f, e); err != nil {
		f.Close()
		return fmt.Errorf("writing to ledger file %q: %w", filename, err)
	}
	return f.Close()
}

// rangeFlags are the flags selecting the date range of a report.
type rangeFlags struct {
	period string
	start  string
	date   string
}

func (r *rangeFlags) SetFlags(f *flag.FlagSet) {
	f.StringVar(&r.period, "p", "", "Calendar period (day, week, month, quarter, year) containing -d.")
	f.StringVar(&r.start, "start", "", "Start date of the range. Overrides -p.")
	f.StringVar(&r.date, "d", "", "End date of the range. Defaults to the last entry of the ledger.")
}

// Range resolves the flags against a ledger. Without any flag, it is the
// whole ledger.
func (r *rangeFlags) Range(l *returns.Ledger) (date.Range, error) {
	full := l.Range()
	end := full.To
	if r.date != "" {
		d, err := date.Parse(r.date)
		if err != nil {
			return date.Range{}, fmt.Errorf("parsing end date: %w", err)
		}
		end = d
	}
	switch {
	case r.start != "":
		start, err := date.Parse(r.start)
		if err != nil {
			return date.Range{}, fmt.Errorf("parsing start date: %w", err)
		}
		if start.After(end) {
			return date.Range{}, fmt.Errorf("start date %s is after end date %s", start, end)
		}
		return date.NewRange(start, end), nil
	case r.period != "":
		p, err := date.ParsePeriod(r.period)
		if err != nil {
			return date.Range{}, fmt.Errorf("parsing period: %w", err)
		}
		return p.Range(end), nil
	default:
		if end.Before(full.From) {
			return date.NewRange(end, end), nil
		}
		return date.NewRange(full.From, end), nil
	}
}

// ledgerFlags are the flags selecting the ledger to read.
type ledgerFlags struct {
	file     string
	selector string
}

func (l *ledgerFlags) SetFlags(f *flag.FlagSet, cfg Config) {
	f.StringVar(&l.file, "l", cfg.LedgerFile, "Ledger file (.jsonl, .yaml, .yml or .json).")
	f.StringVar(&l.selector, "select", returns.DefaultSelect, "JSONPath to the entries of a .json ledger.")
}

func (l *ledgerFlags) Decode() (*returns.Ledger, error) { return DecodeLedger(l.file, l.selector) }

// noResult prints a missing return and logs the reason.
func noResult(log zerolog.Logger, what string, err error) {
	log.Debug().Err(err).Str("return", what).Msg("no result")
	fmt.Println("-")
}
