package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/returns"
	"github.com/google/subcommands"
	"github.com/rs/zerolog"
)

// newReview decodes the ledger and reviews it over the range of the flags.
func newReview(lf *ledgerFlags, rf *rangeFlags) (*returns.Review, subcommands.ExitStatus) {
	l, err := lf.Decode()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return nil, subcommands.ExitFailure
	}
	r, err := rf.Range(l)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return nil, subcommands.ExitUsageError
	}
	rv, err := l.NewReview(r)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return nil, subcommands.ExitUsageError
	}
	return rv, subcommands.ExitSuccess
}

// --- XIRR Command ---

type xirrCmd struct {
	cfg    Config
	log    zerolog.Logger
	ledger ledgerFlags
	rng    rangeFlags
}

func (*xirrCmd) Name() string     { return "xirr" }
func (*xirrCmd) Synopsis() string { return "print the money-weighted annual return" }
func (*xirrCmd) Usage() string {
	return `rtn xirr [-p <period> | -start <date>] [-d <date>] [-l <ledger>]

  Prints the annualized money-weighted return (XIRR) of the ledger over the range.
  The value held at the start of the range counts as a deposit, the value held
  at the end as a withdrawal. Prints "-" when there is no rate.
`
}

func (c *xirrCmd) SetFlags(f *flag.FlagSet) {
	c.ledger.SetFlags(f, c.cfg)
	c.rng.SetFlags(f)
}

func (c *xirrCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	rv, status := newReview(&c.ledger, &c.rng)
	if status != subcommands.ExitSuccess {
		return status
	}
	if rv.XIRRErr != nil {
		noResult(c.log, "xirr", rv.XIRRErr)
		return subcommands.ExitSuccess
	}
	fmt.Println(returns.RateToPercent(rv.XIRR))
	return subcommands.ExitSuccess
}

// --- TWR Command ---

type twrCmd struct {
	cfg    Config
	log    zerolog.Logger
	ledger ledgerFlags
	rng    rangeFlags
}

func (*twrCmd) Name() string     { return "twr" }
func (*twrCmd) Synopsis() string { return "print the time-weighted return" }
func (*twrCmd) Usage() string {
	return `rtn twr [-p <period> | -start <date>] [-d <date>] [-l <ledger>]

  Prints the time-weighted return of the ledger over the range, linking the
  Modified Dietz return of each period between two values.
  Prints "-" when there is not enough data.
`
}

func (c *twrCmd) SetFlags(f *flag.FlagSet) {
	c.ledger.SetFlags(f, c.cfg)
	c.rng.SetFlags(f)
}

func (c *twrCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	rv, status := newReview(&c.ledger, &c.rng)
	if status != subcommands.ExitSuccess {
		return status
	}
	if rv.TWRErr != nil {
		noResult(c.log, "twr", rv.TWRErr)
		return subcommands.ExitSuccess
	}
	fmt.Println(rv.TWR)
	return subcommands.ExitSuccess
}
