package cmd

import (
	"context"
	"flag"
	"path/filepath"
	"strings"

	"github.com/etnz/returns/renderer"
	"github.com/google/subcommands"
)

// reviewCmd holds the flags for the 'review' subcommand.
type reviewCmd struct {
	cfg    Config
	name   string
	ledger ledgerFlags
	rng    rangeFlags
}

func (*reviewCmd) Name() string     { return "review" }
func (*reviewCmd) Synopsis() string { return "review the performance of a ledger" }
func (*reviewCmd) Usage() string {
	return `rtn review [-p <period> | -start <date>] [-d <date>] [-l <ledger>] [-n <name>]

  Reviews the ledger over the range: values, contributions, time-weighted and
  money-weighted returns, and the return of each period between two values.
`
}

func (c *reviewCmd) SetFlags(f *flag.FlagSet) {
	c.ledger.SetFlags(f, c.cfg)
	c.rng.SetFlags(f)
	f.StringVar(&c.name, "n", "", "Name in the title of the review. Defaults to the ledger file name.")
}

func (c *reviewCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	rv, status := newReview(&c.ledger, &c.rng)
	if status != subcommands.ExitSuccess {
		return status
	}
	name := c.name
	if name == "" {
		base := filepath.Base(c.ledger.file)
		name = strings.TrimSuffix(base, filepath.Ext(base))
	}
	printMarkdown(renderer.RenderReview(renderer.NewReview(name, rv)))
	return subcommands.ExitSuccess
}
