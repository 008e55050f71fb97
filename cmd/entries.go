package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/returns"
	"github.com/etnz/returns/date"
	"github.com/google/subcommands"
	"github.com/rs/zerolog"
)

// entryCmd appends a deposit, a withdrawal or a value to the ledger.
type entryCmd struct {
	cmd  returns.CommandType
	cfg  Config
	log  zerolog.Logger
	file string

	date     string
	amount   float64
	currency string
	memo     string
}

func (c *entryCmd) Name() string { return string(c.cmd) }
func (c *entryCmd) Synopsis() string {
	switch c.cmd {
	case returns.CmdDeposit:
		return "record money put into the investment"
	case returns.CmdWithdraw:
		return "record money taken out of the investment"
	default:
		return "record the market value of the investment"
	}
}
func (c *entryCmd) Usage() string {
	return fmt.Sprintf(`rtn %s -a <amount> [-d <date>] [-c <currency>] [-m <memo>] [-l <ledger>]

  %s.
`, c.cmd, c.Synopsis())
}

func (c *entryCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.file, "l", c.cfg.LedgerFile, "Ledger file to append to (.jsonl).")
	f.StringVar(&c.date, "d", "0d", "Date of the entry. See 'rtn topic ledger' for relative dates.")
	f.Float64Var(&c.amount, "a", 0, "Amount of the entry")
	f.StringVar(&c.currency, "c", "", "Currency of the amount (e.g., USD, EUR). Must match the ledger")
	f.StringVar(&c.memo, "m", "", "An optional note")
}

func (c *entryCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	day, err := date.Parse(c.date)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing date: %v\n", err)
		return subcommands.ExitUsageError
	}
	amount := returns.M(c.amount, returns.NormalizeCurrency(c.currency))

	var e returns.Entry
	switch c.cmd {
	case returns.CmdDeposit:
		e = returns.NewDeposit(day, amount, c.memo)
	case returns.CmdWithdraw:
		e = returns.NewWithdraw(day, amount, c.memo)
	default:
		e = returns.NewValue(day, amount, c.memo)
	}
	if err := e.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		f.Usage()
		return subcommands.ExitUsageError
	}

	if err := appendEntry(c.file, e); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	c.log.Info().Str("ledger", c.file).Str("command", string(c.cmd)).Str("date", day.String()).Msg("entry appended")
	return subcommands.ExitSuccess
}
