// Command rtn measures the time-weighted and money-weighted returns of a ledger.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path"

	"github.com/etnz/returns/cmd"
	"github.com/etnz/returns/docs"
	"github.com/google/subcommands"
	"github.com/posener/complete/v2"
	"github.com/posener/complete/v2/predict"
)

// completion describes the command line for shell completion.
func completion() *complete.Command {
	ledgers := predict.Files("*")
	periods := predict.Set{"day", "week", "month", "quarter", "year"}
	report := &complete.Command{Flags: map[string]complete.Predictor{
		"l":      ledgers,
		"select": predict.Something,
		"p":      periods,
		"start":  predict.Something,
		"d":      predict.Something,
	}}
	entry := &complete.Command{Flags: map[string]complete.Predictor{
		"l": predict.Files("*.jsonl"),
		"d": predict.Something,
		"a": predict.Something,
		"c": predict.Something,
		"m": predict.Something,
	}}
	topics, _ := docs.GetAllTopics()

	return &complete.Command{
		Sub: map[string]*complete.Command{
			"xirr": report,
			"twr":  report,
			"review": {Flags: map[string]complete.Predictor{
				"l":      ledgers,
				"select": predict.Something,
				"p":      periods,
				"start":  predict.Something,
				"d":      predict.Something,
				"n":      predict.Something,
			}},
			"deposit":  entry,
			"withdraw": entry,
			"value":    entry,
			"serve":    {Flags: map[string]complete.Predictor{"addr": predict.Something}},
			"topic":    {Args: predict.Set(topics)},
		},
	}
}

func main() {
	completion().Complete("rtn")

	cfg, err := cmd.LoadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading configuration: %v\n", err)
		os.Exit(int(subcommands.ExitFailure))
	}

	commander := subcommands.NewCommander(flag.CommandLine, path.Base(os.Args[0]))
	commander.Register(commander.HelpCommand(), "")
	commander.Register(commander.FlagsCommand(), "")
	commander.Register(commander.CommandsCommand(), "")
	cmd.Register(commander, cfg)

	flag.Parse()
	os.Exit(int(commander.Execute(context.Background())))
}
