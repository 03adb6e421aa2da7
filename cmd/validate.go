package cmd

import (
	"context"
	"flag"

	"github.com/etnz/fundnav"
	"github.com/etnz/fundnav/renderer"
	"github.com/google/subcommands"
)

type validateCmd struct {
	inputFlags
}

func (*validateCmd) Name() string     { return "validate" }
func (*validateCmd) Synopsis() string { return "validate every row of a ledger" }
func (*validateCmd) Usage() string {
	return `fnav validate [-file <ledger>] [-sheet <name>]

  Validates every row of the ledger: cashflow types, currencies (GPB is read as
  GBP), dates and EUR base currency. Stops at the first invalid row, and shows
  every invalid field of that row.
`
}

func (c *validateCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	s, status, err := c.open()
	if err != nil {
		return fail(status, err)
	}
	records, err := fundnav.ValidateRecords(s.rows)
	if err != nil {
		return fail(subcommands.ExitFailure, err)
	}
	printMarkdown(renderer.FundsMarkdown(records))
	return subcommands.ExitSuccess
}
