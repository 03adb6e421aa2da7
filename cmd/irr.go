package cmd

import (
	"context"
	"flag"

	"github.com/etnz/fundnav"
	"github.com/etnz/fundnav/renderer"
	"github.com/google/subcommands"
)

type irrCmd struct {
	inputFlags
}

func (*irrCmd) Name() string     { return "irr" }
func (*irrCmd) Synopsis() string { return "display the IRR of each currency and of the fund" }
func (*irrCmd) Usage() string {
	return `fnav irr [-file <ledger>] [-fund <name>]

  Displays the annualized IRR of each local currency, over local amounts, and
  of the whole fund over base amounts.
`
}

func (c *irrCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	s, status, err := c.open()
	if err != nil {
		return fail(status, err)
	}
	res, err := s.run(fundnav.HedgeOptions{})
	if err != nil {
		return fail(subcommands.ExitFailure, err)
	}
	printMarkdown(renderer.IRRMarkdown(res))
	return subcommands.ExitSuccess
}
