package cmd

import (
	"context"
	"flag"
	"fmt"
	"maps"
	"slices"
	"strings"

	"github.com/etnz/fundnav"
	"github.com/etnz/fundnav/renderer"
	"github.com/google/subcommands"
)

type navCmd struct {
	inputFlags
	currency string
}

func (*navCmd) Name() string     { return "nav" }
func (*navCmd) Synopsis() string { return "display the NAV schedule of each currency" }
func (*navCmd) Usage() string {
	return `fnav nav [-file <ledger>] [-fund <name>] [-c <currency>]

  Displays, for each currency, the present value of the remaining cashflows at
  each cashflow date, discounted at the currency IRR.
`
}

func (c *navCmd) SetFlags(f *flag.FlagSet) {
	c.inputFlags.SetFlags(f)
	f.StringVar(&c.currency, "c", "", "Only display this currency")
}

func (c *navCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	s, status, err := c.open()
	if err != nil {
		return fail(status, err)
	}
	res, err := s.run(fundnav.HedgeOptions{})
	if err != nil {
		return fail(subcommands.ExitFailure, err)
	}

	currencies := slices.Sorted(maps.Keys(res.NAVSchedules))
	if c.currency != "" {
		cur := fundnav.NormalizeCurrency(strings.ToUpper(c.currency))
		if _, ok := res.NAVSchedules[cur]; !ok {
			return fail(subcommands.ExitFailure, fmt.Errorf("%w %s, available: %q", fundnav.ErrNoSchedule, cur, currencies))
		}
		currencies = []string{cur}
	}

	var b strings.Builder
	for _, cur := range currencies {
		b.WriteString(renderer.NAVMarkdown(res.NAVSchedules[cur]))
	}
	printMarkdown(b.String())
	return subcommands.ExitSuccess
}
