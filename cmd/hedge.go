package cmd

import (
	"context"
	"flag"
	"os"
	"strings"

	"github.com/etnz/fundnav"
	"github.com/etnz/fundnav/date"
	"github.com/etnz/fundnav/renderer"
	"github.com/google/subcommands"
)

type hedgeCmd struct {
	inputFlags
	currencies string
	from, to   string
	jsonl      bool
}

func (*hedgeCmd) Name() string { return "hedge" }
func (*hedgeCmd) Synopsis() string {
	return "propose FX forwards hedging the NAV of foreign currencies"
}
func (*hedgeCmd) Usage() string {
	return `fnav hedge [-file <ledger>] [-fund <name>] [-c GBP,USD] [-from <date>] [-to <date>] [-jsonl]

  Proposes, for each foreign currency, one forward sale per pair of consecutive
  NAV dates with a positive NAV at delivery. The notional is that NAV discounted
  back to the trade date at the currency IRR.
`
}

func (c *hedgeCmd) SetFlags(f *flag.FlagSet) {
	c.inputFlags.SetFlags(f)
	f.StringVar(&c.currencies, "c", "", "Comma separated currencies to hedge, all foreign currencies by default")
	f.StringVar(&c.from, "from", "", "Hedge only NAV dates on or after this date (YYYY-MM-DD)")
	f.StringVar(&c.to, "to", "", "Hedge only NAV dates on or before this date (YYYY-MM-DD)")
	f.BoolVar(&c.jsonl, "jsonl", false, "Print trades as JSONL instead of a table")
}

func (c *hedgeCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	s, status, err := c.open()
	if err != nil {
		return fail(status, err)
	}
	if c.from != "" || c.to != "" {
		s.cfg.Hedge.From, s.cfg.Hedge.To = c.from, c.to
	}
	var window date.Range
	if window, err = s.cfg.Hedge.Window(); err != nil {
		return fail(subcommands.ExitUsageError, err)
	}

	var currencies []string
	for _, cur := range splitList(c.currencies) {
		currencies = append(currencies, fundnav.NormalizeCurrency(strings.ToUpper(cur)))
	}

	res, err := s.run(fundnav.HedgeOptions{Currencies: currencies, Window: window})
	if err != nil {
		return fail(subcommands.ExitFailure, err)
	}
	if c.jsonl {
		if err := fundnav.EncodeTrades(os.Stdout, res.Trades); err != nil {
			return fail(subcommands.ExitFailure, err)
		}
		return subcommands.ExitSuccess
	}
	printMarkdown(renderer.TradesMarkdown(res.Trades))
	return subcommands.ExitSuccess
}
