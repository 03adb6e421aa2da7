package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/etnz/fundnav"
	"github.com/etnz/fundnav/renderer"
	"github.com/google/subcommands"
)

// runCmd holds the flags for the 'run' subcommand.
type runCmd struct {
	inputFlags
	outputDir string
	formats   string
	from, to  string
}

func (*runCmd) Name() string { return "run" }
func (*runCmd) Synopsis() string {
	return "compute IRR, NAV schedules and FX hedges, and write the outputs"
}
func (*runCmd) Usage() string {
	return `fnav run [-file <ledger>] [-fund <name>] [-output-dir <dir>] [-format csv,jsonl,markdown,html] [-from <date>] [-to <date>]

  Runs the whole pipeline on a fund: validates the ledger, computes the IRR per
  currency and for the fund, the NAV schedule of each currency and the FX
  forwards hedging them. Outputs are written only if every step succeeded.

Usage Examples:
# Default input file and fund, writes into ./outputs
$ fnav run

$ fnav run -file CST_Case_Study_data.xlsx -fund "Fund I" -output-dir out -format csv
`
}

func (c *runCmd) SetFlags(f *flag.FlagSet) {
	c.inputFlags.SetFlags(f)
	f.StringVar(&c.outputDir, "output-dir", "", "Directory receiving the outputs")
	f.StringVar(&c.formats, "format", "", "Comma separated output formats: csv, jsonl, markdown, html")
	f.StringVar(&c.from, "from", "", "Hedge only NAV dates on or after this date (YYYY-MM-DD)")
	f.StringVar(&c.to, "to", "", "Hedge only NAV dates on or before this date (YYYY-MM-DD)")
}

func (c *runCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	s, status, err := c.open()
	if err != nil {
		return fail(status, err)
	}
	if c.outputDir != "" {
		s.cfg.Output.Dir = c.outputDir
	}
	if c.formats != "" {
		s.cfg.Output.Formats = splitList(c.formats)
	}
	if c.from != "" || c.to != "" {
		s.cfg.Hedge.From, s.cfg.Hedge.To = c.from, c.to
	}

	formats, err := renderer.ParseFormats(strings.Join(s.cfg.Output.Formats, ","))
	if err != nil {
		return fail(subcommands.ExitUsageError, err)
	}
	window, err := s.cfg.Hedge.Window()
	if err != nil {
		return fail(subcommands.ExitUsageError, err)
	}

	res, err := s.run(fundnav.HedgeOptions{Window: window})
	if err != nil {
		return fail(subcommands.ExitFailure, err)
	}

	paths, err := renderer.Write(s.cfg.Output.Dir, res, formats)
	if err != nil {
		return fail(subcommands.ExitFailure, err)
	}
	for _, p := range paths {
		fmt.Fprintf(os.Stderr, "wrote %s\n", p)
	}
	printMarkdown(renderer.Markdown(res))
	return subcommands.ExitSuccess
}
