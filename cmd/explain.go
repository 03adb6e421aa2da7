package cmd

import (
	"context"
	"flag"
	"os"
	"strings"

	"github.com/etnz/fundnav"
	"github.com/etnz/fundnav/agent"
	"github.com/google/subcommands"
	"google.golang.org/genai"
)

// explainCmd sends the run summary to the Gemini analyst.
type explainCmd struct {
	inputFlags
	model       string
	interactive bool
}

func (*explainCmd) Name() string { return "explain" }
func (*explainCmd) Synopsis() string {
	return "ask the AI analyst to comment on a fund run"
}
func (*explainCmd) Usage() string {
	return `fnav explain [-file <ledger>] [-fund <name>] [-model <gemini model>] [-i] [question...]

  Runs the pipeline, then sends its summary and the question to a Gemini
  analyst that can read every computed figure. With -i the conversation
  continues interactively. Requires GEMINI_API_KEY (or GOOGLE_API_KEY).
`
}

func (c *explainCmd) SetFlags(f *flag.FlagSet) {
	c.inputFlags.SetFlags(f)
	f.StringVar(&c.model, "model", "", "Gemini model")
	f.BoolVar(&c.interactive, "i", false, "Continue the conversation interactively")
}

func (c *explainCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	s, status, err := c.open()
	if err != nil {
		return fail(status, err)
	}
	if c.model != "" {
		s.cfg.Assistant.Model = c.model
	}
	res, err := s.run(fundnav.HedgeOptions{})
	if err != nil {
		return fail(subcommands.ExitFailure, err)
	}

	client, err := genai.NewClient(ctx, nil)
	if err != nil {
		return fail(subcommands.ExitFailure, err)
	}

	analyst := agent.NewAnalyst(res, s.cfg.Assistant.Model)
	analyst.Logger = s.log
	a := agent.New(os.Stdout, os.Stdin, s.cfg.Assistant.Model, analyst)
	brief := agent.Brief(res, strings.Join(f.Args(), " "))

	if c.interactive {
		if err := a.Run(ctx, client, brief); err != nil {
			return fail(subcommands.ExitFailure, err)
		}
		return subcommands.ExitSuccess
	}
	answer, err := a.Explain(ctx, client, brief)
	if err != nil {
		return fail(subcommands.ExitFailure, err)
	}
	printMarkdown(answer)
	return subcommands.ExitSuccess
}
