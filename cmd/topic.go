package cmd

import (
	"context"
	"flag"

	"github.com/etnz/fundnav/docs"
	"github.com/google/subcommands"
)

type topicCmd struct{}

func (*topicCmd) Name() string     { return "topic" }
func (*topicCmd) Synopsis() string { return "read the documentation of a topic" }
func (*topicCmd) Usage() string {
	return `fnav topic [<topic>...]

  Prints the documentation of each topic, "*" for all of them. Without a topic,
  prints the list of topics.
`
}
func (*topicCmd) SetFlags(f *flag.FlagSet) {}

func (*topicCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() == 0 {
		printMarkdown(docs.Index())
		return subcommands.ExitSuccess
	}
	content, err := docs.GetTopics(f.Args()...)
	if err != nil {
		return fail(subcommands.ExitUsageError, err)
	}
	printMarkdown(content)
	return subcommands.ExitSuccess
}
