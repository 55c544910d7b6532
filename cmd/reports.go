package cmd

import (
	"context"
	"flag"

	"github.com/google/subcommands"

	"github.com/miraclehq/miracle/renderer"
)

type summaryCmd struct{}

func (*summaryCmd) Name() string     { return "summary" }
func (*summaryCmd) Synopsis() string { return "show net worth, allocation and top holdings" }
func (*summaryCmd) Usage() string {
	return `miracle summary

  Shows the portfolio overview: net worth, cash, sector allocation and the
  largest holdings.
`
}

func (*summaryCmd) SetFlags(_ *flag.FlagSet) {}

func (*summaryCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	catalog, ledger, err := session()
	if err != nil {
		return fail(err)
	}
	printMarkdown(renderer.SummaryMarkdown(catalog, ledger))
	return subcommands.ExitSuccess
}

type holdingsCmd struct{}

func (*holdingsCmd) Name() string     { return "holdings" }
func (*holdingsCmd) Synopsis() string { return "list all positions with unrealized gains" }
func (*holdingsCmd) Usage() string {
	return `miracle holdings

  Lists every position with its cost basis, current price and unrealized gain.
`
}

func (*holdingsCmd) SetFlags(_ *flag.FlagSet) {}

func (*holdingsCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	catalog, ledger, err := session()
	if err != nil {
		return fail(err)
	}
	printMarkdown(renderer.HoldingsMarkdown(catalog, ledger))
	return subcommands.ExitSuccess
}

type historyCmd struct{}

func (*historyCmd) Name() string     { return "history" }
func (*historyCmd) Synopsis() string { return "list all transactions, newest first" }
func (*historyCmd) Usage() string {
	return `miracle history

  Lists the transaction log, newest first.
`
}

func (*historyCmd) SetFlags(_ *flag.FlagSet) {}

func (*historyCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	_, ledger, err := session()
	if err != nil {
		return fail(err)
	}
	printMarkdown(renderer.HistoryMarkdown(ledger))
	return subcommands.ExitSuccess
}
