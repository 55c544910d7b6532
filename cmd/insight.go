package cmd

import (
	"context"
	"flag"
	"fmt"

	"github.com/google/subcommands"

	"github.com/miraclehq/miracle"
	"github.com/miraclehq/miracle/insight"
)

type insightCmd struct {
	symbol string
}

func (*insightCmd) Name() string     { return "insight" }
func (*insightCmd) Synopsis() string { return "show AI commentary for an instrument or the portfolio" }
func (*insightCmd) Usage() string {
	return `miracle insight [-s <symbol>]

  Prints a short AI-generated observation about one instrument, or about
  the whole portfolio when no symbol is given. Without a GEMINI_API_KEY the
  command falls back to a static message.
`
}

func (c *insightCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.symbol, "s", "", "Symbol to comment on. Empty for the portfolio view.")
}

func (c *insightCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	catalog, ledger, err := session()
	if err != nil {
		return fail(err)
	}

	client := insight.New(ctx)
	if c.symbol != "" {
		inst := catalog.Get(c.symbol)
		if inst == nil {
			return fail(fmt.Errorf("unknown symbol %q: %w", c.symbol, miracle.ErrUnknownSymbol))
		}
		fmt.Println(client.InstrumentInsight(ctx, inst))
		return subcommands.ExitSuccess
	}

	fmt.Println(client.PortfolioInsight(ctx, miracle.NewValuation(catalog, ledger)))
	return subcommands.ExitSuccess
}
