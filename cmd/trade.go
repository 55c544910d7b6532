package cmd

import (
	"context"
	"flag"
	"fmt"

	"github.com/google/subcommands"

	"github.com/miraclehq/miracle"
	"github.com/miraclehq/miracle/renderer"
)

type buyCmd struct {
	symbol   string
	quantity float64
}

func (*buyCmd) Name() string     { return "buy" }
func (*buyCmd) Synopsis() string { return "buy a quantity of an instrument at the current price" }
func (*buyCmd) Usage() string {
	return `miracle buy -s <symbol> -q <quantity>

  Executes a buy at the instrument's current price and shows the resulting
  holdings.
`
}

func (c *buyCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.symbol, "s", "", "Symbol to buy.")
	f.Float64Var(&c.quantity, "q", 0, "Quantity to buy, fractional allowed.")
}

func (c *buyCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	return executeTrade(miracle.SideBuy, c.symbol, c.quantity)
}

type sellCmd struct {
	symbol   string
	quantity float64
}

func (*sellCmd) Name() string     { return "sell" }
func (*sellCmd) Synopsis() string { return "sell a quantity of a held instrument" }
func (*sellCmd) Usage() string {
	return `miracle sell -s <symbol> -q <quantity>

  Executes a sell at the instrument's current price and shows the resulting
  holdings.
`
}

func (c *sellCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.symbol, "s", "", "Symbol to sell.")
	f.Float64Var(&c.quantity, "q", 0, "Quantity to sell, fractional allowed.")
}

func (c *sellCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	return executeTrade(miracle.SideSell, c.symbol, c.quantity)
}

func executeTrade(side miracle.Side, symbol string, quantity float64) subcommands.ExitStatus {
	catalog, ledger, err := session()
	if err != nil {
		return fail(err)
	}

	next, tx, err := ledger.ApplyTrade(catalog, side, symbol, miracle.Q(quantity))
	if err != nil {
		return fail(err)
	}

	fmt.Printf("%s %s %s at %s, total %s\n",
		tx.Side, tx.Quantity, tx.Symbol, tx.Price, tx.Amount())
	printMarkdown(renderer.HoldingsMarkdown(catalog, next))
	return subcommands.ExitSuccess
}
