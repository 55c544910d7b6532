package cmd

import (
	"context"
	"flag"
	"fmt"

	"github.com/google/subcommands"

	"github.com/miraclehq/miracle"
)

type depositCmd struct {
	amount float64
}

func (*depositCmd) Name() string     { return "deposit" }
func (*depositCmd) Synopsis() string { return "deposit cash into the portfolio" }
func (*depositCmd) Usage() string {
	return `miracle deposit -a <amount>

  Adds cash to the portfolio balance.
`
}

func (c *depositCmd) SetFlags(f *flag.FlagSet) {
	f.Float64Var(&c.amount, "a", 0, "Amount to deposit.")
}

func (c *depositCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	return moveCash(c.amount, (*miracle.Ledger).ApplyDeposit)
}

type withdrawCmd struct {
	amount float64
}

func (*withdrawCmd) Name() string     { return "withdraw" }
func (*withdrawCmd) Synopsis() string { return "withdraw cash from the portfolio" }
func (*withdrawCmd) Usage() string {
	return `miracle withdraw -a <amount>

  Removes cash from the portfolio balance.
`
}

func (c *withdrawCmd) SetFlags(f *flag.FlagSet) {
	f.Float64Var(&c.amount, "a", 0, "Amount to withdraw.")
}

func (c *withdrawCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	return moveCash(c.amount, (*miracle.Ledger).ApplyWithdraw)
}

func moveCash(amount float64, apply func(*miracle.Ledger, miracle.Money) (*miracle.Ledger, error)) subcommands.ExitStatus {
	catalog, ledger, err := session()
	if err != nil {
		return fail(err)
	}

	next, err := apply(ledger, miracle.M(amount, catalog.Currency()))
	if err != nil {
		return fail(err)
	}

	fmt.Printf("Cash balance: %s\n", next.Cash())
	return subcommands.ExitSuccess
}
