// Package cmd implements the CLI application around the mock brokerage.
package cmd

import (
	"fmt"
	"os"

	"github.com/google/subcommands"

	"github.com/miraclehq/miracle"
)

// Register the subcommands.
// A main package calls Register() and then Execute() on the user-selected one.
func Register(c *subcommands.Commander) {
	c.Register(&buyCmd{}, "trading")
	c.Register(&sellCmd{}, "trading")
	c.Register(&depositCmd{}, "trading")
	c.Register(&withdrawCmd{}, "trading")

	c.Register(&pieCreateCmd{}, "pies")
	c.Register(&pieDeleteCmd{}, "pies")
	c.Register(&piesCmd{}, "pies")

	c.Register(&summaryCmd{}, "reports")
	c.Register(&holdingsCmd{}, "reports")
	c.Register(&historyCmd{}, "reports")

	c.Register(&insightCmd{}, "ai")
	c.Register(&serveCmd{}, "service")
}

// session loads the embedded market catalog and the seed ledger. The
// state is session-scoped: every process starts from the same snapshot,
// exactly like a page reload of the web front end.
func session() (*miracle.Catalog, *miracle.Ledger, error) {
	catalog, err := miracle.DefaultCatalog()
	if err != nil {
		return nil, nil, fmt.Errorf("loading market catalog: %w", err)
	}
	ledger, err := miracle.DefaultLedger(catalog)
	if err != nil {
		return nil, nil, fmt.Errorf("loading seed portfolio: %w", err)
	}
	return catalog, ledger, nil
}

func fail(err error) subcommands.ExitStatus {
	fmt.Fprintln(os.Stderr, "Error:", err)
	return subcommands.ExitFailure
}
