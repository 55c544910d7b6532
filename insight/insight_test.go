package insight

import (
	"context"
	"testing"

	"github.com/miraclehq/miracle"
)

// Without a backend every call must come back with the fixed fallback,
// never an empty string and never a panic.
func TestFallbackWithoutBackend(t *testing.T) {
	var c *Client
	ctx := context.Background()

	catalog, err := miracle.DefaultCatalog()
	if err != nil {
		t.Fatal(err)
	}
	ledger, err := miracle.DefaultLedger(catalog)
	if err != nil {
		t.Fatal(err)
	}

	if got := c.InstrumentInsight(ctx, catalog.Get("AAPL")); got != instrumentFallback {
		t.Errorf("nil client InstrumentInsight() = %q, want the fallback", got)
	}
	if got := c.PortfolioInsight(ctx, miracle.NewValuation(catalog, ledger)); got != portfolioFallback {
		t.Errorf("nil client PortfolioInsight() = %q, want the fallback", got)
	}

	zero := &Client{}
	if got := zero.InstrumentInsight(ctx, nil); got != instrumentFallback {
		t.Errorf("zero client InstrumentInsight(nil) = %q, want the fallback", got)
	}
	if got := zero.PortfolioInsight(ctx, miracle.NewValuation(catalog, ledger)); got != portfolioFallback {
		t.Errorf("zero client PortfolioInsight() = %q, want the fallback", got)
	}
}
