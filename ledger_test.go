package miracle

import (
	"errors"
	"testing"
)

func TestLedgerApplyTrade_Buy(t *testing.T) {
	c := mustCatalog(t)
	l := mustLedger(t, c)

	// seed: cash 15215.70, AAPL 25 @ 150.00; AAPL quoted at 173.50
	next, tx, err := l.ApplyTrade(c, SideBuy, "AAPL", Q(5))
	if err != nil {
		t.Fatalf("ApplyTrade(BUY, AAPL, 5) failed: %v", err)
	}

	if want := M(14348.20, "USD"); !next.Cash().Equal(want) {
		t.Errorf("cash = %s, want %s", next.Cash(), want)
	}
	pos, ok := next.Position("AAPL")
	if !ok {
		t.Fatal("AAPL position disappeared")
	}
	if !pos.Quantity.Equal(Q(30)) {
		t.Errorf("quantity = %s, want 30", pos.Quantity)
	}
	// repeated buys keep the original average cost (observed behavior,
	// see ApplyTrade doc).
	if !pos.AvgCost.Equal(M(150.00, "USD")) {
		t.Errorf("avg cost = %s, want $150.00", pos.AvgCost)
	}

	if tx.Side != SideBuy || tx.Symbol != "AAPL" || !tx.Quantity.Equal(Q(5)) {
		t.Errorf("transaction = %+v, want BUY 5 AAPL", tx)
	}
	if !tx.Price.Equal(M(173.50, "USD")) {
		t.Errorf("transaction price = %s, want $173.50", tx.Price)
	}
	if tx.ID == "" {
		t.Error("transaction has no id")
	}

	history := next.History()
	if len(history) == 0 || history[0].ID != tx.ID {
		t.Error("new transaction is not first in the newest-first log")
	}

	// the previous snapshot must be untouched
	if !l.Cash().Equal(M(15215.70, "USD")) {
		t.Errorf("previous snapshot cash mutated to %s", l.Cash())
	}
	if prev, _ := l.Position("AAPL"); !prev.Quantity.Equal(Q(25)) {
		t.Errorf("previous snapshot quantity mutated to %s", prev.Quantity)
	}
}

func TestLedgerApplyTrade_BuyOpensPosition(t *testing.T) {
	c := mustCatalog(t)
	l := mustLedger(t, c)

	next, _, err := l.ApplyTrade(c, SideBuy, "ETH", Q(1.5))
	if err != nil {
		t.Fatalf("ApplyTrade(BUY, ETH, 1.5) failed: %v", err)
	}

	pos, ok := next.Position("ETH")
	if !ok {
		t.Fatal("no ETH position created")
	}
	if !pos.Quantity.Equal(Q(1.5)) {
		t.Errorf("quantity = %s, want 1.5", pos.Quantity)
	}
	// a fresh position opens at the current price
	if !pos.AvgCost.Equal(M(2280.00, "USD")) {
		t.Errorf("avg cost = %s, want $2,280.00", pos.AvgCost)
	}
	if want := M(15215.70, "USD").Sub(M(3420.00, "USD")); !next.Cash().Equal(want) {
		t.Errorf("cash = %s, want %s", next.Cash(), want)
	}
}

func TestLedgerApplyTrade_SellToZeroRemovesPosition(t *testing.T) {
	c := mustCatalog(t)
	l := mustLedger(t, c)

	next, _, err := l.ApplyTrade(c, SideSell, "AAPL", Q(25))
	if err != nil {
		t.Fatalf("ApplyTrade(SELL, AAPL, 25) failed: %v", err)
	}
	if _, ok := next.Position("AAPL"); ok {
		t.Error("position sold to zero should be removed")
	}
	if want := M(15215.70, "USD").Add(M(4337.50, "USD")); !next.Cash().Equal(want) {
		t.Errorf("cash = %s, want %s", next.Cash(), want)
	}
}

func TestLedgerApplyTrade_Errors(t *testing.T) {
	c := mustCatalog(t)
	l := mustLedger(t, c)

	testCases := []struct {
		name     string
		side     Side
		symbol   string
		quantity Quantity
		wantErr  error
	}{
		{"buy more than cash covers", SideBuy, "BTC", Q(1), ErrInsufficientFunds},
		{"sell more than held", SideSell, "AAPL", Q(26), ErrInsufficientHoldings},
		{"sell without position", SideSell, "MSFT", Q(1), ErrInsufficientHoldings},
		{"buy unknown symbol", SideBuy, "NOPE", Q(1), ErrUnknownSymbol},
		{"sell unknown symbol", SideSell, "NOPE", Q(1), ErrUnknownSymbol},
		{"buy zero quantity", SideBuy, "AAPL", Q(0), ErrInvalidQuantity},
		{"buy negative quantity", SideBuy, "AAPL", Q(-3), ErrInvalidQuantity},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			next, _, err := l.ApplyTrade(c, tc.side, tc.symbol, tc.quantity)
			if !errors.Is(err, tc.wantErr) {
				t.Fatalf("ApplyTrade() error = %v, want %v", err, tc.wantErr)
			}
			if next != nil {
				t.Error("failed trade must not return a snapshot")
			}
		})
	}

	// a failed trade must not leave a transaction behind
	if got := len(l.History()); got != 0 {
		t.Errorf("seed ledger has %d transactions after failed trades, want 0", got)
	}
}

func TestLedgerApplyDepositWithdraw(t *testing.T) {
	c := mustCatalog(t)
	l := mustLedger(t, c)

	next, err := l.ApplyDeposit(M(500, "USD"))
	if err != nil {
		t.Fatalf("ApplyDeposit(500) failed: %v", err)
	}
	if want := M(15715.70, "USD"); !next.Cash().Equal(want) {
		t.Errorf("cash after deposit = %s, want %s", next.Cash(), want)
	}

	next, err = next.ApplyWithdraw(M(715.70, "USD"))
	if err != nil {
		t.Fatalf("ApplyWithdraw(715.70) failed: %v", err)
	}
	if want := M(15000, "USD"); !next.Cash().Equal(want) {
		t.Errorf("cash after withdraw = %s, want %s", next.Cash(), want)
	}

	if _, err := next.ApplyWithdraw(M(15000.01, "USD")); !errors.Is(err, ErrInsufficientFunds) {
		t.Errorf("overdraw error = %v, want ErrInsufficientFunds", err)
	}
	if _, err := next.ApplyDeposit(M(0, "USD")); !errors.Is(err, ErrInvalidAmount) {
		t.Errorf("zero deposit error = %v, want ErrInvalidAmount", err)
	}
	if _, err := next.ApplyWithdraw(M(-10, "USD")); !errors.Is(err, ErrInvalidAmount) {
		t.Errorf("negative withdraw error = %v, want ErrInvalidAmount", err)
	}
}

func TestLedgerApplyPieCreate(t *testing.T) {
	c := mustCatalog(t)
	l := mustLedger(t, c)

	pie := Pie{
		ID:   "test-pie",
		Name: "Split Three Ways",
		Slices: []Slice{
			{Symbol: "AAPL", Weight: 34},
			{Symbol: "MSFT", Weight: 33},
			{Symbol: "GOOGL", Weight: 33},
		},
		Value: M(300, "USD"),
	}

	next, err := l.ApplyPieCreate(c, pie)
	if err != nil {
		t.Fatalf("ApplyPieCreate() failed: %v", err)
	}
	if want := M(14915.70, "USD"); !next.Cash().Equal(want) {
		t.Errorf("cash = %s, want %s", next.Cash(), want)
	}
	got := next.Pie("test-pie")
	if got == nil {
		t.Fatal("pie not recorded")
	}
	if !got.Value.Equal(M(300, "USD")) {
		t.Errorf("pie value = %s, want $300.00", got.Value)
	}
}

func TestLedgerApplyPieCreate_Errors(t *testing.T) {
	c := mustCatalog(t)
	l := mustLedger(t, c)

	valid := []Slice{{Symbol: "AAPL", Weight: 50}, {Symbol: "MSFT", Weight: 50}}

	testCases := []struct {
		name    string
		pie     Pie
		wantErr error
	}{
		{"unbalanced weights", Pie{ID: "p", Name: "p", Slices: []Slice{{Symbol: "AAPL", Weight: 60}, {Symbol: "MSFT", Weight: 50}}, Value: M(100, "USD")}, ErrInvalidWeightSum},
		{"unknown slice symbol", Pie{ID: "p", Name: "p", Slices: []Slice{{Symbol: "NOPE", Weight: 100}}, Value: M(100, "USD")}, ErrUnknownSymbol},
		{"no slices", Pie{ID: "p", Name: "p", Value: M(100, "USD")}, ErrNoSelection},
		{"underfunded", Pie{ID: "p", Name: "p", Slices: valid, Value: M(20000, "USD")}, ErrInsufficientFunds},
		{"zero deposit", Pie{ID: "p", Name: "p", Slices: valid, Value: M(0, "USD")}, ErrInvalidAmount},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := l.ApplyPieCreate(c, tc.pie); !errors.Is(err, tc.wantErr) {
				t.Errorf("ApplyPieCreate() error = %v, want %v", err, tc.wantErr)
			}
		})
	}
}

func TestLedgerApplyPieDelete(t *testing.T) {
	c := mustCatalog(t)
	l := mustLedger(t, c)

	// the seed portfolio carries one pie worth $1,250.00
	var seed Pie
	for p := range l.Pies() {
		seed = p
	}

	next, err := l.ApplyPieDelete(seed.ID)
	if err != nil {
		t.Fatalf("ApplyPieDelete(%q) failed: %v", seed.ID, err)
	}
	if want := l.Cash().Add(seed.Value); !next.Cash().Equal(want) {
		t.Errorf("cash = %s, want %s", next.Cash(), want)
	}
	if next.Pie(seed.ID) != nil {
		t.Error("deleted pie still listed")
	}

	if _, err := next.ApplyPieDelete(seed.ID); !errors.Is(err, ErrPieNotFound) {
		t.Errorf("second delete error = %v, want ErrPieNotFound", err)
	}
}

func TestLedgerHistoryNewestFirst(t *testing.T) {
	c := mustCatalog(t)
	l := mustLedger(t, c)

	l1, tx1, err := l.ApplyTrade(c, SideBuy, "AAPL", Q(1))
	if err != nil {
		t.Fatal(err)
	}
	l2, tx2, err := l1.ApplyTrade(c, SideSell, "AAPL", Q(2))
	if err != nil {
		t.Fatal(err)
	}
	l3, tx3, err := l2.ApplyTrade(c, SideBuy, "GOOGL", Q(3))
	if err != nil {
		t.Fatal(err)
	}

	history := l3.History()
	if len(history) != 3 {
		t.Fatalf("history has %d entries, want 3", len(history))
	}
	wantOrder := []string{tx3.ID, tx2.ID, tx1.ID}
	for i, want := range wantOrder {
		if history[i].ID != want {
			t.Errorf("history[%d].ID = %s, want %s", i, history[i].ID, want)
		}
	}
}
