package miracle

import (
	"errors"
	"testing"
)

// walk advances a fresh composer to the select stage with the given
// symbols picked.
func walk(t *testing.T, c *Catalog, symbols ...string) *Composer {
	t.Helper()
	comp := NewComposer(c)
	if err := comp.Next(); err != nil {
		t.Fatalf("Next() from start failed: %v", err)
	}
	for _, s := range symbols {
		if err := comp.Toggle(s); err != nil {
			t.Fatalf("Toggle(%q) failed: %v", s, err)
		}
	}
	return comp
}

func TestComposerEvenSplit(t *testing.T) {
	testCases := []struct {
		name    string
		symbols []string
		want    map[string]Percent
	}{
		{
			name:    "three way split leaves the remainder on the first pick",
			symbols: []string{"AAPL", "MSFT", "GOOGL"},
			want:    map[string]Percent{"AAPL": 34, "MSFT": 33, "GOOGL": 33},
		},
		{
			name:    "single pick takes everything",
			symbols: []string{"BTC"},
			want:    map[string]Percent{"BTC": 100},
		},
		{
			name:    "eight way split",
			symbols: []string{"AAPL", "MSFT", "GOOGL", "AMZN", "TSLA", "NVDA", "VOO", "VTI"},
			want: map[string]Percent{
				"AAPL": 16, "MSFT": 12, "GOOGL": 12, "AMZN": 12,
				"TSLA": 12, "NVDA": 12, "VOO": 12, "VTI": 12,
			},
		},
	}

	catalog := mustCatalog(t)
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			comp := walk(t, catalog, tc.symbols...)
			if err := comp.Next(); err != nil {
				t.Fatalf("Next() into weights failed: %v", err)
			}
			var sum Percent
			for symbol, want := range tc.want {
				got := comp.Weight(symbol)
				if !got.Equal(want) {
					t.Errorf("Weight(%q) = %s, want %s", symbol, got, want)
				}
				sum += got
			}
			if !sum.Equal(100) {
				t.Errorf("weights sum to %s, want exactly 100%%", sum)
			}
		})
	}
}

func TestComposerFullWalkthrough(t *testing.T) {
	catalog := mustCatalog(t)
	ledger := mustLedger(t, catalog)

	comp := walk(t, catalog, "AAPL", "MSFT", "GOOGL")
	comp.SetName("Split Three Ways")
	if err := comp.Next(); err != nil {
		t.Fatalf("Next() into weights failed: %v", err)
	}
	if err := comp.Next(); err != nil {
		t.Fatalf("Next() into deposit failed: %v", err)
	}
	if err := comp.SetDeposit(M(300, "USD")); err != nil {
		t.Fatalf("SetDeposit(300) failed: %v", err)
	}

	pie, err := comp.Confirm()
	if err != nil {
		t.Fatalf("Confirm() failed: %v", err)
	}
	if pie.ID == "" {
		t.Error("confirmed pie has no id")
	}
	if pie.Name != "Split Three Ways" {
		t.Errorf("pie name = %q", pie.Name)
	}
	if !pie.Value.Equal(M(300, "USD")) {
		t.Errorf("pie value = %s, want $300.00", pie.Value)
	}
	if !pie.Performance.Equal(0) {
		t.Errorf("pie performance = %s, want 0", pie.Performance)
	}
	if !WeightSumValid(pie.Slices) {
		t.Errorf("confirmed weights sum to %s", WeightSum(pie.Slices))
	}

	next, err := ledger.ApplyPieCreate(catalog, pie)
	if err != nil {
		t.Fatalf("ApplyPieCreate() failed: %v", err)
	}
	if want := ledger.Cash().Sub(M(300, "USD")); !next.Cash().Equal(want) {
		t.Errorf("cash = %s, want %s", next.Cash(), want)
	}
}

func TestComposerWeightSumGate(t *testing.T) {
	catalog := mustCatalog(t)
	comp := walk(t, catalog, "AAPL", "MSFT")
	if err := comp.Next(); err != nil {
		t.Fatal(err)
	}

	// 50/50 seeded; break the sum and the forward transition must refuse
	if err := comp.SetWeight("AAPL", 60); err != nil {
		t.Fatal(err)
	}
	if err := comp.Next(); !errors.Is(err, ErrInvalidWeightSum) {
		t.Fatalf("Next() error = %v, want ErrInvalidWeightSum", err)
	}
	if comp.Stage() != StageWeights {
		t.Errorf("stage = %s, want weights (rejected transition must not advance)", comp.Stage())
	}

	// fix it and the transition goes through
	if err := comp.SetWeight("MSFT", 40); err != nil {
		t.Fatal(err)
	}
	if err := comp.Next(); err != nil {
		t.Errorf("Next() after fixing weights failed: %v", err)
	}
}

func TestComposerSelectionBounds(t *testing.T) {
	catalog := mustCatalog(t)
	comp := walk(t, catalog,
		"AAPL", "MSFT", "GOOGL", "AMZN", "TSLA", "NVDA", "VOO", "VTI")

	if err := comp.Toggle("BTC"); !errors.Is(err, ErrTooManySelections) {
		t.Errorf("ninth Toggle() error = %v, want ErrTooManySelections", err)
	}

	// toggling an already selected symbol removes it and frees a slot
	if err := comp.Toggle("VTI"); err != nil {
		t.Fatalf("deselect Toggle() failed: %v", err)
	}
	if err := comp.Toggle("BTC"); err != nil {
		t.Errorf("Toggle() after freeing a slot failed: %v", err)
	}

	if err := comp.Toggle("NOPE"); !errors.Is(err, ErrUnknownSymbol) {
		t.Errorf("Toggle(NOPE) error = %v, want ErrUnknownSymbol", err)
	}
}

func TestComposerNoSelection(t *testing.T) {
	catalog := mustCatalog(t)
	comp := NewComposer(catalog)
	if err := comp.Next(); err != nil {
		t.Fatal(err)
	}
	if err := comp.Next(); !errors.Is(err, ErrNoSelection) {
		t.Errorf("Next() with nothing selected error = %v, want ErrNoSelection", err)
	}
}

func TestComposerDepositBounds(t *testing.T) {
	catalog := mustCatalog(t)
	comp := walk(t, catalog, "AAPL")
	if err := comp.Next(); err != nil {
		t.Fatal(err)
	}
	if err := comp.Next(); err != nil {
		t.Fatal(err)
	}

	testCases := []struct {
		name   string
		amount Money
		ok     bool
	}{
		{"below minimum", M(9.99, "USD"), false},
		{"at minimum", M(10, "USD"), true},
		{"at maximum", M(5000, "USD"), true},
		{"above maximum", M(5000.01, "USD"), false},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			err := comp.SetDeposit(tc.amount)
			if tc.ok && err != nil {
				t.Errorf("SetDeposit(%s) failed: %v", tc.amount, err)
			}
			if !tc.ok && !errors.Is(err, ErrInvalidAmount) {
				t.Errorf("SetDeposit(%s) error = %v, want ErrInvalidAmount", tc.amount, err)
			}
		})
	}
}

func TestComposerBackwardKeepsData(t *testing.T) {
	catalog := mustCatalog(t)
	comp := walk(t, catalog, "AAPL", "MSFT")
	if err := comp.Next(); err != nil {
		t.Fatal(err)
	}
	if err := comp.SetWeight("AAPL", 70); err != nil {
		t.Fatal(err)
	}
	if err := comp.SetWeight("MSFT", 30); err != nil {
		t.Fatal(err)
	}

	// back to select and forward again: the adjusted weights carry over,
	// the even split is seeded only on the first forward entry.
	if err := comp.Back(); err != nil {
		t.Fatal(err)
	}
	if comp.Stage() != StageSelect {
		t.Fatalf("stage = %s, want select", comp.Stage())
	}
	if err := comp.Next(); err != nil {
		t.Fatal(err)
	}
	if got := comp.Weight("AAPL"); !got.Equal(70) {
		t.Errorf("Weight(AAPL) = %s after round trip, want 70", got)
	}
	if got := comp.Weight("MSFT"); !got.Equal(30) {
		t.Errorf("Weight(MSFT) = %s after round trip, want 30", got)
	}
}

func TestComposerStageGuards(t *testing.T) {
	catalog := mustCatalog(t)

	comp := NewComposer(catalog)
	if err := comp.Toggle("AAPL"); !errors.Is(err, ErrInvalidStage) {
		t.Errorf("Toggle() at start error = %v, want ErrInvalidStage", err)
	}
	if err := comp.Back(); !errors.Is(err, ErrInvalidStage) {
		t.Errorf("Back() at start error = %v, want ErrInvalidStage", err)
	}
	if _, err := comp.Confirm(); !errors.Is(err, ErrInvalidStage) {
		t.Errorf("Confirm() at start error = %v, want ErrInvalidStage", err)
	}

	comp = walk(t, catalog, "AAPL")
	if err := comp.SetWeight("AAPL", 50); !errors.Is(err, ErrInvalidStage) {
		t.Errorf("SetWeight() in select error = %v, want ErrInvalidStage", err)
	}
	if err := comp.SetDeposit(M(100, "USD")); !errors.Is(err, ErrInvalidStage) {
		t.Errorf("SetDeposit() in select error = %v, want ErrInvalidStage", err)
	}

	// confirm without a deposit set
	if err := comp.Next(); err != nil {
		t.Fatal(err)
	}
	if err := comp.Next(); err != nil {
		t.Fatal(err)
	}
	if _, err := comp.Confirm(); !errors.Is(err, ErrInvalidAmount) {
		t.Errorf("Confirm() without deposit error = %v, want ErrInvalidAmount", err)
	}
}
