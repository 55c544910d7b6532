package miracle

import (
	_ "embed"
	"encoding/json"
	"fmt"

	"github.com/shopspring/decimal"
)

// marketFixture is the bundled market snapshot every session starts from.
// A restart resets all mutable state to it, the same way a page reload
// resets the original single-page app.
//
//go:embed fixtures/market.json
var marketFixture []byte

type fixtureInstrument struct {
	Symbol        string            `json:"symbol"`
	Name          string            `json:"name"`
	Price         decimal.Decimal   `json:"price"`
	Change        decimal.Decimal   `json:"change"`
	ChangePercent float64           `json:"changePercent"`
	Category      string            `json:"category"`
	Description   string            `json:"description"`
	History       []decimal.Decimal `json:"history"`
}

type fixtureHolding struct {
	Symbol   string          `json:"symbol"`
	Quantity decimal.Decimal `json:"quantity"`
	AvgCost  decimal.Decimal `json:"avgCost"`
}

type fixturePie struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Slices      []Slice         `json:"slices"`
	Value       decimal.Decimal `json:"value"`
	Performance float64         `json:"performance"`
}

type fixtureFile struct {
	Currency    string              `json:"currency"`
	Instruments []fixtureInstrument `json:"instruments"`
	Sectors     map[string]string   `json:"sectors"`
	Benchmark   []decimal.Decimal   `json:"benchmark"`
	Portfolio   struct {
		Cash     decimal.Decimal  `json:"cash"`
		Holdings []fixtureHolding `json:"holdings"`
		Pies     []fixturePie     `json:"pies"`
	} `json:"portfolio"`
}

// DefaultCatalog builds the instrument catalog from the embedded fixture.
func DefaultCatalog() (*Catalog, error) {
	var f fixtureFile
	if err := json.Unmarshal(marketFixture, &f); err != nil {
		return nil, fmt.Errorf("could not decode market fixture: %w", err)
	}

	c := &Catalog{
		instruments: make(map[string]Instrument, len(f.Instruments)),
		order:       make([]string, 0, len(f.Instruments)),
		sectors:     f.Sectors,
		benchmark:   f.Benchmark,
		currency:    f.Currency,
	}
	for _, fi := range f.Instruments {
		category, err := ParseCategory(fi.Category)
		if err != nil {
			return nil, fmt.Errorf("invalid fixture instrument %q: %w", fi.Symbol, err)
		}
		if _, exists := c.instruments[fi.Symbol]; exists {
			return nil, fmt.Errorf("duplicate fixture instrument %q", fi.Symbol)
		}
		c.instruments[fi.Symbol] = Instrument{
			Symbol:        fi.Symbol,
			Name:          fi.Name,
			Price:         M(fi.Price, f.Currency),
			Change:        M(fi.Change, f.Currency),
			ChangePercent: Percent(fi.ChangePercent),
			Category:      category,
			Description:   fi.Description,
			History:       fi.History,
		}
		c.order = append(c.order, fi.Symbol)
	}
	return c, nil
}

// DefaultLedger builds the seed portfolio from the embedded fixture. Every
// seeded holding and pie slice must reference a catalog instrument.
func DefaultLedger(catalog *Catalog) (*Ledger, error) {
	var f fixtureFile
	if err := json.Unmarshal(marketFixture, &f); err != nil {
		return nil, fmt.Errorf("could not decode market fixture: %w", err)
	}

	ledger := NewLedger(M(f.Portfolio.Cash, f.Currency))
	for _, h := range f.Portfolio.Holdings {
		if catalog.Get(h.Symbol) == nil {
			return nil, fmt.Errorf("seed holding %q: %w", h.Symbol, ErrUnknownSymbol)
		}
		ledger.positions = append(ledger.positions, Position{
			Symbol:   h.Symbol,
			Quantity: Q(h.Quantity),
			AvgCost:  M(h.AvgCost, f.Currency),
		})
	}
	for _, p := range f.Portfolio.Pies {
		for _, s := range p.Slices {
			if catalog.Get(s.Symbol) == nil {
				return nil, fmt.Errorf("seed pie %q slice %q: %w", p.Name, s.Symbol, ErrUnknownSymbol)
			}
		}
		ledger.pies = append(ledger.pies, Pie{
			ID:          p.ID,
			Name:        p.Name,
			Slices:      p.Slices,
			Value:       M(p.Value, f.Currency),
			Performance: Percent(p.Performance),
		})
	}
	return ledger, nil
}
