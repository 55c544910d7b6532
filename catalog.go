package miracle

import (
	"fmt"
	"iter"

	"github.com/shopspring/decimal"
)

// Category classifies a tradable instrument.
type Category string

const (
	CategoryStock    Category = "Stock"
	CategoryFund     Category = "Fund"
	CategoryCrypto   Category = "Crypto"
	CategoryIndex    Category = "Index"
	CategoryCurrency Category = "Currency"
)

// ParseCategory parses a string into a Category.
func ParseCategory(s string) (Category, error) {
	switch Category(s) {
	case CategoryStock, CategoryFund, CategoryCrypto, CategoryIndex, CategoryCurrency:
		return Category(s), nil
	default:
		return "", fmt.Errorf("unknown instrument category: %q", s)
	}
}

// SectorOther is the bucket for symbols absent from the sector table.
const SectorOther = "Other"

// Instrument is a tradable asset with a quoted price. Instruments are
// created once from the fixtures and never mutated.
type Instrument struct {
	Symbol        string
	Name          string
	Price         Money
	Change        Money
	ChangePercent Percent
	Category      Category
	Description   string
	// History holds the last 30 daily closes, oldest first, ending at Price.
	History []decimal.Decimal
}

// MarshalJSON implements the json.Marshaler interface for Instrument.
func (i Instrument) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.Append("symbol", i.Symbol)
	w.Append("name", i.Name)
	w.Append("price", i.Price)
	w.Append("change", i.Change)
	w.Append("changePercent", decimal.NewFromFloat(float64(i.ChangePercent)))
	w.Append("category", i.Category)
	w.Optional("description", i.Description)
	w.Append("history", i.History)
	return w.MarshalJSON()
}

// Catalog is the immutable set of instruments available for trading,
// together with the static symbol-to-sector table and the benchmark series
// used by the indexed performance chart.
type Catalog struct {
	instruments map[string]Instrument
	order       []string // symbols in fixture order
	sectors     map[string]string
	benchmark   []decimal.Decimal
	currency    string
}

// Currency returns the catalog's quote currency.
func (c *Catalog) Currency() string { return c.currency }

// Get returns the instrument quoted under this symbol, or nil if unknown.
func (c *Catalog) Get(symbol string) *Instrument {
	inst, ok := c.instruments[symbol]
	if !ok {
		return nil
	}
	return &inst
}

// All iterates over the instruments in fixture order.
func (c *Catalog) All() iter.Seq[Instrument] {
	return func(yield func(Instrument) bool) {
		for _, symbol := range c.order {
			if !yield(c.instruments[symbol]) {
				return
			}
		}
	}
}

// Len returns the number of instruments in the catalog.
func (c *Catalog) Len() int { return len(c.order) }

// Sector returns the sector for a symbol. Symbols absent from the table
// fall into the SectorOther bucket.
func (c *Catalog) Sector(symbol string) string {
	if sector, ok := c.sectors[symbol]; ok {
		return sector
	}
	return SectorOther
}

// Benchmark returns the 30-point benchmark close series, oldest first.
func (c *Catalog) Benchmark() []decimal.Decimal {
	out := make([]decimal.Decimal, len(c.benchmark))
	copy(out, c.benchmark)
	return out
}
