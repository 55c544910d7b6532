package miracle

import (
	"sort"

	"github.com/shopspring/decimal"
)

// Valuation derives portfolio figures from a catalog and a ledger
// snapshot. Everything is recomputed on each call; nothing is cached,
// because snapshots are immutable and cheap to walk.
type Valuation struct {
	catalog *Catalog
	ledger  *Ledger
}

// NewValuation pairs a ledger snapshot with the catalog pricing it.
func NewValuation(catalog *Catalog, ledger *Ledger) Valuation {
	return Valuation{catalog: catalog, ledger: ledger}
}

// InvestedValue is the market value of all positions at current prices.
func (v Valuation) InvestedValue() Money {
	total := M(0, v.catalog.Currency())
	for p := range v.ledger.Positions() {
		if inst := v.catalog.Get(p.Symbol); inst != nil {
			total = total.Add(inst.Price.Mul(p.Quantity))
		}
	}
	return total
}

// NetWorth is cash plus invested value.
func (v Valuation) NetWorth() Money {
	return v.ledger.Cash().Add(v.InvestedValue())
}

// CostBasis is the total recorded cost of all positions.
func (v Valuation) CostBasis() Money {
	total := M(0, v.catalog.Currency())
	for p := range v.ledger.Positions() {
		total = total.Add(p.AvgCost.Mul(p.Quantity))
	}
	return total
}

// TotalReturn is the invested value minus the cost basis.
func (v Valuation) TotalReturn() Money {
	return v.InvestedValue().Sub(v.CostBasis())
}

// TotalReturnPercent is the total return relative to the cost basis, or 0
// when the cost basis is zero.
func (v Valuation) TotalReturnPercent() Percent {
	basis := v.CostBasis()
	if basis.IsZero() {
		return 0
	}
	return Percent(v.TotalReturn().AsFloat() / basis.AsFloat() * 100)
}

// PieValue is the combined current value of all pies.
func (v Valuation) PieValue() Money {
	total := M(0, v.catalog.Currency())
	for p := range v.ledger.Pies() {
		total = total.Add(p.Value)
	}
	return total
}

// SectorValue is the market value held in one sector.
type SectorValue struct {
	Sector string `json:"sector"`
	Value  Money  `json:"value"`
}

// SectorAllocation groups positions by the catalog's sector table, sums
// market value per sector and returns the top n sectors by value,
// descending. Symbols absent from the table land in the "Other" bucket.
func (v Valuation) SectorAllocation(n int) []SectorValue {
	values := make(map[string]Money)
	for p := range v.ledger.Positions() {
		inst := v.catalog.Get(p.Symbol)
		if inst == nil {
			continue
		}
		sector := v.catalog.Sector(p.Symbol)
		values[sector] = values[sector].Add(inst.Price.Mul(p.Quantity))
	}

	out := make([]SectorValue, 0, len(values))
	for sector, value := range values {
		out = append(out, SectorValue{Sector: sector, Value: value})
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Value.GreaterThan(out[j].Value)
	})
	if n > 0 && len(out) > n {
		out = out[:n]
	}
	return out
}

// TopHoldings returns the n largest positions by market value, descending.
func (v Valuation) TopHoldings(n int) []Position {
	held := make([]Position, 0, 8)
	for p := range v.ledger.Positions() {
		held = append(held, p)
	}
	value := func(p Position) Money {
		inst := v.catalog.Get(p.Symbol)
		if inst == nil {
			return M(0, v.catalog.Currency())
		}
		return inst.Price.Mul(p.Quantity)
	}
	sort.SliceStable(held, func(i, j int) bool {
		return value(held[i]).GreaterThan(value(held[j]))
	})
	if n > 0 && len(held) > n {
		held = held[:n]
	}
	return held
}

// PerformancePoint is one day of the indexed performance chart.
type PerformancePoint struct {
	Day       int     `json:"day"`
	Portfolio float64 `json:"portfolio"`
	Benchmark float64 `json:"benchmark"`
}

// PerformanceSeries replays each instrument's stored price history
// day-by-day against the current holdings and cash, then normalizes the
// first day to 100. The benchmark series is normalized the same way so
// relative performance is directly comparable.
func (v Valuation) PerformanceSeries() []PerformancePoint {
	benchmark := v.catalog.Benchmark()
	days := len(benchmark)
	for p := range v.ledger.Positions() {
		if inst := v.catalog.Get(p.Symbol); inst != nil && len(inst.History) < days {
			days = len(inst.History)
		}
	}
	if days == 0 {
		return nil
	}

	dayValue := func(day int) decimal.Decimal {
		value := v.ledger.Cash().value
		for p := range v.ledger.Positions() {
			inst := v.catalog.Get(p.Symbol)
			if inst == nil || len(inst.History) == 0 {
				continue
			}
			// shorter histories are pinned to their oldest close
			i := day - (days - len(inst.History))
			if i < 0 {
				i = 0
			}
			value = value.Add(inst.History[i].Mul(p.Quantity.value))
		}
		return value
	}

	base := dayValue(0)
	benchBase := benchmark[len(benchmark)-days]
	out := make([]PerformancePoint, days)
	for day := range out {
		point := PerformancePoint{Day: day, Portfolio: 100, Benchmark: 100}
		if !base.IsZero() {
			point.Portfolio = dayValue(day).Div(base).Mul(hundred).InexactFloat64()
		}
		if !benchBase.IsZero() {
			point.Benchmark = benchmark[len(benchmark)-days+day].Div(benchBase).Mul(hundred).InexactFloat64()
		}
		out[day] = point
	}
	return out
}

var hundred = decimal.NewFromInt(100)
