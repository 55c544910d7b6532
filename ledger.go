package miracle

import (
	"fmt"
	"iter"
	"sort"
	"time"
)

// Position is a quantity of one instrument owned at a recorded average
// cost. Invariant: Quantity is strictly positive while the position is in
// the ledger; a position sold down to zero is removed.
type Position struct {
	Symbol   string
	Quantity Quantity
	AvgCost  Money // average cost basis per unit
}

// MarshalJSON implements the json.Marshaler interface for Position.
func (p Position) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.Append("symbol", p.Symbol)
	w.Append("quantity", p.Quantity)
	w.Append("avgCost", p.AvgCost)
	return w.MarshalJSON()
}

// Ledger is an immutable snapshot of the user's holdings: cash balance,
// positions (at most one per symbol, insertion order preserved), pies and
// the append-only transaction log.
//
// Transitions never mutate the receiver. Each Apply* method validates its
// input against the snapshot, and either returns a fresh snapshot or a
// sentinel error from errors.go, so every caller gets the same guarantees
// whether it is the CLI, the HTTP API or a test.
type Ledger struct {
	cash         Money
	positions    []Position
	pies         []Pie
	transactions []Transaction
}

// NewLedger creates an empty ledger holding only the given cash balance.
func NewLedger(cash Money) *Ledger {
	return &Ledger{cash: cash}
}

// Cash returns the current cash balance.
func (l *Ledger) Cash() Money { return l.cash }

// Currency returns the ledger's cash currency.
func (l *Ledger) Currency() string { return l.cash.Currency() }

// Position returns the position held for this symbol, if any.
func (l *Ledger) Position(symbol string) (Position, bool) {
	for _, p := range l.positions {
		if p.Symbol == symbol {
			return p, true
		}
	}
	return Position{}, false
}

// Positions iterates over the positions in insertion order.
func (l *Ledger) Positions() iter.Seq[Position] {
	return func(yield func(Position) bool) {
		for _, p := range l.positions {
			if !yield(p) {
				return
			}
		}
	}
}

// Pie returns the pie with this id, or nil if unknown.
func (l *Ledger) Pie(id string) *Pie {
	for _, p := range l.pies {
		if p.ID == id {
			pie := p
			return &pie
		}
	}
	return nil
}

// Pies iterates over the pies in creation order.
func (l *Ledger) Pies() iter.Seq[Pie] {
	return func(yield func(Pie) bool) {
		for _, p := range l.pies {
			if !yield(p) {
				return
			}
		}
	}
}

// History returns the transaction log, newest first. The log is stored in
// execution order and sorted at read time.
func (l *Ledger) History() []Transaction {
	out := make([]Transaction, len(l.transactions))
	// reverse-copy so that same-instant transactions stay newest first
	// through the stable sort below.
	for i, tx := range l.transactions {
		out[len(out)-1-i] = tx
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Time.After(out[j].Time)
	})
	return out
}

// clone returns a deep enough copy for a transition to modify.
func (l *Ledger) clone() *Ledger {
	c := &Ledger{
		cash:         l.cash,
		positions:    make([]Position, len(l.positions)),
		pies:         make([]Pie, len(l.pies)),
		transactions: make([]Transaction, len(l.transactions)),
	}
	copy(c.positions, l.positions)
	copy(c.pies, l.pies)
	copy(c.transactions, l.transactions)
	return c
}

// ApplyTrade executes a buy or sell against the ledger and returns the new
// snapshot together with the recorded transaction.
//
// BUY debits quantity times the current price and either creates a new
// position at that price or increases an existing position's quantity. The
// existing average cost is intentionally left untouched on repeated buys:
// that is the observed behavior of the system this simulates, kept as-is
// rather than silently replaced with a weighted average.
//
// SELL credits the proceeds and decreases the position; a position sold
// down to zero is removed. Overselling fails with ErrInsufficientHoldings
// and an underfunded buy with ErrInsufficientFunds; no transaction is
// recorded on a failed trade.
func (l *Ledger) ApplyTrade(catalog *Catalog, side Side, symbol string, quantity Quantity) (*Ledger, Transaction, error) {
	if side != SideBuy && side != SideSell {
		return nil, Transaction{}, fmt.Errorf("unknown trade side %q", side)
	}
	if !quantity.IsPositive() {
		return nil, Transaction{}, fmt.Errorf("cannot %s %s of %s: %w", side, quantity, symbol, ErrInvalidQuantity)
	}
	inst := catalog.Get(symbol)
	if inst == nil {
		return nil, Transaction{}, fmt.Errorf("cannot %s %q: %w", side, symbol, ErrUnknownSymbol)
	}

	amount := inst.Price.Mul(quantity)
	next := l.clone()

	switch side {
	case SideBuy:
		if next.cash.LessThan(amount) {
			return nil, Transaction{}, fmt.Errorf("cannot buy %s %s for %s, cash balance is %s: %w",
				quantity, symbol, amount, next.cash, ErrInsufficientFunds)
		}
		next.cash = next.cash.Sub(amount)
		if i := next.positionIndex(symbol); i >= 0 {
			next.positions[i].Quantity = next.positions[i].Quantity.Add(quantity)
		} else {
			next.positions = append(next.positions, Position{Symbol: symbol, Quantity: quantity, AvgCost: inst.Price})
		}
	case SideSell:
		i := next.positionIndex(symbol)
		if i < 0 {
			return nil, Transaction{}, fmt.Errorf("cannot sell %s, no position held: %w", symbol, ErrInsufficientHoldings)
		}
		held := next.positions[i].Quantity
		if held.LessThan(quantity) {
			return nil, Transaction{}, fmt.Errorf("cannot sell %s %s, position is only %s: %w",
				quantity, symbol, held, ErrInsufficientHoldings)
		}
		next.cash = next.cash.Add(amount)
		remaining := held.Sub(quantity)
		if remaining.IsPositive() {
			next.positions[i].Quantity = remaining
		} else {
			next.positions = append(next.positions[:i], next.positions[i+1:]...)
		}
	}

	tx := newTransaction(side, symbol, quantity, inst.Price, time.Now())
	next.transactions = append(next.transactions, tx)
	return next, tx, nil
}

func (l *Ledger) positionIndex(symbol string) int {
	for i, p := range l.positions {
		if p.Symbol == symbol {
			return i
		}
	}
	return -1
}

// ApplyDeposit credits cash with the given amount.
func (l *Ledger) ApplyDeposit(amount Money) (*Ledger, error) {
	if !amount.IsPositive() {
		return nil, fmt.Errorf("deposit amount must be positive, got %s: %w", amount, ErrInvalidAmount)
	}
	next := l.clone()
	next.cash = next.cash.Add(amount)
	return next, nil
}

// ApplyWithdraw debits cash with the given amount. It fails with
// ErrInsufficientFunds when the balance does not cover it.
func (l *Ledger) ApplyWithdraw(amount Money) (*Ledger, error) {
	if !amount.IsPositive() {
		return nil, fmt.Errorf("withdraw amount must be positive, got %s: %w", amount, ErrInvalidAmount)
	}
	if l.cash.LessThan(amount) {
		return nil, fmt.Errorf("cannot withdraw %s, cash balance is %s: %w", amount, l.cash, ErrInsufficientFunds)
	}
	next := l.clone()
	next.cash = next.cash.Sub(amount)
	return next, nil
}

// ApplyPieCreate records a confirmed pie and debits cash by its value (the
// initial deposit). The weight-sum invariant is re-checked here so that no
// caller can record an unbalanced pie, composer or not.
func (l *Ledger) ApplyPieCreate(catalog *Catalog, pie Pie) (*Ledger, error) {
	if len(pie.Slices) == 0 {
		return nil, fmt.Errorf("pie %q has no slices: %w", pie.Name, ErrNoSelection)
	}
	for _, s := range pie.Slices {
		if catalog.Get(s.Symbol) == nil {
			return nil, fmt.Errorf("pie %q slice %q: %w", pie.Name, s.Symbol, ErrUnknownSymbol)
		}
	}
	if !WeightSumValid(pie.Slices) {
		return nil, fmt.Errorf("pie %q weights sum to %s: %w", pie.Name, WeightSum(pie.Slices), ErrInvalidWeightSum)
	}
	if !pie.Value.IsPositive() {
		return nil, fmt.Errorf("pie %q deposit must be positive, got %s: %w", pie.Name, pie.Value, ErrInvalidAmount)
	}
	if l.cash.LessThan(pie.Value) {
		return nil, fmt.Errorf("cannot fund pie %q with %s, cash balance is %s: %w",
			pie.Name, pie.Value, l.cash, ErrInsufficientFunds)
	}

	next := l.clone()
	next.cash = next.cash.Sub(pie.Value)
	next.pies = append(next.pies, pie)
	return next, nil
}

// ApplyPieDelete removes the pie and credits cash by its current value.
// Deletion is irreversible but cash-neutral: re-creating the pie with the
// same deposit restores the previous balance.
func (l *Ledger) ApplyPieDelete(id string) (*Ledger, error) {
	for i, p := range l.pies {
		if p.ID != id {
			continue
		}
		next := l.clone()
		next.cash = next.cash.Add(p.Value)
		next.pies = append(next.pies[:i], next.pies[i+1:]...)
		return next, nil
	}
	return nil, fmt.Errorf("pie %q: %w", id, ErrPieNotFound)
}
