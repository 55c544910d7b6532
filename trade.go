package miracle

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Side is the direction of a trade.
type Side string

const (
	SideBuy  Side = "BUY"
	SideSell Side = "SELL"
)

// ParseSide parses a string into a Side.
func ParseSide(s string) (Side, error) {
	switch Side(s) {
	case SideBuy, SideSell:
		return Side(s), nil
	default:
		return "", fmt.Errorf("unknown trade side: %q", s)
	}
}

// Transaction is the immutable record of one executed trade. It is created
// by Ledger.ApplyTrade, appended to the transaction log and never mutated.
type Transaction struct {
	ID       string
	Side     Side
	Symbol   string
	Quantity Quantity
	Price    Money // price per unit at execution
	Time     time.Time
}

func newTransaction(side Side, symbol string, quantity Quantity, price Money, now time.Time) Transaction {
	return Transaction{
		ID:       uuid.NewString(),
		Side:     side,
		Symbol:   symbol,
		Quantity: quantity,
		Price:    price,
		Time:     now,
	}
}

// Amount returns the total traded value, quantity times execution price.
func (t Transaction) Amount() Money { return t.Price.Mul(t.Quantity) }

// MarshalJSON implements the json.Marshaler interface for Transaction.
func (t Transaction) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.Append("id", t.ID)
	w.Append("side", t.Side)
	w.Append("symbol", t.Symbol)
	w.Append("quantity", t.Quantity)
	w.Append("price", t.Price)
	w.Append("time", t.Time.Format(time.RFC3339))
	return w.MarshalJSON()
}
