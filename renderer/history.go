package renderer

import (
	"bytes"
	"time"

	md "github.com/nao1215/markdown"

	"github.com/miraclehq/miracle"
)

// HistoryMarkdown renders the transaction log, newest first.
func HistoryMarkdown(l *miracle.Ledger) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	doc.H1("Transaction History")

	history := l.History()
	if len(history) == 0 {
		doc.PlainText("No transactions yet.")
		return doc.String()
	}

	table := md.TableSet{
		Alignment: []md.TableAlignment{
			md.AlignLeft,
			md.AlignLeft,
			md.AlignLeft,
			md.AlignRight,
			md.AlignRight,
			md.AlignRight,
		},
		Header: []string{"Time", "Side", "Symbol", "Quantity", "Price", "Amount"},
		Rows:   [][]string{},
	}
	for _, tx := range history {
		table.Rows = append(table.Rows, []string{
			tx.Time.Format(time.DateTime),
			string(tx.Side),
			tx.Symbol,
			tx.Quantity.String(),
			tx.Price.String(),
			tx.Amount().String(),
		})
	}
	doc.Table(table)

	return doc.String()
}
