package renderer

import (
	"bytes"

	md "github.com/nao1215/markdown"

	"github.com/miraclehq/miracle"
)

// HoldingsMarkdown renders every position with its cost basis and the
// unrealized gain at current prices.
func HoldingsMarkdown(c *miracle.Catalog, l *miracle.Ledger) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	doc.H1("Holdings")

	table := md.TableSet{
		Alignment: []md.TableAlignment{
			md.AlignLeft,
			md.AlignRight,
			md.AlignRight,
			md.AlignRight,
			md.AlignRight,
			md.AlignRight,
		},
		Header: []string{"Symbol", "Quantity", "Avg Cost", "Price", "Value", "Gain"},
		Rows:   [][]string{},
	}
	for p := range l.Positions() {
		inst := c.Get(p.Symbol)
		if inst == nil {
			continue
		}
		value := inst.Price.Mul(p.Quantity)
		gain := value.Sub(p.AvgCost.Mul(p.Quantity))
		table.Rows = append(table.Rows, []string{
			p.Symbol,
			p.Quantity.String(),
			p.AvgCost.String(),
			inst.Price.String(),
			value.String(),
			gain.SignedString(),
		})
	}
	if len(table.Rows) == 0 {
		doc.PlainText("No positions yet.")
		return doc.String()
	}
	doc.Table(table)

	return doc.String()
}
