package renderer

import (
	"bytes"
	"fmt"

	md "github.com/nao1215/markdown"

	"github.com/miraclehq/miracle"
)

// SummaryMarkdown renders the portfolio overview: net worth, cash, the
// sector allocation and the largest holdings.
func SummaryMarkdown(c *miracle.Catalog, l *miracle.Ledger) string {
	v := miracle.NewValuation(c, l)

	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	doc.H1("Portfolio Summary")
	doc.PlainText(fmt.Sprintf("Net Worth: %s", v.NetWorth()))
	doc.PlainText(fmt.Sprintf("Cash: %s | Invested: %s | Pies: %s",
		l.Cash(), v.InvestedValue(), v.PieValue()))
	doc.PlainText(fmt.Sprintf("Total Return: %s (%s)",
		v.TotalReturn().SignedString(), signedPercent(v.TotalReturnPercent())))

	if allocation := v.SectorAllocation(0); len(allocation) > 0 {
		doc.H2("Allocation")
		table := md.TableSet{
			Alignment: []md.TableAlignment{md.AlignLeft, md.AlignRight},
			Header:    []string{"Sector", "Value"},
			Rows:      [][]string{},
		}
		for _, sv := range allocation {
			table.Rows = append(table.Rows, []string{sv.Sector, sv.Value.String()})
		}
		doc.Table(table)
	}

	if top := v.TopHoldings(5); len(top) > 0 {
		doc.H2("Top Holdings")
		table := md.TableSet{
			Alignment: []md.TableAlignment{md.AlignLeft, md.AlignRight, md.AlignRight},
			Header:    []string{"Symbol", "Quantity", "Value"},
			Rows:      [][]string{},
		}
		for _, p := range top {
			value := ""
			if inst := c.Get(p.Symbol); inst != nil {
				value = inst.Price.Mul(p.Quantity).String()
			}
			table.Rows = append(table.Rows, []string{p.Symbol, p.Quantity.String(), value})
		}
		doc.Table(table)
	}

	return doc.String()
}
