package renderer

import (
	"bytes"
	"fmt"

	md "github.com/nao1215/markdown"

	"github.com/miraclehq/miracle"
)

// PiesMarkdown renders every pie with its slices and weights.
func PiesMarkdown(l *miracle.Ledger) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	doc.H1("Pies")

	var count int
	for pie := range l.Pies() {
		count++
		doc.H2(pie.Name)
		doc.PlainText(fmt.Sprintf("Value: %s | Performance: %s | ID: %s",
			pie.Value, signedPercent(pie.Performance), pie.ID))

		table := md.TableSet{
			Alignment: []md.TableAlignment{md.AlignLeft, md.AlignRight},
			Header:    []string{"Symbol", "Weight"},
			Rows:      [][]string{},
		}
		for _, slice := range pie.Slices {
			table.Rows = append(table.Rows, []string{slice.Symbol, slice.Weight.String()})
		}
		doc.Table(table)
	}
	if count == 0 {
		doc.PlainText("No pies yet.")
	}

	return doc.String()
}
