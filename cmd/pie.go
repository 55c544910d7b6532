package cmd

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/google/subcommands"

	"github.com/miraclehq/miracle"
	"github.com/miraclehq/miracle/renderer"
)

type pieCreateCmd struct {
	name string
}

func (*pieCreateCmd) Name() string     { return "pie-create" }
func (*pieCreateCmd) Synopsis() string { return "compose a new pie through the interactive wizard" }
func (*pieCreateCmd) Usage() string {
	return `miracle pie-create [-n <name>]

  Walks through the pie composer: pick up to 8 instruments, adjust their
  weights and fund the pie with an initial deposit.
`
}

func (c *pieCreateCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.name, "n", "", "Name of the pie.")
}

func (c *pieCreateCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	catalog, ledger, err := session()
	if err != nil {
		return fail(err)
	}

	pie, err := runWizard(os.Stdout, bufio.NewReader(os.Stdin), catalog, c.name)
	if err != nil {
		return fail(err)
	}

	next, err := ledger.ApplyPieCreate(catalog, pie)
	if err != nil {
		return fail(err)
	}

	fmt.Printf("Created pie %q funded with %s. Cash balance: %s\n",
		pie.Name, pie.Value, next.Cash())
	printMarkdown(renderer.PiesMarkdown(next))
	return subcommands.ExitSuccess
}

// runWizard drives the composer state machine from a line-based prompt.
func runWizard(w io.Writer, r *bufio.Reader, catalog *miracle.Catalog, name string) (miracle.Pie, error) {
	comp := miracle.NewComposer(catalog)
	comp.SetName(name)
	if err := comp.Next(); err != nil {
		return miracle.Pie{}, err
	}

	// select stage
	fmt.Fprintln(w, "Available instruments:")
	for inst := range catalog.All() {
		fmt.Fprintf(w, "  %-8s %s (%s)\n", inst.Symbol, inst.Name, inst.Price)
	}
	fmt.Fprintf(w, "Type a symbol to add or remove it (up to %d), 'done' to continue.\n",
		miracle.MaxPieSlices)
	for {
		fmt.Fprintf(w, "select [%s]> ", strings.Join(comp.Selected(), " "))
		line, err := readLine(r)
		if err != nil {
			return miracle.Pie{}, err
		}
		if line == "done" {
			if err := comp.Next(); err != nil {
				fmt.Fprintln(w, err)
				continue
			}
			break
		}
		if line == "" {
			continue
		}
		if err := comp.Toggle(strings.ToUpper(line)); err != nil {
			fmt.Fprintln(w, err)
		}
	}

	// weights stage
	fmt.Fprintln(w, "Adjust weights with '<symbol> <percent>', 'done' when they sum to 100.")
	for {
		for _, symbol := range comp.Selected() {
			fmt.Fprintf(w, "  %-8s %s\n", symbol, comp.Weight(symbol))
		}
		fmt.Fprint(w, "weights> ")
		line, err := readLine(r)
		if err != nil {
			return miracle.Pie{}, err
		}
		if line == "done" {
			if err := comp.Next(); err != nil {
				fmt.Fprintln(w, err)
				continue
			}
			break
		}
		symbol, weight, ok := parseWeight(line)
		if !ok {
			fmt.Fprintln(w, "expected '<symbol> <percent>'")
			continue
		}
		if err := comp.SetWeight(symbol, weight); err != nil {
			fmt.Fprintln(w, err)
		}
	}

	// deposit stage
	fmt.Fprintf(w, "Initial deposit between %d and %d.\n",
		miracle.MinPieDeposit, miracle.MaxPieDeposit)
	for {
		fmt.Fprint(w, "deposit> ")
		line, err := readLine(r)
		if err != nil {
			return miracle.Pie{}, err
		}
		amount, err := strconv.ParseFloat(line, 64)
		if err != nil {
			fmt.Fprintln(w, "expected an amount")
			continue
		}
		if err := comp.SetDeposit(miracle.M(amount, catalog.Currency())); err != nil {
			fmt.Fprintln(w, err)
			continue
		}
		break
	}

	return comp.Confirm()
}

func readLine(r *bufio.Reader) (string, error) {
	line, err := r.ReadString('\n')
	if err != nil && line == "" {
		return "", err
	}
	return strings.TrimSpace(line), nil
}

func parseWeight(line string) (symbol string, weight int, ok bool) {
	fields := strings.Fields(line)
	if len(fields) != 2 {
		return "", 0, false
	}
	weight, err := strconv.Atoi(fields[1])
	if err != nil {
		return "", 0, false
	}
	return strings.ToUpper(fields[0]), weight, true
}

type pieDeleteCmd struct {
	id string
}

func (*pieDeleteCmd) Name() string     { return "pie-delete" }
func (*pieDeleteCmd) Synopsis() string { return "delete a pie and credit its value back to cash" }
func (*pieDeleteCmd) Usage() string {
	return `miracle pie-delete -id <pie_id>

  Removes the pie and returns its current value to the cash balance.
`
}

func (c *pieDeleteCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.id, "id", "", "ID of the pie to delete, see 'miracle pies'.")
}

func (c *pieDeleteCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	_, ledger, err := session()
	if err != nil {
		return fail(err)
	}

	pie := ledger.Pie(c.id)
	next, err := ledger.ApplyPieDelete(c.id)
	if err != nil {
		return fail(err)
	}

	fmt.Printf("Deleted pie %q, %s returned to cash. Cash balance: %s\n",
		pie.Name, pie.Value, next.Cash())
	return subcommands.ExitSuccess
}

type piesCmd struct{}

func (*piesCmd) Name() string     { return "pies" }
func (*piesCmd) Synopsis() string { return "list all pies with their slices" }
func (*piesCmd) Usage() string {
	return `miracle pies

  Lists every pie with its value, performance and weighted slices.
`
}

func (*piesCmd) SetFlags(_ *flag.FlagSet) {}

func (*piesCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	_, ledger, err := session()
	if err != nil {
		return fail(err)
	}
	printMarkdown(renderer.PiesMarkdown(ledger))
	return subcommands.ExitSuccess
}
