package miracle

import (
	"fmt"
	"slices"

	"github.com/google/uuid"
)

// Stage is a step of the pie composer wizard.
type Stage int

const (
	StageStart Stage = iota
	StageSelect
	StageWeights
	StageDeposit
)

func (s Stage) String() string {
	switch s {
	case StageStart:
		return "start"
	case StageSelect:
		return "select"
	case StageWeights:
		return "weights"
	case StageDeposit:
		return "deposit"
	default:
		return "unknown"
	}
}

// Bounds of the composer wizard.
const (
	// MaxPieSlices is the most instruments a pie can hold.
	MaxPieSlices = 8
	// MinPieDeposit and MaxPieDeposit bound the initial funding amount.
	MinPieDeposit = 10
	MaxPieDeposit = 5000
)

// Composer walks a pie through Start -> Select -> Weights -> Deposit and
// finally Confirm. Forward transitions validate the data collected so far;
// backward transitions never re-validate, and already-collected selections
// and weights simply carry over. Weights are seeded with an even split only
// on the first forward entry into the weights stage.
//
// The composer only assembles the pie: Confirm returns it without touching
// any ledger. The caller records it with Ledger.ApplyPieCreate, which
// debits the deposit.
type Composer struct {
	catalog  *Catalog
	stage    Stage
	name     string
	selected []string // symbols in selection order
	weights  map[string]Percent
	seeded   bool // weights have been seeded once
	deposit  Money
}

// NewComposer creates a composer at the start stage.
func NewComposer(catalog *Catalog) *Composer {
	return &Composer{
		catalog: catalog,
		weights: make(map[string]Percent),
	}
}

// Stage returns the wizard's current stage.
func (c *Composer) Stage() Stage { return c.stage }

// SetName records the pie name. Allowed at any stage.
func (c *Composer) SetName(name string) { c.name = name }

// Selected returns the selected symbols in selection order.
func (c *Composer) Selected() []string {
	return slices.Clone(c.selected)
}

// Weight returns the current weight for a selected symbol.
func (c *Composer) Weight(symbol string) Percent { return c.weights[symbol] }

// Toggle adds the symbol to the selection, or removes it if already
// selected. Only valid in the select stage.
func (c *Composer) Toggle(symbol string) error {
	if c.stage != StageSelect {
		return fmt.Errorf("cannot toggle selection in stage %s: %w", c.stage, ErrInvalidStage)
	}
	if c.catalog.Get(symbol) == nil {
		return fmt.Errorf("cannot select %q: %w", symbol, ErrUnknownSymbol)
	}
	if i := slices.Index(c.selected, symbol); i >= 0 {
		c.selected = slices.Delete(c.selected, i, i+1)
		return nil
	}
	if len(c.selected) >= MaxPieSlices {
		return fmt.Errorf("a pie holds at most %d instruments: %w", MaxPieSlices, ErrTooManySelections)
	}
	c.selected = append(c.selected, symbol)
	return nil
}

// SetWeight sets the weight for a selected symbol, an integer percent
// between 1 and 100. Only valid in the weights stage.
func (c *Composer) SetWeight(symbol string, weight int) error {
	if c.stage != StageWeights {
		return fmt.Errorf("cannot adjust weights in stage %s: %w", c.stage, ErrInvalidStage)
	}
	if !slices.Contains(c.selected, symbol) {
		return fmt.Errorf("%q is not selected: %w", symbol, ErrUnknownSymbol)
	}
	if weight < 1 || weight > 100 {
		return fmt.Errorf("weight must be between 1 and 100, got %d: %w", weight, ErrInvalidAmount)
	}
	c.weights[symbol] = Percent(weight)
	return nil
}

// SetDeposit records the initial funding amount, bounded by MinPieDeposit
// and MaxPieDeposit. Only valid in the deposit stage.
func (c *Composer) SetDeposit(amount Money) error {
	if c.stage != StageDeposit {
		return fmt.Errorf("cannot set deposit in stage %s: %w", c.stage, ErrInvalidStage)
	}
	if amount.LessThan(M(MinPieDeposit, amount.Currency())) ||
		amount.GreaterThan(M(MaxPieDeposit, amount.Currency())) {
		return fmt.Errorf("deposit must be between %d and %d, got %s: %w",
			MinPieDeposit, MaxPieDeposit, amount, ErrInvalidAmount)
	}
	c.deposit = amount
	return nil
}

// Next advances the wizard one stage forward, validating the data the
// current stage collected.
func (c *Composer) Next() error {
	switch c.stage {
	case StageStart:
		c.stage = StageSelect
		return nil
	case StageSelect:
		if len(c.selected) == 0 {
			return fmt.Errorf("cannot pick weights: %w", ErrNoSelection)
		}
		if !c.seeded {
			for i, weight := range EvenWeights(len(c.selected)) {
				c.weights[c.selected[i]] = weight
			}
			c.seeded = true
		}
		c.stage = StageWeights
		return nil
	case StageWeights:
		if !WeightSumValid(c.slices()) {
			return fmt.Errorf("weights sum to %s: %w", WeightSum(c.slices()), ErrInvalidWeightSum)
		}
		c.stage = StageDeposit
		return nil
	default:
		return fmt.Errorf("cannot advance from stage %s: %w", c.stage, ErrInvalidStage)
	}
}

// Back steps one stage backward without re-validating collected data.
func (c *Composer) Back() error {
	if c.stage == StageStart {
		return fmt.Errorf("cannot go back from stage %s: %w", c.stage, ErrInvalidStage)
	}
	c.stage--
	return nil
}

// Confirm finishes the wizard and returns the composed pie. The pie's
// value is the deposit amount and its performance starts at zero. Only
// valid in the deposit stage, after a deposit has been set.
func (c *Composer) Confirm() (Pie, error) {
	if c.stage != StageDeposit {
		return Pie{}, fmt.Errorf("cannot confirm in stage %s: %w", c.stage, ErrInvalidStage)
	}
	if c.deposit.IsZero() {
		return Pie{}, fmt.Errorf("no deposit set: %w", ErrInvalidAmount)
	}
	if !WeightSumValid(c.slices()) {
		// weights cannot drift after the weights stage, but confirm is the
		// last gate before the ledger, so check once more.
		return Pie{}, fmt.Errorf("weights sum to %s: %w", WeightSum(c.slices()), ErrInvalidWeightSum)
	}
	name := c.name
	if name == "" {
		name = "My Pie"
	}
	return Pie{
		ID:          uuid.NewString(),
		Name:        name,
		Slices:      c.slices(),
		Value:       c.deposit,
		Performance: 0,
	}, nil
}

func (c *Composer) slices() []Slice {
	out := make([]Slice, 0, len(c.selected))
	for _, symbol := range c.selected {
		out = append(out, Slice{Symbol: symbol, Weight: c.weights[symbol]})
	}
	return out
}
