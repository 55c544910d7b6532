package miracle

// A Pie is a named, percentage-weighted basket of instruments treated as
// one investable unit. Its weights are intended to sum to 100; the sum is
// enforced at composer confirmation and again in Ledger.ApplyPieCreate.

// WeightTolerance is the accepted deviation of a pie's weight sum from 100.
const WeightTolerance = 0.1

// Slice is one (symbol, weight) pair of a pie.
type Slice struct {
	Symbol string  `json:"symbol"`
	Weight Percent `json:"weight"` // percent of the pie, 1..100
}

// Pie is a weighted basket created by the composer. Value is the cash the
// pie currently represents; deleting the pie credits it back.
type Pie struct {
	ID          string
	Name        string
	Slices      []Slice
	Value       Money
	Performance Percent
}

// MarshalJSON implements the json.Marshaler interface for Pie.
func (p Pie) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.Append("id", p.ID)
	w.Append("name", p.Name)
	w.Append("slices", p.Slices)
	w.Append("value", p.Value)
	w.Append("performance", float64(p.Performance))
	return w.MarshalJSON()
}

// WeightSum returns the sum of the pie slice weights.
func WeightSum(slices []Slice) Percent {
	var sum Percent
	for _, s := range slices {
		sum += s.Weight
	}
	return sum
}

// WeightSumValid reports whether the slice weights sum to 100 within
// WeightTolerance.
func WeightSumValid(slices []Slice) bool {
	diff := float64(WeightSum(slices)) - 100
	if diff < 0 {
		diff = -diff
	}
	return diff <= WeightTolerance
}

// EvenWeights splits 100 percent over n slices: every slice gets
// floor(100/n) and the first slice takes the remainder, so the weights
// always sum to exactly 100.
func EvenWeights(n int) []Percent {
	if n <= 0 {
		return nil
	}
	base := 100 / n
	weights := make([]Percent, n)
	for i := range weights {
		weights[i] = Percent(base)
	}
	weights[0] += Percent(100 - base*n)
	return weights
}
