package miracle

import "testing"

func TestEvenWeights(t *testing.T) {
	testCases := []struct {
		n    int
		want []Percent
	}{
		{1, []Percent{100}},
		{2, []Percent{50, 50}},
		{3, []Percent{34, 33, 33}},
		{6, []Percent{20, 16, 16, 16, 16, 16}},
		{8, []Percent{16, 12, 12, 12, 12, 12, 12, 12}},
		{0, nil},
	}
	for _, tc := range testCases {
		got := EvenWeights(tc.n)
		if len(got) != len(tc.want) {
			t.Errorf("EvenWeights(%d) has %d entries, want %d", tc.n, len(got), len(tc.want))
			continue
		}
		var sum Percent
		for i := range got {
			if !got[i].Equal(tc.want[i]) {
				t.Errorf("EvenWeights(%d)[%d] = %s, want %s", tc.n, i, got[i], tc.want[i])
			}
			sum += got[i]
		}
		if tc.n > 0 && !sum.Equal(100) {
			t.Errorf("EvenWeights(%d) sums to %s, want exactly 100%%", tc.n, sum)
		}
	}
}

func TestWeightSumValid(t *testing.T) {
	testCases := []struct {
		name    string
		weights []Percent
		want    bool
	}{
		{"exact hundred", []Percent{40, 30, 30}, true},
		{"within tolerance above", []Percent{50, 50.1}, true},
		{"within tolerance below", []Percent{50, 49.9}, true},
		{"just outside tolerance", []Percent{50, 50.2}, false},
		{"far off", []Percent{60, 50}, false},
		{"empty", nil, false},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			slices := make([]Slice, len(tc.weights))
			for i, w := range tc.weights {
				slices[i] = Slice{Symbol: "X", Weight: w}
			}
			if got := WeightSumValid(slices); got != tc.want {
				t.Errorf("WeightSumValid(%v) = %t, want %t", tc.weights, got, tc.want)
			}
		})
	}
}
