package aggregate

import (
	"math"
	"testing"
)

func TestMeanAndPopulationStats(t *testing.T) {
	cases := []struct {
		name   string
		in     []float64
		mean   float64
		stddev float64
		count  int
	}{
		{"empty", nil, 0, 0, 0},
		{"single", []float64{5}, 5, 0, 1},
		{"population", []float64{2, 4, 4, 4, 5, 5, 7, 9}, 5, 2, 8},
		{"mood", []float64{8, 8, 9}, 25.0 / 3.0, math.Sqrt(2.0 / 9.0), 3},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := MeanAndPopulationStats(tc.in)
			if got.Count != tc.count {
				t.Fatalf("count: want=%d got=%d", tc.count, got.Count)
			}
			if math.Abs(got.Mean-tc.mean) > 1e-9 {
				t.Fatalf("mean: want=%v got=%v", tc.mean, got.Mean)
			}
			if math.Abs(got.StdDev-tc.stddev) > 1e-9 {
				t.Fatalf("stddev: want=%v got=%v", tc.stddev, got.StdDev)
			}
		})
	}
}

func TestMeanOrNil(t *testing.T) {
	if (Stats{}).MeanOrNil() != nil {
		t.Fatalf("MeanOrNil: want nil for empty stats")
	}
	got := MeanAndPopulationStats([]float64{3, 5}).MeanOrNil()
	if got == nil || *got != 4 {
		t.Fatalf("MeanOrNil: want=4 got=%v", got)
	}
}
