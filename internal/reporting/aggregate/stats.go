package aggregate

import "math"

// Stats is the zero value when Count is 0.
type Stats struct {
	Mean   float64 `json:"mean"`
	StdDev float64 `json:"std_dev"`
	Count  int     `json:"count"`
}

// MeanAndPopulationStats returns the arithmetic mean and population standard
// deviation of values.
func MeanAndPopulationStats(values []float64) Stats {
	if len(values) == 0 {
		return Stats{}
	}
	var sum float64
	for _, v := range values {
		sum += v
	}
	n := float64(len(values))
	mean := sum / n
	var sq float64
	for _, v := range values {
		d := v - mean
		sq += d * d
	}
	return Stats{Mean: mean, StdDev: math.Sqrt(sq / n), Count: len(values)}
}

// MeanOrNil is for JSON fields where "no data" is null rather than 0.
func (s Stats) MeanOrNil() *float64 {
	if s.Count == 0 {
		return nil
	}
	m := s.Mean
	return &m
}

func intsToFloats(in []int) []float64 {
	out := make([]float64, len(in))
	for i, v := range in {
		out[i] = float64(v)
	}
	return out
}
