package sweep

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
)

// LogGrid returns n points spaced evenly in log10 between 10^lo and 10^hi.
func LogGrid(lo, hi float64, n int) ([]float64, error) {
	if n <= 0 {
		return nil, fmt.Errorf("log grid needs a positive point count, got %d", n)
	}
	if n == 1 {
		return []float64{math.Pow(10, lo)}, nil
	}
	return floats.LogSpan(make([]float64, n), math.Pow(10, lo), math.Pow(10, hi)), nil
}

// LinGrid returns n evenly spaced points from lo to hi inclusive.
func LinGrid(lo, hi float64, n int) ([]float64, error) {
	if n <= 0 {
		return nil, fmt.Errorf("linear grid needs a positive point count, got %d", n)
	}
	if n == 1 {
		return []float64{lo}, nil
	}
	return floats.Span(make([]float64, n), lo, hi), nil
}

// IntGrid returns lo, lo+1, ..., hi.
func IntGrid(lo, hi int) []int {
	if hi < lo {
		return nil
	}
	out := make([]int, 0, hi-lo+1)
	for m := lo; m <= hi; m++ {
		out = append(out, m)
	}
	return out
}
