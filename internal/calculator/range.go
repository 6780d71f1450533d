package calculator

import (
	"errors"

	"gonum.org/v1/gonum/floats"
)

// PriceRange returns the lowest and highest of the given prices.
func PriceRange(prices []float64) (low, high float64, err error) {
	if len(prices) == 0 {
		return 0, 0, errors.New("no prices provided")
	}
	return floats.Min(prices), floats.Max(prices), nil
}

// PadRange widens [low, high] by ratio of its span on each side.
// A zero span (flat series) is widened by flat instead so the band stays visible.
func PadRange(low, high, ratio, flat float64) (float64, float64) {
	pad := (high - low) * ratio
	if pad == 0 {
		pad = flat
	}
	return low - pad, high + pad
}

// EvenSteps returns n values spaced evenly from low to high inclusive.
func EvenSteps(low, high float64, n int) []float64 {
	if n <= 0 {
		return nil
	}
	if n == 1 {
		return []float64{low}
	}
	steps := make([]float64, n)
	for i := 0; i < n; i++ {
		steps[i] = low + (float64(i)/float64(n-1))*(high-low)
	}
	return steps
}
