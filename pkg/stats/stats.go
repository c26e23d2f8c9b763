// Package stats provides statistical utility functions for analyzers.
package stats

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/stat"
)

// Percentile calculates the p-th percentile of a sorted slice.
// The slice must already be sorted in ascending order.
// Returns 0 if the slice is empty.
func Percentile(sorted []float64, p int) float64 {
	if len(sorted) == 0 {
		return 0
	}
	idx := (p * len(sorted)) / 100
	if idx >= len(sorted) {
		idx = len(sorted) - 1
	}
	return sorted[idx]
}

// Distribution summarizes a sample: mean, standard deviation, and the
// P50/P95 percentiles. All fields are 0 for an empty sample.
type Distribution struct {
	Mean   float64
	StdDev float64
	P50    float64
	P95    float64
}

// Describe computes the distribution of values. The input is not modified.
func Describe(values []float64) Distribution {
	if len(values) == 0 {
		return Distribution{}
	}

	mean, std := stat.MeanStdDev(values, nil)
	// MeanStdDev returns NaN stddev for a single sample.
	if math.IsNaN(std) {
		std = 0
	}

	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)

	return Distribution{
		Mean:   mean,
		StdDev: std,
		P50:    Percentile(sorted, 50),
		P95:    Percentile(sorted, 95),
	}
}
