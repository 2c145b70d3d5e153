// Package stats computes the price and volume aggregates used by the flip
// evaluator.
package stats

import (
	"sort"

	"github.com/skyflipper/engine/internal/store"
)

// TrimmedMean sorts values ascending, drops floor(trimFraction*n) elements
// from each end independently, and averages the remainder. It returns 0 for
// an empty input, and 0 when trimming would exhaust the whole sample.
func TrimmedMean(values []float64, trimFraction float64) float64 {
	if len(values) == 0 {
		return 0
	}

	sorted := append([]float64(nil), values...)
	sort.Float64s(sorted)

	trim := int(trimFraction * float64(len(sorted)))
	if trim*2 >= len(sorted) {
		return 0
	}

	kept := sorted[trim : len(sorted)-trim]
	sum := 0.0
	for _, v := range kept {
		sum += v
	}
	return sum / float64(len(kept))
}

// TotalVolume sums the volume fields of the samples.
func TotalVolume(samples []store.PriceSample) float64 {
	total := 0.0
	for _, s := range samples {
		total += s.Volume
	}
	return total
}

// AverageVolume returns the plain mean of the sample volumes, or 0 for an
// empty input. Deliberately untrimmed: the liquidity gate wants the raw rate.
func AverageVolume(samples []store.PriceSample) float64 {
	if len(samples) == 0 {
		return 0
	}
	return TotalVolume(samples) / float64(len(samples))
}
