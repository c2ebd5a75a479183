// Package scoring provides the shared numeric primitives used by the
// diagnosis and rebalance engines: weight computation, normalization,
// clamping, threshold banding and dispersion statistics.
package scoring

import (
	"gonum.org/v1/gonum/stat"

	"github.com/maomaoaichibing/portfolio-advisor/internal/models"
)

// NormalizeTolerance is the guaranteed bound on |sum - 100| after
// NormalizeToHundred for any non-empty input.
const NormalizeTolerance = 1e-6

// Weight returns a position's value as a percentage of total value.
// A zero total falls back to equal weighting across the holding count,
// which guards division by zero for all-zero-price portfolios.
func Weight(value, totalValue float64, holdingCount int) float64 {
	if totalValue == 0 {
		if holdingCount == 0 {
			return 0
		}
		return 100.0 / float64(holdingCount)
	}
	return value / totalValue * 100
}

// Clamp limits v to the closed interval [lo, hi]
func Clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// NormalizeToHundred rescales the values so they sum to 100. An all-zero
// input is distributed equally. The input map is not modified.
func NormalizeToHundred(weights map[string]float64) map[string]float64 {
	result := make(map[string]float64, len(weights))
	if len(weights) == 0 {
		return result
	}

	sum := 0.0
	for _, w := range weights {
		sum += w
	}

	if sum == 0 {
		equal := 100.0 / float64(len(weights))
		for k := range weights {
			result[k] = equal
		}
		return result
	}

	for k, w := range weights {
		result[k] = w / sum * 100
	}
	return result
}

// Band classifies a value against two exclusive thresholds: above high
// is high, above medium is medium, otherwise low. A value exactly on a
// threshold falls into the lower band.
func Band(value, high, medium float64) models.RiskBand {
	switch {
	case value > high:
		return models.RiskBandHigh
	case value > medium:
		return models.RiskBandMedium
	default:
		return models.RiskBandLow
	}
}

// Mean returns the arithmetic mean, zero for an empty slice
func Mean(data []float64) float64 {
	if len(data) == 0 {
		return 0
	}
	return stat.Mean(data, nil)
}

// PopStdDev returns the population standard deviation, zero for an
// empty slice
func PopStdDev(data []float64) float64 {
	if len(data) == 0 {
		return 0
	}
	return stat.PopStdDev(data, nil)
}

// Spread returns max - min, zero for an empty slice
func Spread(data []float64) float64 {
	if len(data) == 0 {
		return 0
	}
	min, max := data[0], data[0]
	for _, v := range data[1:] {
		if v < min {
			min = v
		}
		if v > max {
			max = v
		}
	}
	return max - min
}
