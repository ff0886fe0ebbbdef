package raster

import (
	"fmt"
	"math"
	"sort"

	"SomnoScan/internal/domain/models"
)

// ComputeRange derives a clip range from a percentile pair over samples.
// Percentiles use linear interpolation between closest ranks. The bounds may
// coincide for a near-constant signal; that is not an error.
func ComputeRange(samples []float64, pLow, pHigh float64) (models.ClipRange, error) {
	if pLow < 0 || pHigh > 100 || pLow >= pHigh {
		return models.ClipRange{}, fmt.Errorf("%w: [%g, %g]", ErrInvalidRange, pLow, pHigh)
	}
	if len(samples) == 0 {
		return models.ClipRange{}, nil
	}

	sorted := make([]float64, len(samples))
	copy(sorted, samples)
	sort.Float64s(sorted)

	return models.ClipRange{
		Low:  percentile(sorted, pLow),
		High: percentile(sorted, pHigh),
	}, nil
}

// percentile estimates the p-th percentile of an ascending-sorted slice.
func percentile(sorted []float64, p float64) float64 {
	if len(sorted) == 1 {
		return sorted[0]
	}
	rank := p / 100 * float64(len(sorted)-1)
	lo := int(math.Floor(rank))
	hi := int(math.Ceil(rank))
	if lo == hi {
		return sorted[lo]
	}
	frac := rank - float64(lo)
	return sorted[lo]*(1-frac) + sorted[hi]*frac
}

// Clip bounds every sample into r, returning a new slice. Values inside the
// range pass through unchanged.
func Clip(samples []float64, r models.ClipRange) []float64 {
	out := make([]float64, len(samples))
	for i, v := range samples {
		switch {
		case v < r.Low:
			out[i] = r.Low
		case v > r.High:
			out[i] = r.High
		default:
			out[i] = v
		}
	}
	return out
}
