// Package stats computes summary statistics shown next to a raster so a
// reviewer can judge signal quality without leaving the heatmap view.
package stats

import (
	"math"

	"SomnoScan/internal/domain/models"
)

// Summarize computes the sample statistics of a signal. An empty input
// returns the zero value.
func Summarize(samples []float64) models.SignalStats {
	if len(samples) == 0 {
		return models.SignalStats{}
	}

	sum := 0.0
	sum2 := 0.0
	min := samples[0]
	max := samples[0]
	for _, v := range samples {
		sum += v
		sum2 += v * v
		if v < min {
			min = v
		}
		if v > max {
			max = v
		}
	}

	n := float64(len(samples))
	mean := sum / n
	variance := 0.0
	if len(samples) > 1 {
		variance = (sum2 - n*mean*mean) / (n - 1)
		if variance < 0 {
			variance = 0
		}
	}

	return models.SignalStats{
		Count:  len(samples),
		Mean:   mean,
		StdDev: math.Sqrt(variance),
		Min:    min,
		Max:    max,
	}
}

// RowRMS computes the RMS amplitude of each raster row. Flat or disconnected
// stretches of a recording stand out as near-zero rows.
func RowRMS(r *models.Raster) []float64 {
	out := make([]float64, r.Rows)
	for i, row := range r.Grid {
		sum2 := 0.0
		for _, v := range row {
			sum2 += v * v
		}
		if r.Cols > 0 {
			out[i] = math.Sqrt(sum2 / float64(r.Cols))
		}
	}
	return out
}
