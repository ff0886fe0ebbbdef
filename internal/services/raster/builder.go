package raster

import (
	"fmt"

	"SomnoScan/internal/domain/models"
)

// Build folds a flat sample sequence into a rows x cols grid, one window per
// row, row-major with the earliest window first. The final row is left-aligned
// and zero-padded past the last real sample: the grid stays rectangular and a
// tail cell never shows data from a different window.
func Build(samples []float64, samplesPerWindow int) (*models.Raster, error) {
	if samplesPerWindow < 1 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidWindow, samplesPerWindow)
	}

	cols := samplesPerWindow
	rows := (len(samples) + cols - 1) / cols

	grid := make([][]float64, rows)
	for i := range grid {
		grid[i] = make([]float64, cols)
	}

	inLastRow := 0
	for i, v := range samples {
		grid[i/cols][i%cols] = v
	}
	if len(samples) > 0 {
		inLastRow = len(samples) - (rows-1)*cols
	}

	return &models.Raster{
		Grid:             grid,
		Rows:             rows,
		Cols:             cols,
		SamplesInLastRow: inLastRow,
	}, nil
}
