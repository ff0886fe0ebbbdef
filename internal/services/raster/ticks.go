package raster

import (
	"fmt"
	"strconv"

	"SomnoScan/internal/domain/models"
)

// XTicks places the entry's gridline values across a raster row. Positions
// are evenly spaced over [1, cols]; the first is forced to column 1 because
// column 0 is outside valid addressing, and the rest are clamped to column 1
// so a row narrower than its tick count (possible only at sub-Hz rates)
// cannot yield positions left of the first. Labels are the tick values
// verbatim.
func XTicks(entry models.DurationEntry, cols int) ([]float64, []string, error) {
	n := len(entry.Ticks)
	if n < 2 {
		return nil, nil, fmt.Errorf("%w: %gs entry", ErrInvalidDurationEntry, entry.Seconds)
	}

	positions := make([]float64, n)
	labels := make([]string, n)
	positions[0] = 1
	for i := 1; i < n; i++ {
		pos := float64(i) * float64(cols) / float64(n-1)
		if pos < 1 {
			pos = 1
		}
		positions[i] = pos
	}
	for i, v := range entry.Ticks {
		labels[i] = formatTick(v)
	}
	return positions, labels, nil
}

// YTicks marks whole elapsed hours down the raster. One row spans
// durationSeconds, so ticks fall every 3600/durationSeconds rows; the spacing
// need not be integral. A recording shorter than one window-hour still gets
// the initial "0" tick.
func YTicks(durationSeconds float64, rows int) ([]float64, []string) {
	rowsPerHour := 3600 / durationSeconds

	var positions []float64
	var labels []string
	for hour := 0; ; hour++ {
		pos := 1 + float64(hour)*rowsPerHour
		if pos > float64(rows) {
			break
		}
		positions = append(positions, pos)
		labels = append(labels, strconv.Itoa(hour))
	}
	if len(positions) == 0 {
		positions = append(positions, 1)
		labels = append(labels, "0")
	}
	return positions, labels
}

// Ticks derives the complete tick set for a raster built from entry.
func Ticks(entry models.DurationEntry, r *models.Raster) (models.TickSet, error) {
	xPos, xLabels, err := XTicks(entry, r.Cols)
	if err != nil {
		return models.TickSet{}, err
	}
	yPos, yLabels := YTicks(entry.Seconds, r.Rows)
	return models.TickSet{
		XPositions: xPos,
		XLabels:    xLabels,
		YPositions: yPos,
		YLabels:    yLabels,
	}, nil
}

func formatTick(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
