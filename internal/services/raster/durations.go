package raster

import (
	"fmt"

	"SomnoScan/internal/domain/models"
)

// durationTable is the fixed list of selectable window durations with the
// matching axis gridline values. Tick sets are hand-tuned for readability,
// not derived from the duration (compare the 2h and 3h entries), so they are
// kept as literal data. The trailing 12h entry is duplicated on purpose to
// keep legacy window indexes stable.
var durationTable = []models.DurationEntry{
	{Seconds: 1, Ticks: []float64{0, 0.5, 1}, Unit: models.UnitSeconds},
	{Seconds: 2, Ticks: []float64{0, 1, 2}, Unit: models.UnitSeconds},
	{Seconds: 5, Ticks: []float64{0, 1, 2, 3, 4, 5}, Unit: models.UnitSeconds},
	{Seconds: 10, Ticks: []float64{0, 2, 4, 6, 8, 10}, Unit: models.UnitSeconds},
	{Seconds: 15, Ticks: []float64{0, 5, 10, 15}, Unit: models.UnitSeconds},
	{Seconds: 20, Ticks: []float64{0, 5, 10, 15, 20}, Unit: models.UnitSeconds},
	{Seconds: 30, Ticks: []float64{0, 10, 20, 30}, Unit: models.UnitSeconds},
	{Seconds: 60, Ticks: []float64{0, 0.5, 1}, Unit: models.UnitMinutes},
	{Seconds: 120, Ticks: []float64{0, 1, 2}, Unit: models.UnitMinutes},
	{Seconds: 180, Ticks: []float64{0, 1, 2, 3}, Unit: models.UnitMinutes},
	{Seconds: 300, Ticks: []float64{0, 1, 2, 3, 4, 5}, Unit: models.UnitMinutes},
	{Seconds: 600, Ticks: []float64{0, 2, 4, 6, 8, 10}, Unit: models.UnitMinutes},
	{Seconds: 900, Ticks: []float64{0, 5, 10, 15}, Unit: models.UnitMinutes},
	{Seconds: 1200, Ticks: []float64{0, 5, 10, 15, 20}, Unit: models.UnitMinutes},
	{Seconds: 1800, Ticks: []float64{0, 10, 20, 30}, Unit: models.UnitMinutes},
	{Seconds: 2400, Ticks: []float64{0, 10, 20, 30, 40}, Unit: models.UnitMinutes},
	{Seconds: 2700, Ticks: []float64{0, 15, 30, 45}, Unit: models.UnitMinutes},
	{Seconds: 3600, Ticks: []float64{0, 0.5, 1}, Unit: models.UnitHours},
	{Seconds: 7200, Ticks: []float64{0, 0.5, 1, 1.5, 2}, Unit: models.UnitHours},
	{Seconds: 10800, Ticks: []float64{0, 1, 2, 3}, Unit: models.UnitHours},
	{Seconds: 14400, Ticks: []float64{0, 1, 2, 3, 4}, Unit: models.UnitHours},
	{Seconds: 21600, Ticks: []float64{0, 2, 4, 6}, Unit: models.UnitHours},
	{Seconds: 28800, Ticks: []float64{0, 2, 4, 6, 8}, Unit: models.UnitHours},
	{Seconds: 43200, Ticks: []float64{0, 6, 12, 18, 24}, Unit: models.UnitHours},
	{Seconds: 43200, Ticks: []float64{0, 6, 12, 18, 24}, Unit: models.UnitHours},
}

func init() {
	// The table is static data; a violation here is a programming error.
	for i, e := range durationTable {
		if len(e.Ticks) < 2 {
			panic(fmt.Sprintf("duration table entry %d: fewer than 2 ticks", i+1))
		}
		if i > 0 && e.Seconds < durationTable[i-1].Seconds {
			panic(fmt.Sprintf("duration table entry %d: durations not monotonic", i+1))
		}
	}
}

// TableSize is the number of selectable window durations.
const TableSize = 25

// Lookup returns the duration entry for a 1-based window index.
func Lookup(index int) (models.DurationEntry, error) {
	if index < 1 || index > TableSize {
		return models.DurationEntry{}, fmt.Errorf("%w: %d", ErrIndexOutOfRange, index)
	}
	return durationTable[index-1], nil
}

// Durations returns a copy of the full table, in index order.
func Durations() []models.DurationEntry {
	out := make([]models.DurationEntry, len(durationTable))
	copy(out, durationTable)
	return out
}
