// Package raster converts 1D signal sample sequences into fixed-size 2D
// heatmap grids plus the axis annotations needed to read them in time units.
// Everything here is pure and synchronous: results depend only on the inputs
// and the static duration table.
package raster

import "errors"

var (
	// ErrInvalidRange reports a malformed percentile pair.
	ErrInvalidRange = errors.New("raster: invalid percentile range")
	// ErrInvalidWindow reports a samples-per-window count below one sample.
	ErrInvalidWindow = errors.New("raster: samples per window must be >= 1")
	// ErrIndexOutOfRange reports a duration index outside [1, 25].
	ErrIndexOutOfRange = errors.New("raster: duration index out of range")
	// ErrInvalidDurationEntry reports a table entry with fewer than 2 ticks.
	// This is a defect in the static table, not a runtime condition.
	ErrInvalidDurationEntry = errors.New("raster: duration entry needs at least 2 ticks")
)
