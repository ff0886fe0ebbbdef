package models

// AxisUnit is the time unit a duration entry's ticks are expressed in.
type AxisUnit string

const (
	UnitSeconds AxisUnit = "seconds"
	UnitMinutes AxisUnit = "minutes"
	UnitHours   AxisUnit = "hours"
)

// DurationEntry is one row of the window-duration table: a selectable window
// length plus the hand-authored axis gridline values for that length,
// expressed in Unit.
type DurationEntry struct {
	Seconds float64   `json:"seconds"`
	Ticks   []float64 `json:"ticks"`
	Unit    AxisUnit  `json:"unit"`
}

// ClipRange bounds sample values before display. Low <= High always; the two
// may coincide for a near-constant signal.
type ClipRange struct {
	Low  float64 `json:"low"`
	High float64 `json:"high"`
}

// Raster is the 2D heatmap grid: one row per window, row-major, earliest
// window first. Cells past SamplesInLastRow in the final row are zero fill,
// not signal data.
type Raster struct {
	Grid             [][]float64 `json:"grid"`
	Rows             int         `json:"rows"`
	Cols             int         `json:"cols"`
	SamplesInLastRow int         `json:"samples_in_last_row"`
}

// TickSet holds the axis annotations for a raster: horizontal ticks are time
// within one row, vertical ticks are elapsed hours. Positions use 1-based
// column/row addressing.
type TickSet struct {
	XPositions []float64 `json:"x_positions"`
	XLabels    []string  `json:"x_labels"`
	YPositions []float64 `json:"y_positions"`
	YLabels    []string  `json:"y_labels"`
}

// SignalStats summarizes the raw (pre-clip) sample distribution.
type SignalStats struct {
	Count  int     `json:"count"`
	Mean   float64 `json:"mean"`
	StdDev float64 `json:"stddev"`
	Min    float64 `json:"min"`
	Max    float64 `json:"max"`
}

// RasterBundle is the complete per-signal package handed to the renderer.
// GrayLevels is a display quantization hint only; it never affects Grid.
type RasterBundle struct {
	Label         string      `json:"label"`
	Dimension     string      `json:"dimension,omitempty"`
	WindowSeconds float64     `json:"window_seconds"`
	AxisUnit      AxisUnit    `json:"axis_unit"`
	GrayLevels    int         `json:"gray_levels"`
	Clip          ClipRange   `json:"clip"`
	Stats         SignalStats `json:"stats"`
	RowRMS        []float64   `json:"row_rms"`
	Raster        *Raster     `json:"raster"`
	Ticks         TickSet     `json:"ticks"`
}

// RasterLayout is the multi-pane variant: one bundle per signal under a
// shared title.
type RasterLayout struct {
	Title   string         `json:"title"`
	Bundles []RasterBundle `json:"bundles"`
}
