package models

// Requests for raster HTTP endpoints. Defined in domain for consistency and reuse.
//
// The percentile bounds are pointers so an explicit `plow=0` (clip nothing
// below) stays distinguishable from an omitted field: defaults only fill nil
// pointers, never a bound zero.

type RasterRequest struct {
	Signal string   `query:"signal" json:"signal" validate:"required"`
	Window int      `query:"window" json:"window" default:"7" validate:"gte=1,lte=25"`
	PLow   *float64 `query:"plow" json:"plow" default:"10" validate:"gte=0,lte=100"`
	PHigh  *float64 `query:"phigh" json:"phigh" default:"90" validate:"gte=0,lte=100"`
	Gray   int      `query:"gray" json:"gray" default:"32" validate:"gte=2,lte=256"`
}

type LayoutRequest struct {
	Window int      `query:"window" json:"window" default:"7" validate:"gte=1,lte=25"`
	PLow   *float64 `query:"plow" json:"plow" default:"10" validate:"gte=0,lte=100"`
	PHigh  *float64 `query:"phigh" json:"phigh" default:"90" validate:"gte=0,lte=100"`
	Gray   int      `query:"gray" json:"gray" default:"32" validate:"gte=2,lte=256"`
	Title  string   `query:"title" json:"title"`
}

type LiveRasterRequest struct {
	Signal string   `query:"signal" json:"signal" validate:"required"`
	Window int      `query:"window" json:"window" default:"7" validate:"gte=1,lte=25"`
	PLow   *float64 `query:"plow" json:"plow" default:"10" validate:"gte=0,lte=100"`
	PHigh  *float64 `query:"phigh" json:"phigh" default:"90" validate:"gte=0,lte=100"`
	Gray   int      `query:"gray" json:"gray" default:"32" validate:"gte=2,lte=256"`
}
