package models

// SampleBatch is the live-ingest unit: a contiguous run of samples for one
// signal of one acquisition device.
type SampleBatch struct {
	Device    string    `json:"device"`
	Signal    string    `json:"signal"`
	Rate      float64   `json:"rate"`
	Seq       uint64    `json:"seq"`
	Timestamp int64     `json:"t"` // unix seconds of the first sample
	Samples   []float64 `json:"samples"`
}
