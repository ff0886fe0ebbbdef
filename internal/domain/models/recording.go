package models

import "time"

// Recording represents one indexed EDF/EDF+ recording: header metadata plus
// the decoded per-signal sample sequences. Immutable once loaded.
type Recording struct {
	ID             string
	Path           string
	PatientID      string
	StartTime      time.Time
	RecordCount    int
	RecordDuration time.Duration
	Signals        []Signal
}

// Signal is one channel of a recording. Samples are physical values in the
// signal's dimension, already calibrated by the loader.
type Signal struct {
	Label            string
	Dimension        string  // physical dimension, e.g. "uV"
	SamplesPerRecord int
	Rate             float64 // samples per second, samples_per_record / record_duration
	Samples          []float64
}

// RecordingSummary is the catalog view of a recording, without samples.
type RecordingSummary struct {
	ID              string    `json:"id"`
	PatientID       string    `json:"patient_id,omitempty"`
	StartTime       time.Time `json:"start_time"`
	DurationSeconds float64   `json:"duration_seconds"`
	Signals         []string  `json:"signals"`
}

// Summary strips the sample data for listing endpoints.
func (r *Recording) Summary() RecordingSummary {
	return RecordingSummary{
		ID:              r.ID,
		PatientID:       r.PatientID,
		StartTime:       r.StartTime,
		DurationSeconds: r.DurationSeconds(),
		Signals:         r.SignalLabels(),
	}
}

// DurationSeconds returns the total recorded time span in seconds.
func (r *Recording) DurationSeconds() float64 {
	return float64(r.RecordCount) * r.RecordDuration.Seconds()
}

// SignalLabels returns the channel labels in recording order.
func (r *Recording) SignalLabels() []string {
	labels := make([]string, len(r.Signals))
	for i, s := range r.Signals {
		labels[i] = s.Label
	}
	return labels
}
