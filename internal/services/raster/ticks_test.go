package raster

import (
	"errors"
	"math"
	"testing"

	"SomnoScan/internal/domain/models"
)

func TestXTicksDefaultWindow(t *testing.T) {
	entry, err := Lookup(7) // 30s window
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	pos, labels, err := XTicks(entry, 300)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	wantPos := []float64{1, 100, 200, 300}
	wantLabels := []string{"0", "10", "20", "30"}
	for i := range wantPos {
		if pos[i] != wantPos[i] {
			t.Fatalf("position %d: expected %g got %g", i, wantPos[i], pos[i])
		}
		if labels[i] != wantLabels[i] {
			t.Fatalf("label %d: expected %q got %q", i, wantLabels[i], labels[i])
		}
	}
}

func TestXTicksCountLaw(t *testing.T) {
	for i, entry := range Durations() {
		pos, labels, err := XTicks(entry, 1500)
		if err != nil {
			t.Fatalf("entry %d: unexpected error: %v", i+1, err)
		}
		if len(pos) != len(entry.Ticks) || len(labels) != len(entry.Ticks) {
			t.Fatalf("entry %d: tick count law violated (%d vs %d)", i+1, len(pos), len(entry.Ticks))
		}
		if pos[0] != 1 {
			t.Fatalf("entry %d: first position %g, expected exactly 1", i+1, pos[0])
		}
		if pos[len(pos)-1] != 1500 {
			t.Fatalf("entry %d: last position %g, expected cols", i+1, pos[len(pos)-1])
		}
	}
}

func TestXTicksFractionalLabels(t *testing.T) {
	entry, _ := Lookup(19) // 2h window, half-hour ticks
	_, labels, err := XTicks(entry, 720)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []string{"0", "0.5", "1", "1.5", "2"}
	for i := range want {
		if labels[i] != want[i] {
			t.Fatalf("label %d: expected %q got %q", i, want[i], labels[i])
		}
	}
}

func TestXTicksNarrowRowMonotonic(t *testing.T) {
	// 1 Hz with the 1s entry gives a single-column row; positions must not
	// fall left of column 1.
	entry, _ := Lookup(1)
	pos, _, err := XTicks(entry, 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for i, p := range pos {
		if p < 1 {
			t.Fatalf("position %d is %g, below column 1", i, p)
		}
		if i > 0 && p < pos[i-1] {
			t.Fatalf("positions not monotonic: %v", pos)
		}
	}
}

func TestXTicksInvalidEntry(t *testing.T) {
	entry := models.DurationEntry{Seconds: 30, Ticks: []float64{0}, Unit: models.UnitSeconds}
	if _, _, err := XTicks(entry, 300); !errors.Is(err, ErrInvalidDurationEntry) {
		t.Fatalf("expected ErrInvalidDurationEntry, got %v", err)
	}
}

func TestYTicksHourlyRows(t *testing.T) {
	// 30s windows: 120 rows per hour; 240 rows = 2 hours
	pos, labels := YTicks(30, 240)
	wantPos := []float64{1, 121}
	wantLabels := []string{"0", "1"}
	if len(pos) != len(wantPos) {
		t.Fatalf("expected %d ticks, got %d", len(wantPos), len(pos))
	}
	for i := range wantPos {
		if pos[i] != wantPos[i] || labels[i] != wantLabels[i] {
			t.Fatalf("tick %d: got (%g, %q)", i, pos[i], labels[i])
		}
	}
}

func TestYTicksFractionalSpacing(t *testing.T) {
	// 45min windows: 4/3 rows per hour
	pos, labels := YTicks(2700, 5)
	if len(pos) != 4 {
		t.Fatalf("expected 4 ticks, got %d", len(pos))
	}
	if math.Abs(pos[3]-5) > 1e-9 {
		t.Fatalf("expected 4th tick at row 5, got %g", pos[3])
	}
	if labels[3] != "3" {
		t.Fatalf("expected hour label 3, got %q", labels[3])
	}
}

func TestYTicksShortRecording(t *testing.T) {
	// fewer rows than one hour's worth still yields the initial tick
	pos, labels := YTicks(30, 10)
	if len(pos) != 1 || pos[0] != 1 || labels[0] != "0" {
		t.Fatalf("expected single origin tick, got %v %v", pos, labels)
	}

	pos, labels = YTicks(30, 0)
	if len(pos) != 1 || labels[0] != "0" {
		t.Fatalf("expected minimal tick set for empty raster, got %v %v", pos, labels)
	}
}

func TestTicksBundle(t *testing.T) {
	entry, _ := Lookup(7)
	r, err := Build(make([]float64, 3000), 300)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	ts, err := Ticks(entry, r)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(ts.XPositions) != 4 || len(ts.YPositions) != 1 {
		t.Fatalf("unexpected tick set: %+v", ts)
	}
}
