package raster

import (
	"errors"
	"testing"

	"SomnoScan/internal/domain/models"
)

func TestTableShape(t *testing.T) {
	all := Durations()
	if len(all) != TableSize {
		t.Fatalf("expected %d entries, got %d", TableSize, len(all))
	}
	for i := 1; i < len(all); i++ {
		if all[i].Seconds < all[i-1].Seconds {
			t.Fatalf("entry %d: durations not monotonic", i+1)
		}
	}
	// the last entry is a deliberate duplicate of the 12h entry
	if all[23].Seconds != 43200 || all[24].Seconds != 43200 {
		t.Fatalf("expected duplicated 12h tail, got %g / %g", all[23].Seconds, all[24].Seconds)
	}
}

func TestTableDurations(t *testing.T) {
	want := []float64{
		1, 2, 5, 10, 15, 20, 30,
		60, 120, 180, 300, 600, 900, 1200, 1800, 2400, 2700,
		3600, 7200, 10800, 14400, 21600, 28800, 43200, 43200,
	}
	all := Durations()
	for i, w := range want {
		if all[i].Seconds != w {
			t.Fatalf("entry %d: expected %gs, got %gs", i+1, w, all[i].Seconds)
		}
	}
}

func TestLookupDefaultEntry(t *testing.T) {
	e, err := Lookup(7)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if e.Seconds != 30 || e.Unit != models.UnitSeconds {
		t.Fatalf("expected 30s entry, got %gs %s", e.Seconds, e.Unit)
	}
	want := []float64{0, 10, 20, 30}
	if len(e.Ticks) != len(want) {
		t.Fatalf("expected %d ticks, got %d", len(want), len(e.Ticks))
	}
	for i, w := range want {
		if e.Ticks[i] != w {
			t.Fatalf("tick %d: expected %g got %g", i, w, e.Ticks[i])
		}
	}
}

func TestLookupHourEntries(t *testing.T) {
	// hand-tuned tick sets, not derivable from the duration
	e2h, _ := Lookup(19)
	if len(e2h.Ticks) != 5 || e2h.Ticks[1] != 0.5 {
		t.Fatalf("2h entry ticks wrong: %v", e2h.Ticks)
	}
	e3h, _ := Lookup(20)
	if len(e3h.Ticks) != 4 || e3h.Ticks[1] != 1 {
		t.Fatalf("3h entry ticks wrong: %v", e3h.Ticks)
	}
	e12h, _ := Lookup(24)
	if e12h.Ticks[len(e12h.Ticks)-1] != 24 {
		t.Fatalf("12h entry ticks wrong: %v", e12h.Ticks)
	}
}

func TestLookupOutOfRange(t *testing.T) {
	for _, idx := range []int{0, -3, 26, 100} {
		if _, err := Lookup(idx); !errors.Is(err, ErrIndexOutOfRange) {
			t.Fatalf("index %d: expected ErrIndexOutOfRange, got %v", idx, err)
		}
	}
}

func TestDurationsReturnsCopy(t *testing.T) {
	a := Durations()
	a[0].Seconds = 999
	b := Durations()
	if b[0].Seconds != 1 {
		t.Fatalf("table mutated through Durations()")
	}
}
