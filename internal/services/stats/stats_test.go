package stats

import (
	"math"
	"testing"

	"SomnoScan/internal/domain/models"
)

func TestSummarize(t *testing.T) {
	s := Summarize([]float64{2, 4, 4, 4, 5, 5, 7, 9})
	if s.Count != 8 {
		t.Fatalf("expected count 8, got %d", s.Count)
	}
	if s.Mean != 5 {
		t.Fatalf("expected mean 5, got %g", s.Mean)
	}
	// sample stddev of this set is sqrt(32/7)
	want := math.Sqrt(32.0 / 7.0)
	if math.Abs(s.StdDev-want) > 1e-9 {
		t.Fatalf("expected stddev %g, got %g", want, s.StdDev)
	}
	if s.Min != 2 || s.Max != 9 {
		t.Fatalf("unexpected min/max %g/%g", s.Min, s.Max)
	}
}

func TestSummarizeEmpty(t *testing.T) {
	s := Summarize(nil)
	if s.Count != 0 || s.Mean != 0 || s.StdDev != 0 {
		t.Fatalf("expected zero value, got %+v", s)
	}
}

func TestSummarizeSingle(t *testing.T) {
	s := Summarize([]float64{3.5})
	if s.Count != 1 || s.StdDev != 0 || s.Min != 3.5 || s.Max != 3.5 {
		t.Fatalf("unexpected stats %+v", s)
	}
}

func TestRowRMS(t *testing.T) {
	r := &models.Raster{
		Grid: [][]float64{
			{3, 4},
			{0, 0},
		},
		Rows: 2,
		Cols: 2,
	}
	rms := RowRMS(r)
	if len(rms) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(rms))
	}
	want := math.Sqrt(12.5)
	if math.Abs(rms[0]-want) > 1e-9 {
		t.Fatalf("expected %g, got %g", want, rms[0])
	}
	if rms[1] != 0 {
		t.Fatalf("expected zero row, got %g", rms[1])
	}
}
