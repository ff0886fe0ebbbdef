package raster

import (
	"errors"
	"testing"
)

func seq(n int) []float64 {
	s := make([]float64, n)
	for i := range s {
		s[i] = float64(i + 1)
	}
	return s
}

func TestBuildEvenlyDivisible(t *testing.T) {
	r, err := Build(seq(100), 10)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if r.Rows != 10 || r.Cols != 10 {
		t.Fatalf("expected 10x10, got %dx%d", r.Rows, r.Cols)
	}
	if r.SamplesInLastRow != 10 {
		t.Fatalf("expected full last row, got %d", r.SamplesInLastRow)
	}
	for k := 1; k <= 10; k++ {
		for j := 0; j < 10; j++ {
			want := float64(10*(k-1) + j + 1)
			if got := r.Grid[k-1][j]; got != want {
				t.Fatalf("row %d col %d: expected %g got %g", k, j, want, got)
			}
		}
	}
}

func TestBuildRemainderRowZeroPadded(t *testing.T) {
	r, err := Build(seq(95), 10)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if r.Rows != 10 {
		t.Fatalf("expected 10 rows, got %d", r.Rows)
	}
	if r.SamplesInLastRow != 5 {
		t.Fatalf("expected 5 samples in last row, got %d", r.SamplesInLastRow)
	}
	want := []float64{91, 92, 93, 94, 95, 0, 0, 0, 0, 0}
	for j, w := range want {
		if got := r.Grid[9][j]; got != w {
			t.Fatalf("last row col %d: expected %g got %g", j, w, got)
		}
	}
}

func TestBuildShapeInvariant(t *testing.T) {
	for _, tc := range []struct{ n, cols, rows int }{
		{1, 1, 1},
		{1, 10, 1},
		{10, 3, 4},
		{99, 10, 10},
		{100, 10, 10},
		{101, 10, 11},
		{43200, 7500, 6},
	} {
		r, err := Build(seq(tc.n), tc.cols)
		if err != nil {
			t.Fatalf("n=%d cols=%d: unexpected error: %v", tc.n, tc.cols, err)
		}
		if r.Rows != tc.rows {
			t.Fatalf("n=%d cols=%d: expected %d rows, got %d", tc.n, tc.cols, tc.rows, r.Rows)
		}
		if (r.Rows-1)*r.Cols >= tc.n || tc.n > r.Rows*r.Cols {
			t.Fatalf("n=%d cols=%d: shape invariant violated rows=%d", tc.n, tc.cols, r.Rows)
		}
		if len(r.Grid) != r.Rows {
			t.Fatalf("grid rows mismatch: %d vs %d", len(r.Grid), r.Rows)
		}
		for i := range r.Grid {
			if len(r.Grid[i]) != r.Cols {
				t.Fatalf("grid row %d not rectangular: %d cols", i, len(r.Grid[i]))
			}
		}
	}
}

func TestBuildRoundTrip(t *testing.T) {
	samples := seq(95)
	r, err := Build(samples, 10)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	var flat []float64
	for i := 0; i < r.Rows-1; i++ {
		flat = append(flat, r.Grid[i]...)
	}
	flat = append(flat, r.Grid[r.Rows-1][:r.SamplesInLastRow]...)
	if len(flat) != len(samples) {
		t.Fatalf("round trip length: %d vs %d", len(flat), len(samples))
	}
	for i := range samples {
		if flat[i] != samples[i] {
			t.Fatalf("round trip sample %d: %g vs %g", i, flat[i], samples[i])
		}
	}
}

func TestBuildPaddingOnly(t *testing.T) {
	r, err := Build(seq(7), 5)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// cells beyond SamplesInLastRow are zero; all real cells are non-zero here
	for j := 0; j < r.Cols; j++ {
		v := r.Grid[r.Rows-1][j]
		if j < r.SamplesInLastRow && v == 0 {
			t.Fatalf("real cell %d unexpectedly zero", j)
		}
		if j >= r.SamplesInLastRow && v != 0 {
			t.Fatalf("pad cell %d not zero: %g", j, v)
		}
	}
}

func TestBuildEmptyInput(t *testing.T) {
	r, err := Build(nil, 10)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if r.Rows != 0 || r.SamplesInLastRow != 0 {
		t.Fatalf("expected empty raster, got rows=%d last=%d", r.Rows, r.SamplesInLastRow)
	}
}

func TestBuildInvalidWindow(t *testing.T) {
	for _, cols := range []int{0, -1} {
		if _, err := Build(seq(10), cols); !errors.Is(err, ErrInvalidWindow) {
			t.Fatalf("cols=%d: expected ErrInvalidWindow, got %v", cols, err)
		}
	}
}
