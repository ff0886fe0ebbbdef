package raster

import (
	"errors"
	"testing"

	"SomnoScan/internal/domain/models"
)

func TestComputeRangeUniform(t *testing.T) {
	samples := make([]float64, 1001)
	for i := range samples {
		samples[i] = float64(i)
	}
	r, err := ComputeRange(samples, 10, 90)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if r.Low != 100 || r.High != 900 {
		t.Fatalf("expected [100, 900], got [%g, %g]", r.Low, r.High)
	}

	clipped := Clip(samples, r)
	if clipped[0] != 100 {
		t.Fatalf("minimum not clamped inward: %g", clipped[0])
	}
	if clipped[1000] != 900 {
		t.Fatalf("maximum not clamped inward: %g", clipped[1000])
	}
}

func TestComputeRangeInterpolates(t *testing.T) {
	// 5 values, rank for p=25 is 1.0 exactly; p=30 falls between ranks
	samples := []float64{0, 10, 20, 30, 40}
	r, err := ComputeRange(samples, 25, 75)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if r.Low != 10 || r.High != 30 {
		t.Fatalf("expected [10, 30], got [%g, %g]", r.Low, r.High)
	}

	r, err = ComputeRange(samples, 30, 70)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if r.Low != 12 || r.High != 28 {
		t.Fatalf("expected [12, 28], got [%g, %g]", r.Low, r.High)
	}
}

func TestComputeRangeDegenerate(t *testing.T) {
	r, err := ComputeRange([]float64{5, 5, 5, 5}, 10, 90)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if r.Low != 5 || r.High != 5 {
		t.Fatalf("expected collapsed range [5, 5], got [%g, %g]", r.Low, r.High)
	}
}

func TestComputeRangeInvalid(t *testing.T) {
	samples := []float64{1, 2, 3}
	for _, tc := range [][2]float64{{90, 10}, {50, 50}, {-1, 90}, {10, 101}} {
		if _, err := ComputeRange(samples, tc[0], tc[1]); !errors.Is(err, ErrInvalidRange) {
			t.Fatalf("[%g, %g]: expected ErrInvalidRange, got %v", tc[0], tc[1], err)
		}
	}
}

func TestClipBoundsAndPassthrough(t *testing.T) {
	r := models.ClipRange{Low: 10, High: 20}
	in := []float64{-5, 10, 15, 20, 99}
	out := Clip(in, r)
	want := []float64{10, 10, 15, 20, 20}
	for i := range want {
		if out[i] != want[i] {
			t.Fatalf("index %d: expected %g got %g", i, want[i], out[i])
		}
	}
	if in[0] != -5 {
		t.Fatalf("input mutated")
	}
}

func TestClipIdempotent(t *testing.T) {
	r := models.ClipRange{Low: -1, High: 1}
	in := []float64{-3, -1, 0, 0.5, 1, 3}
	once := Clip(in, r)
	twice := Clip(once, r)
	for i := range once {
		if once[i] != twice[i] {
			t.Fatalf("index %d: clip not idempotent (%g vs %g)", i, once[i], twice[i])
		}
		if once[i] < r.Low || once[i] > r.High {
			t.Fatalf("index %d: value %g outside range", i, once[i])
		}
	}
}
