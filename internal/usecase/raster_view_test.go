package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"SomnoScan/internal/domain/models"
	"SomnoScan/internal/repository"
	"SomnoScan/internal/services/raster"
)

type fakeBuffers struct {
	sig models.Signal
	err error
}

func (f *fakeBuffers) Append(*models.SampleBatch) {}
func (f *fakeBuffers) Snapshot(device, label string) (models.Signal, error) {
	return f.sig, f.err
}
func (f *fakeBuffers) Labels(device string) []string { return nil }

type fakeMetrics struct {
	latencies map[string]int
	depths    int
	cacheHits int
	cacheMiss int
}

func (f *fakeMetrics) RecordBatchIngested(device, signal string) {}
func (f *fakeMetrics) RecordError(kind string)                   {}
func (f *fakeMetrics) RecordBufferDepth(device, signal string, samples int) {
	f.depths++
}
func (f *fakeMetrics) RecordLatency(op string, seconds float64) {
	if f.latencies == nil {
		f.latencies = make(map[string]int)
	}
	f.latencies[op]++
}

func (f *fakeMetrics) RecordCacheLookup(hit bool) {
	if hit {
		f.cacheHits++
	} else {
		f.cacheMiss++
	}
}

type memBytesCache struct {
	data map[string][]byte
	sets int
	hits int
}

func (c *memBytesCache) GetBytes(key string) ([]byte, bool, error) {
	b, ok := c.data[key]
	if ok {
		c.hits++
	}
	return b, ok, nil
}

func (c *memBytesCache) SetBytes(key string, value []byte, ttl time.Duration) error {
	if c.data == nil {
		c.data = make(map[string][]byte)
	}
	c.data[key] = value
	c.sets++
	return nil
}

func rampRecording(id string, rate float64, n int) *models.Recording {
	samples := make([]float64, n)
	for i := range samples {
		samples[i] = float64(i)
	}
	return &models.Recording{
		ID: id,
		Signals: []models.Signal{
			{Label: "EEG", Dimension: "uV", Rate: rate, Samples: samples},
		},
	}
}

func newTestService(rec *models.Recording) (*RasterService, *memBytesCache, *fakeMetrics) {
	reg := repository.NewMemoryRegistry()
	if rec != nil {
		reg.Add(rec)
	}
	cache := &memBytesCache{}
	metrics := &fakeMetrics{}
	svc := NewRasterService(reg, &fakeBuffers{err: repository.ErrLabelNotFound}, cache, metrics)
	return svc, cache, metrics
}

func TestBuildViewDimensions(t *testing.T) {
	// 100 Hz with the default 30 s window gives 3000 columns.
	svc, _, metrics := newTestService(rampRecording("n1", 100, 7500))

	bundle, err := svc.BuildView(context.Background(), RasterViewParams{
		RecordingID: "n1", Signal: "EEG", WindowIndex: 7, PLow: 10, PHigh: 90, GrayLevels: 32,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if bundle.Raster.Cols != 3000 {
		t.Fatalf("expected 3000 cols, got %d", bundle.Raster.Cols)
	}
	if bundle.Raster.Rows != 3 {
		t.Fatalf("expected 3 rows, got %d", bundle.Raster.Rows)
	}
	if bundle.Raster.SamplesInLastRow != 1500 {
		t.Fatalf("expected 1500 samples in last row, got %d", bundle.Raster.SamplesInLastRow)
	}
	if bundle.WindowSeconds != 30 {
		t.Fatalf("expected 30s window, got %g", bundle.WindowSeconds)
	}
	if bundle.Stats.Count != 7500 {
		t.Fatalf("expected stats over all samples, got %d", bundle.Stats.Count)
	}
	if len(bundle.RowRMS) != bundle.Raster.Rows {
		t.Fatalf("expected one RMS value per row, got %d", len(bundle.RowRMS))
	}
	if metrics.latencies["raster_build"] != 1 {
		t.Fatalf("expected one build latency sample")
	}
}

func TestBuildViewFractionalRateRounds(t *testing.T) {
	// 99.7 Hz over a 30 s window rounds to the nearest whole column count.
	svc, _, _ := newTestService(rampRecording("n1", 99.7, 6000))

	bundle, err := svc.BuildView(context.Background(), RasterViewParams{
		RecordingID: "n1", Signal: "EEG", WindowIndex: 7, PLow: 10, PHigh: 90,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if bundle.Raster.Cols != 2991 {
		t.Fatalf("expected 2991 cols, got %d", bundle.Raster.Cols)
	}
}

func TestBuildViewZeroWidthWindow(t *testing.T) {
	// A 1 s window at a rate under 0.5 Hz rounds to zero columns.
	svc, _, _ := newTestService(rampRecording("n1", 0.2, 100))

	_, err := svc.BuildView(context.Background(), RasterViewParams{
		RecordingID: "n1", Signal: "EEG", WindowIndex: 1, PLow: 10, PHigh: 90,
	})
	if !errors.Is(err, raster.ErrInvalidWindow) {
		t.Fatalf("expected ErrInvalidWindow, got %v", err)
	}
}

func TestBuildViewUnknownRecording(t *testing.T) {
	svc, _, _ := newTestService(nil)

	_, err := svc.BuildView(context.Background(), RasterViewParams{
		RecordingID: "ghost", Signal: "EEG", WindowIndex: 7, PLow: 10, PHigh: 90,
	})
	if !errors.Is(err, repository.ErrRecordingNotFound) {
		t.Fatalf("expected ErrRecordingNotFound, got %v", err)
	}
}

func TestBuildViewBadIndex(t *testing.T) {
	svc, _, _ := newTestService(rampRecording("n1", 100, 1000))

	_, err := svc.BuildView(context.Background(), RasterViewParams{
		RecordingID: "n1", Signal: "EEG", WindowIndex: 26, PLow: 10, PHigh: 90,
	})
	if !errors.Is(err, raster.ErrIndexOutOfRange) {
		t.Fatalf("expected ErrIndexOutOfRange, got %v", err)
	}
}

func TestBuildViewCaches(t *testing.T) {
	svc, cache, metrics := newTestService(rampRecording("n1", 100, 7500))
	params := RasterViewParams{
		RecordingID: "n1", Signal: "EEG", WindowIndex: 7, PLow: 10, PHigh: 90, GrayLevels: 32,
	}

	first, err := svc.BuildView(context.Background(), params)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cache.sets != 1 {
		t.Fatalf("expected one cache write, got %d", cache.sets)
	}

	second, err := svc.BuildView(context.Background(), params)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cache.hits != 1 {
		t.Fatalf("expected cache hit on second build")
	}
	if metrics.cacheHits != 1 || metrics.cacheMiss != 1 {
		t.Fatalf("expected one hit and one miss, got %d/%d", metrics.cacheHits, metrics.cacheMiss)
	}
	if metrics.latencies["raster_build"] != 1 {
		t.Fatalf("cached build must not recompute")
	}
	if second.Raster.Cols != first.Raster.Cols || second.Raster.Rows != first.Raster.Rows {
		t.Fatalf("cached bundle differs: %+v vs %+v", second.Raster, first.Raster)
	}
}

func TestBuildLayoutAllSignals(t *testing.T) {
	rec := rampRecording("n1", 100, 7500)
	rec.Signals = append(rec.Signals, models.Signal{
		Label: "Resp", Dimension: "mV", Rate: 32, Samples: make([]float64, 3200),
	})
	svc, _, _ := newTestService(rec)

	layout, err := svc.BuildLayout(context.Background(), RasterViewParams{
		RecordingID: "n1", WindowIndex: 7, PLow: 10, PHigh: 90,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if layout.Title != "n1" {
		t.Fatalf("expected title n1, got %s", layout.Title)
	}
	if len(layout.Bundles) != 2 {
		t.Fatalf("expected 2 bundles, got %d", len(layout.Bundles))
	}
	if layout.Bundles[0].Label != "EEG" || layout.Bundles[1].Label != "Resp" {
		t.Fatalf("bundles out of order: %s, %s", layout.Bundles[0].Label, layout.Bundles[1].Label)
	}
	if layout.Bundles[1].Raster.Cols != 960 {
		t.Fatalf("expected 960 cols for 32 Hz, got %d", layout.Bundles[1].Raster.Cols)
	}
}

func TestBuildLiveView(t *testing.T) {
	reg := repository.NewMemoryRegistry()
	buffers := &fakeBuffers{
		sig: models.Signal{Label: "EEG", Rate: 100, Samples: make([]float64, 6000)},
	}
	metrics := &fakeMetrics{}
	svc := NewRasterService(reg, buffers, &memBytesCache{}, metrics)

	bundle, err := svc.BuildLiveView(context.Background(), "dev1", RasterViewParams{
		Signal: "EEG", WindowIndex: 7, PLow: 10, PHigh: 90,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if bundle.Raster.Rows != 2 {
		t.Fatalf("expected 2 rows, got %d", bundle.Raster.Rows)
	}
	if metrics.depths != 1 {
		t.Fatalf("expected buffer depth gauge update")
	}
}
