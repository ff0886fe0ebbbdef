package usecase

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"time"

	"SomnoScan/internal/domain/models"
	domrepo "SomnoScan/internal/domain/repository"
	svccache "SomnoScan/internal/service/cache"
	"SomnoScan/internal/services/raster"
	"SomnoScan/internal/services/stats"
)

// RasterViewParams selects one signal view of a recording.
type RasterViewParams struct {
	RecordingID string
	Signal      string
	WindowIndex int
	PLow        float64
	PHigh       float64
	GrayLevels  int
}

// RasterService turns stored or live signals into renderable raster bundles.
// Finished bundles are cached since re-rastering a full night is the most
// expensive read in the system.
type RasterService struct {
	registry domrepo.Registry
	buffers  domrepo.LiveBuffers
	cache    svccache.BytesCache
	metrics  domrepo.Metrics
	cacheTTL time.Duration
}

func NewRasterService(registry domrepo.Registry, buffers domrepo.LiveBuffers, cache svccache.BytesCache, metrics domrepo.Metrics) *RasterService {
	return &RasterService{
		registry: registry,
		buffers:  buffers,
		cache:    cache,
		metrics:  metrics,
		cacheTTL: 10 * time.Minute,
	}
}

// BuildView builds the raster bundle for one signal of a stored recording.
func (s *RasterService) BuildView(ctx context.Context, p RasterViewParams) (*models.RasterBundle, error) {
	sig, err := s.registry.Signal(p.RecordingID, p.Signal)
	if err != nil {
		return nil, err
	}

	key := fmt.Sprintf("raster:%s:%s:%d:%g:%g:%d",
		p.RecordingID, p.Signal, p.WindowIndex, p.PLow, p.PHigh, p.GrayLevels)
	if s.cache != nil {
		if b, ok, cerr := s.cache.GetBytes(key); cerr == nil && ok {
			var bundle models.RasterBundle
			if err := json.Unmarshal(b, &bundle); err == nil {
				s.metrics.RecordCacheLookup(true)
				return &bundle, nil
			}
		}
		s.metrics.RecordCacheLookup(false)
	}

	start := time.Now()
	bundle, err := s.buildSignal(sig, p)
	if err != nil {
		return nil, err
	}
	s.metrics.RecordLatency("raster_build", time.Since(start).Seconds())

	if s.cache != nil {
		if b, merr := json.Marshal(bundle); merr == nil {
			_ = s.cache.SetBytes(key, b, s.cacheTTL)
		}
	}
	return bundle, nil
}

// BuildLayout builds a bundle per signal of a recording, sharing the window
// selection so the stacked views stay aligned.
func (s *RasterService) BuildLayout(ctx context.Context, p RasterViewParams) (*models.RasterLayout, error) {
	rec, err := s.registry.Get(p.RecordingID)
	if err != nil {
		return nil, err
	}

	layout := &models.RasterLayout{Title: rec.ID}
	for i := range rec.Signals {
		sp := p
		sp.Signal = rec.Signals[i].Label
		bundle, err := s.BuildView(ctx, sp)
		if err != nil {
			return nil, fmt.Errorf("signal %q: %w", sp.Signal, err)
		}
		layout.Bundles = append(layout.Bundles, *bundle)
	}
	return layout, nil
}

// BuildLiveView rasters the current live buffer of a device signal. Live
// views bypass the cache because the buffer changes on every batch.
func (s *RasterService) BuildLiveView(ctx context.Context, device string, p RasterViewParams) (*models.RasterBundle, error) {
	sig, err := s.buffers.Snapshot(device, p.Signal)
	if err != nil {
		return nil, err
	}
	s.metrics.RecordBufferDepth(device, p.Signal, len(sig.Samples))
	return s.buildSignal(&sig, p)
}

func (s *RasterService) buildSignal(sig *models.Signal, p RasterViewParams) (*models.RasterBundle, error) {
	entry, err := raster.Lookup(p.WindowIndex)
	if err != nil {
		return nil, err
	}

	cols := int(math.Round(entry.Seconds * sig.Rate))
	if cols < 1 {
		return nil, fmt.Errorf("%w: %gs at %gHz", raster.ErrInvalidWindow, entry.Seconds, sig.Rate)
	}

	clip, err := raster.ComputeRange(sig.Samples, p.PLow, p.PHigh)
	if err != nil {
		return nil, err
	}
	clipped := raster.Clip(sig.Samples, clip)

	r, err := raster.Build(clipped, cols)
	if err != nil {
		return nil, err
	}
	ticks, err := raster.Ticks(entry, r)
	if err != nil {
		return nil, err
	}

	return &models.RasterBundle{
		Label:         sig.Label,
		Dimension:     sig.Dimension,
		WindowSeconds: entry.Seconds,
		AxisUnit:      entry.Unit,
		GrayLevels:    p.GrayLevels,
		Clip:          clip,
		Stats:         stats.Summarize(sig.Samples),
		RowRMS:        stats.RowRMS(r),
		Raster:        r,
		Ticks:         ticks,
	}, nil
}
