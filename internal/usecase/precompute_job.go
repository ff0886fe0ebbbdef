package usecase

import (
	"context"
	"fmt"

	"SomnoScan/pkg/logger"
	"SomnoScan/pkg/queue"
)

// PrecomputeJob warms the raster cache for a signal view in the background.
type PrecomputeJob struct {
	svc   *RasterService
	log   *logger.Logger
	pLow  float64
	pHigh float64
	gray  int
}

func NewPrecomputeJob(svc *RasterService, log *logger.Logger, pLow, pHigh float64, gray int) *PrecomputeJob {
	return &PrecomputeJob{svc: svc, log: log, pLow: pLow, pHigh: pHigh, gray: gray}
}

func (j *PrecomputeJob) Name() string { return "raster-precompute" }

func (j *PrecomputeJob) Type() string { return PrecomputeMessageType }

func (j *PrecomputeJob) Handle(ctx context.Context, payload interface{}) error {
	p, err := queue.ParsePayload[PrecomputePayload](payload)
	if err != nil {
		return fmt.Errorf("parse precompute payload: %w", err)
	}

	_, err = j.svc.BuildView(ctx, RasterViewParams{
		RecordingID: p.RecordingID,
		Signal:      p.Signal,
		WindowIndex: p.WindowIndex,
		PLow:        j.pLow,
		PHigh:       j.pHigh,
		GrayLevels:  j.gray,
	})
	if err != nil {
		return fmt.Errorf("precompute %s/%s: %w", p.RecordingID, p.Signal, err)
	}
	j.log.Debug("raster precomputed",
		logger.String("recording", p.RecordingID),
		logger.String("signal", p.Signal),
		logger.Int("window", p.WindowIndex))
	return nil
}

var _ queue.Job = (*PrecomputeJob)(nil)
