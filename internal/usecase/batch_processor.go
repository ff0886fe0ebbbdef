package usecase

import (
	"context"
	"fmt"
	"time"

	drepo "SomnoScan/internal/domain/repository"

	"SomnoScan/internal/domain/models"
)

// BatchProcessor routes incoming sample batches to the configured backend.
type BatchProcessor struct {
	pub     drepo.Publisher
	catalog drepo.Catalog
	metrics drepo.Metrics
	backend string
	batchSz int
	batchTO time.Duration
}

// NewBatchProcessor creates a new BatchProcessor instance.
func NewBatchProcessor(
	pub drepo.Publisher,
	catalog drepo.Catalog,
	metrics drepo.Metrics,
	backend string,
	batchSz int,
	batchTO time.Duration,
) *BatchProcessor {
	return &BatchProcessor{
		pub:     pub,
		catalog: catalog,
		metrics: metrics,
		backend: backend,
		batchSz: batchSz,
		batchTO: batchTO,
	}
}

// Process routes a single batch to the configured backend.
func (p *BatchProcessor) Process(ctx context.Context, b *models.SampleBatch) error {
	if b == nil {
		return fmt.Errorf("batch is nil")
	}

	start := time.Now()
	var err error

	switch p.backend {
	case "kafka":
		err = p.pub.Publish(ctx, b)
	case "clickhouse":
		err = p.catalog.StoreBatch(ctx, []*models.SampleBatch{b})
	default:
		err = fmt.Errorf("unknown backend: %s", p.backend)
	}

	if err != nil {
		p.metrics.RecordError("process")
		return fmt.Errorf("process batch: %w", err)
	}

	p.metrics.RecordBatchIngested(b.Device, b.Signal)
	p.metrics.RecordLatency("process", time.Since(start).Seconds())

	return nil
}

// ProcessBatch routes multiple batches in one call.
func (p *BatchProcessor) ProcessBatch(ctx context.Context, batches []*models.SampleBatch) error {
	if len(batches) == 0 {
		return nil
	}

	start := time.Now()
	var err error

	switch p.backend {
	case "kafka":
		err = p.pub.PublishBatch(ctx, batches)
	case "clickhouse":
		err = p.catalog.StoreBatch(ctx, batches)
	default:
		err = fmt.Errorf("unknown backend: %s", p.backend)
	}

	if err != nil {
		p.metrics.RecordError("process_batch")
		return fmt.Errorf("process batch: %w", err)
	}

	for _, b := range batches {
		p.metrics.RecordBatchIngested(b.Device, b.Signal)
	}
	p.metrics.RecordLatency("process_batch", time.Since(start).Seconds())

	return nil
}

// Close closes underlying resources if available.
func (p *BatchProcessor) Close() {
	if p.pub != nil {
		_ = p.pub.Close()
	}
	if p.catalog != nil {
		_ = p.catalog.Close()
	}
}
