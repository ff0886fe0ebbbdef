package usecase

import (
	"context"

	"SomnoScan/internal/domain/models"
	drepo "SomnoScan/internal/domain/repository"
	mid "SomnoScan/internal/middleware"
)

// BatchCollector drains the acquisition stream and feeds the ingest path.
type BatchCollector struct {
	stream  drepo.DeviceStream
	proc    *BatchProcessor
	metrics drepo.Metrics
	pipe    *mid.IngestPipeline
}

// NewBatchCollector creates a new BatchCollector instance.
func NewBatchCollector(stream drepo.DeviceStream, proc *BatchProcessor, metrics drepo.Metrics, pipe *mid.IngestPipeline) *BatchCollector {
	return &BatchCollector{stream: stream, proc: proc, metrics: metrics, pipe: pipe}
}

// IsConnected returns true if the acquisition stream is connected.
func (c *BatchCollector) IsConnected() bool {
	return c.stream.IsConnected()
}

func (c *BatchCollector) Start(ctx context.Context) error {
	if err := c.stream.Connect(ctx); err != nil {
		return err
	}
	if err := c.stream.Subscribe(ctx); err != nil {
		return err
	}
	if c.pipe != nil {
		c.pipe.Start(ctx)
	}
	batchCh, errCh := c.stream.Read(ctx)
	go c.consume(ctx, batchCh, errCh)
	return nil
}

// consume drains the stream until ctx is cancelled. The stream closes both
// channels after a read error, so on any error or close the connection is
// re-established and fresh channels are obtained from Read; selecting on the
// dead ones would spin and never see the reconnected feed.
func (c *BatchCollector) consume(ctx context.Context, batchCh <-chan *models.SampleBatch, errCh <-chan error) {
	for {
		select {
		case <-ctx.Done():
			return
		case err, ok := <-errCh:
			if ok && err != nil {
				c.metrics.RecordError("stream")
			}
			batchCh, errCh = c.reopen(ctx)
			if batchCh == nil {
				return
			}
		case b, ok := <-batchCh:
			if !ok {
				batchCh, errCh = c.reopen(ctx)
				if batchCh == nil {
					return
				}
				continue
			}
			if b == nil {
				continue
			}
			if c.pipe != nil {
				_ = c.pipe.Process(ctx, b)
			} else {
				_ = c.proc.Process(ctx, b)
			}
		}
	}
}

// reopen reconnects until it succeeds or ctx is cancelled, then restarts the
// read loop. Returns nil channels only on cancellation. Reconnect sleeps its
// configured delay between attempts.
func (c *BatchCollector) reopen(ctx context.Context) (<-chan *models.SampleBatch, <-chan error) {
	for {
		if ctx.Err() != nil {
			return nil, nil
		}
		if err := c.stream.Reconnect(ctx); err != nil {
			c.metrics.RecordError("stream_reconnect")
			continue
		}
		batchCh, errCh := c.stream.Read(ctx)
		return batchCh, errCh
	}
}

func (c *BatchCollector) Stop() error { return c.stream.Close() }

// Processor returns the underlying BatchProcessor for lifecycle management.
func (c *BatchCollector) Processor() *BatchProcessor { return c.proc }

// Shutdown stops the pipeline and closes the stream.
func (c *BatchCollector) Shutdown(ctx context.Context) error {
	if c.pipe != nil {
		c.pipe.Stop()
	}
	return c.stream.Close()
}
