package middleware

import (
	"context"
	"fmt"
	"sync"
	"time"

	"SomnoScan/internal/domain/models"
	domrepo "SomnoScan/internal/domain/repository"
)

// Proc is the minimal processor interface the pipeline needs.
type Proc interface {
	Process(ctx context.Context, b *models.SampleBatch) error
}

// IngestPipeline is a middleware between the acquisition WebSocket and Kafka.
// It validates, throttles per device signal, optionally transforms, and
// buffers when downstream is unavailable.
type IngestPipeline struct {
	proc     Proc
	metrics  domrepo.Metrics
	maxBPS   int
	bufSize  int
	bufCh    chan *models.SampleBatch
	stopCh   chan struct{}
	started  bool
	mu       sync.Mutex
	lastSeen map[string]time.Time // per device/signal last accepted time
	// optional batch rewrite hook (unit conversion, label remapping)
	transform func(*models.SampleBatch) *models.SampleBatch
}

type PipelineOption func(*IngestPipeline)

// WithMaxBatchRate sets the max accepted batches per second per device signal.
func WithMaxBatchRate(n int) PipelineOption {
	return func(p *IngestPipeline) {
		if n > 0 {
			p.maxBPS = n
		}
	}
}

// WithBufferSize sets the temporary buffer size when downstream is unavailable.
func WithBufferSize(n int) PipelineOption {
	return func(p *IngestPipeline) {
		if n > 0 {
			p.bufSize = n
		}
	}
}

// WithTransform sets a hook to rewrite batches before forwarding.
func WithTransform(fn func(*models.SampleBatch) *models.SampleBatch) PipelineOption {
	return func(p *IngestPipeline) { p.transform = fn }
}

// NewIngestPipeline creates a new pipeline.
func NewIngestPipeline(proc Proc, metrics domrepo.Metrics, opts ...PipelineOption) *IngestPipeline {
	p := &IngestPipeline{
		proc:     proc,
		metrics:  metrics,
		maxBPS:   50,   // default throttle per device signal
		bufSize:  1000, // default buffer
		bufCh:    make(chan *models.SampleBatch, 1000),
		stopCh:   make(chan struct{}),
		lastSeen: make(map[string]time.Time),
	}
	for _, opt := range opts {
		opt(p)
	}
	if p.bufSize != cap(p.bufCh) {
		p.bufCh = make(chan *models.SampleBatch, p.bufSize)
	}
	return p
}

// Start launches background flushing of buffered batches.
func (p *IngestPipeline) Start(ctx context.Context) {
	p.mu.Lock()
	if p.started {
		p.mu.Unlock()
		return
	}
	p.started = true
	p.mu.Unlock()

	go func() {
		backoff := 50 * time.Millisecond
		for {
			select {
			case <-p.stopCh:
				return
			case b := <-p.bufCh:
				if b == nil {
					continue
				}
				if err := p.proc.Process(ctx, b); err != nil {
					// exponential backoff with cap
					if backoff < 2*time.Second {
						backoff *= 2
					}
					p.metrics.RecordError("pipeline_flush")
					time.Sleep(backoff)
					// requeue if space; drop otherwise
					select {
					case p.bufCh <- b:
					default:
						p.metrics.RecordError("pipeline_buffer_drop")
					}
				} else {
					backoff = 50 * time.Millisecond
				}
			}
		}
	}()
}

// Stop stops the background flushing.
func (p *IngestPipeline) Stop() {
	p.mu.Lock()
	if !p.started {
		p.mu.Unlock()
		return
	}
	p.started = false
	p.mu.Unlock()
	close(p.stopCh)
}

// Process validates, throttles, and forwards a batch downstream, buffering on
// errors.
func (p *IngestPipeline) Process(ctx context.Context, b *models.SampleBatch) error {
	start := time.Now()
	if err := validateBatch(b); err != nil {
		p.metrics.RecordError("pipeline_validate")
		return err
	}
	if p.transform != nil {
		b = p.transform(b)
		if err := validateBatch(b); err != nil {
			p.metrics.RecordError("pipeline_transform_invalid")
			return err
		}
	}
	if !p.allow(b.Device+"/"+b.Signal, start) {
		// throttled; record and drop silently
		p.metrics.RecordError("pipeline_throttle")
		return nil
	}

	if err := p.proc.Process(ctx, b); err != nil {
		p.metrics.RecordError("pipeline_process")
		// buffer non-blocking
		select {
		case p.bufCh <- b:
			p.metrics.RecordBufferDepth(b.Device, b.Signal, len(p.bufCh))
		default:
			p.metrics.RecordError("pipeline_buffer_full")
		}
		return fmt.Errorf("pipeline downstream: %w", err)
	}
	p.metrics.RecordLatency("pipeline_process", time.Since(start).Seconds())
	return nil
}

func validateBatch(b *models.SampleBatch) error {
	if b == nil {
		return fmt.Errorf("batch nil")
	}
	if b.Device == "" || b.Signal == "" {
		return fmt.Errorf("device/signal empty")
	}
	if b.Timestamp <= 0 {
		return fmt.Errorf("timestamp invalid")
	}
	if b.Rate <= 0 {
		return fmt.Errorf("non-positive sampling rate")
	}
	if len(b.Samples) == 0 {
		return fmt.Errorf("empty batch")
	}
	return nil
}

func (p *IngestPipeline) allow(key string, now time.Time) bool {
	if p.maxBPS <= 0 {
		return true
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	// simple throttle: at most maxBPS batches per second per key
	last := p.lastSeen[key]
	if last.IsZero() {
		p.lastSeen[key] = now
		return true
	}
	if now.Sub(last) < time.Second/time.Duration(p.maxBPS) {
		return false
	}
	p.lastSeen[key] = now
	return true
}
