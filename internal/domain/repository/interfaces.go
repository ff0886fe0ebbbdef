package repository

import (
	"context"
	"time"

	"SomnoScan/internal/domain/models"
)

// DeviceStream is a live feed of sample batches from an acquisition gateway.
type DeviceStream interface {
	Connect(ctx context.Context) error
	Subscribe(ctx context.Context) error
	Read(ctx context.Context) (<-chan *models.SampleBatch, <-chan error)
	Reconnect(ctx context.Context) error
	Close() error
	IsConnected() bool
}

type Publisher interface {
	Publish(ctx context.Context, b *models.SampleBatch) error
	PublishBatch(ctx context.Context, batches []*models.SampleBatch) error
	Close() error
}

// Catalog persists recording metadata and the raw live sample log.
type Catalog interface {
	Init(ctx context.Context) error // ensure tables, health checks
	RegisterRecording(ctx context.Context, rec *models.Recording) error
	StoreBatch(ctx context.Context, batches []*models.SampleBatch) error
	Query(ctx context.Context, device, signal string, from, to time.Time, limit int) ([]*models.SampleBatch, error)
	Health(ctx context.Context) error // ping
	Close() error
}

// Registry is the in-memory library of fully loaded recordings.
type Registry interface {
	Add(rec *models.Recording)
	Get(id string) (*models.Recording, error)
	List() []*models.Recording
	Signal(id, label string) (*models.Signal, error)
}

// LiveBuffers accumulates streamed samples per device signal so live rasters
// can be built without touching storage.
type LiveBuffers interface {
	Append(b *models.SampleBatch)
	Snapshot(device, label string) (models.Signal, error)
	Labels(device string) []string
}

type Metrics interface {
	RecordBatchIngested(device, signal string)
	RecordError(kind string)
	RecordBufferDepth(device, signal string, samples int)
	RecordLatency(op string, seconds float64)
	RecordCacheLookup(hit bool)
}
