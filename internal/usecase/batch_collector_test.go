package usecase

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"SomnoScan/internal/domain/models"
)

// scriptedStream fails its first read loop, then serves one batch per
// subsequent Read call.
type scriptedStream struct {
	mu         sync.Mutex
	readCalls  int
	reconnects int
	connected  bool
}

func (s *scriptedStream) Connect(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.connected = true
	return nil
}

func (s *scriptedStream) Subscribe(ctx context.Context) error { return nil }

func (s *scriptedStream) Reconnect(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.reconnects++
	return nil
}

func (s *scriptedStream) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.connected = false
	return nil
}

func (s *scriptedStream) IsConnected() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.connected
}

func (s *scriptedStream) Read(ctx context.Context) (<-chan *models.SampleBatch, <-chan error) {
	s.mu.Lock()
	s.readCalls++
	call := s.readCalls
	s.mu.Unlock()

	batches := make(chan *models.SampleBatch, 4)
	errs := make(chan error, 1)
	if call == 1 {
		// simulate a dropped connection: error, then both channels close
		errs <- fmt.Errorf("connection reset")
		close(batches)
		close(errs)
	} else {
		batches <- &models.SampleBatch{
			Device: "d1", Signal: "EEG", Rate: 100,
			Seq: uint64(call), Timestamp: 1700000000, Samples: []float64{1},
		}
	}
	return batches, errs
}

type capturingPublisher struct {
	published chan *models.SampleBatch
}

func (p *capturingPublisher) Publish(ctx context.Context, b *models.SampleBatch) error {
	p.published <- b
	return nil
}

func (p *capturingPublisher) PublishBatch(ctx context.Context, batches []*models.SampleBatch) error {
	return nil
}

func (p *capturingPublisher) Close() error { return nil }

func TestCollectorResumesAfterStreamError(t *testing.T) {
	stream := &scriptedStream{}
	pub := &capturingPublisher{published: make(chan *models.SampleBatch, 4)}
	metrics := &fakeMetrics{}
	proc := NewBatchProcessor(pub, nil, metrics, "kafka", 0, 0)
	col := NewBatchCollector(stream, proc, metrics, nil)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	if err := col.Start(ctx); err != nil {
		t.Fatalf("start: %v", err)
	}

	// The first read loop dies immediately; a batch can only arrive through
	// the channels obtained after reconnecting.
	select {
	case b := <-pub.published:
		if b.Device != "d1" || b.Signal != "EEG" {
			t.Fatalf("unexpected batch %+v", b)
		}
	case <-time.After(2 * time.Second):
		t.Fatalf("no batch delivered after reconnect")
	}

	stream.mu.Lock()
	defer stream.mu.Unlock()
	if stream.reconnects == 0 {
		t.Fatalf("expected a reconnect")
	}
	if stream.readCalls < 2 {
		t.Fatalf("expected Read to be re-invoked after reconnect, got %d calls", stream.readCalls)
	}
}
