package repository

import (
	"fmt"
	"sort"
	"sync"

	"SomnoScan/internal/domain/models"
	"SomnoScan/internal/domain/repository"
)

type bufferKey struct {
	device string
	label  string
}

type liveBuffer struct {
	rate    float64
	lastSeq int64
	samples []float64
}

// LiveBufferStore keeps a bounded rolling window of streamed samples per
// device signal. Snapshots feed the live raster endpoint directly.
type LiveBufferStore struct {
	mu         sync.RWMutex
	maxSamples int
	buffers    map[bufferKey]*liveBuffer
}

// NewLiveBufferStore creates a store capping each buffer at maxSamples.
func NewLiveBufferStore(maxSamples int) repository.LiveBuffers {
	if maxSamples < 1 {
		maxSamples = 1
	}
	return &LiveBufferStore{
		maxSamples: maxSamples,
		buffers:    make(map[bufferKey]*liveBuffer),
	}
}

// Append merges a batch into its buffer. Batches replayed out of order are
// dropped so a reconnecting gateway cannot duplicate samples.
func (s *LiveBufferStore) Append(b *models.SampleBatch) {
	if b == nil || len(b.Samples) == 0 {
		return
	}
	key := bufferKey{device: b.Device, label: b.Signal}

	s.mu.Lock()
	defer s.mu.Unlock()

	buf, ok := s.buffers[key]
	if !ok {
		buf = &liveBuffer{rate: b.Rate, lastSeq: -1}
		s.buffers[key] = buf
	}
	if int64(b.Seq) <= buf.lastSeq {
		return
	}
	buf.lastSeq = int64(b.Seq)
	buf.rate = b.Rate
	buf.samples = append(buf.samples, b.Samples...)
	if over := len(buf.samples) - s.maxSamples; over > 0 {
		buf.samples = append(buf.samples[:0], buf.samples[over:]...)
	}
}

func (s *LiveBufferStore) Snapshot(device, label string) (models.Signal, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	buf, ok := s.buffers[bufferKey{device: device, label: label}]
	if !ok {
		return models.Signal{}, fmt.Errorf("%w: %q on device %s", ErrLabelNotFound, label, device)
	}
	out := models.Signal{
		Label:   label,
		Rate:    buf.rate,
		Samples: make([]float64, len(buf.samples)),
	}
	copy(out.Samples, buf.samples)
	return out, nil
}

func (s *LiveBufferStore) Labels(device string) []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var labels []string
	for key := range s.buffers {
		if key.device == device {
			labels = append(labels, key.label)
		}
	}
	sort.Strings(labels)
	return labels
}
