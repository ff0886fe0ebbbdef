package repository

import (
	"errors"
	"fmt"
	"sort"
	"sync"

	"SomnoScan/internal/domain/models"
	"SomnoScan/internal/domain/repository"
)

var (
	ErrRecordingNotFound = errors.New("recording not found")
	ErrLabelNotFound     = errors.New("signal label not found")
)

// MemoryRegistry holds loaded recordings keyed by ID.
type MemoryRegistry struct {
	mu   sync.RWMutex
	recs map[string]*models.Recording
}

// NewMemoryRegistry creates an empty registry.
func NewMemoryRegistry() repository.Registry {
	return &MemoryRegistry{recs: make(map[string]*models.Recording)}
}

func (r *MemoryRegistry) Add(rec *models.Recording) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.recs[rec.ID] = rec
}

func (r *MemoryRegistry) Get(id string) (*models.Recording, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	rec, ok := r.recs[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrRecordingNotFound, id)
	}
	return rec, nil
}

func (r *MemoryRegistry) List() []*models.Recording {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]*models.Recording, 0, len(r.recs))
	for _, rec := range r.recs {
		out = append(out, rec)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// Signal resolves a label to its signal. Duplicate labels can occur in
// montage files; the first match wins.
func (r *MemoryRegistry) Signal(id, label string) (*models.Signal, error) {
	rec, err := r.Get(id)
	if err != nil {
		return nil, err
	}
	for i := range rec.Signals {
		if rec.Signals[i].Label == label {
			return &rec.Signals[i], nil
		}
	}
	return nil, fmt.Errorf("%w: %q in recording %s", ErrLabelNotFound, label, id)
}
