package repository

import (
	"errors"
	"testing"

	"SomnoScan/internal/domain/models"
)

func TestRegistryGetMissing(t *testing.T) {
	reg := NewMemoryRegistry()
	_, err := reg.Get("nope")
	if !errors.Is(err, ErrRecordingNotFound) {
		t.Fatalf("expected ErrRecordingNotFound, got %v", err)
	}
}

func TestRegistryListSorted(t *testing.T) {
	reg := NewMemoryRegistry()
	reg.Add(&models.Recording{ID: "b"})
	reg.Add(&models.Recording{ID: "a"})
	reg.Add(&models.Recording{ID: "c"})

	recs := reg.List()
	if len(recs) != 3 {
		t.Fatalf("expected 3 recordings, got %d", len(recs))
	}
	for i, want := range []string{"a", "b", "c"} {
		if recs[i].ID != want {
			t.Fatalf("expected %s at %d, got %s", want, i, recs[i].ID)
		}
	}
}

func TestRegistrySignalFirstMatch(t *testing.T) {
	reg := NewMemoryRegistry()
	reg.Add(&models.Recording{
		ID: "r1",
		Signals: []models.Signal{
			{Label: "EEG", Rate: 100},
			{Label: "EEG", Rate: 200},
		},
	})

	sig, err := reg.Signal("r1", "EEG")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if sig.Rate != 100 {
		t.Fatalf("expected first match (rate 100), got %g", sig.Rate)
	}
}

func TestRegistrySignalMissingLabel(t *testing.T) {
	reg := NewMemoryRegistry()
	reg.Add(&models.Recording{ID: "r1", Signals: []models.Signal{{Label: "EEG"}}})

	_, err := reg.Signal("r1", "ECG")
	if !errors.Is(err, ErrLabelNotFound) {
		t.Fatalf("expected ErrLabelNotFound, got %v", err)
	}
}
