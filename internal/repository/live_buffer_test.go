package repository

import (
	"errors"
	"testing"

	"SomnoScan/internal/domain/models"
)

func TestLiveBufferAppendAndSnapshot(t *testing.T) {
	store := NewLiveBufferStore(100)
	store.Append(&models.SampleBatch{Device: "d1", Signal: "EEG", Rate: 50, Seq: 1, Samples: []float64{1, 2, 3}})
	store.Append(&models.SampleBatch{Device: "d1", Signal: "EEG", Rate: 50, Seq: 2, Samples: []float64{4, 5}})

	sig, err := store.Snapshot("d1", "EEG")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if sig.Rate != 50 {
		t.Fatalf("expected rate 50, got %g", sig.Rate)
	}
	if len(sig.Samples) != 5 || sig.Samples[4] != 5 {
		t.Fatalf("unexpected samples %v", sig.Samples)
	}
}

func TestLiveBufferDropsReplayedSeq(t *testing.T) {
	store := NewLiveBufferStore(100)
	store.Append(&models.SampleBatch{Device: "d1", Signal: "EEG", Seq: 5, Samples: []float64{1}})
	store.Append(&models.SampleBatch{Device: "d1", Signal: "EEG", Seq: 5, Samples: []float64{2}})
	store.Append(&models.SampleBatch{Device: "d1", Signal: "EEG", Seq: 4, Samples: []float64{3}})

	sig, err := store.Snapshot("d1", "EEG")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(sig.Samples) != 1 || sig.Samples[0] != 1 {
		t.Fatalf("replayed batches should be dropped, got %v", sig.Samples)
	}
}

func TestLiveBufferTrimsOldest(t *testing.T) {
	store := NewLiveBufferStore(4)
	store.Append(&models.SampleBatch{Device: "d1", Signal: "EEG", Seq: 1, Samples: []float64{1, 2, 3}})
	store.Append(&models.SampleBatch{Device: "d1", Signal: "EEG", Seq: 2, Samples: []float64{4, 5, 6}})

	sig, err := store.Snapshot("d1", "EEG")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []float64{3, 4, 5, 6}
	if len(sig.Samples) != len(want) {
		t.Fatalf("expected %d samples, got %d", len(want), len(sig.Samples))
	}
	for i, v := range want {
		if sig.Samples[i] != v {
			t.Fatalf("expected %v, got %v", want, sig.Samples)
		}
	}
}

func TestLiveBufferSnapshotCopies(t *testing.T) {
	store := NewLiveBufferStore(100)
	store.Append(&models.SampleBatch{Device: "d1", Signal: "EEG", Seq: 1, Samples: []float64{1, 2}})

	sig, _ := store.Snapshot("d1", "EEG")
	sig.Samples[0] = 99

	again, _ := store.Snapshot("d1", "EEG")
	if again.Samples[0] != 1 {
		t.Fatalf("snapshot must not alias the internal buffer")
	}
}

func TestLiveBufferMissingSignal(t *testing.T) {
	store := NewLiveBufferStore(100)
	_, err := store.Snapshot("d1", "EEG")
	if !errors.Is(err, ErrLabelNotFound) {
		t.Fatalf("expected ErrLabelNotFound, got %v", err)
	}
}

func TestLiveBufferLabels(t *testing.T) {
	store := NewLiveBufferStore(100)
	store.Append(&models.SampleBatch{Device: "d1", Signal: "Resp", Seq: 1, Samples: []float64{1}})
	store.Append(&models.SampleBatch{Device: "d1", Signal: "EEG", Seq: 1, Samples: []float64{1}})
	store.Append(&models.SampleBatch{Device: "d2", Signal: "SpO2", Seq: 1, Samples: []float64{1}})

	labels := store.Labels("d1")
	if len(labels) != 2 || labels[0] != "EEG" || labels[1] != "Resp" {
		t.Fatalf("unexpected labels %v", labels)
	}
}
