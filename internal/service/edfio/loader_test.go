package edfio_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/OpenPSG/edf"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"SomnoScan/internal/service/edfio"
)

// writeFixture produces a two-signal EDF file with the reference writer so
// the loader can be checked against an independent implementation.
func writeFixture(t *testing.T, records int) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "night01.edf")
	f, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE, 0o644)
	require.NoError(t, err)
	t.Cleanup(func() { _ = f.Close() })

	hdr := edf.Header{
		Version:            edf.Version0,
		PatientID:          "Patient X",
		RecordingID:        "PSG night study",
		StartTime:          time.Date(2025, 3, 14, 22, 30, 0, 0, time.UTC),
		DataRecordDuration: time.Second,
		SignalCount:        2,
		Signals: []edf.Signal{
			{
				Label:             "EEG Fpz-Cz",
				PhysicalDimension: "uV",
				PhysicalMin:       -500,
				PhysicalMax:       500,
				DigitalMin:        -2048,
				DigitalMax:        2047,
				SamplesPerRecord:  100,
			},
			{
				Label:             "Resp oro-nasal",
				PhysicalDimension: "mV",
				PhysicalMin:       -1000,
				PhysicalMax:       1000,
				DigitalMin:        -2048,
				DigitalMax:        2047,
				SamplesPerRecord:  32,
			},
		},
	}

	w, err := edf.Create(f, hdr)
	require.NoError(t, err)

	eeg := make([]float64, 100)
	resp := make([]float64, 32)
	for n := 0; n < records; n++ {
		for i := range eeg {
			eeg[i] = float64((n*100+i)%400) - 200
		}
		for i := range resp {
			resp[i] = float64((n*32 + i) % 500)
		}
		require.NoError(t, w.WriteRecord([][]float64{eeg, resp}))
	}
	require.NoError(t, w.Close())
	return path
}

func TestLoadRecording(t *testing.T) {
	path := writeFixture(t, 5)

	rec, err := edfio.Load(path)
	require.NoError(t, err)

	assert.Equal(t, "night01", rec.ID)
	assert.Equal(t, 5, rec.RecordCount)
	assert.Equal(t, time.Second, rec.RecordDuration)
	assert.Equal(t, 22, rec.StartTime.Hour())
	require.Len(t, rec.Signals, 2)

	eeg := rec.Signals[0]
	assert.Equal(t, "EEG Fpz-Cz", eeg.Label)
	assert.Equal(t, "uV", eeg.Dimension)
	assert.Equal(t, 100, eeg.SamplesPerRecord)
	assert.Equal(t, 100.0, eeg.Rate)
	require.Len(t, eeg.Samples, 500)

	resp := rec.Signals[1]
	assert.Equal(t, 32.0, resp.Rate)
	require.Len(t, resp.Samples, 160)

	// round-trip through the 12-bit quantization of the fixture
	for i := 0; i < 500; i += 37 {
		want := float64((i % 400) - 200)
		assert.InDelta(t, want, eeg.Samples[i], 0.5, "eeg sample %d", i)
	}
	for i := 0; i < 160; i += 13 {
		want := float64(i % 500)
		assert.InDelta(t, want, resp.Samples[i], 0.5, "resp sample %d", i)
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := edfio.Load(filepath.Join(t.TempDir(), "absent.edf"))
	require.Error(t, err)
}

func TestLoadDurationSpan(t *testing.T) {
	path := writeFixture(t, 10)
	rec, err := edfio.Load(path)
	require.NoError(t, err)
	assert.Equal(t, 10.0, rec.DurationSeconds())
	assert.Equal(t, []string{"EEG Fpz-Cz", "Resp oro-nasal"}, rec.SignalLabels())
}
