// Package edfio loads EDF/EDF+ recordings into memory for rasterization.
// Unlike a streaming reader it decodes every signal of a file in one pass,
// since the review pipeline always needs the full sample sequence.
package edfio

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"SomnoScan/internal/domain/models"
)

const fixedHeaderSize = 256

// per-signal header field widths, in file order
var signalFieldSizes = []int{16, 80, 8, 8, 8, 8, 8, 80, 8, 32}

type signalHeader struct {
	label            string
	dimension        string
	physMin, physMax float64
	digMin, digMax   int
	samplesPerRecord int
}

// Load reads a complete EDF/EDF+ file and returns the decoded recording.
// Digital values are calibrated to physical units using the per-signal
// scaling from the header.
func Load(path string) (*models.Recording, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open recording: %w", err)
	}
	defer f.Close()

	rec, err := decode(bufio.NewReaderSize(f, 1<<16))
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", filepath.Base(path), err)
	}
	rec.ID = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	rec.Path = path
	return rec, nil
}

func decode(r io.Reader) (*models.Recording, error) {
	b := make([]byte, fixedHeaderSize)
	if _, err := io.ReadFull(r, b); err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}

	field := func(lo, hi int) string { return strings.TrimSpace(string(b[lo:hi])) }

	rec := &models.Recording{PatientID: field(8, 88)}

	startDate, err := time.Parse("02.01.06", field(168, 176))
	if err != nil {
		return nil, fmt.Errorf("parse start date: %w", err)
	}
	startClock, err := time.Parse("15.04.05", field(176, 184))
	if err != nil {
		return nil, fmt.Errorf("parse start time: %w", err)
	}
	rec.StartTime = time.Date(startDate.Year(), startDate.Month(), startDate.Day(),
		startClock.Hour(), startClock.Minute(), startClock.Second(), 0, time.UTC)

	rec.RecordCount, err = strconv.Atoi(field(236, 244))
	if err != nil {
		return nil, fmt.Errorf("parse record count: %w", err)
	}
	if rec.RecordCount < 0 {
		return nil, fmt.Errorf("recording has unknown record count")
	}

	rec.RecordDuration, err = time.ParseDuration(field(244, 252) + "s")
	if err != nil {
		return nil, fmt.Errorf("parse record duration: %w", err)
	}
	if rec.RecordDuration <= 0 {
		return nil, fmt.Errorf("non-positive record duration")
	}

	signalCount, err := strconv.Atoi(field(252, 256))
	if err != nil {
		return nil, fmt.Errorf("parse signal count: %w", err)
	}
	if signalCount < 1 {
		return nil, fmt.Errorf("no signals in header")
	}

	headers, err := readSignalHeaders(r, signalCount)
	if err != nil {
		return nil, err
	}

	return readSamples(r, rec, headers)
}

// readSignalHeaders parses the variable part of the header. EDF stores each
// field as an array over all signals, not one block per signal.
func readSignalHeaders(r io.Reader, count int) ([]signalHeader, error) {
	headers := make([]signalHeader, count)

	for fieldIdx, size := range signalFieldSizes {
		buf := make([]byte, size)
		for i := 0; i < count; i++ {
			if _, err := io.ReadFull(r, buf); err != nil {
				return nil, fmt.Errorf("read signal headers: %w", err)
			}
			v := strings.TrimSpace(string(buf))
			h := &headers[i]
			switch fieldIdx {
			case 0:
				h.label = v
			case 2:
				h.dimension = v
			case 3:
				h.physMin = parseFloatField(v)
			case 4:
				h.physMax = parseFloatField(v)
			case 5:
				h.digMin = parseIntField(v)
			case 6:
				h.digMax = parseIntField(v)
			case 8:
				h.samplesPerRecord = parseIntField(v)
			}
		}
	}

	for i, h := range headers {
		if h.samplesPerRecord < 1 {
			return nil, fmt.Errorf("signal %d (%s): non-positive samples per record", i, h.label)
		}
	}
	return headers, nil
}

// readSamples walks the data records sequentially, splitting each record into
// its per-signal runs and calibrating digital values to physical units.
func readSamples(r io.Reader, rec *models.Recording, headers []signalHeader) (*models.Recording, error) {
	recordSamples := 0
	for _, h := range headers {
		recordSamples += h.samplesPerRecord
	}

	rec.Signals = make([]models.Signal, len(headers))
	for i, h := range headers {
		rec.Signals[i] = models.Signal{
			Label:            h.label,
			Dimension:        h.dimension,
			SamplesPerRecord: h.samplesPerRecord,
			Rate:             float64(h.samplesPerRecord) / rec.RecordDuration.Seconds(),
			Samples:          make([]float64, 0, h.samplesPerRecord*rec.RecordCount),
		}
	}

	buf := make([]byte, recordSamples*2)
	for n := 0; n < rec.RecordCount; n++ {
		if _, err := io.ReadFull(r, buf); err != nil {
			return nil, fmt.Errorf("read data record %d: %w", n, err)
		}
		off := 0
		for i, h := range headers {
			sig := &rec.Signals[i]
			for s := 0; s < h.samplesPerRecord; s++ {
				digital := int16(binary.LittleEndian.Uint16(buf[off : off+2]))
				sig.Samples = append(sig.Samples, calibrate(digital, h))
				off += 2
			}
		}
	}
	return rec, nil
}

func calibrate(digital int16, h signalHeader) float64 {
	if h.digMax == h.digMin {
		return 0
	}
	scale := (h.physMax - h.physMin) / float64(h.digMax-h.digMin)
	return h.physMin + (float64(digital)-float64(h.digMin))*scale
}

func parseFloatField(s string) float64 {
	v, _ := strconv.ParseFloat(s, 64)
	return v
}

func parseIntField(s string) int {
	v, _ := strconv.Atoi(s)
	return v
}
