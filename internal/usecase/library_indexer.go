package usecase

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	domrepo "SomnoScan/internal/domain/repository"
	"SomnoScan/internal/service/edfio"
	"SomnoScan/pkg/logger"
	"SomnoScan/pkg/queue"
)

// PrecomputeMessageType tags precompute jobs on the queue.
const PrecomputeMessageType = "raster_precompute"

// PrecomputePayload asks a worker to warm the cache for one signal view.
type PrecomputePayload struct {
	RecordingID string `json:"recording_id"`
	Signal      string `json:"signal"`
	WindowIndex int    `json:"window_index"`
}

// LibraryIndexer scans a directory of EDF files, loads each recording into
// the registry, mirrors its metadata to the catalog, and enqueues cache
// warming for the default window.
type LibraryIndexer struct {
	dir         string
	registry    domrepo.Registry
	catalog     domrepo.Catalog
	queue       queue.QueueService
	log         *logger.Logger
	defaultIdx  int
	loadTimeout time.Duration
}

func NewLibraryIndexer(dir string, registry domrepo.Registry, catalog domrepo.Catalog, q queue.QueueService, log *logger.Logger, defaultIdx int) *LibraryIndexer {
	return &LibraryIndexer{
		dir:         dir,
		registry:    registry,
		catalog:     catalog,
		queue:       q,
		log:         log,
		defaultIdx:  defaultIdx,
		loadTimeout: 30 * time.Second,
	}
}

// Scan walks the library directory once. A file that fails to decode is
// logged and skipped so one corrupt export cannot block the whole library.
func (ix *LibraryIndexer) Scan(ctx context.Context) (int, error) {
	entries, err := os.ReadDir(ix.dir)
	if err != nil {
		return 0, fmt.Errorf("read library dir: %w", err)
	}

	loaded := 0
	for _, e := range entries {
		if e.IsDir() || !strings.EqualFold(filepath.Ext(e.Name()), ".edf") {
			continue
		}
		if err := ctx.Err(); err != nil {
			return loaded, err
		}
		if err := ix.index(ctx, filepath.Join(ix.dir, e.Name())); err != nil {
			ix.log.Warn("skipping recording", logger.String("file", e.Name()), logger.Error(err))
			continue
		}
		loaded++
	}
	ix.log.Info("library scan complete", logger.String("dir", ix.dir), logger.Int("recordings", loaded))
	return loaded, nil
}

func (ix *LibraryIndexer) index(ctx context.Context, path string) error {
	rec, err := edfio.Load(path)
	if err != nil {
		return err
	}
	ix.registry.Add(rec)

	if ix.catalog != nil {
		cctx, cancel := context.WithTimeout(ctx, ix.loadTimeout)
		defer cancel()
		if err := ix.catalog.RegisterRecording(cctx, rec); err != nil {
			ix.log.Warn("catalog register failed",
				logger.String("recording", rec.ID), logger.Error(err))
		}
	}

	if ix.queue != nil {
		for _, label := range rec.SignalLabels() {
			payload := PrecomputePayload{
				RecordingID: rec.ID,
				Signal:      label,
				WindowIndex: ix.defaultIdx,
			}
			if err := ix.queue.PublishMessage(ctx, PrecomputeMessageType, payload); err != nil {
				ix.log.Warn("enqueue precompute failed",
					logger.String("recording", rec.ID), logger.String("signal", label), logger.Error(err))
			}
		}
	}

	ix.log.Info("recording indexed",
		logger.String("recording", rec.ID),
		logger.Int("signals", len(rec.Signals)),
		logger.Any("duration_seconds", rec.DurationSeconds()))
	return nil
}
