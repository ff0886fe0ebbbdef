package usecase

import (
	"context"
	"encoding/json"
	"time"

	"SomnoScan/internal/domain/models"
	domrepo "SomnoScan/internal/domain/repository"
	pkgkafka "SomnoScan/pkg/kafka"
)

// KafkaSamplesHandler consumes sample batches from Kafka, feeds the live
// buffers, and appends the raw batch to the catalog.
type KafkaSamplesHandler struct {
	topic   string
	buffers domrepo.LiveBuffers
	catalog domrepo.Catalog
	metrics domrepo.Metrics
}

func NewKafkaSamplesHandler(topic string, buffers domrepo.LiveBuffers, catalog domrepo.Catalog, metrics domrepo.Metrics) *KafkaSamplesHandler {
	return &KafkaSamplesHandler{topic: topic, buffers: buffers, catalog: catalog, metrics: metrics}
}

func (h *KafkaSamplesHandler) Topic() string { return h.topic }

func (h *KafkaSamplesHandler) Handle(ctx context.Context, b []byte) error {
	var batch models.SampleBatch
	if err := json.Unmarshal(b, &batch); err != nil {
		h.metrics.RecordError("consumer_unmarshal")
		return err
	}
	if batch.Timestamp > 1e11 { // ms
		batch.Timestamp = batch.Timestamp / 1000
	}
	// E2E latency from device time to now (approx)
	h.metrics.RecordLatency("ingest_e2e_seconds", time.Since(time.Unix(batch.Timestamp, 0)).Seconds())

	h.buffers.Append(&batch)
	h.metrics.RecordBatchIngested(batch.Device, batch.Signal)

	start := time.Now()
	err := h.catalog.StoreBatch(ctx, []*models.SampleBatch{&batch})
	h.metrics.RecordLatency("ch_insert_seconds", time.Since(start).Seconds())
	if err != nil {
		h.metrics.RecordError("consumer_store")
		return err
	}
	return nil
}

var _ pkgkafka.MessageHandler = (*KafkaSamplesHandler)(nil)
