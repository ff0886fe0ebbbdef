package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"SomnoScan/internal/domain/models"
	"SomnoScan/internal/domain/repository"
	pkgkafka "SomnoScan/pkg/kafka"
)

// ClickHouseCatalog implements Catalog for ClickHouse.
type ClickHouseCatalog struct {
	db              *sql.DB
	recordingsTable string
	samplesTable    string
}

// NewClickHouseCatalog creates ClickHouse-backed catalog storage.
func NewClickHouseCatalog(db *sql.DB, recordingsTable, samplesTable string) repository.Catalog {
	return &ClickHouseCatalog{db: db, recordingsTable: recordingsTable, samplesTable: samplesTable}
}

func (c *ClickHouseCatalog) Init(ctx context.Context) error {
	return nil // Schema init in pkg
}

func (c *ClickHouseCatalog) RegisterRecording(ctx context.Context, rec *models.Recording) error {
	q := fmt.Sprintf("INSERT INTO %s (id, patient_id, start_time, duration_seconds, signal_labels) VALUES (?, ?, ?, ?, ?)", c.recordingsTable)
	_, err := c.db.ExecContext(ctx, q,
		rec.ID,
		rec.PatientID,
		rec.StartTime,
		rec.DurationSeconds(),
		rec.SignalLabels(),
	)
	return err
}

func (c *ClickHouseCatalog) StoreBatch(ctx context.Context, batches []*models.SampleBatch) error {
	if len(batches) == 0 {
		return nil
	}
	// Chunked multi-row VALUES insert to reduce round-trips.
	const chunkSize = 500
	for start := 0; start < len(batches); start += chunkSize {
		end := start + chunkSize
		if end > len(batches) {
			end = len(batches)
		}

		values := make([]string, 0, end-start)
		args := make([]interface{}, 0, (end-start)*6)
		for _, b := range batches[start:end] {
			if b == nil || b.Device == "" || b.Signal == "" {
				continue
			}
			values = append(values, "(?, ?, ?, ?, ?, ?)")
			args = append(args,
				time.Unix(b.Timestamp, 0),
				b.Device,
				b.Signal,
				b.Rate,
				b.Seq,
				b.Samples,
			)
		}
		if len(values) == 0 {
			continue
		}
		q := fmt.Sprintf("INSERT INTO %s (ts, device, signal, rate, seq, samples) VALUES %s", c.samplesTable, strings.Join(values, ","))
		if _, err := c.db.ExecContext(ctx, q, args...); err != nil {
			return err
		}
	}
	return nil
}

func (c *ClickHouseCatalog) Query(ctx context.Context, device, signal string, from, to time.Time, limit int) ([]*models.SampleBatch, error) {
	q := fmt.Sprintf("SELECT device, signal, rate, seq, ts, samples FROM %s WHERE device = ? AND signal = ? AND ts >= ? AND ts <= ? ORDER BY seq ASC LIMIT ?", c.samplesTable)
	rows, err := c.db.QueryContext(ctx, q, device, signal, from, to, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var batches []*models.SampleBatch
	for rows.Next() {
		var b models.SampleBatch
		var ts time.Time
		if err := rows.Scan(&b.Device, &b.Signal, &b.Rate, &b.Seq, &ts, &b.Samples); err != nil {
			return nil, err
		}
		b.Timestamp = ts.Unix()
		batches = append(batches, &b)
	}
	return batches, rows.Err()
}

func (c *ClickHouseCatalog) Health(ctx context.Context) error {
	return c.db.PingContext(ctx)
}

func (c *ClickHouseCatalog) Close() error {
	return nil // Managed by pkg
}

// KafkaPublisher implements Publisher for Kafka.
type KafkaPublisher struct {
	producer *pkgkafka.Producer
	topic    string
}

// NewKafkaPublisher creates Kafka publisher.
func NewKafkaPublisher(producer *pkgkafka.Producer, topic string) repository.Publisher {
	return &KafkaPublisher{producer: producer, topic: topic}
}

func batchKey(b *models.SampleBatch) []byte {
	return []byte(b.Device + "/" + b.Signal)
}

func (p *KafkaPublisher) Publish(ctx context.Context, b *models.SampleBatch) error {
	return p.producer.Publish(ctx, p.topic, batchKey(b), b)
}

func (p *KafkaPublisher) PublishBatch(ctx context.Context, batches []*models.SampleBatch) error {
	if len(batches) == 0 {
		return nil
	}
	msgs := make([]pkgkafka.Message, len(batches))
	for i, b := range batches {
		msgs[i] = pkgkafka.Message{Key: batchKey(b), Value: b}
	}
	return p.producer.PublishBatch(ctx, p.topic, msgs)
}

func (p *KafkaPublisher) Close() error {
	if p.producer != nil {
		return p.producer.Close()
	}
	return nil
}
