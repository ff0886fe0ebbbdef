package di

import (
	"context"
	"fmt"
	"net"
	"strconv"
	"time"

	"SomnoScan/internal/domain/repository"
	"SomnoScan/internal/handler/api"
	mid "SomnoScan/internal/middleware"
	internalrepo "SomnoScan/internal/repository"
	"SomnoScan/internal/service/acquisition"
	svccache "SomnoScan/internal/service/cache"
	"SomnoScan/internal/usecase"
	pkgcache "SomnoScan/pkg/cache"
	pkgch "SomnoScan/pkg/clickhouse"
	"SomnoScan/pkg/config"
	pkgkafka "SomnoScan/pkg/kafka"
	applogger "SomnoScan/pkg/logger"
	"SomnoScan/pkg/metrics"
	"SomnoScan/pkg/queue"
	"SomnoScan/pkg/server"

	"github.com/redis/go-redis/v9"
)

// ProvideLogger creates the application logger.
func ProvideLogger(cfg *config.Config) (*applogger.Logger, error) {
	lcfg := &applogger.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		Output: cfg.Logging.Output,
	}
	if lcfg.Level == "" {
		lcfg.Level = "info"
	}
	if lcfg.Format == "" {
		lcfg.Format = "console"
	}
	if lcfg.Output == "" {
		lcfg.Output = "stdout"
	}
	return applogger.New(lcfg)
}

// ProvideClickHouseClient creates a ClickHouse client.
func ProvideClickHouseClient(cfg *config.Config) (*pkgch.Client, error) {
	client, err := pkgch.NewClient(
		pkgch.WithHost(cfg.ClickHouse.Host),
		pkgch.WithPort(cfg.ClickHouse.Port),
		pkgch.WithDatabase(cfg.ClickHouse.Database),
		pkgch.WithCredentials(cfg.ClickHouse.User, cfg.ClickHouse.Password),
		pkgch.WithMaxConnections(10, 5),
		pkgch.WithHTTP(cfg.ClickHouse.UseHTTP),
		pkgch.WithAsyncInsert(cfg.ClickHouse.AsyncInsert, cfg.ClickHouse.WaitForAsync),
		pkgch.WithTimeouts(cfg.ClickHouse.DialTimeout, cfg.ClickHouse.ReadTimeout, cfg.ClickHouse.WriteTimeout),
		pkgch.WithMaxExecutionTime(cfg.ClickHouse.MaxExecutionTime),
	)
	if err != nil {
		return nil, fmt.Errorf("clickhouse client: %w", err)
	}

	// Initialize schema
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	db := cfg.ClickHouse.Database
	if err := client.InitSchema(ctx, []string{
		"CREATE DATABASE IF NOT EXISTS " + db,
		fmt.Sprintf("CREATE TABLE IF NOT EXISTS %s.%s (id String, patient_id String, start_time DateTime, duration_seconds Float64, signal_labels Array(String)) ENGINE=ReplacingMergeTree ORDER BY id", db, recordingsTable(cfg)),
		fmt.Sprintf("CREATE TABLE IF NOT EXISTS %s.%s (ts DateTime, device String, signal String, rate Float64, seq UInt64, samples Array(Float64)) ENGINE=MergeTree ORDER BY (device, signal, seq)", db, samplesTable(cfg)),
	}); err != nil {
		_ = client.Close() // cannot log here (DI layer no logger); propagate error
		return nil, fmt.Errorf("clickhouse schema: %w", err)
	}

	return client, nil
}

func recordingsTable(cfg *config.Config) string {
	if cfg.ClickHouse.RecordingsTable != "" {
		return cfg.ClickHouse.RecordingsTable
	}
	return "recordings"
}

func samplesTable(cfg *config.Config) string {
	if cfg.ClickHouse.SamplesTable != "" {
		return cfg.ClickHouse.SamplesTable
	}
	return "live_samples"
}

// ProvideKafkaProducer creates a Kafka producer.
func ProvideKafkaProducer(cfg *config.Config) (*pkgkafka.Producer, error) {
	producer, err := pkgkafka.NewProducer(
		pkgkafka.WithBrokers(cfg.Kafka.Brokers),
		pkgkafka.WithCompression(cfg.Kafka.Compression),
		pkgkafka.WithRequiredAcks(cfg.Kafka.RequiredAcks),
		pkgkafka.WithBatchSize(cfg.Kafka.Producer.BatchSize),
		pkgkafka.WithBatchBytes(cfg.Kafka.Producer.BatchBytes),
		pkgkafka.WithBatchTimeout(cfg.Kafka.Producer.Linger),
		pkgkafka.WithTimeouts(cfg.Kafka.Producer.WriteTimeout, cfg.Kafka.Producer.ReadTimeout),
		pkgkafka.WithMaxAttempts(cfg.Kafka.Producer.MaxAttempts),
		pkgkafka.WithAsync(cfg.Kafka.Producer.Async),
		pkgkafka.WithHashByKey(true),
	)
	if err != nil {
		return nil, fmt.Errorf("kafka producer: %w", err)
	}

	return producer, nil
}

// ProvideKafkaConsumer creates a Kafka consumer configured from YAML.
func ProvideKafkaConsumer(cfg *config.Config) (*pkgkafka.Consumer, error) {
	consumer, err := pkgkafka.NewConsumer(
		pkgkafka.WithConsumerBrokers(cfg.Kafka.Brokers),
		pkgkafka.WithConsumerGroupID(cfg.Kafka.Consumer.GroupID),
		pkgkafka.WithConsumerWorkers(cfg.Kafka.Consumer.Workers),
		pkgkafka.WithConsumerBufferSize(cfg.Kafka.Consumer.BufferSize),
		pkgkafka.WithConsumerRetry(cfg.Kafka.Consumer.RetryMax, cfg.Kafka.Consumer.BackoffMin, cfg.Kafka.Consumer.BackoffMax),
		pkgkafka.WithConsumerDLQ(cfg.Kafka.Consumer.DLQTopic),
		pkgkafka.WithConsumerFetch(cfg.Kafka.Consumer.MinBytes, cfg.Kafka.Consumer.MaxBytes),
	)
	if err != nil {
		return nil, fmt.Errorf("kafka consumer: %w", err)
	}
	return consumer, nil
}

// ProvideMetrics creates a Prometheus metrics recorder.
func ProvideMetrics() repository.Metrics {
	return metrics.New()
}

// ProvideRegistry creates the in-memory recording registry.
func ProvideRegistry() repository.Registry {
	return internalrepo.NewMemoryRegistry()
}

// ProvideLiveBuffers creates the rolling live-sample store.
func ProvideLiveBuffers(cfg *config.Config) repository.LiveBuffers {
	max := cfg.Acquisition.LiveSamples
	if max <= 0 {
		max = 12 * 3600 * 256 // 12h at 256 Hz
	}
	return internalrepo.NewLiveBufferStore(max)
}

// ProvideCatalog creates the ClickHouse catalog repository.
func ProvideCatalog(chClient *pkgch.Client, cfg *config.Config) repository.Catalog {
	db := cfg.ClickHouse.Database
	return internalrepo.NewClickHouseCatalog(chClient.DB(),
		db+"."+recordingsTable(cfg),
		db+"."+samplesTable(cfg),
	)
}

// ProvidePublisher creates the Kafka publisher repository.
func ProvidePublisher(producer *pkgkafka.Producer, cfg *config.Config) repository.Publisher {
	return internalrepo.NewKafkaPublisher(producer, cfg.Kafka.Topic)
}

// ProvideRedisCache creates the Redis cache backend, or nil when disabled.
func ProvideRedisCache(cfg *config.Config) (*pkgcache.RedisCache, error) {
	if !cfg.Cache.Redis.Enabled {
		return nil, nil
	}
	host, portStr, err := net.SplitHostPort(cfg.Cache.Redis.Addr)
	if err != nil {
		return nil, fmt.Errorf("redis addr: %w", err)
	}
	port, err := strconv.Atoi(portStr)
	if err != nil {
		return nil, fmt.Errorf("redis port: %w", err)
	}
	return pkgcache.NewRedisCache(
		pkgcache.WithRedisHost(host),
		pkgcache.WithRedisPort(port),
		pkgcache.WithRedisPassword(cfg.Cache.Redis.Password),
		pkgcache.WithRedisDB(cfg.Cache.Redis.DB),
		pkgcache.WithRedisPrefix("somnoscan"),
	)
}

// ProvideRedisClient exposes the raw client for the job queue.
func ProvideRedisClient(rc *pkgcache.RedisCache) *redis.Client {
	if rc == nil {
		return nil
	}
	return rc.Client()
}

// ProvideCacheService layers memory over Redis when Redis is available.
func ProvideCacheService(rc *pkgcache.RedisCache) pkgcache.Service {
	if rc == nil {
		return pkgcache.NewMemoryCache()
	}
	return pkgcache.NewLayeredCache(rc)
}

// ProvideBytesCache adapts the cache service for the raster usecase.
func ProvideBytesCache(svc pkgcache.Service) svccache.BytesCache {
	return svccache.NewServiceBytes(svc)
}

// ProvideRasterService creates the raster read-path service.
func ProvideRasterService(
	registry repository.Registry,
	buffers repository.LiveBuffers,
	cache svccache.BytesCache,
	m repository.Metrics,
) *usecase.RasterService {
	return usecase.NewRasterService(registry, buffers, cache, m)
}

// ProvidePrecomputeJob creates the cache-warming job.
func ProvidePrecomputeJob(svc *usecase.RasterService, lgr *applogger.Logger, cfg *config.Config) *usecase.PrecomputeJob {
	return usecase.NewPrecomputeJob(svc, lgr,
		cfg.Library.PercentileLow,
		cfg.Library.PercentileHigh,
		cfg.Library.GrayLevels,
	)
}

// ProvideQueue creates the Redis job queue, or nil without Redis.
func ProvideQueue(lgr *applogger.Logger, cfg *config.Config, client *redis.Client, job *usecase.PrecomputeJob) *queue.RedisQueue {
	if client == nil {
		return nil
	}
	q := queue.NewRedisQueue(lgr, &queue.QueueConfig{
		Workers:    cfg.Queue.Workers,
		QueueSize:  cfg.Queue.QueueSize,
		RetryLimit: cfg.Queue.RetryLimit,
		RetryDelay: cfg.Queue.RetryDelay,
	}, client, queue.ModeProducerConsumer)
	q.RegisterJob(job)
	return q
}

// ProvideQueueService avoids handing a typed nil to the indexer.
func ProvideQueueService(q *queue.RedisQueue) queue.QueueService {
	if q == nil {
		return nil
	}
	return q
}

// ProvideIndexer creates the library indexer.
func ProvideIndexer(
	cfg *config.Config,
	registry repository.Registry,
	catalog repository.Catalog,
	qs queue.QueueService,
	lgr *applogger.Logger,
) *usecase.LibraryIndexer {
	return usecase.NewLibraryIndexer(cfg.Library.Dir, registry, catalog, qs, lgr, cfg.Library.DefaultWindow)
}

// ProvideDeviceStream creates the acquisition WebSocket stream, or nil when
// live acquisition is disabled.
func ProvideDeviceStream(cfg *config.Config) repository.DeviceStream {
	if !cfg.Acquisition.Enabled {
		return nil
	}
	return acquisition.New(
		cfg.Acquisition.Token,
		cfg.Acquisition.WebSocketURL,
		cfg.Acquisition.Devices,
		cfg.Acquisition.ReconnectDelay,
		cfg.Acquisition.PingInterval,
	)
}

// ProvideBatchProcessor creates the batch processor use case.
func ProvideBatchProcessor(
	pub repository.Publisher,
	catalog repository.Catalog,
	m repository.Metrics,
	cfg *config.Config,
) *usecase.BatchProcessor {
	return usecase.NewBatchProcessor(
		pub,
		catalog,
		m,
		cfg.Backend.Type,
		cfg.Backend.BatchSize,
		cfg.Backend.BatchTimeout,
	)
}

// ProvideBatchCollector creates the batch collector use case.
func ProvideBatchCollector(
	stream repository.DeviceStream,
	processor *usecase.BatchProcessor,
	m repository.Metrics,
	cfg *config.Config,
) *usecase.BatchCollector {
	if stream == nil {
		return nil
	}
	// Build middleware pipeline between WebSocket and Kafka
	pipe := mid.NewIngestPipeline(processor, m,
		mid.WithMaxBatchRate(cfg.Acquisition.MaxBatchRate),
		mid.WithBufferSize(cfg.Acquisition.BufferSize),
	)
	return usecase.NewBatchCollector(stream, processor, m, pipe)
}

// ProvideSamplesHandler registers the handler for the samples topic.
func ProvideSamplesHandler(
	buffers repository.LiveBuffers,
	catalog repository.Catalog,
	m repository.Metrics,
	cfg *config.Config,
) *usecase.KafkaSamplesHandler {
	return usecase.NewKafkaSamplesHandler(cfg.Kafka.Topic, buffers, catalog, m)
}

// ProvideRastersHandler creates the HTTP handler.
func ProvideRastersHandler(
	lgr *applogger.Logger,
	svc *usecase.RasterService,
	registry repository.Registry,
	buffers repository.LiveBuffers,
	catalog repository.Catalog,
) *api.RastersEchoHandler {
	return api.NewRastersEchoHandler(lgr, svc, registry, buffers, catalog)
}

// ProvideApp creates the application server.
func ProvideApp(
	cfg *config.Config,
	indexer *usecase.LibraryIndexer,
	collector *usecase.BatchCollector,
	consumer *pkgkafka.Consumer,
	kh *usecase.KafkaSamplesHandler,
	chClient *pkgch.Client,
	q *queue.RedisQueue,
	handler *api.RastersEchoHandler,
) *server.App {
	// Attach hook to consumer: NoopHook by default; replaceable via config
	if consumer != nil {
		consumer.WithConsumerHook(pkgkafka.NoopHook{})
	}
	app := server.New(cfg, indexer, collector, consumer, kh, chClient, q)
	app.SetHTTPHandler(handler)
	// attach batch processor to app for closing resources via collector
	if collector != nil {
		app.BatchProc = collector.Processor()
	}
	return app
}
