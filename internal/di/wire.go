//go:build wireinject
// +build wireinject

package di

import (
	"SomnoScan/pkg/config"
	"SomnoScan/pkg/server"

	"github.com/google/wire"
)

// InitializeApp wires up all dependencies and returns the application.
// Wire will generate the implementation of this function.
func InitializeApp(cfg *config.Config) (*server.App, error) {
	wire.Build(
		// Ambient
		ProvideLogger,
		ProvideMetrics,

		// Infrastructure clients
		ProvideClickHouseClient,
		ProvideKafkaProducer,
		ProvideKafkaConsumer,
		ProvideRedisCache,
		ProvideRedisClient,
		ProvideCacheService,
		ProvideBytesCache,

		// Repositories
		ProvideRegistry,
		ProvideLiveBuffers,
		ProvideCatalog,
		ProvidePublisher,
		ProvideDeviceStream,

		// Use cases
		ProvideRasterService,
		ProvidePrecomputeJob,
		ProvideQueue,
		ProvideQueueService,
		ProvideIndexer,
		ProvideBatchProcessor,
		ProvideBatchCollector,
		ProvideSamplesHandler,

		// Transport
		ProvideRastersHandler,

		// Application server
		ProvideApp,
	)
	return &server.App{}, nil
}
