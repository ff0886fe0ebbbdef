package server

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"SomnoScan/internal/usecase"
	pkgch "SomnoScan/pkg/clickhouse"
	"SomnoScan/pkg/config"
	xhttp "SomnoScan/pkg/http"
	pkgkafka "SomnoScan/pkg/kafka"
	applogger "SomnoScan/pkg/logger"
	"SomnoScan/pkg/queue"
)

// App encapsulates the entire application lifecycle.
type App struct {
	cfg         *config.Config
	indexer     *usecase.LibraryIndexer
	collector   *usecase.BatchCollector
	consumer    *pkgkafka.Consumer
	kh          pkgkafka.MessageHandler
	chClient    *pkgch.Client
	queue       *queue.RedisQueue
	httpServer  *xhttp.Server
	httpHandler xhttp.Handler
	BatchProc   *usecase.BatchProcessor
}

// New creates a new App instance with all dependencies.
func New(
	cfg *config.Config,
	indexer *usecase.LibraryIndexer,
	collector *usecase.BatchCollector,
	consumer *pkgkafka.Consumer,
	kh pkgkafka.MessageHandler,
	chClient *pkgch.Client,
	q *queue.RedisQueue,
) *App {
	return &App{
		cfg:       cfg,
		indexer:   indexer,
		collector: collector,
		consumer:  consumer,
		kh:        kh,
		chClient:  chClient,
		queue:     q,
	}
}

// SetHTTPHandler allows DI to inject an HTTP handler.
func (a *App) SetHTTPHandler(h xhttp.Handler) { a.httpHandler = h }

// Run starts the application and blocks until interrupted.
func (a *App) Run() error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	l, err := applogger.New(&applogger.Config{
		Level:  a.cfg.Logging.Level,
		Format: a.cfg.Logging.Format,
		Output: a.cfg.Logging.Output,
	})
	if err != nil {
		l, _ = applogger.New(&applogger.Config{Level: "info", Format: "console", Output: "stdout"})
	}

	a.httpServer = xhttp.NewServer(a.httpHandler,
		xhttp.WithPort(a.cfg.Server.Port),
		xhttp.WithTimeouts(a.cfg.Server.ReadTimeout, a.cfg.Server.WriteTimeout, a.cfg.Server.ShutdownTimeout),
	)

	// Start precompute workers before the scan so warming jobs drain
	if a.queue != nil {
		if err := a.queue.Start(); err != nil {
			l.Warn("queue start error", applogger.Error(err))
		}
	}

	// Index the recording library
	if a.indexer != nil {
		go func() {
			if _, err := a.indexer.Scan(ctx); err != nil {
				l.Error("library scan error", applogger.Error(err))
			}
		}()
	}

	// Start live acquisition if configured
	if a.collector != nil {
		go func() {
			if err := a.collector.Start(ctx); err != nil {
				l.Error("collector error", applogger.Error(err))
			}
		}()
		l.Info("collector started", applogger.Strings("devices", a.cfg.Acquisition.Devices))
	}

	// Start consumer if configured
	if a.consumer != nil && a.kh != nil {
		a.consumer.RegisterHandler(a.kh)
		go func() {
			if err := a.consumer.Start(); err != nil {
				l.Error("kafka consumer error", applogger.Error(err))
			}
		}()
		l.Info("kafka consumer started", applogger.String("topic", a.kh.Topic()))
	}

	// Start HTTP server
	if err := a.httpServer.Start(); err != nil {
		l.Error("http server start error", applogger.Error(err))
		return err
	}

	// Wait for interrupt
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	<-sigCh

	l.Info("shutdown signal received")
	return a.shutdown(ctx)
}

// shutdown gracefully stops all services.
func (a *App) shutdown(ctx context.Context) error {
	l, err := applogger.New(&applogger.Config{Level: "info", Format: "console", Output: "stdout"})
	if err != nil {
		log.Printf("failed to create logger: %v", err)
		return err
	}
	l.Info("shutting down...")

	// Stop collector (pipeline + stream)
	if a.collector != nil {
		if err := a.collector.Shutdown(ctx); err != nil {
			l.Warn("collector stop error", applogger.Error(err))
		}
	}

	// Shutdown HTTP server
	shutdownCtx, cancel := context.WithTimeout(ctx, a.cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := a.httpServer.Stop(shutdownCtx); err != nil {
		l.Error("http shutdown error", applogger.Error(err))
	}

	// Stop queue workers
	if a.queue != nil {
		if err := a.queue.Stop(shutdownCtx); err != nil {
			l.Warn("queue stop error", applogger.Error(err))
		}
	}

	// Stop consumer
	if a.consumer != nil {
		if err := a.consumer.Stop(ctx); err != nil {
			l.Warn("kafka consumer stop error", applogger.Error(err))
		}
	}

	// Close infrastructure clients
	if a.chClient != nil {
		if err := a.chClient.Close(); err != nil {
			l.Warn("clickhouse close error", applogger.Error(err))
		}
	}

	// Close batch processor resources (publisher/catalog)
	if a.BatchProc != nil {
		a.BatchProc.Close()
	}

	l.Info("shutdown complete")
	return nil
}
