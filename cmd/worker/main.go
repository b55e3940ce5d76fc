package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/BasharShoumali/socratia-1/internal/bootstrap"
	"github.com/BasharShoumali/socratia-1/internal/config"
	"github.com/BasharShoumali/socratia-1/internal/observability/logging"
	"github.com/BasharShoumali/socratia-1/internal/observability/metrics"
)

const service = "socratia-worker"

func main() {
	cfg := config.Load()
	logger := logging.NewJSONLogger(service, cfg.LogLevel)
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	app, err := bootstrap.New(ctx, cfg)
	if err != nil {
		slog.Error("bootstrap failed", "error", err)
		os.Exit(1)
	}
	defer app.Close()

	m := metrics.NewWorkerMetrics(service)
	metricsServer := &http.Server{
		Addr:    ":" + cfg.WorkerMetricsPort,
		Handler: m.Handler(),
	}
	go func() {
		if err := metricsServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("worker metrics server failed", "error", err)
		}
	}()
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = metricsServer.Shutdown(shutdownCtx)
	}()

	slog.Info("worker subscribed", "subject", cfg.NATSSubject)
	err = app.Queue.SubscribeDocumentStored(ctx, func(handlerCtx context.Context, documentID string) error {
		enrichCtx, cancel := context.WithTimeout(handlerCtx, time.Minute)
		defer cancel()

		m.StartEnrichment()
		start := time.Now()

		if doc, err := app.Repo.GetByID(enrichCtx, documentID); err == nil {
			m.ObserveQueueLag(service, time.Since(doc.CreatedAt))
		}

		err := app.EnrichUC.EnrichByID(enrichCtx, documentID)
		m.FinishEnrichment(service, time.Since(start), err)
		return err
	})
	if err != nil {
		slog.Error("worker subscribe failed", "error", err)
		os.Exit(1)
	}
}
