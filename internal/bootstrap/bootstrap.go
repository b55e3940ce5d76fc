package bootstrap

import (
	"context"
	"fmt"

	"github.com/BasharShoumali/socratia-1/internal/config"
	"github.com/BasharShoumali/socratia-1/internal/core/ports"
	"github.com/BasharShoumali/socratia-1/internal/core/usecase"
	"github.com/BasharShoumali/socratia-1/internal/infrastructure/extractor"
	"github.com/BasharShoumali/socratia-1/internal/infrastructure/queue/nats"
	"github.com/BasharShoumali/socratia-1/internal/infrastructure/repository/postgres"
	"github.com/BasharShoumali/socratia-1/internal/infrastructure/resilience"
	"github.com/BasharShoumali/socratia-1/internal/infrastructure/storage/localfs"
)

type App struct {
	Config config.Config

	Queue ports.MessageQueue
	Repo  ports.DocumentRepository

	IngestUC ports.DocumentIngestor
	StudyUC  ports.StudySessionService
	EnrichUC ports.DocumentEnricher

	closeFn func()
}

func New(ctx context.Context, cfg config.Config) (*App, error) {
	db, err := postgres.OpenDB(cfg.PostgresDSN)
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}
	repo := postgres.NewDocumentRepository(db)
	if err := repo.EnsureSchema(ctx); err != nil {
		return nil, fmt.Errorf("ensure schema: %w", err)
	}

	storage, err := localfs.New(cfg.StoragePath)
	if err != nil {
		return nil, fmt.Errorf("init object storage: %w", err)
	}

	executor := resilience.NewExecutor(resilience.DefaultConfig())
	queue, err := nats.NewWithOptions(cfg.NATSURL, cfg.NATSSubject, nats.Options{
		ResilienceExecutor: executor,
	})
	if err != nil {
		return nil, fmt.Errorf("init message queue: %w", err)
	}

	ingestUC := usecase.NewIngestDocumentUseCase(repo, storage, queue, extractor.New())
	studyUC := usecase.NewStudySessionUseCase(repo)
	enrichUC := usecase.NewEnrichDocumentUseCase(repo)

	return &App{
		Config: cfg,
		Queue:  queue,
		Repo:   repo,

		IngestUC: ingestUC,
		StudyUC:  studyUC,
		EnrichUC: enrichUC,

		closeFn: func() {
			queue.Close()
			_ = db.Close()
		},
	}, nil
}

func (a *App) Close() {
	if a.closeFn != nil {
		a.closeFn()
	}
}
