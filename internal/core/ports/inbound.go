package ports

import (
	"context"
	"io"

	"github.com/BasharShoumali/socratia-1/internal/core/domain"
)

// DocumentIngestor is the inbound contract for document upload orchestration.
type DocumentIngestor interface {
	Upload(ctx context.Context, filename, contentType string, body io.Reader) (*domain.Document, error)
}

// StudySessionService is the inbound contract for Socratic question turns.
type StudySessionService interface {
	NextPrompt(ctx context.Context, documentID string, step int) (*domain.Prompt, error)
}

// DocumentReader is the inbound read model for document metadata/state.
type DocumentReader interface {
	GetByID(ctx context.Context, id string) (*domain.Document, error)
}

// DocumentEnricher is the inbound contract for asynchronous stats enrichment.
type DocumentEnricher interface {
	EnrichByID(ctx context.Context, documentID string) error
}
