package ports

import (
	"context"
	"io"

	"github.com/BasharShoumali/socratia-1/internal/core/domain"
)

// DocumentRepository persists and reads document state. Text is written once
// at creation and never updated.
type DocumentRepository interface {
	Create(ctx context.Context, doc *domain.Document) error
	GetByID(ctx context.Context, id string) (*domain.Document, error)
	UpdateStatus(ctx context.Context, id string, status domain.DocumentStatus, errMessage string) error
	SaveStats(ctx context.Context, id string, stats domain.DocumentStats) error
}

// ObjectStorage retains the original uploaded bytes.
type ObjectStorage interface {
	Save(ctx context.Context, key string, data io.Reader) error
	Open(ctx context.Context, key string) (io.ReadCloser, error)
}

// MessageQueue publishes/consumes document-stored events.
type MessageQueue interface {
	PublishDocumentStored(ctx context.Context, documentID string) error
	SubscribeDocumentStored(ctx context.Context, handler func(context.Context, string) error) error
}

// TextExtractor converts raw document bytes into plain text.
type TextExtractor interface {
	Extract(ctx context.Context, media domain.MediaType, raw []byte) (string, error)
}
