package usecase

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/BasharShoumali/socratia-1/internal/core/domain"
	"github.com/BasharShoumali/socratia-1/internal/core/ports"
)

type IngestDocumentUseCase struct {
	repo      ports.DocumentRepository
	storage   ports.ObjectStorage
	queue     ports.MessageQueue
	extractor ports.TextExtractor
}

func NewIngestDocumentUseCase(
	repo ports.DocumentRepository,
	storage ports.ObjectStorage,
	queue ports.MessageQueue,
	extractor ports.TextExtractor,
) *IngestDocumentUseCase {
	return &IngestDocumentUseCase{
		repo:      repo,
		storage:   storage,
		queue:     queue,
		extractor: extractor,
	}
}

// Upload runs the synchronous ingestion pipeline: resolve the media type,
// extract plain text, validate its length, then persist. Validation happens
// strictly before any write, so a rejected upload leaves no trace.
func (uc *IngestDocumentUseCase) Upload(
	ctx context.Context,
	filename, contentType string,
	body io.Reader,
) (*domain.Document, error) {
	if body == nil {
		return nil, domain.WrapError(domain.ErrNoFile, "upload", errors.New("missing file payload"))
	}

	media, err := domain.ParseMediaType(contentType)
	if err != nil {
		return nil, err
	}

	raw, err := io.ReadAll(body)
	if err != nil {
		return nil, domain.WrapError(domain.ErrExtraction, "read upload payload", err)
	}

	// An empty payload is still a present file: it flows through extraction
	// and fails the length check like any other short document.
	text, err := uc.extractor.Extract(ctx, media, raw)
	if err != nil {
		return nil, err
	}
	if utf8.RuneCountInString(strings.TrimSpace(text)) < domain.MinDocumentChars {
		return nil, domain.WrapError(domain.ErrContentTooShort, "validate extracted text",
			fmt.Errorf("trimmed text shorter than %d chars", domain.MinDocumentChars))
	}

	id := uuid.NewString()
	storageKey := fmt.Sprintf("%s_%s", id, sanitizeFilename(filename))
	now := time.Now().UTC()

	if err := uc.storage.Save(ctx, storageKey, bytes.NewReader(raw)); err != nil {
		return nil, domain.WrapError(domain.ErrStorage, "save source document", err)
	}

	doc := &domain.Document{
		ID:          id,
		Filename:    filename,
		MediaType:   media,
		StoragePath: storageKey,
		Text:        text,
		Status:      domain.StatusUploaded,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := uc.repo.Create(ctx, doc); err != nil {
		return nil, domain.WrapError(domain.ErrStorage, "create document record", err)
	}

	// The upload succeeded once the record exists. A queue outage must not
	// fail it; the document just stays "uploaded" until enrichment catches up.
	if err := uc.queue.PublishDocumentStored(ctx, doc.ID); err != nil {
		slog.Warn("publish document stored event failed",
			"document_id", doc.ID,
			"error", err,
		)
	}

	return doc, nil
}

func sanitizeFilename(name string) string {
	base := filepath.Base(name)
	base = strings.ReplaceAll(base, " ", "_")
	base = strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z':
			return r
		case r >= 'A' && r <= 'Z':
			return r
		case r >= '0' && r <= '9':
			return r
		case r == '.', r == '-', r == '_':
			return r
		default:
			return '_'
		}
	}, base)
	if base == "" {
		return "document.bin"
	}
	return base
}
