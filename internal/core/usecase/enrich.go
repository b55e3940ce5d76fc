package usecase

import (
	"context"
	"fmt"
	"unicode/utf8"

	"github.com/BasharShoumali/socratia-1/internal/core/domain"
	"github.com/BasharShoumali/socratia-1/internal/core/ports"
	"github.com/BasharShoumali/socratia-1/internal/core/socratic"
)

// EnrichDocumentUseCase computes informational statistics for a stored
// document and flips its status to ready. Runs in the worker after upload.
type EnrichDocumentUseCase struct {
	repo ports.DocumentRepository
}

func NewEnrichDocumentUseCase(repo ports.DocumentRepository) *EnrichDocumentUseCase {
	return &EnrichDocumentUseCase{repo: repo}
}

func (uc *EnrichDocumentUseCase) EnrichByID(ctx context.Context, documentID string) error {
	doc, err := uc.repo.GetByID(ctx, documentID)
	if err != nil {
		return fmt.Errorf("fetch document by id: %w", err)
	}

	stats := domain.DocumentStats{
		CharCount:     utf8.RuneCountInString(doc.Text),
		SentenceCount: len(socratic.Segments(doc.Text)),
	}

	if err := uc.repo.SaveStats(ctx, doc.ID, stats); err != nil {
		if failErr := uc.repo.UpdateStatus(ctx, doc.ID, domain.StatusFailed, err.Error()); failErr != nil {
			return fmt.Errorf("save stats: %w; mark failed status: %v", err, failErr)
		}
		return fmt.Errorf("save stats: %w", err)
	}

	if err := uc.repo.UpdateStatus(ctx, doc.ID, domain.StatusReady, ""); err != nil {
		return fmt.Errorf("set status=ready: %w", err)
	}
	return nil
}
