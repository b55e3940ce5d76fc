package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/BasharShoumali/socratia-1/internal/core/domain"
	"github.com/BasharShoumali/socratia-1/internal/core/ports"
	"github.com/BasharShoumali/socratia-1/internal/core/socratic"
)

// StudySessionUseCase serves one Socratic question per turn. It keeps no
// session state; the caller supplies the step on every call.
type StudySessionUseCase struct {
	repo ports.DocumentRepository
}

func NewStudySessionUseCase(repo ports.DocumentRepository) *StudySessionUseCase {
	return &StudySessionUseCase{repo: repo}
}

func (uc *StudySessionUseCase) NextPrompt(ctx context.Context, documentID string, step int) (*domain.Prompt, error) {
	if strings.TrimSpace(documentID) == "" {
		return nil, domain.WrapError(domain.ErrInvalidInput, "next prompt", errors.New("documentId is required"))
	}

	doc, err := uc.repo.GetByID(ctx, documentID)
	if err != nil {
		return nil, fmt.Errorf("fetch document: %w", err)
	}

	prompt, err := socratic.Derive(doc.Text, step)
	if err != nil {
		return nil, fmt.Errorf("derive question: %w", err)
	}
	return &prompt, nil
}
