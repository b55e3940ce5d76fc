// Package extractor normalizes uploaded documents into plain text.
package extractor

import (
	"context"
	"fmt"

	"github.com/BasharShoumali/socratia-1/internal/core/domain"
)

// Extractor dispatches to a per-format decoder by media type. Extraction is
// synchronous and deterministic for given bytes; failures are terminal for
// that upload attempt (no retries).
type Extractor struct{}

func New() *Extractor {
	return &Extractor{}
}

func (e *Extractor) Extract(_ context.Context, media domain.MediaType, raw []byte) (string, error) {
	switch media {
	case domain.MediaPDF:
		return extractPDF(raw)
	case domain.MediaDOCX:
		return extractDOCX(raw)
	case domain.MediaPlainText:
		return extractPlainText(raw)
	default:
		return "", domain.WrapError(domain.ErrUnsupportedMedia, "extract", fmt.Errorf("media type %q", media))
	}
}
