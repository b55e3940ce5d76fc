package extractor

import (
	"fmt"
	"unicode/utf8"

	"github.com/BasharShoumali/socratia-1/internal/core/domain"
)

// extractPlainText passes UTF-8 bytes through verbatim. No segmentation
// happens at this stage.
func extractPlainText(raw []byte) (string, error) {
	if !utf8.Valid(raw) {
		return "", domain.WrapError(domain.ErrExtraction, "extract plain text", fmt.Errorf("payload is not valid utf-8"))
	}
	return string(raw), nil
}
