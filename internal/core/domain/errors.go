package domain

import (
	"errors"
	"fmt"
)

var (
	ErrNoFile           = errors.New("no file provided")
	ErrUnsupportedMedia = errors.New("unsupported media type")
	ErrContentTooShort  = errors.New("content too short")
	ErrExtraction       = errors.New("extraction failed")
	ErrDocumentNotFound = errors.New("document not found")
	ErrEmptyDocument    = errors.New("empty document text")
	ErrInvalidInput     = errors.New("invalid input")
	ErrStorage          = errors.New("storage failure")
	ErrTemporary        = errors.New("temporary failure")
)

// WrapError preserves typed semantic errors with operation context.
func WrapError(kind error, operation string, err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w: %w", operation, kind, err)
}

func IsKind(err error, kind error) bool {
	return errors.Is(err, kind)
}
