package domain

import (
	"fmt"
	"time"
)

type DocumentStatus string

const (
	StatusUploaded DocumentStatus = "uploaded"
	StatusReady    DocumentStatus = "ready"
	StatusFailed   DocumentStatus = "failed"
)

// MediaType is the closed set of document formats the extractor understands.
type MediaType string

const (
	MediaPDF       MediaType = "pdf"
	MediaDOCX      MediaType = "docx"
	MediaPlainText MediaType = "plain-text"
)

const (
	ContentTypePDF       = "application/pdf"
	ContentTypeDOCX      = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
	ContentTypePlainText = "text/plain"
)

// MinDocumentChars is the minimum trimmed length, in runes, the extracted
// text must reach before a document may be persisted.
const MinDocumentChars = 50

// ParseMediaType maps a declared content type (parameters already stripped)
// to a supported media type.
func ParseMediaType(contentType string) (MediaType, error) {
	switch contentType {
	case ContentTypePDF:
		return MediaPDF, nil
	case ContentTypeDOCX:
		return MediaDOCX, nil
	case ContentTypePlainText:
		return MediaPlainText, nil
	default:
		return "", WrapError(ErrUnsupportedMedia, "parse media type", fmt.Errorf("content type %q", contentType))
	}
}

type Document struct {
	ID            string         `json:"id"`
	Filename      string         `json:"filename"`
	MediaType     MediaType      `json:"media_type"`
	StoragePath   string         `json:"storage_path"`
	Text          string         `json:"-"`
	Status        DocumentStatus `json:"status"`
	CharCount     int            `json:"char_count,omitempty"`
	SentenceCount int            `json:"sentence_count,omitempty"`
	Error         string         `json:"error,omitempty"`
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
}

// DocumentStats is informational metadata computed by the enrichment worker.
// Question derivation never reads it; prompts are always recomputed from Text.
type DocumentStats struct {
	CharCount     int `json:"char_count"`
	SentenceCount int `json:"sentence_count"`
}

// Prompt is one Socratic question for a study-session turn. Step is echoed
// back unchanged; the caller owns the counter.
type Prompt struct {
	Question string `json:"question"`
	Step     int    `json:"step"`
}
