package httpadapter

import (
	"net/http"

	"github.com/BasharShoumali/socratia-1/internal/core/domain"
)

// writeUploadError maps ingestion failures to the upload endpoint's fixed
// responses. Validation errors are surfaced verbatim; infrastructure errors
// collapse into an opaque 500 and full detail goes to the log only.
func (rt *Router) writeUploadError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case domain.IsKind(err, domain.ErrNoFile):
		rt.metrics.RecordUploadRejected(serviceName, "no_file")
		writeJSON(w, http.StatusBadRequest, errorBody("No file uploaded"))
	case domain.IsKind(err, domain.ErrUnsupportedMedia):
		rt.metrics.RecordUploadRejected(serviceName, "unsupported_media")
		writeJSON(w, http.StatusBadRequest, errorBody("Unsupported file type"))
	case domain.IsKind(err, domain.ErrContentTooShort):
		rt.metrics.RecordUploadRejected(serviceName, "content_too_short")
		writeJSON(w, http.StatusBadRequest, errorBody("File content is too short"))
	default:
		rt.metrics.RecordUploadRejected(serviceName, "internal")
		logInternalError(r, "upload failed", err)
		writeJSON(w, http.StatusInternalServerError, errorBody("Upload failed"))
	}
}

// writeChatError maps study-session failures. DocumentID presence is checked
// before the use case runs, so invalid-input kinds do not reach this mapping.
func (rt *Router) writeChatError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case domain.IsKind(err, domain.ErrInvalidInput):
		writeJSON(w, http.StatusBadRequest, errorBody("documentId is required"))
	case domain.IsKind(err, domain.ErrDocumentNotFound):
		writeJSON(w, http.StatusNotFound, errorBody("Document not found"))
	default:
		logInternalError(r, "chat failed", err)
		writeJSON(w, http.StatusInternalServerError, errorBody("Chat failed"))
	}
}
