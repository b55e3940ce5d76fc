// Package httpadapter is the transport boundary: it translates core
// operations into request/response semantics and owns every user-facing
// error message.
package httpadapter

import (
	"encoding/json"
	"log/slog"
	"mime"
	"net/http"
	"strings"
	"time"

	"github.com/BasharShoumali/socratia-1/internal/config"
	"github.com/BasharShoumali/socratia-1/internal/core/domain"
	"github.com/BasharShoumali/socratia-1/internal/core/ports"
	"github.com/BasharShoumali/socratia-1/internal/core/socratic"
	"github.com/BasharShoumali/socratia-1/internal/observability/metrics"
)

const serviceName = "socratia-api"

type Router struct {
	cfg     config.Config
	ingest  ports.DocumentIngestor
	study   ports.StudySessionService
	docs    ports.DocumentReader
	metrics *metrics.HTTPServerMetrics
}

func NewRouter(
	cfg config.Config,
	ingest ports.DocumentIngestor,
	study ports.StudySessionService,
	docs ports.DocumentReader,
	m *metrics.HTTPServerMetrics,
) *Router {
	return &Router{
		cfg:     cfg,
		ingest:  ingest,
		study:   study,
		docs:    docs,
		metrics: m,
	}
}

func (rt *Router) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/healthz", rt.healthz)
	mux.HandleFunc("/api/health", rt.health)
	mux.HandleFunc("/api/upload", rt.uploadDocument)
	mux.HandleFunc("/api/chat", rt.chatTurn)
	mux.HandleFunc("/api/documents/", rt.getDocumentByID)
	mux.Handle("/metrics", rt.metrics.Handler())

	var handler http.Handler = mux
	handler = backpressureMiddleware(handler, rt.cfg.APIMaxConcurrent, time.Duration(rt.cfg.APIQueueWaitMS)*time.Millisecond)
	handler = rateLimitMiddleware(handler, rt.cfg.APIRateLimitRPS, rt.cfg.APIRateLimitBurst)
	handler = rt.metrics.Middleware(serviceName, handler)
	handler = accessLogMiddleware(handler)
	handler = requestIDMiddleware(handler)
	return handler
}

func (rt *Router) healthz(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (rt *Router) health(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"ok":      true,
		"service": serviceName,
		"time":    time.Now().UTC().Format(time.RFC3339),
	})
}

func (rt *Router) uploadDocument(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeJSON(w, http.StatusMethodNotAllowed, errorBody("method not allowed"))
		return
	}
	if rt.cfg.MaxUploadBytes > 0 {
		r.Body = http.MaxBytesReader(w, r.Body, rt.cfg.MaxUploadBytes)
	}

	file, fileHeader, err := r.FormFile("file")
	if err != nil {
		rt.metrics.RecordUploadRejected(serviceName, "no_file")
		writeJSON(w, http.StatusBadRequest, errorBody("No file uploaded"))
		return
	}
	defer file.Close()

	contentType := fileHeader.Header.Get("Content-Type")
	if parsed, _, err := mime.ParseMediaType(contentType); err == nil {
		contentType = parsed
	}

	start := time.Now()
	doc, err := rt.ingest.Upload(r.Context(), fileHeader.Filename, contentType, file)
	if err != nil {
		rt.writeUploadError(w, r, err)
		return
	}

	rt.metrics.RecordDocumentIngested(serviceName, string(doc.MediaType), time.Since(start))
	writeJSON(w, http.StatusOK, uploadResponse{
		DocumentID: doc.ID,
		Message:    "File processed and text saved successfully",
	})
}

func (rt *Router) chatTurn(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeJSON(w, http.StatusMethodNotAllowed, errorBody("method not allowed"))
		return
	}

	var req chatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody("invalid json"))
		return
	}
	if strings.TrimSpace(req.DocumentID) == "" {
		writeJSON(w, http.StatusBadRequest, errorBody("documentId is required"))
		return
	}

	// The caller owns the step counter; an absent field means the first turn.
	step := 1
	if req.Step != nil {
		step = *req.Step
	}

	prompt, err := rt.study.NextPrompt(r.Context(), req.DocumentID, step)
	if err != nil {
		rt.writeChatError(w, r, err)
		return
	}

	rt.metrics.RecordPromptServed(serviceName, promptOutcome(prompt))
	writeJSON(w, http.StatusOK, prompt)
}

func (rt *Router) getDocumentByID(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeJSON(w, http.StatusMethodNotAllowed, errorBody("method not allowed"))
		return
	}

	id := strings.TrimPrefix(r.URL.Path, "/api/documents/")
	if id == "" {
		writeJSON(w, http.StatusBadRequest, errorBody("document id is required"))
		return
	}

	doc, err := rt.docs.GetByID(r.Context(), id)
	if err != nil {
		if domain.IsKind(err, domain.ErrDocumentNotFound) {
			writeJSON(w, http.StatusNotFound, errorBody("Document not found"))
			return
		}
		logInternalError(r, "get document failed", err)
		writeJSON(w, http.StatusInternalServerError, errorBody("internal error"))
		return
	}
	writeJSON(w, http.StatusOK, doc)
}

type uploadResponse struct {
	DocumentID string `json:"documentId"`
	Message    string `json:"message"`
}

type chatRequest struct {
	DocumentID string `json:"documentId"`
	Step       *int   `json:"step"`
}

func promptOutcome(prompt *domain.Prompt) string {
	switch prompt.Question {
	case socratic.CompletedMessage:
		return "completed"
	case socratic.TooShortMessage:
		return "too_short"
	default:
		return "question"
	}
}

func errorBody(message string) map[string]string {
	return map[string]string{"error": message}
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func logInternalError(r *http.Request, msg string, err error) {
	slog.Error(msg,
		"request_id", requestIDFromContext(r.Context()),
		"path", r.URL.Path,
		"error", err,
	)
}
