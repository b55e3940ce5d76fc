package httpadapter

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"testing"
	"time"

	"github.com/BasharShoumali/socratia-1/internal/config"
	"github.com/BasharShoumali/socratia-1/internal/core/domain"
	"github.com/BasharShoumali/socratia-1/internal/observability/metrics"
)

type ingestFake struct {
	doc *domain.Document
	err error
}

func (f ingestFake) Upload(_ context.Context, filename, contentType string, body io.Reader) (*domain.Document, error) {
	if f.err != nil {
		return nil, f.err
	}
	if _, err := io.ReadAll(body); err != nil {
		return nil, err
	}
	if f.doc != nil {
		return f.doc, nil
	}
	now := time.Now().UTC()
	return &domain.Document{
		ID:        "doc-1",
		Filename:  filename,
		MediaType: domain.MediaPlainText,
		Status:    domain.StatusUploaded,
		CreatedAt: now,
		UpdatedAt: now,
	}, nil
}

type studyFake struct {
	prompt *domain.Prompt
	err    error
}

func (f studyFake) NextPrompt(_ context.Context, _ string, step int) (*domain.Prompt, error) {
	if f.err != nil {
		return nil, f.err
	}
	if f.prompt != nil {
		return f.prompt, nil
	}
	return &domain.Prompt{Question: "why?", Step: step}, nil
}

type docsFake struct {
	doc *domain.Document
	err error
}

func (f docsFake) GetByID(context.Context, string) (*domain.Document, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.doc, nil
}

func newTestHandler(cfg config.Config, ingest ingestFake, study studyFake, docs docsFake) http.Handler {
	m := metrics.NewHTTPServerMetrics(serviceName)
	return NewRouter(cfg, ingest, study, docs, m).Handler()
}

func multipartUpload(t *testing.T, filename, contentType string, payload []byte) (*bytes.Buffer, string) {
	t.Helper()
	var body bytes.Buffer
	writer := multipart.NewWriter(&body)

	header := textproto.MIMEHeader{}
	header.Set("Content-Disposition", `form-data; name="file"; filename="`+filename+`"`)
	header.Set("Content-Type", contentType)
	part, err := writer.CreatePart(header)
	if err != nil {
		t.Fatalf("CreatePart() error = %v", err)
	}
	if _, err := part.Write(payload); err != nil {
		t.Fatalf("Write() error = %v", err)
	}
	if err := writer.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}
	return &body, writer.FormDataContentType()
}

func decodeBody(t *testing.T, res *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	if err := json.Unmarshal(res.Body.Bytes(), &out); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	return out
}

func TestHealthEndpoints(t *testing.T) {
	handler := newTestHandler(config.Config{}, ingestFake{}, studyFake{}, docsFake{})

	for _, path := range []string{"/healthz", "/api/health"} {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		res := httptest.NewRecorder()
		handler.ServeHTTP(res, req)
		if res.Code != http.StatusOK {
			t.Fatalf("%s expected 200, got %d", path, res.Code)
		}
	}
}

func TestUploadSuccessResponseShape(t *testing.T) {
	handler := newTestHandler(config.Config{}, ingestFake{}, studyFake{}, docsFake{})

	body, contentType := multipartUpload(t, "notes.txt", "text/plain", []byte("some content"))
	req := httptest.NewRequest(http.MethodPost, "/api/upload", body)
	req.Header.Set("Content-Type", contentType)
	res := httptest.NewRecorder()
	handler.ServeHTTP(res, req)

	if res.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", res.Code, res.Body.String())
	}
	payload := decodeBody(t, res)
	if payload["documentId"] != "doc-1" {
		t.Fatalf("documentId = %v", payload["documentId"])
	}
	if payload["message"] != "File processed and text saved successfully" {
		t.Fatalf("message = %v", payload["message"])
	}
}

func TestUploadWithoutFilePart(t *testing.T) {
	handler := newTestHandler(config.Config{}, ingestFake{}, studyFake{}, docsFake{})

	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	if err := writer.WriteField("other", "value"); err != nil {
		t.Fatalf("WriteField() error = %v", err)
	}
	if err := writer.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}

	req := httptest.NewRequest(http.MethodPost, "/api/upload", &body)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	res := httptest.NewRecorder()
	handler.ServeHTTP(res, req)

	if res.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", res.Code)
	}
	if payload := decodeBody(t, res); payload["error"] != "No file uploaded" {
		t.Fatalf("error = %v", payload["error"])
	}
}

func TestUploadErrorMapping(t *testing.T) {
	cases := []struct {
		name       string
		err        error
		wantStatus int
		wantError  string
	}{
		{
			name:       "unsupported media",
			err:        domain.WrapError(domain.ErrUnsupportedMedia, "parse media type", errors.New("image/png")),
			wantStatus: http.StatusBadRequest,
			wantError:  "Unsupported file type",
		},
		{
			name:       "content too short",
			err:        domain.WrapError(domain.ErrContentTooShort, "validate", errors.New("10 < 50")),
			wantStatus: http.StatusBadRequest,
			wantError:  "File content is too short",
		},
		{
			name:       "extraction failure",
			err:        domain.WrapError(domain.ErrExtraction, "extract pdf", errors.New("truncated xref")),
			wantStatus: http.StatusInternalServerError,
			wantError:  "Upload failed",
		},
		{
			name:       "storage failure",
			err:        domain.WrapError(domain.ErrStorage, "insert", errors.New("connection refused")),
			wantStatus: http.StatusInternalServerError,
			wantError:  "Upload failed",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			handler := newTestHandler(config.Config{}, ingestFake{err: tc.err}, studyFake{}, docsFake{})

			body, contentType := multipartUpload(t, "f.bin", "application/octet-stream", []byte("x"))
			req := httptest.NewRequest(http.MethodPost, "/api/upload", body)
			req.Header.Set("Content-Type", contentType)
			res := httptest.NewRecorder()
			handler.ServeHTTP(res, req)

			if res.Code != tc.wantStatus {
				t.Fatalf("expected %d, got %d", tc.wantStatus, res.Code)
			}
			if payload := decodeBody(t, res); payload["error"] != tc.wantError {
				t.Fatalf("error = %v, want %q", payload["error"], tc.wantError)
			}
		})
	}
}

func TestUploadRejectsNonPost(t *testing.T) {
	handler := newTestHandler(config.Config{}, ingestFake{}, studyFake{}, docsFake{})

	req := httptest.NewRequest(http.MethodGet, "/api/upload", nil)
	res := httptest.NewRecorder()
	handler.ServeHTTP(res, req)

	if res.Code != http.StatusMethodNotAllowed {
		t.Fatalf("expected 405, got %d", res.Code)
	}
}

func TestGetDocumentNotFound(t *testing.T) {
	notFound := domain.WrapError(domain.ErrDocumentNotFound, "get document", errors.New("id missing"))
	handler := newTestHandler(config.Config{}, ingestFake{}, studyFake{}, docsFake{err: notFound})

	req := httptest.NewRequest(http.MethodGet, "/api/documents/missing", nil)
	res := httptest.NewRecorder()
	handler.ServeHTTP(res, req)

	if res.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", res.Code)
	}
}

func TestGetDocumentOmitsText(t *testing.T) {
	doc := &domain.Document{ID: "doc-1", Filename: "a.txt", MediaType: domain.MediaPlainText, Text: "secret body", Status: domain.StatusReady}
	handler := newTestHandler(config.Config{}, ingestFake{}, studyFake{}, docsFake{doc: doc})

	req := httptest.NewRequest(http.MethodGet, "/api/documents/doc-1", nil)
	res := httptest.NewRecorder()
	handler.ServeHTTP(res, req)

	if res.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", res.Code)
	}
	if bytes.Contains(res.Body.Bytes(), []byte("secret body")) {
		t.Fatalf("document text must not be exposed: %s", res.Body.String())
	}
}
