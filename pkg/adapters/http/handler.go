// Copyright SummarizeME Authors
// SPDX-License-Identifier: Apache-2.0

package http

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/shahakanksha-tamu/SummarizeME/pkg/core/engine"
	"github.com/shahakanksha-tamu/SummarizeME/pkg/core/schema"
	"github.com/shahakanksha-tamu/SummarizeME/pkg/extractor"
	"github.com/shahakanksha-tamu/SummarizeME/pkg/observability/logging"
)

// DefaultMaxUploadBytes caps documents posted to /summarize/file.
const DefaultMaxUploadBytes = 20 << 20

// Summarizer produces a summary of text at a length level.
// Implemented by engine.Engine.
type Summarizer interface {
	Summarize(ctx context.Context, text, level string) (string, error)
}

// Options configures the HTTP adapter.
type Options struct {
	// AllowOrigins lists the CORS origins; "*" allows any origin.
	AllowOrigins   []string
	MaxUploadBytes int64
}

// Handler implements the HTTP adapter
type Handler struct {
	summarizer     Summarizer
	logger         *logging.Logger
	mux            *http.ServeMux
	cors           *cors
	maxUploadBytes int64
}

// New creates a new HTTP handler
func New(summarizer Summarizer, logger *logging.Logger, opts Options) *Handler {
	if logger == nil {
		logger = logging.Discard()
	}
	h := &Handler{
		summarizer:     summarizer,
		logger:         logger,
		mux:            http.NewServeMux(),
		cors:           newCORS(opts.AllowOrigins),
		maxUploadBytes: opts.MaxUploadBytes,
	}
	if h.maxUploadBytes <= 0 {
		h.maxUploadBytes = DefaultMaxUploadBytes
	}

	// Register routes
	h.mux.HandleFunc("GET /health", h.handleHealth)
	h.mux.HandleFunc("GET /openapi.json", h.handleOpenAPI)
	h.mux.HandleFunc("POST /summarize", h.handleSummarize)
	h.mux.HandleFunc("POST /summarize/file", h.handleSummarizeFile)

	return h
}

// ServeHTTP implements http.Handler
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}

	if h.cors.handle(rec, r) {
		h.mux.ServeHTTP(rec, r)
	}

	h.logger.Info("Request",
		"method", r.Method,
		"path", r.URL.Path,
		"remote_addr", r.RemoteAddr,
		"status", rec.status,
		"duration", time.Since(start))
}

// handleHealth handles health check requests
func (h *Handler) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, schema.HealthResponse{
		OK:      true,
		Service: schema.ServiceName,
		Status:  "healthy",
	})
}

// handleSummarize handles POST /summarize
func (h *Handler) handleSummarize(w http.ResponseWriter, r *http.Request) {
	var req schema.SummaryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Warn("Failed to parse request", "error", err)
		writeJSON(w, http.StatusUnprocessableEntity, schema.Failure("invalid request body: "+err.Error()))
		return
	}

	level, ok := parseLevel(req.Level)
	if !ok {
		writeJSON(w, http.StatusUnprocessableEntity, schema.Failure(levelMessage(req.Level)))
		return
	}

	var text string
	if req.Text != nil {
		text = *req.Text
	}
	h.summarize(w, r, text, level)
}

// handleSummarizeFile handles POST /summarize/file with a multipart "file"
// part and an optional "level" field.
func (h *Handler) handleSummarizeFile(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, h.maxUploadBytes)
	if err := r.ParseMultipartForm(h.maxUploadBytes); err != nil {
		h.logger.Warn("Failed to parse multipart form", "error", err)
		writeJSON(w, http.StatusUnprocessableEntity, schema.Failure("failed to parse multipart form"))
		return
	}
	defer r.MultipartForm.RemoveAll()

	level, ok := parseLevel(r.FormValue("level"))
	if !ok {
		writeJSON(w, http.StatusUnprocessableEntity, schema.Failure(levelMessage(r.FormValue("level"))))
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		writeJSON(w, http.StatusUnprocessableEntity, schema.Failure("file is required"))
		return
	}
	defer file.Close()

	content, err := io.ReadAll(file)
	if err != nil {
		h.logger.Error("Failed to read uploaded file", "error", err)
		writeJSON(w, http.StatusUnprocessableEntity, schema.Failure("failed to read file"))
		return
	}

	text, err := extractor.Extract(content, header.Filename)
	switch {
	case errors.Is(err, extractor.ErrNoText):
		writeJSON(w, http.StatusOK, schema.Failure(schema.NoTextMessage))
		return
	case errors.Is(err, extractor.ErrUnsupportedFormat):
		writeJSON(w, http.StatusUnsupportedMediaType, schema.Failure(fmt.Sprintf("%s: %v", header.Filename, err)))
		return
	case err != nil:
		h.logger.Warn("Failed to extract text", "filename", header.Filename, "error", err)
		writeJSON(w, http.StatusUnprocessableEntity, schema.Failure("extract text: "+err.Error()))
		return
	}

	h.logger.Debug("Extracted document",
		"filename", header.Filename,
		"bytes", len(content),
		"chars", len(text))
	h.summarize(w, r, text, level)
}

// summarize runs the pipeline and maps its outcome onto the response
// envelope. Failures are reported in the body with status 200.
func (h *Handler) summarize(w http.ResponseWriter, r *http.Request, text, level string) {
	text = strings.TrimSpace(text)
	if text == "" {
		writeJSON(w, http.StatusOK, schema.Failure(schema.NoTextMessage))
		return
	}

	summary, err := h.summarizer.Summarize(r.Context(), text, level)
	if err != nil {
		if errors.Is(err, engine.ErrEmptyInput) {
			writeJSON(w, http.StatusOK, schema.Failure(schema.NoTextMessage))
			return
		}
		h.logger.Error("Summarization failed", "level", level, "error", err)
		writeJSON(w, http.StatusOK, schema.Failure(err.Error()))
		return
	}

	h.logger.Info("Summary sent", "level", level, "chars", len(summary))
	writeJSON(w, http.StatusOK, schema.Success(summary))
}

func parseLevel(level string) (string, bool) {
	if level == "" {
		return engine.LevelMedium, true
	}
	return level, engine.ValidLevel(level)
}

func levelMessage(level string) string {
	return fmt.Sprintf("invalid level %q: must be one of %s, %s, %s",
		level, engine.LevelShort, engine.LevelMedium, engine.LevelLong)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// statusRecorder captures the response status for request logging.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (s *statusRecorder) WriteHeader(status int) {
	s.status = status
	s.ResponseWriter.WriteHeader(status)
}
