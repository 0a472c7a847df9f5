package handler

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"

	"github.com/bytedance/sonic"
	"github.com/uttarakargayathri/Style-Sense-GEN-AI/internal/metrics"
	"github.com/uttarakargayathri/Style-Sense-GEN-AI/internal/models"
)

const (
	formField     = "file"
	maxFormMemory = 8 << 20

	welcomeMessage = "Welcome to StyleSense API. POST an outfit photo to /analyze as multipart field \"file\"."
)

type analyzeService interface {
	Analyze(ctx context.Context, req *models.AnalyzeRequest) (string, error)
	AnalyzeStream(ctx context.Context, req *models.AnalyzeRequest) (<-chan models.StreamChunk, error)
}

type AnalyzeHandler struct {
	service  analyzeService
	logger   *log.Logger
	maxBytes int64
}

func NewAnalyzeHandler(service analyzeService, logger *log.Logger, maxBytes int64) *AnalyzeHandler {
	return &AnalyzeHandler{
		service:  service,
		logger:   logger,
		maxBytes: maxBytes,
	}
}

// Root godoc
// @Summary API root
// @Description Returns a welcome message.
// @Tags meta
// @Produce json
// @Success 200 {object} models.WelcomeResponse
// @Router / [get]
func (h *AnalyzeHandler) Root(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, models.WelcomeResponse{Message: welcomeMessage})
}

// Analyze godoc
// @Summary Analyze outfit photo
// @Description Styling critique of an uploaded outfit photo, formatted as Markdown.
// @Tags analyze
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "Outfit image"
// @Success 200 {object} models.AnalyzeResponse
// @Failure 400 {string} string
// @Failure 413 {string} string
// @Failure 415 {string} string
// @Failure 500 {string} string
// @Router /analyze [post]
func (h *AnalyzeHandler) Analyze(w http.ResponseWriter, r *http.Request) {
	req, status, err := h.readUpload(w, r)
	if err != nil {
		http.Error(w, err.Error(), status)
		return
	}

	analysis, err := h.service.Analyze(r.Context(), req)
	if err != nil {
		h.logger.Printf("error during analysis: %v\n", err)
		http.Error(w, fmt.Sprintf("service error: %s", err), http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, models.AnalyzeResponse{Analysis: &analysis})
}

// AnalyzeStream godoc
// @Summary Stream outfit analysis
// @Description Streams the critique as server-sent events. Each message event carries {"delta": "..."}.
// @Tags analyze
// @Accept multipart/form-data
// @Produce text/event-stream
// @Param file formData file true "Outfit image"
// @Success 200 {object} models.StreamChunk "Stream of deltas (SSE)"
// @Failure 400 {string} string
// @Failure 413 {string} string
// @Failure 415 {string} string
// @Failure 500 {string} string
// @Router /analyze/stream [post]
func (h *AnalyzeHandler) AnalyzeStream(w http.ResponseWriter, r *http.Request) {
	req, status, err := h.readUpload(w, r)
	if err != nil {
		http.Error(w, err.Error(), status)
		return
	}

	stream, err := h.service.AnalyzeStream(r.Context(), req)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.WriteHeader(http.StatusOK)

	flusher := http.NewResponseController(w)

	for chunk := range stream {
		if chunk.Err != nil {
			h.logger.Printf("stream error: %v\n", chunk.Err)
			fmt.Fprintf(w, "event: error\ndata: %v\n\n", chunk.Err)
			_ = flusher.Flush()
			return
		}

		if chunk.Delta != "" {
			data, err := sonic.Marshal(chunk)
			if err != nil {
				fmt.Fprintf(w, "event: error\ndata: marshal error %v\n\n", err)
				_ = flusher.Flush()
				return
			}
			fmt.Fprintf(w, "event: message\ndata: %s\n\n", data)
			_ = flusher.Flush()
		}

		if chunk.Done {
			fmt.Fprint(w, "event: done\ndata: {}\n\n")
			_ = flusher.Flush()
			return
		}
	}
}

// readUpload pulls the "file" part out of a multipart body. The returned
// status is only meaningful when err is non-nil.
func (h *AnalyzeHandler) readUpload(w http.ResponseWriter, r *http.Request) (*models.AnalyzeRequest, int, error) {
	if h.maxBytes > 0 {
		r.Body = http.MaxBytesReader(w, r.Body, h.maxBytes)
	}

	if err := r.ParseMultipartForm(maxFormMemory); err != nil {
		if tooLarge(err) {
			return nil, http.StatusRequestEntityTooLarge, fmt.Errorf("file exceeds %d bytes", h.maxBytes)
		}
		return nil, http.StatusBadRequest, fmt.Errorf("invalid multipart form: %s", err)
	}

	part, header, err := r.FormFile(formField)
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) {
			return nil, http.StatusBadRequest, fmt.Errorf("missing form field %q", formField)
		}
		return nil, http.StatusBadRequest, fmt.Errorf("invalid form field %q: %s", formField, err)
	}
	defer part.Close()

	data, err := io.ReadAll(part)
	if err != nil {
		return nil, http.StatusBadRequest, fmt.Errorf("failed to read upload: %s", err)
	}

	mediaType := header.Header.Get("Content-Type")
	if mediaType == "" || mediaType == "application/octet-stream" {
		mediaType = models.DetectMediaType(header.Filename, data)
	}

	req := &models.AnalyzeRequest{
		FileName:  header.Filename,
		MediaType: mediaType,
		Data:      data,
	}
	metrics.UploadBytes(int64(len(data)))

	if !models.IsImageType(mediaType) {
		return nil, http.StatusUnsupportedMediaType, fmt.Errorf("unsupported media type {%s}", mediaType)
	}
	if err := req.Validate(); err != nil {
		return nil, http.StatusBadRequest, fmt.Errorf("request validation failed: %s", err)
	}
	return req, 0, nil
}

func tooLarge(err error) bool {
	var maxErr *http.MaxBytesError
	return errors.As(err, &maxErr)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	data, err := sonic.Marshal(v)
	if err != nil {
		http.Error(w, fmt.Sprintf("failed to encode: %s", err), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(data)
}
