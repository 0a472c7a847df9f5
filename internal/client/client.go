// Package client talks to the StyleSense analysis endpoint.
package client

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"strings"

	"github.com/bytedance/sonic"
	"github.com/google/uuid"
	"github.com/uttarakargayathri/Style-Sense-GEN-AI/internal/models"
)

const (
	formField       = "file"
	requestIDHeader = "X-Request-ID"
)

var (
	// ErrAnalysisFailed matches every non-2xx answer from the endpoint.
	ErrAnalysisFailed = errors.New("Analysis failed")
	// ErrMalformedResponse is returned when a 2xx body has no analysis text.
	ErrMalformedResponse = errors.New("Malformed analysis response")
)

// StatusError is a non-2xx answer. Its message stays generic so callers can
// show it as-is; the status and body are kept for logging.
type StatusError struct {
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return ErrAnalysisFailed.Error()
}

func (e *StatusError) Is(target error) bool {
	return target == ErrAnalysisFailed
}

type Client struct {
	endpoint   string
	httpClient *http.Client
	logger     *log.Logger
}

func New(endpoint string, httpClient *http.Client, logger *log.Logger) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &Client{
		endpoint:   endpoint,
		httpClient: httpClient,
		logger:     logger,
	}
}

func (c *Client) Endpoint() string {
	return c.endpoint
}

// Analyze uploads f and returns the analysis text.
func (c *Client) Analyze(ctx context.Context, f models.File) (string, error) {
	resp, err := c.post(ctx, c.endpoint, f, "application/json")
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	var body models.AnalyzeResponse
	if err := sonic.ConfigDefault.NewDecoder(resp.Body).Decode(&body); err != nil {
		return "", fmt.Errorf("%w: %s", ErrMalformedResponse, err)
	}
	if body.Analysis == nil {
		return "", ErrMalformedResponse
	}
	return *body.Analysis, nil
}

// Stream uploads f to the streaming endpoint and calls onChunk for every
// delta. The full text is returned once the server reports done.
func (c *Client) Stream(ctx context.Context, f models.File, onChunk func(delta string) error) (string, error) {
	resp, err := c.post(ctx, strings.TrimSuffix(c.endpoint, "/")+"/stream", f, "text/event-stream")
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	var (
		full   strings.Builder
		event  string
		reader = bufio.NewReader(resp.Body)
	)

	for {
		line, err := reader.ReadString('\n')
		if err != nil {
			if errors.Is(err, io.EOF) {
				return "", fmt.Errorf("%w: stream ended before done", ErrMalformedResponse)
			}
			return "", err
		}

		line = strings.TrimSpace(line)
		switch {
		case strings.HasPrefix(line, "event: "):
			event = strings.TrimPrefix(line, "event: ")
			continue
		case !strings.HasPrefix(line, "data: "):
			continue
		}

		payload := strings.TrimPrefix(line, "data: ")
		switch event {
		case "done":
			return full.String(), nil
		case "error":
			return "", fmt.Errorf("%w: %s", ErrAnalysisFailed, payload)
		}

		var chunk models.StreamChunk
		if err := sonic.UnmarshalString(payload, &chunk); err != nil {
			return "", fmt.Errorf("%w: %s", ErrMalformedResponse, err)
		}

		full.WriteString(chunk.Delta)
		if onChunk != nil {
			if err := onChunk(chunk.Delta); err != nil {
				return "", err
			}
		}
	}
}

func (c *Client) post(ctx context.Context, url string, f models.File, accept string) (*http.Response, error) {
	body, contentType, err := encodeFile(f)
	if err != nil {
		return nil, fmt.Errorf("encode upload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, body)
	if err != nil {
		return nil, err
	}
	requestID := uuid.NewString()
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("Accept", accept)
	req.Header.Set(requestIDHeader, requestID)

	c.logger.Printf("POST %s %s (%s, %d bytes) id=%s\n", url, f.Name, f.MediaType, f.Size(), requestID)
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, 4<<10))
		resp.Body.Close()
		c.logger.Printf("analysis failed: status %d: %s id=%s\n", resp.StatusCode, strings.TrimSpace(string(b)), requestID)
		return nil, &StatusError{StatusCode: resp.StatusCode, Body: strings.TrimSpace(string(b))}
	}
	return resp, nil
}

func encodeFile(f models.File) (*bytes.Buffer, string, error) {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)

	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition", fmt.Sprintf(`form-data; name="%s"; filename="%s"`, formField, escapeQuotes(f.Name)))
	h.Set("Content-Type", f.MediaType)

	part, err := mw.CreatePart(h)
	if err != nil {
		return nil, "", err
	}
	if _, err := part.Write(f.Data); err != nil {
		return nil, "", err
	}
	if err := mw.Close(); err != nil {
		return nil, "", err
	}
	return &buf, mw.FormDataContentType(), nil
}

var quoteEscaper = strings.NewReplacer("\\", "\\\\", `"`, "\\\"")

func escapeQuotes(s string) string {
	return quoteEscaper.Replace(s)
}
