package service

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/openai/openai-go/v3"
	"github.com/uttarakargayathri/Style-Sense-GEN-AI/internal/config"
	"github.com/uttarakargayathri/Style-Sense-GEN-AI/internal/metrics"
	"github.com/uttarakargayathri/Style-Sense-GEN-AI/internal/models"
)

var ErrEmptyCompletion = errors.New("model returned no choices")

type Cache interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key string, value string) error
}

type AnalyzeService struct {
	logger       *log.Logger
	openaiClient openai.Client
	modelName    string
	cache        Cache
}

func NewAnalyzeService(logger *log.Logger, openaiClient openai.Client, cfg config.OpenAIConfig) *AnalyzeService {
	return &AnalyzeService{
		logger:       logger,
		openaiClient: openaiClient,
		modelName:    cfg.Model,
	}
}

func (s *AnalyzeService) SetCacheClient(cache Cache) {
	s.cache = cache
}

func (s *AnalyzeService) Analyze(ctx context.Context, req *models.AnalyzeRequest) (string, error) {
	start := time.Now()
	key := s.cacheKey(req)

	if cached, found := s.lookup(ctx, key); found {
		metrics.AnalysisTotal("cache", req.MediaType)
		return cached, nil
	}

	params, err := s.buildOpenAIReq(req)
	if err != nil {
		metrics.AnalysisTotal("invalid", req.MediaType)
		return "", fmt.Errorf("failed to build request: %w", err)
	}

	s.logger.Printf("analyzing %s (%s, %d bytes)\n", req.FileName, req.MediaType, len(req.Data))
	resp, err := s.openaiClient.Chat.Completions.New(ctx, *params)
	if err != nil {
		metrics.AnalysisTotal("error", req.MediaType)
		return "", fmt.Errorf("OpenAI client error: %w", err)
	}
	if len(resp.Choices) == 0 {
		metrics.AnalysisTotal("error", req.MediaType)
		return "", ErrEmptyCompletion
	}

	analysis := resp.Choices[0].Message.Content
	metrics.AnalysisTotal("ok", req.MediaType)
	metrics.AnalysisDuration("ok", req.MediaType, time.Since(start))

	s.store(ctx, key, analysis)
	return analysis, nil
}

func (s *AnalyzeService) AnalyzeStream(
	ctx context.Context,
	req *models.AnalyzeRequest,
) (<-chan models.StreamChunk, error) {
	ch := make(chan models.StreamChunk, 1)
	key := s.cacheKey(req)

	if cached, found := s.lookup(ctx, key); found {
		metrics.AnalysisTotal("cache", req.MediaType)
		ch <- models.StreamChunk{Delta: cached, Done: true}
		close(ch)
		return ch, nil
	}

	params, err := s.buildOpenAIReq(req)
	if err != nil {
		metrics.AnalysisTotal("invalid", req.MediaType)
		return nil, fmt.Errorf("build request error: %w", err)
	}

	go func() {
		defer close(ch)
		start := time.Now()

		sendOrStop := func(msg models.StreamChunk) bool {
			select {
			case ch <- msg:
				return true
			case <-ctx.Done():
				return false
			}
		}

		stream := s.openaiClient.Chat.Completions.NewStreaming(ctx, *params)
		defer stream.Close()

		var builder strings.Builder

		for stream.Next() {
			chunk := stream.Current()
			if len(chunk.Choices) == 0 {
				continue
			}

			delta := chunk.Choices[0].Delta.Content
			if delta == "" {
				continue
			}

			builder.WriteString(delta)
			if !sendOrStop(models.StreamChunk{Delta: delta}) {
				metrics.AnalysisTotal("cancelled", req.MediaType)
				return
			}
		}

		if err := stream.Err(); err != nil {
			metrics.AnalysisTotal("error", req.MediaType)
			sendOrStop(models.StreamChunk{Err: err})
			return
		}

		metrics.AnalysisTotal("ok", req.MediaType)
		metrics.AnalysisDuration("ok", req.MediaType, time.Since(start))
		s.store(ctx, key, builder.String())

		sendOrStop(models.StreamChunk{Done: true})
	}()

	return ch, nil
}

func (s *AnalyzeService) lookup(ctx context.Context, key string) (string, bool) {
	if s.cache == nil {
		return "", false
	}
	cached, found, err := s.cache.Get(ctx, key)
	if err != nil {
		s.logger.Printf("cache get error: %v\n", err)
		return "", false
	}
	if found {
		s.logger.Println("served from cache")
	}
	return cached, found
}

func (s *AnalyzeService) store(ctx context.Context, key, value string) {
	if s.cache == nil || value == "" {
		return
	}
	if err := s.cache.Set(ctx, key, value); err != nil {
		s.logger.Printf("failed to set cache: %v\n", err)
	}
}

func (s *AnalyzeService) cacheKey(req *models.AnalyzeRequest) string {
	h := sha256.New()
	h.Write([]byte(s.modelName))
	h.Write([]byte{0})
	h.Write([]byte(req.MediaType))
	h.Write([]byte{0})
	h.Write(req.Data)
	return cacheKeyPrefix + hex.EncodeToString(h.Sum(nil))
}
