package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
	"github.com/uttarakargayathri/Style-Sense-GEN-AI/internal/cache"
	"github.com/uttarakargayathri/Style-Sense-GEN-AI/internal/config"
	"github.com/uttarakargayathri/Style-Sense-GEN-AI/internal/handler"
	"github.com/uttarakargayathri/Style-Sense-GEN-AI/internal/service"
)

// @title StyleSense API
// @version 1.0
// @description Outfit photo analysis by an AI fashion stylist.
// @BasePath /
func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config error: %v", err)
	}

	logger := log.Default()
	if cfg.OpenAI.APIKey == "" {
		logger.Println("warning: OPENAI_API_KEY is not set")
	}

	analyzeService := service.NewAnalyzeService(
		logger,
		openai.NewClient(
			option.WithAPIKey(cfg.OpenAI.APIKey),
			option.WithBaseURL(cfg.OpenAI.BaseURL),
		), cfg.OpenAI)

	if cfg.CacheEnable {
		redisCache := cache.NewRedisCache(cfg.RedisConfig)
		defer redisCache.Close()

		pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
		if err := redisCache.Ping(pingCtx); err != nil {
			logger.Printf("redis ping failed, cache reads will miss until it is reachable: %v\n", err)
		}
		cancel()

		analyzeService.SetCacheClient(redisCache)
		logger.Println("set redis as cache")
	}

	h := handler.NewAnalyzeHandler(analyzeService, logger, cfg.Upload.MaxBytes)

	r := newRouter(cfg.Server, h)

	srv := &http.Server{
		Addr:    ":" + cfg.Server.Port,
		Handler: r,
	}

	go func() {
		logger.Printf("server started :%s\n", cfg.Server.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatalf("listen error: %v", err)
		}
	}()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Fatalf("server forced to shutdown: %v", err)
	}
	logger.Println("server stopped")
}
