package main

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/uttarakargayathri/Style-Sense-GEN-AI/internal/config"
	"github.com/uttarakargayathri/Style-Sense-GEN-AI/internal/handler"
	"github.com/uttarakargayathri/Style-Sense-GEN-AI/internal/metrics"

	_ "github.com/uttarakargayathri/Style-Sense-GEN-AI/docs"
	httpSwagger "github.com/swaggo/http-swagger"
)

func newRouter(cfg config.ServerConfig, h *handler.AnalyzeHandler) chi.Router {
	r := chi.NewRouter()
	r.Use([]func(http.Handler) http.Handler{
		middleware.RequestID,
		middleware.Logger,
		middleware.Recoverer,
		middleware.Throttle(cfg.ThrottleLimit),
		middleware.Timeout(cfg.Timeout),
		metrics.Middleware,
	}...)

	r.Get("/", h.Root)
	r.Post("/analyze", h.Analyze)
	r.Post("/analyze/stream", h.AnalyzeStream)
	r.Get("/swagger/*", httpSwagger.Handler(
		httpSwagger.URL("/swagger/doc.json"),
	))
	r.Handle("/metrics", promhttp.Handler())

	return r
}
