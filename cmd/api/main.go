package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/vaultpass/passgen-go/internal/config"
	"github.com/vaultpass/passgen-go/internal/crypto"
	"github.com/vaultpass/passgen-go/internal/handler"
	"github.com/vaultpass/passgen-go/internal/metrics"
	"github.com/vaultpass/passgen-go/internal/middleware"
	"github.com/vaultpass/passgen-go/internal/service"
	"github.com/vaultpass/passgen-go/internal/web"
)

func main() {
	if err := godotenv.Load(); err != nil {
		slog.Warn("no .env file found, using environment variables")
	}

	cfg := config.Load()

	src, err := crypto.NewSource(cfg.RandomSource)
	if err != nil {
		slog.Error("invalid random source", "source", cfg.RandomSource, "error", err)
		os.Exit(1)
	}

	opts := metrics.Options{Registerer: prometheus.DefaultRegisterer}
	genMetrics, err := metrics.NewGenerator(opts)
	if err != nil {
		slog.Error("registering generator metrics", "error", err)
		os.Exit(1)
	}
	httpMetrics, err := metrics.NewHTTP(opts)
	if err != nil {
		slog.Error("registering http metrics", "error", err)
		os.Exit(1)
	}

	page, err := web.NewHandler(web.PageConfig{
		MinLength:     service.MinLength,
		MaxLength:     service.MaxLength,
		DefaultLength: service.DefaultLength,
		GenerateDelay: cfg.GenerateDelay,
	})
	if err != nil {
		slog.Error("building page", "error", err)
		os.Exit(1)
	}

	ctx, stop := context.WithCancel(context.Background())
	defer stop()

	r := handler.NewRouter(ctx, handler.RouterOptions{
		Generator:   service.NewGeneratorService(src, genMetrics),
		Page:        page,
		HTTPMetrics: httpMetrics,
		Gatherer:    prometheus.DefaultGatherer,
		RateLimit: middleware.RateLimitConfig{
			RPS:   cfg.RateLimitRPS,
			Burst: cfg.RateLimitBurst,
		},
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		slog.Info("server starting", "port", cfg.Port, "env", cfg.Env, "random_source", cfg.RandomSource)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("server forced shutdown", "error", err)
		os.Exit(1)
	}

	slog.Info("server stopped")
}
