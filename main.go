package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"fetchpress/internal/config"
	"fetchpress/internal/newsapi"
	"fetchpress/internal/server"
	"fetchpress/internal/telemetry"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	setupLogger(cfg.Debug)
	gin.SetMode(cfg.GinMode)

	shutdownTracing, err := telemetry.Setup(cfg.TraceExporter, newsapi.Version, os.Stdout)
	if err != nil {
		log.Fatalf("Failed to set up tracing: %v", err)
	}

	if cfg.APIKeyConfigured() {
		slog.Info("NEWS_API_KEY is configured")
	} else {
		slog.Warn("NEWS_API_KEY is not configured, news requests will return configuration_error")
	}

	httpServer := &http.Server{
		Addr:         cfg.Addr(),
		Handler:      server.NewRouter(cfg),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 2 * time.Minute,
		IdleTimeout:  60 * time.Second,
	}

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		slog.Info("starting FetchPress API server", "addr", cfg.Addr(), "base_url", cfg.BaseURL)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("Server failed to start: %v", err)
		}
	}()

	<-sigChan
	slog.Info("shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		slog.Error("server shutdown error", "error", err)
	}
	if err := shutdownTracing(shutdownCtx); err != nil {
		slog.Error("tracer shutdown error", "error", err)
	}

	slog.Info("server stopped")
}

func setupLogger(debug bool) {
	var handler slog.Handler
	if debug {
		handler = slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug})
	} else {
		handler = slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo})
	}
	slog.SetDefault(slog.New(handler))
}
