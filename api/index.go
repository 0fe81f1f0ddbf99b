package handler

import (
	"log/slog"
	"net/http"
	"os"

	"github.com/gin-gonic/gin"

	"fetchpress/internal/config"
	"fetchpress/internal/newsapi"
	"fetchpress/internal/server"
	"fetchpress/internal/telemetry"
)

var (
	router  *gin.Engine
	initErr error
)

func init() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		initErr = err
		return
	}
	gin.SetMode(cfg.GinMode)
	if _, err := telemetry.Setup(cfg.TraceExporter, newsapi.Version, os.Stdout); err != nil {
		slog.Error("failed to set up tracing", "error", err)
		initErr = err
		return
	}
	router = server.NewRouter(cfg)
}

// Handler is the entry point for Vercel
func Handler(w http.ResponseWriter, r *http.Request) {
	if initErr != nil {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(`{"error":"server misconfigured","status":500}`))
		return
	}
	router.ServeHTTP(w, r)
}
