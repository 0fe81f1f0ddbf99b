package server

import (
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/trace"

	"fetchpress/internal/config"
	"fetchpress/internal/enrich"
	"fetchpress/internal/newsapi"
)

const (
	requestIDHeader = "X-Request-ID"
	requestIDKey    = "request_id"

	tracerName = "fetchpress/internal/server"
)

// NewRouter builds the application router from configuration
func NewRouter(cfg *config.Config) *gin.Engine {
	var enricher ImageEnricher
	if cfg.EnrichImages {
		enricher = enrich.NewImageEnricher(cfg.EnrichMaxArticles, cfg.Timeout)
	}

	handler := NewNewsHandler(newsapi.NewClient(cfg), enricher, cfg.DefaultPageSize)
	return setupRouter(cfg.AllowedOrigins, handler)
}

func setupRouter(allowedOrigins []string, h *NewsHandler) *gin.Engine {
	r := gin.New()
	r.Use(gin.Logger(), gin.Recovery(), requestID(), tracing())

	// Configure CORS
	corsConfig := cors.DefaultConfig()
	if len(allowedOrigins) > 0 {
		corsConfig.AllowOrigins = allowedOrigins
	} else {
		corsConfig.AllowAllOrigins = true
	}
	corsConfig.AllowMethods = []string{"GET", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "Accept", requestIDHeader}
	corsConfig.ExposeHeaders = []string{requestIDHeader}
	r.Use(cors.New(corsConfig))

	api := r.Group("/api")
	{
		api.GET("/news", h.GetNews)
		api.GET("/categories", h.GetCategories)
		api.GET("/test", h.GetTest)
		api.GET("/health", h.GetHealth)
		api.GET("/status", h.GetStatus)
	}

	// Backward compatibility
	r.GET("/news", h.GetNewsDeprecated)

	r.NoRoute(notFound)

	return r
}

// requestID tags every request with an ID, reusing the caller's when it is a UUID
func requestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(requestIDHeader)
		if _, err := uuid.Parse(id); err != nil {
			id = uuid.NewString()
		}
		c.Set(requestIDKey, id)
		c.Header(requestIDHeader, id)
		c.Next()
	}
}

func requestIDFrom(c *gin.Context) string {
	return c.GetString(requestIDKey)
}

// tracing starts a server span per request, continuing any trace context the
// caller sent, so the outbound NewsAPI span becomes its child
func tracing() gin.HandlerFunc {
	tracer := otel.Tracer(tracerName)
	return func(c *gin.Context) {
		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}

		ctx := otel.GetTextMapPropagator().Extract(c.Request.Context(), propagation.HeaderCarrier(c.Request.Header))
		ctx, span := tracer.Start(ctx, c.Request.Method+" "+route,
			trace.WithSpanKind(trace.SpanKindServer),
			trace.WithAttributes(
				attribute.String("http.method", c.Request.Method),
				attribute.String("http.route", route),
				attribute.String("request_id", requestIDFrom(c)),
			),
		)
		defer span.End()

		c.Request = c.Request.WithContext(ctx)
		c.Next()

		status := c.Writer.Status()
		span.SetAttributes(attribute.Int("http.status_code", status))
		if status >= http.StatusInternalServerError {
			span.SetStatus(codes.Error, http.StatusText(status))
		}
	}
}
