package server

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel/trace"

	"fetchpress/internal/newsapi"
)

const serviceName = "FetchPress API"

// NewsFetcher is the part of the NewsAPI client the handlers need
type NewsFetcher interface {
	FetchNews(ctx context.Context, q newsapi.Query) *newsapi.Result
	Status() newsapi.APIStatus
	Configured() bool
}

// ImageEnricher fills in missing article images
type ImageEnricher interface {
	Enrich(ctx context.Context, articles []newsapi.Article) int
}

// NewsHandler serves the news endpoints
type NewsHandler struct {
	fetcher         NewsFetcher
	enricher        ImageEnricher
	defaultPageSize int
}

// NewNewsHandler creates a handler; enricher may be nil to disable image scraping
func NewNewsHandler(fetcher NewsFetcher, enricher ImageEnricher, defaultPageSize int) *NewsHandler {
	return &NewsHandler{
		fetcher:         fetcher,
		enricher:        enricher,
		defaultPageSize: defaultPageSize,
	}
}

// GetNews fetches news for the request's filters.
// The result envelope is always returned with 200; its status field carries failures.
func (h *NewsHandler) GetNews(c *gin.Context) {
	q := h.queryFromRequest(c)

	slog.Info("news request",
		"request_id", requestIDFrom(c),
		"trace_id", trace.SpanContextFromContext(c.Request.Context()).TraceID().String(),
		"category", q.Category,
		"query", q.Search,
		"language", q.Language,
		"page_size", q.PageSize,
	)

	result := h.fetcher.FetchNews(c.Request.Context(), q)

	if result.OK() && h.enricher != nil {
		h.enricher.Enrich(c.Request.Context(), result.Articles)
	}

	c.JSON(http.StatusOK, result)
}

// GetNewsDeprecated keeps the old /news path working
func (h *NewsHandler) GetNewsDeprecated(c *gin.Context) {
	slog.Warn("using deprecated /news endpoint, please use /api/news", "request_id", requestIDFrom(c))
	h.GetNews(c)
}

// GetCategories returns the supported categories
func (h *NewsHandler) GetCategories(c *gin.Context) {
	c.JSON(http.StatusOK, CategoriesResponse{
		Categories: newsapi.Categories(),
		Status:     "success",
	})
}

// GetTest reports whether the backend is ready to fetch news
func (h *NewsHandler) GetTest(c *gin.Context) {
	res := TestResponse{
		Status:           "Backend is working!",
		TestPassed:       true,
		APIKeyConfigured: h.fetcher.Configured(),
		Version:          newsapi.Version,
		Timestamp:        time.Now().Format(time.RFC3339),
	}
	if !res.APIKeyConfigured {
		res.Warning = "NEWS_API_KEY not configured"
	}
	c.JSON(http.StatusOK, res)
}

// GetHealth is the liveness check
func (h *NewsHandler) GetHealth(c *gin.Context) {
	c.JSON(http.StatusOK, HealthResponse{
		Status:    "healthy",
		Service:   serviceName,
		Version:   newsapi.Version,
		Timestamp: time.Now().Format(time.RFC3339),
		Uptime:    "running",
	})
}

// GetStatus returns the NewsAPI client configuration
func (h *NewsHandler) GetStatus(c *gin.Context) {
	c.JSON(http.StatusOK, h.fetcher.Status())
}

func notFound(c *gin.Context) {
	slog.Warn("endpoint not found", "url", c.Request.URL.String(), "request_id", requestIDFrom(c))
	c.JSON(http.StatusNotFound, ErrorResponse{
		Error:        "Endpoint not found",
		RequestedURL: c.Request.URL.String(),
		Status:       http.StatusNotFound,
	})
}

// queryFromRequest reads the news filters from the query string
func (h *NewsHandler) queryFromRequest(c *gin.Context) newsapi.Query {
	category := strings.ToLower(strings.TrimSpace(c.Query("category")))
	if category != "" && !newsapi.IsCategory(category) {
		slog.Warn("invalid category, using general instead", "category", category)
		category = "general"
	}

	language := c.DefaultQuery("language", newsapi.DefaultLanguage)
	if normalized := newsapi.NormalizeLanguage(language); normalized != language {
		slog.Warn("normalizing language code", "language", language, "using", normalized)
		language = normalized
	}

	return newsapi.Query{
		Category: category,
		Search:   strings.TrimSpace(c.Query("q")),
		Language: language,
		From:     strings.TrimSpace(c.Query("from")),
		To:       strings.TrimSpace(c.Query("to")),
		PageSize: getQueryInt("pageSize", h.defaultPageSize, c),
	}
}

func getQueryInt(name string, defaultValue int, c *gin.Context) int {
	param := c.Query(name)

	if param == "" {
		return defaultValue
	}

	parsedValue, err := strconv.Atoi(param)
	if err != nil {
		slog.Warn("invalid query parameter, using default", "param", name, "value", param, "error", err)
		return defaultValue
	}

	return parsedValue
}
