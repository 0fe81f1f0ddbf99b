package newsapi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
)

const (
	helpGetKey    = "Get your free API key from https://newsapi.org/"
	helpVerifyKey = "Verify your API key at https://newsapi.org/account"
)

type articlesPayload struct {
	Articles []Article `json:"articles"`
}

type errorPayload struct {
	Message string `json:"message"`
}

// FetchNews fetches articles for q and always returns a well-formed result.
// Failures are reported through Result.Status, never as errors or panics.
func (c *Client) FetchNews(ctx context.Context, q Query) *Result {
	if c.apiKey == "" {
		slog.Error("NEWS_API_KEY not configured")
		result := errorResult(StatusConfigurationError,
			"News API key not configured. Please add NEWS_API_KEY to your .env file")
		result.Help = helpGetKey
		return result
	}

	q = q.normalized()

	for _, date := range []string{q.From, q.To} {
		if date != "" && !ValidDate(date) {
			slog.Warn("invalid date format", "date", date)
			return errorResult(StatusValidationError, "Invalid date format. Use YYYY-MM-DD format")
		}
	}

	endpoint, params := BuildRequest(q, c.country, c.now())

	resp, err := c.get(ctx, endpoint, params)
	if err != nil {
		return failureResult(err)
	}

	slog.Debug("newsapi responded", "endpoint", endpoint, "status", resp.StatusCode)

	return c.normalize(resp, endpoint, q)
}

// normalize turns an upstream response into a result
func (c *Client) normalize(resp *response, endpoint Endpoint, q Query) *Result {
	switch resp.StatusCode {
	case http.StatusOK:
		var payload articlesPayload
		if err := json.Unmarshal(resp.Body, &payload); err != nil {
			return failureResult(fmt.Errorf("decoding response: %w", err))
		}

		filtered := FilterValid(payload.Articles)
		slog.Info("fetched articles",
			"endpoint", endpoint, "valid", len(filtered), "total", len(payload.Articles))

		total := len(filtered)
		return &Result{
			Status:       StatusOK,
			TotalResults: &total,
			Articles:     filtered,
			Metadata:     newMetadata(endpoint, q, len(payload.Articles), len(filtered), c.now()),
		}

	case http.StatusTooManyRequests:
		slog.Warn("newsapi rate limit exceeded")
		result := errorResult(StatusRateLimited, "Rate limit exceeded. Please try again later.")
		result.RetryAfter = resp.Header.Get("Retry-After")
		if result.RetryAfter == "" {
			result.RetryAfter = "unknown"
		}
		return result

	case http.StatusUnauthorized:
		slog.Error("newsapi rejected the API key")
		result := errorResult(StatusUnauthorized, "Invalid API key. Please check your NEWS_API_KEY.")
		result.Help = helpVerifyKey
		return result

	default:
		slog.Error("newsapi error", "status", resp.StatusCode)
		message := fmt.Sprintf("HTTP %d error", resp.StatusCode)

		var payload errorPayload
		if json.Unmarshal(resp.Body, &payload) == nil && payload.Message != "" {
			message = payload.Message
		}

		result := errorResult(StatusAPIError, "API error: "+message)
		result.StatusCode = resp.StatusCode
		return result
	}
}

// failureResult maps an error from the request path to a result
func failureResult(err error) *Result {
	switch {
	case errors.Is(err, ErrTimeout):
		slog.Error("newsapi request timed out after retries", "error", err)
		return errorResult(StatusTimeout, "Request timeout. Please try again later.")
	case errors.Is(err, ErrConnection):
		slog.Error("newsapi connection failed after retries", "error", err)
		return errorResult(StatusConnectionError, "Connection error. Please check your internet connection.")
	case errors.Is(err, ErrNetwork):
		slog.Error("newsapi network error", "error", err)
		return errorResult(StatusNetworkError, "Network error: "+err.Error())
	default:
		slog.Error("unexpected error fetching news", "error", err)
		return errorResult(StatusUnexpectedError, "Unexpected error: "+err.Error())
	}
}
