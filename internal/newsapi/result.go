package newsapi

import "time"

// Status classifies the outcome of a fetch
type Status string

const (
	StatusOK                 Status = "ok"
	StatusConfigurationError Status = "configuration_error"
	StatusValidationError    Status = "validation_error"
	StatusRateLimited        Status = "rate_limited"
	StatusUnauthorized       Status = "unauthorized"
	StatusAPIError           Status = "api_error"
	StatusTimeout            Status = "timeout"
	StatusConnectionError    Status = "connection_error"
	StatusNetworkError       Status = "network_error"
	StatusUnexpectedError    Status = "unexpected_error"
)

// Metadata describes how a successful result was produced
type Metadata struct {
	SourceEndpoint Endpoint `json:"source_endpoint"`
	RawCount       int      `json:"raw_count"`
	FilteredCount  int      `json:"filtered_count"`
	Language       string   `json:"language"`
	Category       string   `json:"category"`
	FetchTime      string   `json:"fetch_time"`
}

// Result is the envelope returned for every fetch, successful or not.
// Articles is never nil so it always serializes as a JSON array.
// TotalResults is set on every ok result, including a count of zero.
type Result struct {
	Status       Status    `json:"status"`
	TotalResults *int      `json:"totalResults,omitempty"`
	Articles     []Article `json:"articles"`
	Metadata     *Metadata `json:"metadata,omitempty"`
	Error        string    `json:"error,omitempty"`
	Help         string    `json:"help,omitempty"`
	RetryAfter   string    `json:"retry_after,omitempty"`
	StatusCode   int       `json:"status_code,omitempty"`
}

// OK reports whether the fetch succeeded
func (r *Result) OK() bool {
	return r.Status == StatusOK
}

func errorResult(status Status, message string) *Result {
	return &Result{
		Status:   status,
		Articles: []Article{},
		Error:    message,
	}
}

func newMetadata(endpoint Endpoint, q Query, raw, filtered int, now time.Time) *Metadata {
	category := q.Category
	if category == "" {
		category = "all"
	}
	return &Metadata{
		SourceEndpoint: endpoint,
		RawCount:       raw,
		FilteredCount:  filtered,
		Language:       q.Language,
		Category:       category,
		FetchTime:      now.Format(time.RFC3339),
	}
}
