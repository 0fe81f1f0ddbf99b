package newsapi

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"net/url"
	"syscall"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"fetchpress/internal/config"
)

var (
	// ErrTimeout is returned when every attempt timed out
	ErrTimeout = errors.New("request timeout")
	// ErrConnection is returned when every attempt failed to connect
	ErrConnection = errors.New("connection error")
	// ErrNetwork covers transport failures that are not worth retrying
	ErrNetwork = errors.New("network error")
)

const maxBodySize = 10 << 20

// Client talks to the NewsAPI service.
// It is safe for concurrent use; nothing in it changes after construction.
type Client struct {
	apiKey     string
	baseURL    string
	country    string
	timeout    time.Duration
	maxRetries int
	retryDelay time.Duration
	httpClient *http.Client
	now        func() time.Time
}

// NewClient creates a NewsAPI client from the application configuration
func NewClient(cfg *config.Config) *Client {
	return &Client{
		apiKey:     cfg.NewsAPIKey,
		baseURL:    cfg.BaseURL,
		country:    cfg.Country,
		timeout:    cfg.Timeout,
		maxRetries: cfg.MaxRetries,
		retryDelay: cfg.RetryDelay,
		httpClient: newHTTPClient(cfg.NewsAPIKey, cfg.Timeout, http.DefaultTransport),
		now:        time.Now,
	}
}

// newHTTPClient traces every request and adds the key below the tracing
// layer, so span attributes only ever see the URL without it.
func newHTTPClient(apiKey string, timeout time.Duration, base http.RoundTripper) *http.Client {
	return &http.Client{
		Timeout: timeout,
		Transport: otelhttp.NewTransport(
			&apiKeyTransport{apiKey: apiKey, base: base},
			otelhttp.WithSpanNameFormatter(func(_ string, r *http.Request) string {
				return "newsapi " + r.URL.Path
			}),
		),
	}
}

type apiKeyTransport struct {
	apiKey string
	base   http.RoundTripper
}

func (t *apiKeyTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	out := req.Clone(req.Context())
	query := out.URL.Query()
	query.Set("apiKey", t.apiKey)
	out.URL.RawQuery = query.Encode()
	return t.base.RoundTrip(out)
}

// response is an upstream reply with its body fully read
type response struct {
	StatusCode int
	Header     http.Header
	Body       []byte
}

// get performs the GET request and reads the whole body, retrying timeouts and
// connection failures in either step.
// The returned error wraps ErrTimeout, ErrConnection or ErrNetwork when the
// transport failed; HTTP error statuses are returned as responses.
func (c *Client) get(ctx context.Context, endpoint Endpoint, params url.Values) (*response, error) {
	reqURL := c.baseURL + "/" + string(endpoint) + "?" + params.Encode()

	for attempt := 0; ; attempt++ {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
		if err != nil {
			return nil, fmt.Errorf("creating request: %w", err)
		}

		slog.Debug("requesting newsapi", "endpoint", endpoint, "params", params.Encode(), "attempt", attempt+1)

		resp, err := c.do(req)
		if err == nil {
			return resp, nil
		}

		kind := classifyError(err)
		cause := stripURL(err)
		if kind == ErrNetwork || attempt >= c.maxRetries {
			return nil, fmt.Errorf("%w after %d attempt(s): %w", kind, attempt+1, cause)
		}

		slog.Warn("newsapi request failed, retrying",
			"endpoint", endpoint, "error", cause, "attempt", attempt+1, "delay", c.retryDelay)

		if err := c.wait(ctx); err != nil {
			return nil, fmt.Errorf("%w after %d attempt(s): %w", kind, attempt+1, err)
		}
	}
}

// do sends req and reads the body under the same client timeout
func (c *Client) do(req *http.Request) (*response, error) {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return nil, fmt.Errorf("reading response body: %w", err)
	}

	return &response{
		StatusCode: resp.StatusCode,
		Header:     resp.Header,
		Body:       body,
	}, nil
}

func (c *Client) wait(ctx context.Context) error {
	if c.retryDelay <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(c.retryDelay)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// classifyError maps a transport error to ErrTimeout, ErrConnection or ErrNetwork
func classifyError(err error) error {
	var netErr net.Error
	if errors.Is(err, context.DeadlineExceeded) || (errors.As(err, &netErr) && netErr.Timeout()) {
		return ErrTimeout
	}

	var opErr *net.OpError
	var dnsErr *net.DNSError
	switch {
	case errors.As(err, &opErr), errors.As(err, &dnsErr):
		return ErrConnection
	case errors.Is(err, syscall.ECONNREFUSED), errors.Is(err, syscall.ECONNRESET):
		return ErrConnection
	case errors.Is(err, io.EOF), errors.Is(err, io.ErrUnexpectedEOF):
		return ErrConnection
	}
	return ErrNetwork
}

// stripURL drops the request URL from transport errors so the key never leaks
func stripURL(err error) error {
	var urlErr *url.Error
	if errors.As(err, &urlErr) {
		return urlErr.Err
	}
	return err
}
