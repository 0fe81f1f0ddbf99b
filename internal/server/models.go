package server

// CategoriesResponse represents the API response for available categories
type CategoriesResponse struct {
	Categories []string `json:"categories"`
	Status     string   `json:"status"`
}

// TestResponse represents the backend self-check response
type TestResponse struct {
	Status           string `json:"status"`
	TestPassed       bool   `json:"test_passed"`
	APIKeyConfigured bool   `json:"api_key_configured"`
	Version          string `json:"version"`
	Timestamp        string `json:"timestamp"`
	Warning          string `json:"warning,omitempty"`
}

// HealthResponse represents the health check response
type HealthResponse struct {
	Status    string `json:"status"`
	Service   string `json:"service"`
	Version   string `json:"version"`
	Timestamp string `json:"timestamp"`
	Uptime    string `json:"uptime"`
}

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error        string `json:"error"`
	RequestedURL string `json:"requested_url,omitempty"`
	Status       int    `json:"status"`
}
