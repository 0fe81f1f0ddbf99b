package newsapi

// Version is reported by the status and health endpoints
const Version = "1.1.0"

// Language is a language code supported by the frontend
type Language struct {
	Code string `json:"code"`
	Name string `json:"name"`
}

var categories = []string{
	"business", "entertainment", "general", "health",
	"science", "sports", "technology", "politics",
}

var languages = []Language{
	{Code: "en", Name: "English"},
	{Code: "es", Name: "Spanish"},
	{Code: "fr", Name: "French"},
	{Code: "de", Name: "German"},
	{Code: "it", Name: "Italian"},
	{Code: "pt", Name: "Portuguese"},
	{Code: "ru", Name: "Russian"},
	{Code: "zh", Name: "Chinese"},
}

// Categories returns the news categories the service accepts
func Categories() []string {
	return append([]string(nil), categories...)
}

// IsCategory reports whether name is a known category
func IsCategory(name string) bool {
	for _, c := range categories {
		if c == name {
			return true
		}
	}
	return false
}

// Languages returns the supported languages
func Languages() []Language {
	return append([]Language(nil), languages...)
}

// APIStatus summarizes the client configuration
type APIStatus struct {
	APIKeyConfigured    bool     `json:"api_key_configured"`
	BaseURL             string   `json:"base_url"`
	DefaultTimeout      float64  `json:"default_timeout"`
	MaxRetries          int      `json:"max_retries"`
	SupportedCategories []string `json:"supported_categories"`
	SupportedLanguages  []string `json:"supported_languages"`
	Version             string   `json:"version"`
}

// Status reports the client's configuration without exposing the key
func (c *Client) Status() APIStatus {
	codes := make([]string, 0, len(languages))
	for _, l := range languages {
		codes = append(codes, l.Code)
	}
	return APIStatus{
		APIKeyConfigured:    c.apiKey != "",
		BaseURL:             c.baseURL,
		DefaultTimeout:      c.timeout.Seconds(),
		MaxRetries:          c.maxRetries,
		SupportedCategories: Categories(),
		SupportedLanguages:  codes,
		Version:             Version,
	}
}

// Configured reports whether the client has a credential
func (c *Client) Configured() bool {
	return c.apiKey != ""
}
