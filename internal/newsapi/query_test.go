package newsapi

import (
	"strings"
	"testing"
	"time"

	"github.com/go-playground/assert/v2"
)

var fixedNow = time.Date(2026, time.October, 19, 12, 0, 0, 0, time.UTC)

func TestUseEverything(t *testing.T) {
	tests := []struct {
		category, search, from, to string
		want                       bool
	}{
		{"politics", "", "", "", true},
		{"politics", "budget", "2026-10-01", "", true},
		{"", "", "2026-10-01", "2026-10-02", true},
		{"sports", "", "2026-10-01", "2026-10-02", true},
		{"", "election", "", "", true},
		{"business", "stocks", "", "", false},
		{"business", "", "", "", false},
		{"", "", "2026-10-01", "", false},
		{"", "", "", "2026-10-02", false},
		{"", "", "", "", false},
	}

	for _, tt := range tests {
		got := UseEverything(tt.category, tt.search, tt.from, tt.to)
		if got != tt.want {
			t.Errorf("UseEverything(%q, %q, %q, %q) = %v, want %v",
				tt.category, tt.search, tt.from, tt.to, got, tt.want)
		}
		assert.Equal(t, got, UseEverything(tt.category, tt.search, tt.from, tt.to))
	}
}

func TestValidDate(t *testing.T) {
	tests := []struct {
		input string
		want  bool
	}{
		{"2024-01-01", true},
		{"2024-02-29", true},
		{"2023-02-29", false},
		{"2024/01/01", false},
		{"2024-1-1", false},
		{"01-01-2024", false},
		{"2024-01-01T00:00:00Z", false},
		{"", false},
		{"latest", false},
	}

	for _, tt := range tests {
		if got := ValidDate(tt.input); got != tt.want {
			t.Errorf("ValidDate(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}
}

func TestClampPageSize(t *testing.T) {
	assert.Equal(t, 100, ClampPageSize(500))
	assert.Equal(t, 1, ClampPageSize(0))
	assert.Equal(t, 1, ClampPageSize(-3))
	assert.Equal(t, 42, ClampPageSize(42))
}

func TestNormalizeLanguage(t *testing.T) {
	assert.Equal(t, "en", NormalizeLanguage(""))
	assert.Equal(t, "en", NormalizeLanguage("eng"))
	assert.Equal(t, "en", NormalizeLanguage("e1"))
	assert.Equal(t, "fr", NormalizeLanguage("fr"))
	assert.Equal(t, "de", NormalizeLanguage("DE"))
}

func TestPoliticsQuery(t *testing.T) {
	q := PoliticsQuery()

	assert.Equal(t, 15, len(strings.Split(q, " OR ")))
	assert.Equal(t, true, strings.HasPrefix(q, "politics OR government"))
}

func TestBuildRequestPolitics(t *testing.T) {
	q := DefaultQuery()
	q.Category = "politics"

	endpoint, params := BuildRequest(q, "us", fixedNow)

	assert.Equal(t, EndpointEverything, endpoint)
	assert.Equal(t, PoliticsQuery(), params.Get("q"))
	assert.Equal(t, "publishedAt", params.Get("sortBy"))
	assert.Equal(t, "2026-10-16", params.Get("from"))
	assert.Equal(t, "2026-10-19", params.Get("to"))
	assert.Equal(t, "50", params.Get("pageSize"))
	assert.Equal(t, "", params.Get("country"))
	assert.Equal(t, false, params.Has("category"))
}

func TestBuildRequestDateRange(t *testing.T) {
	q := DefaultQuery()
	q.From = "2026-09-01"
	q.To = "2026-09-05"

	endpoint, params := BuildRequest(q, "us", fixedNow)

	assert.Equal(t, EndpointEverything, endpoint)
	assert.Equal(t, "latest news", params.Get("q"))
	assert.Equal(t, "2026-09-01", params.Get("from"))
	assert.Equal(t, "2026-09-05", params.Get("to"))
}

func TestBuildRequestSearchWithoutCategory(t *testing.T) {
	q := DefaultQuery()
	q.Search = "artificial intelligence"
	q.Language = "fr"

	endpoint, params := BuildRequest(q, "us", fixedNow)

	assert.Equal(t, EndpointEverything, endpoint)
	assert.Equal(t, "artificial intelligence", params.Get("q"))
	assert.Equal(t, "fr", params.Get("language"))
	assert.Equal(t, "2026-10-16", params.Get("from"))
}

func TestBuildRequestTopHeadlines(t *testing.T) {
	q := DefaultQuery()
	q.Category = "technology"

	endpoint, params := BuildRequest(q, "", fixedNow)

	assert.Equal(t, EndpointTopHeadlines, endpoint)
	assert.Equal(t, "technology", params.Get("category"))
	assert.Equal(t, "us", params.Get("country"))
	assert.Equal(t, "en", params.Get("language"))
	assert.Equal(t, false, params.Has("q"))
	assert.Equal(t, false, params.Has("from"))
	assert.Equal(t, false, params.Has("sortBy"))
}

func TestBuildRequestTopHeadlinesSearchDropsCountry(t *testing.T) {
	q := DefaultQuery()
	q.Category = "business"
	q.Search = "earnings"

	endpoint, params := BuildRequest(q, "gb", fixedNow)

	assert.Equal(t, EndpointTopHeadlines, endpoint)
	assert.Equal(t, "earnings", params.Get("q"))
	assert.Equal(t, "business", params.Get("category"))
	assert.Equal(t, false, params.Has("country"))
}

func TestBuildRequestStripsEmptyValues(t *testing.T) {
	q := Query{From: "2026-10-01"}

	endpoint, params := BuildRequest(q, "us", fixedNow)

	assert.Equal(t, EndpointTopHeadlines, endpoint)
	for key, values := range params {
		for _, v := range values {
			if v == "" {
				t.Errorf("parameter %q has an empty value", key)
			}
		}
	}
	assert.Equal(t, false, params.Has("category"))
	assert.Equal(t, false, params.Has("from"))
	assert.Equal(t, "1", params.Get("pageSize"))
}

func TestBuildRequestClampsPageSize(t *testing.T) {
	q := DefaultQuery()
	q.PageSize = 500

	_, params := BuildRequest(q, "us", fixedNow)

	assert.Equal(t, "100", params.Get("pageSize"))
}
