package newsapi

import (
	"net/url"
	"strconv"
	"strings"
	"time"
)

// Endpoint is one of the two upstream NewsAPI modes
type Endpoint string

const (
	EndpointEverything   Endpoint = "everything"
	EndpointTopHeadlines Endpoint = "top-headlines"
)

const (
	dateLayout = "2006-01-02"

	DefaultPageSize = 50
	MinPageSize     = 1
	MaxPageSize     = 100
	DefaultLanguage = "en"
	DefaultCountry  = "us"

	defaultSearch     = "latest news"
	defaultWindowDays = 3
	politicsCategory  = "politics"
)

var politicsKeywords = []string{
	"politics", "government", "election", "congress", "senate",
	"president", "political", "Biden", "Trump", "Congress",
	"Senate", "election", "government", "policy", "vote",
}

// Query holds the caller's parameters for a single fetch.
// Empty strings mean unset; PageSize is always taken as given and clamped.
type Query struct {
	Category string
	Search   string
	Language string
	From     string
	To       string
	PageSize int
}

// DefaultQuery returns a query with the default language and page size
func DefaultQuery() Query {
	return Query{
		Language: DefaultLanguage,
		PageSize: DefaultPageSize,
	}
}

// ValidDate reports whether s is a calendar date in YYYY-MM-DD form
func ValidDate(s string) bool {
	if s == "" {
		return false
	}
	_, err := time.Parse(dateLayout, s)
	return err == nil
}

// UseEverything decides between the broad-search and curated-headlines endpoints.
// Rules are checked in order; the first match wins.
func UseEverything(category, search, from, to string) bool {
	switch {
	case category == politicsCategory:
		return true
	case from != "" && to != "":
		return true
	case search != "" && category == "":
		return true
	default:
		return false
	}
}

// PoliticsQuery returns the keyword disjunction used for the politics category
func PoliticsQuery() string {
	return strings.Join(politicsKeywords, " OR ")
}

// ClampPageSize forces n into [MinPageSize, MaxPageSize]
func ClampPageSize(n int) int {
	return min(max(MinPageSize, n), MaxPageSize)
}

// NormalizeLanguage returns lang if it is a two-letter code, otherwise the default
func NormalizeLanguage(lang string) string {
	if len(lang) != 2 {
		return DefaultLanguage
	}
	for _, r := range lang {
		if (r < 'a' || r > 'z') && (r < 'A' || r > 'Z') {
			return DefaultLanguage
		}
	}
	return strings.ToLower(lang)
}

// normalized returns a copy of q with page size and language forced into range
func (q Query) normalized() Query {
	q.PageSize = ClampPageSize(q.PageSize)
	q.Language = NormalizeLanguage(q.Language)
	return q
}

// defaultDateRange returns the window of the last few days ending at now
func defaultDateRange(now time.Time) (string, string) {
	from := now.AddDate(0, 0, -defaultWindowDays)
	return from.Format(dateLayout), now.Format(dateLayout)
}

// BuildRequest selects the endpoint for q and assembles its query parameters.
// country is used for the headlines endpoint; empty values are never emitted.
func BuildRequest(q Query, country string, now time.Time) (Endpoint, url.Values) {
	q = q.normalized()
	if country == "" {
		country = DefaultCountry
	}

	params := map[string]string{
		"language": q.Language,
		"pageSize": strconv.Itoa(q.PageSize),
	}

	endpoint := EndpointTopHeadlines
	if UseEverything(q.Category, q.Search, q.From, q.To) {
		endpoint = EndpointEverything
		params["sortBy"] = "publishedAt"

		switch {
		case q.Category == politicsCategory:
			params["q"] = PoliticsQuery()
		case q.Search != "":
			params["q"] = q.Search
		default:
			params["q"] = defaultSearch
		}

		if ValidDate(q.From) && ValidDate(q.To) {
			params["from"], params["to"] = q.From, q.To
		} else {
			params["from"], params["to"] = defaultDateRange(now)
		}
	} else {
		params["country"] = country
		params["category"] = q.Category

		// country and q cannot be combined on top-headlines
		if q.Search != "" {
			params["q"] = q.Search
			delete(params, "country")
		}
	}

	values := url.Values{}
	for key, value := range params {
		if value != "" {
			values.Set(key, value)
		}
	}
	return endpoint, values
}
