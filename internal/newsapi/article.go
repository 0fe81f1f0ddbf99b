package newsapi

import "unicode/utf8"

const removedMarker = "[Removed]"

const (
	minTitleLength       = 10
	minDescriptionLength = 20
)

// Source identifies the publisher of an article
type Source struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Article represents a single article as returned by NewsAPI
type Article struct {
	Source      *Source `json:"source"`
	Author      string  `json:"author"`
	Title       string  `json:"title"`
	Description string  `json:"description"`
	URL         string  `json:"url"`
	URLToImage  string  `json:"urlToImage"`
	PublishedAt string  `json:"publishedAt"`
	Content     string  `json:"content"`
}

// IsValid reports whether the article is complete enough to show.
// Removed articles and ones with very short titles or descriptions are rejected.
// Any source object counts as present, even one without a name.
func (a Article) IsValid() bool {
	if a.Title == "" || a.Title == removedMarker {
		return false
	}
	if a.Description == "" || a.Description == removedMarker {
		return false
	}
	if a.URL == "" || a.Source == nil {
		return false
	}
	return utf8.RuneCountInString(a.Title) > minTitleLength &&
		utf8.RuneCountInString(a.Description) > minDescriptionLength
}

// FilterValid returns the valid articles in their original order.
// The result is never nil.
func FilterValid(articles []Article) []Article {
	valid := make([]Article, 0, len(articles))
	for _, article := range articles {
		if article.IsValid() {
			valid = append(valid, article)
		}
	}
	return valid
}
