// Package enrich fills in article images that NewsAPI did not provide by
// reading them from the article page itself.
package enrich

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/gocolly/colly/v2"

	"fetchpress/internal/newsapi"
)

const userAgent = "Mozilla/5.0 (compatible; FetchPress/1.1; +https://newsapi.org)"

// ImageEnricher scrapes preview images for articles without one
type ImageEnricher struct {
	maxArticles int
	timeout     time.Duration
}

// NewImageEnricher creates an enricher that visits at most maxArticles pages per call
func NewImageEnricher(maxArticles int, timeout time.Duration) *ImageEnricher {
	return &ImageEnricher{
		maxArticles: maxArticles,
		timeout:     timeout,
	}
}

// Enrich sets URLToImage on articles that lack it and returns how many were filled.
// Pages are visited one after another; failures leave the article untouched.
func (e *ImageEnricher) Enrich(ctx context.Context, articles []newsapi.Article) int {
	filled, visited := 0, 0
	for i := range articles {
		if articles[i].URLToImage != "" {
			continue
		}
		if visited >= e.maxArticles || ctx.Err() != nil {
			break
		}
		visited++

		imageURL, err := e.scrapeImage(ctx, articles[i].URL)
		if err != nil {
			slog.Warn("error scraping image", "url", articles[i].URL, "error", err)
			continue
		}
		articles[i].URLToImage = imageURL
		filled++
	}

	if visited > 0 {
		slog.Info("image enrichment finished", "visited", visited, "filled", filled)
	}
	return filled
}

// scrapeImage visits pageURL and returns the best preview image it can find
func (e *ImageEnricher) scrapeImage(ctx context.Context, pageURL string) (string, error) {
	c := colly.NewCollector(
		colly.UserAgent(userAgent),
		colly.MaxDepth(1),
		colly.StdlibContext(ctx),
	)
	c.SetRequestTimeout(e.timeout)

	var imageURL string
	c.OnHTML("html", func(el *colly.HTMLElement) {
		if src := findImage(el.DOM); src != "" && imageURL == "" {
			imageURL = el.Request.AbsoluteURL(src)
		}
	})

	c.OnError(func(r *colly.Response, err error) {
		slog.Debug("image page request failed", "url", pageURL, "status", r.StatusCode, "error", err)
	})

	if err := c.Visit(pageURL); err != nil {
		return "", fmt.Errorf("failed to visit: %w", err)
	}
	c.Wait()

	if imageURL == "" {
		return "", fmt.Errorf("no image found on page: %s", pageURL)
	}
	return imageURL, nil
}

// findImage looks for a preview image in the document, most specific source first
func findImage(doc *goquery.Selection) string {
	metaSelectors := []string{
		"meta[property='og:image']",
		"meta[name='twitter:image']",
	}
	for _, selector := range metaSelectors {
		if content, exists := doc.Find(selector).First().Attr("content"); exists && strings.TrimSpace(content) != "" {
			return strings.TrimSpace(content)
		}
	}

	if srcset, exists := doc.Find("picture img[data-srcset]").First().Attr("data-srcset"); exists {
		if src := firstSrcsetEntry(srcset); src != "" {
			return src
		}
	}

	if src, exists := doc.Find("article img[src]").First().Attr("src"); exists && src != "" {
		return src
	}

	return ""
}

// firstSrcsetEntry returns the URL of the first candidate in a srcset value
func firstSrcsetEntry(srcset string) string {
	first := strings.TrimSpace(strings.Split(srcset, ",")[0])
	if first == "" {
		return ""
	}
	return strings.Fields(first)[0]
}
