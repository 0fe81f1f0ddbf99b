package enrich

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/go-playground/assert/v2"

	"fetchpress/internal/newsapi"
)

func parse(t *testing.T, html string) *goquery.Selection {
	t.Helper()
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		t.Fatalf("parsing html: %v", err)
	}
	return doc.Selection
}

func TestFindImage(t *testing.T) {
	tests := []struct {
		name string
		html string
		want string
	}{
		{
			"open graph wins",
			`<html><head><meta property="og:image" content="https://cdn.example.com/og.jpg"><meta name="twitter:image" content="https://cdn.example.com/tw.jpg"></head></html>`,
			"https://cdn.example.com/og.jpg",
		},
		{
			"twitter card fallback",
			`<html><head><meta name="twitter:image" content=" https://cdn.example.com/tw.jpg "></head></html>`,
			"https://cdn.example.com/tw.jpg",
		},
		{
			"picture srcset",
			`<html><body><picture><img data-srcset="/img/a-640.jpg 640w, /img/a-1280.jpg 1280w"></picture></body></html>`,
			"/img/a-640.jpg",
		},
		{
			"article body image",
			`<html><body><article><p>text</p><img src="/img/body.png"></article></body></html>`,
			"/img/body.png",
		},
		{
			"nothing found",
			`<html><body><img src="/logo.png"></body></html>`,
			"",
		},
	}

	for _, tt := range tests {
		if got := findImage(parse(t, tt.html)); got != tt.want {
			t.Errorf("%s: findImage() = %q, want %q", tt.name, got, tt.want)
		}
	}
}

func TestEnrich(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/with-og":
			w.Header().Set("Content-Type", "text/html")
			io.WriteString(w, `<html><head><meta property="og:image" content="/images/lead.jpg"></head><body></body></html>`)
		case "/no-image":
			w.Header().Set("Content-Type", "text/html")
			io.WriteString(w, `<html><body><p>nothing here</p></body></html>`)
		default:
			http.NotFound(w, r)
		}
	}))
	defer srv.Close()

	articles := []newsapi.Article{
		{URL: srv.URL + "/with-og"},
		{URL: srv.URL + "/already", URLToImage: "https://cdn.example.com/kept.jpg"},
		{URL: srv.URL + "/no-image"},
		{URL: srv.URL + "/missing"},
	}

	filled := NewImageEnricher(5, 2*time.Second).Enrich(context.Background(), articles)

	assert.Equal(t, 1, filled)
	assert.Equal(t, srv.URL+"/images/lead.jpg", articles[0].URLToImage)
	assert.Equal(t, "https://cdn.example.com/kept.jpg", articles[1].URLToImage)
	assert.Equal(t, "", articles[2].URLToImage)
	assert.Equal(t, "", articles[3].URLToImage)
}

func TestEnrichRespectsLimit(t *testing.T) {
	var hits int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits++
		w.Header().Set("Content-Type", "text/html")
		io.WriteString(w, `<html><head><meta property="og:image" content="https://cdn.example.com/x.jpg"></head></html>`)
	}))
	defer srv.Close()

	articles := []newsapi.Article{
		{URL: srv.URL + "/a"},
		{URL: srv.URL + "/b"},
		{URL: srv.URL + "/c"},
	}

	filled := NewImageEnricher(2, 2*time.Second).Enrich(context.Background(), articles)

	assert.Equal(t, 2, filled)
	assert.Equal(t, 2, hits)
	assert.Equal(t, "", articles[2].URLToImage)
}
