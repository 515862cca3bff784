package Controllers

import (
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
)

func parseDoc(t *testing.T, html string) *goquery.Document {
	t.Helper()
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		t.Fatalf("parsing document: %v", err)
	}
	return doc
}

func TestExtractPreviewOpenGraph(t *testing.T) {
	doc := parseDoc(t, `<html><head>
		<title>Fallback</title>
		<meta property="og:title" content=" Campaña de primavera ">
		<meta property="og:description" content="Todo sobre el lanzamiento">
		<meta property="og:image" content="https://cdn.example.com/cover.jpg">
	</head><body></body></html>`)

	preview := ExtractPreview("https://example.com/post", doc)
	if preview.Title != "Campaña de primavera" {
		t.Errorf("title = %q", preview.Title)
	}
	if preview.Description != "Todo sobre el lanzamiento" {
		t.Errorf("description = %q", preview.Description)
	}
	if preview.Image != "https://cdn.example.com/cover.jpg" {
		t.Errorf("image = %q", preview.Image)
	}
	if preview.URL != "https://example.com/post" {
		t.Errorf("url = %q", preview.URL)
	}
}

func TestExtractPreviewFallbacks(t *testing.T) {
	doc := parseDoc(t, `<html><head>
		<title>Título de la página</title>
		<meta name="description" content="Descripción simple">
	</head><body></body></html>`)

	preview := ExtractPreview("https://example.com", doc)
	if preview.Title != "Título de la página" {
		t.Errorf("title fallback = %q", preview.Title)
	}
	if preview.Description != "Descripción simple" {
		t.Errorf("description fallback = %q", preview.Description)
	}
	if preview.Image != "" {
		t.Errorf("image = %q, want empty", preview.Image)
	}
}

func TestExtractPreviewBarePage(t *testing.T) {
	doc := parseDoc(t, `<html><head></head><body><p>nada</p></body></html>`)

	preview := ExtractPreview("https://example.com", doc)
	if preview.Title != "" || preview.Description != "" || preview.Image != "" {
		t.Errorf("bare page produced %+v", preview)
	}
}
