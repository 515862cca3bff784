package Controllers

import (
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/gofiber/fiber/v2"
)

// LinkPreviewController resolves title/description metadata for the
// reference links stored on content rows.
type LinkPreviewController struct {
	Client *http.Client
}

func NewLinkPreviewController() *LinkPreviewController {
	return &LinkPreviewController{
		Client: &http.Client{Timeout: 10 * time.Second},
	}
}

type PreviewRequest struct {
	URL string `json:"url" validate:"required,url"`
}

type PreviewResponse struct {
	URL         string `json:"url"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Image       string `json:"image,omitempty"`
}

// Preview fetches the page and extracts title, description and og:image
func (l *LinkPreviewController) Preview(ctx *fiber.Ctx) error {
	var input PreviewRequest
	if err := ctx.BodyParser(&input); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}

	parsed, err := url.Parse(input.URL)
	if err != nil || (parsed.Scheme != "http" && parsed.Scheme != "https") {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "URL must be http(s)"})
	}

	resp, err := l.Client.Get(parsed.String())
	if err != nil {
		return ctx.Status(fiber.StatusBadGateway).JSON(fiber.Map{"error": "Could not fetch URL"})
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return ctx.Status(fiber.StatusBadGateway).JSON(fiber.Map{"error": "Remote page returned an error"})
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return ctx.Status(fiber.StatusBadGateway).JSON(fiber.Map{"error": "Could not parse page"})
	}

	return ctx.JSON(ExtractPreview(parsed.String(), doc))
}

// ExtractPreview pulls og:/meta fields out of a parsed document, falling
// back to the <title> tag.
func ExtractPreview(pageURL string, doc *goquery.Document) PreviewResponse {
	preview := PreviewResponse{URL: pageURL}

	if content, ok := doc.Find(`meta[property="og:title"]`).Attr("content"); ok {
		preview.Title = strings.TrimSpace(content)
	}
	if preview.Title == "" {
		preview.Title = strings.TrimSpace(doc.Find("title").First().Text())
	}

	if content, ok := doc.Find(`meta[property="og:description"]`).Attr("content"); ok {
		preview.Description = strings.TrimSpace(content)
	}
	if preview.Description == "" {
		if content, ok := doc.Find(`meta[name="description"]`).Attr("content"); ok {
			preview.Description = strings.TrimSpace(content)
		}
	}

	if content, ok := doc.Find(`meta[property="og:image"]`).Attr("content"); ok {
		preview.Image = strings.TrimSpace(content)
	}

	return preview
}
