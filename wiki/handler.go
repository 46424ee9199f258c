package wiki

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"strings"
	"sync"

	"github.com/PuerkitoBio/goquery"
	"github.com/labstack/echo/v4"
)

const (
	defaultLang  = "kk"
	defaultLimit = 5
	maxLimit     = 20
)

// Handler handles Wikipedia proxy HTTP requests.
type Handler struct {
	client *Client
}

// NewHandler creates a new Wikipedia proxy handler.
func NewHandler(client *Client) *Handler {
	return &Handler{client: client}
}

// RegisterRoutes registers Wikipedia proxy routes.
func (h *Handler) RegisterRoutes(e *echo.Echo) {
	e.POST("/api/web", h.Search)
}

// SearchRequest is the proxy request body.
type SearchRequest struct {
	Query string `json:"query"`
	Lang  string `json:"lang"`
	Limit int    `json:"limit"`
}

// Result is one enriched search hit. Extract and Thumbnail are null when the
// summary fetch for that page failed; Error then notes why.
type Result struct {
	Title     string  `json:"title"`
	PageURL   string  `json:"pageUrl"`
	Snippet   string  `json:"snippet"`
	Extract   *string `json:"extract"`
	Thumbnail *string `json:"thumbnail"`
	Error     string  `json:"error,omitempty"`
}

// SearchResponse is the proxy response body.
type SearchResponse struct {
	OK      bool     `json:"ok"`
	Query   string   `json:"query"`
	Lang    string   `json:"lang"`
	Results []Result `json:"results"`
}

// Search handles a proxied Wikipedia search.
// POST /api/web
func (h *Handler) Search(c echo.Context) error {
	ctx := c.Request().Context()

	var req SearchRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid request body"})
	}

	query := strings.TrimSpace(req.Query)
	if query == "" {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "query required"})
	}

	lang := strings.ToLower(req.Lang)
	if lang == "" {
		lang = defaultLang
	}

	limit := req.Limit
	if limit == 0 {
		limit = defaultLimit
	}
	if limit < 1 {
		limit = 1
	}
	if limit > maxLimit {
		limit = maxLimit
	}

	hits, err := h.client.Search(ctx, lang, query, limit)
	if err != nil {
		var svcErr *ServiceError
		if errors.As(err, &svcErr) {
			log.Printf("ERROR: wikipedia search failed with status %d", svcErr.Status)
			return c.JSON(http.StatusBadGateway, map[string]interface{}{
				"error": fmt.Sprintf("wikipedia search failed: %d", svcErr.Status),
				"body":  svcErr.Body,
			})
		}
		log.Printf("ERROR: wikipedia search failed: %v", err)
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
	}

	results := h.enrich(ctx, lang, hits)

	return c.JSON(http.StatusOK, SearchResponse{
		OK:      true,
		Query:   query,
		Lang:    lang,
		Results: results,
	})
}

// enrich fetches the page summary for every hit concurrently. Each fetch is
// fault-isolated: a failed summary leaves its hit in place with null
// extract/thumbnail and a per-item error note. Output order matches hit order.
func (h *Handler) enrich(ctx context.Context, lang string, hits []SearchHit) []Result {
	results := make([]Result, len(hits))

	var wg sync.WaitGroup
	for i, hit := range hits {
		wg.Add(1)
		go func(i int, hit SearchHit) {
			defer wg.Done()

			r := Result{
				Title:   hit.Title,
				PageURL: pageURL(lang, hit.Title),
				Snippet: stripMarkup(hit.Snippet),
			}

			summary, err := h.client.Summary(ctx, lang, hit.Title)
			if err != nil {
				var svcErr *ServiceError
				if errors.As(err, &svcErr) {
					r.Error = fmt.Sprintf("summary fetch %d", svcErr.Status)
				} else {
					r.Error = err.Error()
				}
				log.Printf("WARN: summary fetch failed for %q: %v", hit.Title, err)
				results[i] = r
				return
			}

			if summary.Extract != "" {
				extract := summary.Extract
				r.Extract = &extract
			}
			if summary.Thumbnail.Source != "" {
				thumbnail := summary.Thumbnail.Source
				r.Thumbnail = &thumbnail
			}
			results[i] = r
		}(i, hit)
	}
	wg.Wait()

	return results
}

// pageURL builds the canonical article URL for a title.
func pageURL(lang, title string) string {
	return "https://" + lang + ".wikipedia.org/wiki/" + url.PathEscape(strings.ReplaceAll(title, " ", "_"))
}

// stripMarkup removes the inline HTML the search API embeds in snippets.
func stripMarkup(snippet string) string {
	if snippet == "" {
		return ""
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(snippet))
	if err != nil {
		return snippet
	}
	return doc.Text()
}
