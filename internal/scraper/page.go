// Package scraper fetches recipe pages and extracts either structured
// schema.org markup or cleaned page text for the oracle fallback.
package scraper

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"golang.org/x/net/html"

	"recipe_fetcher/internal/config"
)

// Elements whose subtrees carry no recipe text.
var skippedElements = map[string]struct{}{
	"script":   {},
	"style":    {},
	"noscript": {},
	"nav":      {},
	"header":   {},
	"footer":   {},
	"form":     {},
	"iframe":   {},
	"svg":      {},
}

type PageFetcher struct {
	client *http.Client
	cfg    config.ScraperConfig
	logger *slog.Logger
}

func NewPageFetcher(cfg config.ScraperConfig, logger *slog.Logger) *PageFetcher {
	return &PageFetcher{
		client: &http.Client{Timeout: cfg.Timeout},
		cfg:    cfg,
		logger: logger.With("component", "page_fetcher"),
	}
}

// Document fetches and parses one page. The body read is capped so a
// misbehaving site cannot balloon memory.
func (f *PageFetcher) Document(ctx context.Context, pageURL string) (*html.Node, error) {
	parsed, err := url.Parse(pageURL)
	if err != nil {
		return nil, fmt.Errorf("invalid url: %w", err)
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return nil, fmt.Errorf("url must be http or https, got %q", parsed.Scheme)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("User-Agent", f.cfg.UserAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml")

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch page: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch page: status %d", resp.StatusCode)
	}

	doc, err := html.Parse(io.LimitReader(resp.Body, f.cfg.MaxBodyBytes))
	if err != nil {
		return nil, fmt.Errorf("parse html: %w", err)
	}

	return doc, nil
}

// Text fetches a page and returns its cleaned text, preferring a
// recipe-looking container over the whole document when one exists.
func (f *PageFetcher) Text(ctx context.Context, pageURL string) (string, error) {
	doc, err := f.Document(ctx, pageURL)
	if err != nil {
		return "", err
	}

	root := findRecipeContainer(doc)
	if root == nil {
		root = doc
	}

	text := extractText(root)
	if len(text) > f.cfg.MaxTextChars {
		text = text[:f.cfg.MaxTextChars]
		f.logger.Debug("page text truncated", "url", pageURL, "max_chars", f.cfg.MaxTextChars)
	}

	return text, nil
}

// findRecipeContainer walks the document for the most recipe-specific
// container: itemtype mentioning Recipe, then a "recipe" class, then
// article, then main.
func findRecipeContainer(doc *html.Node) *html.Node {
	var byItemtype, byClass, byArticle, byMain *html.Node

	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode {
			if byItemtype == nil && strings.Contains(attr(n, "itemtype"), "Recipe") {
				byItemtype = n
			}
			if byClass == nil && strings.Contains(strings.ToLower(attr(n, "class")), "recipe") {
				byClass = n
			}
			if byArticle == nil && n.Data == "article" {
				byArticle = n
			}
			if byMain == nil && n.Data == "main" {
				byMain = n
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)

	switch {
	case byItemtype != nil:
		return byItemtype
	case byClass != nil:
		return byClass
	case byArticle != nil:
		return byArticle
	default:
		return byMain
	}
}

// extractText joins the text nodes under n, skipping boilerplate subtrees.
func extractText(n *html.Node) string {
	var buf strings.Builder

	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			if text := strings.TrimSpace(n.Data); text != "" {
				buf.WriteString(text)
				buf.WriteByte(' ')
			}
		}
		if n.Type == html.ElementNode {
			if _, skip := skippedElements[n.Data]; skip {
				return
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)

	return strings.TrimSpace(buf.String())
}

func attr(n *html.Node, name string) string {
	for _, a := range n.Attr {
		if a.Key == name {
			return a.Val
		}
	}
	return ""
}
