package tools

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/net/html"

	"jetsetgo/pkg/llm"
)

// WebScraper fetches a page and returns its visible text.
type WebScraper struct {
	maxChars int
	client   *http.Client
}

func NewWebScraper(maxChars int, timeout time.Duration) *WebScraper {
	if maxChars <= 0 {
		maxChars = 8000
	}
	return &WebScraper{maxChars: maxChars, client: &http.Client{Timeout: timeout}}
}

func (w *WebScraper) Spec() llm.ToolSpec {
	return llm.ToolSpec{
		Name:        "scrape_website",
		Description: "Read the text content of a web page, for example a booking site or a travel guide found through search.",
		Params: []llm.ToolParam{
			{Name: "website_url", Description: "Absolute http(s) URL of the page to read", Required: true},
		},
	}
}

func (w *WebScraper) Call(ctx context.Context, args map[string]string) (string, error) {
	target, err := url.Parse(strings.TrimSpace(args["website_url"]))
	if err != nil || (target.Scheme != "http" && target.Scheme != "https") || target.Host == "" {
		return "", fmt.Errorf("invalid website_url %q", args["website_url"])
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target.String(), nil)
	if err != nil {
		return "", err
	}
	req.Header.Set("User-Agent", "Mozilla/5.0 (compatible; JetSetGo/1.0)")

	resp, err := w.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("fetch %s: %w", target, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusBadRequest {
		return "", fmt.Errorf("fetch %s: status %d", target, resp.StatusCode)
	}

	text, err := ExtractText(io.LimitReader(resp.Body, 4<<20))
	if err != nil {
		return "", fmt.Errorf("parse %s: %w", target, err)
	}

	if runes := []rune(text); len(runes) > w.maxChars {
		text = string(runes[:w.maxChars])
	}
	return text, nil
}

var skippedElements = map[string]bool{
	"script": true, "style": true, "noscript": true, "svg": true, "head": true, "iframe": true,
}

// ExtractText returns the visible text of an HTML document, one block per line.
func ExtractText(r io.Reader) (string, error) {
	doc, err := html.Parse(r)
	if err != nil {
		return "", err
	}

	var lines []string
	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && skippedElements[n.Data] {
			return
		}
		if n.Type == html.TextNode {
			if s := strings.Join(strings.Fields(n.Data), " "); s != "" {
				lines = append(lines, s)
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)

	return strings.Join(lines, "\n"), nil
}
