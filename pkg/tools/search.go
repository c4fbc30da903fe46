package tools

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"jetsetgo/pkg/llm"
)

const DefaultSerperEndpoint = "https://google.serper.dev/search"

// SerperSearch queries the Serper Google search API.
type SerperSearch struct {
	apiKey   string
	endpoint string
	results  int
	client   *http.Client
}

func NewSerperSearch(apiKey, endpoint string, results int, timeout time.Duration) *SerperSearch {
	if endpoint == "" {
		endpoint = DefaultSerperEndpoint
	}
	if results <= 0 {
		results = 5
	}
	return &SerperSearch{
		apiKey:   apiKey,
		endpoint: endpoint,
		results:  results,
		client:   &http.Client{Timeout: timeout},
	}
}

func (s *SerperSearch) Spec() llm.ToolSpec {
	return llm.ToolSpec{
		Name:        "search_internet",
		Description: "Search the internet for up to date information such as flights, trains, hotels, prices and attractions. Returns titles, links and snippets.",
		Params: []llm.ToolParam{
			{Name: "search_query", Description: "The search query to run", Required: true},
		},
	}
}

type serperResponse struct {
	Organic []struct {
		Title   string `json:"title"`
		Link    string `json:"link"`
		Snippet string `json:"snippet"`
	} `json:"organic"`
}

func (s *SerperSearch) Call(ctx context.Context, args map[string]string) (string, error) {
	query := strings.TrimSpace(args["search_query"])

	body, err := json.Marshal(map[string]any{"q": query, "num": s.results})
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.endpoint, bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("X-API-KEY", s.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("serper request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("serper returned status %d", resp.StatusCode)
	}

	var decoded serperResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return "", fmt.Errorf("decode serper response: %w", err)
	}

	if len(decoded.Organic) == 0 {
		return fmt.Sprintf("No results found for %q.", query), nil
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Search results for %q:\n", query)
	for i, r := range decoded.Organic {
		if i >= s.results {
			break
		}
		fmt.Fprintf(&b, "\nTitle: %s\nLink: %s\nSnippet: %s\n---", r.Title, r.Link, r.Snippet)
	}
	return b.String(), nil
}
