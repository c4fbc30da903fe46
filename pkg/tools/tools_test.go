package tools

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"jetsetgo/pkg/llm"
)

func TestSerperSearch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "serper-key", r.Header.Get("X-API-KEY"))
		var body map[string]any
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "trains NYC to Boston", body["q"])

		_, _ = w.Write([]byte(`{"organic":[
			{"title":"Amtrak","link":"https://amtrak.com","snippet":"Northeast Regional from $29"},
			{"title":"Wanderu","link":"https://wanderu.com","snippet":"Compare buses and trains"}
		]}`))
	}))
	defer srv.Close()

	s := NewSerperSearch("serper-key", srv.URL, 1, time.Second)
	out, err := s.Call(context.Background(), map[string]string{"search_query": "trains NYC to Boston"})
	require.NoError(t, err)
	assert.Contains(t, out, "Amtrak")
	assert.NotContains(t, out, "Wanderu")
}

func TestSerperSearchStatusError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	defer srv.Close()

	_, err := NewSerperSearch("bad", srv.URL, 5, time.Second).Call(context.Background(), map[string]string{"search_query": "x"})
	assert.ErrorContains(t, err, "403")
}

func TestWebScraper(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`<html><head><title>t</title><style>p{}</style></head>
			<body><h1>Louvre   Museum</h1><script>var x = 1;</script><p>Open 9am to 6pm</p></body></html>`))
	}))
	defer srv.Close()

	out, err := NewWebScraper(100, time.Second).Call(context.Background(), map[string]string{"website_url": srv.URL})
	require.NoError(t, err)
	assert.Equal(t, "Louvre Museum\nOpen 9am to 6pm", out)
}

func TestWebScraperTruncatesAndValidates(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("<p>" + strings.Repeat("é", 50) + "</p>"))
	}))
	defer srv.Close()

	out, err := NewWebScraper(10, time.Second).Call(context.Background(), map[string]string{"website_url": srv.URL})
	require.NoError(t, err)
	assert.Equal(t, strings.Repeat("é", 10), out)

	_, err = NewWebScraper(10, time.Second).Call(context.Background(), map[string]string{"website_url": "ftp://example.com"})
	assert.Error(t, err)
}

type echoTool struct{}

func (echoTool) Spec() llm.ToolSpec {
	return llm.ToolSpec{Name: "echo", Params: []llm.ToolParam{{Name: "text", Required: true}}}
}

func (echoTool) Call(_ context.Context, args map[string]string) (string, error) {
	return args["text"], nil
}

func TestRegistryInvoke(t *testing.T) {
	r := NewRegistry(echoTool{})

	out, err := r.Invoke(context.Background(), llm.ToolCall{Name: "echo", Arguments: `{"text":"hi"}`})
	require.NoError(t, err)
	assert.Equal(t, "hi", out)

	_, err = r.Invoke(context.Background(), llm.ToolCall{Name: "echo", Arguments: `{}`})
	assert.ErrorContains(t, err, "missing required argument")

	_, err = r.Invoke(context.Background(), llm.ToolCall{Name: "nope"})
	assert.ErrorContains(t, err, "unknown tool")

	_, err = r.Invoke(context.Background(), llm.ToolCall{Name: "echo", Arguments: `not json`})
	assert.Error(t, err)
}

func TestDecodeArgsKeepsNonStrings(t *testing.T) {
	args, err := DecodeArgs(`{"n":3,"s":"x","z":null}`)
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"n": "3", "s": "x"}, args)
}
