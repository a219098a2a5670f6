package clients

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const headlinesPayload = `{
	"status": "ok",
	"totalResults": 3,
	"articles": [
		{"source": {"id": "reuters", "name": "Reuters"}, "title": "Fed raises rates", "url": "https://example.com/fed"},
		null,
		{"title": "Local sports win", "description": "Home team takes the cup"},
		{"source": {"name": "AP"}, "title": "Quarterly earnings"}
	]
}`

func TestTopHeadlines(t *testing.T) {
	var gotQuery map[string]string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		gotQuery = map[string]string{
			"country":  q.Get("country"),
			"apiKey":   q.Get("apiKey"),
			"pageSize": q.Get("pageSize"),
		}
		w.Write([]byte(headlinesPayload))
	}))
	defer server.Close()

	c := NewNewsAPIClient("test-key", WithBaseURL(server.URL))
	page, err := c.TopHeadlines(context.Background(), "us")

	require.NoError(t, err)
	assert.Equal(t, "us", gotQuery["country"])
	assert.Equal(t, "test-key", gotQuery["apiKey"])
	assert.Equal(t, "100", gotQuery["pageSize"])

	// The null array element is dropped.
	require.Len(t, page.Articles, 3)
	assert.Equal(t, "Fed raises rates", page.Articles[0].Title)
	assert.Equal(t, "Reuters", page.Articles[0].SourceName())
	assert.Equal(t, "", page.Articles[1].SourceName())
}

func TestTopHeadlinesByCategory(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "sports", r.URL.Query().Get("category"))
		w.Write([]byte(`{"status": "ok", "totalResults": 0, "articles": []}`))
	}))
	defer server.Close()

	c := NewNewsAPIClient("test-key", WithBaseURL(server.URL))
	page, err := c.TopHeadlinesByCategory(context.Background(), "sports")

	require.NoError(t, err)
	assert.NotNil(t, page.Articles)
	assert.Empty(t, page.Articles)
}

func TestMissingAPIKey(t *testing.T) {
	c := NewNewsAPIClient("")
	_, err := c.TopHeadlines(context.Background(), "us")
	assert.ErrorIs(t, err, ErrMissingAPIKey)
}

func TestErrorStatuses(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		wantMsg string
	}{
		{"bad request", http.StatusBadRequest, "bad request"},
		{"unauthorized", http.StatusUnauthorized, "invalid API key"},
		{"forbidden", http.StatusForbidden, "permissions"},
		{"rate limited", http.StatusTooManyRequests, "rate limit"},
		{"server error", http.StatusInternalServerError, "unexpected status code 500"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
			}))
			defer server.Close()

			c := NewNewsAPIClient("test-key", WithBaseURL(server.URL))
			_, err := c.TopHeadlines(context.Background(), "us")
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantMsg)
		})
	}
}

func TestMalformedPayload(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"status": "ok", "articles": "not-an-array"}`))
	}))
	defer server.Close()

	c := NewNewsAPIClient("test-key", WithBaseURL(server.URL))
	_, err := c.TopHeadlines(context.Background(), "us")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse response")
}

func TestNetworkError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close() // refuse connections

	c := NewNewsAPIClient("test-key", WithBaseURL(server.URL))
	_, err := c.TopHeadlines(context.Background(), "us")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "request failed")
}
