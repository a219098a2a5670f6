package clients

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/spacesedan/newsreel/internal/models"
)

const (
	NEWS_API_BASE_URL = "https://newsapi.org/v2"
	PAGE_SIZE         = 100
	REQUEST_TIMEOUT   = 15 * time.Second
)

var ErrMissingAPIKey = errors.New("[NewsAPIClient] API key is missing")

// NewsAPIClient calls the NewsAPI top-headlines endpoints. It is stateless
// and holds no cache; callers construct one and inject it where needed.
type NewsAPIClient struct {
	httpClient *http.Client
	apiKey     string
	baseURL    string
}

func NewNewsAPIClient(apiKey string, opts ...ClientOption) *NewsAPIClient {
	c := &NewsAPIClient{
		httpClient: &http.Client{Timeout: REQUEST_TIMEOUT},
		apiKey:     apiKey,
		baseURL:    NEWS_API_BASE_URL,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

type ClientOption func(*NewsAPIClient)

// WithBaseURL overrides the API endpoint, used by tests to point the client
// at a local server.
func WithBaseURL(base string) ClientOption {
	return func(c *NewsAPIClient) { c.baseURL = base }
}

// WithHTTPClient overrides the underlying HTTP client.
func WithHTTPClient(hc *http.Client) ClientOption {
	return func(c *NewsAPIClient) { c.httpClient = hc }
}

// TopHeadlines fetches one page of breaking news for a country code.
func (c *NewsAPIClient) TopHeadlines(ctx context.Context, country string) (*models.TopHeadlinesResponse, error) {
	return c.fetch(ctx, url.Values{"country": {country}})
}

// TopHeadlinesByCategory fetches one page of top headlines for a category.
// Unknown categories are not validated here; the API decides what they mean.
func (c *NewsAPIClient) TopHeadlinesByCategory(ctx context.Context, category string) (*models.TopHeadlinesResponse, error) {
	return c.fetch(ctx, url.Values{"category": {category}})
}

func (c *NewsAPIClient) fetch(ctx context.Context, params url.Values) (*models.TopHeadlinesResponse, error) {
	if c.apiKey == "" {
		slog.Error("[NewsAPIClient] API key is missing")
		return nil, ErrMissingAPIKey
	}

	params.Set("pageSize", fmt.Sprint(PAGE_SIZE))
	params.Set("apiKey", c.apiKey)
	endpoint := c.baseURL + "/top-headlines?" + params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}

	res, err := c.httpClient.Do(req)
	if err != nil {
		slog.Error("[NewsAPIClient] Request failed", slog.String("error", err.Error()))
		return nil, fmt.Errorf("[NewsAPIClient] request failed: %w", err)
	}
	defer res.Body.Close()

	switch res.StatusCode {
	case http.StatusOK:
	case http.StatusBadRequest:
		slog.Warn("[NewsAPIClient] Bad request: check query parameters")
		return nil, errors.New("[NewsAPIClient] bad request: check query parameters")
	case http.StatusUnauthorized:
		slog.Error("[NewsAPIClient] Invalid API key, check credentials")
		return nil, errors.New("[NewsAPIClient] invalid API key, check credentials")
	case http.StatusForbidden:
		slog.Error("[NewsAPIClient] Access forbidden, check API key permissions")
		return nil, errors.New("[NewsAPIClient] API key lacks required permissions")
	case http.StatusTooManyRequests:
		slog.Warn("[NewsAPIClient] Rate limit exceeded")
		return nil, errors.New("[NewsAPIClient] rate limit exceeded")
	default:
		slog.Warn("[NewsAPIClient] Unexpected response",
			slog.Int("statusCode", res.StatusCode))
		return nil, fmt.Errorf("[NewsAPIClient] unexpected status code %d", res.StatusCode)
	}

	body, err := io.ReadAll(res.Body)
	if err != nil {
		slog.Error("[NewsAPIClient] Failed to read response body", slog.String("error", err.Error()))
		return nil, err
	}

	var response models.TopHeadlinesResponse
	if err := json.Unmarshal(body, &response); err != nil {
		slog.Error("[NewsAPIClient] Failed to parse JSON response", slog.String("error", err.Error()))
		return nil, fmt.Errorf("[NewsAPIClient] failed to parse response: %w", err)
	}

	// Null array elements decode as empty shells; drop them so downstream
	// code never sees an article with nothing in it.
	kept := response.Articles[:0]
	for _, a := range response.Articles {
		if !a.IsEmpty() {
			kept = append(kept, a)
		}
	}
	response.Articles = kept
	if response.Articles == nil {
		response.Articles = []models.Article{}
	}

	slog.Info("[NewsAPIClient] Successfully fetched headlines",
		slog.Int("articles", len(response.Articles)))
	return &response, nil
}
