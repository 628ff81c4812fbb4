package naver

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"kbo-news-service/internal/domain/news"
	"kbo-news-service/internal/extract"
	"kbo-news-service/internal/providers"
)

// Config controls how the fast strategy reaches the portal.
type Config struct {
	BaseURL    string
	UserAgent  string
	Timeout    time.Duration
	HTTPClient *http.Client
}

// Client is the fast strategy: one plain GET, parsing only the cards present
// in the server-rendered markup.
type Client struct {
	baseURL    string
	userAgent  string
	httpClient httpDoer
	extractor  *extract.Extractor
	now        func() time.Time
}

// NewClient constructs a fast-strategy client with the provided configuration.
func NewClient(cfg Config) *Client {
	return &Client{
		baseURL:    normalizeBaseURL(cfg.BaseURL),
		userAgent:  resolveUserAgent(cfg.UserAgent),
		httpClient: resolveHTTPClient(cfg.HTTPClient, cfg.Timeout),
		extractor:  extract.New(""),
		now:        time.Now,
	}
}

// FetchNews returns at most count items from the listing's initial markup.
func (c *Client) FetchNews(ctx context.Context, code, date string, count int) ([]news.Item, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, NewsURL(c.baseURL, code, date), nil)
	if err != nil {
		return nil, fmt.Errorf("naver: build request: %w", err)
	}
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml")
	req.Header.Set("Accept-Language", "ko-KR,ko;q=0.9")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("naver: fetch news: %w", err)
	}
	defer resp.Body.Close()

	if err := c.checkStatus(resp, req.URL.String()); err != nil {
		return nil, err
	}

	items, err := c.extractor.ItemsFromHTML(resp.Body, count)
	if err != nil {
		return nil, fmt.Errorf("naver: %w", err)
	}
	return items, nil
}

func (c *Client) checkStatus(resp *http.Response, url string) error {
	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return nil
	}
	body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	if resp.StatusCode == http.StatusTooManyRequests {
		return &providers.RateLimitError{
			Provider:   providerName,
			StatusCode: resp.StatusCode,
			RetryAfter: parseRetryAfter(resp.Header.Get("Retry-After"), c.now()),
			Message:    strings.TrimSpace("naver rate limited " + string(body)),
		}
	}
	return &providers.StatusError{
		Provider:   providerName,
		StatusCode: resp.StatusCode,
		URL:        url,
	}
}
