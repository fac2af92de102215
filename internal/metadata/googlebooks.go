package metadata

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/mrlokans/shelfcheck/internal/entities"
	"github.com/mrlokans/shelfcheck/internal/isbn"
)

const (
	DefaultGoogleBooksBaseURL = "https://www.googleapis.com/books/v1"
	userAgent                 = "ShelfCheck/1.0 (https://github.com/mrlokans/shelfcheck)"
	maxErrorBodyBytes         = 512
)

// GoogleBooksClient looks books up in the Google Books volumes API.
type GoogleBooksClient struct {
	httpClient  *http.Client
	baseURL     string
	rateLimiter *rateLimiter
}

// GoogleBooksConfig configures a GoogleBooksClient. Zero values fall back to defaults.
type GoogleBooksConfig struct {
	BaseURL      string
	Timeout      time.Duration
	RateInterval time.Duration
}

func NewGoogleBooksClient(cfg GoogleBooksConfig) *GoogleBooksClient {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultGoogleBooksBaseURL
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = 10 * time.Second
	}
	return &GoogleBooksClient{
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
		},
		baseURL:     cfg.BaseURL,
		rateLimiter: newRateLimiter(cfg.RateInterval),
	}
}

func (c *GoogleBooksClient) Name() string {
	return "googlebooks"
}

// FetchByISBN returns the first volume Google Books knows for the code.
// The returned book carries the requested code, not the one of the volume.
func (c *GoogleBooksClient) FetchByISBN(ctx context.Context, code string) (*entities.IsbnBook, error) {
	code = isbn.Clean(code)
	if code == "" {
		return nil, fmt.Errorf("empty ISBN")
	}

	if err := c.rateLimiter.wait(ctx); err != nil {
		return nil, err
	}

	reqURL := fmt.Sprintf("%s/volumes?q=%s", c.baseURL, url.QueryEscape("isbn:"+code))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch ISBN %s: %w", code, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBodyBytes))
		return nil, fmt.Errorf("fetch ISBN %s: unexpected status %d: %s", code, resp.StatusCode, string(body))
	}

	var volumes googleVolumeList
	if err := json.NewDecoder(resp.Body).Decode(&volumes); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}

	if len(volumes.Items) == 0 {
		return nil, fmt.Errorf("%w %s", ErrNotFound, code)
	}

	info := volumes.Items[0].VolumeInfo
	authors := info.Authors
	if authors == nil {
		authors = []string{}
	}
	return &entities.IsbnBook{
		IsbnCode:    code,
		Title:       info.Title,
		Subtitle:    info.Subtitle,
		Authors:     authors,
		Description: info.Description,
	}, nil
}

// Google Books API response types (internal)

type googleVolumeList struct {
	TotalItems int `json:"totalItems"`
	Items      []struct {
		VolumeInfo googleVolumeInfo `json:"volumeInfo"`
	} `json:"items"`
}

type googleVolumeInfo struct {
	Title               string   `json:"title"`
	Subtitle            string   `json:"subtitle"`
	Authors             []string `json:"authors"`
	Description         string   `json:"description"`
	PublishedDate       string   `json:"publishedDate"`
	PageCount           int      `json:"pageCount"`
	IndustryIdentifiers []struct {
		Type       string `json:"type"`
		Identifier string `json:"identifier"`
	} `json:"industryIdentifiers"`
}

var _ Provider = (*GoogleBooksClient)(nil)
