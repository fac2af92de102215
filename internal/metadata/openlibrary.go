package metadata

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/mrlokans/shelfcheck/internal/entities"
	"github.com/mrlokans/shelfcheck/internal/isbn"
)

const DefaultOpenLibraryBaseURL = "https://openlibrary.org"

// OpenLibraryClient fetches book metadata from the OpenLibrary API. It is
// used when Google Books has no volume for a code.
type OpenLibraryClient struct {
	httpClient  *http.Client
	baseURL     string
	rateLimiter *rateLimiter
}

// NewOpenLibraryClient creates a new OpenLibrary API client with rate limiting.
func NewOpenLibraryClient(baseURL string, timeout time.Duration) *OpenLibraryClient {
	if baseURL == "" {
		baseURL = DefaultOpenLibraryBaseURL
	}
	if timeout == 0 {
		timeout = 10 * time.Second
	}
	return &OpenLibraryClient{
		httpClient: &http.Client{
			Timeout: timeout,
		},
		baseURL:     baseURL,
		rateLimiter: newRateLimiter(time.Second), // 1 request per second
	}
}

func (c *OpenLibraryClient) Name() string {
	return "openlibrary"
}

// FetchByISBN looks up an edition by its ISBN and resolves its author names.
func (c *OpenLibraryClient) FetchByISBN(ctx context.Context, code string) (*entities.IsbnBook, error) {
	code = isbn.Clean(code)
	if code == "" {
		return nil, fmt.Errorf("empty ISBN")
	}

	var edition openLibraryEdition
	status, err := c.getJSON(ctx, fmt.Sprintf("%s/isbn/%s.json", c.baseURL, code), &edition)
	if err != nil {
		return nil, fmt.Errorf("fetch ISBN %s: %w", code, err)
	}
	if status == http.StatusNotFound {
		return nil, fmt.Errorf("%w %s", ErrNotFound, code)
	}
	if status != http.StatusOK {
		return nil, fmt.Errorf("fetch ISBN %s: unexpected status %d", code, status)
	}

	book := &entities.IsbnBook{
		IsbnCode: code,
		Title:    edition.Title,
		Subtitle: edition.Subtitle,
		Authors:  []string{},
	}

	// Description can be a plain string or a {type, value} object
	switch v := edition.Description.(type) {
	case string:
		book.Description = v
	case map[string]any:
		if val, ok := v["value"].(string); ok {
			book.Description = val
		}
	}

	for _, ref := range edition.Authors {
		name, err := c.fetchAuthorName(ctx, ref.Key)
		if err != nil {
			continue
		}
		book.Authors = append(book.Authors, name)
	}

	return book, nil
}

func (c *OpenLibraryClient) fetchAuthorName(ctx context.Context, authorKey string) (string, error) {
	if authorKey == "" {
		return "", fmt.Errorf("empty author key")
	}

	var author struct {
		Name string `json:"name"`
	}
	status, err := c.getJSON(ctx, fmt.Sprintf("%s%s.json", c.baseURL, authorKey), &author)
	if err != nil {
		return "", err
	}
	if status != http.StatusOK {
		return "", fmt.Errorf("status: %d", status)
	}
	return author.Name, nil
}

// getJSON decodes the body into out when the response is a 200.
func (c *OpenLibraryClient) getJSON(ctx context.Context, url string, out any) (int, error) {
	if err := c.rateLimiter.wait(ctx); err != nil {
		return 0, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return 0, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return 0, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return resp.StatusCode, nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return resp.StatusCode, fmt.Errorf("decode response: %w", err)
	}
	return resp.StatusCode, nil
}

// OpenLibrary API response types (internal)

type openLibraryEdition struct {
	Key         string      `json:"key"`
	Title       string      `json:"title"`
	Subtitle    string      `json:"subtitle"`
	Authors     []authorRef `json:"authors"`
	Description any         `json:"description"` // Can be string or {type, value}
}

type authorRef struct {
	Key string `json:"key"`
}

var _ Provider = (*OpenLibraryClient)(nil)
