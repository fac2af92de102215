package metadata

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/mrlokans/shelfcheck/internal/entities"
	"github.com/mrlokans/shelfcheck/internal/isbn"
)

// CachingProvider keeps fetched books on disk, one JSON file per ISBN, so
// that codes scanned again are not fetched twice. Failures are not cached.
type CachingProvider struct {
	provider Provider
	cacheDir string
}

// NewCachingProvider creates a cache in cacheDir in front of provider.
func NewCachingProvider(provider Provider, cacheDir string) (*CachingProvider, error) {
	if err := os.MkdirAll(cacheDir, 0755); err != nil {
		return nil, fmt.Errorf("create cache dir: %w", err)
	}

	return &CachingProvider{
		provider: provider,
		cacheDir: cacheDir,
	}, nil
}

func (c *CachingProvider) Name() string {
	return c.provider.Name() + "+cache"
}

// FetchByISBN returns the cached book for the code, or fetches and caches it.
func (c *CachingProvider) FetchByISBN(ctx context.Context, code string) (*entities.IsbnBook, error) {
	code = isbn.Clean(code)
	cachePath := filepath.Join(c.cacheDir, c.bookFilename(code))

	if book, err := c.load(cachePath); err == nil {
		return book, nil
	}

	book, err := c.provider.FetchByISBN(ctx, code)
	if err != nil {
		return nil, err
	}

	if err := c.store(cachePath, book); err != nil {
		log.Printf("[FETCH] Could not cache ISBN data for code %s: %v", code, err)
	}
	return book, nil
}

// Invalidate removes the cached book for a code.
func (c *CachingProvider) Invalidate(code string) error {
	err := os.Remove(filepath.Join(c.cacheDir, c.bookFilename(isbn.Clean(code))))
	if err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

// CacheDir returns the cache directory path.
func (c *CachingProvider) CacheDir() string {
	return c.cacheDir
}

func (c *CachingProvider) bookFilename(code string) string {
	return fmt.Sprintf("isbn_%s.json", code)
}

func (c *CachingProvider) load(path string) (*entities.IsbnBook, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var book entities.IsbnBook
	if err := json.Unmarshal(data, &book); err != nil {
		return nil, err
	}
	return &book, nil
}

// store writes the book through a temporary file renamed in place, so a
// concurrent reader never sees a partial file.
func (c *CachingProvider) store(path string, book *entities.IsbnBook) error {
	data, err := json.Marshal(book)
	if err != nil {
		return err
	}

	tmpFile, err := os.CreateTemp(c.cacheDir, "isbn_tmp_")
	if err != nil {
		return err
	}
	tmpPath := tmpFile.Name()
	defer func() {
		tmpFile.Close()
		os.Remove(tmpPath) // Clean up if we didn't rename
	}()

	if _, err := tmpFile.Write(data); err != nil {
		return err
	}
	tmpFile.Close()

	return os.Rename(tmpPath, path)
}

var _ Provider = (*CachingProvider)(nil)
