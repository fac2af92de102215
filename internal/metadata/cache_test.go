package metadata

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrlokans/shelfcheck/internal/entities"
)

func TestCachingProvider(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "cache")
	inner := &mockProvider{name: "mock", books: map[string]entities.IsbnBook{
		"9780306406157": {IsbnCode: "9780306406157", Title: "Cached", Authors: []string{"Someone"}},
	}}

	provider, err := NewCachingProvider(inner, dir)
	require.NoError(t, err)
	assert.Equal(t, "mock+cache", provider.Name())
	assert.Equal(t, dir, provider.CacheDir())

	ctx := context.Background()
	book, err := provider.FetchByISBN(ctx, "978-0-306-40615-7")
	require.NoError(t, err)
	assert.Equal(t, "Cached", book.Title)
	assert.FileExists(t, filepath.Join(dir, "isbn_9780306406157.json"))

	book, err = provider.FetchByISBN(ctx, "9780306406157")
	require.NoError(t, err)
	assert.Equal(t, []string{"Someone"}, book.Authors)
	assert.Len(t, inner.calls, 1)

	require.NoError(t, provider.Invalidate("9780306406157"))
	_, err = provider.FetchByISBN(ctx, "9780306406157")
	require.NoError(t, err)
	assert.Len(t, inner.calls, 2)

	assert.NoError(t, provider.Invalidate("9780140449136"))
}

func TestCachingProvider_DoesNotCacheFailures(t *testing.T) {
	dir := t.TempDir()
	inner := &mockProvider{name: "mock"}

	provider, err := NewCachingProvider(inner, dir)
	require.NoError(t, err)

	_, err = provider.FetchByISBN(context.Background(), "9780140449136")
	assert.ErrorIs(t, err, ErrNotFound)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}
