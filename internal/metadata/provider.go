// Package metadata fetches canonical book metadata for scanned ISBN codes.
package metadata

import (
	"context"
	"errors"
	"fmt"

	"github.com/mrlokans/shelfcheck/internal/entities"
)

// ErrNotFound is returned when a provider knows no book for an ISBN.
var ErrNotFound = errors.New("no book found for ISBN")

// Provider fetches the metadata of one book by its cleaned ISBN.
type Provider interface {
	FetchByISBN(ctx context.Context, isbn string) (*entities.IsbnBook, error)
	Name() string
}

// FallbackProvider asks each provider in turn and returns the first answer.
type FallbackProvider struct {
	providers []Provider
}

func NewFallbackProvider(providers ...Provider) *FallbackProvider {
	return &FallbackProvider{providers: providers}
}

func (f *FallbackProvider) Name() string {
	return "fallback"
}

func (f *FallbackProvider) FetchByISBN(ctx context.Context, isbn string) (*entities.IsbnBook, error) {
	if len(f.providers) == 0 {
		return nil, fmt.Errorf("no metadata provider configured")
	}

	var errs []error
	for _, p := range f.providers {
		book, err := p.FetchByISBN(ctx, isbn)
		if err == nil {
			return book, nil
		}
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		errs = append(errs, fmt.Errorf("%s: %w", p.Name(), err))
	}
	return nil, errors.Join(errs...)
}

var _ Provider = (*FallbackProvider)(nil)
