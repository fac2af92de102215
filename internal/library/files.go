package library

import (
	"context"
	"fmt"
	"io"
	"sort"

	"golang.org/x/sync/errgroup"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/mrlokans/shelfcheck/internal/entities"
)

// Options controls multi-file parsing.
type Options struct {
	// Locale drives the title collation used when sorting books.
	Locale language.Tag
	// Concurrency bounds the number of files decoded at once, 0 means unbounded.
	Concurrency int
}

// DefaultOptions sorts titles with French collation rules.
func DefaultOptions() Options {
	return Options{Locale: language.French}
}

// NamedReader is an uploaded or opened file together with its display name.
type NamedReader struct {
	Name   string
	Reader io.Reader
}

// FileResult is the outcome of parsing one file. Err is set when the file
// could not be parsed at all; Books is then empty.
type FileResult struct {
	Name   string                 `json:"name"`
	Layout Layout                 `json:"layout,omitempty"`
	Books  []entities.LibraryBook `json:"books"`
	Err    error                  `json:"-"`
}

// Failed reports whether the file was rejected.
func (r FileResult) Failed() bool {
	return r.Err != nil
}

// ParseFile decodes and parses a single file. The books are sorted by title.
func ParseFile(name string, r io.Reader, opts Options) FileResult {
	result := FileResult{Name: name, Books: []entities.LibraryBook{}}

	rows, err := ReadRows(r)
	if err != nil {
		result.Err = fmt.Errorf("%s: %w", name, err)
		return result
	}

	books, layout, err := parseRows(rows)
	result.Layout = layout
	if err != nil {
		result.Err = fmt.Errorf("%s: %w", name, err)
		return result
	}

	SortByTitle(books, opts.Locale)
	result.Books = books
	return result
}

// ParseFiles parses every file independently and concurrently. The returned
// slice has one result per input file, in input order; a failing file never
// affects the others.
func ParseFiles(ctx context.Context, files []NamedReader, opts Options) []FileResult {
	results := make([]FileResult, len(files))

	var g errgroup.Group
	if opts.Concurrency > 0 {
		g.SetLimit(opts.Concurrency)
	}
	for i, f := range files {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				results[i] = FileResult{Name: f.Name, Books: []entities.LibraryBook{}, Err: fmt.Errorf("%s: %w", f.Name, err)}
				return nil
			}
			results[i] = ParseFile(f.Name, f.Reader, opts)
			return nil
		})
	}
	_ = g.Wait() // Per-file failures are carried by the results

	return results
}

// Merge concatenates the books of the successfully parsed files and sorts
// them by title.
func Merge(results []FileResult, opts Options) []entities.LibraryBook {
	var total int
	for _, r := range results {
		total += len(r.Books)
	}

	books := make([]entities.LibraryBook, 0, total)
	for _, r := range results {
		if r.Failed() {
			continue
		}
		books = append(books, r.Books...)
	}

	SortByTitle(books, opts.Locale)
	return books
}

// SortByTitle sorts books in place by title using the collation rules of
// locale. Books with equal titles keep no guaranteed order.
func SortByTitle(books []entities.LibraryBook, locale language.Tag) {
	c := collate.New(locale)
	sort.SliceStable(books, func(i, j int) bool {
		return c.CompareString(books[i].Title, books[j].Title) < 0
	})
}
