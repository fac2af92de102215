// Package reconcile runs a full reconciliation: library exports are parsed,
// scanned codes are resolved to books and both lists are matched.
package reconcile

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"

	"github.com/mrlokans/shelfcheck/internal/entities"
	"github.com/mrlokans/shelfcheck/internal/library"
	"github.com/mrlokans/shelfcheck/internal/matching"
	"github.com/mrlokans/shelfcheck/internal/metadata"
)

// ErrNoLibraryBooks is returned when files were given but none could be parsed.
var ErrNoLibraryBooks = errors.New("no library file could be parsed")

// Report is the outcome of one reconciliation.
type Report struct {
	ID           string                     `json:"id"`
	CreatedAt    time.Time                  `json:"created_at"`
	Items        []entities.MatchResultItem `json:"items"`
	Stats        entities.MatchResultStats  `json:"stats"`
	Files        []FileSummary              `json:"files,omitempty"`
	FetchErrors  []metadata.FetchError      `json:"fetch_errors,omitempty"`
	IgnoredCodes []IgnoredCode              `json:"ignored_codes,omitempty"`
}

// FileSummary describes how one library file was parsed.
type FileSummary struct {
	Name   string         `json:"name"`
	Layout library.Layout `json:"layout,omitempty"`
	Books  int            `json:"books"`
	Error  string         `json:"error,omitempty"`
}

// IgnoredCode is a scanned code that was not fetched.
type IgnoredCode struct {
	Code   string             `json:"code"`
	Reason metadata.AddStatus `json:"reason"`
}

type Options struct {
	Library          library.Options
	Matching         matching.Options
	FetchConcurrency int
}

func DefaultOptions() Options {
	return Options{
		Library:          library.DefaultOptions(),
		Matching:         matching.DefaultOptions(),
		FetchConcurrency: 4,
	}
}

type Service struct {
	provider metadata.Provider
	matcher  *matching.Matcher
	opts     Options
}

func NewService(provider metadata.Provider, opts Options) *Service {
	return &Service{
		provider: provider,
		matcher:  matching.New(opts.Matching),
		opts:     opts,
	}
}

// Run parses files, fetches the metadata of codes and matches the two lists.
// A file that fails to parse is reported in the summary without aborting the
// run, unless every file failed.
func (s *Service) Run(ctx context.Context, files []library.NamedReader, codes []string) (*Report, error) {
	libraryBooks, summaries, err := s.parseAll(ctx, files)
	if err != nil {
		return nil, err
	}

	collector := metadata.NewCollector(s.provider, s.opts.FetchConcurrency)
	ignored := ignoredCodes(codes, collector.AddAll(ctx, codes))
	collector.Wait()
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("fetch metadata: %w", err)
	}

	report := s.report(libraryBooks, summaries, collector)
	report.IgnoredCodes = ignored
	return report, nil
}

// parseAll parses and merges files, failing only when every file failed.
func (s *Service) parseAll(ctx context.Context, files []library.NamedReader) ([]entities.LibraryBook, []FileSummary, error) {
	results := s.ParseFiles(ctx, files)

	var (
		summaries = make([]FileSummary, 0, len(results))
		failures  []error
	)
	for _, r := range results {
		summary := FileSummary{Name: r.Name, Layout: r.Layout, Books: len(r.Books)}
		if r.Failed() {
			summary.Error = r.Err.Error()
			failures = append(failures, r.Err)
		}
		summaries = append(summaries, summary)
	}
	if len(files) > 0 && len(failures) == len(files) {
		return nil, nil, fmt.Errorf("%w: %w", ErrNoLibraryBooks, errors.Join(failures...))
	}
	return s.Merge(results), summaries, nil
}

// report matches library books with the books the collector fetched so far.
func (s *Service) report(libraryBooks []entities.LibraryBook, summaries []FileSummary, collector *metadata.Collector) *Report {
	report := s.Match(libraryBooks, collector.Books())
	report.Files = summaries
	report.FetchErrors = collector.Errors()
	return report
}

func ignoredCodes(codes []string, statuses []metadata.AddStatus) []IgnoredCode {
	var ignored []IgnoredCode
	for i, status := range statuses {
		if status != metadata.AddStatusAccepted {
			ignored = append(ignored, IgnoredCode{Code: codes[i], Reason: status})
		}
	}
	return ignored
}

// ParseFiles parses library exports independently, logging each outcome.
func (s *Service) ParseFiles(ctx context.Context, files []library.NamedReader) []library.FileResult {
	results := library.ParseFiles(ctx, files, s.opts.Library)
	for _, r := range results {
		if r.Failed() {
			log.Printf("[PARSE] Failed to parse %s: %v", r.Name, r.Err)
			continue
		}
		log.Printf("[PARSE] Parsed %d books from %s (%s layout)", len(r.Books), r.Name, r.Layout)
	}
	return results
}

// Merge concatenates the books of the parsed files, sorted by title.
func (s *Service) Merge(results []library.FileResult) []entities.LibraryBook {
	return library.Merge(results, s.opts.Library)
}

// Match matches already known lists and wraps the result in a new report.
func (s *Service) Match(libraryBooks []entities.LibraryBook, isbnBooks []entities.IsbnBook) *Report {
	items := s.matcher.Match(libraryBooks, isbnBooks)
	stats := matching.Stats(items)

	log.Printf("[MATCH] Matched %d books, %d library books and %d scanned books left unmatched",
		stats.MatchedBooks, stats.UnmatchedLibraryBooks, stats.UnmatchedIsbnBooks)

	return &Report{
		ID:        uuid.New().String(),
		CreatedAt: time.Now().UTC(),
		Items:     items,
		Stats:     stats,
	}
}
