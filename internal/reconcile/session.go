package reconcile

import (
	"context"
	"fmt"
	"log"

	"github.com/mrlokans/shelfcheck/internal/entities"
	"github.com/mrlokans/shelfcheck/internal/library"
	"github.com/mrlokans/shelfcheck/internal/metadata"
)

// Session keeps the codes scanned so far. Their metadata is fetched in the
// background as they are added, and library files are matched against
// whatever has been fetched once the pending fetches are done.
type Session struct {
	service   *Service
	ctx       context.Context
	collector *metadata.Collector
}

// SessionState is a snapshot of a scan session.
type SessionState struct {
	Codes       []string              `json:"codes"`
	Fetching    bool                  `json:"fetching"`
	Books       []entities.IsbnBook   `json:"books"`
	FetchErrors []metadata.FetchError `json:"fetch_errors,omitempty"`
}

// NewSession starts an empty session. Fetches run until ctx is done, not
// until the request that added the code ends.
func (s *Service) NewSession(ctx context.Context) *Session {
	return &Session{
		service:   s,
		ctx:       ctx,
		collector: metadata.NewCollector(s.provider, s.opts.FetchConcurrency),
	}
}

// Add scans codes and returns the ones that were not accepted.
func (s *Session) Add(codes []string) []IgnoredCode {
	ignored := ignoredCodes(codes, s.collector.AddAll(s.ctx, codes))
	log.Printf("[FETCH] Scanned %d codes, %d ignored", len(codes), len(ignored))
	return ignored
}

func (s *Session) State() SessionState {
	return SessionState{
		Codes:       s.collector.Codes(),
		Fetching:    s.collector.Fetching(),
		Books:       s.collector.Books(),
		FetchErrors: s.collector.Errors(),
	}
}

// Reset forgets every scanned code.
func (s *Session) Reset() {
	s.collector.Reset()
	log.Printf("[FETCH] Scan session cleared")
}

// Reconcile parses files and matches them with the scanned books, waiting
// for the pending fetches first.
func (s *Session) Reconcile(ctx context.Context, files []library.NamedReader) (*Report, error) {
	libraryBooks, summaries, err := s.service.parseAll(ctx, files)
	if err != nil {
		return nil, err
	}

	if s.collector.Fetching() {
		log.Printf("[FETCH] Waiting for pending ISBN fetches")
	}
	s.collector.Wait()
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("fetch metadata: %w", err)
	}

	return s.service.report(libraryBooks, summaries, s.collector), nil
}
