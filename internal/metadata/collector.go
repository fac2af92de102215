package metadata

import (
	"context"
	"log"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/mrlokans/shelfcheck/internal/entities"
	"github.com/mrlokans/shelfcheck/internal/isbn"
)

// AddStatus tells what Collector.Add did with a scanned code.
type AddStatus string

const (
	AddStatusAccepted  AddStatus = "accepted"
	AddStatusInvalid   AddStatus = "invalid"
	AddStatusDuplicate AddStatus = "duplicate"
)

// FetchError records a code whose metadata could not be fetched.
type FetchError struct {
	IsbnCode string `json:"isbn_code"`
	Message  string `json:"message"`
	Err      error  `json:"-"`
}

type slot struct {
	code string
	book *entities.IsbnBook
	err  error
	done bool
}

// Collector gathers the metadata of scanned codes. Invalid and already
// scanned codes are ignored, accepted codes are fetched in the background.
// Books are reported in scan order, so the batch handed to the matcher is
// stable whatever the fetch completion order.
type Collector struct {
	provider    Provider
	concurrency int

	mu    sync.Mutex
	slots []*slot
	seen  map[string]bool
	group *errgroup.Group
}

// NewCollector creates a collector fetching at most concurrency codes at once.
func NewCollector(provider Provider, concurrency int) *Collector {
	c := &Collector{provider: provider, concurrency: concurrency}
	c.resetLocked()
	return c
}

func (c *Collector) resetLocked() {
	c.slots = nil
	c.seen = make(map[string]bool)
	c.group = &errgroup.Group{}
	if c.concurrency > 0 {
		c.group.SetLimit(c.concurrency)
	}
}

// Add registers a scanned code and starts fetching its metadata. It blocks
// while all fetch slots are busy.
func (c *Collector) Add(ctx context.Context, code string) AddStatus {
	if !isbn.IsValid(code) {
		log.Printf("[FETCH] Ignoring invalid ISBN code %q", code)
		return AddStatusInvalid
	}
	code = isbn.Clean(code)

	c.mu.Lock()
	if c.seen[code] {
		c.mu.Unlock()
		log.Printf("[FETCH] Ignoring already added ISBN code %s", code)
		return AddStatusDuplicate
	}
	c.seen[code] = true
	s := &slot{code: code}
	c.slots = append(c.slots, s)
	group := c.group
	c.mu.Unlock()

	group.Go(func() error {
		book, err := c.provider.FetchByISBN(ctx, code)

		c.mu.Lock()
		defer c.mu.Unlock()
		s.book, s.err, s.done = book, err, true
		if err != nil {
			log.Printf("[FETCH] Error fetching ISBN data for code %s: %v", code, err)
		}
		return nil // Failures are recorded per code
	})

	return AddStatusAccepted
}

// AddAll adds every code and returns the status of each, in order.
func (c *Collector) AddAll(ctx context.Context, codes []string) []AddStatus {
	statuses := make([]AddStatus, len(codes))
	for i, code := range codes {
		statuses[i] = c.Add(ctx, code)
	}
	return statuses
}

// Wait blocks until every accepted code has been fetched or failed.
func (c *Collector) Wait() {
	c.mu.Lock()
	group := c.group
	c.mu.Unlock()
	_ = group.Wait()
}

// Fetching reports whether some accepted codes are still being fetched.
func (c *Collector) Fetching() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, s := range c.slots {
		if !s.done {
			return true
		}
	}
	return false
}

// Codes returns the accepted codes in scan order.
func (c *Collector) Codes() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	codes := make([]string, 0, len(c.slots))
	for _, s := range c.slots {
		codes = append(codes, s.code)
	}
	return codes
}

// Books returns the fetched books in scan order. A book is listed once per
// ISBN even if a provider answered with the same record for two codes.
func (c *Collector) Books() []entities.IsbnBook {
	c.mu.Lock()
	defer c.mu.Unlock()

	books := make([]entities.IsbnBook, 0, len(c.slots))
	seen := make(map[string]bool, len(c.slots))
	for _, s := range c.slots {
		if !s.done || s.book == nil || seen[s.book.IsbnCode] {
			continue
		}
		seen[s.book.IsbnCode] = true
		books = append(books, *s.book)
	}
	return books
}

// Errors returns the failed fetches in scan order.
func (c *Collector) Errors() []FetchError {
	c.mu.Lock()
	defer c.mu.Unlock()

	var errs []FetchError
	for _, s := range c.slots {
		if s.done && s.err != nil {
			errs = append(errs, FetchError{
				IsbnCode: s.code,
				Message:  "Error fetching isbn data for code " + s.code + ": " + s.err.Error(),
				Err:      s.err,
			})
		}
	}
	return errs
}

// Reset forgets every code, then waits for the fetches started before it.
// A code added while Reset waits belongs to the new state.
func (c *Collector) Reset() {
	c.mu.Lock()
	previous := c.group
	c.resetLocked()
	c.mu.Unlock()

	_ = previous.Wait()
}
