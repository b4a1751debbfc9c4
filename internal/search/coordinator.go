package search

import (
	"context"
	"errors"
	"log/slog"
	"sync"

	"github.com/mmcdole/myreads/internal/domain"
	"github.com/mmcdole/myreads/internal/metrics"
)

// State is the coordinator's search state
type State int

const (
	StateIdle    State = iota // No term; no results
	StatePending              // Waiting on the latest query
	StateSettled              // Latest query answered (possibly with no results)
)

// String returns a human-readable representation of the state
func (s State) String() string {
	switch s {
	case StateIdle:
		return "Idle"
	case StatePending:
		return "Pending"
	case StateSettled:
		return "Settled"
	default:
		return "Unknown"
	}
}

// Query is one search session. Only the query carrying the coordinator's
// current version may change what is displayed.
type Query struct {
	Term    string
	Version uint64
}

// IsEmpty reports whether the query clears the search instead of running one
func (q Query) IsEmpty() bool {
	return q.Term == ""
}

// Outcome is the catalog's answer to a query
type Outcome struct {
	Query Query
	Books []domain.Book
	Err   error
}

// Options configures a Coordinator
type Options struct {
	Rank    bool // Re-rank settled results by fuzzy title match
	Metrics *metrics.Metrics
}

// Coordinator runs catalog searches so that only the most recently
// submitted term's results are ever shown, whatever order responses arrive in.
type Coordinator struct {
	catalog domain.CatalogService
	rank    bool
	metrics *metrics.Metrics
	logger  *slog.Logger

	mu      sync.Mutex
	version uint64 // Never reset or reused
	state   State
	term    string
	results []domain.Book
}

// NewCoordinator creates an idle coordinator
func NewCoordinator(catalog domain.CatalogService, opts Options, logger *slog.Logger) *Coordinator {
	if logger == nil {
		logger = slog.Default()
	}
	return &Coordinator{
		catalog: catalog,
		rank:    opts.Rank,
		metrics: opts.Metrics,
		logger:  logger,
	}
}

// Submit starts a new session for term and supersedes any earlier one.
// An empty term clears results immediately and needs no network call;
// it still takes a version so late responses cannot repopulate the results.
func (c *Coordinator) Submit(term string) Query {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.version++
	c.term = term
	c.results = nil

	if term == "" {
		c.state = StateIdle
	} else {
		c.state = StatePending
	}
	return Query{Term: term, Version: c.version}
}

// Execute asks the catalog for q's results. It blocks on network and must
// run off the UI goroutine. The outcome is applied with Resolve.
func (c *Coordinator) Execute(ctx context.Context, q Query) Outcome {
	if q.IsEmpty() {
		return Outcome{Query: q}
	}
	c.logger.Debug("searching", "term", q.Term, "version", q.Version)
	books, err := c.catalog.SearchByTerm(ctx, q.Term)
	return Outcome{Query: q, Books: books, Err: err}
}

// Resolve applies o if it answers the current query and reports whether it
// did. Stale outcomes are dropped without touching state. A failed search
// settles with no results.
func (c *Coordinator) Resolve(o Outcome) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if o.Query.IsEmpty() {
		return false
	}
	if o.Query.Version != c.version {
		c.metrics.SearchResponse(metrics.SearchStale)
		c.logger.Debug("discarding stale search results",
			"term", o.Query.Term, "version", o.Query.Version, "current", c.version)
		return false
	}

	c.state = StateSettled
	if o.Err != nil {
		c.metrics.SearchResponse(metrics.SearchFailed)
		if !errors.Is(o.Err, domain.ErrNoResults) {
			c.logger.Warn("search failed", "term", o.Query.Term, "error", o.Err)
		}
		c.results = []domain.Book{}
		return true
	}

	c.metrics.SearchResponse(metrics.SearchApplied)
	books := dedupe(o.Books)
	if c.rank {
		books = Rank(o.Query.Term, books)
	}
	c.results = books
	c.logger.Debug("search complete", "term", o.Query.Term, "results", len(books))
	return true
}

// Search is Submit, Execute and Resolve in one blocking call.
// It reports whether the results were applied.
func (c *Coordinator) Search(ctx context.Context, term string) bool {
	q := c.Submit(term)
	if q.IsEmpty() {
		return true
	}
	return c.Resolve(c.Execute(ctx, q))
}

// Results returns the settled results with each book's shelf looked up now.
// Shelves are never cached with the results, so a shelf change made after
// the search ran shows up on the next render.
func (c *Coordinator) Results(lookup domain.ShelfLookup) []domain.SearchResult {
	c.mu.Lock()
	books := make([]domain.Book, len(c.results))
	copy(books, c.results)
	c.mu.Unlock()

	results := make([]domain.SearchResult, len(books))
	for i, b := range books {
		shelf := domain.ShelfNone
		if lookup != nil {
			shelf = lookup.ShelfOf(b.ID)
		}
		results[i] = domain.SearchResult{Book: b.Clone(), Shelf: shelf}
	}
	return results
}

// Book returns the settled result with id, used as the fallback snapshot
// when shelving a book that is not in the library yet
func (c *Coordinator) Book(id string) (domain.Book, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, b := range c.results {
		if b.ID == id {
			return b.Clone(), true
		}
	}
	return domain.Book{}, false
}

// State returns the current state
func (c *Coordinator) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Term returns the most recently submitted term
func (c *Coordinator) Term() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.term
}

// Version returns the current version token
func (c *Coordinator) Version() uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.version
}

// dedupe drops repeated ids, keeping the first occurrence
func dedupe(books []domain.Book) []domain.Book {
	seen := make(map[string]bool, len(books))
	out := make([]domain.Book, 0, len(books))
	for _, b := range books {
		if seen[b.ID] {
			continue
		}
		seen[b.ID] = true
		out = append(out, b)
	}
	return out
}
