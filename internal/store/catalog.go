package store

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/mmcdole/myreads/internal/domain"
)

// CachedCatalog serves repeated searches from a SearchCache.
// ListLibrary and SetShelf always go to the wrapped catalog.
type CachedCatalog struct {
	next   domain.CatalogService
	cache  domain.SearchCache
	ttl    time.Duration
	logger *slog.Logger
}

// NewCachedCatalog wraps next. A ttl of zero disables caching.
func NewCachedCatalog(next domain.CatalogService, cache domain.SearchCache, ttl time.Duration, logger *slog.Logger) *CachedCatalog {
	if logger == nil {
		logger = slog.Default()
	}
	return &CachedCatalog{next: next, cache: cache, ttl: ttl, logger: logger}
}

func (c *CachedCatalog) ListLibrary(ctx context.Context) ([]domain.LibraryEntry, error) {
	return c.next.ListLibrary(ctx)
}

func (c *CachedCatalog) SetShelf(ctx context.Context, id string, shelf domain.Shelf) error {
	return c.next.SetShelf(ctx, id, shelf)
}

func (c *CachedCatalog) SearchByTerm(ctx context.Context, term string) ([]domain.Book, error) {
	if c.ttl <= 0 {
		return c.next.SearchByTerm(ctx, term)
	}

	if books, ok := c.cache.GetSearch(term, c.ttl); ok {
		c.logger.Debug("search cache hit", "term", term, "results", len(books))
		if len(books) == 0 {
			return nil, domain.ErrNoResults
		}
		return books, nil
	}

	books, err := c.next.SearchByTerm(ctx, term)
	switch {
	case errors.Is(err, domain.ErrNoResults):
		// "No matches" is an answer worth remembering too.
		books = nil
	case err != nil:
		return nil, err
	}

	if saveErr := c.cache.SaveSearch(term, books); saveErr != nil {
		c.logger.Error("failed to save search", "error", saveErr, "term", term)
	}
	return books, err
}
