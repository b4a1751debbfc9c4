package library

import (
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/mmcdole/myreads/internal/domain"
	"github.com/mmcdole/myreads/internal/metrics"
)

const defaultSyncTimeout = 10 * time.Second

// Options configures a Store. Zero values are valid.
type Options struct {
	Observer    domain.SyncObserver // Receives background sync outcomes
	Metrics     *metrics.Metrics
	SyncTimeout time.Duration // Per SetShelf call
}

// Store is the single source of truth for which books the user owns and
// where they are shelved. Shelf moves are applied locally first and pushed
// to the catalog in the background; a failed push never reverts local state.
type Store struct {
	catalog     domain.CatalogService
	observer    domain.SyncObserver
	metrics     *metrics.Metrics
	syncTimeout time.Duration
	logger      *slog.Logger

	mu       sync.RWMutex
	entries  map[string]*domain.LibraryEntry
	revision uint64 // Bumped on every visible change
	// changedAt holds the revision of each entry's last local shelf change.
	// A fetch that started before that revision must not overwrite it.
	changedAt map[string]uint64
	loaded   bool
	loadErr  error
	closed   bool

	// Background syncs. lastSync is closed when the most recently
	// scheduled sync finishes; each sync waits on its predecessor.
	lastSync chan struct{}
}

// NewStore creates an empty store backed by catalog
func NewStore(catalog domain.CatalogService, opts Options, logger *slog.Logger) *Store {
	if logger == nil {
		logger = slog.Default()
	}
	if opts.Observer == nil {
		opts.Observer = domain.NoOpObserver{}
	}
	if opts.SyncTimeout <= 0 {
		opts.SyncTimeout = defaultSyncTimeout
	}
	return &Store{
		catalog:     catalog,
		observer:    opts.Observer,
		metrics:     opts.Metrics,
		syncTimeout: opts.SyncTimeout,
		logger:      logger,
		entries:     make(map[string]*domain.LibraryEntry),
		changedAt:   make(map[string]uint64),
	}
}

// ChangeShelf moves a book to shelf and returns the updated entry.
//
// If id is not in the library, a new entry is built from fallback (a search
// result snapshot). If id is present, fallback is ignored and only the shelf
// changes. The new shelf is visible to readers before this returns; the
// catalog is updated in the background.
func (s *Store) ChangeShelf(id string, shelf domain.Shelf, fallback *domain.Book) (domain.LibraryEntry, error) {
	if !shelf.Valid() {
		return domain.LibraryEntry{}, fmt.Errorf("%w: %d", domain.ErrInvalidShelf, int(shelf))
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return domain.LibraryEntry{}, domain.ErrStoreClosed
	}

	entry, ok := s.entries[id]
	if !ok {
		if fallback == nil {
			return domain.LibraryEntry{}, fmt.Errorf("%w: %s", domain.ErrEntryNotFound, id)
		}
		entry = &domain.LibraryEntry{Book: fallback.Clone()}
		entry.ID = id
		s.entries[id] = entry
		s.logger.Debug("added book to library", "id", id, "title", entry.Title)
	}

	entry.Shelf = shelf
	s.revision++
	s.changedAt[id] = s.revision
	updated := entry.Clone()

	// Scheduled under the lock so sync order matches mutation order.
	s.scheduleSync(updated)

	return updated, nil
}

// ShelfOf returns the shelf for id, or ShelfNone if the book is not owned
func (s *Store) ShelfOf(id string) domain.Shelf {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if entry, ok := s.entries[id]; ok {
		return entry.Shelf
	}
	return domain.ShelfNone
}

// Revision changes whenever the visible library changes
func (s *Store) Revision() uint64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.revision
}

// Wait blocks until every sync scheduled before the call has finished
func (s *Store) Wait() {
	if tail := s.syncTail(); tail != nil {
		<-tail
	}
}

// Close stops accepting shelf changes and waits for pending syncs
func (s *Store) Close() error {
	s.mu.Lock()
	s.closed = true
	tail := s.lastSync
	s.mu.Unlock()

	if tail != nil {
		<-tail
	}
	return nil
}

func (s *Store) syncTail() chan struct{} {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.lastSync
}
