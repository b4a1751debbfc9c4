package library

import (
	"context"
	"fmt"

	"github.com/mmcdole/myreads/internal/domain"
)

// Asynchronous operations that hit the network.
// Initialize and Reload must be called from tea.Cmd functions, never from View().

// Initialize performs the initial full fetch. On failure the library stays
// empty and the error is kept for LoadErr; there is no automatic retry.
// Shelf changes made while the fetch is in flight are kept.
func (s *Store) Initialize(ctx context.Context) error {
	return s.load(ctx, false)
}

// Reload refetches the library. Unlike Initialize, a failed reload keeps
// the current entries.
func (s *Store) Reload(ctx context.Context) error {
	return s.load(ctx, true)
}

// load replaces the entries with the catalog's listing. Pending syncs land
// first so the listing reflects them; changes made after that point win
// over the listing.
func (s *Store) load(ctx context.Context, keepOnError bool) error {
	if err := s.waitSyncs(ctx); err != nil {
		return err
	}

	started := s.Revision()
	entries, err := s.catalog.ListLibrary(ctx)

	s.mu.Lock()
	defer s.mu.Unlock()

	if err != nil {
		s.loadErr = err
		if !keepOnError {
			s.entries = s.changedSince(started, make(map[string]*domain.LibraryEntry))
			s.loaded = false
			s.revision++
		}
		s.logger.Error("failed to load library", "error", err)
		return fmt.Errorf("%w: %w", domain.ErrLoadFailed, err)
	}

	fresh := make(map[string]*domain.LibraryEntry, len(entries))
	for _, e := range entries {
		if e.ID == "" {
			s.logger.Warn("skipping library entry without id", "title", e.Title)
			continue
		}
		entry := e.Clone()
		fresh[e.ID] = &entry
	}

	s.entries = s.changedSince(started, fresh)
	s.loaded = true
	s.loadErr = nil
	s.revision++
	s.logger.Debug("loaded library", "count", len(s.entries))
	return nil
}

// changedSince copies local entries changed after revision into fetched,
// so a fetch never undoes a shelf move made while it was in flight.
// Caller must hold s.mu.
func (s *Store) changedSince(revision uint64, fetched map[string]*domain.LibraryEntry) map[string]*domain.LibraryEntry {
	for id, rev := range s.changedAt {
		if rev <= revision {
			delete(s.changedAt, id)
			continue
		}
		if local, ok := s.entries[id]; ok {
			if remote, ok := fetched[id]; ok {
				s.logger.Debug("keeping local shelf over fetched copy",
					"id", id, "local", local.Shelf.Wire(), "fetched", remote.Shelf.Wire())
			}
			fetched[id] = local
		}
	}
	return fetched
}

// waitSyncs waits for scheduled syncs or ctx, whichever comes first
func (s *Store) waitSyncs(ctx context.Context) error {
	tail := s.syncTail()
	if tail == nil {
		return nil
	}

	select {
	case <-tail:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// scheduleSync pushes a shelf change to the catalog in the background.
// Caller must hold s.mu.
func (s *Store) scheduleSync(entry domain.LibraryEntry) {
	prev := s.lastSync
	done := make(chan struct{})
	s.lastSync = done

	go func() {
		defer close(done)

		if prev != nil {
			<-prev
		}
		s.syncShelf(entry)
	}()
}

func (s *Store) syncShelf(entry domain.LibraryEntry) {
	ctx, cancel := context.WithTimeout(context.Background(), s.syncTimeout)
	defer cancel()

	err := s.catalog.SetShelf(ctx, entry.ID, entry.Shelf)
	s.metrics.ShelfSync(err)

	if err != nil {
		// Local state is not rolled back; the catalog is eventually consistent.
		s.logger.Warn("failed to sync shelf",
			"id", entry.ID, "title", entry.Title, "shelf", entry.Shelf.Wire(), "error", err)
	} else {
		s.logger.Info("moved book", "title", entry.Title, "shelf", entry.Shelf.String())
	}

	s.observer.OnShelfSync(domain.ShelfSync{
		ID:    entry.ID,
		Title: entry.Title,
		Shelf: entry.Shelf,
		Err:   err,
	})
}
