package library

import (
	"sort"
	"strings"

	"github.com/mmcdole/myreads/internal/domain"
)

// Synchronous reads. All methods return copies and never block on network.
// Safe to call from View().

// Entry returns a copy of the entry for id
func (s *Store) Entry(id string) (domain.LibraryEntry, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	entry, ok := s.entries[id]
	if !ok {
		return domain.LibraryEntry{}, false
	}
	return entry.Clone(), true
}

// Snapshot returns every entry, including those on ShelfNone, sorted by title
func (s *Store) Snapshot() []domain.LibraryEntry {
	s.mu.RLock()
	entries := make([]domain.LibraryEntry, 0, len(s.entries))
	for _, e := range s.entries {
		entries = append(entries, e.Clone())
	}
	s.mu.RUnlock()

	sortEntries(entries)
	return entries
}

// OnShelf returns the entries on shelf, sorted by title
func (s *Store) OnShelf(shelf domain.Shelf) []domain.LibraryEntry {
	s.mu.RLock()
	var entries []domain.LibraryEntry
	for _, e := range s.entries {
		if e.Shelf == shelf {
			entries = append(entries, e.Clone())
		}
	}
	s.mu.RUnlock()

	sortEntries(entries)
	return entries
}

// Counts returns the number of entries per shelf
func (s *Store) Counts() map[domain.Shelf]int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	counts := make(map[domain.Shelf]int, 4)
	for _, e := range s.entries {
		counts[e.Shelf]++
	}
	return counts
}

// Loaded reports whether a library fetch has succeeded
func (s *Store) Loaded() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loaded
}

// LoadErr returns the error from the last failed fetch, if any
func (s *Store) LoadErr() error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loadErr
}

func sortEntries(entries []domain.LibraryEntry) {
	sort.Slice(entries, func(i, j int) bool {
		ti, tj := strings.ToLower(entries[i].Title), strings.ToLower(entries[j].Title)
		if ti != tj {
			return ti < tj
		}
		return entries[i].ID < entries[j].ID
	})
}
