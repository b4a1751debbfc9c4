package search

import (
	"strings"

	"github.com/mmcdole/myreads/internal/domain"
	"github.com/sahilm/fuzzy"
)

// entryIndex implements sahilm/fuzzy.Source over library entries.
// Titles and authors are both searchable.
type entryIndex struct {
	entries []domain.LibraryEntry
	keys    []string // Pre-computed lowercase "title authors"
}

func newEntryIndex(entries []domain.LibraryEntry) *entryIndex {
	keys := make([]string, len(entries))
	for i, e := range entries {
		keys[i] = strings.ToLower(e.Title + " " + e.AuthorLine())
	}
	return &entryIndex{entries: entries, keys: keys}
}

// String returns the search key at index i (implements fuzzy.Source)
func (idx *entryIndex) String(i int) string { return idx.keys[i] }

// Len returns the number of entries (implements fuzzy.Source)
func (idx *entryIndex) Len() int { return len(idx.entries) }

// FilterEntries narrows a shelf to entries matching query, best match first.
// An empty query returns entries unchanged.
func FilterEntries(query string, entries []domain.LibraryEntry) []domain.LibraryEntry {
	query = strings.TrimSpace(query)
	if query == "" {
		return entries
	}

	idx := newEntryIndex(entries)
	matches := fuzzy.FindFrom(strings.ToLower(query), idx)

	filtered := make([]domain.LibraryEntry, len(matches))
	for i, m := range matches {
		filtered[i] = entries[m.Index]
	}
	return filtered
}
