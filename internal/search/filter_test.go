package search

import (
	"testing"

	"github.com/mmcdole/myreads/internal/domain"
	"github.com/stretchr/testify/assert"
)

func TestFilterEntries(t *testing.T) {
	entries := []domain.LibraryEntry{
		{Book: domain.Book{ID: "1", Title: "Dune", Authors: []string{"Frank Herbert"}}},
		{Book: domain.Book{ID: "2", Title: "Emma", Authors: []string{"Jane Austen"}}},
		{Book: domain.Book{ID: "3", Title: "Persuasion", Authors: []string{"Jane Austen"}}},
	}

	t.Run("empty query returns all", func(t *testing.T) {
		assert.Equal(t, entries, FilterEntries("", entries))
		assert.Equal(t, entries, FilterEntries("   ", entries))
	})

	t.Run("matches title", func(t *testing.T) {
		got := FilterEntries("dune", entries)
		assert.Len(t, got, 1)
		assert.Equal(t, "1", got[0].ID)
	})

	t.Run("matches author", func(t *testing.T) {
		got := FilterEntries("austen", entries)
		var ids []string
		for _, e := range got {
			ids = append(ids, e.ID)
		}
		assert.ElementsMatch(t, []string{"2", "3"}, ids)
	})

	t.Run("case insensitive", func(t *testing.T) {
		assert.Len(t, FilterEntries("EMMA", entries), 1)
	})

	t.Run("no match", func(t *testing.T) {
		assert.Empty(t, FilterEntries("zzz", entries))
	})
}
