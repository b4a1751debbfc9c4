package catalog

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/mmcdole/myreads/internal/domain"
	"github.com/stretchr/testify/assert"
)

func TestMapLibrary(t *testing.T) {
	books := []Book{
		{ID: "a", Title: "Dune", Subtitle: "Deluxe", Authors: []string{"Frank Herbert"}, Publisher: "Ace",
			PublishedDate: "1990", PageCount: 535, Shelf: "wantToRead",
			ImageLinks: &ImageLinks{Thumbnail: "http://img/a"}},
		{ID: "b", Title: "Mystery", Shelf: "finished"},
		{Title: "No ID", Shelf: "read"},
	}

	entries, unknown := MapLibrary(books)

	want := []domain.LibraryEntry{
		{Book: domain.Book{ID: "a", Title: "Dune", Subtitle: "Deluxe", Authors: []string{"Frank Herbert"},
			CoverURL: "http://img/a", Publisher: "Ace", PublishedDate: "1990", PageCount: 535},
			Shelf: domain.ShelfWantToRead},
		{Book: domain.Book{ID: "b", Title: "Mystery"}, Shelf: domain.ShelfNone},
	}
	if diff := cmp.Diff(want, entries); diff != "" {
		t.Errorf("MapLibrary mismatch (-want +got):\n%s", diff)
	}
	assert.Equal(t, []string{"finished"}, unknown)
}

func TestMapBooksSkipsMissingIDs(t *testing.T) {
	got := MapBooks([]Book{{ID: "1", Title: "A"}, {Title: "B"}})
	assert.Len(t, got, 1)
	assert.Equal(t, "", got[0].CoverURL)
}

func TestUpdateResponseShelved(t *testing.T) {
	resp := UpdateResponse{
		CurrentlyReading: []string{"a"},
		WantToRead:       []string{"b"},
		Read:             []string{"c"},
	}

	tests := []struct {
		id    string
		shelf domain.Shelf
		want  bool
	}{
		{"a", domain.ShelfCurrentlyReading, true},
		{"b", domain.ShelfWantToRead, true},
		{"c", domain.ShelfRead, true},
		{"a", domain.ShelfRead, false},
		{"a", domain.ShelfNone, false},
		{"z", domain.ShelfNone, true},
		{"z", domain.ShelfRead, false},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, resp.Shelved(tt.id, tt.shelf), "%s on %s", tt.id, tt.shelf)
	}
}
