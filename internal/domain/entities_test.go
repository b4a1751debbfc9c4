package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseShelf(t *testing.T) {
	tests := []struct {
		wire string
		want Shelf
	}{
		{"currentlyReading", ShelfCurrentlyReading},
		{"wantToRead", ShelfWantToRead},
		{"read", ShelfRead},
		{"none", ShelfNone},
		{"", ShelfNone},
	}

	for _, tt := range tests {
		t.Run(tt.wire, func(t *testing.T) {
			got, err := ParseShelf(tt.wire)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	t.Run("unknown", func(t *testing.T) {
		got, err := ParseShelf("finished")
		assert.ErrorIs(t, err, ErrInvalidShelf)
		assert.Equal(t, ShelfNone, got)
	})
}

func TestShelfWireRoundTrip(t *testing.T) {
	for _, s := range []Shelf{ShelfNone, ShelfCurrentlyReading, ShelfWantToRead, ShelfRead} {
		got, err := ParseShelf(s.Wire())
		require.NoError(t, err)
		assert.Equal(t, s, got)
	}
}

func TestShelfValid(t *testing.T) {
	assert.True(t, ShelfNone.Valid())
	assert.True(t, ShelfRead.Valid())
	assert.False(t, Shelf(-1).Valid())
	assert.False(t, Shelf(4).Valid())
	assert.Equal(t, "Unknown", Shelf(9).String())
}

func TestShelvesExcludesNone(t *testing.T) {
	assert.Equal(t, []Shelf{ShelfCurrentlyReading, ShelfWantToRead, ShelfRead}, Shelves())
}

func TestBookClone(t *testing.T) {
	b := Book{ID: "a", Title: "Go", Authors: []string{"Pike", "Kernighan"}}
	c := b.Clone()
	c.Authors[0] = "changed"

	assert.Equal(t, "Pike", b.Authors[0])
	assert.Equal(t, "Pike, Kernighan", b.AuthorLine())
}

func TestSearchResultInLibrary(t *testing.T) {
	assert.False(t, SearchResult{Shelf: ShelfNone}.InLibrary())
	assert.True(t, SearchResult{Shelf: ShelfRead}.InLibrary())
}
