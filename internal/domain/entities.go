package domain

import (
	"fmt"
	"strings"
)

// Shelf is the shelf a library entry sits on
type Shelf int

const (
	ShelfNone Shelf = iota
	ShelfCurrentlyReading
	ShelfWantToRead
	ShelfRead
)

// Wire values used by the Books API
const (
	wireNone             = "none"
	wireCurrentlyReading = "currentlyReading"
	wireWantToRead       = "wantToRead"
	wireRead             = "read"
)

// Shelves returns the visible shelves in display order.
// ShelfNone is not a shelf anyone looks at, so it is excluded.
func Shelves() []Shelf {
	return []Shelf{ShelfCurrentlyReading, ShelfWantToRead, ShelfRead}
}

// ParseShelf converts a wire value into a Shelf.
// An empty value maps to ShelfNone.
func ParseShelf(s string) (Shelf, error) {
	switch s {
	case "", wireNone:
		return ShelfNone, nil
	case wireCurrentlyReading:
		return ShelfCurrentlyReading, nil
	case wireWantToRead:
		return ShelfWantToRead, nil
	case wireRead:
		return ShelfRead, nil
	default:
		return ShelfNone, fmt.Errorf("%w: %q", ErrInvalidShelf, s)
	}
}

// Valid reports whether s is one of the four known shelves
func (s Shelf) Valid() bool {
	return s >= ShelfNone && s <= ShelfRead
}

// Wire returns the Books API representation of the shelf
func (s Shelf) Wire() string {
	switch s {
	case ShelfCurrentlyReading:
		return wireCurrentlyReading
	case ShelfWantToRead:
		return wireWantToRead
	case ShelfRead:
		return wireRead
	default:
		return wireNone
	}
}

// String returns a human-readable shelf name
func (s Shelf) String() string {
	switch s {
	case ShelfCurrentlyReading:
		return "Currently Reading"
	case ShelfWantToRead:
		return "Want to Read"
	case ShelfRead:
		return "Read"
	case ShelfNone:
		return "None"
	default:
		return "Unknown"
	}
}

// Book is a catalog record. Search results are plain books;
// whether the user owns one is answered by the library store.
type Book struct {
	ID            string   // Stable catalog identifier
	Title         string   // Display title
	Subtitle      string   // Optional subtitle
	Authors       []string // Ordered author names
	CoverURL      string   // Small thumbnail URL, may be empty
	Publisher     string
	PublishedDate string // As reported by the catalog ("2004", "2004-05-01")
	PageCount     int
}

// AuthorLine returns the authors joined for display
func (b Book) AuthorLine() string {
	return strings.Join(b.Authors, ", ")
}

// Clone returns a copy that shares no slices with b
func (b Book) Clone() Book {
	c := b
	if b.Authors != nil {
		c.Authors = append([]string(nil), b.Authors...)
	}
	return c
}

// LibraryEntry is a book the user holds a shelf assignment for.
// ShelfNone means removed from every shelf; the entry is kept until overwritten.
type LibraryEntry struct {
	Book
	Shelf Shelf
}

// Clone returns a deep copy of the entry
func (e LibraryEntry) Clone() LibraryEntry {
	return LibraryEntry{Book: e.Book.Clone(), Shelf: e.Shelf}
}

// SearchResult pairs a catalog book with the shelf it currently sits on.
// The shelf is computed when results are rendered, never stored with the search.
type SearchResult struct {
	Book
	Shelf Shelf
}

// InLibrary reports whether the result is on a visible shelf
func (r SearchResult) InLibrary() bool {
	return r.Shelf != ShelfNone
}
