package catalog

import (
	"encoding/json"
	"slices"

	"github.com/mmcdole/myreads/internal/domain"
)

// Book is a book record as returned by the Books API
type Book struct {
	ID            string      `json:"id"`
	Title         string      `json:"title"`
	Subtitle      string      `json:"subtitle,omitempty"`
	Authors       []string    `json:"authors,omitempty"`
	Publisher     string      `json:"publisher,omitempty"`
	PublishedDate string      `json:"publishedDate,omitempty"`
	PageCount     int         `json:"pageCount,omitempty"`
	ImageLinks    *ImageLinks `json:"imageLinks,omitempty"`
	Shelf         string      `json:"shelf,omitempty"` // Only set on library books
}

// ImageLinks holds cover image URLs
type ImageLinks struct {
	SmallThumbnail string `json:"smallThumbnail,omitempty"`
	Thumbnail      string `json:"thumbnail,omitempty"`
}

// LibraryResponse is the body of GET /books
type LibraryResponse struct {
	Books []Book `json:"books"`
}

// SearchRequest is the body of POST /search
type SearchRequest struct {
	Query      string `json:"query"`
	MaxResults int    `json:"maxResults"`
}

// SearchResponse is the body of POST /search.
// Books is either an array of books or an error marker object.
type SearchResponse struct {
	Books json.RawMessage `json:"books"`
}

// SearchError is the error marker the API returns in place of results
type SearchError struct {
	Error string `json:"error"`
}

// UpdateRequest is the body of PUT /books/{id}
type UpdateRequest struct {
	Shelf string `json:"shelf"`
}

// UpdateResponse lists book ids per shelf after an update
type UpdateResponse struct {
	CurrentlyReading []string `json:"currentlyReading"`
	WantToRead       []string `json:"wantToRead"`
	Read             []string `json:"read"`
}

// Shelved reports whether the response places id on shelf.
// For domain.ShelfNone it reports that id is on no shelf.
func (r UpdateResponse) Shelved(id string, shelf domain.Shelf) bool {
	lists := map[domain.Shelf][]string{
		domain.ShelfCurrentlyReading: r.CurrentlyReading,
		domain.ShelfWantToRead:       r.WantToRead,
		domain.ShelfRead:             r.Read,
	}
	for s, ids := range lists {
		if slices.Contains(ids, id) {
			return s == shelf
		}
	}
	return shelf == domain.ShelfNone
}
