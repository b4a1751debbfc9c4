package domain

import "context"

//go:generate mockgen -source=interfaces.go -destination=mocks/mock_catalog.go -package=mocks

// CatalogService is the remote Books API.
// All methods may block on network and must not be called from View().
type CatalogService interface {
	// ListLibrary returns every book the user holds a shelf assignment for
	ListLibrary(ctx context.Context) ([]LibraryEntry, error)

	// SearchByTerm returns catalog books matching a non-empty term.
	// A term with no matches returns ErrNoResults.
	SearchByTerm(ctx context.Context, term string) ([]Book, error)

	// SetShelf moves a book to a shelf on the server
	SetShelf(ctx context.Context, id string, shelf Shelf) error
}

// ShelfLookup answers which shelf a book is on (ShelfNone when not owned).
// Implemented by library.Store; consumed by search rendering.
type ShelfLookup interface {
	ShelfOf(id string) Shelf
}

// ShelfSync reports the outcome of a background shelf update.
type ShelfSync struct {
	ID    string
	Title string
	Shelf Shelf
	Err   error // nil when the catalog acknowledged the change
}

// SyncObserver receives background shelf sync outcomes.
type SyncObserver interface {
	OnShelfSync(result ShelfSync)
}

// NoOpObserver discards sync outcomes (for testing/batch operations).
type NoOpObserver struct{}

func (NoOpObserver) OnShelfSync(ShelfSync) {}
