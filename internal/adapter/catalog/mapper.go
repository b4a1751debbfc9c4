package catalog

import "github.com/mmcdole/myreads/internal/domain"

// MapBooks converts API books to domain books
func MapBooks(books []Book) []domain.Book {
	items := make([]domain.Book, 0, len(books))
	for _, b := range books {
		if b.ID == "" {
			continue
		}
		items = append(items, mapBook(b))
	}
	return items
}

// MapLibrary converts API books to library entries.
// Unknown shelf values are reported back so the caller can log them;
// those entries land on ShelfNone.
func MapLibrary(books []Book) (entries []domain.LibraryEntry, unknown []string) {
	entries = make([]domain.LibraryEntry, 0, len(books))
	for _, b := range books {
		if b.ID == "" {
			continue
		}
		shelf, err := domain.ParseShelf(b.Shelf)
		if err != nil {
			unknown = append(unknown, b.Shelf)
		}
		entries = append(entries, domain.LibraryEntry{Book: mapBook(b), Shelf: shelf})
	}
	return entries, unknown
}

func mapBook(b Book) domain.Book {
	return domain.Book{
		ID:            b.ID,
		Title:         b.Title,
		Subtitle:      b.Subtitle,
		Authors:       b.Authors,
		CoverURL:      coverURL(b.ImageLinks),
		Publisher:     b.Publisher,
		PublishedDate: b.PublishedDate,
		PageCount:     b.PageCount,
	}
}

// coverURL prefers the small thumbnail, which is what the shelves display
func coverURL(links *ImageLinks) string {
	if links == nil {
		return ""
	}
	if links.SmallThumbnail != "" {
		return links.SmallThumbnail
	}
	return links.Thumbnail
}
