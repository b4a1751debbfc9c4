package domain

import "time"

// SearchCache holds catalog search responses (BoltDB + memory).
// Only search responses are cached; the library and shelf moves always hit the network.
type SearchCache interface {
	// GetSearch returns cached books for a term if stored within maxAge
	GetSearch(term string, maxAge time.Duration) ([]Book, bool)
	SaveSearch(term string, books []Book) error

	// === Invalidation ===
	InvalidateSearch(term string)
	InvalidateAll()

	Close() error
}
