package domain

import "errors"

// Sentinel errors for domain operations
var (
	// ErrEntryNotFound indicates the book is neither in the library nor supplied as a fallback
	ErrEntryNotFound = errors.New("library entry not found")

	// ErrInvalidShelf indicates a shelf value outside the known set
	ErrInvalidShelf = errors.New("invalid shelf")

	// ErrLoadFailed indicates the initial library fetch failed
	ErrLoadFailed = errors.New("failed to load library")

	// ErrNoResults is the catalog's "no matches" marker for a search term
	ErrNoResults = errors.New("no results")

	// ErrServerOffline indicates the catalog service is unreachable
	ErrServerOffline = errors.New("catalog service is unreachable")

	// ErrAuthFailed indicates the catalog rejected the token
	ErrAuthFailed = errors.New("authentication token is invalid")

	// ErrStoreClosed indicates the store no longer accepts background work
	ErrStoreClosed = errors.New("library store is closed")
)
