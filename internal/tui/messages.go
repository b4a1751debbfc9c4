package tui

import (
	"github.com/mmcdole/myreads/internal/domain"
	"github.com/mmcdole/myreads/internal/search"
)

// Message types for the TUI

// LibraryLoadedMsg signals that a library fetch finished.
// The store already holds the result; Err is set when the fetch failed.
type LibraryLoadedMsg struct {
	Err    error
	Reload bool
}

// SearchResultsMsg carries a catalog answer back to Update for Resolve
type SearchResultsMsg struct {
	Outcome search.Outcome
}

// ShelfSyncedMsg reports that a background shelf update finished
type ShelfSyncedMsg struct {
	Sync domain.ShelfSync
}

// ClearStatusMsg clears the status line if it still shows the given id
type ClearStatusMsg struct {
	ID int
}
