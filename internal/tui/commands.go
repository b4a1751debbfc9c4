package tui

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mmcdole/myreads/internal/domain"
	"github.com/mmcdole/myreads/internal/library"
	"github.com/mmcdole/myreads/internal/search"
)

// Command factories for async operations

const (
	loadTimeout   = 30 * time.Second
	searchTimeout = 20 * time.Second
	statusTTL     = 4 * time.Second
)

// LoadLibraryCmd performs the initial library fetch
func LoadLibraryCmd(store *library.Store) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), loadTimeout)
		defer cancel()

		return LibraryLoadedMsg{Err: store.Initialize(ctx)}
	}
}

// ReloadLibraryCmd refetches the library once pending shelf syncs land
func ReloadLibraryCmd(store *library.Store) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), loadTimeout)
		defer cancel()

		return LibraryLoadedMsg{Err: store.Reload(ctx), Reload: true}
	}
}

// SearchCmd runs q against the catalog. The result is applied in Update,
// where the coordinator drops it if a newer query was submitted meanwhile.
func SearchCmd(coord *search.Coordinator, q search.Query) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), searchTimeout)
		defer cancel()

		return SearchResultsMsg{Outcome: coord.Execute(ctx, q)}
	}
}

// WaitForSyncCmd waits for the next background shelf sync outcome
func WaitForSyncCmd(ch <-chan domain.ShelfSync) tea.Cmd {
	if ch == nil {
		return nil
	}
	return func() tea.Msg {
		sync, ok := <-ch
		if !ok {
			return nil
		}
		return ShelfSyncedMsg{Sync: sync}
	}
}

// ClearStatusCmd clears status line id after a delay
func ClearStatusCmd(id int) tea.Cmd {
	return tea.Tick(statusTTL, func(time.Time) tea.Msg {
		return ClearStatusMsg{ID: id}
	})
}
