package tui

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mmcdole/myreads/internal/domain"
	"github.com/mmcdole/myreads/internal/library"
	"github.com/mmcdole/myreads/internal/search"
	"github.com/mmcdole/myreads/internal/tui/components"
	"github.com/mmcdole/myreads/internal/tui/styles"
)

// ViewMode is the screen currently shown
type ViewMode int

const (
	ViewShelves ViewMode = iota
	ViewSearch
)

// Vertical chrome: header, tab bar and blank line, status and help lines
const (
	headerHeight = 1
	tabsHeight   = 2
	footerHeight = 2
)

// Model is the main Bubble Tea model for the application
type Model struct {
	// Services
	Library *library.Store
	Search  *search.Coordinator

	syncCh <-chan domain.ShelfSync
	logger *slog.Logger
	server string

	keys     KeyMap
	help     help.Model
	showHelp bool

	view ViewMode

	// Shelves view
	shelfIdx  int
	shelfList components.BookList
	filter    textinput.Model
	spinner   spinner.Model
	loading   bool

	// Search view
	searchBox      components.SearchBox
	results        components.BookList
	resultsFocused bool

	// Inputs the current rows were built from
	rowsKey rowsKey

	// Status line
	status    string
	statusErr bool
	statusID  int

	Width  int
	Height int
}

// rowsKey identifies what the list rows were last built from
type rowsKey struct {
	revision      uint64
	shelfIdx      int
	filter        string
	searchVersion uint64
	searchState   search.State
}

// NewModel creates the root model. syncCh delivers background shelf sync
// outcomes from a ChannelObserver registered with store.
func NewModel(store *library.Store, coord *search.Coordinator, syncCh <-chan domain.ShelfSync, server string, logger *slog.Logger) Model {
	if logger == nil {
		logger = slog.Default()
	}

	fi := textinput.New()
	fi.Placeholder = "Filter shelf"
	fi.Prompt = "/ "
	fi.PromptStyle = styles.AccentStyle
	fi.PlaceholderStyle = styles.DimStyle
	fi.CharLimit = 100

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = styles.SpinnerStyle

	h := help.New()
	h.Styles.ShortKey = styles.HelpKeyStyle
	h.Styles.ShortDesc = styles.HelpDescStyle
	h.Styles.FullKey = styles.HelpKeyStyle
	h.Styles.FullDesc = styles.HelpDescStyle

	results := components.NewBookList("Type to search the catalog")
	results.SetFocused(false)

	return Model{
		Library:   store,
		Search:    coord,
		syncCh:    syncCh,
		logger:    logger,
		server:    server,
		keys:      Keys,
		help:      h,
		shelfList: components.NewBookList("No books on this shelf"),
		filter:    fi,
		spinner:   sp,
		loading:   true,
		searchBox: components.NewSearchBox(),
		results:   results,
		rowsKey:   rowsKey{shelfIdx: -1}, // Forces the first build
	}
}

// Init starts the initial library load and begins listening for syncs
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		LoadLibraryCmd(m.Library),
		WaitForSyncCmd(m.syncCh),
		m.spinner.Tick,
	)
}

// Update handles messages
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.Width = msg.Width
		m.Height = msg.Height
		m.resize()

	case tea.KeyMsg:
		var cmd tea.Cmd
		m, cmd = m.handleKey(msg)
		cmds = append(cmds, cmd)

	case spinner.TickMsg:
		if m.loading {
			var cmd tea.Cmd
			m.spinner, cmd = m.spinner.Update(msg)
			cmds = append(cmds, cmd)
		}
		var cmd tea.Cmd
		m.searchBox, cmd = m.searchBox.Update(msg)
		cmds = append(cmds, cmd)

	case LibraryLoadedMsg:
		m.loading = false
		switch {
		case msg.Err != nil && msg.Reload:
			cmds = append(cmds, m.setStatus("Reload failed: "+describeErr(msg.Err), true))
		case msg.Err != nil:
			cmds = append(cmds, m.setStatus("Could not load library: "+describeErr(msg.Err), true))
		case msg.Reload:
			cmds = append(cmds, m.setStatus("Library reloaded", false))
		}

	case SearchResultsMsg:
		if m.Search.Resolve(msg.Outcome) {
			m.results.Reset()
		}
		if m.Search.State() != search.StatePending {
			m.searchBox.SetLoading(false)
		}

	case ShelfSyncedMsg:
		if msg.Sync.Err != nil {
			text := fmt.Sprintf("Could not save %q to the server: %s", msg.Sync.Title, describeErr(msg.Sync.Err))
			cmds = append(cmds, m.setStatus(text, true))
		}
		cmds = append(cmds, WaitForSyncCmd(m.syncCh))

	case ClearStatusMsg:
		if msg.ID == m.statusID {
			m.status = ""
			m.statusErr = false
		}
	}

	m.refresh()
	return m, tea.Batch(cmds...)
}

func (m Model) handleKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	if msg.Type == tea.KeyCtrlC {
		return m, tea.Quit
	}
	if m.view == ViewSearch {
		return m.handleSearchKey(msg)
	}
	return m.handleShelvesKey(msg)
}

func (m Model) handleShelvesKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	if m.filter.Focused() {
		switch msg.Type {
		case tea.KeyEsc:
			m.filter.SetValue("")
			m.filter.Blur()
			m.resize()
			return m, nil
		case tea.KeyEnter:
			m.filter.Blur()
			if m.filter.Value() == "" {
				m.resize()
			}
			return m, nil
		}
		var cmd tea.Cmd
		m.filter, cmd = m.filter.Update(msg)
		m.shelfList.Reset()
		return m, cmd
	}

	if shelf, ok := m.keys.shelfFor(msg); ok {
		row, ok := m.shelfList.Selected()
		if !ok {
			return m, nil
		}
		return m, m.moveBook(row.ID, shelf, nil)
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Help):
		m.showHelp = !m.showHelp
		m.help.ShowAll = m.showHelp
		m.resize()
	case key.Matches(msg, m.keys.Search):
		return m.openSearch()
	case key.Matches(msg, m.keys.Filter):
		cmd := m.filter.Focus()
		m.resize()
		return m, cmd
	case key.Matches(msg, m.keys.Reload):
		if m.loading {
			return m, nil
		}
		m.loading = true
		return m, tea.Batch(ReloadLibraryCmd(m.Library), m.spinner.Tick)
	case key.Matches(msg, m.keys.Escape):
		if m.filter.Value() != "" {
			m.filter.SetValue("")
			m.resize()
		}
	case key.Matches(msg, m.keys.NextTab):
		m.shelfIdx = (m.shelfIdx + 1) % len(domain.Shelves())
		m.shelfList.Reset()
	case key.Matches(msg, m.keys.PrevTab):
		n := len(domain.Shelves())
		m.shelfIdx = (m.shelfIdx + n - 1) % n
		m.shelfList.Reset()
	default:
		navigate(&m.shelfList, m.keys, msg)
	}
	return m, nil
}

func (m Model) handleSearchKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	if m.resultsFocused {
		if shelf, ok := m.keys.shelfFor(msg); ok {
			row, ok := m.results.Selected()
			if !ok {
				return m, nil
			}
			var fallback *domain.Book
			if book, found := m.Search.Book(row.ID); found {
				fallback = &book
			}
			return m, m.moveBook(row.ID, shelf, fallback)
		}

		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, m.keys.Escape), key.Matches(msg, m.keys.Focus), key.Matches(msg, m.keys.Filter):
			return m.focusSearchInput()
		case key.Matches(msg, m.keys.Up) && m.results.Cursor() == 0:
			return m.focusSearchInput()
		default:
			navigate(&m.results, m.keys, msg)
		}
		return m, nil
	}

	switch msg.Type {
	case tea.KeyEsc:
		return m.closeSearch()
	case tea.KeyTab, tea.KeyDown, tea.KeyEnter:
		if m.results.Len() > 0 {
			m.searchBox.Blur()
			m.resultsFocused = true
			m.results.SetFocused(true)
		}
		return m, nil
	}

	var cmds []tea.Cmd
	var cmd tea.Cmd
	m.searchBox, cmd = m.searchBox.Update(msg)
	cmds = append(cmds, cmd)

	if m.searchBox.Changed() {
		q := m.Search.Submit(m.searchBox.Value())
		m.results.Reset()
		if q.IsEmpty() {
			m.searchBox.SetLoading(false)
		} else {
			cmds = append(cmds, SearchCmd(m.Search, q), m.searchBox.SetLoading(true))
		}
	}
	return m, tea.Batch(cmds...)
}

// navigate applies cursor movement keys to list
func navigate(list *components.BookList, keys KeyMap, msg tea.KeyMsg) {
	switch {
	case key.Matches(msg, keys.Up):
		list.MoveUp(1)
	case key.Matches(msg, keys.Down):
		list.MoveDown(1)
	case key.Matches(msg, keys.PageUp):
		list.MoveUp(list.PageSize())
	case key.Matches(msg, keys.PageDown):
		list.MoveDown(list.PageSize())
	case key.Matches(msg, keys.Home):
		list.Top()
	case key.Matches(msg, keys.End):
		list.Bottom()
	}
}

func (m Model) openSearch() (Model, tea.Cmd) {
	m.view = ViewSearch
	m.searchBox.Reset()
	// A fresh session: any response still in flight is now stale.
	m.Search.Submit("")
	m.results.Reset()
	m.resultsFocused = false
	m.results.SetFocused(false)
	m.resize()
	return m, m.searchBox.Focus()
}

func (m Model) closeSearch() (Model, tea.Cmd) {
	m.view = ViewShelves
	m.Search.Submit("")
	m.searchBox.Reset()
	m.searchBox.Blur()
	m.resize()
	return m, nil
}

func (m Model) focusSearchInput() (Model, tea.Cmd) {
	m.resultsFocused = false
	m.results.SetFocused(false)
	return m, m.searchBox.Focus()
}

// moveBook changes a book's shelf locally; the server is updated in the background
func (m *Model) moveBook(id string, shelf domain.Shelf, fallback *domain.Book) tea.Cmd {
	entry, err := m.Library.ChangeShelf(id, shelf, fallback)
	if err != nil {
		m.logger.Error("failed to change shelf", "id", id, "shelf", shelf.Wire(), "error", err)
		return m.setStatus("Could not move book: "+describeErr(err), true)
	}

	text := fmt.Sprintf("Moved %q to %s", entry.Title, shelf)
	if shelf == domain.ShelfNone {
		text = fmt.Sprintf("Removed %q from your shelves", entry.Title)
	}
	return m.setStatus(text, false)
}

func (m *Model) setStatus(text string, isErr bool) tea.Cmd {
	m.statusID++
	m.status = text
	m.statusErr = isErr
	return ClearStatusCmd(m.statusID)
}

// refresh rebuilds list rows when the store, shelf, filter or search changed
func (m *Model) refresh() {
	key := rowsKey{
		revision:      m.Library.Revision(),
		shelfIdx:      m.shelfIdx,
		filter:        m.filter.Value(),
		searchVersion: m.Search.Version(),
		searchState:   m.Search.State(),
	}
	if key != m.rowsKey {
		m.rowsKey = key
		m.shelfList.SetRows(m.shelfRows())
		m.results.SetRows(m.resultRows())
	}

	if m.resultsFocused && m.results.Len() == 0 {
		m.resultsFocused = false
		m.results.SetFocused(false)
		m.searchBox.Focus()
	}
}

func (m Model) currentShelf() domain.Shelf {
	return domain.Shelves()[m.shelfIdx]
}

func (m Model) shelfRows() []components.BookRow {
	entries := search.FilterEntries(m.filter.Value(), m.Library.OnShelf(m.currentShelf()))
	rows := make([]components.BookRow, len(entries))
	for i, e := range entries {
		rows[i] = components.BookRow{ID: e.ID, Title: e.Title, Authors: e.AuthorLine(), Shelf: e.Shelf}
	}
	return rows
}

func (m Model) resultRows() []components.BookRow {
	results := m.Search.Results(m.Library)
	rows := make([]components.BookRow, len(results))
	for i, r := range results {
		rows[i] = components.BookRow{
			ID:      r.ID,
			Title:   r.Title,
			Authors: r.AuthorLine(),
			Shelf:   r.Shelf,
			Badge:   true,
		}
	}
	return rows
}

// resize recomputes component sizes from the window and current chrome
func (m *Model) resize() {
	if m.Width == 0 {
		return
	}
	m.help.Width = m.Width

	footer := footerHeight
	if m.showHelp {
		footer = 1 + lipgloss.Height(m.help.View(m.keys))
	}

	listHeight := m.Height - headerHeight - tabsHeight - footer
	if m.view == ViewShelves && (m.filter.Focused() || m.filter.Value() != "") {
		listHeight--
	}
	// Search view replaces the tab bar with a bordered input, a state line and a blank
	if m.view == ViewSearch {
		listHeight -= 3
	}

	m.shelfList.SetSize(m.Width, max(listHeight, 1))
	m.results.SetSize(m.Width, max(listHeight, 1))
	m.searchBox.SetWidth(m.Width)
}

// describeErr turns domain errors into short user-facing text
func describeErr(err error) string {
	switch {
	case errors.Is(err, domain.ErrAuthFailed):
		return "the server rejected the token"
	case errors.Is(err, domain.ErrServerOffline):
		return "the server is unreachable"
	case errors.Is(err, domain.ErrStoreClosed):
		return "shutting down"
	}
	msg := err.Error()
	if i := strings.LastIndex(msg, ": "); i >= 0 && i+2 < len(msg) {
		return msg[i+2:]
	}
	return msg
}
