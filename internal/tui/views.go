package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mmcdole/myreads/internal/domain"
	"github.com/mmcdole/myreads/internal/search"
	"github.com/mmcdole/myreads/internal/tui/styles"
)

// View renders the UI
func (m Model) View() string {
	if m.Width == 0 {
		return "Loading..."
	}

	var body string
	switch m.view {
	case ViewSearch:
		body = m.renderSearch()
	default:
		body = m.renderShelves()
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		m.renderHeader(),
		body,
		m.renderFooter(),
	)
}

func (m Model) renderHeader() string {
	title := styles.HeaderStyle.Render("MyReads")
	right := styles.DimStyle.Render(m.server)

	gap := m.Width - lipgloss.Width(title) - lipgloss.Width(right) - 1
	if gap < 1 {
		return title
	}
	return title + strings.Repeat(" ", gap) + right
}

func (m Model) renderShelves() string {
	counts := m.Library.Counts()

	tabs := make([]string, 0, len(domain.Shelves()))
	for i, shelf := range domain.Shelves() {
		label := fmt.Sprintf("%s (%d)", shelf, counts[shelf])
		if i == m.shelfIdx {
			tabs = append(tabs, styles.ActiveTabStyle.Render(label))
		} else {
			tabs = append(tabs, styles.InactiveTabStyle.Render(label))
		}
	}
	tabBar := lipgloss.JoinHorizontal(lipgloss.Top, tabs...)

	lines := []string{tabBar, ""}
	if m.filter.Focused() || m.filter.Value() != "" {
		lines = append(lines, m.filter.View())
	}

	switch {
	case m.loading && !m.Library.Loaded():
		lines = append(lines, m.padBody("  "+m.spinner.View()+" Loading your library..."))
	case !m.Library.Loaded() && m.Library.LoadErr() != nil:
		msg := styles.ErrorStyle.Render("  Could not load your library. Press r to retry.")
		lines = append(lines, m.padBody(msg))
	default:
		lines = append(lines, m.shelfList.View())
	}
	return strings.Join(lines, "\n")
}

func (m Model) renderSearch() string {
	var state string
	switch m.Search.State() {
	case search.StatePending:
		state = styles.DimStyle.Render(fmt.Sprintf("  Searching for %q...", m.Search.Term()))
	case search.StateSettled:
		if n := m.results.Len(); n == 0 {
			state = styles.DimStyle.Render(fmt.Sprintf("  No books match %q", m.Search.Term()))
		} else {
			state = styles.SubtitleStyle.Render(fmt.Sprintf("  %d results", n))
		}
	default:
		state = styles.DimStyle.Render("  Search the catalog, then press tab to pick a book")
	}

	results := m.results.View()
	if m.Search.State() != search.StateSettled {
		results = m.padBody("")
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		m.searchBox.View(),
		state,
		"",
		results,
	)
}

// padBody fills the list area so the footer stays at the bottom
func (m Model) padBody(content string) string {
	return lipgloss.NewStyle().
		Width(m.Width).
		Height(m.shelfList.PageSize()).
		Render(content)
}

func (m Model) renderFooter() string {
	status := ""
	if m.status != "" {
		style := styles.SuccessStyle
		if m.statusErr {
			style = styles.ErrorStyle
		}
		status = style.Render(styles.Truncate(" "+m.status, m.Width))
	}
	return status + "\n" + m.help.View(m.keys)
}
