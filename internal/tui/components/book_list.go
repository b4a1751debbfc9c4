package components

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mmcdole/myreads/internal/domain"
	"github.com/mmcdole/myreads/internal/tui/styles"
)

// BookRow is one rendered row of a BookList
type BookRow struct {
	ID      string
	Title   string
	Authors string
	Shelf   domain.Shelf
	Badge   bool // Show the shelf badge (search results)
}

// BookList is a scrolling list of books with a cursor.
// Rows are supplied at render time; the list only tracks position.
type BookList struct {
	rows    []BookRow
	cursor  int
	offset  int
	width   int
	height  int
	focused bool
	empty   string
}

// NewBookList creates a list that shows emptyText when it has no rows
func NewBookList(emptyText string) BookList {
	return BookList{empty: emptyText, focused: true}
}

// SetRows replaces the rows and keeps the cursor in range
func (l *BookList) SetRows(rows []BookRow) {
	l.rows = rows
	l.clamp()
}

// SetSize updates the list dimensions
func (l *BookList) SetSize(width, height int) {
	l.width = width
	l.height = height
	l.clamp()
}

// SetFocused toggles the selection highlight
func (l *BookList) SetFocused(focused bool) {
	l.focused = focused
}

// SetEmptyText sets the placeholder shown for an empty list
func (l *BookList) SetEmptyText(text string) {
	l.empty = text
}

// Len returns the number of rows
func (l BookList) Len() int {
	return len(l.rows)
}

// Cursor returns the cursor index
func (l BookList) Cursor() int {
	return l.cursor
}

// Selected returns the row under the cursor
func (l BookList) Selected() (BookRow, bool) {
	if l.cursor < 0 || l.cursor >= len(l.rows) {
		return BookRow{}, false
	}
	return l.rows[l.cursor], true
}

// MoveUp moves the cursor up n rows
func (l *BookList) MoveUp(n int) {
	l.cursor -= n
	l.clamp()
}

// MoveDown moves the cursor down n rows
func (l *BookList) MoveDown(n int) {
	l.cursor += n
	l.clamp()
}

// Top moves the cursor to the first row
func (l *BookList) Top() {
	l.cursor = 0
	l.clamp()
}

// Bottom moves the cursor to the last row
func (l *BookList) Bottom() {
	l.cursor = len(l.rows) - 1
	l.clamp()
}

// Reset moves the cursor back to the top
func (l *BookList) Reset() {
	l.cursor = 0
	l.offset = 0
}

// PageSize is the number of visible rows
func (l BookList) PageSize() int {
	return max(l.height, 1)
}

func (l *BookList) clamp() {
	if l.cursor >= len(l.rows) {
		l.cursor = len(l.rows) - 1
	}
	if l.cursor < 0 {
		l.cursor = 0
	}

	visible := l.PageSize()
	if l.cursor < l.offset {
		l.offset = l.cursor
	}
	if l.cursor >= l.offset+visible {
		l.offset = l.cursor - visible + 1
	}
	if maxOffset := max(len(l.rows)-visible, 0); l.offset > maxOffset {
		l.offset = maxOffset
	}
}

// View renders the visible rows
func (l BookList) View() string {
	if len(l.rows) == 0 {
		return lipgloss.NewStyle().
			Width(l.width).
			Height(l.height).
			Render(styles.DimStyle.Render("  " + l.empty))
	}

	end := min(l.offset+l.PageSize(), len(l.rows))
	lines := make([]string, 0, end-l.offset)
	for i := l.offset; i < end; i++ {
		lines = append(lines, l.renderRow(l.rows[i], l.focused && i == l.cursor))
	}
	for len(lines) < l.height {
		lines = append(lines, "")
	}
	return strings.Join(lines, "\n")
}

func (l BookList) renderRow(row BookRow, selected bool) string {
	badge := ""
	if row.Badge {
		badge = styles.ShelfBadge(row.Shelf)
	}
	badgeWidth := lipgloss.Width(badge)

	// margins (2) + gap before authors (2) + gap before badge
	avail := l.width - 4 - badgeWidth
	if badgeWidth > 0 {
		avail--
	}
	titleWidth := avail
	authorsWidth := 0
	if row.Authors != "" {
		titleWidth = avail * 3 / 5
		authorsWidth = avail - titleWidth
	}

	title := styles.Truncate(row.Title, titleWidth)
	dim := styles.DimGray
	parts := []styles.RowPart{{Text: title}}
	used := lipgloss.Width(title)

	if authorsWidth > 0 {
		authors := styles.Truncate(row.Authors, authorsWidth)
		parts = append(parts,
			styles.RowPart{Text: "  "},
			styles.RowPart{Text: authors, Foreground: &dim},
		)
		used += 2 + lipgloss.Width(authors)
	}

	if badgeWidth > 0 {
		gap := max(l.width-2-used-badgeWidth, 1)
		parts = append(parts, styles.RowPart{Text: strings.Repeat(" ", gap)})
		line := styles.RenderListRow(parts, selected, l.width-badgeWidth)
		return line + badge
	}
	return styles.RenderListRow(parts, selected, l.width)
}
