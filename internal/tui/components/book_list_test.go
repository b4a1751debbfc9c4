package components

import (
	"strings"
	"testing"

	"github.com/mmcdole/myreads/internal/domain"
	"github.com/stretchr/testify/assert"
)

func rows(n int) []BookRow {
	out := make([]BookRow, n)
	for i := range out {
		out[i] = BookRow{ID: string(rune('a' + i)), Title: "Book " + string(rune('A'+i))}
	}
	return out
}

func TestBookListCursorStaysInRange(t *testing.T) {
	l := NewBookList("empty")
	l.SetSize(40, 3)
	l.SetRows(rows(5))

	l.MoveUp(1)
	assert.Equal(t, 0, l.Cursor())

	l.MoveDown(10)
	assert.Equal(t, 4, l.Cursor())

	l.SetRows(rows(2))
	assert.Equal(t, 1, l.Cursor(), "cursor clamps when rows shrink")

	l.SetRows(nil)
	_, ok := l.Selected()
	assert.False(t, ok)
}

func TestBookListScrolls(t *testing.T) {
	l := NewBookList("empty")
	l.SetSize(40, 2)
	l.SetRows(rows(5))

	l.Bottom()
	view := l.View()
	assert.Contains(t, view, "Book E")
	assert.NotContains(t, view, "Book A")

	l.Top()
	view = l.View()
	assert.Contains(t, view, "Book A")
	assert.NotContains(t, view, "Book E")
}

func TestBookListEmptyText(t *testing.T) {
	l := NewBookList("No books on this shelf")
	l.SetSize(40, 2)
	assert.Contains(t, l.View(), "No books on this shelf")
}

func TestBookListBadges(t *testing.T) {
	l := NewBookList("")
	l.SetSize(60, 2)
	l.SetRows([]BookRow{
		{ID: "1", Title: "Beloved", Shelf: domain.ShelfRead, Badge: true},
		{ID: "2", Title: "Birdsong", Shelf: domain.ShelfNone, Badge: true},
	})

	lines := strings.Split(l.View(), "\n")
	assert.Contains(t, lines[0], "Read")
	assert.NotContains(t, lines[1], "Read")
}
