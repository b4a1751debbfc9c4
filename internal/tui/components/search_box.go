package components

import (
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mmcdole/myreads/internal/tui/styles"
)

// SearchBox is the catalog search input with a loading spinner
type SearchBox struct {
	input    textinput.Model
	spinner  spinner.Model
	loading  bool
	width    int
	lastTerm string // Value at the last Changed check
}

// NewSearchBox creates an empty, focused search box
func NewSearchBox() SearchBox {
	ti := textinput.New()
	ti.Placeholder = "Search by title or author"
	ti.CharLimit = 100
	ti.Width = 40
	ti.Prompt = "/ "
	ti.PromptStyle = styles.AccentStyle
	ti.TextStyle = lipgloss.NewStyle().Foreground(styles.White)
	ti.PlaceholderStyle = styles.DimStyle
	ti.Focus()

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = styles.SpinnerStyle

	return SearchBox{input: ti, spinner: sp}
}

// Reset clears the input and focuses it
func (s *SearchBox) Reset() {
	s.input.SetValue("")
	s.input.Focus()
	s.loading = false
	s.lastTerm = ""
}

// Focus gives the input keyboard focus
func (s *SearchBox) Focus() tea.Cmd {
	return s.input.Focus()
}

// Blur removes keyboard focus from the input
func (s *SearchBox) Blur() {
	s.input.Blur()
}

// Focused reports whether the input has keyboard focus
func (s SearchBox) Focused() bool {
	return s.input.Focused()
}

// Value returns the current term
func (s SearchBox) Value() string {
	return s.input.Value()
}

// Changed reports whether the term changed since the last call
func (s *SearchBox) Changed() bool {
	if s.input.Value() == s.lastTerm {
		return false
	}
	s.lastTerm = s.input.Value()
	return true
}

// SetLoading starts or stops the spinner. Starting returns its tick.
func (s *SearchBox) SetLoading(loading bool) tea.Cmd {
	wasLoading := s.loading
	s.loading = loading
	if loading && !wasLoading {
		return s.spinner.Tick
	}
	return nil
}

// Loading reports whether a search is in flight
func (s SearchBox) Loading() bool {
	return s.loading
}

// SetWidth updates the rendered width
func (s *SearchBox) SetWidth(width int) {
	s.width = width
	s.input.Width = max(width-10, 10)
}

// Update forwards key input to the text field and spinner ticks to the spinner
func (s SearchBox) Update(msg tea.Msg) (SearchBox, tea.Cmd) {
	switch msg := msg.(type) {
	case spinner.TickMsg:
		if !s.loading {
			return s, nil
		}
		var cmd tea.Cmd
		s.spinner, cmd = s.spinner.Update(msg)
		return s, cmd
	default:
		var cmd tea.Cmd
		s.input, cmd = s.input.Update(msg)
		return s, cmd
	}
}

// View renders the bordered input
func (s SearchBox) View() string {
	box := styles.InputBorderBlurred
	if s.input.Focused() {
		box = styles.InputBorder
	}

	line := s.input.View()
	if s.loading {
		line = lipgloss.JoinHorizontal(lipgloss.Top, line, " ", s.spinner.View())
	}
	return box.Width(max(s.width-4, 10)).Render(line)
}
