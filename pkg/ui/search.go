package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
	"github.com/sahilm/fuzzy"
)

const maxSearchResults = 8

// SearchModel is the fuzzy path search overlay. Queries match against
// full breadcrumb paths, so "fru ora" finds "Fruit > Citrus > Orange".
type SearchModel struct {
	theme Theme

	input   textinput.Model
	paths   []string
	matches []fuzzy.Match
	cursor  int

	visible bool
	width   int
	height  int
}

// NewSearchModel creates the search overlay in its hidden state.
func NewSearchModel(theme Theme) SearchModel {
	ti := textinput.New()
	ti.Placeholder = "Type to search categories..."
	ti.CharLimit = 64
	ti.Width = 44
	return SearchModel{
		theme: theme,
		input: ti,
	}
}

// SetPaths replaces the searchable breadcrumb list.
func (m *SearchModel) SetPaths(paths []string) {
	m.paths = paths
	m.filter()
}

// SetSize updates the dimensions used to center the overlay.
func (m *SearchModel) SetSize(width, height int) {
	m.width = width
	m.height = height
}

// Show opens the overlay with a cleared query.
func (m *SearchModel) Show() {
	m.visible = true
	m.cursor = 0
	m.input.SetValue("")
	m.input.Focus()
	m.filter()
}

// Hide closes the overlay.
func (m *SearchModel) Hide() {
	m.visible = false
	m.input.Blur()
}

// Visible reports whether the overlay is open.
func (m SearchModel) Visible() bool {
	return m.visible
}

// Update handles input while the overlay is open. The int result is
// the index into the path list when a match was chosen, -1 otherwise.
func (m SearchModel) Update(msg tea.Msg) (SearchModel, int, tea.Cmd) {
	if !m.visible {
		return m, -1, nil
	}

	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.String() {
		case "esc":
			m.visible = false
			m.input.Blur()
			return m, -1, nil
		case "enter":
			if len(m.matches) > 0 {
				chosen := m.matches[m.cursor].Index
				m.visible = false
				m.input.Blur()
				return m, chosen, nil
			}
			return m, -1, nil
		case "up", "ctrl+p":
			if m.cursor > 0 {
				m.cursor--
			}
			return m, -1, nil
		case "down", "ctrl+n":
			if m.cursor < len(m.matches)-1 {
				m.cursor++
			}
			return m, -1, nil
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	m.filter()
	return m, -1, cmd
}

// filter recomputes the match list for the current query.
func (m *SearchModel) filter() {
	m.cursor = 0
	query := strings.TrimSpace(m.input.Value())
	if query == "" {
		m.matches = nil
		return
	}
	m.matches = fuzzy.Find(query, m.paths)
	if len(m.matches) > maxSearchResults {
		m.matches = m.matches[:maxSearchResults]
	}
}

// View renders the overlay centered on the screen, or "" while hidden.
func (m SearchModel) View() string {
	if !m.visible {
		return ""
	}

	t := m.theme
	boxWidth := 52
	if m.width > 0 && boxWidth > m.width-SpaceLG {
		boxWidth = m.width - SpaceLG
	}

	titleStyle := t.Renderer.NewStyle().Foreground(t.Primary).Bold(true)
	subtextStyle := t.Renderer.NewStyle().Foreground(t.Subtext)
	selectedStyle := t.Renderer.NewStyle().Foreground(t.Primary).Bold(true)

	var b strings.Builder
	b.WriteString(titleStyle.Render("Search categories"))
	b.WriteString("\n\n")
	b.WriteString(m.input.View())
	b.WriteString("\n")

	if len(m.matches) == 0 {
		if strings.TrimSpace(m.input.Value()) != "" {
			b.WriteString("\n")
			b.WriteString(subtextStyle.Render("No matches."))
		}
	} else {
		b.WriteString("\n")
		for i, match := range m.matches {
			prefix := "  "
			style := subtextStyle
			if i == m.cursor {
				prefix = "▸ "
				style = selectedStyle
			}
			line := runewidth.Truncate(match.Str, boxWidth-SpaceLG, "…")
			b.WriteString(style.Render(prefix + line))
			b.WriteString("\n")
		}
		b.WriteString("\n")
		b.WriteString(subtextStyle.Render(fmt.Sprintf("%d match(es)  enter jump  esc close", len(m.matches))))
	}

	box := t.Renderer.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(t.Border).
		Padding(1, 2).
		Width(boxWidth).
		Render(b.String())

	if m.width > 0 && m.height > 0 {
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, box)
	}
	return box
}
