package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/bkydataconsulting/Category-Level-Dashboard/pkg/analysis"
)

// statsPanelWidth is the fixed column width of the side panel.
const statsPanelWidth = 30

// StatsPanelModel renders the summary numbers for the loaded
// hierarchy: totals, leaves, depth, and per-level fanout.
type StatsPanelModel struct {
	theme   Theme
	stats   analysis.Stats
	visible bool
	height  int
}

// NewStatsPanelModel creates the panel in its hidden state.
func NewStatsPanelModel(theme Theme) StatsPanelModel {
	return StatsPanelModel{theme: theme}
}

// SetStats replaces the displayed summary.
func (m *StatsPanelModel) SetStats(stats analysis.Stats) {
	m.stats = stats
}

// SetHeight updates the panel height.
func (m *StatsPanelModel) SetHeight(height int) {
	m.height = height
}

// Toggle flips panel visibility.
func (m *StatsPanelModel) Toggle() {
	m.visible = !m.visible
}

// Visible reports whether the panel is shown.
func (m StatsPanelModel) Visible() bool {
	return m.visible
}

// Width reports the horizontal space the panel takes when visible.
func (m StatsPanelModel) Width() int {
	if !m.visible {
		return 0
	}
	return statsPanelWidth
}

// View renders the panel, or "" while hidden.
func (m StatsPanelModel) View() string {
	if !m.visible {
		return ""
	}

	t := m.theme
	s := m.stats
	inner := statsPanelWidth - 2*SpaceSM - 2

	titleStyle := t.Renderer.NewStyle().Foreground(t.Primary).Bold(true)
	labelStyle := t.Renderer.NewStyle().Foreground(t.Subtext)
	valueStyle := t.Base.Bold(true)

	var b strings.Builder
	b.WriteString(titleStyle.Render("Stats"))
	b.WriteString("\n")
	b.WriteString(RenderDivider(inner, t))
	b.WriteString("\n")

	summary := []struct {
		label string
		value int
	}{
		{"Categories", s.Total},
		{"Leaves", s.Leaves},
		{"Depth", s.MaxDepth},
	}
	for _, row := range summary {
		b.WriteString(labelStyle.Render(fmt.Sprintf("%-11s", row.label)))
		b.WriteString(valueStyle.Render(fmt.Sprintf("%d", row.value)))
		b.WriteString("\n")
	}

	// Per-level counts, bars normalized against the widest level.
	b.WriteString("\n")
	widest := 0
	for _, n := range s.PerLevel {
		if n > widest {
			widest = n
		}
	}
	barWidth := inner - 10
	for depth, n := range s.PerLevel {
		frac := 0.0
		if widest > 0 {
			frac = float64(n) / float64(widest)
		}
		b.WriteString(RenderLevelBadge(depth, t))
		b.WriteString(" ")
		b.WriteString(RenderMiniBar(frac, barWidth, t))
		b.WriteString(valueStyle.Render(fmt.Sprintf(" %d", n)))
		b.WriteString("\n")
	}

	// Fanout per level: children per parent one level up.
	b.WriteString("\n")
	b.WriteString(labelStyle.Render("Fanout mean / max"))
	b.WriteString("\n")
	for depth, br := range s.Branching {
		if s.PerLevel[depth] == 0 {
			continue
		}
		b.WriteString(RenderLevelBadge(depth, t))
		b.WriteString(valueStyle.Render(fmt.Sprintf(" %.1f ±%.1f  %d", br.Mean, br.StdDev, br.Max)))
		b.WriteString("\n")
	}

	box := t.Renderer.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(t.Border).
		Padding(0, SpaceSM).
		Width(statsPanelWidth - 2)
	if m.height > 0 {
		box = box.Height(m.height - 2)
	}
	return box.Render(strings.TrimRight(b.String(), "\n"))
}
