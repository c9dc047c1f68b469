package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/bkydataconsulting/Category-Level-Dashboard/pkg/model"
)

// ══════════════════════════════════════════════════════════════════════════════
// DESIGN TOKENS - Consistent spacing, colors, and visual language
// ══════════════════════════════════════════════════════════════════════════════

// Spacing constants for consistent layout (in characters)
const (
	SpaceXS = 1
	SpaceSM = 2
	SpaceMD = 3
	SpaceLG = 4
)

// ══════════════════════════════════════════════════════════════════════════════
// THEME - Adaptive palette shared by every viewer component
// ══════════════════════════════════════════════════════════════════════════════

// Theme bundles the palette and the renderer used to build styles, so
// output degrades cleanly on terminals without full color support.
type Theme struct {
	Renderer *lipgloss.Renderer

	// Base carries the default foreground.
	Base lipgloss.Style

	Primary   lipgloss.AdaptiveColor
	Secondary lipgloss.AdaptiveColor
	Subtext   lipgloss.AdaptiveColor
	Border    lipgloss.AdaptiveColor

	Success lipgloss.AdaptiveColor
	Warning lipgloss.AdaptiveColor
	Danger  lipgloss.AdaptiveColor

	// Levels holds one accent per hierarchy depth.
	Levels [model.NumLevels]lipgloss.AdaptiveColor
}

// NewTheme builds the default theme. forced may be "dark" or "light"
// to override background detection, or empty to auto-detect.
func NewTheme(r *lipgloss.Renderer, forced string) Theme {
	switch forced {
	case "dark":
		r.SetHasDarkBackground(true)
	case "light":
		r.SetHasDarkBackground(false)
	}

	t := Theme{
		Renderer:  r,
		Primary:   lipgloss.AdaptiveColor{Light: "#7C3AED", Dark: "#BD93F9"},
		Secondary: lipgloss.AdaptiveColor{Light: "#64748B", Dark: "#6272A4"},
		Subtext:   lipgloss.AdaptiveColor{Light: "#6B7280", Dark: "#BFBFBF"},
		Border:    lipgloss.AdaptiveColor{Light: "#CBD5E1", Dark: "#44475A"},
		Success:   lipgloss.AdaptiveColor{Light: "#15803D", Dark: "#50FA7B"},
		Warning:   lipgloss.AdaptiveColor{Light: "#B45309", Dark: "#FFB86C"},
		Danger:    lipgloss.AdaptiveColor{Light: "#B91C1C", Dark: "#FF5555"},
		Levels: [model.NumLevels]lipgloss.AdaptiveColor{
			{Light: "#7C3AED", Dark: "#BD93F9"},
			{Light: "#0E7490", Dark: "#8BE9FD"},
			{Light: "#15803D", Dark: "#50FA7B"},
			{Light: "#B45309", Dark: "#FFB86C"},
		},
	}
	t.Base = r.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#1F2937", Dark: "#F8F8F2"})
	return t
}

// LevelColor returns the accent for a tree depth.
func (t Theme) LevelColor(depth int) lipgloss.AdaptiveColor {
	if depth < 0 || depth >= len(t.Levels) {
		return t.Subtext
	}
	return t.Levels[depth]
}

// ══════════════════════════════════════════════════════════════════════════════
// METRIC VISUALIZATION - Mini-bars and level badges
// ══════════════════════════════════════════════════════════════════════════════

// RenderMiniBar renders a mini horizontal bar for a value between 0 and 1
func RenderMiniBar(value float64, width int, t Theme) string {
	if width <= 0 {
		return ""
	}
	if value < 0 {
		value = 0
	}
	if value > 1 {
		value = 1
	}

	filled := int(value * float64(width))
	if filled > width {
		filled = width
	}

	// Choose color based on value
	var barColor lipgloss.AdaptiveColor
	if value >= 0.75 {
		barColor = t.Success
	} else if value >= 0.5 {
		barColor = t.Warning
	} else if value >= 0.25 {
		barColor = t.Primary
	} else {
		barColor = t.Secondary
	}

	bar := strings.Repeat("█", filled) + strings.Repeat("░", width-filled)
	return t.Renderer.NewStyle().Foreground(barColor).Render(bar)
}

// RenderLevelBadge returns a short colored marker for a hierarchy
// depth, for legends and stats rows.
func RenderLevelBadge(depth int, t Theme) string {
	labels := [model.NumLevels]string{"PAR", "MST", "SB1", "SB2"}
	label := "???"
	if depth >= 0 && depth < len(labels) {
		label = labels[depth]
	}
	return t.Renderer.NewStyle().
		Foreground(t.LevelColor(depth)).
		Bold(true).
		Render(label)
}

// ══════════════════════════════════════════════════════════════════════════════
// DIVIDERS AND SEPARATORS
// ══════════════════════════════════════════════════════════════════════════════

// RenderDivider renders a horizontal divider line
func RenderDivider(width int, t Theme) string {
	if width <= 0 {
		return ""
	}
	return t.Renderer.NewStyle().
		Foreground(t.Border).
		Render(strings.Repeat("─", width))
}
