package ui

import (
	"fmt"
	"strings"

	"github.com/mattn/go-runewidth"

	"github.com/bkydataconsulting/Category-Level-Dashboard/pkg/model"
)

// treeRow is one renderable line of the tree: the node behind it, its
// depth, and the full breadcrumb path used for search.
type treeRow struct {
	node  *model.Node
	depth int
	path  string
}

// TreeModel renders the category hierarchy with a movable cursor and
// per-branch collapse state.
type TreeModel struct {
	theme Theme

	root     *model.Node
	rows     []treeRow // visible rows, honoring collapse state
	all      []treeRow // every row, for search
	expanded map[*model.Node]bool

	cursor int
	offset int

	width  int
	height int
}

// NewTreeModel creates an empty tree view.
func NewTreeModel(theme Theme) TreeModel {
	return TreeModel{
		theme:    theme,
		expanded: make(map[*model.Node]bool),
	}
}

// SetTree replaces the displayed hierarchy. Every branch starts
// expanded and the cursor returns to the top.
func (m *TreeModel) SetTree(root *model.Node) {
	m.root = root
	m.expanded = make(map[*model.Node]bool)
	if root != nil {
		root.Walk(func(n *model.Node, depth int) {
			if n.Len() > 0 {
				m.expanded[n] = true
			}
		})
	}
	m.cursor = 0
	m.offset = 0
	m.rebuild()
}

// SetSize updates the viewport dimensions.
func (m *TreeModel) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.ensureVisible()
}

// rebuild regenerates the row slices after a collapse state change,
// keeping the cursor on the same node when it is still visible.
func (m *TreeModel) rebuild() {
	sel := m.Selected()

	m.all = m.all[:0]
	m.rows = m.rows[:0]
	if m.root != nil {
		m.appendRows(m.root, 0, nil, true)
	}

	if sel != nil {
		for i, row := range m.rows {
			if row.node == sel {
				m.cursor = i
				break
			}
		}
	}
	m.clampCursor()
	m.ensureVisible()
}

func (m *TreeModel) appendRows(n *model.Node, depth int, prefix []string, visible bool) {
	for _, c := range n.Children {
		path := append(prefix, c.Name)
		row := treeRow{node: c, depth: depth, path: model.JoinPath(path)}
		m.all = append(m.all, row)
		if visible {
			m.rows = append(m.rows, row)
		}
		m.appendRows(c, depth+1, path, visible && m.expanded[c])
	}
}

// ══════════════════════════════════════════════════════════════════════════════
// NAVIGATION
// ══════════════════════════════════════════════════════════════════════════════

// MoveUp moves the cursor up one row.
func (m *TreeModel) MoveUp() {
	m.cursor--
	m.clampCursor()
	m.ensureVisible()
}

// MoveDown moves the cursor down one row.
func (m *TreeModel) MoveDown() {
	m.cursor++
	m.clampCursor()
	m.ensureVisible()
}

// PageUp moves the cursor up one screen.
func (m *TreeModel) PageUp() {
	m.cursor -= m.visibleHeight()
	m.clampCursor()
	m.ensureVisible()
}

// PageDown moves the cursor down one screen.
func (m *TreeModel) PageDown() {
	m.cursor += m.visibleHeight()
	m.clampCursor()
	m.ensureVisible()
}

// Top jumps to the first row.
func (m *TreeModel) Top() {
	m.cursor = 0
	m.offset = 0
}

// Bottom jumps to the last row.
func (m *TreeModel) Bottom() {
	m.cursor = len(m.rows) - 1
	m.clampCursor()
	m.ensureVisible()
}

func (m *TreeModel) clampCursor() {
	if m.cursor >= len(m.rows) {
		m.cursor = len(m.rows) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

func (m *TreeModel) ensureVisible() {
	h := m.visibleHeight()
	if h <= 0 {
		return
	}
	if m.cursor < m.offset {
		m.offset = m.cursor
	}
	if m.cursor >= m.offset+h {
		m.offset = m.cursor - h + 1
	}
	if m.offset < 0 {
		m.offset = 0
	}
}

func (m TreeModel) visibleHeight() int {
	if m.height <= 0 {
		return len(m.rows)
	}
	return m.height
}

// ══════════════════════════════════════════════════════════════════════════════
// COLLAPSE STATE
// ══════════════════════════════════════════════════════════════════════════════

// Toggle flips the collapse state of the branch under the cursor.
func (m *TreeModel) Toggle() {
	n := m.Selected()
	if n == nil || n.Len() == 0 {
		return
	}
	m.expanded[n] = !m.expanded[n]
	m.rebuild()
}

// Expand unfolds the branch under the cursor.
func (m *TreeModel) Expand() {
	n := m.Selected()
	if n == nil || n.Len() == 0 || m.expanded[n] {
		return
	}
	m.expanded[n] = true
	m.rebuild()
}

// Collapse folds the branch under the cursor. On a leaf or an already
// folded branch it jumps to the parent row instead.
func (m *TreeModel) Collapse() {
	n := m.Selected()
	if n == nil {
		return
	}
	if n.Len() > 0 && m.expanded[n] {
		m.expanded[n] = false
		m.rebuild()
		return
	}
	depth := m.rows[m.cursor].depth
	for i := m.cursor - 1; i >= 0; i-- {
		if m.rows[i].depth == depth-1 {
			m.cursor = i
			m.ensureVisible()
			return
		}
	}
}

// ExpandAll unfolds every branch.
func (m *TreeModel) ExpandAll() {
	if m.root == nil {
		return
	}
	m.root.Walk(func(n *model.Node, depth int) {
		if n.Len() > 0 {
			m.expanded[n] = true
		}
	})
	m.rebuild()
}

// CollapseAll folds every branch, leaving only the first level visible.
func (m *TreeModel) CollapseAll() {
	if m.root == nil {
		return
	}
	m.root.Walk(func(n *model.Node, depth int) {
		if n.Len() > 0 {
			m.expanded[n] = false
		}
	})
	m.rebuild()
}

// ══════════════════════════════════════════════════════════════════════════════
// ACCESSORS
// ══════════════════════════════════════════════════════════════════════════════

// Selected returns the node under the cursor, or nil.
func (m TreeModel) Selected() *model.Node {
	if m.cursor < 0 || m.cursor >= len(m.rows) {
		return nil
	}
	return m.rows[m.cursor].node
}

// SelectedPath returns the breadcrumb path of the node under the
// cursor, or "".
func (m TreeModel) SelectedPath() string {
	if m.cursor < 0 || m.cursor >= len(m.rows) {
		return ""
	}
	return m.rows[m.cursor].path
}

// Len reports the number of visible rows.
func (m TreeModel) Len() int { return len(m.rows) }

// Cursor reports the visible row index under the cursor.
func (m TreeModel) Cursor() int { return m.cursor }

// Paths returns the breadcrumb path of every node in display order,
// ignoring collapse state. Indexes line up with JumpTo.
func (m TreeModel) Paths() []string {
	paths := make([]string, len(m.all))
	for i, row := range m.all {
		paths[i] = row.path
	}
	return paths
}

// JumpTo moves the cursor to the node at index i of Paths, expanding
// its ancestors so the row is visible.
func (m *TreeModel) JumpTo(i int) {
	if i < 0 || i >= len(m.all) || m.root == nil {
		return
	}
	target := m.all[i]
	parts := strings.Split(target.path, model.PathSeparator)
	n := m.root
	for _, part := range parts[:len(parts)-1] {
		c := n.Child(part)
		if c == nil {
			return
		}
		m.expanded[c] = true
		n = c
	}
	m.rebuild()
	for idx, row := range m.rows {
		if row.node == target.node {
			m.cursor = idx
			break
		}
	}
	m.ensureVisible()
}

// ══════════════════════════════════════════════════════════════════════════════
// RENDERING
// ══════════════════════════════════════════════════════════════════════════════

// View renders the visible window of the tree.
func (m TreeModel) View() string {
	if m.root == nil || m.root.Len() == 0 {
		return m.theme.Renderer.NewStyle().
			Foreground(m.theme.Subtext).
			Render("No categories loaded.")
	}

	h := m.visibleHeight()
	end := m.offset + h
	if end > len(m.rows) {
		end = len(m.rows)
	}

	var b strings.Builder
	for i := m.offset; i < end; i++ {
		row := m.rows[i]

		marker := "  "
		if row.node.Len() > 0 {
			if m.expanded[row.node] {
				marker = "▾ "
			} else {
				marker = "▸ "
			}
		}

		name := row.node.Name
		if row.node.Len() > 0 && !m.expanded[row.node] {
			name = fmt.Sprintf("%s (%d)", name, row.node.Count())
		}

		line := strings.Repeat("  ", row.depth) + marker + name
		if m.width > 0 {
			line = runewidth.Truncate(line, m.width, "…")
		}

		style := m.theme.Renderer.NewStyle().Foreground(m.theme.LevelColor(row.depth))
		if i == m.cursor {
			style = m.theme.Renderer.NewStyle().Foreground(m.theme.Primary).Bold(true)
		}

		b.WriteString(style.Render(line))
		if i < end-1 {
			b.WriteString("\n")
		}
	}
	return b.String()
}
