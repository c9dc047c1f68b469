package ui

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/filepicker"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/bkydataconsulting/Category-Level-Dashboard/pkg/analysis"
	"github.com/bkydataconsulting/Category-Level-Dashboard/pkg/export"
	"github.com/bkydataconsulting/Category-Level-Dashboard/pkg/pipeline"
	"github.com/bkydataconsulting/Category-Level-Dashboard/pkg/updater"
	"github.com/bkydataconsulting/Category-Level-Dashboard/pkg/version"
)

// statusTTL is how long transient status messages stay on screen.
const statusTTL = 4 * time.Second

type sessionState int

const (
	statePicking sessionState = iota
	stateViewing
)

// AppOptions configure the interactive viewer.
type AppOptions struct {
	// Path is the input spreadsheet. Empty opens the file picker.
	Path string
	// Render controls folding and indentation.
	Render pipeline.Options
	// Theme forces "dark" or "light", or auto-detects when empty.
	Theme string
}

// ══════════════════════════════════════════════════════════════════════════════
// MESSAGES
// ══════════════════════════════════════════════════════════════════════════════

// FileChangedMsg tells the app the watched input file changed on disk.
// The watch loop sends it through Program.Send.
type FileChangedMsg struct{}

type fileLoadedMsg struct {
	path  string
	res   pipeline.Result
	stats analysis.Stats
}

type loadFailedMsg struct {
	path string
	err  error
}

type bundleDoneMsg struct {
	base string
	err  error
}

type statusExpiredMsg struct {
	seq int
}

type updateAvailableMsg struct {
	tag string
	url string
}

// ══════════════════════════════════════════════════════════════════════════════
// COMMANDS
// ══════════════════════════════════════════════════════════════════════════════

func loadFileCmd(path string, opts pipeline.Options) tea.Cmd {
	return func() tea.Msg {
		res, err := pipeline.RenderFile(path, opts)
		if err != nil {
			return loadFailedMsg{path: path, err: err}
		}
		return fileLoadedMsg{
			path:  path,
			res:   res,
			stats: analysis.Summarize(res.Tree),
		}
	}
}

func exportBundleCmd(sourcePath string, res pipeline.Result) tea.Cmd {
	return func() tea.Msg {
		base := "hierarchy"
		if sourcePath != "" {
			name := filepath.Base(sourcePath)
			base = strings.TrimSuffix(name, filepath.Ext(name))
		}
		err := export.WriteBundle(export.BundleOptions{
			Dir:      ".",
			BaseName: base,
			Root:     res.Tree,
			Text:     res.Text,
			Title:    res.Table.SourceName,
			Meta: export.SQLiteMeta{
				Source:    res.Table.SourceName,
				Tool:      "cld " + version.Version,
				CreatedAt: time.Now(),
			},
		})
		return bundleDoneMsg{base: base, err: err}
	}
}

func checkUpdateCmd() tea.Cmd {
	return func() tea.Msg {
		tag, url, err := updater.CheckForUpdates()
		if err != nil || tag == "" {
			return nil
		}
		return updateAvailableMsg{tag: tag, url: url}
	}
}

// ══════════════════════════════════════════════════════════════════════════════
// MODEL
// ══════════════════════════════════════════════════════════════════════════════

// AppModel is the root bubbletea model. It starts in the file picker
// unless a path was given, then shows the hierarchy viewer.
type AppModel struct {
	opts  AppOptions
	theme Theme

	state  sessionState
	picker filepicker.Model
	tree   TreeModel
	stats  StatsPanelModel
	search SearchModel
	help   HelpOverlayModel

	path    string
	result  pipeline.Result
	loaded  bool
	loadErr error

	status    string
	statusErr bool
	statusSeq int

	width  int
	height int
}

// NewAppModel builds the root model.
func NewAppModel(opts AppOptions) AppModel {
	theme := NewTheme(lipgloss.DefaultRenderer(), opts.Theme)

	fp := filepicker.New()
	fp.AllowedTypes = []string{".csv", ".xlsx"}
	if wd, err := os.Getwd(); err == nil {
		fp.CurrentDirectory = wd
	}

	m := AppModel{
		opts:   opts,
		theme:  theme,
		state:  statePicking,
		picker: fp,
		tree:   NewTreeModel(theme),
		stats:  NewStatsPanelModel(theme),
		search: NewSearchModel(theme),
		help:   NewHelpOverlayModel(theme),
	}
	if opts.Path != "" {
		m.state = stateViewing
		m.path = opts.Path
	}
	return m
}

// NewProgram wraps the model in a tea.Program. Callers keep the handle
// so a watch loop can push FileChangedMsg into the running app.
func NewProgram(opts AppOptions) *tea.Program {
	return tea.NewProgram(NewAppModel(opts), tea.WithAltScreen())
}

// Init starts the first load and a background update check.
func (m AppModel) Init() tea.Cmd {
	cmds := []tea.Cmd{checkUpdateCmd()}
	if m.state == statePicking {
		cmds = append(cmds, m.picker.Init())
	} else {
		cmds = append(cmds, loadFileCmd(m.path, m.opts.Render))
	}
	return tea.Batch(cmds...)
}

// Update routes messages to the active component.
func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.layout()
		if m.state == statePicking {
			var cmd tea.Cmd
			m.picker, cmd = m.picker.Update(msg)
			return m, cmd
		}
		return m, nil

	case FileChangedMsg:
		if m.path == "" {
			return m, nil
		}
		return m, loadFileCmd(m.path, m.opts.Render)

	case fileLoadedMsg:
		m.path = msg.path
		m.result = msg.res
		m.loaded = true
		m.loadErr = nil
		m.tree.SetTree(msg.res.Tree)
		m.stats.SetStats(msg.stats)
		m.search.SetPaths(m.tree.Paths())
		m.layout()
		return m.setStatus(fmt.Sprintf("Loaded %s (%s, %d rows): %d categories",
			msg.res.Table.SourceName, msg.res.Table.Format, len(msg.res.Table.Rows), msg.res.Tree.Count()), false)

	case loadFailedMsg:
		// Keep the previous tree on a failed reload.
		m.loadErr = msg.err
		return m.setStatus(fmt.Sprintf("Load failed: %v", msg.err), true)

	case bundleDoneMsg:
		if msg.err != nil {
			return m.setStatus(fmt.Sprintf("Export failed: %v", msg.err), true)
		}
		return m.setStatus(fmt.Sprintf("Exported %s.{txt,svg,png,sqlite3}", msg.base), false)

	case statusExpiredMsg:
		if msg.seq == m.statusSeq {
			m.status = ""
		}
		return m, nil

	case updateAvailableMsg:
		return m.setStatus(fmt.Sprintf("Update %s available: %s", msg.tag, msg.url), false)

	case tea.KeyMsg:
		if m.help.IsVisible() {
			var cmd tea.Cmd
			m.help, cmd = m.help.Update(msg)
			return m, cmd
		}
		if m.search.Visible() {
			var idx int
			var cmd tea.Cmd
			m.search, idx, cmd = m.search.Update(msg)
			if idx >= 0 {
				m.tree.JumpTo(idx)
			}
			return m, cmd
		}
		if m.state == stateViewing {
			return m.updateViewing(msg)
		}
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		}
	}

	if m.state == statePicking {
		var cmd tea.Cmd
		m.picker, cmd = m.picker.Update(msg)
		if ok, path := m.picker.DidSelectFile(msg); ok {
			m.path = path
			m.state = stateViewing
			return m, tea.Batch(cmd, loadFileCmd(path, m.opts.Render))
		}
		return m, cmd
	}

	// Forward ticks and blinks to the open search input.
	if m.search.Visible() {
		var cmd tea.Cmd
		m.search, _, cmd = m.search.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m AppModel) updateViewing(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "esc", "ctrl+c":
		return m, tea.Quit

	case "?":
		m.help.Toggle()
		return m, nil

	case "/":
		if m.loaded {
			m.search.SetPaths(m.tree.Paths())
			m.search.Show()
			return m, textinput.Blink
		}
		return m, nil

	case "j", "down":
		m.tree.MoveDown()
	case "k", "up":
		m.tree.MoveUp()
	case "ctrl+d", "pgdown":
		m.tree.PageDown()
	case "ctrl+u", "pgup":
		m.tree.PageUp()
	case "g", "home":
		m.tree.Top()
	case "G", "end":
		m.tree.Bottom()

	case "l", "right":
		m.tree.Expand()
	case "h", "left":
		m.tree.Collapse()
	case "enter", " ":
		m.tree.Toggle()
	case "E":
		m.tree.ExpandAll()
	case "C":
		m.tree.CollapseAll()

	case "t", "tab":
		m.stats.Toggle()
		m.layout()

	case "c":
		if !m.loaded {
			return m, nil
		}
		if err := export.CopyText(m.result.Text); err != nil {
			return m.setStatus(fmt.Sprintf("Copy failed: %v", err), true)
		}
		return m.setStatus(fmt.Sprintf("Copied %d categories to clipboard", m.result.Tree.Count()), false)

	case "y":
		path := m.tree.SelectedPath()
		if path == "" {
			return m, nil
		}
		if err := export.CopyText(path + "\n"); err != nil {
			return m.setStatus(fmt.Sprintf("Copy failed: %v", err), true)
		}
		return m.setStatus(fmt.Sprintf("Copied %q", path), false)

	case "s":
		if !m.loaded {
			return m, nil
		}
		if err := export.WriteText(export.DefaultTextName, m.result.Text); err != nil {
			return m.setStatus(fmt.Sprintf("Save failed: %v", err), true)
		}
		return m.setStatus("Saved "+export.DefaultTextName, false)

	case "e":
		if !m.loaded {
			return m, nil
		}
		return m, exportBundleCmd(m.path, m.result)

	case "r":
		if m.path == "" {
			return m, nil
		}
		return m, loadFileCmd(m.path, m.opts.Render)

	case "o":
		m.state = statePicking
		return m, m.picker.Init()
	}
	return m, nil
}

func (m AppModel) setStatus(text string, isErr bool) (tea.Model, tea.Cmd) {
	m.status = text
	m.statusErr = isErr
	m.statusSeq++
	seq := m.statusSeq
	return m, tea.Tick(statusTTL, func(time.Time) tea.Msg {
		return statusExpiredMsg{seq: seq}
	})
}

// layout distributes the window between the tree and the side panel.
func (m *AppModel) layout() {
	bodyHeight := m.height - 2 - 2
	if bodyHeight < 1 {
		bodyHeight = 1
	}
	treeWidth := m.width - m.stats.Width() - SpaceSM
	if treeWidth < 10 {
		treeWidth = 10
	}
	m.tree.SetSize(treeWidth, bodyHeight)
	m.stats.SetHeight(bodyHeight)
	m.search.SetSize(m.width, m.height)
	m.help.SetSize(m.width, m.height)
	m.picker.Height = bodyHeight
}

// ══════════════════════════════════════════════════════════════════════════════
// RENDERING
// ══════════════════════════════════════════════════════════════════════════════

// View renders the current screen.
func (m AppModel) View() string {
	if m.width == 0 {
		return "Loading..."
	}
	if m.help.IsVisible() {
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, m.help.View())
	}
	if m.search.Visible() {
		return m.search.View()
	}
	if m.state == statePicking {
		return m.pickerView()
	}
	return m.viewingView()
}

func (m AppModel) pickerView() string {
	t := m.theme
	header := t.Renderer.NewStyle().
		Foreground(t.Primary).
		Bold(true).
		Render("Pick a CSV or XLSX file")
	hint := t.Renderer.NewStyle().
		Foreground(t.Subtext).
		Render("enter select  q quit")
	return lipgloss.JoinVertical(lipgloss.Left, header, "", m.picker.View(), hint)
}

func (m AppModel) viewingView() string {
	t := m.theme

	title := t.Renderer.NewStyle().Foreground(t.Primary).Bold(true).Render("Category Level Dashboard")
	source := ""
	if m.loaded {
		source = t.Renderer.NewStyle().Foreground(t.Subtext).Render("  " + m.result.Table.SourceName)
	}
	header := title + source + "\n" + RenderDivider(m.width, t)

	var body string
	switch {
	case !m.loaded && m.loadErr != nil:
		box := t.Renderer.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(t.Danger).
			Padding(1, SpaceMD).
			Render(t.Renderer.NewStyle().Foreground(t.Danger).Bold(true).Render("Could not load file") +
				"\n\n" + t.Base.Render(m.loadErr.Error()) +
				"\n\n" + t.Renderer.NewStyle().Foreground(t.Subtext).Render("o pick another file  r retry  q quit"))
		body = lipgloss.Place(m.width, m.bodyHeight(), lipgloss.Center, lipgloss.Center, box)
	case !m.loaded:
		body = t.Renderer.NewStyle().Foreground(t.Subtext).Render("Loading " + m.path + "...")
	default:
		body = m.tree.View()
		if m.stats.Visible() {
			body = lipgloss.JoinHorizontal(lipgloss.Top, body, strings.Repeat(" ", SpaceSM), m.stats.View())
		}
	}

	footer := RenderDivider(m.width, t) + "\n" + m.footerLine()
	return lipgloss.JoinVertical(lipgloss.Left, header, body, footer)
}

func (m AppModel) bodyHeight() int {
	h := m.height - 2 - 2
	if h < 1 {
		h = 1
	}
	return h
}

func (m AppModel) footerLine() string {
	t := m.theme
	if m.status != "" {
		color := t.Success
		if m.statusErr {
			color = t.Danger
		}
		return t.Renderer.NewStyle().Foreground(color).Render(m.status)
	}

	hints := "j/k move  / search  c copy  s save  e export  ? help  q quit"
	left := t.Renderer.NewStyle().Foreground(t.Subtext).Render(hints)
	if m.tree.Len() == 0 {
		return left
	}
	pos := t.Renderer.NewStyle().Foreground(t.Secondary).Render(fmt.Sprintf("%d/%d", m.tree.Cursor()+1, m.tree.Len()))
	gap := m.width - lipgloss.Width(left) - lipgloss.Width(pos)
	if gap < 1 {
		return left
	}
	return left + strings.Repeat(" ", gap) + pos
}
