package app

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	goaldto "momentum/internal/modules/goal/dto"
	progressdto "momentum/internal/modules/progress/dto"
	sessiondto "momentum/internal/modules/session/dto"
	"momentum/internal/ui/components"
	"momentum/internal/ui/theme"
	goalsview "momentum/internal/ui/views/goals"
	logview "momentum/internal/ui/views/log"
	progressview "momentum/internal/ui/views/progress"
)

// ─── ports ───────────────────────────────────────────────────────────────────

type sessionPort interface {
	Log(ctx context.Context, input sessiondto.LogSessionInput) (sessiondto.LogSessionOutput, error)
	List(ctx context.Context) ([]sessiondto.SessionOutput, error)
}

type goalPort interface {
	List(ctx context.Context, period string, asOf time.Time) ([]goaldto.EvaluationOutput, error)
}

type progressPort interface {
	Overview(ctx context.Context, selectors []string, from, to string) (progressdto.OverviewOutput, error)
}

// ─── tab index ───────────────────────────────────────────────────────────────

type tabID int

const (
	tabProgress tabID = iota
	tabGoals
	tabLog
	tabCount
)

var tabLabels = [tabCount]string{"Progress", "Goals", "My log"}

// ─── async messages ───────────────────────────────────────────────────────────

type sessionLoggedMsg struct {
	out sessiondto.LogSessionOutput
	err error
}

// ─── key bindings ─────────────────────────────────────────────────────────────

type keyMap struct {
	Tab     key.Binding
	Help    key.Binding
	Palette key.Binding
	Quit    key.Binding
	Toggle  key.Binding
	Period  key.Binding
	Reload  key.Binding
}

func defaultKeys() keyMap {
	return keyMap{
		Tab:     key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "next tab")),
		Help:    key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Palette: key.NewBinding(key.WithKeys(":"), key.WithHelp(":", "palette")),
		Quit:    key.NewBinding(key.WithKeys("ctrl+c", "q"), key.WithHelp("q", "quit")),
		Toggle:  key.NewBinding(key.WithKeys(" "), key.WithHelp("space", "toggle category")),
		Period:  key.NewBinding(key.WithKeys("left", "right"), key.WithHelp("←/→", "goal period")),
		Reload:  key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "reload")),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Tab, k.Help, k.Palette, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Tab, k.Toggle, k.Period},
		{k.Reload, k.Palette},
		{k.Help, k.Quit},
	}
}

// ─── model ───────────────────────────────────────────────────────────────────

// Model is the root Bubble Tea model. It routes tabs, runs the command palette and
// refreshes every view after a session is logged.
type Model struct {
	session sessionPort

	logView      logview.Model
	goalsView    goalsview.Model
	progressView progressview.Model

	activeTab tabID
	keys      keyMap
	help      help.Model
	showHelp  bool
	palette   components.Palette
	status    string
	width     int
	height    int
}

func NewModel(session sessionPort, goals goalPort, progress progressPort, options []progressview.Option, defaults []string) Model {
	return Model{
		session:      session,
		logView:      logview.New(session),
		goalsView:    goalsview.New(goalPortBridge{p: goals}),
		progressView: progressview.New(progress, options, defaults),
		activeTab:    tabProgress,
		keys:         defaultKeys(),
		help:         help.New(),
		palette:      components.NewPalette(),
		status:       "ready",
	}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(m.logView.Init(), m.goalsView.Init(), m.progressView.Init())
}

// ─── update ───────────────────────────────────────────────────────────────────

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd
	if m.palette.Visible() {
		var cmd tea.Cmd
		m.palette, cmd = m.palette.Update(msg)
		if _, isKey := msg.(tea.KeyMsg); isKey {
			return m, cmd
		}
		// Cursor blinks and data loads still reach the views below.
		cmds = append(cmds, cmd)
	}
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.palette.SetWidth(min(m.width-4, 80))
		m.help.Width = m.width
		m.propagateSize()
		return m, nil

	case sessionLoggedMsg:
		if msg.err != nil {
			m.status = "log failed: " + msg.err.Error()
			return m, nil
		}
		m.status = fmt.Sprintf("session %d logged", msg.out.ID)
		return m, m.reloadAll()

	case components.PaletteSubmitMsg:
		return m.executePalette(msg.Input)

	case components.PaletteCancelMsg:
		m.status = "ready"
		return m, nil

	// Data messages go to their view whichever tab is showing.
	case logview.SessionsLoadedMsg:
		var cmd tea.Cmd
		m.logView, cmd = m.logView.Update(msg)
		return m, cmd
	case goalsview.GoalsLoadedMsg:
		var cmd tea.Cmd
		m.goalsView, cmd = m.goalsView.Update(msg)
		return m, cmd
	case progressview.OverviewLoadedMsg:
		var cmd tea.Cmd
		m.progressView, cmd = m.progressView.Update(msg)
		if msg.Err != nil {
			m.status = "progress: " + msg.Err.Error()
		}
		return m, cmd

	case spinner.TickMsg:
		var c1, c2, c3 tea.Cmd
		m.logView, c1 = m.logView.Update(msg)
		m.goalsView, c2 = m.goalsView.Update(msg)
		m.progressView, c3 = m.progressView.Update(msg)
		return m, tea.Batch(c1, c2, c3)

	case tea.KeyMsg:
		if m.showHelp {
			if msg.String() == "?" || msg.String() == "esc" {
				m.showHelp = false
			}
			return m, nil
		}
		if m.subViewFiltering() {
			break
		}
		switch msg.String() {
		case "ctrl+c", "q":
			return m, tea.Quit
		case "tab":
			m.activeTab = (m.activeTab + 1) % tabCount
			return m, nil
		case "shift+tab":
			m.activeTab = (m.activeTab + tabCount - 1) % tabCount
			return m, nil
		case "?":
			m.showHelp = !m.showHelp
			return m, nil
		case ":":
			return m, m.palette.Open()
		case "r":
			m.status = "reloading"
			return m, m.reloadAll()
		}
	}

	var tabCmd tea.Cmd
	switch m.activeTab {
	case tabLog:
		m.logView, tabCmd = m.logView.Update(msg)
	case tabGoals:
		m.goalsView, tabCmd = m.goalsView.Update(msg)
	case tabProgress:
		m.progressView, tabCmd = m.progressView.Update(msg)
	}
	cmds = append(cmds, tabCmd)
	return m, tea.Batch(cmds...)
}

// ─── view ────────────────────────────────────────────────────────────────────

func (m Model) View() string {
	tabBar := m.renderTabBar()
	statusBar := m.renderStatusBar()
	contentH := m.height - lipgloss.Height(tabBar) - lipgloss.Height(statusBar)
	if contentH < 1 {
		contentH = 1
	}

	var content string
	switch {
	case m.showHelp:
		content = lipgloss.NewStyle().Width(m.width).Height(contentH).Render(m.help.View(m.keys))
	case m.palette.Visible():
		content = lipgloss.Place(m.width, contentH, lipgloss.Center, lipgloss.Center, m.palette.View())
	default:
		content = m.activeView()
	}
	return lipgloss.JoinVertical(lipgloss.Left, tabBar, content, statusBar)
}

func (m Model) activeView() string {
	switch m.activeTab {
	case tabLog:
		return m.logView.View()
	case tabGoals:
		return m.goalsView.View()
	case tabProgress:
		return m.progressView.View()
	}
	return ""
}

func (m Model) renderTabBar() string {
	parts := make([]string, tabCount)
	for i := tabID(0); i < tabCount; i++ {
		if i == m.activeTab {
			parts[i] = theme.TabActive.Render(tabLabels[i])
		} else {
			parts[i] = theme.Tab.Render(tabLabels[i])
		}
	}
	bar := theme.Title.Render("momentum") + "  " + strings.Join(parts, " ")
	return theme.Bar.Width(m.width).Render(bar) + "\n"
}

func (m Model) renderStatusBar() string {
	left := m.status
	right := theme.Muted.Render("?:help  tab:switch  :::palette  q:quit")
	gap := m.width - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 1 {
		gap = 1
	}
	return "\n" + theme.Bar.Width(m.width).Render(left+strings.Repeat(" ", gap)+right)
}

// ─── palette execution ────────────────────────────────────────────────────────

func (m Model) executePalette(input string) (tea.Model, tea.Cmd) {
	input = strings.TrimSpace(input)
	if input == "" {
		return m, nil
	}
	verb, rest, _ := strings.Cut(input, " ")
	rest = strings.TrimSpace(rest)

	switch verb {
	case "log":
		in, err := ParseLogCommand(rest)
		if err != nil {
			m.status = err.Error()
			return m, nil
		}
		return m, m.logSessionCmd(in)

	case "select", "unselect":
		if rest == "" {
			m.status = "usage: " + verb + " <Selector>"
			return m, nil
		}
		m.activeTab = tabProgress
		if verb == "select" {
			return m, m.progressView.Select(rest)
		}
		return m, m.progressView.Unselect(rest)

	case "range":
		fields := strings.Fields(rest)
		if len(fields) == 0 || len(fields) > 2 {
			m.status = "usage: range <from> [to]"
			return m, nil
		}
		to := ""
		if len(fields) == 2 {
			to = fields[1]
		}
		m.activeTab = tabProgress
		return m, m.progressView.SetRange(fields[0], to)

	case "period":
		cmd := m.goalsView.SetPeriod(strings.ToLower(rest))
		if cmd == nil {
			m.status = "usage: period <past|active|future>"
			return m, nil
		}
		m.activeTab = tabGoals
		return m, cmd

	case "reload":
		return m, m.reloadAll()

	default:
		m.status = "unknown command: " + verb
	}
	return m, nil
}

// ParseLogCommand reads "date | group | activity | kw, kw | notes"; keywords and
// notes are optional.
func ParseLogCommand(args string) (sessiondto.LogSessionInput, error) {
	parts := strings.Split(args, "|")
	if len(parts) < 3 || len(parts) > 5 {
		return sessiondto.LogSessionInput{}, fmt.Errorf("usage: log <date> | <group> | <activity> | [kw, kw] | [notes]")
	}
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	in := sessiondto.LogSessionInput{Date: parts[0], Group: parts[1], Name: parts[2]}
	if len(parts) > 3 && parts[3] != "" {
		for _, kw := range strings.Split(parts[3], ",") {
			in.Keywords = append(in.Keywords, strings.TrimSpace(kw))
		}
	}
	if len(parts) > 4 {
		in.Notes = parts[4]
	}
	return in, nil
}

// ─── helpers ─────────────────────────────────────────────────────────────────

func (m Model) subViewFiltering() bool {
	switch m.activeTab {
	case tabLog:
		return m.logView.Filtering()
	case tabGoals:
		return m.goalsView.Filtering()
	case tabProgress:
		return m.progressView.Filtering()
	}
	return false
}

func (m *Model) propagateSize() {
	sz := tea.WindowSizeMsg{Width: m.width, Height: m.height - 3}
	m.logView, _ = m.logView.Update(sz)
	m.goalsView, _ = m.goalsView.Update(sz)
	m.progressView, _ = m.progressView.Update(sz)
}

func (m Model) reloadAll() tea.Cmd {
	return tea.Batch(m.logView.Reload(), m.goalsView.Reload(), m.progressView.Reload())
}

func (m Model) logSessionCmd(in sessiondto.LogSessionInput) tea.Cmd {
	return func() tea.Msg {
		out, err := m.session.Log(context.Background(), in)
		return sessionLoggedMsg{out: out, err: err}
	}
}

// ─── port bridges ─────────────────────────────────────────────────────────────

type goalPortBridge struct{ p goalPort }

func (b goalPortBridge) List(ctx context.Context, period string) ([]goaldto.EvaluationOutput, error) {
	return b.p.List(ctx, period, time.Time{})
}
