package goals

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	goaldto "momentum/internal/modules/goal/dto"
	"momentum/internal/ui/theme"
)

type GoalPort interface {
	List(ctx context.Context, period string) ([]goaldto.EvaluationOutput, error)
}

var periods = []string{"past", "active", "future"}

type GoalsLoadedMsg struct {
	Period string
	Goals  []goaldto.EvaluationOutput
	Err    error
}

type goalItem struct {
	eval goaldto.EvaluationOutput
}

func (i goalItem) Title() string {
	label := i.eval.Goal.Label
	if label == "" {
		label = fmt.Sprintf("%d × %s", i.eval.Goal.Quantity, i.eval.Goal.Identifier)
	}
	return label
}

func (i goalItem) Description() string {
	g := i.eval.Goal
	window := g.Start.Format("2006-01-02") + " → " + g.End.Format("2006-01-02")
	if i.eval.Err != nil {
		return window + "  " + theme.Bad.Render("error: "+i.eval.Err.Error())
	}
	progress := fmt.Sprintf("%d / %d", i.eval.MatchedCount, g.Quantity)
	if i.eval.Satisfied {
		progress = theme.Good.Render(progress + " ✓")
	}
	return window + "  " + progress
}

func (i goalItem) FilterValue() string {
	return i.eval.Goal.Label + " " + i.eval.Goal.Identifier
}

type Model struct {
	port    GoalPort
	list    list.Model
	spinner spinner.Model
	period  int
	loading bool
	width   int
	height  int
}

func New(port GoalPort) Model {
	delegate := list.NewDefaultDelegate()
	delegate.Styles.SelectedTitle = delegate.Styles.SelectedTitle.Foreground(theme.Green).BorderForeground(theme.Green)
	delegate.Styles.SelectedDesc = delegate.Styles.SelectedDesc.Foreground(theme.Sapphire).BorderForeground(theme.Green)

	l := list.New(nil, delegate, 0, 0)
	l.Styles.Title = theme.Title
	l.SetShowStatusBar(true)
	l.SetFilteringEnabled(true)
	l.SetShowHelp(false)

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(theme.Green)

	m := Model{port: port, list: l, spinner: sp, period: 1, loading: true}
	m.list.Title = m.title()
	return m
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(m.Reload(), m.spinner.Tick)
}

// Period is the goal period currently shown.
func (m Model) Period() string {
	return periods[m.period]
}

// SetPeriod switches to a named period and reloads; unknown names are ignored.
func (m *Model) SetPeriod(name string) tea.Cmd {
	for i, p := range periods {
		if p == name {
			m.period = i
			m.list.Title = m.title()
			return m.Reload()
		}
	}
	return nil
}

func (m Model) Reload() tea.Cmd {
	period := m.Period()
	return func() tea.Msg {
		goals, err := m.port.List(context.Background(), period)
		return GoalsLoadedMsg{Period: period, Goals: goals, Err: err}
	}
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.list.SetSize(m.width, m.height-2)

	case GoalsLoadedMsg:
		if msg.Period != m.Period() {
			return m, nil
		}
		m.loading = false
		if msg.Err != nil {
			m.list.Title = m.title() + ": " + msg.Err.Error()
			return m, nil
		}
		m.list.Title = m.title()
		items := make([]list.Item, len(msg.Goals))
		for i, g := range msg.Goals {
			items[i] = goalItem{eval: g}
		}
		cmds = append(cmds, m.list.SetItems(items))

	case tea.KeyMsg:
		if !m.Filtering() {
			switch msg.String() {
			case "left":
				m.period = (m.period + len(periods) - 1) % len(periods)
				m.list.Title = m.title()
				return m, m.Reload()
			case "right":
				m.period = (m.period + 1) % len(periods)
				m.list.Title = m.title()
				return m, m.Reload()
			}
		}

	case spinner.TickMsg:
		if m.loading {
			var cmd tea.Cmd
			m.spinner, cmd = m.spinner.Update(msg)
			cmds = append(cmds, cmd)
		}
	}

	if !m.loading {
		var cmd tea.Cmd
		m.list, cmd = m.list.Update(msg)
		cmds = append(cmds, cmd)
	}
	return m, tea.Batch(cmds...)
}

func (m Model) View() string {
	if m.loading {
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center,
			m.spinner.View()+" Evaluating goals…")
	}
	return m.renderTabs() + "\n" + m.list.View()
}

func (m Model) Filtering() bool {
	return m.list.FilterState() == list.Filtering
}

func (m Model) title() string {
	return strings.ToUpper(periods[m.period][:1]) + periods[m.period][1:] + " goals"
}

func (m Model) renderTabs() string {
	parts := make([]string, len(periods))
	for i, p := range periods {
		if i == m.period {
			parts[i] = theme.Hot.Render(" " + p + " ")
		} else {
			parts[i] = theme.Muted.Render(" " + p + " ")
		}
	}
	return strings.Join(parts, theme.Muted.Render("│")) + theme.Muted.Render("   ←/→ period")
}
