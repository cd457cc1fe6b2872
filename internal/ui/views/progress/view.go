package progress

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	progressdto "momentum/internal/modules/progress/dto"
	"momentum/internal/ui/components"
	"momentum/internal/ui/theme"
)

type ProgressPort interface {
	Overview(ctx context.Context, selectors []string, from, to string) (progressdto.OverviewOutput, error)
}

// Option is one selectable category and how to show it.
type Option struct {
	Selector string
	Label    string
}

type OverviewLoadedMsg struct {
	Out progressdto.OverviewOutput
	Err error
}

type optionItem struct {
	option Option
	order  int
}

func (i optionItem) Title() string {
	if i.order < 0 {
		return "  " + i.option.Label
	}
	return theme.Trace(i.order).Render("● " + i.option.Label)
}

func (i optionItem) Description() string { return i.option.Selector }
func (i optionItem) FilterValue() string { return i.option.Label }

type Model struct {
	port     ProgressPort
	options  []Option
	selected []string
	from, to string

	list   list.Model
	charts viewport.Model
	out    progressdto.OverviewOutput
	err    error
	width  int
	height int
}

func New(port ProgressPort, options []Option, defaults []string) Model {
	delegate := list.NewDefaultDelegate()
	delegate.ShowDescription = false
	delegate.SetSpacing(0)

	l := list.New(nil, delegate, 0, 0)
	l.Title = "Categories"
	l.Styles.Title = theme.Title
	l.SetShowStatusBar(false)
	l.SetFilteringEnabled(true)
	l.SetShowHelp(false)

	vp := viewport.New(0, 0)
	vp.Style = lipgloss.NewStyle().Background(theme.Mantle).Foreground(theme.Text).Padding(1)

	m := Model{
		port:     port,
		options:  options,
		selected: append([]string(nil), defaults...),
		list:     l,
		charts:   vp,
	}
	m.list.SetItems(m.items())
	return m
}

func (m Model) Init() tea.Cmd {
	return m.Reload()
}

func (m Model) Reload() tea.Cmd {
	selected := append([]string(nil), m.selected...)
	from, to := m.from, m.to
	return func() tea.Msg {
		if len(selected) == 0 {
			return OverviewLoadedMsg{}
		}
		out, err := m.port.Overview(context.Background(), selected, from, to)
		return OverviewLoadedMsg{Out: out, Err: err}
	}
}

// Toggle adds sel at the end of the selection, or removes it. Colors follow the
// resulting order.
func (m *Model) Toggle(sel string) tea.Cmd {
	for i, s := range m.selected {
		if s == sel {
			m.selected = append(m.selected[:i:i], m.selected[i+1:]...)
			m.list.SetItems(m.items())
			return m.Reload()
		}
	}
	m.selected = append(m.selected, sel)
	m.list.SetItems(m.items())
	return m.Reload()
}

func (m *Model) Select(sel string) tea.Cmd {
	for _, s := range m.selected {
		if s == sel {
			return nil
		}
	}
	return m.Toggle(sel)
}

func (m *Model) Unselect(sel string) tea.Cmd {
	for _, s := range m.selected {
		if s == sel {
			return m.Toggle(sel)
		}
	}
	return nil
}

// SetRange limits the charts to from..to; empty bounds use the defaults.
func (m *Model) SetRange(from, to string) tea.Cmd {
	m.from, m.to = from, to
	return m.Reload()
}

func (m Model) Selected() []string {
	return append([]string(nil), m.selected...)
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.resize()
		m.charts.SetContent(m.renderCharts())

	case OverviewLoadedMsg:
		m.out, m.err = msg.Out, msg.Err
		m.charts.SetContent(m.renderCharts())
		return m, nil

	case tea.KeyMsg:
		if !m.Filtering() && msg.String() == " " {
			if item, ok := m.list.SelectedItem().(optionItem); ok {
				return m, m.Toggle(item.option.Selector)
			}
		}
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	cmds = append(cmds, cmd)
	m.charts, cmd = m.charts.Update(msg)
	cmds = append(cmds, cmd)
	return m, tea.Batch(cmds...)
}

func (m Model) View() string {
	listW := m.width * 3 / 10
	listPane := lipgloss.NewStyle().Width(listW).Height(m.height).Render(m.list.View())
	chartPane := theme.Chart.
		Width(m.width - listW - 2).
		Height(m.height - 2).
		Render(m.charts.View())
	return lipgloss.JoinHorizontal(lipgloss.Top, listPane, chartPane)
}

func (m Model) Filtering() bool {
	return m.list.FilterState() == list.Filtering
}

func (m *Model) resize() {
	listW := m.width * 3 / 10
	m.list.SetSize(listW, m.height)
	m.charts.Width = m.width - listW - 6
	m.charts.Height = m.height - 4
}

func (m Model) items() []list.Item {
	items := make([]list.Item, len(m.options))
	for i, o := range m.options {
		items[i] = optionItem{option: o, order: indexOf(m.selected, o.Selector)}
	}
	return items
}

func (m Model) label(sel string) string {
	for _, o := range m.options {
		if o.Selector == sel {
			return o.Label
		}
	}
	return sel
}

func (m Model) renderCharts() string {
	if m.err != nil {
		return theme.Bad.Render(m.err.Error())
	}
	if len(m.selected) == 0 {
		return theme.Muted.Render("Select categories with space.")
	}
	days := m.out.Sessions.Days
	if len(days) == 0 {
		return theme.Muted.Render("Loading…")
	}
	width := m.charts.Width - 24
	if width < 10 {
		width = 10
	}

	var sb strings.Builder
	sb.WriteString(theme.Title.Render("Sessions") + theme.Muted.Render(fmt.Sprintf("  %s → %s", days[0].Format("2006-01-02"), days[len(days)-1].Format("2006-01-02"))) + "\n\n")
	ceiling := 1.0
	for _, tr := range m.out.Sessions.Traces {
		if n := len(tr.Counts); n > 0 && float64(tr.Counts[n-1]) > ceiling {
			ceiling = float64(tr.Counts[n-1])
		}
		if n := len(tr.Target); n > 0 && tr.Target[n-1] > ceiling {
			ceiling = tr.Target[n-1]
		}
	}
	for i, tr := range m.out.Sessions.Traces {
		style := theme.Trace(i)
		last := 0
		if n := len(tr.Counts); n > 0 {
			last = tr.Counts[n-1]
		}
		sb.WriteString(fmt.Sprintf("%-18s %s %d\n", truncate(m.label(tr.Selector), 18), style.Render(components.Sparkline(components.Ints(tr.Counts), width, ceiling)), last))
		if n := len(tr.Target); n > 0 {
			sb.WriteString(fmt.Sprintf("%-18s %s %.0f\n", theme.Muted.Render("  target"), theme.Muted.Render(components.Sparkline(tr.Target, width, ceiling)), tr.Target[n-1]))
		}
	}

	sb.WriteString("\n" + theme.Title.Render("Goals satisfied") + "\n\n")
	for i, tr := range m.out.Goals.Traces {
		style := theme.Trace(i)
		summary := "no concluded goals"
		if n := len(tr.Total); n > 0 && tr.Total[n-1] > 0 {
			summary = fmt.Sprintf("%d/%d", tr.Satisfied[n-1], tr.Total[n-1])
		}
		sb.WriteString(fmt.Sprintf("%-18s %s %s\n", truncate(m.label(tr.Selector), 18), style.Render(components.Sparkline(tr.Fraction, width, 1)), summary))
	}
	if len(m.out.Goals.Skipped) > 0 {
		sb.WriteString("\n" + theme.Bad.Render(fmt.Sprintf("%d goal(s) could not be evaluated", len(m.out.Goals.Skipped))) + "\n")
	}
	return sb.String()
}

func indexOf(values []string, s string) int {
	for i, v := range values {
		if v == s {
			return i
		}
	}
	return -1
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}
