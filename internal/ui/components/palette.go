package components

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"momentum/internal/ui/theme"
)

// PaletteSubmitMsg is emitted when the user confirms a command.
type PaletteSubmitMsg struct{ Input string }

// PaletteCancelMsg is emitted when the user presses esc.
type PaletteCancelMsg struct{}

var (
	paletteStyle = lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(theme.Peach).
			Background(theme.Mantle).
			Foreground(theme.Text).
			Padding(0, 1)

	hintStyle = lipgloss.NewStyle().Foreground(theme.Subtext0)
)

// hints must stay in sync with the switch in app/model.go executePalette.
var paletteHints = []string{
	"log <date> | <group> | <activity> | [kw, kw] | [notes]",
	"select <Selector>",
	"unselect <Selector>",
	"range <from> [to]",
	"period <past|active|future>",
	"reload",
}

const historyLimit = 50

// Palette is a command-palette overlay backed by bubbles/textinput. It keeps the
// commands submitted in this run; up and down walk through them, tab completes the verb.
type Palette struct {
	input   textinput.Model
	visible bool
	width   int

	history []string
	cursor  int
}

func NewPalette() Palette {
	ti := textinput.New()
	ti.Placeholder = "log 2025-01-07 | Exercise | Climbing | Bouldering"
	ti.CharLimit = 512
	return Palette{input: ti}
}

func (p Palette) Visible() bool { return p.visible }

// Open shows the palette with an empty input and returns the focus command.
func (p *Palette) Open() tea.Cmd {
	p.visible = true
	p.cursor = len(p.history)
	p.input.SetValue("")
	return p.input.Focus()
}

func (p *Palette) SetWidth(w int) { p.width = w }

// History returns submitted commands, oldest first.
func (p Palette) History() []string {
	return append([]string(nil), p.history...)
}

func (p Palette) Update(msg tea.Msg) (Palette, tea.Cmd) {
	if !p.visible {
		return p, nil
	}
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch msg.String() {
		case "esc":
			p.close()
			return p, func() tea.Msg { return PaletteCancelMsg{} }
		case "enter":
			val := strings.TrimSpace(p.input.Value())
			p.remember(val)
			p.close()
			return p, func() tea.Msg { return PaletteSubmitMsg{Input: val} }
		case "up":
			if p.cursor > 0 {
				p.cursor--
				p.setValue(p.history[p.cursor])
			}
			return p, nil
		case "down":
			if p.cursor < len(p.history)-1 {
				p.cursor++
				p.setValue(p.history[p.cursor])
			} else {
				p.cursor = len(p.history)
				p.setValue("")
			}
			return p, nil
		case "tab":
			if verb, ok := Complete(p.input.Value()); ok {
				p.setValue(verb + " ")
			}
			return p, nil
		}
	}
	var cmd tea.Cmd
	p.input, cmd = p.input.Update(msg)
	return p, cmd
}

// Complete expands a verb prefix when exactly one command starts with it.
func Complete(prefix string) (string, bool) {
	prefix = strings.ToLower(strings.TrimSpace(prefix))
	if prefix == "" || strings.Contains(prefix, " ") {
		return "", false
	}
	found := ""
	for _, h := range paletteHints {
		verb, _, _ := strings.Cut(h, " ")
		if strings.HasPrefix(verb, prefix) {
			if found != "" {
				return "", false
			}
			found = verb
		}
	}
	return found, found != ""
}

func (p Palette) View() string {
	if !p.visible {
		return ""
	}
	prefix := strings.ToLower(p.input.Value())
	var matching []string
	for _, h := range paletteHints {
		verb, _, _ := strings.Cut(h, " ")
		if prefix == "" || strings.HasPrefix(prefix, verb) || strings.HasPrefix(verb, prefix) {
			matching = append(matching, h)
		}
	}

	var sb strings.Builder
	sb.WriteString(theme.Title.Render("Command") + "\n")
	sb.WriteString(": " + p.input.View() + "\n")
	if len(matching) > 0 {
		sb.WriteString("\n")
		for _, h := range matching {
			sb.WriteString(hintStyle.Render("  "+h) + "\n")
		}
	}
	sb.WriteString(hintStyle.Render("\n↑/↓ history  tab complete  enter run  esc close"))

	w := p.width
	if w < 20 {
		w = 64
	}
	return paletteStyle.Width(w - 2).Render(sb.String())
}

func (p *Palette) close() {
	p.visible = false
	p.input.Blur()
}

func (p *Palette) setValue(v string) {
	p.input.SetValue(v)
	p.input.CursorEnd()
}

func (p *Palette) remember(cmd string) {
	if cmd == "" || (len(p.history) > 0 && p.history[len(p.history)-1] == cmd) {
		return
	}
	p.history = append(p.history, cmd)
	if len(p.history) > historyLimit {
		p.history = p.history[len(p.history)-historyLimit:]
	}
}
