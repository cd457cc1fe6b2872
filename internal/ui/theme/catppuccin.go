package theme

import "github.com/charmbracelet/lipgloss"

var (
	Base     = lipgloss.Color("#1e1e2e")
	Mantle   = lipgloss.Color("#181825")
	Surface1 = lipgloss.Color("#45475a")
	Text     = lipgloss.Color("#cdd6f4")
	Subtext0 = lipgloss.Color("#a6adc8")
	Lavender = lipgloss.Color("#b4befe")
	Sapphire = lipgloss.Color("#74c7ec")
	Green    = lipgloss.Color("#a6e3a1")
	Peach    = lipgloss.Color("#fab387")
	Red      = lipgloss.Color("#f38ba8")

	// Bar is the background strip behind the tab row and the status line.
	Bar = lipgloss.NewStyle().Background(Mantle).Foreground(Text)

	Tab       = lipgloss.NewStyle().Foreground(Subtext0).Padding(0, 1)
	TabActive = Tab.Foreground(Base).Background(Lavender).Bold(true)

	// Chart frames the progress and log detail panes.
	Chart = lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(Surface1).
		Background(Mantle)

	Title = lipgloss.NewStyle().Foreground(Sapphire).Bold(true)
	Muted = lipgloss.NewStyle().Foreground(Subtext0)
	Hot   = lipgloss.NewStyle().Foreground(Peach).Bold(true)
	Good  = lipgloss.NewStyle().Foreground(Green)
	Bad   = lipgloss.NewStyle().Foreground(Red)
)

// tracePalette is the plot color cycle, in order.
var tracePalette = [...]lipgloss.Color{
	"#636efa", "#EF553B", "#00cc96", "#ab63fa", "#FFA15A",
	"#19d3f3", "#FF6692", "#B6E880", "#FF97FF", "#FECB52",
}

// TraceColor is the color of the i-th selected trace (0-based). It depends only on
// selection order and wraps after the last palette entry.
func TraceColor(i int) lipgloss.Color {
	n := len(tracePalette)
	return tracePalette[((i%n)+n)%n]
}

func Trace(i int) lipgloss.Style {
	return lipgloss.NewStyle().Foreground(TraceColor(i))
}
