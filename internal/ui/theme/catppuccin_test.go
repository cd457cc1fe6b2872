package theme_test

import (
	"testing"

	"github.com/charmbracelet/lipgloss"

	"momentum/internal/ui/theme"
)

func TestTraceColorCycles(t *testing.T) {
	t.Parallel()
	if theme.TraceColor(0) != lipgloss.Color("#636efa") {
		t.Fatalf("unexpected first color %v", theme.TraceColor(0))
	}
	if theme.TraceColor(9) != lipgloss.Color("#FECB52") {
		t.Fatalf("unexpected last color %v", theme.TraceColor(9))
	}
	for i := 0; i < 10; i++ {
		if theme.TraceColor(i) != theme.TraceColor(i+10) {
			t.Fatalf("color %d must repeat after ten traces", i)
		}
	}
	if theme.TraceColor(-1) != theme.TraceColor(9) {
		t.Fatalf("negative index should wrap")
	}
}
