package components

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
)

func TestComplete(t *testing.T) {
	t.Parallel()
	cases := []struct {
		in   string
		want string
		ok   bool
	}{
		{in: "l", want: "log", ok: true},
		{in: "RA", want: "range", ok: true},
		{in: "re", ok: false}, // range, reload
		{in: "un", want: "unselect", ok: true},
		{in: "log 2025", ok: false},
		{in: "", ok: false},
		{in: "x", ok: false},
	}
	for _, tc := range cases {
		got, ok := Complete(tc.in)
		if got != tc.want || ok != tc.ok {
			t.Fatalf("Complete(%q) = %q, %v; want %q, %v", tc.in, got, ok, tc.want, tc.ok)
		}
	}
}

func TestPaletteHistory(t *testing.T) {
	t.Parallel()
	p := NewPalette()
	for _, cmd := range []string{"reload", "reload", "period past"} {
		p.Open()
		p.input.SetValue(cmd)
		var submit tea.Cmd
		p, submit = p.Update(tea.KeyMsg{Type: tea.KeyEnter})
		if msg, ok := submit().(PaletteSubmitMsg); !ok || msg.Input != cmd {
			t.Fatalf("expected submit of %q, got %#v", cmd, msg)
		}
		if p.Visible() {
			t.Fatalf("palette should close on enter")
		}
	}
	if h := p.History(); len(h) != 2 || h[0] != "reload" || h[1] != "period past" {
		t.Fatalf("unexpected history %q", h)
	}

	p.Open()
	p, _ = p.Update(tea.KeyMsg{Type: tea.KeyUp})
	if got := p.input.Value(); got != "period past" {
		t.Fatalf("up should recall the last command, got %q", got)
	}
	p, _ = p.Update(tea.KeyMsg{Type: tea.KeyUp})
	p, _ = p.Update(tea.KeyMsg{Type: tea.KeyDown})
	p, _ = p.Update(tea.KeyMsg{Type: tea.KeyDown})
	if got := p.input.Value(); got != "" {
		t.Fatalf("walking past the newest entry clears the input, got %q", got)
	}
}
