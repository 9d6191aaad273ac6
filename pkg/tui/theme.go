package tui

import (
	"github.com/charmbracelet/lipgloss/v2"

	"tableflip.dev/agenda/pkg/label"
)

// Theme centralizes Lip Gloss styles for the calendar UI.
type Theme struct {
	Header    lipgloss.Style
	DayNumber lipgloss.Style
	Today     lipgloss.Style
	Selected  lipgloss.Style
	Muted     lipgloss.Style
	Gutter    lipgloss.Style
	NowLine   lipgloss.Style
	Status    lipgloss.Style
	Sidebar   lipgloss.Style
	Frame     lipgloss.Style
	Title     lipgloss.Style

	labels map[string]lipgloss.Style
}

// Default returns the built-in theme. Label styles come from the
// shared palette so the TUI matches the CLI swatches.
func Default() Theme {
	labels := make(map[string]lipgloss.Style, len(label.Palette))
	for _, name := range label.Palette {
		s := label.StyleFor(name)
		labels[name] = lipgloss.NewStyle().
			Background(lipgloss.Color(s.Background)).
			Foreground(lipgloss.Color(s.Foreground))
	}
	return Theme{
		Header:    lipgloss.NewStyle().Bold(true),
		DayNumber: lipgloss.NewStyle().Foreground(lipgloss.Color("250")),
		Today: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("212")),
		Selected: lipgloss.NewStyle().Reverse(true),
		Muted:    lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
		Gutter:   lipgloss.NewStyle().Foreground(lipgloss.Color("244")),
		NowLine:  lipgloss.NewStyle().Foreground(lipgloss.Color("203")),
		Status:   lipgloss.NewStyle().Foreground(lipgloss.Color("244")),
		Sidebar:  lipgloss.NewStyle().Foreground(lipgloss.Color("250")),
		Frame: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			Padding(1, 2),
		Title:  lipgloss.NewStyle().Bold(true),
		labels: labels,
	}
}

// Label returns the style for a label name, falling back to the
// neutral style for names outside the palette.
func (t Theme) Label(name string) lipgloss.Style {
	if s, ok := t.labels[name]; ok {
		return s
	}
	neutral := label.StyleFor(name)
	return lipgloss.NewStyle().
		Background(lipgloss.Color(neutral.Background)).
		Foreground(lipgloss.Color(neutral.Foreground))
}
