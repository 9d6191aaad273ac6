package tui

import (
	_ "embed"
	"strings"

	"github.com/charmbracelet/bubbles/v2/viewport"
	tea "github.com/charmbracelet/bubbletea/v2"
	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss/v2"
)

//go:embed help.md
var helpMarkdown string

// helpOverlay renders the Glamour help text inside a bordered
// viewport.
type helpOverlay struct {
	viewport viewport.Model
	width    int
	height   int

	frame lipgloss.Style
	err   error
}

func newHelpOverlay(width, height int) *helpOverlay {
	vp := viewport.New(
		viewport.WithWidth(max(width, 1)),
		viewport.WithHeight(max(height, 1)),
	)
	vp.MouseWheelEnabled = true
	h := &helpOverlay{
		viewport: vp,
		frame: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			Padding(0, 1),
	}
	h.SetSize(width, height)
	return h
}

func (h *helpOverlay) Update(msg tea.Msg) tea.Cmd {
	vp, cmd := h.viewport.Update(msg)
	h.viewport = vp
	return cmd
}

func (h *helpOverlay) View() string {
	body := h.viewport.View()
	if body == "" && h.err != nil {
		body = "help unavailable: " + h.err.Error()
	}
	return h.frame.Width(h.width).Height(h.height).Render(body)
}

// SetSize configures the overlay bounds and re-renders the markdown
// to fit.
func (h *helpOverlay) SetSize(width, height int) {
	if width < 32 {
		width = 32
	}
	if height < 8 {
		height = 8
	}
	if h.width == width && h.height == height {
		return
	}
	h.width = width
	h.height = height

	innerWidth := max(width-h.frame.GetHorizontalFrameSize(), 1)
	innerHeight := max(height-h.frame.GetVerticalFrameSize(), 1)
	h.viewport.SetWidth(innerWidth)
	h.viewport.SetHeight(innerHeight)
	h.renderContent(innerWidth)
}

func (h *helpOverlay) renderContent(wrap int) {
	renderer, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle("dark"),
		glamour.WithWordWrap(max(wrap, 10)),
	)
	if err != nil {
		h.err = err
		h.viewport.SetContent("help unavailable: " + err.Error())
		return
	}
	content, err := renderer.Render(strings.TrimSpace(helpMarkdown))
	if err != nil {
		h.err = err
		h.viewport.SetContent("help unavailable: " + err.Error())
		return
	}
	h.err = nil
	h.viewport.SetContent(content)
	h.viewport.SetYOffset(0)
}
