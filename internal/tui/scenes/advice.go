package scenes

import (
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"

	"github.com/rgehrsitz/itrgo/internal/tui/tuistyles"
)

// AdviceModel shows generated markdown in a scrollable viewport
type AdviceModel struct {
	viewport viewport.Model
	markdown string
	ready    bool
}

// NewAdviceModel creates an empty advice scene
func NewAdviceModel() *AdviceModel {
	return &AdviceModel{viewport: viewport.New(80, 20)}
}

// SetSize updates the viewport dimensions
func (m *AdviceModel) SetSize(width, height int) {
	m.viewport.Width = width
	m.viewport.Height = max(5, height-6)
	if m.ready {
		m.render()
	}
}

// SetMarkdown renders markdown into the viewport
func (m *AdviceModel) SetMarkdown(md string) {
	m.markdown = md
	m.ready = true
	m.render()
	m.viewport.GotoTop()
}

func (m *AdviceModel) render() {
	width := max(20, m.viewport.Width-4)
	r, err := glamour.NewTermRenderer(glamour.WithAutoStyle(), glamour.WithWordWrap(width))
	if err != nil {
		m.viewport.SetContent(m.markdown)
		return
	}
	out, err := r.Render(m.markdown)
	if err != nil {
		out = m.markdown
	}
	m.viewport.SetContent(out)
}

// Update scrolls the viewport
func (m *AdviceModel) Update(msg tea.Msg) (*AdviceModel, tea.Cmd) {
	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

// View renders the advice
func (m *AdviceModel) View() string {
	if !m.ready {
		return tuistyles.BorderStyle.Render("No suggestions yet. Press a on the results screen.")
	}
	return tuistyles.TitleStyle.Render("AI suggestions") + "\n" +
		m.viewport.View() + "\n" +
		tuistyles.HelpDescStyle.Render("↑/↓ scroll • esc back")
}
