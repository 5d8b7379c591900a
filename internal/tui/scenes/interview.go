package scenes

import (
	"strings"

	"github.com/charmbracelet/bubbles/cursor"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/rgehrsitz/itrgo/internal/conversation"
	"github.com/rgehrsitz/itrgo/internal/domain"
	"github.com/rgehrsitz/itrgo/internal/tui/components"
	"github.com/rgehrsitz/itrgo/internal/tui/tuimsg"
	"github.com/rgehrsitz/itrgo/internal/tui/tuistyles"
)

// InterviewModel asks the flow's questions one at a time
type InterviewModel struct {
	interview *conversation.Interview
	input     textinput.Model
	errText   string
	width     int
	height    int
}

// NewInterviewModel creates an interview for regime
func NewInterviewModel(regime domain.Regime) (*InterviewModel, error) {
	iv, err := conversation.NewInterview(regime)
	if err != nil {
		return nil, err
	}

	ti := textinput.New()
	ti.Placeholder = "e.g. 12,00,000 or 12 lakh"
	ti.Prompt = "₹ "
	ti.CharLimit = 32
	ti.Width = 30
	ti.Cursor.SetMode(cursor.CursorStatic)
	ti.Focus()

	return &InterviewModel{interview: iv, input: ti}, nil
}

// SetSize updates the model dimensions
func (m *InterviewModel) SetSize(width, height int) {
	m.width = width
	m.height = height
}

// Interview exposes the underlying interview
func (m *InterviewModel) Interview() *conversation.Interview {
	return m.interview
}

// Update handles messages for the interview scene
func (m *InterviewModel) Update(msg tea.Msg) (*InterviewModel, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok && key.Type == tea.KeyEnter {
		if m.interview.Done() {
			return m, m.complete()
		}
		if err := m.interview.Answer(m.input.Value()); err != nil {
			m.errText = err.Error()
			return m, nil
		}
		m.errText = ""
		m.input.Reset()
		if m.interview.Done() {
			return m, m.complete()
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *InterviewModel) complete() tea.Cmd {
	facts := m.interview.Facts()
	return func() tea.Msg { return tuimsg.InterviewCompleteMsg{Facts: facts} }
}

// View renders the current question
func (m *InterviewModel) View() string {
	var content strings.Builder

	content.WriteString(tuistyles.TitleStyle.Render(m.interview.Regime().Title() + " interview"))
	content.WriteString("\n\n")

	answered, total := m.interview.Progress()
	content.WriteString(components.NewProgressBar(answered, total).Render())
	content.WriteString("\n\n")

	content.WriteString(m.interview.Prompt())
	content.WriteString("\n\n")
	if !m.interview.Done() {
		content.WriteString(m.input.View())
		content.WriteString("\n")
	}
	if m.errText != "" {
		content.WriteString("\n")
		content.WriteString(tuistyles.ErrorStyle.Render(m.errText))
		content.WriteString("\n")
	}

	content.WriteString("\n")
	content.WriteString(tuistyles.HelpDescStyle.Render("enter submit • esc back"))

	return tuistyles.ActiveBorderStyle.Render(content.String())
}
