package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// View renders the current state of the application
func (m Model) View() string {
	if m.loading {
		return m.renderApp(BorderStyle.Render(m.spinner.View() + " " + m.loadingMessage))
	}
	if m.err != nil {
		return m.renderApp(ErrorStyle.Render(
			fmt.Sprintf("Error: %s\n\nPress any key to continue...", m.err.Error()),
		))
	}

	var content string
	switch m.currentScene {
	case SceneHome:
		content = m.homeModel.View()
	case SceneInterview:
		if m.interviewModel != nil {
			content = m.interviewModel.View()
		}
	case SceneResults:
		content = m.resultsModel.View()
	case SceneCompare:
		content = m.compareModel.View()
	case SceneAdvice:
		content = m.adviceModel.View()
	case SceneHelp:
		content = renderHelp()
	default:
		content = "Unknown scene"
	}

	return m.renderApp(content)
}

// renderApp wraps content with title bar and status bar
func (m Model) renderApp(content string) string {
	return lipgloss.JoinVertical(
		lipgloss.Left,
		m.renderTitleBar(),
		content,
		m.renderStatusBar(),
	)
}

// renderTitleBar renders the application title and breadcrumb
func (m Model) renderTitleBar() string {
	breadcrumb := m.currentScene.String()
	if m.interviewModel != nil && m.currentScene == SceneInterview {
		breadcrumb += " / " + m.interviewModel.Interview().Regime().Title()
	}
	return lipgloss.JoinVertical(
		lipgloss.Left,
		TitleStyle.Render("ITRGO - Indian Income Tax Regime Calculator"),
		SubtitleStyle.Render(breadcrumb),
	)
}

// renderStatusBar renders the bottom status bar with keyboard shortcuts
func (m Model) renderStatusBar() string {
	var shortcuts []string
	if m.currentScene == SceneInterview {
		shortcuts = []string{formatShortcut("enter", "answer"), formatShortcut("esc", "back"), formatShortcut("ctrl+c", "quit")}
	} else {
		shortcuts = []string{formatShortcut("n", "new"), formatShortcut("esc", "back"), formatShortcut("?", "help"), formatShortcut("q", "quit")}
	}
	return StatusBarStyle.Width(m.width).Render(strings.Join(shortcuts, " • "))
}

// formatShortcut formats a keyboard shortcut with key and description
func formatShortcut(key, desc string) string {
	return StatusKeyStyle.Render(key) + " " + desc
}

// renderHelp renders the help screen
func renderHelp() string {
	helpText := `
ITRGO - Indian Income Tax Regime Calculator (FY 2024-25)

KEYBOARD SHORTCUTS:
  n        Start a new interview
  c        What-if comparison (from results)
  a        AI tax-saving suggestions (from results)
  ?        Show this help
  ESC      Go back
  q/Ctrl+C Quit

INTERVIEW:
  Amounts accept commas and suffixes: 12,00,000  12 lakh  1.2 crore  50k
  Type 0 for anything that does not apply

COMPARE:
  Space toggles a scenario, Enter runs the selected ones
`
	return BorderStyle.Render(helpText)
}
