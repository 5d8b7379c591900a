package tui

import (
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/rgehrsitz/itrgo/internal/tui/scenes"
	"github.com/rgehrsitz/itrgo/internal/tui/tuimsg"
)

// Update handles all messages and updates the model state
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	case tea.KeyMsg:
		return m.handleKeyPress(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.homeModel.SetSize(msg.Width, msg.Height)
		m.resultsModel.SetSize(msg.Width, msg.Height)
		m.compareModel.SetSize(msg.Width, msg.Height)
		m.adviceModel.SetSize(msg.Width, msg.Height)
		if m.interviewModel != nil {
			m.interviewModel.SetSize(msg.Width, msg.Height)
		}
		return m, nil

	case spinner.TickMsg:
		if !m.loading {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case NavigateMsg:
		return m.navigate(msg.Scene), nil

	case ErrorMsg:
		m.loading = false
		m.err = msg.Err
		return m, nil

	case tuimsg.RegimeChosenMsg:
		iv, err := scenes.NewInterviewModel(msg.Regime)
		if err != nil {
			m.err = err
			return m, nil
		}
		iv.SetSize(m.width, m.height)
		m.interviewModel = iv
		return m.navigate(SceneInterview), nil

	case tuimsg.InterviewCompleteMsg:
		facts := msg.Facts
		m.facts = &facts
		return m.startLoading("Calculating both regimes...", calculateCmd(m.calcEngine, facts))

	case FactsLoadedMsg:
		m.facts = msg.Facts
		return m.startLoading("Calculating both regimes...", calculateCmd(m.calcEngine, *msg.Facts))

	case CalculationCompleteMsg:
		m.loading = false
		if msg.Err != nil {
			m.err = msg.Err
			return m, nil
		}
		m.resultsModel.SetResults(msg.Analysis)
		return m.navigate(SceneResults), nil

	case tuimsg.ComparisonRequestedMsg:
		if m.facts == nil {
			return m, nil
		}
		return m.startLoading("Running what-if scenarios...", compareCmd(m.compareEngine, *m.facts, msg.Templates))

	case ComparisonCompleteMsg:
		m.loading = false
		if msg.Err != nil {
			m.err = msg.Err
			return m, nil
		}
		m.compareModel.SetResults(msg.Set)
		return m, nil

	case tuimsg.AdviceRequestedMsg:
		return m.startLoading("Asking for suggestions...", adviceCmd(m.advisor, m.resultsModel.Analysis()))

	case AdviceCompleteMsg:
		m.loading = false
		if msg.Err != nil {
			m.err = msg.Err
			return m, nil
		}
		m.adviceModel.SetMarkdown(msg.Markdown)
		return m.navigate(SceneAdvice), nil
	}

	return m.updateCurrentScene(msg)
}

func (m Model) startLoading(message string, cmd tea.Cmd) (tea.Model, tea.Cmd) {
	m.loading = true
	m.loadingMessage = message
	return m, tea.Batch(m.spinner.Tick, cmd)
}

func (m Model) navigate(scene Scene) Model {
	if scene != m.currentScene {
		m.previousScene = m.currentScene
		m.currentScene = scene
	}
	return m
}

// back returns to the logical parent of the current scene
func (m Model) back() Model {
	switch m.currentScene {
	case SceneInterview, SceneHelp:
		return m.navigate(SceneHome)
	case SceneCompare, SceneAdvice:
		return m.navigate(SceneResults)
	case SceneResults:
		return m.navigate(SceneHome)
	}
	return m
}

// handleKeyPress processes keyboard input
func (m Model) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		return m, tea.Quit
	}
	if m.loading {
		return m, nil
	}
	if m.err != nil {
		m.err = nil
		return m, nil
	}
	if msg.String() == "esc" {
		return m.back(), nil
	}

	// Single-letter shortcuts would collide with typing answers
	if m.currentScene == SceneInterview {
		return m.updateCurrentScene(msg)
	}

	switch msg.String() {
	case "q":
		return m, tea.Quit
	case "?":
		return m.navigate(SceneHelp), nil
	case "n":
		return m.navigate(SceneHome), nil
	}

	if m.currentScene == SceneResults && m.resultsModel.Analysis() != nil {
		switch msg.String() {
		case "c":
			return m.navigate(SceneCompare), nil
		case "a":
			return m, func() tea.Msg { return tuimsg.AdviceRequestedMsg{} }
		}
	}

	return m.updateCurrentScene(msg)
}

// updateCurrentScene delegates updates to the current scene's model
func (m Model) updateCurrentScene(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch m.currentScene {
	case SceneHome:
		m.homeModel, cmd = m.homeModel.Update(msg)
	case SceneInterview:
		if m.interviewModel != nil {
			m.interviewModel, cmd = m.interviewModel.Update(msg)
		}
	case SceneResults:
		m.resultsModel, cmd = m.resultsModel.Update(msg)
	case SceneCompare:
		m.compareModel, cmd = m.compareModel.Update(msg)
	case SceneAdvice:
		m.adviceModel, cmd = m.adviceModel.Update(msg)
	}
	return m, cmd
}
