package tui

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rgehrsitz/itrgo/internal/domain"
	"github.com/rgehrsitz/itrgo/internal/tui/tuimsg"
)

func key(s string) tea.KeyMsg {
	switch s {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	case " ":
		return tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

// send applies msg and runs any returned command chain until it settles,
// skipping batches (spinner ticks).
func send(t *testing.T, m Model, msg tea.Msg) Model {
	t.Helper()
	for msg != nil {
		next, cmd := m.Update(msg)
		m = next.(Model)
		msg = nil
		if cmd != nil {
			out := cmd()
			if batch, ok := out.(tea.BatchMsg); ok {
				for _, c := range batch {
					if c == nil {
						continue
					}
					if r := c(); r != nil {
						if _, tick := r.(spinner.TickMsg); !tick {
							msg = r
						}
					}
				}
				if msg == nil {
					return m
				}
				continue
			}
			msg = out
		}
	}
	return m
}

func typeAnswer(t *testing.T, m Model, answer string) Model {
	t.Helper()
	for _, r := range answer {
		m = send(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
	return send(t, m, key("enter"))
}

func TestNewModel(t *testing.T) {
	m := NewModel("", nil)
	assert.Equal(t, SceneHome, m.currentScene)
	assert.Nil(t, m.Init(), "no facts file means no startup command")
	assert.Contains(t, m.View(), "Income Tax Calculator")
}

func TestInterviewToResults(t *testing.T) {
	m := NewModel("", nil)

	// New regime is first in the list
	m = send(t, m, key("enter"))
	require.Equal(t, SceneInterview, m.currentScene)
	require.NotNil(t, m.interviewModel)
	assert.Equal(t, domain.RegimeNew, m.interviewModel.Interview().Regime())

	m = typeAnswer(t, m, "12 lakh")
	assert.Equal(t, SceneInterview, m.currentScene, "letters are typed into the answer, not treated as shortcuts")

	for m.currentScene == SceneInterview {
		m = typeAnswer(t, m, "0")
	}

	require.Equal(t, SceneResults, m.currentScene)
	analysis := m.resultsModel.Analysis()
	require.NotNil(t, analysis)
	assert.True(t, analysis.Facts.GrossSalary.Equal(decimal.NewFromInt(1200000)))
	assert.Equal(t, domain.RegimeNew, analysis.Comparison.Best)
	assert.Contains(t, m.View(), "Tax Calculation Summary")
}

func TestInterviewRejectsBadAmount(t *testing.T) {
	m := NewModel("", nil)
	m = send(t, m, key("enter"))
	m = typeAnswer(t, m, "lots")

	assert.Equal(t, SceneInterview, m.currentScene)
	answered, _ := m.interviewModel.Interview().Progress()
	assert.Equal(t, 0, answered)
	assert.Contains(t, m.View(), "invalid input")
}

func TestFactsFileAndCompare(t *testing.T) {
	path := filepath.Join(t.TempDir(), "facts.yaml")
	require.NoError(t, os.WriteFile(path, []byte("grossSalary: 1200000\ndeduction80C: 50000\n"), 0o600))

	m := NewModel(path, nil)
	m = send(t, m, m.Init()())
	require.Equal(t, SceneResults, m.currentScene)
	assert.True(t, m.resultsModel.Analysis().NewRegime.TotalTaxPayable.Equal(decimal.NewFromInt(85800)))

	m = send(t, m, key("c"))
	require.Equal(t, SceneCompare, m.currentScene)

	m = send(t, m, key(" "))
	m = send(t, m, key("enter"))
	require.False(t, m.loading)
	require.NoError(t, m.err)
	assert.Contains(t, m.View(), "Total tax by scenario")

	m = send(t, m, key("esc"))
	assert.Equal(t, SceneResults, m.currentScene)
}

func TestAdviceWithoutGenerator(t *testing.T) {
	m := NewModel("", nil)
	m = send(t, m, CalculationCompleteMsg{Analysis: &domain.RegimeAnalysis{}})
	require.Equal(t, SceneResults, m.currentScene)

	m = send(t, m, tuimsg.AdviceRequestedMsg{})
	require.Error(t, m.err)
	assert.Contains(t, m.View(), "GEMINI_API_KEY")

	m = send(t, m, key("x"))
	assert.NoError(t, m.err, "any key clears the error")
}

func TestFactsFileMissing(t *testing.T) {
	m := NewModel(filepath.Join(t.TempDir(), "missing.yaml"), nil)
	m = send(t, m, m.Init()())
	require.Error(t, m.err)
	assert.True(t, strings.Contains(m.View(), "failed to read file"))
}

func TestHelpAndQuit(t *testing.T) {
	m := NewModel("", nil)
	m = send(t, m, key("?"))
	assert.Equal(t, SceneHelp, m.currentScene)
	assert.Contains(t, m.View(), "KEYBOARD SHORTCUTS")

	_, cmd := m.Update(key("q"))
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
}
