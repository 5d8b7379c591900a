package tui

import (
	"context"
	"errors"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/rgehrsitz/itrgo/internal/advisor"
	"github.com/rgehrsitz/itrgo/internal/calculation"
	"github.com/rgehrsitz/itrgo/internal/compare"
	"github.com/rgehrsitz/itrgo/internal/config"
	"github.com/rgehrsitz/itrgo/internal/domain"
	"github.com/rgehrsitz/itrgo/internal/tui/scenes"
)

// adviceTimeout bounds a single generation request
const adviceTimeout = 60 * time.Second

// Model represents the entire application state
type Model struct {
	// Navigation
	currentScene  Scene
	previousScene Scene

	// Terminal dimensions
	width  int
	height int

	// Optional facts file; when set the interview is skipped
	factsPath string
	facts     *domain.FinancialFacts

	calcEngine    *calculation.CalculationEngine
	compareEngine *compare.CompareEngine
	advisor       *advisor.Advisor

	// Scene models
	homeModel      *scenes.HomeModel
	interviewModel *scenes.InterviewModel
	resultsModel   *scenes.ResultsModel
	compareModel   *scenes.CompareModel
	adviceModel    *scenes.AdviceModel

	err error

	loading        bool
	loadingMessage string
	spinner        spinner.Model
}

// NewModel creates a new application model. factsPath may be empty to start
// with the interview; adv may be nil when no generator is configured.
func NewModel(factsPath string, adv *advisor.Advisor) Model {
	calcEngine := calculation.NewCalculationEngine()
	compareEngine := compare.NewCompareEngine(calcEngine)

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = StatusKeyStyle

	return Model{
		currentScene:  SceneHome,
		factsPath:     factsPath,
		calcEngine:    calcEngine,
		compareEngine: compareEngine,
		advisor:       adv,
		homeModel:     scenes.NewHomeModel(),
		resultsModel:  scenes.NewResultsModel(),
		compareModel:  scenes.NewCompareModel(compareEngine.TemplateRegistry),
		adviceModel:   scenes.NewAdviceModel(),
		spinner:       sp,
		width:         80,
		height:        24,
	}
}

// Init initializes the model (required by tea.Model interface)
func (m Model) Init() tea.Cmd {
	if m.factsPath != "" {
		return loadFactsCmd(m.factsPath)
	}
	return nil
}

// loadFactsCmd returns a command that loads a facts file
func loadFactsCmd(path string) tea.Cmd {
	return func() tea.Msg {
		facts, err := config.NewInputParser().LoadFromFile(path)
		if err != nil {
			return ErrorMsg{Err: err}
		}
		return FactsLoadedMsg{Facts: facts}
	}
}

// calculateCmd computes both regimes for facts
func calculateCmd(engine *calculation.CalculationEngine, facts domain.FinancialFacts) tea.Cmd {
	return func() tea.Msg {
		analysis, err := engine.Analyze(facts)
		return CalculationCompleteMsg{Analysis: analysis, Err: err}
	}
}

// compareCmd runs the facts against the chosen templates
func compareCmd(engine *compare.CompareEngine, facts domain.FinancialFacts, templates []string) tea.Cmd {
	return func() tea.Msg {
		set, err := engine.Compare(context.Background(), facts, compare.CompareOptions{Templates: templates})
		return ComparisonCompleteMsg{Set: set, Err: err}
	}
}

// adviceCmd asks the advisor for suggestions on an analysis
func adviceCmd(adv *advisor.Advisor, analysis *domain.RegimeAnalysis) tea.Cmd {
	return func() tea.Msg {
		if adv == nil {
			return AdviceCompleteMsg{Err: errors.New("AI suggestions need GEMINI_API_KEY to be set")}
		}
		ctx, cancel := context.WithTimeout(context.Background(), adviceTimeout)
		defer cancel()
		md, err := adv.RecommendTax(ctx, analysis)
		return AdviceCompleteMsg{Markdown: md, Err: err}
	}
}

// String returns a human-readable name for a scene
func (s Scene) String() string {
	switch s {
	case SceneHome:
		return "Home"
	case SceneInterview:
		return "Interview"
	case SceneResults:
		return "Results"
	case SceneCompare:
		return "Compare"
	case SceneAdvice:
		return "Suggestions"
	case SceneHelp:
		return "Help"
	default:
		return "Unknown"
	}
}
