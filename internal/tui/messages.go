package tui

import (
	"github.com/rgehrsitz/itrgo/internal/tui/tuimsg"
)

// Scene represents different screens in the TUI
type Scene int

const (
	SceneHome Scene = iota
	SceneInterview
	SceneResults
	SceneCompare
	SceneAdvice
	SceneHelp
)

// NavigateMsg switches to a different scene
type NavigateMsg struct {
	Scene Scene
}

// Messages shared with the scenes live in tuimsg
type (
	ErrorMsg               = tuimsg.ErrorMsg
	FactsLoadedMsg         = tuimsg.FactsLoadedMsg
	CalculationCompleteMsg = tuimsg.CalculationCompleteMsg
	ComparisonCompleteMsg  = tuimsg.ComparisonCompleteMsg
	AdviceCompleteMsg      = tuimsg.AdviceCompleteMsg
)
