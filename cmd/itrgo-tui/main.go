package main

import (
	"context"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/rgehrsitz/itrgo/internal/advisor"
	"github.com/rgehrsitz/itrgo/internal/config"
	"github.com/rgehrsitz/itrgo/internal/tui"
)

func main() {
	// Optional facts file skips the interview
	factsPath := ""
	if len(os.Args) > 1 {
		factsPath = os.Args[1]
		if _, err := os.Stat(factsPath); os.IsNotExist(err) {
			fmt.Printf("Error: facts file not found: %s\n", factsPath)
			os.Exit(1)
		}
	}

	model := tui.NewModel(factsPath, loadAdvisor())

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	)

	if _, err := p.Run(); err != nil {
		fmt.Printf("Error running TUI: %v\n", err)
		os.Exit(1)
	}
}

// loadAdvisor returns nil when no API key is configured; the results screen
// then reports that suggestions are unavailable.
func loadAdvisor() *advisor.Advisor {
	cfg, err := config.LoadServerConfig()
	if err != nil || cfg.GeminiAPIKey == "" {
		return nil
	}
	gen, err := advisor.NewGeminiGenerator(context.Background(), cfg.GeminiAPIKey, cfg.GeminiModel)
	if err != nil {
		return nil
	}
	return advisor.NewAdvisor(gen, nil, zap.NewNop())
}
