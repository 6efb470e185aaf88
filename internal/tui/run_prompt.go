package tui

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"habitsense/internal/engine"
	"habitsense/internal/model"
)

// RunPrompt runs the interactive prompt and returns the suggestion the user
// accepted. ok is false when the user quit without accepting.
func RunPrompt(service *engine.Service) (model.Suggestion, bool, error) {
	program := tea.NewProgram(NewModel(service))

	final, err := program.Run()
	if err != nil {
		return model.Suggestion{}, false, fmt.Errorf("prompt failed: %w", err)
	}

	m, ok := final.(Model)
	if !ok {
		return model.Suggestion{}, false, fmt.Errorf("unexpected model type %T", final)
	}

	suggestion, accepted := m.Suggestion()
	return suggestion, accepted, nil
}
