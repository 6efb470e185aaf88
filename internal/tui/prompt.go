// Package tui implements the interactive suggest-as-you-type prompt. The
// engine itself is synchronous and pure; debouncing is a caller concern and
// lives here.
package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"habitsense/internal/cli"
	"habitsense/internal/engine"
	"habitsense/internal/model"
)

// debounceInterval is how long input must be idle before re-suggesting.
// Suggestion itself runs in microseconds; the debounce only avoids redrawing
// the ranking on every keystroke of a fast typist.
const debounceInterval = 80 * time.Millisecond

// maxRankings is how many alternatives the prompt shows.
const maxRankings = 3

// suggestMsg triggers recomputation when the debounce window closes. The
// sequence number discards stale ticks superseded by newer keystrokes.
type suggestMsg struct {
	seq int
}

// Model holds the prompt state.
type Model struct {
	service    *engine.Service
	input      textinput.Model
	suggestion model.Suggestion
	rankings   model.CategoryRankings
	seq        int
	accepted   bool
	quitting   bool
}

// NewModel creates a prompt over the given suggestion service.
func NewModel(service *engine.Service) Model {
	input := textinput.New()
	input.Placeholder = "Name a habit, e.g. \"Read 20 pages\""
	input.Prompt = cli.PromptStyle.Render("habit> ")
	input.CharLimit = 200
	input.Focus()

	return Model{
		service:    service,
		input:      input,
		suggestion: service.Suggest(""),
	}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			m.quitting = true
			return m, tea.Quit
		case tea.KeyEnter:
			m.suggestion = m.service.Suggest(m.input.Value())
			m.rankings = m.service.Rank(m.suggestion)
			m.accepted = true
			m.quitting = true
			return m, tea.Quit
		}

	case suggestMsg:
		if msg.seq != m.seq {
			return m, nil
		}
		m.suggestion = m.service.Suggest(m.input.Value())
		m.rankings = m.service.Rank(m.suggestion)
		return m, nil
	}

	var cmd tea.Cmd
	before := m.input.Value()
	m.input, cmd = m.input.Update(msg)
	if m.input.Value() == before {
		return m, cmd
	}

	m.seq++
	seq := m.seq
	debounce := tea.Tick(debounceInterval, func(time.Time) tea.Msg {
		return suggestMsg{seq: seq}
	})
	return m, tea.Batch(cmd, debounce)
}

// View implements tea.Model.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder
	b.WriteString(cli.FormatTitle("Habit category suggestions"))
	b.WriteString("\n")
	b.WriteString(m.input.View())
	b.WriteString("\n\n")

	if strings.TrimSpace(m.input.Value()) == "" {
		b.WriteString(cli.SubtleStyle.Render("Start typing to see suggestions."))
	} else {
		b.WriteString(m.renderRankings())
	}

	b.WriteString("\n\n")
	b.WriteString(cli.SubtleStyle.Render("enter accept · esc quit"))
	return b.String()
}

func (m Model) renderRankings() string {
	if m.suggestion.Fallback {
		return fmt.Sprintf("%s %s",
			cli.FormatCategory(model.CategoryOther),
			cli.SubtleStyle.Render("(no category cleared the confidence threshold)"))
	}

	var b strings.Builder
	for i, ranking := range m.rankings.TopN(maxRankings) {
		marker := "  "
		if i == 0 {
			marker = cli.BoldStyle.Render("→ ")
		}
		b.WriteString(fmt.Sprintf("%s%-12s %s %s\n",
			marker,
			cli.FormatCategory(ranking.Category),
			cli.ConfidenceBar(ranking.Confidence, 20),
			cli.FormatConfidence(ranking.Confidence)))
	}
	return strings.TrimRight(b.String(), "\n")
}

// Suggestion returns the last computed suggestion and whether the user
// accepted it with enter.
func (m Model) Suggestion() (model.Suggestion, bool) {
	return m.suggestion, m.accepted
}
