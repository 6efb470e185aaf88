package tui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"habitsense/internal/engine"
	"habitsense/internal/model"
	"habitsense/internal/registry"
)

func promptModel(t *testing.T) Model {
	t.Helper()

	reg, err := registry.LoadDefault()
	require.NoError(t, err)
	return NewModel(engine.New(reg))
}

func typeInput(m Model, text string) Model {
	updated, _ := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(text)})
	return updated.(Model)
}

// flush delivers the pending debounce tick so the suggestion recomputes.
func flush(m Model) Model {
	updated, _ := m.Update(suggestMsg{seq: m.seq})
	return updated.(Model)
}

func TestModel_SuggestsAfterDebounce(t *testing.T) {
	m := promptModel(t)

	m = typeInput(m, "go to gym")
	m = flush(m)

	suggestion, accepted := m.Suggestion()
	assert.Equal(t, model.CategoryFitness, suggestion.Category)
	assert.False(t, accepted)
}

func TestModel_StaleTickIgnored(t *testing.T) {
	m := promptModel(t)

	m = typeInput(m, "gym")
	stale := m.seq
	m = typeInput(m, " meditate")

	// The tick from the first keystroke arrives after more typing; it must
	// not recompute against the old sequence.
	before, _ := m.Suggestion()
	updated, _ := m.Update(suggestMsg{seq: stale})
	m = updated.(Model)
	after, _ := m.Suggestion()

	assert.Equal(t, before, after)
}

func TestModel_EnterAcceptsCurrentInput(t *testing.T) {
	m := promptModel(t)

	m = typeInput(m, "read a book")
	updated, _ := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m = updated.(Model)

	suggestion, accepted := m.Suggestion()
	assert.True(t, accepted)
	assert.Equal(t, model.CategoryEducation, suggestion.Category)
}

func TestModel_EscQuitsWithoutAccepting(t *testing.T) {
	m := promptModel(t)

	m = typeInput(m, "meditate")
	updated, _ := m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	m = updated.(Model)

	_, accepted := m.Suggestion()
	assert.False(t, accepted)
	assert.Empty(t, m.View(), "quitting model renders nothing")
}

func TestModel_ViewShowsFallbackNote(t *testing.T) {
	m := promptModel(t)

	m = typeInput(m, "asdkjhasd")
	m = flush(m)

	view := m.View()
	assert.Contains(t, view, "Other")
	assert.Contains(t, view, "threshold")
}

func TestModel_ViewShowsRankings(t *testing.T) {
	m := promptModel(t)

	m = typeInput(m, "drink water")
	m = flush(m)

	view := m.View()
	assert.Contains(t, view, "Health")
	assert.True(t, strings.Contains(view, "%"), "confidence percentages shown")
}
