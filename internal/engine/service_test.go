package engine

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"habitsense/internal/model"
	"habitsense/internal/registry"
)

func defaultService(t *testing.T) *Service {
	t.Helper()

	reg, err := registry.LoadDefault()
	require.NoError(t, err)
	return New(reg)
}

func TestService_Suggest_EndToEnd(t *testing.T) {
	service := defaultService(t)

	tests := []struct {
		name  string
		input string
		want  model.Category
	}{
		{name: "gym", input: "Go to gym", want: model.CategoryFitness},
		{name: "reading", input: "Read a book", want: model.CategoryEducation},
		{name: "saving", input: "Save money", want: model.CategoryFinance},
		{name: "calling", input: "Call mom", want: model.CategorySocial},
		{name: "hydration", input: "Drink water", want: model.CategoryHealth},
		{name: "meditation", input: "meditate", want: model.CategoryMindfulness},
		{name: "deep work", input: "2 hours of deep work", want: model.CategoryWork},
		{name: "gibberish", input: "asdkjhasd", want: model.CategoryOther},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			suggestion := service.Suggest(tt.input)

			assert.Equal(t, tt.want, suggestion.Category)
			assert.True(t, suggestion.Category.Valid())
			if tt.want == model.CategoryOther {
				assert.True(t, suggestion.Fallback)
				assert.Zero(t, suggestion.Confidence)
			} else {
				assert.False(t, suggestion.Fallback)
				assert.GreaterOrEqual(t, suggestion.Confidence, DefaultConfig().FallbackThreshold)
			}
		})
	}
}

func TestService_Suggest_EmptyInput(t *testing.T) {
	service := defaultService(t)

	for _, input := range []string{"", "   ", "\t\n", "?!...", "🏃🏃"} {
		suggestion := service.Suggest(input)

		assert.Equal(t, model.CategoryOther, suggestion.Category, "input %q", input)
		assert.True(t, suggestion.Fallback, "input %q", input)
		assert.Zero(t, suggestion.Confidence, "input %q", input)
		assert.Empty(t, suggestion.Signals, "input %q", input)
	}
}

func TestService_Suggest_Deterministic(t *testing.T) {
	service := defaultService(t)

	first := service.Suggest("30 minutes of reading")
	for i := 0; i < 10; i++ {
		again := service.Suggest("30 minutes of reading")
		assert.Equal(t, first, again)
	}
}

func TestService_Suggest_CaseInsensitive(t *testing.T) {
	service := defaultService(t)

	upper := service.Suggest("MEDITATE")
	lower := service.Suggest("meditate")

	assert.Equal(t, lower.Category, upper.Category)
	assert.Equal(t, lower.Confidence, upper.Confidence)
	assert.Equal(t, lower.Tokens, upper.Tokens)
	assert.Equal(t, lower.Scores, upper.Scores)
}

func TestService_Suggest_TypoTolerance(t *testing.T) {
	service := defaultService(t)

	t.Run("adjacent transposition still matches", func(t *testing.T) {
		suggestion := service.Suggest("Workuot")

		assert.Equal(t, model.CategoryFitness, suggestion.Category)
		assert.False(t, suggestion.Fallback)
		assert.Positive(t, suggestion.Confidence)
		require.NotEmpty(t, suggestion.Signals)
		assert.Equal(t, model.SourceFuzzy, suggestion.Signals[0].Source)
	})

	t.Run("too distant falls back", func(t *testing.T) {
		suggestion := service.Suggest("Wrkt")

		assert.Equal(t, model.CategoryOther, suggestion.Category)
		assert.True(t, suggestion.Fallback)
	})
}

func TestService_Suggest_SignalsCoexist(t *testing.T) {
	service := defaultService(t)

	suggestion := service.Suggest("Go to the gym")
	require.False(t, suggestion.Fallback)

	sources := make(map[model.SignalSource]int)
	for _, signal := range suggestion.Signals {
		assert.NoError(t, signal.Validate())
		sources[signal.Source]++
	}
	assert.Positive(t, sources[model.SourceKeyword], "single-word hit expected")
	assert.Positive(t, sources[model.SourcePhrase], "phrase hit expected alongside keyword")
}

func TestService_Suggest_ConfidenceClamped(t *testing.T) {
	service := defaultService(t)

	// Pile on enough evidence to exceed the max achievable score.
	suggestion := service.Suggest("workout exercise gym run swim yoga cardio fitness")

	assert.Equal(t, model.CategoryFitness, suggestion.Category)
	assert.Equal(t, 1.0, suggestion.Confidence)
	for _, score := range suggestion.Scores {
		assert.GreaterOrEqual(t, score, 0.0)
		assert.LessOrEqual(t, score, 1.0)
	}
}

func TestService_Suggest_TieBreak(t *testing.T) {
	// Synthetic registry: two categories carry identical weight for the same
	// token, so only the priority rank can decide.
	defs := []registry.Definition{
		{
			Category: model.CategoryFinance,
			Priority: 2,
			Keywords: []registry.Entry{{Term: "review", Weight: 0.5}},
		},
		{
			Category: model.CategoryWork,
			Priority: 1,
			Keywords: []registry.Entry{{Term: "review", Weight: 0.5}},
		},
		{
			Category: model.CategoryOther,
			Priority: 100,
		},
	}
	reg, err := registry.New(1, defs)
	require.NoError(t, err)

	service := New(reg)
	for i := 0; i < 20; i++ {
		suggestion := service.Suggest("review")
		assert.Equal(t, model.CategoryWork, suggestion.Category,
			"lower priority rank must win the tie on every run")
		assert.False(t, suggestion.Fallback)
	}
}

func TestService_Suggest_TieEpsilon(t *testing.T) {
	// Scores differ by less than epsilon: still a tie, rank decides.
	defs := []registry.Definition{
		{
			Category: model.CategorySocial,
			Priority: 2,
			Keywords: []registry.Entry{{Term: "meet", Weight: 0.505}},
		},
		{
			Category: model.CategoryWork,
			Priority: 1,
			Keywords: []registry.Entry{{Term: "meet", Weight: 0.5}},
		},
		{
			Category: model.CategoryOther,
			Priority: 100,
		},
	}
	reg, err := registry.New(1, defs)
	require.NoError(t, err)

	suggestion := New(reg).Suggest("meet")
	assert.Equal(t, model.CategoryWork, suggestion.Category)
}

func TestService_Suggest_FallbackThreshold(t *testing.T) {
	reg, err := registry.LoadDefault()
	require.NoError(t, err)

	// With an impossible threshold everything falls back.
	config := DefaultConfig()
	config.FallbackThreshold = 1.1
	strict := NewWithConfig(reg, config)

	suggestion := strict.Suggest("Go to gym")
	assert.Equal(t, model.CategoryOther, suggestion.Category)
	assert.True(t, suggestion.Fallback)
	assert.Zero(t, suggestion.Confidence)
	assert.NotEmpty(t, suggestion.Signals, "signals are kept for debugging on fallback")
}

func TestService_Suggest_Concurrent(t *testing.T) {
	service := defaultService(t)
	want := service.Suggest("morning run")

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				got := service.Suggest("morning run")
				assert.Equal(t, want.Category, got.Category)
				assert.Equal(t, want.Confidence, got.Confidence)
			}
		}()
	}
	wg.Wait()
}

func TestService_Rank(t *testing.T) {
	service := defaultService(t)

	t.Run("ordered by confidence", func(t *testing.T) {
		suggestion := service.Suggest("read a book and go for a run")
		rankings := service.Rank(suggestion)

		require.NotEmpty(t, rankings)
		assert.NoError(t, rankings.Validate())
		for i := 1; i < len(rankings); i++ {
			assert.GreaterOrEqual(t, rankings[i-1].Confidence, rankings[i].Confidence)
		}
	})

	t.Run("zero-score categories excluded", func(t *testing.T) {
		suggestion := service.Suggest("meditate")
		rankings := service.Rank(suggestion)

		for _, ranking := range rankings {
			assert.Positive(t, ranking.Confidence)
		}
	})

	t.Run("empty input ranks nothing", func(t *testing.T) {
		assert.Empty(t, service.Rank(service.Suggest("")))
	})
}

func TestDefaultConfig(t *testing.T) {
	config := DefaultConfig()

	assert.Equal(t, 2.0, config.MaxScore)
	assert.Equal(t, 0.15, config.FallbackThreshold)
	assert.Equal(t, 0.8, config.FuzzyThreshold)
	assert.Equal(t, 0.01, config.TieEpsilon)
}
