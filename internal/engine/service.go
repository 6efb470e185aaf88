// Package engine fuses keyword, phrase, pattern, and fuzzy signals into a
// single ranked category suggestion.
package engine

import (
	"habitsense/internal/match"
	"habitsense/internal/model"
	"habitsense/internal/normalize"
	"habitsense/internal/registry"
)

// Config holds the tunable scoring constants.
type Config struct {
	// MaxScore is the maximum achievable aggregate score; confidences are
	// normalized against it and clamped to [0, 1].
	MaxScore float64
	// FallbackThreshold is the minimum winning confidence; below it the
	// suggestion falls back to Other.
	FallbackThreshold float64
	// FuzzyThreshold is the minimum similarity for a fuzzy match.
	FuzzyThreshold float64
	// TieEpsilon bounds the confidence gap within which categories are
	// considered tied and the priority rank decides.
	TieEpsilon float64
}

// DefaultConfig returns the default scoring configuration.
func DefaultConfig() Config {
	return Config{
		MaxScore:          2.0,
		FallbackThreshold: 0.15,
		FuzzyThreshold:    0.8,
		TieEpsilon:        0.01,
	}
}

// Service suggests categories for habit names. It is a pure function of its
// immutable registry and config: no mutable state, no I/O, safe for
// concurrent callers without locking.
type Service struct {
	registry *registry.Registry
	keywords *match.KeywordMatcher
	patterns *match.PatternMatcher
	fuzzy    *match.FuzzyMatcher
	config   Config
}

// New creates a suggestion service with the default configuration.
func New(r *registry.Registry) *Service {
	return NewWithConfig(r, DefaultConfig())
}

// NewWithConfig creates a suggestion service with custom scoring constants.
func NewWithConfig(r *registry.Registry, config Config) *Service {
	return &Service{
		registry: r,
		keywords: match.NewKeywordMatcher(r),
		patterns: match.NewPatternMatcher(r),
		fuzzy:    match.NewFuzzyMatcher(r, config.FuzzyThreshold),
		config:   config,
	}
}

// Suggest categorizes a habit name. It never fails: empty, punctuation-only,
// or non-Latin input normalizes toward an empty token sequence and falls
// back to Other. Cost is proportional to input length, so callers may invoke
// it synchronously on every keystroke.
func (s *Service) Suggest(habitName string) model.Suggestion {
	tokens := normalize.Tokens(habitName)

	suggestion := model.Suggestion{
		Input:    habitName,
		Tokens:   tokens,
		Scores:   make(map[model.Category]float64, len(s.registry.Categories())),
		Category: model.CategoryOther,
		Fallback: true,
	}
	if len(tokens) == 0 {
		return suggestion
	}

	// Collect all signals; every source runs independently.
	signals := s.keywords.Match(tokens)
	signals = append(signals, s.patterns.Match(normalize.Join(tokens))...)
	signals = append(signals, s.fuzzy.Match(tokens, s.keywords.Matched(tokens))...)
	suggestion.Signals = signals

	winner, confidence := s.aggregate(signals, suggestion.Scores)

	if confidence < s.config.FallbackThreshold {
		// Scores and signals are kept for debugging, but the decision is
		// the fallback.
		return suggestion
	}

	suggestion.Category = winner
	suggestion.Confidence = confidence
	suggestion.Fallback = false
	return suggestion
}

// aggregate sums signal contributions per category, normalizes to a clamped
// confidence, and selects the winner. Categories whose confidence is within
// TieEpsilon of the maximum are tied; the lowest registry priority rank wins
// so the choice is reproducible across runs and platforms.
func (s *Service) aggregate(signals []model.MatchSignal, scores map[model.Category]float64) (model.Category, float64) {
	totals := make(map[model.Category]float64)
	for _, sig := range signals {
		totals[sig.Category] += sig.Weight
	}

	best := 0.0
	for _, category := range s.registry.Categories() {
		confidence := clamp01(totals[category] / s.config.MaxScore)
		scores[category] = confidence
		if confidence > best {
			best = confidence
		}
	}
	if best == 0 {
		return model.CategoryOther, 0
	}

	winner := model.CategoryOther
	winnerRank := 0
	found := false
	for _, category := range s.registry.Categories() {
		if scores[category] < best-s.config.TieEpsilon {
			continue
		}
		rank := s.registry.PriorityRank(category)
		if !found || rank < winnerRank {
			winner = category
			winnerRank = rank
			found = true
		}
	}
	return winner, scores[winner]
}

// Rank converts a suggestion's score map into an ordered ranking, highest
// confidence first, ties ordered by priority rank.
func (s *Service) Rank(suggestion model.Suggestion) model.CategoryRankings {
	rankings := make(model.CategoryRankings, 0, len(suggestion.Scores))
	for _, category := range s.registry.Categories() {
		confidence, ok := suggestion.Scores[category]
		if !ok || confidence == 0 {
			continue
		}
		rankings = append(rankings, model.CategoryRanking{
			Category:   category,
			Confidence: confidence,
			Rank:       s.registry.PriorityRank(category),
		})
	}
	rankings.Sort()
	return rankings
}

// Registry exposes the rule set the service was built over.
func (s *Service) Registry() *registry.Registry {
	return s.registry
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
