package match

import (
	"habitsense/internal/model"
	"habitsense/internal/registry"
)

// PatternMatcher evaluates the registry's ordered regex rules against the
// normalized string. Rules are precompiled at registry load.
type PatternMatcher struct {
	registry *registry.Registry
}

// NewPatternMatcher creates a pattern matcher over the given registry.
func NewPatternMatcher(r *registry.Registry) *PatternMatcher {
	return &PatternMatcher{registry: r}
}

// Match evaluates every rule in registry order. There is no short-circuit:
// multiple categories accumulate independent evidence, and the fixed order
// keeps signal ordering deterministic for debugging.
func (m *PatternMatcher) Match(normalized string) []model.MatchSignal {
	if normalized == "" {
		return nil
	}

	var signals []model.MatchSignal
	for _, rule := range m.registry.Patterns() {
		loc := rule.Regex.FindString(normalized)
		if loc == "" {
			continue
		}
		signals = append(signals, model.MatchSignal{
			Category: rule.Category,
			Source:   model.SourcePattern,
			Match:    loc,
			Weight:   rule.Weight,
		})
	}
	return signals
}
