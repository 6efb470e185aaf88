// Package match implements the three signal sources the engine fuses:
// exact keyword/phrase lookup, ordered pattern rules, and fuzzy similarity.
// Matchers are stateless over an immutable registry, so a single instance is
// safe for concurrent use.
package match

import (
	"habitsense/internal/model"
	"habitsense/internal/normalize"
	"habitsense/internal/registry"
)

// KeywordMatcher produces signals from exact token and phrase lookups.
type KeywordMatcher struct {
	registry *registry.Registry
}

// NewKeywordMatcher creates a keyword matcher over the given registry.
func NewKeywordMatcher(r *registry.Registry) *KeywordMatcher {
	return &KeywordMatcher{registry: r}
}

// Match emits one signal per index hit: every token is looked up exactly,
// then a 2-3 token window slides over the sequence for phrase hits. Phrase
// and single-word signals may coexist for the same tokens; the phrase weight
// carries the specificity bonus.
func (m *KeywordMatcher) Match(tokens []string) []model.MatchSignal {
	var signals []model.MatchSignal

	for _, token := range tokens {
		for _, hit := range m.registry.TokenMatches(token) {
			signals = append(signals, model.MatchSignal{
				Category: hit.Category,
				Source:   model.SourceKeyword,
				Match:    token,
				Weight:   hit.Weight,
			})
		}
	}

	for width := 2; width <= 3; width++ {
		for i := 0; i+width <= len(tokens); i++ {
			phrase := normalize.Join(tokens[i : i+width])
			for _, hit := range m.registry.PhraseMatches(phrase) {
				signals = append(signals, model.MatchSignal{
					Category: hit.Category,
					Source:   model.SourcePhrase,
					Match:    phrase,
					Weight:   hit.Weight,
				})
			}
		}
	}

	return signals
}

// Matched reports which tokens produced at least one exact keyword hit. The
// fuzzy matcher skips these.
func (m *KeywordMatcher) Matched(tokens []string) map[string]bool {
	matched := make(map[string]bool, len(tokens))
	for _, token := range tokens {
		if len(m.registry.TokenMatches(token)) > 0 {
			matched[token] = true
		}
	}
	return matched
}
