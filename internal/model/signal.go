package model

import "fmt"

// SignalSource identifies which matcher produced a signal.
type SignalSource string

// Signal source constants.
const (
	SourceKeyword SignalSource = "keyword"
	SourcePhrase  SignalSource = "phrase"
	SourcePattern SignalSource = "pattern"
	SourceFuzzy   SignalSource = "fuzzy"
)

// MatchSignal is a single piece of evidence supporting one category. Signals
// are ephemeral: they are produced per suggestion call and never persisted.
type MatchSignal struct {
	Category Category
	Source   SignalSource
	Match    string
	Weight   float64
}

// Validate ensures the signal carries usable data.
func (s MatchSignal) Validate() error {
	if !s.Category.Valid() {
		return fmt.Errorf("unknown category %q", s.Category)
	}
	if s.Weight < 0 {
		return fmt.Errorf("signal weight must be non-negative, got %.3f", s.Weight)
	}
	switch s.Source {
	case SourceKeyword, SourcePhrase, SourcePattern, SourceFuzzy:
	default:
		return fmt.Errorf("unknown signal source %q", s.Source)
	}
	return nil
}
