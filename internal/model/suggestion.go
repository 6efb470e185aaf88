package model

// Suggestion is the result of categorizing a single habit name.
type Suggestion struct {
	Input    string
	Tokens   []string
	Scores   map[Category]float64
	Category Category
	// Confidence is clamped to [0, 1]. Zero when Fallback is set.
	Confidence float64
	Signals    []MatchSignal
	// Fallback is true when no category cleared the confidence threshold
	// and CategoryOther was returned in place of the raw winner.
	Fallback bool
}

// TopSignals returns the n highest-weighted signals, preserving the original
// order among equal weights so repeated calls are stable.
func (s Suggestion) TopSignals(n int) []MatchSignal {
	if n <= 0 || len(s.Signals) == 0 {
		return nil
	}
	sorted := make([]MatchSignal, len(s.Signals))
	copy(sorted, s.Signals)
	// Insertion sort keeps the ordering stable for equal weights.
	for i := 1; i < len(sorted); i++ {
		for j := i; j > 0 && sorted[j].Weight > sorted[j-1].Weight; j-- {
			sorted[j], sorted[j-1] = sorted[j-1], sorted[j]
		}
	}
	if n > len(sorted) {
		n = len(sorted)
	}
	return sorted[:n]
}
