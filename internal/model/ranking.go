package model

import (
	"fmt"
	"sort"
)

// CategoryRanking represents how strongly one category is supported for a
// habit name.
type CategoryRanking struct {
	Category   Category
	Confidence float64
	// Rank is the registry-defined priority rank, used only to break ties.
	Rank int
}

// Validate ensures the ranking has valid data.
func (r *CategoryRanking) Validate() error {
	if !r.Category.Valid() {
		return fmt.Errorf("unknown category %q", r.Category)
	}
	if r.Confidence < 0.0 || r.Confidence > 1.0 {
		return fmt.Errorf("confidence must be between 0.0 and 1.0, got %.2f", r.Confidence)
	}
	return nil
}

// CategoryRankings is a slice of CategoryRanking that supports sorting and
// utility methods.
type CategoryRankings []CategoryRanking

// Sort orders the rankings by confidence descending; equal confidences are
// ordered by priority rank ascending so the order is reproducible.
func (r CategoryRankings) Sort() {
	sort.SliceStable(r, func(i, j int) bool {
		if r[i].Confidence != r[j].Confidence {
			return r[i].Confidence > r[j].Confidence
		}
		return r[i].Rank < r[j].Rank
	})
}

// Top returns the highest-confidence ranking, or nil if empty.
func (r CategoryRankings) Top() *CategoryRanking {
	if len(r) == 0 {
		return nil
	}
	r.Sort()
	return &r[0]
}

// TopN returns the N highest-confidence rankings.
func (r CategoryRankings) TopN(n int) CategoryRankings {
	if n <= 0 {
		return CategoryRankings{}
	}

	r.Sort()

	if n > len(r) {
		n = len(r)
	}

	result := make(CategoryRankings, n)
	copy(result, r[:n])
	return result
}

// AboveThreshold returns all rankings with confidence at or above threshold.
func (r CategoryRankings) AboveThreshold(threshold float64) CategoryRankings {
	r.Sort()

	var result CategoryRankings
	for _, ranking := range r {
		if ranking.Confidence >= threshold {
			result = append(result, ranking)
		}
	}
	return result
}

// Validate ensures all rankings in the slice are valid and unique.
func (r CategoryRankings) Validate() error {
	seen := make(map[Category]bool)

	for i, ranking := range r {
		if err := ranking.Validate(); err != nil {
			return fmt.Errorf("invalid ranking at index %d: %w", i, err)
		}

		if seen[ranking.Category] {
			return fmt.Errorf("duplicate category %q in rankings", ranking.Category)
		}
		seen[ranking.Category] = true
	}

	return nil
}
