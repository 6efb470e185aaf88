package match

import (
	"habitsense/internal/model"
	"habitsense/internal/registry"
)

// minFuzzyTokenLen excludes short tokens from fuzzy matching; at 1-2 runes a
// single edit rewrites most of the token, so similarity is meaningless.
const minFuzzyTokenLen = 3

// FuzzyMatcher produces typo-tolerant signals by scanning the registry
// dictionary with a normalized edit-distance similarity.
type FuzzyMatcher struct {
	registry  *registry.Registry
	threshold float64
}

// NewFuzzyMatcher creates a fuzzy matcher that accepts matches at or above
// the given similarity threshold.
func NewFuzzyMatcher(r *registry.Registry, threshold float64) *FuzzyMatcher {
	return &FuzzyMatcher{registry: r, threshold: threshold}
}

// Match scans tokens that produced no exact keyword hit and are at least
// three runes long. Each such token keeps its single best dictionary keyword
// when similarity clears the threshold; the emitted weight is the keyword
// weight scaled by similarity, so near-misses contribute proportionally less
// than exact matches.
func (m *FuzzyMatcher) Match(tokens []string, exact map[string]bool) []model.MatchSignal {
	var signals []model.MatchSignal

	dict := m.registry.Dictionary()
	for _, token := range tokens {
		if exact[token] {
			continue
		}
		runes := []rune(token)
		if len(runes) < minFuzzyTokenLen {
			continue
		}

		var best *registry.DictEntry
		bestSim := 0.0
		for i := range dict {
			sim := similarity(runes, []rune(dict[i].Token))
			if sim < m.threshold || sim <= bestSim {
				continue
			}
			bestSim = sim
			best = &dict[i]
		}
		if best == nil {
			continue
		}

		signals = append(signals, model.MatchSignal{
			Category: best.Category,
			Source:   model.SourceFuzzy,
			Match:    best.Token,
			Weight:   best.Weight * bestSim,
		})
	}

	return signals
}

// similarity is 1 - dist/max(len(a), len(b)), where dist is the optimal
// string alignment distance. Transposing two adjacent runes counts as one
// edit, so common typos like "workuot" stay close to their keyword.
func similarity(a, b []rune) float64 {
	longest := len(a)
	if len(b) > longest {
		longest = len(b)
	}
	if longest == 0 {
		return 0
	}
	return 1.0 - float64(osaDistance(a, b))/float64(longest)
}

// osaDistance computes the optimal string alignment variant of the
// Damerau-Levenshtein distance: insertions, deletions, substitutions, and
// adjacent transpositions each cost one edit.
func osaDistance(a, b []rune) int {
	if len(a) == 0 {
		return len(b)
	}
	if len(b) == 0 {
		return len(a)
	}

	rows := len(a) + 1
	cols := len(b) + 1
	d := make([]int, rows*cols)
	at := func(i, j int) int { return i*cols + j }

	for i := 0; i < rows; i++ {
		d[at(i, 0)] = i
	}
	for j := 0; j < cols; j++ {
		d[at(0, j)] = j
	}

	for i := 1; i < rows; i++ {
		for j := 1; j < cols; j++ {
			cost := 1
			if a[i-1] == b[j-1] {
				cost = 0
			}

			best := d[at(i-1, j)] + 1 // deletion
			if ins := d[at(i, j-1)] + 1; ins < best {
				best = ins
			}
			if sub := d[at(i-1, j-1)] + cost; sub < best {
				best = sub
			}
			if i > 1 && j > 1 && a[i-1] == b[j-2] && a[i-2] == b[j-1] {
				if swap := d[at(i-2, j-2)] + 1; swap < best {
					best = swap
				}
			}
			d[at(i, j)] = best
		}
	}

	return d[at(len(a), len(b))]
}
