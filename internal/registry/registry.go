// Package registry holds the immutable category rule set the engine matches
// against. A Registry is built once at process start from a versioned YAML
// asset, validated, and never mutated afterward, so concurrent readers need
// no synchronization.
package registry

import (
	"fmt"
	"regexp"

	"habitsense/internal/common"
	"habitsense/internal/model"
	"habitsense/internal/normalize"
)

// Default weights applied to entries that do not set one explicitly. The
// phrase weight carries the specificity bonus over the keyword base.
const (
	DefaultKeywordWeight = 0.5
	DefaultPhraseWeight  = DefaultKeywordWeight + 0.2
	DefaultPatternWeight = 0.35
)

// Entry is a weighted keyword or phrase belonging to one category. A zero
// Weight selects the per-source default; asset loading rejects explicit
// zeros before they get here.
type Entry struct {
	Term   string
	Weight float64
}

// PatternEntry is a weighted regex rule belonging to one category. The
// expression is evaluated against the normalized token string, so it should
// assume lowercase text with single-space separators.
type PatternEntry struct {
	Expr   string
	Weight float64
}

// Definition describes one category: its tie-break priority rank and the
// weighted keywords, phrases, and pattern rules that provide evidence for it.
type Definition struct {
	Category model.Category
	Priority int
	Keywords []Entry
	Phrases  []Entry
	Patterns []PatternEntry
}

// WeightedCategory is a category reference carrying the weight an index hit
// contributes.
type WeightedCategory struct {
	Category model.Category
	Weight   float64
}

// Pattern is a compiled rule ready for evaluation. Patterns keep their
// registry order so signal ordering stays deterministic.
type Pattern struct {
	Regex    *regexp.Regexp
	Category model.Category
	Expr     string
	Weight   float64
}

// DictEntry is one keyword in the flat dictionary the fuzzy matcher scans.
type DictEntry struct {
	Token    string
	Category model.Category
	Weight   float64
}

// Registry is the validated, immutable rule set.
type Registry struct {
	tokenIndex  map[string][]WeightedCategory
	phraseIndex map[string][]WeightedCategory
	priority    map[model.Category]int
	defs        []Definition
	patterns    []Pattern
	dictionary  []DictEntry
	version     int
}

// New builds and validates a Registry from an ordered list of definitions.
// Any validation failure is fatal: the engine refuses to classify against a
// partially consistent rule set.
func New(version int, defs []Definition) (*Registry, error) {
	if len(defs) == 0 {
		return nil, common.ErrEmptyRegistry
	}

	r := &Registry{
		version:     version,
		defs:        defs,
		tokenIndex:  make(map[string][]WeightedCategory),
		phraseIndex: make(map[string][]WeightedCategory),
		priority:    make(map[model.Category]int),
	}

	seenCategory := make(map[model.Category]bool)
	seenPriority := make(map[int]model.Category)

	for _, def := range defs {
		if !def.Category.Valid() {
			return nil, fmt.Errorf("%w: unknown category %q", common.ErrInvalidRegistry, def.Category)
		}
		if seenCategory[def.Category] {
			return nil, fmt.Errorf("%w: category %q defined twice", common.ErrDuplicateEntry, def.Category)
		}
		seenCategory[def.Category] = true

		if prev, ok := seenPriority[def.Priority]; ok {
			return nil, fmt.Errorf("%w: categories %q and %q share priority rank %d",
				common.ErrInvalidRegistry, prev, def.Category, def.Priority)
		}
		seenPriority[def.Priority] = def.Category
		r.priority[def.Category] = def.Priority

		if err := r.indexKeywords(def); err != nil {
			return nil, err
		}
		if err := r.indexPhrases(def); err != nil {
			return nil, err
		}
		if err := r.compilePatterns(def); err != nil {
			return nil, err
		}
	}

	if !seenCategory[model.CategoryOther] {
		return nil, common.ErrMissingFallback
	}

	return r, nil
}

func (r *Registry) indexKeywords(def Definition) error {
	for _, kw := range def.Keywords {
		token := normalize.Token(kw.Term)
		if token == "" {
			return fmt.Errorf("%w: keyword %q for %q does not normalize to a single token",
				common.ErrInvalidRegistry, kw.Term, def.Category)
		}
		weight := kw.Weight
		if weight == 0 {
			weight = DefaultKeywordWeight
		}
		if weight < 0 {
			return fmt.Errorf("%w: keyword %q for %q has negative weight",
				common.ErrInvalidRegistry, kw.Term, def.Category)
		}

		dup := false
		for _, existing := range r.tokenIndex[token] {
			if existing.Category != def.Category {
				continue
			}
			if existing.Weight != weight {
				return fmt.Errorf("%w: keyword %q maps to %q with weights %.2f and %.2f",
					common.ErrConflictingRules, token, def.Category, existing.Weight, weight)
			}
			dup = true
		}
		if dup {
			continue
		}

		r.tokenIndex[token] = append(r.tokenIndex[token], WeightedCategory{Category: def.Category, Weight: weight})
		r.dictionary = append(r.dictionary, DictEntry{Token: token, Category: def.Category, Weight: weight})
	}
	return nil
}

func (r *Registry) indexPhrases(def Definition) error {
	for _, ph := range def.Phrases {
		tokens := normalize.Tokens(ph.Term)
		if len(tokens) < 2 || len(tokens) > 3 {
			return fmt.Errorf("%w: phrase %q for %q must normalize to 2-3 tokens, got %d",
				common.ErrInvalidRegistry, ph.Term, def.Category, len(tokens))
		}
		weight := ph.Weight
		if weight == 0 {
			weight = DefaultPhraseWeight
		}
		if weight < 0 {
			return fmt.Errorf("%w: phrase %q for %q has negative weight",
				common.ErrInvalidRegistry, ph.Term, def.Category)
		}

		phrase := normalize.Join(tokens)
		dup := false
		for _, existing := range r.phraseIndex[phrase] {
			if existing.Category != def.Category {
				continue
			}
			if existing.Weight != weight {
				return fmt.Errorf("%w: phrase %q maps to %q with weights %.2f and %.2f",
					common.ErrConflictingRules, phrase, def.Category, existing.Weight, weight)
			}
			dup = true
		}
		if dup {
			continue
		}
		r.phraseIndex[phrase] = append(r.phraseIndex[phrase], WeightedCategory{Category: def.Category, Weight: weight})
	}
	return nil
}

func (r *Registry) compilePatterns(def Definition) error {
	for _, pat := range def.Patterns {
		re, err := regexp.Compile(pat.Expr)
		if err != nil {
			return fmt.Errorf("%w: pattern %q for %q: %v",
				common.ErrInvalidRegistry, pat.Expr, def.Category, err)
		}
		weight := pat.Weight
		if weight == 0 {
			weight = DefaultPatternWeight
		}
		if weight < 0 {
			return fmt.Errorf("%w: pattern %q for %q has negative weight",
				common.ErrInvalidRegistry, pat.Expr, def.Category)
		}
		r.patterns = append(r.patterns, Pattern{
			Regex:    re,
			Category: def.Category,
			Expr:     pat.Expr,
			Weight:   weight,
		})
	}
	return nil
}

// Version returns the asset version the registry was built from.
func (r *Registry) Version() int {
	return r.version
}

// Categories returns the category ids in registry order. Aggregation iterates
// this order so score maps are built deterministically.
func (r *Registry) Categories() []model.Category {
	out := make([]model.Category, len(r.defs))
	for i, def := range r.defs {
		out[i] = def.Category
	}
	return out
}

// Definitions returns the raw definitions in registry order.
func (r *Registry) Definitions() []Definition {
	return r.defs
}

// PriorityRank returns the tie-break rank for a category. Lower ranks win
// ties.
func (r *Registry) PriorityRank(c model.Category) int {
	return r.priority[c]
}

// TokenMatches returns the weighted categories an exact token maps to.
func (r *Registry) TokenMatches(token string) []WeightedCategory {
	return r.tokenIndex[token]
}

// PhraseMatches returns the weighted categories a normalized phrase maps to.
func (r *Registry) PhraseMatches(phrase string) []WeightedCategory {
	return r.phraseIndex[phrase]
}

// Patterns returns the compiled pattern rules in registry order.
func (r *Registry) Patterns() []Pattern {
	return r.patterns
}

// Dictionary returns every indexed keyword for fuzzy scanning.
func (r *Registry) Dictionary() []DictEntry {
	return r.dictionary
}
