package registry

import (
	_ "embed"
	"fmt"
	"io"
	"strings"

	"gopkg.in/yaml.v3"

	"habitsense/internal/common"
	"habitsense/internal/model"
)

//go:embed default_registry.yaml
var defaultAsset string

// entryNode accepts either a bare term string or a {term, weight} mapping,
// so the asset stays readable for the common case of default-weight entries.
// Weight is a pointer so an omitted key (use the default) is distinguishable
// from an explicit zero (rejected at load).
type entryNode struct {
	Term   string   `yaml:"term"`
	Weight *float64 `yaml:"weight"`
}

func (e *entryNode) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind == yaml.ScalarNode {
		return value.Decode(&e.Term)
	}
	type plain entryNode
	var p plain
	if err := value.Decode(&p); err != nil {
		return err
	}
	*e = entryNode(p)
	return nil
}

type patternNode struct {
	Pattern string   `yaml:"pattern"`
	Weight  *float64 `yaml:"weight"`
}

func (p *patternNode) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind == yaml.ScalarNode {
		return value.Decode(&p.Pattern)
	}
	type plain patternNode
	var n plain
	if err := value.Decode(&n); err != nil {
		return err
	}
	*p = patternNode(n)
	return nil
}

type definitionNode struct {
	ID       string        `yaml:"id"`
	Keywords []entryNode   `yaml:"keywords"`
	Phrases  []entryNode   `yaml:"phrases"`
	Patterns []patternNode `yaml:"patterns"`
	Priority int           `yaml:"priority"`
}

type registryFile struct {
	Categories []definitionNode `yaml:"categories"`
	Version    int              `yaml:"version"`
}

// Load reads a registry asset from r, validates it, and returns the
// immutable Registry. Errors are fatal by design: a silently biased rule set
// would corrupt every subsequent suggestion.
func Load(r io.Reader) (*Registry, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read registry asset: %w", err)
	}

	var file registryFile
	if err := yaml.Unmarshal(raw, &file); err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrInvalidRegistry, err)
	}

	defs := make([]Definition, 0, len(file.Categories))
	for _, node := range file.Categories {
		category, ok := model.ParseCategory(node.ID)
		if !ok {
			return nil, fmt.Errorf("%w: unknown category id %q", common.ErrInvalidRegistry, node.ID)
		}

		def := Definition{Category: category, Priority: node.Priority}
		for _, kw := range node.Keywords {
			weight, err := assetWeight(kw.Weight, "keyword", kw.Term, node.ID)
			if err != nil {
				return nil, err
			}
			def.Keywords = append(def.Keywords, Entry{Term: kw.Term, Weight: weight})
		}
		for _, ph := range node.Phrases {
			weight, err := assetWeight(ph.Weight, "phrase", ph.Term, node.ID)
			if err != nil {
				return nil, err
			}
			def.Phrases = append(def.Phrases, Entry{Term: ph.Term, Weight: weight})
		}
		for _, pat := range node.Patterns {
			weight, err := assetWeight(pat.Weight, "pattern", pat.Pattern, node.ID)
			if err != nil {
				return nil, err
			}
			def.Patterns = append(def.Patterns, PatternEntry{Expr: pat.Pattern, Weight: weight})
		}
		defs = append(defs, def)
	}

	return New(file.Version, defs)
}

// assetWeight resolves an asset entry's weight: an omitted key selects the
// per-source default, while an explicit zero is rejected rather than
// silently substituted.
func assetWeight(w *float64, kind, term, id string) (float64, error) {
	if w == nil {
		return 0, nil
	}
	if *w == 0 {
		return 0, fmt.Errorf("%w: %s %q for %q has an explicit zero weight; omit the key to use the default",
			common.ErrInvalidRegistry, kind, term, id)
	}
	return *w, nil
}

// LoadDefault builds the Registry from the embedded default asset. The asset
// ships with the binary, so a failure here is a build defect and surfaces at
// startup.
func LoadDefault() (*Registry, error) {
	return Load(strings.NewReader(defaultAsset))
}
