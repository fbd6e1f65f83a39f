package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// yamlOptions mirrors Options' YAML-facing fields (k is handled
// separately since it may be an int or the literal string "AUTO", which
// yaml.v3 will happily decode into a plain `any`).
type yamlOptions struct {
	HMatch    *float64 `yaml:"h_match"`
	HRel      *float64 `yaml:"h_rel"`
	HConn     *float64 `yaml:"h_conn"`
	HCoh      *float64 `yaml:"h_coh"`
	D         *int     `yaml:"d"`
	K         any      `yaml:"k"`
	PSetting  *int     `yaml:"p_setting"`
	BM25Limit *bool    `yaml:"bm25_limit"`
	Parallel  *bool    `yaml:"parallel"`
}

// LoadOptions reads a YAML parameter file and merges it over Default(),
// per spec.md §9's resolved Open Question: a file that omits a key leaves
// that parameter at its default rather than zeroing it out, as does a k
// that is neither a number nor "AUTO". Any other key whose value does not
// decode into its field's type makes LoadOptions return a parse error.
func LoadOptions(path string) (Options, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Options{}, fmt.Errorf("config: read %s: %w", path, err)
	}

	var y yamlOptions
	if err := yaml.Unmarshal(data, &y); err != nil {
		return Options{}, fmt.Errorf("config: parse %s: %w", path, err)
	}

	raw := RawOptions{}
	if y.HMatch != nil {
		raw["h_match"] = *y.HMatch
	}
	if y.HRel != nil {
		raw["h_rel"] = *y.HRel
	}
	if y.HConn != nil {
		raw["h_conn"] = *y.HConn
	}
	if y.HCoh != nil {
		raw["h_coh"] = *y.HCoh
	}
	if y.D != nil {
		raw["d"] = *y.D
	}
	if y.K != nil {
		raw["k"] = y.K
	}
	if y.PSetting != nil {
		raw["p_setting"] = *y.PSetting
	}
	if y.BM25Limit != nil {
		raw["bm25_limit"] = *y.BM25Limit
	}
	if y.Parallel != nil {
		raw["parallel"] = *y.Parallel
	}

	return Merge(Default(), raw), nil
}

// VariantGroups is a synonym-group file for candidates.VariantExpander,
// e.g. `united states: [usa, us, america]`.
type VariantGroups map[string][]string

// LoadVariantGroups reads a YAML mapping of canonical term to its
// variant list.
func LoadVariantGroups(path string) (VariantGroups, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: read %s: %w", path, err)
	}
	var groups VariantGroups
	if err := yaml.Unmarshal(data, &groups); err != nil {
		return nil, fmt.Errorf("config: parse %s: %w", path, err)
	}
	return groups, nil
}

// stopwordFile is the on-disk shape for a supplementary stopword list,
// adapted from the teacher's config.Stoplist (`terms: [...]`).
type stopwordFile struct {
	Terms []string `yaml:"terms"`
}

// LoadStopwords reads a supplementary stopword list in the teacher's
// `terms: [...]` YAML shape.
func LoadStopwords(path string) ([]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: read %s: %w", path, err)
	}
	var sl stopwordFile
	if err := yaml.Unmarshal(data, &sl); err != nil {
		return nil, fmt.Errorf("config: parse %s: %w", path, err)
	}
	return sl.Terms, nil
}

// Loader bundles the optional on-disk configuration paths that tune a
// pipeline.Coordinator beyond its built-in defaults. Any empty path is
// skipped, matching the teacher's Loader.Load "load what's given, default
// the rest" shape.
type Loader struct {
	OptionsPath       string
	VariantGroupsPath string
	StopwordsPath     string
}

// Components holds everything Load assembled, ready to hand to a
// pipeline.Coordinator and its collaborators.
type Components struct {
	Options       Options
	VariantGroups VariantGroups
	Stopwords     []string
}

// Load reads every configured path, falling back to defaults for any
// that is empty; a path that cannot be read or parsed makes Load return
// an error -- adapted from the teacher's config.Loader.Load
// (stoplist/dict/taxonomy, each optional, each defaulted independently).
func (l *Loader) Load() (*Components, error) {
	comp := &Components{Options: Default()}

	if l.OptionsPath != "" {
		opts, err := LoadOptions(l.OptionsPath)
		if err != nil {
			return nil, fmt.Errorf("config: load options: %w", err)
		}
		comp.Options = opts
	}

	if l.VariantGroupsPath != "" {
		groups, err := LoadVariantGroups(l.VariantGroupsPath)
		if err != nil {
			return nil, fmt.Errorf("config: load variant groups: %w", err)
		}
		comp.VariantGroups = groups
	}

	if l.StopwordsPath != "" {
		words, err := LoadStopwords(l.StopwordsPath)
		if err != nil {
			return nil, fmt.Errorf("config: load stopwords: %w", err)
		}
		comp.Stopwords = words
	}

	return comp, nil
}
