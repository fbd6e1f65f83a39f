// Package config loads and merges the Pipeline Coordinator's parameters
// (spec.md §4.7, §9): a caller-provided options map is always merged
// over a fixed set of defaults, never substituted for them -- resolving
// the spec's first Open Question ("the source has two divergent
// parameter-merge code paths, one of which assigns the options dict
// instead of merging; a correct implementation must merge over
// defaults").
package config

import (
	"strings"

	"github.com/PhilippChr/CLOCQ/pkg/clocq/topk"
)

// Options carries every parameter the Pipeline Coordinator recognises
// (spec.md §4.7's closing list). Keys outside this set, however they
// arrive (a YAML file, a caller's options map), are ignored rather than
// rejected (spec.md §7, parameter-error class 4).
type Options struct {
	HMatch    float64 `yaml:"h_match"`
	HRel      float64 `yaml:"h_rel"`
	HConn     float64 `yaml:"h_conn"`
	HCoh      float64 `yaml:"h_coh"`
	D         int     `yaml:"d"`
	K         topk.K  `yaml:"-"`
	PSetting  int     `yaml:"p_setting"`
	BM25Limit bool    `yaml:"bm25_limit"`
	Parallel  bool    `yaml:"parallel"`
}

// Weights projects the four score weights into a topk.Weights value.
func (o Options) Weights() topk.Weights {
	return topk.Weights{Match: o.HMatch, Relevance: o.HRel, Connectivity: o.HConn, Coherence: o.HCoh}
}

// Default returns CLOCQ's standard parameter set, exactly the original's
// DEF_PARAMS (config.py): h_match=0.4, h_rel=0.3, h_conn=0.2, h_coh=0.1,
// d=20, k=AUTO, p_setting=1000, bm25_limit=false.
func Default() Options {
	return Options{
		HMatch:    0.4,
		HRel:      0.3,
		HConn:     0.2,
		HCoh:      0.1,
		D:         20,
		K:         topk.K{Auto: true},
		PSetting:  1000,
		BM25Limit: false,
	}
}

// RawOptions is the caller-supplied, loosely-typed options map (spec.md
// §4.7: "parameters recognised in the caller-provided options map;
// others must be ignored"). K accepts either a number (cast to int) or
// the string "AUTO"; unrecognised or mistyped values fall back silently
// to their default rather than erroring, per spec.md §7 class 4.
type RawOptions map[string]any

// Merge overlays every recognised key of raw whose value has a usable
// type onto a copy of defaults, zero values included, returning the
// merged Options; d must be at least 1 and p_setting positive to be
// taken. Unknown keys are ignored. This is the
// only supported way to build an Options from caller input -- never
// construct one by discarding defaults (the bug the spec calls out).
func Merge(defaults Options, raw RawOptions) Options {
	out := defaults
	if v, ok := floatOf(raw["h_match"]); ok {
		out.HMatch = v
	}
	if v, ok := floatOf(raw["h_rel"]); ok {
		out.HRel = v
	}
	if v, ok := floatOf(raw["h_conn"]); ok {
		out.HConn = v
	}
	if v, ok := floatOf(raw["h_coh"]); ok {
		out.HCoh = v
	}
	if v, ok := intOf(raw["d"]); ok && v >= 1 {
		out.D = v
	}
	if v, ok := raw["k"]; ok {
		if k, ok := parseK(v); ok {
			out.K = k
		}
	}
	if v, ok := intOf(raw["p_setting"]); ok && v > 0 {
		out.PSetting = v
	}
	if v, ok := raw["bm25_limit"].(bool); ok {
		out.BM25Limit = v
	}
	if v, ok := raw["parallel"].(bool); ok {
		out.Parallel = v
	}
	return out
}

// parseK implements the spec's K rule: "if user-supplied, cast to
// integer; else AUTO" (§4.6).
func parseK(v any) (topk.K, bool) {
	if s, ok := v.(string); ok {
		if strings.EqualFold(s, "AUTO") {
			return topk.K{Auto: true}, true
		}
		return topk.K{}, false
	}
	if n, ok := intOf(v); ok {
		return topk.K{Fixed: n}, true
	}
	return topk.K{}, false
}

func floatOf(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	default:
		return 0, false
	}
}

func intOf(v any) (int, bool) {
	switch n := v.(type) {
	case int:
		return n, true
	case int64:
		return int(n), true
	case float64:
		return int(n), true
	default:
		return 0, false
	}
}
