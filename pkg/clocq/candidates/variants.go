package candidates

import "strings"

// VariantExpander widens a search term with known synonym/variant forms
// before it reaches the lexical backend (e.g. "USA" ↔ "United States"),
// improving recall without changing the Candidate List's scan/offset/
// matching-score contract. Adapted from the teacher's lexicon.Lexicon,
// trimmed to its bidirectional synonym/variant map — the PMI-scored
// CToken co-occurrence machinery has no role here (see DESIGN.md): CLOCQ
// candidates are ranked by the lexical backend and the Index, not by
// corpus PMI.
type VariantExpander struct {
	// canonical -> every known variant (including the canonical form)
	synonyms map[string][]string
	// variant -> canonical
	reverseIndex map[string]string
}

// NewVariantExpander builds an expander from canonical -> variants groups.
func NewVariantExpander(groups map[string][]string) *VariantExpander {
	e := &VariantExpander{
		synonyms:     make(map[string][]string, len(groups)),
		reverseIndex: make(map[string]string),
	}
	for canonical, variants := range groups {
		canonical = strings.ToLower(canonical)
		all := make([]string, 0, len(variants)+1)
		all = append(all, canonical)
		e.reverseIndex[canonical] = canonical
		for _, v := range variants {
			v = strings.ToLower(v)
			if v == canonical {
				continue
			}
			all = append(all, v)
			e.reverseIndex[v] = canonical
		}
		e.synonyms[canonical] = all
	}
	return e
}

// Expand returns term together with every known variant/canonical form,
// term itself always first. An unrecognised term expands to itself alone.
func (e *VariantExpander) Expand(term string) []string {
	lower := strings.ToLower(term)
	if e == nil {
		return []string{term}
	}
	canonical, ok := e.reverseIndex[lower]
	if !ok {
		return []string{term}
	}
	variants := e.synonyms[canonical]
	out := make([]string, 0, len(variants)+1)
	out = append(out, term)
	for _, v := range variants {
		if v != lower {
			out = append(out, v)
		}
	}
	return out
}
