package graph

import "github.com/PhilippChr/CLOCQ/pkg/clocq/kbindex"

// Divergence flags a candidate pair whose connectivity and coherence
// scores disagree sharply — strongly connected in the KB graph but
// semantically dissimilar, or vice versa. This is an opt-in transparency
// signal, not a required pipeline output (spec.md only requires the
// graphs themselves); it is adapted from the teacher's signals.Collision,
// which flags token pairs that are each individually strong (high PMIMax)
// but rarely co-occur — the same "individually strong, jointly
// surprising" shape, re-grounded on connectivity vs. coherence instead of
// PMI.
type Divergence struct {
	A, B         kbindex.Code
	Connectivity float64
	Coherence    float64
	Gap          float64
}

// DivergenceConfig controls the detection thresholds.
type DivergenceConfig struct {
	// MinGap is the minimum |connectivity - coherence| to report a pair.
	MinGap float64
}

// DefaultDivergenceConfig returns a conservative default gap threshold.
func DefaultDivergenceConfig() DivergenceConfig {
	return DivergenceConfig{MinGap: 0.5}
}

// FindDivergences scans every unordered pair among items, scoring a pair
// that a graph has no edge for as 0 in that graph, and reports those whose
// scores differ by at least cfg.MinGap.
func FindDivergences(connectivity, coherence *Graph, items []kbindex.Code, cfg DivergenceConfig) []Divergence {
	var out []Divergence
	for i := 0; i < len(items); i++ {
		for j := i + 1; j < len(items); j++ {
			a, b := items[i], items[j]
			connScore := edgeWeight(connectivity, a, b)
			cohScore := edgeWeight(coherence, a, b)
			gap := connScore - cohScore
			if gap < 0 {
				gap = -gap
			}
			if gap >= cfg.MinGap {
				out = append(out, Divergence{A: a, B: b, Connectivity: connScore, Coherence: cohScore, Gap: gap})
			}
		}
	}
	return out
}

func edgeWeight(g *Graph, a, b kbindex.Code) float64 {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.edges[newEdgeKey(a, b)]
}
