package graph

import (
	"testing"

	"github.com/PhilippChr/CLOCQ/pkg/clocq/kbindex"
)

func TestAddEdgeIgnoresZeroWeight(t *testing.T) {
	g := New()
	g.AddEdge(1, 2, 0)
	if w := edgeWeight(g, 1, 2); w != 0 {
		t.Errorf("edge weight = %v, want 0 (zero-weight edges are not stored)", w)
	}
}

func TestAddEdgeOverwrites(t *testing.T) {
	g := New()
	g.AddEdge(1, 2, 0.5)
	g.AddEdge(2, 1, 1.0) // reversed endpoints, same undirected edge
	if w := edgeWeight(g, 1, 2); w != 1.0 {
		t.Errorf("edge weight after overwrite = %v, want 1.0", w)
	}
}

func TestScoreWalksDescendingEdgesOncePerWordIndex(t *testing.T) {
	g := New()
	// x (item 1, word 0) connects to item 2 (word 1, weight 0.5) and
	// item 3 (word 1, weight 1.0) and item 4 (word 2, weight 0.3).
	g.AddNode(1, 0)
	g.AddNode(2, 1)
	g.AddNode(3, 1)
	g.AddNode(4, 2)
	g.AddEdge(1, 2, 0.5)
	g.AddEdge(1, 3, 1.0)
	g.AddEdge(1, 4, 0.3)

	score, best := g.Score(1, 0, 3)
	// word 1's best contribution should be 1.0 (from item 3, visited
	// first due to descending sort), not 0.5.
	if best[1] != 1.0 {
		t.Errorf("best[1] = %v, want 1.0 (highest-weight edge wins)", best[1])
	}
	if best[2] != 0.3 {
		t.Errorf("best[2] = %v, want 0.3", best[2])
	}
	wantScore := (1.0 + 0.3) / 2.0 // sum(best) / max(1, m-1)
	if score != wantScore {
		t.Errorf("Score = %v, want %v", score, wantScore)
	}
}

func TestScoreCreditsXsOwnWordMembership(t *testing.T) {
	g := New()
	// x (item 1) is itself a candidate for word 0 AND word 1 (it was a
	// shared candidate across two question words). It connects to item 2
	// (word 2, weight 0.6). Word 1's best contribution must come from x's
	// own membership in word 1, not from item 2's node set.
	g.AddNode(1, 0)
	g.AddNode(1, 1)
	g.AddNode(2, 2)
	g.AddEdge(1, 2, 0.6)

	_, best := g.Score(1, 0, 3)
	if best[1] != 0.6 {
		t.Errorf("best[1] = %v, want 0.6 (credited via x's own word-index membership)", best[1])
	}
	if best[2] != 0.6 {
		t.Errorf("best[2] = %v, want 0.6 (credited via the neighbor's word-index membership)", best[2])
	}
}

func TestScoreNoEdgesIsZero(t *testing.T) {
	g := New()
	g.AddNode(1, 0)
	score, best := g.Score(1, 0, 2)
	if score != 0 {
		t.Errorf("Score = %v, want 0", score)
	}
	for _, b := range best {
		if b != 0 {
			t.Errorf("best = %v, want all zero", best)
		}
	}
}

func TestFindDivergencesFlagsLargeGaps(t *testing.T) {
	conn := New()
	coh := New()
	conn.AddEdge(1, 2, 1.0)
	coh.AddEdge(1, 2, 0.0)

	divs := FindDivergences(conn, coh, []kbindex.Code{1, 2}, DefaultDivergenceConfig())
	if len(divs) != 1 {
		t.Fatalf("FindDivergences() = %v, want 1 divergence", divs)
	}
	if divs[0].Gap != 1.0 {
		t.Errorf("Gap = %v, want 1.0", divs[0].Gap)
	}
}
