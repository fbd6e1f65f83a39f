// Package graph implements the undirected, weighted Connectivity and
// Coherence graphs of spec.md §3, §4.5. Both share this one Graph type;
// the Coordinator decides the edge-weight source (Index.Connectivity for
// connectivity, Embedding.Cosine for coherence) when populating it.
package graph

import (
	"sort"
	"sync"

	"github.com/PhilippChr/CLOCQ/pkg/clocq/kbindex"
)

type edgeKey struct {
	a, b kbindex.Code
}

func newEdgeKey(a, b kbindex.Code) edgeKey {
	if a <= b {
		return edgeKey{a, b}
	}
	return edgeKey{b, a}
}

// Graph is a multi-writer undirected weighted graph over candidate items,
// with each node annotated by the set of question-word positions it was a
// candidate for (spec.md §3). A single mutex serialises writers per
// spec.md §5 — "a per-graph mutex is sufficient; finer-grained striping is
// acceptable".
type Graph struct {
	mu    sync.Mutex
	nodes map[kbindex.Code]map[int]struct{}
	edges map[edgeKey]float64
}

// New creates an empty Graph.
func New() *Graph {
	return &Graph{
		nodes: make(map[kbindex.Code]map[int]struct{}),
		edges: make(map[edgeKey]float64),
	}
}

// AddNode inserts item if new, and appends wordIndex to its word-index
// set (spec.md §4.5 "add_node").
func (g *Graph) AddNode(item kbindex.Code, wordIndex int) {
	g.mu.Lock()
	defer g.mu.Unlock()
	set, ok := g.nodes[item]
	if !ok {
		set = make(map[int]struct{})
		g.nodes[item] = set
	}
	set[wordIndex] = struct{}{}
}

// AddEdge stores weight w between a and b, overwriting any prior weight.
// A zero weight is ignored rather than stored (spec.md §4.5 "add_edge":
// "if w == 0 ignore; else store weight w. Repeated adds overwrite").
func (g *Graph) AddEdge(a, b kbindex.Code, w float64) {
	if w == 0 {
		return
	}
	g.mu.Lock()
	defer g.mu.Unlock()
	g.edges[newEdgeKey(a, b)] = w
}

// WordIndexes returns the set of word positions item is a candidate for.
func (g *Graph) WordIndexes(item kbindex.Code) []int {
	g.mu.Lock()
	defer g.mu.Unlock()
	set := g.nodes[item]
	out := make([]int, 0, len(set))
	for idx := range set {
		out = append(out, idx)
	}
	return out
}

type outEdge struct {
	other  kbindex.Code
	weight float64
}

func (g *Graph) outgoingEdges(x kbindex.Code) []outEdge {
	var out []outEdge
	for key, w := range g.edges {
		switch {
		case key.a == x:
			out = append(out, outEdge{other: key.b, weight: w})
		case key.b == x:
			out = append(out, outEdge{other: key.a, weight: w})
		}
	}
	return out
}

// Score computes item x's per-word score contribution for a question of m
// total words, per spec.md §4.5: collect x's outgoing edges, sort by
// descending weight, and walk them recording each other word index's
// *first* (i.e. highest-weight) contribution into best[0..m-1], crediting
// an edge's weight to the word indices of *both* its endpoints — x's own
// word-index membership as well as the neighbor's — since x itself may be
// a candidate for more than one question word. Returns sum(best)/max(1,
// m-1) together with the full best array.
func (g *Graph) Score(x kbindex.Code, myWordIndex, m int) (float64, []float64) {
	g.mu.Lock()
	edges := g.outgoingEdges(x)
	nodes := g.nodes
	xIndexes := nodes[x]
	g.mu.Unlock()

	sort.Slice(edges, func(i, j int) bool { return edges[i].weight > edges[j].weight })

	best := make([]float64, m)
	claimed := make([]bool, m)
	claim := func(idx int, w float64) {
		if idx == myWordIndex || idx < 0 || idx >= m || claimed[idx] {
			return
		}
		best[idx] = w
		claimed[idx] = true
	}
	for _, e := range edges {
		for idx := range nodes[e.other] {
			claim(idx, e.weight)
		}
		for idx := range xIndexes {
			claim(idx, e.weight)
		}
	}

	var sum float64
	for _, b := range best {
		sum += b
	}
	denom := m - 1
	if denom < 1 {
		denom = 1
	}
	return sum / float64(denom), best
}
