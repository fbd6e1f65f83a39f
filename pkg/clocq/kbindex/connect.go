package kbindex

// DecodedFact is a fact with every code resolved back to its external id,
// in the same positional order as the original Fact.
type DecodedFact []string

// Path is the result of Connect: either a direct 1-hop connection (OneHop
// non-nil) or a 2-hop connection via an intermediate item (Via set,
// ThroughA/ThroughB holding the facts on each side). Spec.md §4.1 describes
// a path as "either one fact (1-hop) or a pair of fact-lists (2-hop)".
type Path struct {
	OneHop []DecodedFact

	Via      string
	ThroughA []DecodedFact
	ThroughB []DecodedFact
}

// Connectivity returns 1.0 if a and b are 1-hop adjacent, 0.5 if they share
// a neighbor (2-hop), 0.0 otherwise. Symmetric; runs in
// O(min(|N_a|, |N_b|)) by intersecting over the smaller neighbor set
// (spec.md §4.1). For a == b, the adjacency/shared-neighbor machinery
// below is not meaningful (a node's neighbor set trivially intersects
// itself); spec.md §8's testable property #3 instead defines
// connectivity(a,a) as 1 iff a appears twice in some fact it participates
// in, 0 otherwise.
func (idx *Index) Connectivity(a, b Code) float64 {
	if a == b {
		if idx.selfLoop(a) {
			return 1.0
		}
		return 0.0
	}
	if idx.isAdjacent(a, b) {
		return 1.0
	}
	if idx.hasSharedNeighbor(a, b) {
		return 0.5
	}
	return 0.0
}

// selfLoop reports whether item appears more than once in some fact it
// participates in, e.g. a fact whose subject and object are the same item
// (spec.md §8 testable property #3).
func (idx *Index) selfLoop(item Code) bool {
	rec := idx.record(item, false)
	if rec == nil {
		return false
	}
	seen := make(map[FactRef]struct{})
	twice := func(ref FactRef) bool {
		if _, ok := seen[ref]; ok {
			return false
		}
		seen[ref] = struct{}{}
		count := 0
		for _, c := range idx.arena.Get(ref) {
			if c == item {
				count++
			}
		}
		return count >= 2
	}
	for _, ref := range rec.factsAsSubject {
		if twice(ref) {
			return true
		}
	}
	for _, ref := range rec.factsAsObject {
		if twice(ref) {
			return true
		}
	}
	return false
}

func (idx *Index) isAdjacent(a, b Code) bool {
	if recA := idx.record(a, false); recA != nil {
		if _, ok := recA.neighbors[b]; ok {
			return true
		}
	}
	if recB := idx.record(b, false); recB != nil {
		if _, ok := recB.neighbors[a]; ok {
			return true
		}
	}
	return false
}

func (idx *Index) hasSharedNeighbor(a, b Code) bool {
	small, big := idx.neighborSets(a, b)
	if small == nil || big == nil {
		return false
	}
	for n := range small {
		if _, ok := big[n]; ok {
			return true
		}
	}
	return false
}

// sharedNeighbors returns every item in neighbors[a] ∩ neighbors[b], always
// iterating the smaller side first per spec.md §4.1's algorithmic note.
func (idx *Index) sharedNeighbors(a, b Code) []Code {
	small, big := idx.neighborSets(a, b)
	if small == nil || big == nil {
		return nil
	}
	var out []Code
	for n := range small {
		if _, ok := big[n]; ok {
			out = append(out, n)
		}
	}
	return out
}

// neighborSets returns (smaller, larger) neighbor sets for a and b, or
// (nil, nil) if either item is unknown.
func (idx *Index) neighborSets(a, b Code) (small, big map[Code]struct{}) {
	recA := idx.record(a, false)
	recB := idx.record(b, false)
	if recA == nil || recB == nil {
		return nil, nil
	}
	if len(recA.neighbors) <= len(recB.neighbors) {
		return recA.neighbors, recB.neighbors
	}
	return recB.neighbors, recA.neighbors
}

// Connect enumerates connecting paths between a and b. It returns one
// 1-hop path when the items are directly adjacent; otherwise it enumerates
// a 2-hop path through every shared neighbor, skipping hub items per the
// configured HubPolicy (spec.md §4.1, §9).
func (idx *Index) Connect(a, b Code) []Path {
	if direct := idx.connectOneHop(a, b); len(direct) > 0 {
		return []Path{{OneHop: direct}}
	}

	var paths []Path
	for _, m := range idx.sharedNeighbors(a, b) {
		if idx.hub.ShouldSkip(m, idx.freqSum(m)) {
			continue
		}
		throughA := idx.connectOneHop(a, m)
		throughB := idx.connectOneHop(m, b)
		if len(throughA) == 0 || len(throughB) == 0 {
			continue
		}
		paths = append(paths, Path{
			Via:      idx.ExternalID(m),
			ThroughA: throughA,
			ThroughB: throughB,
		})
	}
	return paths
}

// connectOneHop enumerates facts in facts_as_subject ∪ facts_as_object of
// whichever of a, b has fewer recorded facts, keeping those whose fact
// sequence contains the other item.
func (idx *Index) connectOneHop(a, b Code) []DecodedFact {
	recA := idx.record(a, false)
	recB := idx.record(b, false)
	if recA == nil || recB == nil {
		return nil
	}

	scanRec, other := recA, b
	if factCount(recB) < factCount(recA) {
		scanRec, other = recB, a
	}

	seen := make(map[FactRef]struct{})
	var out []DecodedFact
	check := func(ref FactRef) {
		if _, ok := seen[ref]; ok {
			return
		}
		seen[ref] = struct{}{}
		f := idx.arena.Get(ref)
		if f.Contains(other) {
			out = append(out, idx.decodeFact(f))
		}
	}
	for _, ref := range scanRec.factsAsSubject {
		check(ref)
	}
	for _, ref := range scanRec.factsAsObject {
		check(ref)
	}
	return out
}

func factCount(r *itemRecord) int {
	return len(r.factsAsSubject) + len(r.factsAsObject)
}

func (idx *Index) decodeFact(f Fact) DecodedFact {
	out := make(DecodedFact, len(f))
	for i, c := range f {
		out[i] = idx.ExternalID(c)
	}
	return out
}
