package kbindex

// NeighborFact is one fact returned by a neighborhood query, optionally
// decorated with per-position labels and most-frequent-type labels
// (spec.md §4.1: "decorating with labels and most-frequent-type is
// opt-in and applied element-wise").
type NeighborFact struct {
	Codes   Fact
	Decoded DecodedFact
	Labels  []string
	Types   []string
}

func (idx *Index) decorateFact(f Fact, includeLabels, includeType bool) NeighborFact {
	nf := NeighborFact{Codes: f, Decoded: idx.decodeFact(f)}
	if includeLabels {
		nf.Labels = make([]string, len(f))
		for i, c := range f {
			nf.Labels[i] = idx.Label(c)
		}
	}
	if includeType {
		nf.Types = make([]string, len(f))
		for i, c := range f {
			if t, ok := idx.MostFrequentType(c); ok {
				nf.Types[i] = t.Label
			}
		}
	}
	return nf
}

// neighborhoodRefsAndEntities returns the deduplicated FactRefs in item's
// 1-hop neighborhood, plus the distinct entity codes those facts touch
// (used by NeighborhoodTwoHop's second expansion). To limit hub inflation
// (spec.md §4.1), facts_as_object is dropped entirely -- not truncated --
// whenever it exceeds p entries, keeping only the subject-role facts;
// a hub item's object-role facts are typically undifferentiated noise, so
// keeping an arbitrary subset of them would be no better than keeping none.
func (idx *Index) neighborhoodRefsAndEntities(item Code, p int) ([]FactRef, []Code) {
	rec := idx.record(item, false)
	if rec == nil {
		return nil, nil
	}

	objRefs := rec.factsAsObject
	if p > 0 && len(objRefs) > p {
		objRefs = nil
	}

	seenRefs := make(map[FactRef]struct{})
	seenEnt := make(map[Code]struct{})
	var refs []FactRef
	var entities []Code

	add := func(ref FactRef) {
		if _, ok := seenRefs[ref]; ok {
			return
		}
		seenRefs[ref] = struct{}{}
		refs = append(refs, ref)
		for _, c := range entitiesIn(idx.arena.Get(ref)) {
			if _, ok := seenEnt[c]; !ok {
				seenEnt[c] = struct{}{}
				entities = append(entities, c)
			}
		}
	}
	for _, ref := range rec.factsAsSubject {
		add(ref)
	}
	for _, ref := range objRefs {
		add(ref)
	}
	return refs, entities
}

// Neighborhood returns the 1-hop neighborhood of item: every fact it
// appears in, except that its facts_as_object are left out entirely when
// there are more than p of them.
func (idx *Index) Neighborhood(item Code, p int, includeLabels, includeType bool) []NeighborFact {
	refs, _ := idx.neighborhoodRefsAndEntities(item, p)
	return idx.decorateRefs(refs, includeLabels, includeType)
}

// NeighborhoodTwoHop returns item's 1-hop neighborhood unioned with the
// 1-hop neighborhood of every entity reached in that first hop, with
// facts that merely loop back through item itself (already present from
// the first hop) deduplicated away.
func (idx *Index) NeighborhoodTwoHop(item Code, p int, includeLabels, includeType bool) []NeighborFact {
	firstRefs, entities := idx.neighborhoodRefsAndEntities(item, p)

	seen := make(map[FactRef]struct{}, len(firstRefs))
	var all []FactRef
	for _, ref := range firstRefs {
		seen[ref] = struct{}{}
		all = append(all, ref)
	}

	for _, e := range entities {
		if e == item {
			continue
		}
		more, _ := idx.neighborhoodRefsAndEntities(e, p)
		for _, ref := range more {
			if _, ok := seen[ref]; !ok {
				seen[ref] = struct{}{}
				all = append(all, ref)
			}
		}
	}
	return idx.decorateRefs(all, includeLabels, includeType)
}

// ExtractSearchSpace returns the union of the 1-hop neighborhoods of every
// item in tuple (spec.md §4.1), deduplicated by fact.
func (idx *Index) ExtractSearchSpace(tuple []Code, p int, includeLabels, includeType bool) []NeighborFact {
	seen := make(map[FactRef]struct{})
	var all []FactRef
	for _, item := range tuple {
		refs, _ := idx.neighborhoodRefsAndEntities(item, p)
		for _, ref := range refs {
			if _, ok := seen[ref]; !ok {
				seen[ref] = struct{}{}
				all = append(all, ref)
			}
		}
	}
	return idx.decorateRefs(all, includeLabels, includeType)
}

func (idx *Index) decorateRefs(refs []FactRef, includeLabels, includeType bool) []NeighborFact {
	if len(refs) == 0 {
		return nil
	}
	out := make([]NeighborFact, len(refs))
	for i, ref := range refs {
		out[i] = idx.decorateFact(idx.arena.Get(ref), includeLabels, includeType)
	}
	return out
}
