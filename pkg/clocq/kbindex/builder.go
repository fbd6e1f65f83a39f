package kbindex

import "sort"

// Builder constructs an Index in memory. The offline on-disk build path
// (pkg/clocq/kbbuild) uses this as its final assembly step once staging
// has assigned codes and accumulated facts; tests and the in-process
// examples use it directly.
type Builder struct {
	idx *Index
}

// NewBuilder creates an empty Builder. highestID is the size bound for
// the dense predicate/entity arrays (spec.md §6 "HIGHEST_ID.txt").
func NewBuilder(highestID int64) *Builder {
	return &Builder{idx: newIndex(highestID)}
}

func newIndex(highestID int64) *Index {
	return &Index{
		highestID:        highestID,
		dense:            make([]*itemRecord, highestID+1),
		literals:         make(map[Code]*itemRecord),
		entityExternal:   make(map[string]Code),
		predicateExternal: make(map[string]Code),
		literalExternal:  make(map[string]Code),
		inverseEntity:    make(map[Code]string),
		inversePredicate: make(map[Code]string),
		inverseLiteral:   make(map[Code]string),
		hub:              DefaultHubPolicy(),
		typePredicateIDs: []string{"P31", "P106"},
	}
}

// AddEntity registers an entity with its external id (e.g. "Q47774"), code,
// labels and aliases. A later call with the same code replaces the
// labels, aliases and description set by earlier calls.
func (b *Builder) AddEntity(code Code, externalID string, labels, aliases []string, description string) {
	b.idx.entityExternal[externalID] = code
	b.idx.inverseEntity[code] = externalID
	rec := b.record(code)
	rec.labels = labels
	rec.aliases = aliases
	rec.description = description
}

// AddPredicate registers a predicate with its external id (e.g. "P17").
func (b *Builder) AddPredicate(code Code, externalID string, labels, aliases []string, description string) {
	b.idx.predicateExternal[externalID] = code
	b.idx.inversePredicate[code] = externalID
	rec := b.record(code)
	rec.labels = labels
	rec.aliases = aliases
	rec.description = description
}

// AddLiteral registers a literal value (timestamps, strings <= 39 chars)
// under a negative code.
func (b *Builder) AddLiteral(code Code, value string) {
	if !code.IsLiteral() {
		panic("kbindex: literal code must be negative")
	}
	b.idx.literalExternal[value] = code
	b.idx.inverseLiteral[code] = value
	rec := b.record(code)
	rec.labels = []string{value}
}

// AddFact stores f, wiring facts_as_subject, facts_as_object and neighbors
// for every item it touches, per the invariants in spec.md §3.
func (b *Builder) AddFact(f Fact) FactRef {
	ref := b.idx.arena.Add(f)

	subj := f.Subject()
	b.record(subj).factsAsSubject = append(b.record(subj).factsAsSubject, ref)

	entities := entitiesIn(f)
	for pos, c := range f {
		if pos == 0 {
			continue // subject already handled above
		}
		if pos%2 == 0 {
			// main object (index 2) or a qualifier object (index 4, 6, ...)
			b.record(c).factsAsObject = append(b.record(c).factsAsObject, ref)
		}
	}

	for _, a := range entities {
		for _, other := range entities {
			if a != other {
				b.record(a).addNeighbor(other)
			}
		}
	}

	return ref
}

// entitiesIn returns the distinct entity codes appearing in f (subject,
// main object, and any qualifier object that is itself an entity).
func entitiesIn(f Fact) []Code {
	seen := make(map[Code]struct{})
	var out []Code
	add := func(c Code) {
		if !c.IsEntity() {
			return
		}
		if _, ok := seen[c]; ok {
			return
		}
		seen[c] = struct{}{}
		out = append(out, c)
	}
	add(f.Subject())
	add(f.Object())
	for _, qp := range f.QualifierPairs() {
		add(qp[1])
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// SetHubPolicy overrides the default hard-cutoff hub-skip policy.
func (b *Builder) SetHubPolicy(p HubPolicy) {
	b.idx.hub = p
}

// SetTypePredicateIDs overrides which predicate ids Types()/MostFrequentType()
// treat as "instance of"/"occupation"-style relations (default: P31, P106).
func (b *Builder) SetTypePredicateIDs(ids []string) {
	b.idx.typePredicateIDs = ids
}

// Build finalizes and returns the constructed Index.
func (b *Builder) Build() *Index {
	b.idx.resolveTypePredicates()
	return b.idx
}

func (b *Builder) record(code Code) *itemRecord {
	return b.idx.record(code, true)
}
