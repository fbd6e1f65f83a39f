package kbindex

// Fact is an ordered sequence of internal codes of odd length >= 3:
// [subject, predicate, object, (qualifier_predicate, qualifier_object)*].
// The subject is always an entity (spec.md §3).
type Fact []Code

// Subject returns the fact's subject code.
func (f Fact) Subject() Code { return f[0] }

// Predicate returns the fact's main predicate code.
func (f Fact) Predicate() Code { return f[1] }

// Object returns the fact's main object code.
func (f Fact) Object() Code { return f[2] }

// QualifierPairs returns the (predicate, object) pairs appended after the
// main triple, if any.
func (f Fact) QualifierPairs() [][2]Code {
	if len(f) <= 3 {
		return nil
	}
	pairs := make([][2]Code, 0, (len(f)-3)/2)
	for i := 3; i+1 < len(f); i += 2 {
		pairs = append(pairs, [2]Code{f[i], f[i+1]})
	}
	return pairs
}

// Contains reports whether code appears anywhere in the fact sequence.
func (f Fact) Contains(code Code) bool {
	for _, c := range f {
		if c == code {
			return true
		}
	}
	return false
}

// FactArena owns every fact sequence exactly once. facts_as_subject and
// facts_as_object (see records.go) hold indices into this arena rather
// than copies of the fact, per spec.md §9's ownership design note.
type FactArena struct {
	facts []Fact
}

// Add appends f to the arena and returns its arena index (a FactRef).
func (a *FactArena) Add(f Fact) FactRef {
	a.facts = append(a.facts, f)
	return FactRef(len(a.facts) - 1)
}

// Get returns the fact at ref.
func (a *FactArena) Get(ref FactRef) Fact {
	return a.facts[ref]
}

// Len returns the number of facts stored in the arena.
func (a *FactArena) Len() int { return len(a.facts) }

// FactRef is an index into a FactArena.
type FactRef int
