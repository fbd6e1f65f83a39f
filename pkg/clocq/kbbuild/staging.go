// Package kbbuild implements the offline CSV/dump-to-binary-index build
// path spec.md §6 specifies only at the interface level ("offline data-
// preparation jobs that encode the raw KB dump into the binary index
// files"). It stages distinct nodes and facts through a StagingStore,
// then assembles a kbindex.Index and dumps it via kbindex.Dump.
package kbbuild

import "github.com/PhilippChr/CLOCQ/pkg/clocq/kbindex"

// NodeKind discriminates which disjoint code range (spec.md §3) a staged
// external id belongs to.
type NodeKind int

const (
	KindEntity NodeKind = iota
	KindPredicate
	KindLiteral
)

// StagingStore accumulates distinct nodes and fact sequences during the
// build, assigning each external id a dense code the first time it is
// seen and returning the same code on every later lookup. Two
// implementations ship: memstage (tests, small corpora) and sqlitestage
// (large dumps) -- the same Store-interface-with-two-backends split the
// teacher uses for store.Store / store/sqlite / store/memstore.
type StagingStore interface {
	Close() error

	// RegisterEntity assigns (or returns the existing) code for an
	// entity external id, starting at kbindex.EntityMin and counting up.
	RegisterEntity(externalID string) (kbindex.Code, error)
	// RegisterPredicate assigns (or returns the existing) code for a
	// predicate external id, starting at kbindex.PredicateMin.
	RegisterPredicate(externalID string) (kbindex.Code, error)
	// RegisterLiteral assigns (or returns the existing) negative code
	// for a literal value.
	RegisterLiteral(value string) (kbindex.Code, error)

	// AddFact appends one already-resolved fact (subject, predicate,
	// object, then zero or more qualifier-predicate/qualifier-object
	// pairs) to the staged sequence, in insertion order.
	AddFact(codes []kbindex.Code) error

	// Entities, Predicates and Literals return the external-id -> code
	// maps accumulated so far, for the emission pass.
	Entities() (map[string]kbindex.Code, error)
	Predicates() (map[string]kbindex.Code, error)
	Literals() (map[string]kbindex.Code, error)

	// Facts returns every staged fact, in insertion order.
	Facts() ([][]kbindex.Code, error)
}

// LabelSource supplies display labels/aliases/descriptions for staged
// external ids, kept separate from StagingStore because the triple-dump
// CSV (subject,predicate,object[,qualifier]*) carries no label text of
// its own -- the original pipeline reads labels from a different
// Wikidata export entirely. A nil LabelSource leaves every item
// label-less; kbindex.Label already falls back to the external id in
// that case.
type LabelSource interface {
	Label(externalID string) (labels, aliases []string, description string, ok bool)
}
