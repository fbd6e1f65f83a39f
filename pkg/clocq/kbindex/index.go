package kbindex

import (
	"fmt"
	"time"

	"github.com/dustin/go-humanize"
)

// Index is the compact, read-only (once loaded) in-memory knowledge-base
// store described in spec.md §3-4.1. It is built once, offline, and
// shared read-only by every per-question pipeline run (spec.md §5).
type Index struct {
	highestID int64

	// dense holds predicate (1..9999) and entity (>=10000) records,
	// indexed directly by code — the "dense array replaces hash map"
	// win spec.md §9 calls out.
	dense []*itemRecord

	// literals holds negative-coded literal records; literal codes are
	// unbounded below zero so they are kept in a map rather than a slice.
	literals map[Code]*itemRecord

	entityExternal    map[string]Code
	predicateExternal map[string]Code
	literalExternal   map[string]Code

	inverseEntity    map[Code]string
	inversePredicate map[Code]string
	inverseLiteral   map[Code]string

	arena FactArena
	hub   HubPolicy

	typePredicateIDs []string
	typePredicates   []Code
}

// record returns the item record for code, allocating it on first access
// when create is true (used by Builder); query paths pass create=false
// and get nil for unknown codes.
func (idx *Index) record(code Code, create bool) *itemRecord {
	switch {
	case code.IsLiteral():
		rec, ok := idx.literals[code]
		if !ok && create {
			rec = newItemRecord()
			idx.literals[code] = rec
		}
		return rec
	case code >= 0 && code <= Code(idx.highestID):
		if idx.dense[code] == nil {
			if !create {
				return nil
			}
			idx.dense[code] = newItemRecord()
		}
		return idx.dense[code]
	default:
		return nil
	}
}

func (idx *Index) resolveTypePredicates() {
	idx.typePredicates = idx.typePredicates[:0]
	for _, id := range idx.typePredicateIDs {
		if code, ok := idx.predicateExternal[id]; ok {
			idx.typePredicates = append(idx.typePredicates, code)
		}
	}
}

// CodeOf resolves an external id (e.g. "Q47774", "P17", or a raw literal
// string) to its internal code. The second return is false for unknown ids.
func (idx *Index) CodeOf(externalID string) (Code, bool) {
	if c, ok := idx.entityExternal[externalID]; ok {
		return c, true
	}
	if c, ok := idx.predicateExternal[externalID]; ok {
		return c, true
	}
	if c, ok := idx.literalExternal[externalID]; ok {
		return c, true
	}
	return 0, false
}

// ExternalID resolves an internal code back to its external id string.
// Malformed/unknown codes return "unknown" per spec.md §4.1 failure
// semantics, never an error.
func (idx *Index) ExternalID(code Code) string {
	switch {
	case code.IsLiteral():
		if s, ok := idx.inverseLiteral[code]; ok {
			return s
		}
	case code.IsPredicate():
		if s, ok := idx.inversePredicate[code]; ok {
			return s
		}
	case code.IsEntity():
		if s, ok := idx.inverseEntity[code]; ok {
			return s
		}
	}
	return "unknown"
}

// IsKnown reports whether code has a defined neighbor set (spec.md §3:
// "is_known(x) ⇔ neighbors[code(x)] is defined"). Every item with a
// record in the index has one -- whether registered through the Builder
// or restored by Load -- so an item is known even if it appears in no
// fact.
func (idx *Index) IsKnown(code Code) bool {
	rec := idx.record(code, false)
	return rec != nil && rec.neighbors != nil
}

// Labels returns every label string recorded for item, in original order.
// Literals and unknown codes return a single-element slice with their
// external/rendered form.
func (idx *Index) Labels(item Code) []string {
	if item.IsLiteral() {
		return []string{idx.renderLiteral(item)}
	}
	rec := idx.record(item, false)
	if rec == nil || len(rec.labels) == 0 {
		return []string{idx.ExternalID(item)}
	}
	return rec.labels
}

// Label returns the first label that is not itself a bare-id pattern; if
// none qualifies, it falls back to the item's own id (spec.md §4.1).
func (idx *Index) Label(item Code) string {
	if item.IsLiteral() {
		return idx.renderLiteral(item)
	}
	labels := idx.Labels(item)
	for _, l := range labels {
		if !isBareIDPattern(l) {
			return l
		}
	}
	return idx.ExternalID(item)
}

// Aliases returns the auxiliary alias strings recorded for item.
func (idx *Index) Aliases(item Code) []string {
	rec := idx.record(item, false)
	if rec == nil {
		return nil
	}
	return rec.aliases
}

// Description returns the free-text description recorded for item.
func (idx *Index) Description(item Code) string {
	rec := idx.record(item, false)
	if rec == nil {
		return ""
	}
	return rec.description
}

// Type is a single instance-of/occupation-style type record.
type Type struct {
	ID    Code
	Label string
}

// Types scans facts_as_subject[item] for predicates encoding "instance
// of"/"occupation" (configurable via Builder.SetTypePredicateIDs, default
// P31/P106) and returns their objects with labels (spec.md §4.1).
func (idx *Index) Types(item Code) []Type {
	rec := idx.record(item, false)
	if rec == nil || len(idx.typePredicates) == 0 {
		return nil
	}

	isTypePredicate := func(c Code) bool {
		for _, tp := range idx.typePredicates {
			if tp == c {
				return true
			}
		}
		return false
	}

	seen := make(map[Code]struct{})
	var out []Type
	for _, ref := range rec.factsAsSubject {
		f := idx.arena.Get(ref)
		if !isTypePredicate(f.Predicate()) {
			continue
		}
		obj := f.Object()
		if _, ok := seen[obj]; ok {
			continue
		}
		seen[obj] = struct{}{}
		out = append(out, Type{ID: obj, Label: idx.Label(obj)})
	}
	return out
}

// Frequency returns the (subject_count, object_count) pair for item: the
// number of facts in which it appears as subject and as object.
func (idx *Index) Frequency(item Code) (subjCount, objCount int64) {
	rec := idx.record(item, false)
	if rec == nil {
		return 0, 0
	}
	return int64(len(rec.factsAsSubject)), int64(len(rec.factsAsObject))
}

// freqSum is the subject+object frequency used by the hub-skip policy.
func (idx *Index) freqSum(item Code) int64 {
	s, o := idx.Frequency(item)
	return s + o
}

// MostFrequentType returns the type maximising frequency_sum(subject +
// object counts) among Types(item); the zero Type and false if item has
// no recorded types.
func (idx *Index) MostFrequentType(item Code) (Type, bool) {
	types := idx.Types(item)
	if len(types) == 0 {
		return Type{}, false
	}
	best := types[0]
	bestFreq := idx.freqSum(best.ID)
	for _, t := range types[1:] {
		if f := idx.freqSum(t.ID); f > bestFreq {
			best, bestFreq = t, f
		}
	}
	return best, true
}

// renderLiteral formats a literal code for display. Timestamp literals
// ("YYYY-MM-DDT00:00:00Z") render as human dates; year-only dates collapse
// to "YYYY" (spec.md §3).
func (idx *Index) renderLiteral(item Code) string {
	raw, ok := idx.inverseLiteral[item]
	if !ok {
		return idx.ExternalID(item)
	}
	return FormatLiteral(raw)
}

const timestampLayout = "2006-01-02T15:04:05Z"

// FormatLiteral renders a raw literal value for display: ISO-8601
// timestamps become a human date (or a bare year when the date component
// is January 1st, a common "year-only" encoding), everything else passes
// through unchanged.
func FormatLiteral(raw string) string {
	t, err := time.Parse(timestampLayout, raw)
	if err != nil {
		return raw
	}
	if t.Month() == time.January && t.Day() == 1 {
		return fmt.Sprintf("%04d", t.Year())
	}
	return fmt.Sprintf("%s %s, %d", t.Month(), humanize.Ordinal(t.Day()), t.Year())
}
