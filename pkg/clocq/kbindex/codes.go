// Package kbindex implements the compact in-memory knowledge-base index:
// integer-coded entities, predicates and literals, their labels/aliases/
// descriptions, fact storage, and the 1-hop/2-hop neighborhood and
// connectivity operations described in spec.md §3-4.1.
package kbindex

import (
	"regexp"
	"strconv"
)

// Code is the internal integer encoding of a KB item. Ranges are disjoint
// and serve as a total discriminator between entities, predicates and
// literals (spec.md §3):
//
//	predicates: 1..9999
//	entities:   >= 10000
//	literals:   negative integers
type Code int64

const (
	// PredicateMin and PredicateMax bound the predicate code range.
	PredicateMin Code = 1
	PredicateMax Code = 9999

	// EntityMin is the first code assigned to entities.
	EntityMin Code = 10000
)

// IsEntity reports whether c falls in the entity range.
func (c Code) IsEntity() bool { return c >= EntityMin }

// IsPredicate reports whether c falls in the predicate range.
func (c Code) IsPredicate() bool { return c >= PredicateMin && c <= PredicateMax }

// IsLiteral reports whether c falls in the literal range.
func (c Code) IsLiteral() bool { return c < 0 }

var (
	entityIDPattern    = regexp.MustCompile(`^Q[0-9]+$`)
	predicateIDPattern = regexp.MustCompile(`^P[0-9]+$`)
)

// IsEntityID reports whether s looks like an external entity id ("Q<digits>").
func IsEntityID(s string) bool { return entityIDPattern.MatchString(s) }

// IsPredicateID reports whether s looks like an external predicate id ("P<digits>").
func IsPredicateID(s string) bool { return predicateIDPattern.MatchString(s) }

// isBareIDPattern reports whether s is itself a bare id string (Q123, P123,
// or a plain non-negative integer) rather than a human-readable label. Used
// by Label to skip over labels that are really just echoed ids.
func isBareIDPattern(s string) bool {
	if IsEntityID(s) || IsPredicateID(s) {
		return true
	}
	if _, err := strconv.ParseInt(s, 10, 64); err == nil {
		return true
	}
	return false
}
