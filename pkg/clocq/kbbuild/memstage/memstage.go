// Package memstage is an in-memory kbbuild.StagingStore, for tests and
// small corpora -- the in-memory half of the build's store split,
// adapted from the teacher's store/memstore (mutex-guarded maps, no
// on-disk persistence).
package memstage

import (
	"sync"

	"github.com/PhilippChr/CLOCQ/pkg/clocq/kbindex"
)

// Store is an in-memory kbbuild.StagingStore.
type Store struct {
	mu sync.Mutex

	entities   map[string]kbindex.Code
	predicates map[string]kbindex.Code
	literals   map[string]kbindex.Code

	nextEntity    kbindex.Code
	nextPredicate kbindex.Code
	nextLiteral   kbindex.Code

	facts [][]kbindex.Code
}

// New creates an empty staging store.
func New() *Store {
	return &Store{
		entities:      make(map[string]kbindex.Code),
		predicates:    make(map[string]kbindex.Code),
		literals:      make(map[string]kbindex.Code),
		nextEntity:    kbindex.EntityMin,
		nextPredicate: kbindex.PredicateMin,
		nextLiteral:   -1,
	}
}

// Close implements kbbuild.StagingStore.
func (s *Store) Close() error { return nil }

// RegisterEntity implements kbbuild.StagingStore.
func (s *Store) RegisterEntity(externalID string) (kbindex.Code, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if code, ok := s.entities[externalID]; ok {
		return code, nil
	}
	code := s.nextEntity
	s.nextEntity++
	s.entities[externalID] = code
	return code, nil
}

// RegisterPredicate implements kbbuild.StagingStore.
func (s *Store) RegisterPredicate(externalID string) (kbindex.Code, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if code, ok := s.predicates[externalID]; ok {
		return code, nil
	}
	code := s.nextPredicate
	s.nextPredicate++
	s.predicates[externalID] = code
	return code, nil
}

// RegisterLiteral implements kbbuild.StagingStore.
func (s *Store) RegisterLiteral(value string) (kbindex.Code, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if code, ok := s.literals[value]; ok {
		return code, nil
	}
	code := s.nextLiteral
	s.nextLiteral--
	s.literals[value] = code
	return code, nil
}

// AddFact implements kbbuild.StagingStore.
func (s *Store) AddFact(codes []kbindex.Code) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := make([]kbindex.Code, len(codes))
	copy(cp, codes)
	s.facts = append(s.facts, cp)
	return nil
}

// Entities implements kbbuild.StagingStore.
func (s *Store) Entities() (map[string]kbindex.Code, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return cloneMap(s.entities), nil
}

// Predicates implements kbbuild.StagingStore.
func (s *Store) Predicates() (map[string]kbindex.Code, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return cloneMap(s.predicates), nil
}

// Literals implements kbbuild.StagingStore.
func (s *Store) Literals() (map[string]kbindex.Code, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return cloneMap(s.literals), nil
}

// Facts implements kbbuild.StagingStore.
func (s *Store) Facts() ([][]kbindex.Code, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([][]kbindex.Code, len(s.facts))
	copy(out, s.facts)
	return out, nil
}

func cloneMap(m map[string]kbindex.Code) map[string]kbindex.Code {
	out := make(map[string]kbindex.Code, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}
