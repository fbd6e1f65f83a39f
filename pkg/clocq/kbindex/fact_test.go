package kbindex

import "testing"

func TestFactAccessors(t *testing.T) {
	f := Fact{Code(10001), Code(17), Code(10002), Code(18), Code(10003)}
	if f.Subject() != Code(10001) {
		t.Errorf("Subject() = %v, want 10001", f.Subject())
	}
	if f.Predicate() != Code(17) {
		t.Errorf("Predicate() = %v, want 17", f.Predicate())
	}
	if f.Object() != Code(10002) {
		t.Errorf("Object() = %v, want 10002", f.Object())
	}
	pairs := f.QualifierPairs()
	if len(pairs) != 1 || pairs[0] != [2]Code{18, 10003} {
		t.Errorf("QualifierPairs() = %v, want [[18 10003]]", pairs)
	}
}

func TestFactContains(t *testing.T) {
	f := Fact{Code(10001), Code(17), Code(10002)}
	if !f.Contains(Code(10001)) || !f.Contains(Code(10002)) {
		t.Error("Contains should find subject and object")
	}
	if f.Contains(Code(99999)) {
		t.Error("Contains should not find an absent code")
	}
}

func TestFactArenaOwnsOnce(t *testing.T) {
	var arena FactArena
	f := Fact{Code(10001), Code(17), Code(10002)}
	ref := arena.Add(f)
	if arena.Len() != 1 {
		t.Fatalf("Len() = %d, want 1", arena.Len())
	}
	got := arena.Get(ref)
	if len(got) != 3 || got.Subject() != Code(10001) {
		t.Errorf("Get(ref) = %v, want the added fact", got)
	}
}
