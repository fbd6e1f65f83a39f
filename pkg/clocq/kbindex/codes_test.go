package kbindex

import "testing"

func TestCodeRanges(t *testing.T) {
	cases := []struct {
		code              Code
		entity, pred, lit bool
	}{
		{Code(5000), false, true, false},
		{Code(1), false, true, false},
		{Code(9999), false, true, false},
		{Code(10000), true, false, false},
		{Code(123456), true, false, false},
		{Code(-1), false, false, true},
		{Code(-99), false, false, true},
	}
	for _, c := range cases {
		if got := c.code.IsEntity(); got != c.entity {
			t.Errorf("Code(%d).IsEntity() = %v, want %v", c.code, got, c.entity)
		}
		if got := c.code.IsPredicate(); got != c.pred {
			t.Errorf("Code(%d).IsPredicate() = %v, want %v", c.code, got, c.pred)
		}
		if got := c.code.IsLiteral(); got != c.lit {
			t.Errorf("Code(%d).IsLiteral() = %v, want %v", c.code, got, c.lit)
		}
	}
}

func TestIsEntityIDPredicateID(t *testing.T) {
	if !IsEntityID("Q47774") {
		t.Error("Q47774 should be an entity id")
	}
	if IsEntityID("P17") {
		t.Error("P17 should not be an entity id")
	}
	if !IsPredicateID("P17") {
		t.Error("P17 should be a predicate id")
	}
	if IsPredicateID("Q47774") {
		t.Error("Q47774 should not be a predicate id")
	}
	if IsEntityID("hello") || IsPredicateID("hello") {
		t.Error("plain strings should not match either pattern")
	}
}

func TestIsBareIDPattern(t *testing.T) {
	for _, s := range []string{"Q47774", "P17", "123456"} {
		if !isBareIDPattern(s) {
			t.Errorf("isBareIDPattern(%q) = false, want true", s)
		}
	}
	for _, s := range []string{"national association football team", "Germany"} {
		if isBareIDPattern(s) {
			t.Errorf("isBareIDPattern(%q) = true, want false", s)
		}
	}
}
