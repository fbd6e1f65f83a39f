package kbindex

import "testing"

// buildSample constructs a small KB: Q47774 (Douglas Adams) --P106--> Q36180
// (writer), --P31--> Q5 (human); Q47774 --P17--> Q142 (France) with a
// qualifier P580/Q12345; mirrors spec.md §8's seeded scenarios.
func buildSample(t *testing.T) *Index {
	t.Helper()
	b := NewBuilder(20000)
	b.AddEntity(10001, "Q47774", []string{"Douglas Adams"}, nil, "English writer")
	b.AddEntity(10002, "Q142", []string{"France"}, nil, "country in western Europe")
	b.AddEntity(10003, "Q36180", []string{"writer"}, nil, "person who writes books")
	b.AddEntity(10004, "Q5", []string{"human"}, nil, "common name of Homo sapiens")
	b.AddEntity(10005, "Q12345", []string{"some qualifier value"}, nil, "")
	b.AddPredicate(17, "P17", []string{"country"}, nil, "sovereign state")
	b.AddPredicate(106, "P106", []string{"occupation"}, nil, "occupation of a person")
	b.AddPredicate(31, "P31", []string{"instance of"}, nil, "")
	b.AddPredicate(580, "P580", []string{"start time"}, nil, "")

	b.AddFact(Fact{10001, 106, 10003})
	b.AddFact(Fact{10001, 31, 10004})
	b.AddFact(Fact{10001, 17, 10002, 580, 10005})
	return b.Build()
}

func TestLabelFirstNonIDRule(t *testing.T) {
	idx := buildSample(t)
	if got := idx.Label(10001); got != "Douglas Adams" {
		t.Errorf("Label(Q47774) = %q, want Douglas Adams", got)
	}
}

func TestLabelFallsBackToIDWhenOnlyBareIDLabels(t *testing.T) {
	b := NewBuilder(20000)
	b.AddEntity(10010, "Q999", []string{"Q999", "999"}, nil, "")
	idx := b.Build()
	if got := idx.Label(10010); got != "Q999" {
		t.Errorf("Label(Q999) = %q, want Q999 (fallback to id)", got)
	}
}

func TestTypesScansSubjectFacts(t *testing.T) {
	idx := buildSample(t)
	types := idx.Types(10001)
	if len(types) != 2 {
		t.Fatalf("Types(Q47774) = %v, want 2 entries", types)
	}
	var gotWriter, gotHuman bool
	for _, ty := range types {
		switch ty.ID {
		case 10003:
			gotWriter = true
		case 10004:
			gotHuman = true
		}
	}
	if !gotWriter || !gotHuman {
		t.Errorf("Types(Q47774) = %v, want writer and human", types)
	}
}

func TestFrequency(t *testing.T) {
	idx := buildSample(t)
	subj, obj := idx.Frequency(10001)
	if subj != 3 || obj != 0 {
		t.Errorf("Frequency(Q47774) = (%d,%d), want (3,0)", subj, obj)
	}
	subj, obj = idx.Frequency(10003)
	if subj != 0 || obj != 1 {
		t.Errorf("Frequency(writer) = (%d,%d), want (0,1)", subj, obj)
	}
}

func TestIsKnown(t *testing.T) {
	idx := buildSample(t)
	if !idx.IsKnown(10001) {
		t.Error("IsKnown(Q47774) = false, want true")
	}
	if idx.IsKnown(99999) {
		t.Error("IsKnown(unseen code) = true, want false")
	}
}

func TestExternalIDUnknownReturnsUnknown(t *testing.T) {
	idx := buildSample(t)
	if got := idx.ExternalID(99999); got != "unknown" {
		t.Errorf("ExternalID(unseen) = %q, want unknown", got)
	}
}

func TestFormatLiteralYearOnly(t *testing.T) {
	if got := FormatLiteral("1979-01-01T00:00:00Z"); got != "1979" {
		t.Errorf("FormatLiteral(year-only) = %q, want 1979", got)
	}
}

func TestFormatLiteralPassthroughNonTimestamp(t *testing.T) {
	if got := FormatLiteral("just a string"); got != "just a string" {
		t.Errorf("FormatLiteral(plain) = %q, want unchanged", got)
	}
}

func TestMostFrequentType(t *testing.T) {
	idx := buildSample(t)
	best, ok := idx.MostFrequentType(10001)
	if !ok {
		t.Fatal("MostFrequentType(Q47774) reported no type, want one")
	}
	if best.ID != 10003 && best.ID != 10004 {
		t.Errorf("MostFrequentType(Q47774) = %v, want writer or human", best)
	}
}
