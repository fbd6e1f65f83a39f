package kbindex

import "testing"

func TestNeighborhoodReturnsAllIncidentFacts(t *testing.T) {
	idx := buildSample(t)
	facts := idx.Neighborhood(10001, 1000, false, false)
	if len(facts) != 3 {
		t.Fatalf("Neighborhood(Q47774) = %d facts, want 3", len(facts))
	}
}

func TestNeighborhoodDropsObjectFactsAbovePLimit(t *testing.T) {
	b := NewBuilder(20000)
	b.AddEntity(10001, "Qa", nil, nil, "")
	b.AddPredicate(1, "P1", nil, nil, "")
	for i := 0; i < 5; i++ {
		obj := Code(20000 + i)
		b.AddEntity(obj, "Qpad", nil, nil, "")
		b.AddFact(Fact{obj, 1, 10001}) // 10001 is the object in every fact
	}
	idx := b.Build()

	all := idx.Neighborhood(10001, 1000, false, false)
	if len(all) != 5 {
		t.Fatalf("unpruned neighborhood = %d, want 5", len(all))
	}
	// Above the p limit, every object-role fact is dropped entirely (not
	// truncated to an arbitrary subset); 10001 has no subject-role facts
	// here, so the pruned neighborhood is empty.
	pruned := idx.Neighborhood(10001, 2, false, false)
	if len(pruned) != 0 {
		t.Errorf("pruned neighborhood (p=2) = %d, want 0 (object facts dropped wholesale)", len(pruned))
	}
}

func TestNeighborhoodKeepsSubjectFactsWhenObjectFactsPruned(t *testing.T) {
	b := NewBuilder(20000)
	b.AddEntity(10001, "Qa", nil, nil, "")
	b.AddEntity(10002, "Qb", nil, nil, "")
	b.AddPredicate(1, "P1", nil, nil, "")
	b.AddFact(Fact{10001, 1, 10002}) // 10001 as subject: survives pruning
	for i := 0; i < 5; i++ {
		obj := Code(20000 + i)
		b.AddEntity(obj, "Qpad", nil, nil, "")
		b.AddFact(Fact{obj, 1, 10001}) // 10001 as object: pruned above p
	}
	idx := b.Build()

	pruned := idx.Neighborhood(10001, 2, false, false)
	if len(pruned) != 1 {
		t.Fatalf("pruned neighborhood (p=2) = %d, want 1 (the surviving subject-role fact)", len(pruned))
	}
}

func TestNeighborhoodDecoratesLabelsAndTypes(t *testing.T) {
	idx := buildSample(t)
	facts := idx.Neighborhood(10001, 1000, true, true)
	for _, f := range facts {
		if len(f.Labels) != len(f.Codes) {
			t.Fatalf("Labels length %d != Codes length %d", len(f.Labels), len(f.Codes))
		}
		if len(f.Types) != len(f.Codes) {
			t.Fatalf("Types length %d != Codes length %d", len(f.Types), len(f.Codes))
		}
	}
}

func TestNeighborhoodUndecoratedOmitsLabelsAndTypes(t *testing.T) {
	idx := buildSample(t)
	facts := idx.Neighborhood(10001, 1000, false, false)
	for _, f := range facts {
		if f.Labels != nil || f.Types != nil {
			t.Errorf("expected no decoration, got Labels=%v Types=%v", f.Labels, f.Types)
		}
	}
}

func TestNeighborhoodTwoHopExpandsAndDedupes(t *testing.T) {
	b := NewBuilder(20000)
	b.AddEntity(10001, "Qa", nil, nil, "")
	b.AddEntity(10002, "Qb", nil, nil, "")
	b.AddEntity(10003, "Qc", nil, nil, "")
	b.AddPredicate(1, "P1", nil, nil, "")
	b.AddFact(Fact{10001, 1, 10002})
	b.AddFact(Fact{10002, 1, 10003})
	idx := b.Build()

	oneHop := idx.Neighborhood(10001, 1000, false, false)
	if len(oneHop) != 1 {
		t.Fatalf("one-hop neighborhood = %d, want 1", len(oneHop))
	}
	twoHop := idx.NeighborhoodTwoHop(10001, 1000, false, false)
	if len(twoHop) != 2 {
		t.Fatalf("two-hop neighborhood = %d, want 2 (no duplicate of the starting fact)", len(twoHop))
	}
}

func TestExtractSearchSpaceUnionsTupleNeighborhoods(t *testing.T) {
	b := NewBuilder(20000)
	b.AddEntity(10001, "Qa", nil, nil, "")
	b.AddEntity(10002, "Qb", nil, nil, "")
	b.AddEntity(10003, "Qc", nil, nil, "")
	b.AddEntity(10004, "Qd", nil, nil, "")
	b.AddPredicate(1, "P1", nil, nil, "")
	b.AddFact(Fact{10001, 1, 10002})
	b.AddFact(Fact{10003, 1, 10004})
	idx := b.Build()

	space := idx.ExtractSearchSpace([]Code{10001, 10003}, 1000, false, false)
	if len(space) != 2 {
		t.Fatalf("ExtractSearchSpace = %d facts, want 2", len(space))
	}
}
