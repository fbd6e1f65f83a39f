package kbindex

import "testing"

func TestConnectivityOneHop(t *testing.T) {
	idx := buildSample(t)
	if got := idx.Connectivity(10001, 10002); got != 1.0 {
		t.Errorf("Connectivity(Q47774, Q142) = %v, want 1.0", got)
	}
}

func TestConnectOneHopYieldsFactContainingBoth(t *testing.T) {
	idx := buildSample(t)
	paths := idx.Connect(10001, 10002)
	if len(paths) != 1 || len(paths[0].OneHop) == 0 {
		t.Fatalf("Connect(Q47774, Q142) = %v, want one 1-hop path", paths)
	}
	fact := paths[0].OneHop[0]
	found1, found2 := false, false
	for _, id := range fact {
		if id == "Q47774" {
			found1 = true
		}
		if id == "Q142" {
			found2 = true
		}
	}
	if !found1 || !found2 {
		t.Errorf("OneHop fact %v does not contain both endpoints", fact)
	}
}

func TestConnectivityTwoHopViaSharedNeighbor(t *testing.T) {
	b := NewBuilder(20000)
	b.AddEntity(10001, "Qa", nil, nil, "")
	b.AddEntity(10002, "Qb", nil, nil, "")
	b.AddEntity(10003, "Qm", nil, nil, "")
	b.AddPredicate(1, "P1", nil, nil, "")
	b.AddFact(Fact{10001, 1, 10003})
	b.AddFact(Fact{10002, 1, 10003})
	idx := b.Build()

	if got := idx.Connectivity(10001, 10002); got != 0.5 {
		t.Fatalf("Connectivity(a,b) = %v, want 0.5", got)
	}
	paths := idx.Connect(10001, 10002)
	if len(paths) != 1 || paths[0].Via != "Qm" {
		t.Fatalf("Connect(a,b) = %v, want one path via Qm", paths)
	}
	if len(paths[0].ThroughA) == 0 || len(paths[0].ThroughB) == 0 {
		t.Errorf("two-hop path missing through-facts: %+v", paths[0])
	}
}

func TestHubSkipEmptiesConnectButKeepsHalfConnectivity(t *testing.T) {
	b := NewBuilder(20000)
	b.AddEntity(10001, "Qa", nil, nil, "")
	b.AddEntity(10002, "Qb", nil, nil, "")
	b.AddEntity(10003, "Q5", nil, nil, "") // the hub
	b.AddPredicate(1, "P1", nil, nil, "")

	// Manufacture one fact naming Q5 as object via a long run of qualifier
	// pairs, pushing its freq_sum above HubSkipThreshold so the 2-hop
	// connect enumeration skips it as a hub.
	padEntity := Code(20000)
	b.AddEntity(padEntity, "Qpad", nil, nil, "")
	hubInflation := make(Fact, 0, 2+2*(HubSkipThreshold+1))
	hubInflation = append(hubInflation, padEntity, 1, 10003)
	for i := 0; i < HubSkipThreshold+1; i++ {
		hubInflation = append(hubInflation, 1, 10003)
	}
	b.AddFact(hubInflation)
	b.AddFact(Fact{10001, 1, 10003})
	b.AddFact(Fact{10002, 1, 10003})
	idx := b.Build()

	if freq := idx.freqSum(10003); freq <= HubSkipThreshold {
		t.Fatalf("test setup failed: freq_sum(hub) = %d, want > %d", freq, HubSkipThreshold)
	}
	if got := idx.Connectivity(10001, 10002); got != 0.5 {
		t.Errorf("Connectivity(a,b) = %v, want 0.5 even when connect is hub-skipped", got)
	}
	if paths := idx.Connect(10001, 10002); len(paths) != 0 {
		t.Errorf("Connect(a,b) = %v, want empty due to hub skip", paths)
	}
}

func TestConnectivitySelfPair(t *testing.T) {
	b := NewBuilder(20000)
	b.AddEntity(10001, "Qloop", nil, nil, "")
	b.AddEntity(10002, "Qplain", nil, nil, "")
	b.AddPredicate(1, "P1", nil, nil, "")
	// Qloop appears as both subject and object of the same fact.
	b.AddFact(Fact{10001, 1, 10001})
	b.AddFact(Fact{10001, 1, 10002})
	idx := b.Build()

	if got := idx.Connectivity(10001, 10001); got != 1.0 {
		t.Errorf("Connectivity(Qloop, Qloop) = %v, want 1.0 (appears twice in one fact)", got)
	}
	if got := idx.Connectivity(10002, 10002); got != 0.0 {
		t.Errorf("Connectivity(Qplain, Qplain) = %v, want 0.0 (never appears twice in a fact)", got)
	}
}

func TestConnectivityUnrelatedIsZero(t *testing.T) {
	b := NewBuilder(20000)
	b.AddEntity(10001, "Qa", nil, nil, "")
	b.AddEntity(10002, "Qb", nil, nil, "")
	idx := b.Build()
	if got := idx.Connectivity(10001, 10002); got != 0.0 {
		t.Errorf("Connectivity(unrelated) = %v, want 0.0", got)
	}
}
