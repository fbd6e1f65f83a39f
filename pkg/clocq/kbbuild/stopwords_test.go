package kbbuild

import (
	"testing"

	"github.com/PhilippChr/CLOCQ/pkg/clocq/kbbuild/memstage"
)

func TestCollectLabelStatsCountsSharedWords(t *testing.T) {
	staging := memstage.New()
	staging.RegisterEntity("Q1")
	staging.RegisterEntity("Q2")
	staging.RegisterPredicate("P1")

	labels := stubLabels{labels: map[string][]string{
		"Q1": {"famous writer"},
		"Q2": {"famous actor"},
		"P1": {"occupation of"},
	}}

	stats, err := CollectLabelStats(staging, labels)
	if err != nil {
		t.Fatalf("CollectLabelStats: %v", err)
	}

	var famous *LabelStats
	for i := range stats {
		if stats[i].Token == "famous" {
			famous = &stats[i]
		}
	}
	if famous == nil {
		t.Fatal("\"famous\" not found in label stats")
	}
	if famous.DF != 2 {
		t.Errorf("DF(famous) = %d, want 2 (appears in Q1 and Q2 labels)", famous.DF)
	}
	if famous.KindEntropy != 0 {
		t.Errorf("KindEntropy(famous) = %v, want 0 (only ever appears in entity labels)", famous.KindEntropy)
	}
}

func TestCollectLabelStatsNilLabelSourceReturnsNil(t *testing.T) {
	staging := memstage.New()
	stats, err := CollectLabelStats(staging, nil)
	if err != nil {
		t.Fatalf("CollectLabelStats: %v", err)
	}
	if stats != nil {
		t.Errorf("CollectLabelStats(nil labels) = %v, want nil", stats)
	}
}

func TestAutoStopwordsSelectsHighDFTokens(t *testing.T) {
	stats := []LabelStats{
		{Token: "the", DFPercent: 95, KindEntropy: 1.0},
		{Token: "quasar", DFPercent: 1, KindEntropy: 0},
	}
	out := AutoStopwords(stats, DefaultStopwordThresholds())
	if len(out) != 1 || out[0] != "the" {
		t.Errorf("AutoStopwords() = %v, want [\"the\"]", out)
	}
}

func TestKindEntropyEvenSplitIsOne(t *testing.T) {
	if e := kindEntropy(5, 5); e != 1.0 {
		t.Errorf("kindEntropy(5,5) = %v, want 1.0 (even split)", e)
	}
}

func TestKindEntropyAllOneKindIsZero(t *testing.T) {
	if e := kindEntropy(5, 0); e != 0 {
		t.Errorf("kindEntropy(5,0) = %v, want 0", e)
	}
}
