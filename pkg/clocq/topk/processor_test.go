package topk

import (
	"context"
	"testing"

	"github.com/PhilippChr/CLOCQ/pkg/clocq/candidates"
	"github.com/PhilippChr/CLOCQ/pkg/clocq/embedding"
	"github.com/PhilippChr/CLOCQ/pkg/clocq/graph"
	"github.com/PhilippChr/CLOCQ/pkg/clocq/kbindex"
)

type stubSearch struct {
	results map[string][]string
}

func (s stubSearch) Search(ctx context.Context, term string, limit int) ([]string, error) {
	return s.results[term], nil
}

type stubModel struct {
	words map[string]embedding.Vector
}

func (m stubModel) WordVector(w string) (embedding.Vector, bool) { v, ok := m.words[w]; return v, ok }
func (m stubModel) EntityVector(string) (embedding.Vector, bool) { return nil, false }

func buildProcessorFixture(t *testing.T) (*candidates.List, *embedding.Relevance, *graph.Graph, *graph.Graph, *kbindex.Index) {
	t.Helper()
	b := kbindex.NewBuilder(20000)
	b.AddEntity(10001, "Q47774", []string{"Douglas Adams"}, nil, "")
	b.AddEntity(10002, "Q142", []string{"France"}, nil, "")
	b.AddPredicate(17, "P17", []string{"country"}, nil, "")
	b.AddFact(kbindex.Fact{10001, 17, 10002})
	idx := b.Build()

	search := stubSearch{results: map[string][]string{
		"adams": {"Q47774", "Q142"},
	}}
	list := candidates.New(search, idx, nil, nil, "adams", 2)

	model := stubModel{words: map[string]embedding.Vector{}}
	rel, err := embedding.New(idx, model, nil, nil)
	if err != nil {
		t.Fatalf("embedding.New: %v", err)
	}

	return list, rel, graph.New(), graph.New(), idx
}

func TestProcessorRunRanksByMatchWhenOnlyMatchWeighted(t *testing.T) {
	list, rel, conn, coh, idx := buildProcessorFixture(t)
	p := &Processor{
		WordIndex:    0,
		WordCount:    1,
		Candidates:   list,
		Connectivity: conn,
		Coherence:    coh,
		Relevance:    rel,
		Weights:      Weights{Match: 1},
		D:            2,
		K:            K{Fixed: 2},
		Index:        idx,
	}

	results, err := p.Run(context.Background())
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if len(results) != 2 {
		t.Fatalf("Run() returned %d results, want 2", len(results))
	}
	if results[0].Item != 10001 {
		t.Errorf("results[0].Item = %v, want 10001 (highest match score)", results[0].Item)
	}
	if results[0].Score < results[1].Score {
		t.Errorf("results not sorted descending by score: %v", results)
	}
}

func TestProcessorRunKZeroYieldsEmpty(t *testing.T) {
	list, rel, conn, coh, idx := buildProcessorFixture(t)
	p := &Processor{
		Candidates:   list,
		Connectivity: conn,
		Coherence:    coh,
		Relevance:    rel,
		Weights:      Weights{Match: 1},
		D:            2,
		K:            K{Fixed: 0},
		Index:        idx,
		WordCount:    1,
	}
	results, err := p.Run(context.Background())
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if len(results) != 0 {
		t.Errorf("Run() with k=0 = %v, want empty", results)
	}
}

func TestProcessorRunEmptyCandidateListYieldsEmpty(t *testing.T) {
	b := kbindex.NewBuilder(20000)
	idx := b.Build()
	search := stubSearch{results: map[string][]string{}}
	list := candidates.New(search, idx, nil, nil, "nothing", 2)
	model := stubModel{words: map[string]embedding.Vector{}}
	rel, _ := embedding.New(idx, model, nil, nil)

	p := &Processor{
		Candidates:   list,
		Connectivity: graph.New(),
		Coherence:    graph.New(),
		Relevance:    rel,
		Weights:      Weights{Match: 1},
		D:            2,
		K:            K{Fixed: 2},
		Index:        idx,
		WordCount:    1,
	}
	results, err := p.Run(context.Background())
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if len(results) != 0 {
		t.Errorf("Run() with empty candidates = %v, want empty", results)
	}
}

func TestProcessorRunAutoKUsesEntropy(t *testing.T) {
	list, rel, conn, coh, idx := buildProcessorFixture(t)
	p := &Processor{
		Candidates:   list,
		Connectivity: conn,
		Coherence:    coh,
		Relevance:    rel,
		Weights:      Weights{Match: 1},
		D:            2,
		K:            K{Auto: true},
		Index:        idx,
		WordCount:    1,
	}
	results, err := p.Run(context.Background())
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if len(results) == 0 {
		t.Error("Run() with AUTO-k over nonzero-frequency candidates returned no results")
	}
}

func TestComputePredictionErrorZeroWhenSetsMatch(t *testing.T) {
	matchQueue := []Entry{{Item: 10001, Score: 1.0}, {Item: 10002, Score: 0.5}}
	actual := []Result{{Item: 10001, Score: 1.0}, {Item: 10002, Score: 0.5}}
	pe := ComputePredictionError(matchQueue, 2, actual)
	if pe.Score != 0 {
		t.Errorf("PredictionError.Score = %v, want 0 for identical sets", pe.Score)
	}
}

func TestComputePredictionErrorNonZeroWhenSetsDiffer(t *testing.T) {
	matchQueue := []Entry{{Item: 10001, Score: 1.0}, {Item: 10002, Score: 0.5}}
	actual := []Result{{Item: 10003, Score: 1.0}}
	pe := ComputePredictionError(matchQueue, 2, actual)
	if pe.Score != 1.0 {
		t.Errorf("PredictionError.Score = %v, want 1.0 for disjoint sets", pe.Score)
	}
	if len(pe.OnlyPredicted) != 2 || len(pe.OnlyActual) != 1 {
		t.Errorf("OnlyPredicted/OnlyActual = %v/%v, want 2/1", pe.OnlyPredicted, pe.OnlyActual)
	}
}
