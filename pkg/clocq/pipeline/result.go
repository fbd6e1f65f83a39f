package pipeline

import (
	"github.com/PhilippChr/CLOCQ/pkg/clocq/kbindex"
	"github.com/PhilippChr/CLOCQ/pkg/clocq/topk"
)

// WordContext is one question word's extracted top-k items (spec.md
// §4.7 step 5-6).
type WordContext struct {
	Word    string
	Results []topk.Result
}

// ContextResult is the Pipeline Coordinator's output: the context tuple
// and search space of spec.md §4.7 step 6-7, plus the trace/partial
// metadata spec.md §5, §9 calls for.
type ContextResult struct {
	TraceID string

	// Words is the ordered question-word list step 1 extracted.
	Words []string

	// PerWord holds each word's selected top-k items, in word order.
	PerWord []WordContext

	// KBItemTuple is the left-to-right concatenation of PerWord's items
	// (spec.md §4.7 step 6); items may repeat across words.
	KBItemTuple []kbindex.Code

	// SearchSpace is the union of 1-hop neighborhoods of KBItemTuple,
	// pruned to p and decorated per the caller's include flags (spec.md
	// §4.7 step 7).
	SearchSpace []kbindex.NeighborFact

	// Partial is true when a cancelled context cut graph population
	// short (spec.md §5): the result is still monotonically correct,
	// just computed over an incompletely populated pair of graphs.
	Partial bool
}
