// Package candidates implements the per-question-word Candidate List of
// spec.md §3, §4.3: a lexical-search-backed, Index-filtered, cache-backed
// ranked list that the Top-k Processor scans for its match queue.
package candidates

import "context"

// LexicalSearch is the external keyword-to-candidate-IDs service spec.md
// §1 names as out of scope for the core ("a keyword-to-candidate-IDs
// service with caching"). Search returns up to limit external item ids
// (entity or predicate ids) ranked by the backend's own relevance order.
type LexicalSearch interface {
	Search(ctx context.Context, term string, limit int) ([]string, error)
}
