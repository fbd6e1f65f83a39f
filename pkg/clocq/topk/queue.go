// Package topk implements the per-question-word Top-k Processor of
// spec.md §4.6: four ranked score queues and Fagin-style threshold
// aggregation over them.
package topk

import (
	"math"
	"sort"

	"github.com/PhilippChr/CLOCQ/pkg/clocq/kbindex"
)

// Entry is one (item, score) pair in a ranked queue.
type Entry struct {
	Item  kbindex.Code
	Score float64
}

// round4 rounds to 4 decimal places, per spec.md §4.6's "scores are
// rounded to 4 decimal places to ensure deterministic tie-breaking".
func round4(f float64) float64 {
	return math.Round(f*10000) / 10000
}

// sortDescending sorts entries by score descending, preserving relative
// order of equal scores (stable, so ties break by original insertion
// order as spec.md §4.6 requires).
func sortDescending(entries []Entry) {
	sort.SliceStable(entries, func(i, j int) bool { return entries[i].Score > entries[j].Score })
}

// lookupScore linearly scans entries for item's score — queues are short
// (≤ d), so spec.md §4.6 specifies a linear scan rather than an index.
func lookupScore(entries []Entry, item kbindex.Code) float64 {
	for _, e := range entries {
		if e.Item == item {
			return e.Score
		}
	}
	return 0
}
