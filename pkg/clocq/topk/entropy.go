package topk

import (
	"math"

	"github.com/PhilippChr/CLOCQ/pkg/clocq/kbindex"
)

// AutoK chooses k for the AUTO setting (spec.md §4.6): over the
// candidates' subject+object frequencies f_x, let p_x = f_x / Σf, and
// k = ⌊H₂(p)⌋ + 1 using base-2 Shannon entropy. If Σf = 0, k = 0 — the
// word yields no context item.
func AutoK(index *kbindex.Index, items []kbindex.Code) int {
	if len(items) == 0 {
		return 0
	}

	freqs := make([]int64, len(items))
	var total int64
	for i, x := range items {
		subj, obj := index.Frequency(x)
		freqs[i] = subj + obj
		total += freqs[i]
	}
	if total == 0 {
		return 0
	}

	var entropy float64
	for _, f := range freqs {
		if f == 0 {
			continue
		}
		p := float64(f) / float64(total)
		entropy -= p * math.Log2(p)
	}
	return int(math.Floor(entropy)) + 1
}
