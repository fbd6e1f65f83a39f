package topk

import "github.com/PhilippChr/CLOCQ/pkg/clocq/kbindex"

// PredictionError compares what the match queue alone "predicted" the
// top-k context items would be against what the full weighted
// aggregation actually selected. Adapted from the teacher's
// signals.PredictionError (Jaccard distance between a predicted and an
// actual token set); here the sets are context items rather than
// tokens, and "predicted" comes from the match-only ranking rather than
// PMI neighbors. Large error means relevance/connectivity/coherence
// moved the selection away from plain lexical match -- an opt-in
// transparency signal, not a required pipeline output.
type PredictionError struct {
	// Score is the Jaccard distance between the predicted and actual
	// item sets. Range 0..1; 0 means the two rankings picked exactly
	// the same items.
	Score float64

	Predicted     []kbindex.Code
	Actual        []kbindex.Code
	OnlyPredicted []kbindex.Code
	OnlyActual    []kbindex.Code
	Overlap       []kbindex.Code
}

// ComputePredictionError builds the match-only top-k prediction from
// matchQueue (already sorted descending by Scan's 1/(offset+1) scores)
// and compares it against actual, the aggregated Run() result.
func ComputePredictionError(matchQueue []Entry, k int, actual []Result) PredictionError {
	if k <= 0 || len(matchQueue) == 0 {
		return PredictionError{}
	}
	if k > len(matchQueue) {
		k = len(matchQueue)
	}

	predictedSet := make(map[kbindex.Code]struct{}, k)
	var predicted []kbindex.Code
	for _, e := range matchQueue[:k] {
		if _, dup := predictedSet[e.Item]; dup {
			continue
		}
		predictedSet[e.Item] = struct{}{}
		predicted = append(predicted, e.Item)
	}

	actualSet := make(map[kbindex.Code]struct{}, len(actual))
	var actualItems []kbindex.Code
	for _, r := range actual {
		if _, dup := actualSet[r.Item]; dup {
			continue
		}
		actualSet[r.Item] = struct{}{}
		actualItems = append(actualItems, r.Item)
	}

	var onlyPredicted, onlyActual, overlap []kbindex.Code
	for _, item := range predicted {
		if _, inActual := actualSet[item]; inActual {
			overlap = append(overlap, item)
		} else {
			onlyPredicted = append(onlyPredicted, item)
		}
	}
	for _, item := range actualItems {
		if _, inPredicted := predictedSet[item]; !inPredicted {
			onlyActual = append(onlyActual, item)
		}
	}

	unionSize := len(predictedSet) + len(actualSet) - len(overlap)
	var score float64
	if unionSize > 0 {
		score = 1.0 - float64(len(overlap))/float64(unionSize)
	}

	return PredictionError{
		Score:         score,
		Predicted:     predicted,
		Actual:        actualItems,
		OnlyPredicted: onlyPredicted,
		OnlyActual:    onlyActual,
		Overlap:       overlap,
	}
}
