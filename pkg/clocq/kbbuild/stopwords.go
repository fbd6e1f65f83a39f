package kbbuild

import (
	"math"

	"github.com/PhilippChr/CLOCQ/pkg/clocq/kbindex"
	"github.com/PhilippChr/CLOCQ/pkg/clocq/mention"
)

// LabelStats holds the label-corpus statistics AutoStopwords evaluates a
// candidate stopword against. Trimmed from the teacher's stoplist.Stats
// to document-frequency and a Shannon-entropy split, dropping PMIMax and
// CatEntropy entirely: the KB has neither a token-cooccurrence corpus nor
// document categories to compute them over. KindEntropy instead measures
// how evenly a token's occurrences split across entity labels vs
// predicate labels -- a token appearing almost exclusively in one kind is
// informative; one split evenly across both is filler.
type LabelStats struct {
	Token       string
	DF          int64
	DFPercent   float64
	KindEntropy float64
}

// StopwordThresholds controls AutoStopwords' candidate selection.
type StopwordThresholds struct {
	DFPercent   float64
	KindEntropy float64
}

// DefaultStopwordThresholds mirrors the teacher's bootstrap thresholds
// (stoplist.DefaultThresholds' BootstrapDFPercent/BootstrapEntropy,
// used when no PMI data is available -- here, always).
func DefaultStopwordThresholds() StopwordThresholds {
	return StopwordThresholds{DFPercent: 60.0, KindEntropy: 0.9}
}

// CollectLabelStats tokenizes every staged entity and predicate label
// (via mention.Tokenizer with no stop-filtering, so the raw label
// vocabulary is visible) and returns per-token document-frequency and
// kind-entropy statistics -- the label-corpus analogue of the teacher's
// per-document-corpus token stats.
func CollectLabelStats(staging StagingStore, labels LabelSource) ([]LabelStats, error) {
	if labels == nil {
		return nil, nil
	}
	tok := mention.NewTokenizer(nil)

	entities, err := staging.Entities()
	if err != nil {
		return nil, err
	}
	predicates, err := staging.Predicates()
	if err != nil {
		return nil, err
	}

	entityDF := make(map[string]int64)
	predicateDF := make(map[string]int64)

	scan := func(ids map[string]kbindex.Code, df map[string]int64) {
		for externalID := range ids {
			ls, aliases, _, ok := labels.Label(externalID)
			if !ok {
				continue
			}
			seen := make(map[string]struct{})
			for _, text := range append(append([]string{}, ls...), aliases...) {
				for _, word := range tok.Tokenize(text) {
					if _, dup := seen[word]; dup {
						continue
					}
					seen[word] = struct{}{}
					df[word]++
				}
			}
		}
	}
	scan(entities, entityDF)
	scan(predicates, predicateDF)

	total := int64(len(entities) + len(predicates))
	tokens := make(map[string]struct{})
	for t := range entityDF {
		tokens[t] = struct{}{}
	}
	for t := range predicateDF {
		tokens[t] = struct{}{}
	}

	stats := make([]LabelStats, 0, len(tokens))
	for t := range tokens {
		df := entityDF[t] + predicateDF[t]
		var dfPercent float64
		if total > 0 {
			dfPercent = 100 * float64(df) / float64(total)
		}
		stats = append(stats, LabelStats{
			Token:       t,
			DF:          df,
			DFPercent:   dfPercent,
			KindEntropy: kindEntropy(entityDF[t], predicateDF[t]),
		})
	}
	return stats, nil
}

// kindEntropy computes the base-2 Shannon entropy of a token's DF split
// between entity and predicate labels (0 = entirely one kind, 1 = evenly
// split between both).
func kindEntropy(entityDF, predicateDF int64) float64 {
	total := entityDF + predicateDF
	if total == 0 {
		return 0
	}
	var entropy float64
	for _, count := range []int64{entityDF, predicateDF} {
		if count == 0 {
			continue
		}
		p := float64(count) / float64(total)
		entropy -= p * math.Log2(p)
	}
	return entropy
}

// AutoStopwords returns every token whose label-corpus document
// frequency or kind-entropy reaches or exceeds thresholds -- candidates for the
// Mention Extractor's supplementary stopword list (spec.md §4.2), beyond
// the original's single static list (StringLibrary.py).
func AutoStopwords(stats []LabelStats, thresholds StopwordThresholds) []string {
	if thresholds == (StopwordThresholds{}) {
		thresholds = DefaultStopwordThresholds()
	}
	var out []string
	for _, s := range stats {
		if s.DFPercent >= thresholds.DFPercent || s.KindEntropy >= thresholds.KindEntropy {
			out = append(out, s.Token)
		}
	}
	return out
}
