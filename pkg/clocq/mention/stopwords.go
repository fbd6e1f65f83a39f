// Package mention splits a raw question into an ordered list of question
// words: entity phrases detected by an external hook, plus residual
// tokens with stop-words removed (spec.md §4.2).
package mention

import "strings"

// StopwordSet holds the words excluded from the residual-token path and
// from spans returned by a Detector. Adapted from the teacher's
// stoplist.Manager, trimmed to membership only — the self-tuning side
// (document-frequency/PMI-driven suggestions) lives in kbbuild.AutoStopwords
// instead, since that is an offline, corpus-wide concern.
type StopwordSet struct {
	stops map[string]struct{}
}

// NewStopwordSet builds a set from an initial word list, lower-cased.
func NewStopwordSet(initial []string) *StopwordSet {
	s := &StopwordSet{stops: make(map[string]struct{}, len(initial))}
	for _, w := range initial {
		s.Add(w)
	}
	return s
}

// IsStop reports whether word (case-insensitively) is a stop-word.
func (s *StopwordSet) IsStop(word string) bool {
	_, ok := s.stops[strings.ToLower(word)]
	return ok
}

// Add registers word as a stop-word.
func (s *StopwordSet) Add(word string) {
	s.stops[strings.ToLower(word)] = struct{}{}
}

// Remove un-registers word.
func (s *StopwordSet) Remove(word string) {
	delete(s.stops, strings.ToLower(word))
}

// All returns every registered stop-word, in no particular order.
func (s *StopwordSet) All() []string {
	out := make([]string, 0, len(s.stops))
	for w := range s.stops {
		out = append(out, w)
	}
	return out
}

// DefaultStopwords is a small built-in English stop-word list covering the
// question words CLOCQ questions most commonly contain. Real deployments
// load a larger list (optionally supplemented by kbbuild.AutoStopwords)
// through NewStopwordSet.
var DefaultStopwords = []string{
	"a", "an", "the", "is", "are", "was", "were", "be", "been", "being",
	"of", "in", "on", "at", "by", "for", "with", "about", "against",
	"between", "into", "through", "during", "before", "after", "above",
	"below", "to", "from", "up", "down", "and", "or", "but", "if", "then",
	"what", "which", "who", "whom", "whose", "where", "when", "why", "how",
	"did", "does", "do", "has", "have", "had", "will", "would", "can",
	"could", "should", "that", "this", "these", "those", "it", "its",
}
