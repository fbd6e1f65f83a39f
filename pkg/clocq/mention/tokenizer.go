package mention

import "strings"

// punctuation is the fixed set of characters deleted outright before
// tokenization (spec.md §4.2 step 3). The apostrophe is handled
// separately in Tokenize: it is replaced with a space, not deleted, so a
// possessive like "writer's" splits into the tokens "writer" and "s"
// rather than merging into "writers".
const punctuation = ".,;:!?\"()[]{}<>"

// Tokenizer strips punctuation, lowercases, drops the orphaned "s"
// artifact a split-off possessive apostrophe leaves behind, and removes
// stop-words by whitespace-bounded matching, normalising runs of
// whitespace. Adapted from the teacher's ingest.Tokenizer char-class
// scanner, trimmed to CLOCQ's simpler whitespace-token model (the
// teacher's lexicon-normalization step has no role here; mention
// detection, not synonym folding, is the concern).
type Tokenizer struct {
	stops *StopwordSet
}

// NewTokenizer builds a Tokenizer backed by stops.
func NewTokenizer(stops *StopwordSet) *Tokenizer {
	return &Tokenizer{stops: stops}
}

// Tokenize strips the text down to its residual tokens per spec.md §4.2
// step 3: punctuation removed, lowercased, the orphaned possessive "s"
// artifact dropped, stop-words dropped, whitespace runs normalised.
// Ordinary plural nouns ("books") are left untouched -- only the
// standalone "s" token a split possessive leaves behind is removed.
func (t *Tokenizer) Tokenize(text string) []string {
	cleaned := strings.Map(func(r rune) rune {
		if r == '\'' {
			return ' '
		}
		if strings.ContainsRune(punctuation, r) {
			return -1
		}
		return r
	}, text)
	cleaned = strings.ToLower(cleaned)

	fields := strings.Fields(cleaned)
	out := make([]string, 0, len(fields))
	for _, f := range fields {
		f = collapsePossessivePlural(f)
		if f == "" {
			continue
		}
		if t.stops != nil && t.stops.IsStop(f) {
			continue
		}
		out = append(out, f)
	}
	return out
}

// collapsePossessivePlural drops a token that is nothing but the orphaned
// "s" artifact left when a possessive apostrophe splits off as its own
// token (spec.md §4.2 step 3). Every other token, including ordinary
// plural nouns, passes through unchanged.
func collapsePossessivePlural(tok string) string {
	if tok == "s" {
		return ""
	}
	return tok
}
