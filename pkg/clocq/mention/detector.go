package mention

import "strings"

// Span is one detected multi-word entity phrase, anchored to its byte
// offsets in the original text so the extractor can excise it in place.
type Span struct {
	Text  string
	Start int
	End   int
}

// Detector finds entity-phrase spans in raw question text. It is the
// external mention-detection hook spec.md §4.2 treats as out of scope;
// CLOCQ-go defines the interface here and ships one concrete, trivial
// implementation (DictionaryDetector) to exercise the contract.
type Detector interface {
	Detect(text string) ([]Span, error)
}

// DictionaryDetector is a greedy longest-match lookup over a fixed phrase
// dictionary. Adapted from the teacher's ingest.MultiTokenParser (which
// resolves multi-word phrases against a known-phrase set by scanning
// decreasing window sizes); this is the default Detector wired in when no
// real NER/mention-detection service is configured.
type DictionaryDetector struct {
	phrases  map[string]struct{}
	maxWords int
}

// NewDictionaryDetector builds a detector over phrases (case-insensitive).
func NewDictionaryDetector(phrases []string) *DictionaryDetector {
	d := &DictionaryDetector{phrases: make(map[string]struct{}, len(phrases))}
	for _, p := range phrases {
		lower := strings.ToLower(strings.TrimSpace(p))
		if lower == "" {
			continue
		}
		d.phrases[lower] = struct{}{}
		if n := len(strings.Fields(lower)); n > d.maxWords {
			d.maxWords = n
		}
	}
	return d
}

// Detect scans text word-by-word, trying the longest window first at each
// position, and returns every matched phrase span.
func (d *DictionaryDetector) Detect(text string) ([]Span, error) {
	if d.maxWords == 0 {
		return nil, nil
	}

	words, offsets := wordOffsets(text)
	var spans []Span
	i := 0
	for i < len(words) {
		matched := false
		for window := d.maxWords; window >= 1; window-- {
			if i+window > len(words) {
				continue
			}
			candidate := strings.ToLower(strings.Join(words[i:i+window], " "))
			if _, ok := d.phrases[candidate]; ok {
				start := offsets[i]
				end := offsets[i+window-1] + len(words[i+window-1])
				spans = append(spans, Span{Text: text[start:end], Start: start, End: end})
				i += window
				matched = true
				break
			}
		}
		if !matched {
			i++
		}
	}
	return spans, nil
}

// wordOffsets splits text on whitespace while tracking each word's byte
// offset, so detected spans can be excised from the original text.
func wordOffsets(text string) (words []string, offsets []int) {
	inWord := false
	start := 0
	for i, r := range text {
		if r == ' ' || r == '\t' || r == '\n' || r == '\r' {
			if inWord {
				words = append(words, text[start:i])
				offsets = append(offsets, start)
				inWord = false
			}
			continue
		}
		if !inWord {
			start = i
			inWord = true
		}
	}
	if inWord {
		words = append(words, text[start:])
		offsets = append(offsets, start)
	}
	return words, offsets
}
