package mention

import (
	"context"
	"strings"

	"github.com/PhilippChr/CLOCQ/pkg/clocq/retryutil"
)

// Extractor implements the four-step contract of spec.md §4.2, turning raw
// question text into an ordered list of question words.
type Extractor struct {
	Detector  Detector
	Stopwords *StopwordSet
	Tokenizer *Tokenizer
	Retry     retryutil.Config
}

// NewExtractor builds an Extractor with the default retry config.
func NewExtractor(detector Detector, stops *StopwordSet) *Extractor {
	return &Extractor{
		Detector:  detector,
		Stopwords: stops,
		Tokenizer: NewTokenizer(stops),
		Retry:     retryutil.DefaultConfig(),
	}
}

// Extract splits text into ordered question words: detected entity
// phrases (excised from the text) followed by the residual tokens, per
// spec.md §4.2's four numbered steps.
//
// Detector errors are transient (§4.2, §7 class 3): Extract retries the
// detector call with bounded back-off and falls back to the token-only
// path (no detected spans) on exhaustion.
func (e *Extractor) Extract(ctx context.Context, text string) []string {
	spans := e.detectSpans(ctx, text)

	var kept []Span
	residualText := text
	for _, sp := range spans {
		if e.Stopwords != nil && e.Stopwords.IsStop(sp.Text) {
			continue
		}
		kept = append(kept, sp)
	}
	residualText = excise(text, kept)

	residualTokens := e.Tokenizer.Tokenize(residualText)

	words := make([]string, 0, len(kept)+len(residualTokens))
	for _, sp := range kept {
		words = append(words, sp.Text)
	}
	words = append(words, residualTokens...)
	return words
}

func (e *Extractor) detectSpans(ctx context.Context, text string) []Span {
	if e.Detector == nil {
		return nil
	}
	spans, ok := retryutil.Do(ctx, e.Retry, func(ctx context.Context) ([]Span, error) {
		return e.Detector.Detect(text)
	})
	if !ok {
		return nil
	}
	return spans
}

// excise removes every span from text, leaving whitespace in place
// (spec.md §4.2 step 2), so word boundaries around the removed phrase are
// preserved for the subsequent tokenizer pass.
func excise(text string, spans []Span) string {
	if len(spans) == 0 {
		return text
	}
	var b strings.Builder
	b.Grow(len(text))
	last := 0
	for _, sp := range spans {
		if sp.Start < last {
			continue
		}
		b.WriteString(text[last:sp.Start])
		b.WriteString(strings.Repeat(" ", sp.End-sp.Start))
		last = sp.End
	}
	b.WriteString(text[last:])
	return b.String()
}
