package embedding

import (
	"fmt"
	"math"
	"strings"

	"github.com/PhilippChr/CLOCQ/pkg/clocq/cachekit"
	"github.com/PhilippChr/CLOCQ/pkg/clocq/kbindex"
)

// PageNameResolver maps an entity item to the display name of its mapped
// encyclopedia page, when one exists. Like Model, this is an external
// collaborator interface; CLOCQ-go has no concrete implementation bundled
// (building one requires an encyclopedia-page dump out of scope here).
type PageNameResolver interface {
	PageName(item kbindex.Code) (string, bool)
}

// StopFilter reports whether a word should be excluded from averaging
// (spec.md §4.4: "the same averaging with stop-word removal").
type StopFilter interface {
	IsStop(word string) bool
}

// Relevance implements the embedding operations of spec.md §4.4:
// embed_item, cosine (memoised), question_relevance, word_vectors.
type Relevance struct {
	Index     *kbindex.Index
	Model     Model
	PageNames PageNameResolver
	Stopwords StopFilter
	norms     *cachekit.Cache[float64]
}

// New builds a Relevance over index and model. pageNames and stopwords
// may be nil.
func New(index *kbindex.Index, model Model, pageNames PageNameResolver, stopwords StopFilter) (*Relevance, error) {
	norms, err := cachekit.New[float64](1 << 16)
	if err != nil {
		return nil, err
	}
	return &Relevance{Index: index, Model: model, PageNames: pageNames, Stopwords: stopwords, norms: norms}, nil
}

// EmbedItem returns item's vector: for entities, a mapped encyclopedia
// page's entity vector when available, else the averaged word-vectors of
// its display label; for predicates, the averaged word-vectors of its
// label (spec.md §4.4).
func (r *Relevance) EmbedItem(item kbindex.Code) (Vector, bool) {
	if item.IsEntity() && r.PageNames != nil {
		if page, ok := r.PageNames.PageName(item); ok {
			if v, ok := r.Model.EntityVector(page); ok {
				return v, true
			}
		}
	}
	return r.EmbedString(r.Index.Label(item))
}

// EmbedString embeds an arbitrary string by averaging the word-vectors of
// its whitespace-separated tokens, with stop-word removal (spec.md §4.4).
// Used both for predicate/fallback-entity labels and for raw question
// words.
func (r *Relevance) EmbedString(text string) (Vector, bool) {
	var sum Vector
	var n int
	for _, word := range strings.Fields(strings.ToLower(text)) {
		if r.Stopwords != nil && r.Stopwords.IsStop(word) {
			continue
		}
		vec, ok := r.Model.WordVector(word)
		if !ok {
			continue
		}
		if sum == nil {
			sum = make(Vector, len(vec))
		}
		for i, c := range vec {
			sum[i] += c
		}
		n++
	}
	if n == 0 {
		return nil, false
	}
	for i := range sum {
		sum[i] /= float64(n)
	}
	return sum, true
}

// Cosine returns the cosine similarity between u and v, memoising each
// vector's norm under its string key (keyU/keyV) so repeated comparisons
// against the same item or word avoid recomputing ‖·‖ (spec.md §4.4).
// Either vector being nil or zero-norm yields 0, never NaN.
func (r *Relevance) Cosine(u, v Vector, keyU, keyV string) float64 {
	if u == nil || v == nil {
		return 0
	}
	normU := r.norm(keyU, u)
	normV := r.norm(keyV, v)
	if normU == 0 || normV == 0 {
		return 0
	}

	n := len(u)
	if len(v) < n {
		n = len(v)
	}
	var dot float64
	for i := 0; i < n; i++ {
		dot += u[i] * v[i]
	}
	return dot / (normU * normV)
}

func (r *Relevance) norm(key string, v Vector) float64 {
	if key != "" {
		if cached, ok := r.norms.Get(key); ok {
			return cached
		}
	}
	var sumSq float64
	for _, c := range v {
		sumSq += c * c
	}
	norm := math.Sqrt(sumSq)
	if key != "" {
		r.norms.Put(key, norm)
	}
	return norm
}

// WordVector pairs a question word with its embedding.
type WordVector struct {
	Word   string
	Vector Vector
}

// WordVectors filters words whose embedding is unavailable and pairs each
// survivor with its vector (spec.md §4.4).
func (r *Relevance) WordVectors(words []string) []WordVector {
	out := make([]WordVector, 0, len(words))
	for _, w := range words {
		if vec, ok := r.EmbedString(w); ok {
			out = append(out, WordVector{Word: w, Vector: vec})
		}
	}
	return out
}

// QuestionRelevance returns the mean cosine similarity between item's
// vector and each of the other question words' vectors (spec.md §4.4).
// Missing vectors contribute 0, never NaN, to the aggregate — achieved
// here by WordVectors already having filtered them out, and by treating
// a totally embed-less item as contributing a 0 relevance score.
func (r *Relevance) QuestionRelevance(item kbindex.Code, otherWordVectors []WordVector) float64 {
	itemVec, ok := r.EmbedItem(item)
	if !ok || len(otherWordVectors) == 0 {
		return 0
	}
	itemKey := fmt.Sprintf("item:%d", item)

	var sum float64
	for _, wv := range otherWordVectors {
		sum += r.Cosine(itemVec, wv.Vector, itemKey, "word:"+wv.Word)
	}
	return sum / float64(len(otherWordVectors))
}
