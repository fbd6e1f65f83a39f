// Package pipeline implements the Pipeline Coordinator of spec.md §4.7:
// the seven-step orchestration that turns a question into a context
// tuple and search space, wiring together mention extraction, the
// per-word Candidate Lists and Top-k Processors, and the shared
// Connectivity/Coherence graphs. Adapted from the teacher's korel.go
// facade (Options-constructed struct, one exported entry-point method
// assembling a structured response) generalised from document search to
// CLOCQ's knowledge-base context resolution.
package pipeline

import (
	"context"
	"fmt"
	"sync"

	"github.com/PhilippChr/CLOCQ/pkg/clocq/cachekit"
	"github.com/PhilippChr/CLOCQ/pkg/clocq/candidates"
	"github.com/PhilippChr/CLOCQ/pkg/clocq/config"
	"github.com/PhilippChr/CLOCQ/pkg/clocq/embedding"
	"github.com/PhilippChr/CLOCQ/pkg/clocq/graph"
	"github.com/PhilippChr/CLOCQ/pkg/clocq/kbindex"
	"github.com/PhilippChr/CLOCQ/pkg/clocq/mention"
	"github.com/PhilippChr/CLOCQ/pkg/clocq/topk"
)

const defaultCandidateCacheSize = 4096

// CoordinatorOptions configures a Coordinator's collaborators. Index,
// Search, and Model are required; everything else falls back to a
// reasonable default.
type CoordinatorOptions struct {
	Index  *kbindex.Index
	Search candidates.LexicalSearch
	Model  embedding.Model

	Detector      mention.Detector
	Stopwords     *mention.StopwordSet
	VariantGroups map[string][]string
	PageNames     embedding.PageNameResolver

	CandidateCacheSize int

	// Parameters is merged over config.Default() (never assigned
	// wholesale -- spec.md §9's resolved Open Question).
	Parameters config.RawOptions
}

// Coordinator is the Pipeline Coordinator of spec.md §4.7.
type Coordinator struct {
	index     *kbindex.Index
	search    candidates.LexicalSearch
	cache     *cachekit.Cache[[]string]
	expander  *candidates.VariantExpander
	extractor *mention.Extractor
	relevance *embedding.Relevance
	options   config.Options
	ids       *idGenerator
}

// New builds a Coordinator from opts.
func New(opts CoordinatorOptions) (*Coordinator, error) {
	if opts.Index == nil {
		return nil, fmt.Errorf("pipeline: Index is required")
	}

	stops := opts.Stopwords
	if stops == nil {
		stops = mention.NewStopwordSet(mention.DefaultStopwords)
	}

	cacheSize := opts.CandidateCacheSize
	if cacheSize <= 0 {
		cacheSize = defaultCandidateCacheSize
	}
	cache, err := cachekit.New[[]string](cacheSize)
	if err != nil {
		return nil, fmt.Errorf("pipeline: candidate cache: %w", err)
	}

	var expander *candidates.VariantExpander
	if len(opts.VariantGroups) > 0 {
		expander = candidates.NewVariantExpander(opts.VariantGroups)
	}

	relevance, err := embedding.New(opts.Index, opts.Model, opts.PageNames, stops)
	if err != nil {
		return nil, fmt.Errorf("pipeline: relevance: %w", err)
	}

	return &Coordinator{
		index:     opts.Index,
		search:    opts.Search,
		cache:     cache,
		expander:  expander,
		extractor: mention.NewExtractor(opts.Detector, stops),
		relevance: relevance,
		options:   config.Merge(config.Default(), opts.Parameters),
		ids:       newIDGenerator(),
	}, nil
}

// Options returns the Coordinator's resolved parameter set.
func (c *Coordinator) Options() config.Options {
	return c.options
}

// Run executes the seven-step pipeline of spec.md §4.7 for question,
// returning the assembled context tuple and search space. p, when <= 0,
// falls back to c.Options().PSetting.
func (c *Coordinator) Run(ctx context.Context, question string, p int, includeLabels, includeType bool) (ContextResult, error) {
	result := ContextResult{TraceID: c.ids.New()}
	if p <= 0 {
		p = c.options.PSetting
	}

	// Step 1: extract mentions.
	words := c.extractor.Extract(ctx, question)
	result.Words = words
	m := len(words)
	if m == 0 {
		return result, nil
	}

	// Step 2: one Candidate List per word, each initialised (up to d
	// items).
	lists := make([]*candidates.List, m)
	for i, w := range words {
		lists[i] = candidates.New(c.search, c.index, c.cache, c.expander, w, c.options.D)
		if err := lists[i].Initialize(ctx); err != nil {
			return result, fmt.Errorf("pipeline: initialise candidates for %q: %w", w, err)
		}
	}

	// Step 3: seed both graphs with every candidate, annotated by word
	// index.
	connectivity := graph.New()
	coherence := graph.New()
	for i, list := range lists {
		for _, item := range list.Items() {
			connectivity.AddNode(item, i)
			coherence.AddNode(item, i)
		}
	}

	// Step 4: populate both graphs pairwise over every unordered word
	// pair, honouring cancellation (spec.md §5).
	result.Partial = c.populateGraphs(ctx, lists, connectivity, coherence)

	// Step 5: per-word queues + threshold aggregation.
	wordVecs := c.embedWords(words)
	perWord := make([]WordContext, m)
	if c.options.Parallel {
		var wg sync.WaitGroup
		wg.Add(m)
		for i := range words {
			go func(i int) {
				defer wg.Done()
				perWord[i] = c.runWord(ctx, i, m, words[i], lists[i], connectivity, coherence, wordVecs)
			}(i)
		}
		wg.Wait()
	} else {
		for i := range words {
			perWord[i] = c.runWord(ctx, i, m, words[i], lists[i], connectivity, coherence, wordVecs)
		}
	}
	result.PerWord = perWord

	// Step 6: assemble the context tuple, word order preserved, items
	// may repeat.
	var tuple []kbindex.Code
	for _, wc := range perWord {
		for _, r := range wc.Results {
			tuple = append(tuple, r.Item)
		}
	}
	result.KBItemTuple = tuple

	// Step 7: extract the search space.
	result.SearchSpace = c.index.ExtractSearchSpace(tuple, p, includeLabels, includeType)

	return result, nil
}

// populateGraphs fills in the pairwise connectivity/coherence edges of
// spec.md §4.5 for every unordered word pair (i,j), i<j. Returns true if
// ctx was cancelled before every pair was processed -- the graphs built
// so far remain monotonically correct (spec.md §5, §9).
func (c *Coordinator) populateGraphs(ctx context.Context, lists []*candidates.List, connectivity, coherence *graph.Graph) (partial bool) {
	for i := 0; i < len(lists); i++ {
		for j := i + 1; j < len(lists); j++ {
			if err := ctx.Err(); err != nil {
				return true
			}
			for _, x := range lists[i].Items() {
				for _, y := range lists[j].Items() {
					// x == y is legitimate here: the same KB item can be a
					// candidate for two different question words, and the
					// resulting self-loop edge (e.g. coherence cosine(x,x)
					// = 1.0) feeds Score's endpoint-index union for both
					// words (spec.md §4.5).
					connectivity.AddEdge(x, y, c.index.Connectivity(x, y))
					coherence.AddEdge(x, y, c.itemCosine(x, y))
				}
			}
		}
	}
	return ctx.Err() != nil
}

// itemCosine embeds x and y (memoised per item by the Relevance's norm
// cache) and returns their cosine similarity.
func (c *Coordinator) itemCosine(x, y kbindex.Code) float64 {
	vx, ok := c.relevance.EmbedItem(x)
	if !ok {
		return 0
	}
	vy, ok := c.relevance.EmbedItem(y)
	if !ok {
		return 0
	}
	return c.relevance.Cosine(vx, vy, itemCacheKey(x), itemCacheKey(y))
}

func itemCacheKey(item kbindex.Code) string {
	return fmt.Sprintf("item:%d", item)
}

// embedWords returns, positionally aligned to words, each word's
// embedding (nil where unavailable).
func (c *Coordinator) embedWords(words []string) []embedding.WordVector {
	out := make([]embedding.WordVector, len(words))
	for i, w := range words {
		if v, ok := c.relevance.EmbedString(w); ok {
			out[i] = embedding.WordVector{Word: w, Vector: v}
		}
	}
	return out
}

// otherWords returns every entry of wordVecs except the one at skip,
// dropping positions whose embedding was unavailable.
func otherWords(wordVecs []embedding.WordVector, skip int) []embedding.WordVector {
	out := make([]embedding.WordVector, 0, len(wordVecs))
	for i, wv := range wordVecs {
		if i == skip || wv.Vector == nil {
			continue
		}
		out = append(out, wv)
	}
	return out
}

func (c *Coordinator) runWord(ctx context.Context, i, m int, word string, list *candidates.List, connectivity, coherence *graph.Graph, wordVecs []embedding.WordVector) WordContext {
	proc := &topk.Processor{
		WordIndex:    i,
		WordCount:    m,
		Candidates:   list,
		Connectivity: connectivity,
		Coherence:    coherence,
		Relevance:    c.relevance,
		OtherWords:   otherWords(wordVecs, i),
		Weights:      c.options.Weights(),
		D:            c.options.D,
		K:            c.options.K,
		Index:        c.index,
	}
	results, err := proc.Run(ctx)
	if err != nil {
		return WordContext{Word: word}
	}
	return WordContext{Word: word, Results: results}
}
