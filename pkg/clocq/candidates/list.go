package candidates

import (
	"context"
	"strconv"
	"sync"

	"github.com/PhilippChr/CLOCQ/pkg/clocq/cachekit"
	"github.com/PhilippChr/CLOCQ/pkg/clocq/kbindex"
	"github.com/PhilippChr/CLOCQ/pkg/clocq/retryutil"
)

// List is the per-question-word Candidate List of spec.md §3, §4.3: up to
// d entity/predicate codes from the lexical backend, filtered to items
// known to the Index, exposed as an offset-scanning priority queue
// already sorted by the backend's own ranking. The fetch/filter/dedup/
// truncate shape is adapted from the teacher's query.Retriever.Retrieve
// (exact match + expansion + merge + limit), repurposed as exact-lexical-
// match + Index-known filtering + truncation to d.
type List struct {
	search   LexicalSearch
	index    *kbindex.Index
	expander *VariantExpander
	cache    *cachekit.Cache[[]string]
	retry    retryutil.Config

	term string
	d    int

	mu          sync.Mutex
	initialized bool
	items       []kbindex.Code
	offset      int
}

// New builds a Candidate List for term, bounded to d items. cache and
// expander may be nil.
func New(search LexicalSearch, index *kbindex.Index, cache *cachekit.Cache[[]string], expander *VariantExpander, term string, d int) *List {
	return &List{
		search:   search,
		index:    index,
		expander: expander,
		cache:    cache,
		retry:    retryutil.DefaultConfig(),
		term:     term,
		d:        d,
	}
}

// Initialize fetches the top 2·d lexical-search results (across every
// expanded variant of term), drops items the Index does not know, and
// truncates to d (spec.md §4.3). Idempotent: a second call is a no-op
// (spec.md §8 "initialize() on an already-initialised Candidate List is a
// no-op").
func (l *List) Initialize(ctx context.Context) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.initialized {
		return nil
	}
	l.initialized = true

	raw := l.fetch(ctx)

	seen := make(map[kbindex.Code]struct{}, len(raw))
	for _, id := range raw {
		if len(l.items) >= l.d {
			break
		}
		code, ok := l.index.CodeOf(id)
		if !ok || !l.index.IsKnown(code) {
			continue
		}
		if _, dup := seen[code]; dup {
			continue
		}
		seen[code] = struct{}{}
		l.items = append(l.items, code)
	}
	return nil
}

// fetch queries the lexical backend for term and every expansion the
// VariantExpander knows about, merging results in first-seen order, via
// a cache keyed by the raw term and bounded 2·d limit.
func (l *List) fetch(ctx context.Context) []string {
	limit := 2 * l.d
	cacheKey := "lex:" + l.term + ":" + strconv.Itoa(limit)
	if l.cache != nil {
		if cached, ok := l.cache.Get(cacheKey); ok {
			return cached
		}
	}

	terms := []string{l.term}
	if l.expander != nil {
		terms = l.expander.Expand(l.term)
	}

	seen := make(map[string]struct{})
	var merged []string
	for _, t := range terms {
		results, ok := retryutil.Do(ctx, l.retry, func(ctx context.Context) ([]string, error) {
			return l.search.Search(ctx, t, limit)
		})
		if !ok {
			continue
		}
		for _, r := range results {
			if _, dup := seen[r]; dup {
				continue
			}
			seen[r] = struct{}{}
			merged = append(merged, r)
			if len(merged) >= limit {
				break
			}
		}
		if len(merged) >= limit {
			break
		}
	}

	if l.cache != nil {
		l.cache.Put(cacheKey, merged)
	}
	return merged
}

// Scan pops the head of the remaining list and returns it with its
// matching score 1/(offset+1) (spec.md §3, §4.3). The second return is
// false once the list is exhausted.
func (l *List) Scan() (kbindex.Code, float64, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.offset >= len(l.items) {
		return 0, 0, false
	}
	item := l.items[l.offset]
	score := 1.0 / float64(l.offset+1)
	l.offset++
	return item, score, true
}

// Items returns the remaining (not-yet-scanned) list, in order.
func (l *List) Items() []kbindex.Code {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]kbindex.Code, len(l.items)-l.offset)
	copy(out, l.items[l.offset:])
	return out
}

// Len returns the total number of candidates (post-filter, pre-scan).
func (l *List) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.items)
}
