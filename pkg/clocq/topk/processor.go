package topk

import (
	"context"

	"github.com/PhilippChr/CLOCQ/pkg/clocq/candidates"
	"github.com/PhilippChr/CLOCQ/pkg/clocq/embedding"
	"github.com/PhilippChr/CLOCQ/pkg/clocq/graph"
	"github.com/PhilippChr/CLOCQ/pkg/clocq/kbindex"
)

// Weights are the four linear-combination weights of spec.md §4.6's
// scorer: S(x) = h_match·s_m + h_rel·s_r + h_conn·s_c + h_coh·s_h. Shape
// adapted from the teacher's rank.Weights (same weighted-sum idea,
// renamed to the spec's four signals).
type Weights struct {
	Match        float64
	Relevance    float64
	Connectivity float64
	Coherence    float64
}

// K selects how many items a word contributes to the context tuple: a
// fixed positive count, or AutoK (spec.md §4.6's entropy-driven "AUTO").
type K struct {
	Fixed int
	Auto  bool
}

// Result is one selected item for a question word, with its aggregate
// score and per-signal breakdown — adapted from the teacher's
// rank.ScoreBreakdown (same weighted-sum-with-breakdown shape, renamed
// fields).
type Result struct {
	Item  kbindex.Code
	Score float64
	Match float64
	Rel   float64
	Conn  float64
	Coh   float64
}

// Processor runs the Top-k selection for one question word (spec.md
// §4.6).
type Processor struct {
	WordIndex    int
	WordCount    int
	Candidates   *candidates.List
	Connectivity *graph.Graph
	Coherence    *graph.Graph
	Relevance    *embedding.Relevance
	OtherWords   []embedding.WordVector
	Weights      Weights
	D            int
	K            K
	Index        *kbindex.Index
}

// queues holds the four built score queues for one run; Run neither
// retains nor returns them.
type queues struct {
	match, rel, conn, coh []Entry
}

// buildQueues performs the single d-step scan over the Candidate List
// spec.md §4.6 describes, producing all four queues in one pass.
func (p *Processor) buildQueues(ctx context.Context) (queues, error) {
	if err := p.Candidates.Initialize(ctx); err != nil {
		return queues{}, err
	}

	var q queues
	for i := 0; i < p.D; i++ {
		item, matchScore, ok := p.Candidates.Scan()
		if !ok {
			break
		}
		q.match = append(q.match, Entry{Item: item, Score: round4(matchScore)})

		relScore := p.Relevance.QuestionRelevance(item, p.OtherWords)
		q.rel = append(q.rel, Entry{Item: item, Score: round4(relScore)})

		connScore, _ := p.Connectivity.Score(item, p.WordIndex, p.WordCount)
		q.conn = append(q.conn, Entry{Item: item, Score: round4(connScore)})

		cohScore, _ := p.Coherence.Score(item, p.WordIndex, p.WordCount)
		q.coh = append(q.coh, Entry{Item: item, Score: round4(cohScore)})
	}

	sortDescending(q.rel)
	sortDescending(q.conn)
	sortDescending(q.coh)
	return q, nil
}

func (p *Processor) resolveK(q queues) int {
	if !p.K.Auto {
		if p.K.Fixed < 0 {
			return 0
		}
		return p.K.Fixed
	}
	items := make([]kbindex.Code, len(q.match))
	for i, e := range q.match {
		items[i] = e.Item
	}
	return AutoK(p.Index, items)
}

// Run builds the four queues and performs Fagin-style threshold
// aggregation (spec.md §4.6), returning up to k Results sorted by score
// descending.
func (p *Processor) Run(ctx context.Context) ([]Result, error) {
	q, err := p.buildQueues(ctx)
	if err != nil {
		return nil, err
	}

	k := p.resolveK(q)
	if k <= 0 || len(q.match) == 0 {
		return nil, nil
	}

	return p.aggregate(q, k), nil
}

// aggregate implements the lock-step Fagin Threshold Algorithm scan of
// spec.md §4.6.
func (p *Processor) aggregate(q queues, k int) []Result {
	seen := make(map[kbindex.Code]struct{})
	var top []Result

	ceilM, ceilR, ceilC, ceilH := 0.0, 0.0, 0.0, 0.0
	maxLen := len(q.match)
	for _, entries := range [][]Entry{q.rel, q.conn, q.coh} {
		if len(entries) > maxLen {
			maxLen = len(entries)
		}
	}

	score := func(item kbindex.Code) Result {
		m := lookupScore(q.match, item)
		r := lookupScore(q.rel, item)
		c := lookupScore(q.conn, item)
		h := lookupScore(q.coh, item)
		total := p.Weights.Match*m + p.Weights.Relevance*r + p.Weights.Connectivity*c + p.Weights.Coherence*h
		return Result{Item: item, Score: total, Match: m, Rel: r, Conn: c, Coh: h}
	}

	insert := func(res Result) {
		pos := 0
		for pos < len(top) && top[pos].Score >= res.Score {
			pos++
		}
		top = append(top, Result{})
		copy(top[pos+1:], top[pos:])
		top[pos] = res
		if len(top) > k {
			top = top[:k]
		}
	}

	kthBest := func() (float64, bool) {
		if len(top) < k {
			return 0, false
		}
		return top[len(top)-1].Score, true
	}

	visit := func(entries []Entry, pos int, ceiling *float64) {
		if pos >= len(entries) {
			return
		}
		*ceiling = entries[pos].Score
		item := entries[pos].Item
		if _, done := seen[item]; done {
			return
		}
		seen[item] = struct{}{}
		insert(score(item))
	}

	for pos := 0; pos < maxLen; pos++ {
		visit(q.match, pos, &ceilM)
		visit(q.rel, pos, &ceilR)
		visit(q.conn, pos, &ceilC)
		visit(q.coh, pos, &ceilH)

		threshold := p.Weights.Match*ceilM + p.Weights.Relevance*ceilR + p.Weights.Connectivity*ceilC + p.Weights.Coherence*ceilH
		if best, ok := kthBest(); ok && threshold <= best {
			break
		}
	}

	return top
}
