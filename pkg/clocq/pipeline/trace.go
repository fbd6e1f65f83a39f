package pipeline

import (
	"crypto/rand"
	"sync"

	"github.com/oklog/ulid/v2"
)

// idGenerator produces monotonically increasing trace IDs for
// ContextResult. Adapted from the teacher's cards.Builder, trimmed to
// just the ULID generator -- the rest of cards.Card (bullets, source
// summarization, score-breakdown averaging) has no analogue here; a
// context tuple is not a document summary.
type idGenerator struct {
	mu      sync.Mutex
	entropy *ulid.MonotonicEntropy
}

func newIDGenerator() *idGenerator {
	return &idGenerator{entropy: ulid.Monotonic(rand.Reader, 0)}
}

// New returns a fresh trace ID, safe for concurrent callers.
func (g *idGenerator) New() string {
	g.mu.Lock()
	defer g.mu.Unlock()
	return ulid.MustNew(ulid.Now(), g.entropy).String()
}
