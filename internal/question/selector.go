package question

import (
	"math/rand/v2"
	"strings"
	"time"
)

// NewRand returns a random source for Select. A zero seed picks one from the clock.
func NewRand(seed uint64) *rand.Rand {
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	return rand.New(rand.NewPCG(seed, seed>>1))
}

// Select filters questions by difficulty (case-insensitive, empty matches all),
// drops repeated IDs, and draws a uniform sample of limit questions when more remain.
// When limit questions or fewer remain they are returned in input order.
// The input slice is never modified.
func Select(questions []Question, limit int, difficulty string, rng *rand.Rand) []Question {
	if limit < 0 {
		limit = 0
	}

	pool := make([]Question, 0, len(questions))
	seen := make(map[string]struct{}, len(questions))
	for _, q := range questions {
		if difficulty != "" && !strings.EqualFold(q.Difficulty, difficulty) {
			continue
		}
		if _, ok := seen[q.ID]; ok {
			continue
		}
		seen[q.ID] = struct{}{}
		pool = append(pool, q)
	}
	if len(pool) <= limit {
		return pool
	}

	if rng == nil {
		rng = NewRand(0)
	}
	// Partial Fisher-Yates: the first limit slots end up as a sample without replacement.
	for i := 0; i < limit; i++ {
		j := i + rng.IntN(len(pool)-i)
		pool[i], pool[j] = pool[j], pool[i]
	}
	return pool[:limit:limit]
}
