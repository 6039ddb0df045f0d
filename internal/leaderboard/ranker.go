// Package leaderboard ranks persisted results and renders them for display.
package leaderboard

import (
	"cmp"
	"context"
	"fmt"
	"slices"

	"github.com/at-ishikawa/trivia/internal/result"
)

type Ranker struct {
	reader result.Reader
}

func NewRanker(reader result.Reader) *Ranker {
	return &Ranker{
		reader: reader,
	}
}

// Top returns at most n results, best first. The underlying store is never modified.
func (r *Ranker) Top(ctx context.Context, n int) ([]result.Result, error) {
	if n <= 0 {
		return []result.Result{}, nil
	}

	results, err := r.reader.ReadAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("reader.ReadAll() > %w", err)
	}

	ranked := Rank(results)
	if len(ranked) > n {
		ranked = ranked[:n]
	}
	return ranked, nil
}

// Rank orders results by score descending, then by seconds ascending.
// Results that tie on both keep their original order.
func Rank(results []result.Result) []result.Result {
	ranked := slices.Clone(results)
	if ranked == nil {
		ranked = []result.Result{}
	}
	slices.SortStableFunc(ranked, func(a, b result.Result) int {
		if c := cmp.Compare(b.Score, a.Score); c != 0 {
			return c
		}
		return cmp.Compare(a.Seconds, b.Seconds)
	})
	return ranked
}
