package leaderboard

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	mock_result "github.com/at-ishikawa/trivia/internal/mocks/result"
	"github.com/at-ishikawa/trivia/internal/result"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func entry(player string, score float64, total int, seconds float64) result.Result {
	return result.Result{
		Player:    player,
		Score:     score,
		Total:     total,
		StreakMax: 1,
		Seconds:   seconds,
		Category:  "general",
		Timestamp: "2025-01-01T10:00:00.000000Z",
	}
}

func TestRanker_Top(t *testing.T) {
	a := entry("A", 8, 10, 40)
	b := entry("B", 8, 10, 45)
	c := entry("C", 5, 10, 30)

	tests := []struct {
		name    string
		stored  []result.Result
		n       int
		want    []result.Result
		noReads bool
	}{
		{
			name:   "score descending then time ascending",
			stored: []result.Result{c, b, a},
			n:      10,
			want:   []result.Result{a, b, c},
		},
		{
			name:   "truncates to n",
			stored: []result.Result{c, b, a},
			n:      2,
			want:   []result.Result{a, b},
		},
		{
			name:   "ties keep append order",
			stored: []result.Result{entry("first", 3, 5, 10), entry("second", 3, 5, 10), entry("third", 3, 5, 10)},
			n:      3,
			want:   []result.Result{entry("first", 3, 5, 10), entry("second", 3, 5, 10), entry("third", 3, 5, 10)},
		},
		{
			name:   "hinted half points rank between whole scores",
			stored: []result.Result{entry("whole", 2, 3, 10), entry("half", 2.5, 3, 50), entry("three", 3, 3, 90)},
			n:      3,
			want:   []result.Result{entry("three", 3, 3, 90), entry("half", 2.5, 3, 50), entry("whole", 2, 3, 10)},
		},
		{
			name:   "empty store",
			stored: nil,
			n:      5,
			want:   []result.Result{},
		},
		{
			name:    "zero n returns nothing",
			stored:  []result.Result{a},
			n:       0,
			want:    []result.Result{},
			noReads: true,
		},
		{
			name:    "negative n returns nothing",
			stored:  []result.Result{a},
			n:       -3,
			want:    []result.Result{},
			noReads: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			reader := mock_result.NewMockReader(ctrl)
			if !tt.noReads {
				reader.EXPECT().ReadAll(gomock.Any()).Return(tt.stored, nil).Times(2)
			}
			ranker := NewRanker(reader)

			got, err := ranker.Top(context.Background(), tt.n)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)

			again, err := ranker.Top(context.Background(), tt.n)
			require.NoError(t, err)
			assert.Equal(t, got, again)
		})
	}
}

func TestRanker_Top_ReadError(t *testing.T) {
	ctrl := gomock.NewController(t)
	reader := mock_result.NewMockReader(ctrl)
	wantErr := errors.New("connection refused")
	reader.EXPECT().ReadAll(gomock.Any()).Return(nil, wantErr)

	_, err := NewRanker(reader).Top(context.Background(), 3)
	assert.ErrorIs(t, err, wantErr)
}

func TestRanker_Top_FileStore(t *testing.T) {
	dir := t.TempDir()

	t.Run("missing leaderboard file", func(t *testing.T) {
		ranker := NewRanker(result.NewFileStore(filepath.Join(dir, "missing.jsonl")))
		got, err := ranker.Top(context.Background(), 10)
		require.NoError(t, err)
		assert.Empty(t, got)
	})

	t.Run("ranks appended results without changing the file", func(t *testing.T) {
		store := result.NewFileStore(filepath.Join(dir, "leaderboard.jsonl"))
		for _, r := range []result.Result{entry("C", 5, 10, 30), entry("B", 8, 10, 45), entry("A", 8, 10, 40)} {
			require.NoError(t, store.Append(context.Background(), r))
		}
		before, err := store.ReadAll(context.Background())
		require.NoError(t, err)

		got, err := NewRanker(store).Top(context.Background(), 2)
		require.NoError(t, err)
		assert.Equal(t, []string{"A", "B"}, []string{got[0].Player, got[1].Player})

		after, err := store.ReadAll(context.Background())
		require.NoError(t, err)
		assert.Equal(t, before, after)
	})
}

func TestRank_DoesNotModifyInput(t *testing.T) {
	input := []result.Result{entry("low", 1, 5, 10), entry("high", 4, 5, 10)}
	got := Rank(input)
	assert.Equal(t, "high", got[0].Player)
	assert.Equal(t, "low", input[0].Player)
}
