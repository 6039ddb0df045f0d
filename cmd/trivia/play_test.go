package main

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	mock_result "github.com/at-ishikawa/trivia/internal/mocks/result"
	"github.com/at-ishikawa/trivia/internal/question"
	"github.com/at-ishikawa/trivia/internal/quiz"
	"github.com/at-ishikawa/trivia/internal/result"
	"github.com/at-ishikawa/trivia/internal/testutil"
)

func TestNewPlayCommand(t *testing.T) {
	cmd := newPlayCommand()

	assert.Equal(t, "play", cmd.Use)
	assert.NotNil(t, cmd.RunE)

	tests := []struct {
		name      string
		shorthand string
		defValue  string
	}{
		{name: "category", shorthand: "c", defValue: "general"},
		{name: "limit", shorthand: "l", defValue: "10"},
		{name: "difficulty", shorthand: "d", defValue: ""},
		{name: "hints", shorthand: "H", defValue: "false"},
		{name: "leaderboard", shorthand: "b", defValue: "10"},
		{name: "seed", defValue: "0"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			flag := cmd.Flags().Lookup(tt.name)
			require.NotNil(t, flag)
			assert.Equal(t, tt.shorthand, flag.Shorthand)
			assert.Equal(t, tt.defValue, flag.DefValue)
		})
	}
}

func TestNewPlayCommand_RunE_configError(t *testing.T) {
	setConfigFile(t, setupBrokenConfigFile(t))

	cmd := newPlayCommand()
	cmd.SetArgs([]string{})
	err := cmd.Execute()
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "load config")
}

func TestRunPlay(t *testing.T) {
	tests := []struct {
		name       string
		files      map[string][]question.Question
		opts       playOptions
		input      string
		setupStore func(store *mock_result.MockStore, saved *result.Result)
		wantOutput []string
		wantErr    error
		wantErrMsg string
		wantSaved  *result.Result
	}{
		{
			name:  "plays and saves the result",
			files: map[string][]question.Question{"science": testutil.NewQuestions("science", "easy", 3)},
			opts:  playOptions{category: "science", limit: 10, seed: 1},
			input: "Ana\n1\n2\n1\n",
			setupStore: func(store *mock_result.MockStore, saved *result.Result) {
				store.EXPECT().Append(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, r result.Result) error {
					*saved = r
					return nil
				})
			},
			wantOutput: []string{"Question 3/3", "Score: 2/3", "Your result has been saved to the leaderboard!"},
			wantSaved:  &result.Result{Player: "Ana", Score: 2, Total: 3, StreakMax: 1, Category: "science"},
		},
		{
			name: "limit and difficulty narrow the questions",
			files: map[string][]question.Question{
				"mixed": append(testutil.NewQuestions("mixed", "easy", 4), question.Question{
					ID: "hard-1", Category: "mixed", Difficulty: "hard", Prompt: "Hard?", Choices: []string{"right", "wrong"}, AnswerIndex: 0,
				}),
			},
			opts:  playOptions{category: "mixed", limit: 2, difficulty: DifficultyEasy, seed: 7, hints: true},
			input: "Bo\nh\n1\n1\n",
			setupStore: func(store *mock_result.MockStore, saved *result.Result) {
				store.EXPECT().Append(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, r result.Result) error {
					*saved = r
					return nil
				})
			},
			wantOutput: []string{"Question 2/2", "Hint: pick the first one", "Hints Used: 1"},
			wantSaved:  &result.Result{Player: "Bo", Score: 1.5, Total: 2, StreakMax: 2, Category: "mixed", HintsUsed: 1},
		},
		{
			name: "custom difficulty label",
			files: map[string][]question.Question{
				"mixed": append(testutil.NewQuestions("mixed", "easy", 2), question.Question{
					ID: "expert-1", Category: "mixed", Difficulty: "Expert", Prompt: "Expert?", Choices: []string{"right", "wrong"}, AnswerIndex: 0,
				}),
			},
			opts:  playOptions{category: "mixed", limit: 10, difficulty: Difficulty("expert")},
			input: "Cy\n1\n",
			setupStore: func(store *mock_result.MockStore, saved *result.Result) {
				store.EXPECT().Append(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, r result.Result) error {
					*saved = r
					return nil
				})
			},
			wantOutput: []string{"Question 1/1", "Expert?"},
			wantSaved:  &result.Result{Player: "Cy", Score: 1, Total: 1, StreakMax: 1, Category: "mixed"},
		},
		{
			name:       "unknown category lists the available ones",
			files:      map[string][]question.Question{"science": testutil.NewQuestions("science", "easy", 1), "history": testutil.NewQuestions("history", "easy", 1)},
			opts:       playOptions{category: "sports", limit: 10},
			wantOutput: []string{"Error: no questions found for category: sports", "Available categories: history, science"},
			wantErr:    question.ErrCategoryNotFound,
		},
		{
			name:       "nothing matches the difficulty",
			files:      map[string][]question.Question{"science": testutil.NewQuestions("science", "easy", 3)},
			opts:       playOptions{category: "science", limit: 10, difficulty: DifficultyHard},
			wantOutput: []string{"No questions found matching your criteria."},
			wantErr:    errNoQuestionsSelected,
		},
		{
			name:       "interrupted session is not saved",
			files:      map[string][]question.Question{"science": testutil.NewQuestions("science", "easy", 3)},
			opts:       playOptions{category: "science", limit: 10},
			input:      "Ana\n1\n",
			wantOutput: []string{"Your result was not saved."},
			wantErr:    quiz.ErrAborted,
		},
		{
			name:  "storage failure is reported",
			files: map[string][]question.Question{"science": testutil.NewQuestions("science", "easy", 1)},
			opts:  playOptions{category: "science", limit: 10},
			input: "Ana\n1\n",
			setupStore: func(store *mock_result.MockStore, saved *result.Result) {
				store.EXPECT().Append(gomock.Any(), gomock.Any()).Return(errors.New("disk full"))
			},
			wantOutput: []string{"QUIZ COMPLETE!"},
			wantErrMsg: "disk full",
		},
		{
			name: "leaderboard flag shows the top results without playing",
			opts: playOptions{showLeaderboard: true, leaderboardSize: 2},
			setupStore: func(store *mock_result.MockStore, saved *result.Result) {
				store.EXPECT().ReadAll(gomock.Any()).Return([]result.Result{
					{Player: "C", Score: 5, Total: 10, Seconds: 30, Category: "general"},
					{Player: "B", Score: 8, Total: 10, Seconds: 45, Category: "general"},
					{Player: "A", Score: 8, Total: 10, Seconds: 40, Category: "general"},
				}, nil)
			},
			wantOutput: []string{"1      A ", "2      B "},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tmpDir := t.TempDir()
			cfg := mustLoadConfig(t, testutil.SetupTestConfig(t, tmpDir))
			for category, questions := range tt.files {
				testutil.WriteQuestionFile(t, tmpDir, category, questions)
			}

			ctrl := gomock.NewController(t)
			store := mock_result.NewMockStore(ctrl)
			var saved result.Result
			if tt.setupStore != nil {
				tt.setupStore(store, &saved)
			}

			var output bytes.Buffer
			err := runPlay(context.Background(), cfg, store, tt.opts, strings.NewReader(tt.input), &output)
			for _, want := range tt.wantOutput {
				assert.Contains(t, output.String(), want)
			}
			if tt.opts.showLeaderboard {
				assert.NotContains(t, output.String(), "C ")
			}

			switch {
			case tt.wantErr != nil:
				assert.ErrorIs(t, err, tt.wantErr)
			case tt.wantErrMsg != "":
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErrMsg)
			default:
				require.NoError(t, err)
			}

			if tt.wantSaved != nil {
				assert.Equal(t, tt.wantSaved.Player, saved.Player)
				assert.Equal(t, tt.wantSaved.Score, saved.Score)
				assert.Equal(t, tt.wantSaved.Total, saved.Total)
				assert.Equal(t, tt.wantSaved.StreakMax, saved.StreakMax)
				assert.Equal(t, tt.wantSaved.Category, saved.Category)
				assert.Equal(t, tt.wantSaved.HintsUsed, saved.HintsUsed)
				assert.NoError(t, result.Validate(saved))
			}
		})
	}
}

func TestNewPlayCommand_FileStore(t *testing.T) {
	tmpDir := t.TempDir()
	setConfigFile(t, testutil.SetupTestConfig(t, tmpDir))
	testutil.WriteQuestionFile(t, tmpDir, "general", testutil.NewQuestions("general", "medium", 2))

	play := func(input string, args ...string) (string, error) {
		cmd := newPlayCommand()
		var output bytes.Buffer
		cmd.SetIn(strings.NewReader(input))
		cmd.SetOut(&output)
		cmd.SetArgs(append([]string{}, args...))
		err := cmd.Execute()
		return output.String(), err
	}

	_, err := play("Ana\n1\n1\n")
	require.NoError(t, err)
	_, err = play("Bo\n2\n1\n", "--seed", "3")
	require.NoError(t, err)

	got, err := result.NewFileStore(testutil.LeaderboardPath(tmpDir)).ReadAll(context.Background())
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "Ana", got[0].Player)
	assert.Equal(t, 2.0, got[0].Score)
	assert.Equal(t, "general", got[0].Category)
	assert.Equal(t, "Bo", got[1].Player)

	output, err := play("", "-b", "1")
	require.NoError(t, err)
	assert.Contains(t, output, "Ana")
	assert.NotContains(t, output, "Bo")

	output, err = play("", "--category", "missing")
	assert.ErrorIs(t, err, question.ErrCategoryNotFound)
	assert.Contains(t, output, "Available categories: general")
}
