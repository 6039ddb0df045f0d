// Package testutil provides shared test helpers for creating config files and question fixtures.
package testutil

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/at-ishikawa/trivia/internal/question"
	"github.com/stretchr/testify/require"
)

// SetupTestConfig creates a minimal config file and the questions directory for testing.
// Questions are not paced, and the leaderboard lives under tmpDir.
// Returns the path to the generated config file.
func SetupTestConfig(t *testing.T, tmpDir string) string {
	t.Helper()

	require.NoError(t, os.MkdirAll(QuestionsDirectory(tmpDir), 0755))

	configContent := fmt.Sprintf(`data:
  questions_directory: %s
  leaderboard_path: %s
quiz:
  pause_ms: 0
opentdb:
  cache_directory: %s
`,
		QuestionsDirectory(tmpDir),
		LeaderboardPath(tmpDir),
		filepath.Join(tmpDir, "cache"),
	)

	cfgPath := filepath.Join(tmpDir, "config.yml")
	require.NoError(t, os.WriteFile(cfgPath, []byte(configContent), 0644))
	return cfgPath
}

// AppendConfig adds raw YAML to a config file created by SetupTestConfig.
func AppendConfig(t *testing.T, cfgPath string, content string) {
	t.Helper()
	file, err := os.OpenFile(cfgPath, os.O_APPEND|os.O_WRONLY, 0644)
	require.NoError(t, err)
	defer func() {
		_ = file.Close()
	}()
	_, err = file.WriteString(content)
	require.NoError(t, err)
}

func QuestionsDirectory(tmpDir string) string {
	return filepath.Join(tmpDir, "data")
}

func LeaderboardPath(tmpDir string) string {
	return filepath.Join(tmpDir, "leaderboard.jsonl")
}

// WriteQuestionFile writes questions as the JSON file of a category and returns its path.
func WriteQuestionFile(t *testing.T, tmpDir string, category string, questions []question.Question) string {
	t.Helper()
	contents, err := json.MarshalIndent(questions, "", "  ")
	require.NoError(t, err)

	path := filepath.Join(QuestionsDirectory(tmpDir), "questions_"+category+".json")
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, contents, 0644))
	return path
}

// NewQuestions returns n valid questions of a category. The first choice is always correct.
func NewQuestions(category string, difficulty string, n int) []question.Question {
	questions := make([]question.Question, 0, n)
	for i := range n {
		questions = append(questions, question.Question{
			ID:          fmt.Sprintf("%s-%d", category, i+1),
			Category:    category,
			Difficulty:  difficulty,
			Prompt:      fmt.Sprintf("%s question %d?", category, i+1),
			Choices:     []string{"right", "wrong", "also wrong"},
			AnswerIndex: 0,
			Hint:        "pick the first one",
		})
	}
	return questions
}
