package opentdb

import (
	"testing"

	"github.com/at-ishikawa/trivia/internal/question"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToQuestions(t *testing.T) {
	remote := []RemoteQuestion{
		{
			Type:             "multiple",
			Difficulty:       "Medium",
			Question:         "Who wrote &quot;Hamlet&quot;?",
			CorrectAnswer:    "Shakespeare",
			IncorrectAnswers: []string{"Marlowe", "Jonson", "Dickens &amp; Co"},
		},
		{
			Type:             "boolean",
			Difficulty:       "easy",
			Question:         "The sun is a star.",
			CorrectAnswer:    "False",
			IncorrectAnswers: []string{"True"},
		},
	}

	got := ToQuestions(remote, "literature", question.NewRand(7))
	require.Len(t, got, 2)

	multiple := got[0]
	assert.Equal(t, "literature-1", multiple.ID)
	assert.Equal(t, "literature", multiple.Category)
	assert.Equal(t, "medium", multiple.Difficulty)
	assert.Equal(t, `Who wrote "Hamlet"?`, multiple.Prompt)
	assert.Len(t, multiple.Choices, 4)
	assert.Equal(t, "Shakespeare", multiple.CorrectChoice())
	assert.ElementsMatch(t, []string{"Shakespeare", "Marlowe", "Jonson", "Dickens & Co"}, multiple.Choices)

	boolean := got[1]
	assert.Equal(t, "literature-2", boolean.ID)
	assert.Equal(t, []string{"True", "False"}, boolean.Choices)
	assert.Equal(t, 1, boolean.AnswerIndex)

	v, err := question.NewValidator()
	require.NoError(t, err)
	for _, q := range got {
		assert.Empty(t, v.Validate(q))
	}
}

func TestToQuestions_CorrectAnswerPositionVaries(t *testing.T) {
	remote := make([]RemoteQuestion, 40)
	for i := range remote {
		remote[i] = RemoteQuestion{Type: "multiple", Difficulty: "easy", Question: "q", CorrectAnswer: "right", IncorrectAnswers: []string{"a", "b", "c"}}
	}

	positions := map[int]bool{}
	for _, q := range ToQuestions(remote, "general", question.NewRand(42)) {
		assert.Equal(t, "right", q.CorrectChoice())
		positions[q.AnswerIndex] = true
	}
	assert.Greater(t, len(positions), 1)
}

func TestCategoryName(t *testing.T) {
	tests := []struct {
		remote string
		want   string
	}{
		{remote: "General Knowledge", want: "general_knowledge"},
		{remote: "Entertainment: Video Games", want: "entertainment_video_games"},
		{remote: "Science &amp; Nature", want: "science_nature"},
		{remote: "  History!  ", want: "history"},
	}

	for _, tt := range tests {
		t.Run(tt.remote, func(t *testing.T) {
			assert.Equal(t, tt.want, CategoryName(tt.remote))
		})
	}
}
