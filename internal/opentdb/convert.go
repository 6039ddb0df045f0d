package opentdb

import (
	"fmt"
	"html"
	"math/rand/v2"
	"slices"
	"strings"

	"github.com/at-ishikawa/trivia/internal/question"
)

const typeBoolean = "boolean"

// ToQuestions converts API questions into questions of the given category.
// IDs are "<category>-<n>" starting from 1. The correct answer is placed at a
// random position, except for true/false questions which keep "True" first.
func ToQuestions(remote []RemoteQuestion, category string, rng *rand.Rand) []question.Question {
	questions := make([]question.Question, 0, len(remote))
	for i, rq := range remote {
		correct := html.UnescapeString(rq.CorrectAnswer)
		incorrect := make([]string, 0, len(rq.IncorrectAnswers))
		for _, answer := range rq.IncorrectAnswers {
			incorrect = append(incorrect, html.UnescapeString(answer))
		}

		var choices []string
		var answerIndex int
		if rq.Type == typeBoolean {
			choices = []string{"True", "False"}
			answerIndex = slices.IndexFunc(choices, func(c string) bool {
				return strings.EqualFold(c, correct)
			})
			if answerIndex < 0 {
				choices = append([]string{correct}, incorrect...)
				answerIndex = 0
			}
		} else {
			answerIndex = rng.IntN(len(incorrect) + 1)
			choices = slices.Insert(slices.Clone(incorrect), answerIndex, correct)
		}

		questions = append(questions, question.Question{
			ID:          fmt.Sprintf("%s-%d", category, i+1),
			Category:    category,
			Difficulty:  strings.ToLower(rq.Difficulty),
			Prompt:      html.UnescapeString(rq.Question),
			Choices:     choices,
			AnswerIndex: answerIndex,
		})
	}
	return questions
}

// CategoryName turns a remote category such as "Entertainment: Video Games"
// into a file-friendly category name like "entertainment_video_games".
func CategoryName(remote string) string {
	var b strings.Builder
	underscore := false
	for _, r := range strings.ToLower(html.UnescapeString(remote)) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
			underscore = false
		case !underscore && b.Len() > 0:
			b.WriteByte('_')
			underscore = true
		}
	}
	return strings.TrimSuffix(b.String(), "_")
}
