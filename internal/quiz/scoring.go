// Package quiz runs interactive quiz sessions and scores the answers.
package quiz

import "github.com/at-ishikawa/trivia/internal/question"

const (
	// PointsCorrect is awarded for a correct answer given without a hint.
	PointsCorrect = 1.0
	// PointsWithHint is awarded for a correct answer after the hint was shown.
	PointsWithHint = 0.5
)

// Score evaluates a zero-indexed choice. It is the only place point values are decided.
func Score(q question.Question, chosen int, hintUsed bool) (bool, float64) {
	if chosen != q.AnswerIndex {
		return false, 0
	}
	if hintUsed {
		return true, PointsWithHint
	}
	return true, PointsCorrect
}
