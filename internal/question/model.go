// Package question loads, validates and selects quiz questions.
package question

// DefaultHint is shown when a question record carries no hint of its own.
const DefaultHint = "No hint available"

// Question is a single multiple choice question. It is never mutated after it is loaded.
type Question struct {
	ID          string   `json:"id" yaml:"id" validate:"required"`
	Category    string   `json:"category" yaml:"category" validate:"required"`
	Difficulty  string   `json:"difficulty" yaml:"difficulty" validate:"required"`
	Prompt      string   `json:"prompt" yaml:"prompt" validate:"required"`
	Choices     []string `json:"choices" yaml:"choices" validate:"min=2,dive,required"`
	AnswerIndex int      `json:"answer_index" yaml:"answer_index" validate:"gte=0"`
	Hint        string   `json:"hint,omitempty" yaml:"hint,omitempty"`
}

// CorrectChoice returns the text of the correct choice.
func (q Question) CorrectChoice() string {
	if q.AnswerIndex < 0 || q.AnswerIndex >= len(q.Choices) {
		return ""
	}
	return q.Choices[q.AnswerIndex]
}
