package quiz

import (
	"fmt"
	"strings"

	"github.com/at-ishikawa/trivia/internal/question"
	"github.com/at-ishikawa/trivia/internal/result"
)

const ruleWidth = 60

func (r *Runner) printBanner() {
	rule := strings.Repeat("=", ruleWidth)
	_, _ = fmt.Fprintf(r.output, "\n%s\n", rule)
	_, _ = r.bold.Fprintln(r.output, "WELCOME TO THE TRIVIA QUIZ!")
	_, _ = fmt.Fprintf(r.output, "%s\n\n", rule)
}

func (r *Runner) printQuestion(q question.Question, number, total int) {
	_, _ = r.bold.Fprintf(r.output, "\nQuestion %d/%d\n", number, total)
	_, _ = fmt.Fprintln(r.output, strings.Repeat("-", ruleWidth))
	_, _ = r.faint.Fprintln(r.output, wrap(fmt.Sprintf("Category: %s | Difficulty: %s",
		strings.ToUpper(q.Category), strings.ToUpper(q.Difficulty)), lineWidth))
	_, _ = fmt.Fprintf(r.output, "\n%s\n\n", wrap(q.Prompt, lineWidth))
	for i, choice := range q.Choices {
		_, _ = fmt.Fprintln(r.output, wrapIndented(fmt.Sprintf("  %d. ", i+1), choice, lineWidth))
	}
}

func (r *Runner) printFeedback(q question.Question, correct bool, points float64) {
	if correct {
		_, _ = r.green.Fprintf(r.output, "\n✓ Correct! +%.1f points\n", points)
		return
	}
	_, _ = r.red.Fprintf(r.output, "\n%s\n",
		wrap(fmt.Sprintf("✗ Wrong! +%.1f points. The correct answer was: %s", points, q.CorrectChoice()), lineWidth))
}

func (r *Runner) printSummary(res result.Result) {
	rule := strings.Repeat("=", ruleWidth)
	_, _ = fmt.Fprintf(r.output, "\n%s\n", rule)
	_, _ = r.bold.Fprintln(r.output, "QUIZ COMPLETE!")
	_, _ = fmt.Fprintln(r.output, rule)
	_, _ = fmt.Fprintln(r.output, wrap("Player: "+res.Player, lineWidth))
	percentage := 0.0
	if res.Total > 0 {
		percentage = 100 * res.Score / float64(res.Total)
	}
	_, _ = fmt.Fprintf(r.output, "Score: %g/%d (%.1f%%)\n", res.Score, res.Total, percentage)
	_, _ = fmt.Fprintf(r.output, "Best Streak: %d\n", res.StreakMax)
	if res.HintsUsed > 0 {
		_, _ = fmt.Fprintf(r.output, "Hints Used: %d\n", res.HintsUsed)
	}
	_, _ = fmt.Fprintf(r.output, "Time: %.1f seconds\n", res.Seconds)
	_, _ = fmt.Fprintf(r.output, "%s\n\n", rule)
}
