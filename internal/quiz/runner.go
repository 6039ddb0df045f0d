package quiz

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/at-ishikawa/trivia/internal/question"
	"github.com/at-ishikawa/trivia/internal/result"
	"github.com/fatih/color"
)

const (
	// DefaultPlayer is recorded when the player leaves the name blank.
	DefaultPlayer = "Anonymous"
	// DefaultCategory is recorded when a session had no questions.
	DefaultCategory = "general"

	hintCommand = "h"
)

var (
	// ErrAborted is returned when input is interrupted or ends mid-session. No result is produced.
	ErrAborted = errors.New("quiz session aborted")
	// ErrRunnerFinished is returned when Run is called on a runner that already ran.
	ErrRunnerFinished = errors.New("quiz runner already finished")
)

type runnerState int

const (
	stateNotStarted runnerState = iota
	stateAwaitingAnswer
	stateComplete
)

// Runner drives one quiz session over a fixed sequence of questions.
// A Runner runs at most once.
type Runner struct {
	questions    []question.Question
	hintsEnabled bool
	input        io.Reader
	output       io.Writer
	now          func() time.Time
	pause        time.Duration
	state        runnerState

	bold  *color.Color
	faint *color.Color
	green *color.Color
	red   *color.Color
	cyan  *color.Color
}

type Option func(*Runner)

func WithHints(enabled bool) Option {
	return func(r *Runner) {
		r.hintsEnabled = enabled
	}
}

func WithInput(input io.Reader) Option {
	return func(r *Runner) {
		r.input = input
	}
}

func WithOutput(output io.Writer) Option {
	return func(r *Runner) {
		r.output = output
	}
}

func WithClock(now func() time.Time) Option {
	return func(r *Runner) {
		r.now = now
	}
}

// WithPause waits between questions. Zero disables the pause.
func WithPause(pause time.Duration) Option {
	return func(r *Runner) {
		r.pause = pause
	}
}

func NewRunner(questions []question.Question, opts ...Option) *Runner {
	r := &Runner{
		questions: slices.Clone(questions),
		input:     os.Stdin,
		output:    os.Stdout,
		now:       time.Now,
		bold:      color.New(color.Bold),
		faint:     color.New(color.Faint),
		green:     color.New(color.FgGreen, color.Bold),
		red:       color.New(color.FgRed, color.Bold),
		cyan:      color.New(color.FgCyan),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Run plays every question in order and returns the session result.
// Cancelling ctx or closing the input aborts the session with ErrAborted.
func (r *Runner) Run(ctx context.Context) (result.Result, error) {
	if r.state != stateNotStarted {
		return result.Result{}, ErrRunnerFinished
	}
	r.state = stateAwaitingAnswer
	defer func() {
		r.state = stateComplete
	}()

	lines := newLineReader(r.input)
	defer lines.close()

	r.printBanner()
	player, err := r.askPlayer(ctx, lines)
	if err != nil {
		return result.Result{}, err
	}

	total := r.distinctQuestions()
	session := newSessionState(player, r.now())
	for i, q := range r.questions {
		if session.asked(q.ID) {
			slog.Default().Debug("skipping repeated question", slog.String("id", q.ID))
			continue
		}
		session.markAsked(q.ID)

		r.printQuestion(q, len(session.askedIDs), total)
		choice, hintUsed, err := r.askAnswer(ctx, lines, q)
		if err != nil {
			return result.Result{}, err
		}

		correct, points := Score(q, choice, hintUsed)
		session.record(correct, points, hintUsed)
		r.printFeedback(q, correct, points)

		if i < len(r.questions)-1 {
			if err := r.wait(ctx); err != nil {
				return result.Result{}, err
			}
		}
	}

	res := session.finish(r.now(), r.category())
	r.printSummary(res)
	return res, nil
}

func (r *Runner) category() string {
	if len(r.questions) == 0 {
		return DefaultCategory
	}
	return r.questions[0].Category
}

func (r *Runner) distinctQuestions() int {
	seen := make(map[string]struct{}, len(r.questions))
	for _, q := range r.questions {
		seen[q.ID] = struct{}{}
	}
	return len(seen)
}

func (r *Runner) askPlayer(ctx context.Context, lines *lineReader) (string, error) {
	_, _ = fmt.Fprint(r.output, "Enter your name: ")
	line, err := r.readLine(ctx, lines)
	if err != nil {
		return "", err
	}
	player := strings.TrimSpace(line)
	if player == "" {
		return DefaultPlayer, nil
	}
	return player, nil
}

// askAnswer returns the zero-indexed choice and whether the hint was shown for this question.
func (r *Runner) askAnswer(ctx context.Context, lines *lineReader, q question.Question) (int, bool, error) {
	numChoices := len(q.Choices)
	hintUsed := false
	for {
		if r.hintsEnabled && !hintUsed {
			_, _ = fmt.Fprintf(r.output, "\nYour answer (1-%d, or '%s' for hint): ", numChoices, hintCommand)
		} else {
			_, _ = fmt.Fprintf(r.output, "\nYour answer (1-%d): ", numChoices)
		}

		line, err := r.readLine(ctx, lines)
		if err != nil {
			return 0, false, err
		}
		answer := strings.ToLower(strings.TrimSpace(line))

		if r.hintsEnabled && !hintUsed && answer == hintCommand {
			hintUsed = true
			_, _ = r.cyan.Fprintf(r.output, "\n%s\n", wrapIndented("Hint: ", q.Hint, lineWidth))
			continue
		}

		choice, err := strconv.Atoi(answer)
		if err != nil {
			_, _ = fmt.Fprintf(r.output, "Invalid input. Please enter a number between 1 and %d.\n", numChoices)
			continue
		}
		if choice < 1 || choice > numChoices {
			_, _ = fmt.Fprintf(r.output, "Please enter a number between 1 and %d.\n", numChoices)
			continue
		}
		return choice - 1, hintUsed, nil
	}
}

func (r *Runner) readLine(ctx context.Context, lines *lineReader) (string, error) {
	line, err := lines.ReadLine(ctx)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrAborted, err)
	}
	return line, nil
}

// wait paces questions with a single timer instead of spinning.
func (r *Runner) wait(ctx context.Context) error {
	if r.pause <= 0 {
		return nil
	}
	timer := time.NewTimer(r.pause)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return fmt.Errorf("%w: %w", ErrAborted, ctx.Err())
	case <-timer.C:
		return nil
	}
}
