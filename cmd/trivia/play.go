package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"

	"github.com/spf13/cobra"

	"github.com/at-ishikawa/trivia/internal/config"
	"github.com/at-ishikawa/trivia/internal/leaderboard"
	"github.com/at-ishikawa/trivia/internal/question"
	"github.com/at-ishikawa/trivia/internal/quiz"
	"github.com/at-ishikawa/trivia/internal/result"
)

var errNoQuestionsSelected = errors.New("no questions found matching your criteria")

type playOptions struct {
	category        string
	limit           int
	difficulty      Difficulty
	hints           bool
	seed            uint64
	showLeaderboard bool
	leaderboardSize int
}

func newPlayCommand() *cobra.Command {
	var opts playOptions

	command := &cobra.Command{
		Use:   "play",
		Short: "Play a quiz and save the result to the leaderboard",
		Example: `  trivia play
  trivia play --category science --limit 5
  trivia play --hints --difficulty hard
  trivia play --leaderboard 10`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}
			if !cmd.Flags().Changed("category") {
				opts.category = cfg.Quiz.DefaultCategory
			}
			if !cmd.Flags().Changed("limit") {
				opts.limit = cfg.Quiz.DefaultLimit
			}
			opts.showLeaderboard = cmd.Flags().Changed("leaderboard")

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
			defer stop()

			store, closeStore, err := openResultStore(ctx, cfg)
			if err != nil {
				return fmt.Errorf("open result store: %w", err)
			}
			defer func() {
				_ = closeStore()
			}()

			return runPlay(ctx, cfg, store, opts, cmd.InOrStdin(), cmd.OutOrStdout())
		},
	}

	flags := command.Flags()
	flags.StringVarP(&opts.category, "category", "c", "general", "Question category")
	flags.IntVarP(&opts.limit, "limit", "l", 10, "Number of questions")
	flags.VarP(&opts.difficulty, "difficulty", "d", fmt.Sprintf("Filter by difficulty label, e.g. %v", allDifficulties))
	flags.BoolVarP(&opts.hints, "hints", "H", false, "Enable hints (halves points when used)")
	flags.Uint64Var(&opts.seed, "seed", 0, "Seed for question selection. 0 picks a random seed")
	flags.IntVarP(&opts.leaderboardSize, "leaderboard", "b", 10, "Show top N scores and exit")

	return command
}

func runPlay(
	ctx context.Context,
	cfg *config.Config,
	store result.Store,
	opts playOptions,
	input io.Reader,
	output io.Writer,
) error {
	if opts.showLeaderboard {
		results, err := leaderboard.NewRanker(store).Top(ctx, opts.leaderboardSize)
		if err != nil {
			return fmt.Errorf("ranker.Top() > %w", err)
		}
		_, _ = fmt.Fprintln(output, leaderboard.FormatTable(results))
		return nil
	}

	repo, err := question.NewFileRepository(cfg.Data.QuestionsDirectory)
	if err != nil {
		return fmt.Errorf("question.NewFileRepository() > %w", err)
	}
	questions, err := repo.Load(opts.category)
	if err != nil {
		var notFound *question.CategoryNotFoundError
		if errors.As(err, &notFound) {
			_, _ = fmt.Fprintf(output, "Error: %s\n", notFound.Error())
			_, _ = fmt.Fprintf(output, "Available categories: %s\n", strings.Join(notFound.Available, ", "))
		}
		return fmt.Errorf("repo.Load(%s) > %w", opts.category, err)
	}

	selected := question.Select(questions, opts.limit, opts.difficulty.String(), question.NewRand(opts.seed))
	if len(selected) == 0 {
		_, _ = fmt.Fprintln(output, "No questions found matching your criteria.")
		return errNoQuestionsSelected
	}

	runner := quiz.NewRunner(selected,
		quiz.WithHints(opts.hints),
		quiz.WithInput(input),
		quiz.WithOutput(output),
		quiz.WithPause(cfg.Quiz.Pause()),
	)
	res, err := runner.Run(ctx)
	if err != nil {
		if errors.Is(err, quiz.ErrAborted) {
			_, _ = fmt.Fprintln(output, "\n\nQuiz interrupted. Your result was not saved.")
		}
		return fmt.Errorf("runner.Run() > %w", err)
	}

	if err := store.Append(ctx, res); err != nil {
		return fmt.Errorf("store.Append() > %w", err)
	}
	_, _ = fmt.Fprintln(output, "Your result has been saved to the leaderboard!")
	return nil
}
