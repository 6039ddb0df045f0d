package main

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/at-ishikawa/trivia/internal/question"
)

func newValidateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "validate",
		Short: "Validate every question file for consistency and correctness",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}

			repo, err := question.NewFileRepository(cfg.Data.QuestionsDirectory)
			if err != nil {
				return fmt.Errorf("question.NewFileRepository() > %w", err)
			}
			problems, err := repo.Validate()
			if err != nil {
				return fmt.Errorf("repo.Validate() > %w", err)
			}

			output := cmd.OutOrStdout()
			if len(problems) == 0 {
				_, _ = color.New(color.FgGreen).Fprintln(output, "All question files are valid.")
				return nil
			}

			red := color.New(color.FgRed)
			for _, problem := range problems {
				_, _ = red.Fprintf(output, "  - %v\n", problem)
			}
			return fmt.Errorf("found %d invalid question record(s)", len(problems))
		},
	}
}
