package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/at-ishikawa/trivia/internal/question"
)

func newCategoriesCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "categories",
		Short: "List the available question categories",
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
			categories, err := repo.Categories()
			if err != nil {
				return fmt.Errorf("repo.Categories() > %w", err)
			}

			output := cmd.OutOrStdout()
			if len(categories) == 0 {
				_, _ = fmt.Fprintf(output, "No categories found in %s\n", cfg.Data.QuestionsDirectory)
				return nil
			}
			for _, category := range categories {
				_, _ = fmt.Fprintln(output, category)
			}
			return nil
		},
	}
}
