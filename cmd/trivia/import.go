package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/at-ishikawa/trivia/internal/config"
	"github.com/at-ishikawa/trivia/internal/opentdb"
	"github.com/at-ishikawa/trivia/internal/question"
)

type importOptions struct {
	amount         int
	categoryID     int
	difficulty     RemoteDifficulty
	name           string
	force          bool
	seed           uint64
	listCategories bool
}

func newImportCommand() *cobra.Command {
	var opts importOptions

	command := &cobra.Command{
		Use:   "import",
		Short: "Import questions from the Open Trivia Database into a category file",
		Example: `  trivia import --list-categories
  trivia import --category-id 17 --amount 20
  trivia import --category-id 9 --difficulty easy --name general --force`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}

			catalog := opentdb.NewCatalog(cfg.OpenTDB.BaseURL, cfg.OpenTDB.CacheDirectory)
			if opts.listCategories {
				return listRemoteCategories(cmd.Context(), catalog, cmd.OutOrStdout())
			}

			client := opentdb.NewClient(cfg.OpenTDB.BaseURL, cfg.OpenTDB.RetryAttempts)
			defer func() {
				_ = client.Close()
			}()
			return runImport(cmd.Context(), cfg, client, catalog, opts, cmd.OutOrStdout())
		},
	}

	flags := command.Flags()
	flags.IntVar(&opts.amount, "amount", 10, fmt.Sprintf("Number of questions to import (1-%d)", opentdb.MaxAmount))
	flags.IntVar(&opts.categoryID, "category-id", 0, "Open Trivia DB category ID. 0 imports from any category")
	flags.Var(&opts.difficulty, "difficulty", fmt.Sprintf("Only import questions of this difficulty. Possible values are %v", allDifficulties))
	flags.StringVar(&opts.name, "name", "", "Local category name. Defaults to the remote category name")
	flags.BoolVar(&opts.force, "force", false, "Overwrite the questions of an existing category")
	flags.Uint64Var(&opts.seed, "seed", 0, "Seed for shuffling choices. 0 picks a random seed")
	flags.BoolVar(&opts.listCategories, "list-categories", false, "List the remote categories and exit")
	return command
}

func listRemoteCategories(ctx context.Context, catalog *opentdb.Catalog, output io.Writer) error {
	categories, err := catalog.Categories(ctx)
	if err != nil {
		return fmt.Errorf("catalog.Categories() > %w", err)
	}
	for _, category := range categories {
		_, _ = fmt.Fprintf(output, "%4d  %s\n", category.ID, category.Name)
	}
	return nil
}

// localCategoryName picks the file name of the imported category.
func localCategoryName(ctx context.Context, catalog *opentdb.Catalog, opts importOptions) (string, error) {
	if opts.name != "" {
		return opts.name, nil
	}
	if opts.categoryID == 0 {
		return "general", nil
	}

	categories, err := catalog.Categories(ctx)
	if err != nil {
		return "", fmt.Errorf("catalog.Categories() > %w", err)
	}
	for _, category := range categories {
		if category.ID == opts.categoryID {
			return opentdb.CategoryName(category.Name), nil
		}
	}
	return "", fmt.Errorf("unknown Open Trivia DB category ID: %d", opts.categoryID)
}

func runImport(
	ctx context.Context,
	cfg *config.Config,
	client *opentdb.Client,
	catalog *opentdb.Catalog,
	opts importOptions,
	output io.Writer,
) error {
	name, err := localCategoryName(ctx, catalog, opts)
	if err != nil {
		return err
	}

	repo, err := question.NewFileRepository(cfg.Data.QuestionsDirectory)
	if err != nil {
		return fmt.Errorf("question.NewFileRepository() > %w", err)
	}
	if repo.Exists(name) && !opts.force {
		return fmt.Errorf("category %s already exists. Use --force to overwrite it", name)
	}

	remote, err := client.Fetch(ctx, opentdb.FetchParams{
		Amount:     opts.amount,
		CategoryID: opts.categoryID,
		Difficulty: opts.difficulty.String(),
	})
	if err != nil {
		return fmt.Errorf("client.Fetch() > %w", err)
	}
	slog.Default().Debug("fetched questions",
		slog.String("category", name),
		slog.Int("count", len(remote)),
	)

	questions := opentdb.ToQuestions(remote, name, question.NewRand(opts.seed))
	path, err := repo.Save(name, questions)
	if err != nil {
		return fmt.Errorf("repo.Save(%s) > %w", name, err)
	}
	_, _ = fmt.Fprintf(output, "Imported %d question(s) into %s\n", len(questions), path)
	return nil
}
