package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/at-ishikawa/trivia/internal/leaderboard"
)

const defaultLeaderboardSize = 10

func newLeaderboardCommand() *cobra.Command {
	var markdown bool
	var pdfPath string

	command := &cobra.Command{
		Use:   "leaderboard [N]",
		Short: "Show the top N results",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			n := defaultLeaderboardSize
			if len(args) == 1 {
				parsed, err := strconv.Atoi(args[0])
				if err != nil {
					return fmt.Errorf("invalid number of results %q: %w", args[0], err)
				}
				n = parsed
			}

			cfg, err := loadConfig()
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}

			ctx := cmd.Context()
			store, closeStore, err := openResultStore(ctx, cfg)
			if err != nil {
				return fmt.Errorf("open result store: %w", err)
			}
			defer func() {
				_ = closeStore()
			}()

			results, err := leaderboard.NewRanker(store).Top(ctx, n)
			if err != nil {
				return fmt.Errorf("ranker.Top() > %w", err)
			}

			output := cmd.OutOrStdout()
			templatePath := cfg.Templates.LeaderboardTemplate
			switch {
			case pdfPath != "":
				path, err := leaderboard.ExportPDF(templatePath, results, pdfPath)
				if err != nil {
					return fmt.Errorf("leaderboard.ExportPDF() > %w", err)
				}
				_, _ = fmt.Fprintf(output, "Leaderboard exported to %s\n", path)
			case markdown:
				if err := leaderboard.RenderMarkdown(output, templatePath, results); err != nil {
					return fmt.Errorf("leaderboard.RenderMarkdown() > %w", err)
				}
			default:
				_, _ = fmt.Fprintln(output, leaderboard.FormatTable(results))
			}
			return nil
		},
	}

	command.Flags().BoolVar(&markdown, "markdown", false, "Print the leaderboard as markdown")
	command.Flags().StringVar(&pdfPath, "pdf", "", "Export the leaderboard to a PDF file")
	return command
}
