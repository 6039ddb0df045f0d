package leaderboard

import (
	"bytes"
	"fmt"
	"io"

	"github.com/at-ishikawa/trivia/internal/assets"
	"github.com/at-ishikawa/trivia/internal/pdf"
	"github.com/at-ishikawa/trivia/internal/result"
)

const markdownTitle = "Trivia Leaderboard"

// RenderMarkdown writes ranked results as a markdown document. An empty
// templatePath uses the embedded template.
func RenderMarkdown(output io.Writer, templatePath string, results []result.Result) error {
	entries := make([]assets.LeaderboardEntry, 0, len(results))
	for i, r := range results {
		entries = append(entries, assets.LeaderboardEntry{
			Rank:      i + 1,
			Player:    r.Player,
			Score:     ScoreDisplay(r),
			StreakMax: r.StreakMax,
			Seconds:   r.Seconds,
			Category:  r.Category,
			PlayedAt:  r.Timestamp,
		})
	}

	if err := assets.WriteLeaderboard(output, templatePath, assets.LeaderboardTemplate{
		Title:   markdownTitle,
		Entries: entries,
	}); err != nil {
		return fmt.Errorf("assets.WriteLeaderboard(%s) > %w", templatePath, err)
	}
	return nil
}

// ExportPDF renders results through the markdown template and writes them to pdfPath.
func ExportPDF(templatePath string, results []result.Result, pdfPath string) (string, error) {
	var buf bytes.Buffer
	if err := RenderMarkdown(&buf, templatePath, results); err != nil {
		return "", err
	}

	path, err := pdf.ConvertMarkdownToPDF(buf.Bytes(), pdfPath)
	if err != nil {
		return "", fmt.Errorf("pdf.ConvertMarkdownToPDF(%s) > %w", pdfPath, err)
	}
	return path, nil
}
