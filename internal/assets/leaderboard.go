package assets

import (
	_ "embed"
	"fmt"
	"io"
)

//go:embed templates/leaderboard.md.go.tmpl
var fallbackLeaderboardTemplate string

const leaderboardTemplateName = "leaderboard.md.go.tmpl"

// LeaderboardTemplate is the data passed to the leaderboard markdown template
type LeaderboardTemplate struct {
	Title   string
	Entries []LeaderboardEntry
}

// LeaderboardEntry is one ranked row
type LeaderboardEntry struct {
	Rank      int
	Player    string
	Score     string
	StreakMax int
	Seconds   float64
	Category  string
	PlayedAt  string
}

func WriteLeaderboard(output io.Writer, templatePath string, templateData LeaderboardTemplate) error {
	tmpl, err := parseTemplateWithFallback(templatePath, leaderboardTemplateName, fallbackLeaderboardTemplate)
	if err != nil {
		return fmt.Errorf("parseTemplateWithFallback() > %w", err)
	}
	if err := tmpl.Execute(output, templateData); err != nil {
		return fmt.Errorf("tmpl.Execute() > %w", err)
	}
	return nil
}
