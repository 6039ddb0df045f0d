package leaderboard

import (
	"fmt"
	"strings"

	"github.com/at-ishikawa/trivia/internal/result"
)

const (
	tableWidth   = 78
	emptyMessage = "No results yet!"
)

// FormatTable renders results as a fixed-width text table, ranked from 1.
func FormatTable(results []result.Result) string {
	if len(results) == 0 {
		return emptyMessage
	}

	rule := strings.Repeat("=", tableWidth)
	lines := make([]string, 0, len(results)+4)
	lines = append(lines,
		rule,
		fmt.Sprintf("%-6s %-15s %-10s %-8s %-10s %-12s", "Rank", "Player", "Score", "Streak", "Time (s)", "Category"),
		rule,
	)
	for i, r := range results {
		lines = append(lines, fmt.Sprintf("%-6d %-15s %-10s %-8d %-10.1f %-12s",
			i+1, r.Player, ScoreDisplay(r), r.StreakMax, r.Seconds, r.Category))
	}
	lines = append(lines, rule)
	return strings.Join(lines, "\n")
}

// ScoreDisplay renders the score out of the total, e.g. "7.5/10".
func ScoreDisplay(r result.Result) string {
	return fmt.Sprintf("%.1f/%d", r.Score, r.Total)
}
