package quiz

import (
	"time"

	"github.com/at-ishikawa/trivia/internal/result"
)

// sessionState holds the running totals of one session. It is only touched
// after an answer has been fully read, so an abort never leaves a half-applied turn.
type sessionState struct {
	player    string
	score     float64
	streak    int
	maxStreak int
	hintsUsed int
	askedIDs  map[string]struct{}
	startedAt time.Time
}

func newSessionState(player string, startedAt time.Time) *sessionState {
	return &sessionState{
		player:    player,
		askedIDs:  make(map[string]struct{}),
		startedAt: startedAt,
	}
}

func (s *sessionState) asked(id string) bool {
	_, ok := s.askedIDs[id]
	return ok
}

func (s *sessionState) markAsked(id string) {
	s.askedIDs[id] = struct{}{}
}

func (s *sessionState) record(correct bool, points float64, hintUsed bool) {
	if correct {
		s.score += points
		s.streak++
		s.maxStreak = max(s.maxStreak, s.streak)
	} else {
		s.streak = 0
	}
	if hintUsed {
		s.hintsUsed++
	}
}

func (s *sessionState) finish(endedAt time.Time, category string) result.Result {
	return result.Result{
		Player:    s.player,
		Score:     s.score,
		Total:     len(s.askedIDs),
		StreakMax: s.maxStreak,
		Seconds:   endedAt.Sub(s.startedAt).Seconds(),
		Category:  category,
		Timestamp: result.FormatTimestamp(endedAt),
		HintsUsed: s.hintsUsed,
	}
}
