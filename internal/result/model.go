// Package result persists completed quiz sessions to an append-only log.
package result

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
)

// TimestampLayout is the ISO-8601 UTC layout used for Result.Timestamp.
const TimestampLayout = "2006-01-02T15:04:05.000000Z"

// ErrInvalidResult is returned for records that cannot be a completed session.
var ErrInvalidResult = errors.New("invalid result")

// Result is one completed quiz session. Results are only ever appended.
type Result struct {
	Player    string  `json:"player" db:"player" validate:"required"`
	Score     float64 `json:"score" db:"score" validate:"gte=0"`
	Total     int     `json:"total" db:"total" validate:"gte=0"`
	StreakMax int     `json:"streak_max" db:"streak_max" validate:"gte=0"`
	Seconds   float64 `json:"seconds" db:"seconds" validate:"gte=0"`
	Category  string  `json:"category" db:"category"`
	Timestamp string  `json:"timestamp" db:"played_at" validate:"required"`
	HintsUsed int     `json:"hints_used" db:"hints_used" validate:"gte=0"`
}

// FormatTimestamp renders t in TimestampLayout.
func FormatTimestamp(t time.Time) string {
	return t.UTC().Format(TimestampLayout)
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// Validate reports whether r satisfies the invariants of a persisted result.
func Validate(r Result) error {
	if err := validate.Struct(r); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidResult, err)
	}
	return nil
}

// record mirrors the persisted layout with pointers so missing keys can be told
// apart from zero values. Only hints_used may be absent, for records written
// before hints existed.
type record struct {
	Player    *string  `json:"player"`
	Score     *float64 `json:"score"`
	Total     *int     `json:"total"`
	StreakMax *int     `json:"streak_max"`
	Seconds   *float64 `json:"seconds"`
	Category  *string  `json:"category"`
	Timestamp *string  `json:"timestamp"`
	HintsUsed *int     `json:"hints_used"`
}

// Decode parses one persisted record and validates it.
func Decode(data []byte) (Result, error) {
	var rec record
	if err := json.Unmarshal(data, &rec); err != nil {
		return Result{}, fmt.Errorf("%w: json.Unmarshal > %w", ErrInvalidResult, err)
	}

	var missing []string
	check := func(name string, isNil bool) {
		if isNil {
			missing = append(missing, name)
		}
	}
	check("player", rec.Player == nil)
	check("score", rec.Score == nil)
	check("total", rec.Total == nil)
	check("streak_max", rec.StreakMax == nil)
	check("seconds", rec.Seconds == nil)
	check("category", rec.Category == nil)
	check("timestamp", rec.Timestamp == nil)
	if len(missing) > 0 {
		return Result{}, fmt.Errorf("%w: missing fields %v", ErrInvalidResult, missing)
	}

	r := Result{
		Player:    *rec.Player,
		Score:     *rec.Score,
		Total:     *rec.Total,
		StreakMax: *rec.StreakMax,
		Seconds:   *rec.Seconds,
		Category:  *rec.Category,
		Timestamp: *rec.Timestamp,
	}
	if rec.HintsUsed != nil {
		r.HintsUsed = *rec.HintsUsed
	}
	if err := Validate(r); err != nil {
		return Result{}, err
	}
	return r, nil
}
