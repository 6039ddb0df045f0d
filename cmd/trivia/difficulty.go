package main

import (
	"fmt"
	"strings"

	"github.com/spf13/pflag"
)

// Difficulty filters questions by their label. Question files may use any
// label, so every non-empty value is accepted. The zero value matches every difficulty.
type Difficulty string

const (
	DifficultyEasy   Difficulty = "easy"
	DifficultyMedium Difficulty = "medium"
	DifficultyHard   Difficulty = "hard"
)

var (
	_               pflag.Value = (*Difficulty)(nil)
	_               pflag.Value = (*RemoteDifficulty)(nil)
	allDifficulties             = []Difficulty{DifficultyEasy, DifficultyMedium, DifficultyHard}
)

func (d *Difficulty) Set(val string) error {
	label := strings.ToLower(strings.TrimSpace(val))
	if label == "" {
		return fmt.Errorf("difficulty must not be empty")
	}
	*d = Difficulty(label)
	return nil
}

func (d Difficulty) String() string {
	return string(d)
}

func (d *Difficulty) Type() string {
	return "difficulty"
}

// RemoteDifficulty is a difficulty the Open Trivia Database understands.
type RemoteDifficulty Difficulty

func (d *RemoteDifficulty) Set(val string) error {
	for _, difficulty := range allDifficulties {
		if strings.EqualFold(strings.TrimSpace(val), string(difficulty)) {
			*d = RemoteDifficulty(difficulty)
			return nil
		}
	}
	return fmt.Errorf("invalid difficulty: %s. Possible values are %v", val, allDifficulties)
}

func (d RemoteDifficulty) String() string {
	return string(d)
}

func (d *RemoteDifficulty) Type() string {
	return "difficulty"
}
