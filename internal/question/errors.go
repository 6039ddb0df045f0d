package question

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrCategoryNotFound is returned when no question file backs a category.
	ErrCategoryNotFound = errors.New("category not found")
	// ErrInvalidQuestion is returned when a question record is malformed.
	ErrInvalidQuestion = errors.New("invalid question")
)

// CategoryNotFoundError carries the categories that do exist so callers can list them.
type CategoryNotFoundError struct {
	Category  string
	Available []string
}

func (e *CategoryNotFoundError) Error() string {
	return fmt.Sprintf("no questions found for category: %s", e.Category)
}

func (e *CategoryNotFoundError) Unwrap() error {
	return ErrCategoryNotFound
}

// ValidationError describes a malformed record in a question file.
type ValidationError struct {
	File     string
	Index    int
	ID       string
	Messages []string
}

func (e *ValidationError) Error() string {
	location := fmt.Sprintf("record #%d", e.Index+1)
	if e.ID != "" {
		location += fmt.Sprintf(" (id=%s)", e.ID)
	}
	return fmt.Sprintf("%s: %s: %s", e.File, location, strings.Join(e.Messages, "; "))
}

func (e *ValidationError) Unwrap() error {
	return ErrInvalidQuestion
}
