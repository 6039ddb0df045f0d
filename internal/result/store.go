package result

import "context"

//go:generate mockgen -source=store.go -destination=../mocks/result/mock_store.go -package=mock_result

// Appender durably adds one result to the log. Earlier entries are never rewritten.
type Appender interface {
	Append(ctx context.Context, r Result) error
}

// Reader returns every readable result in the order it was appended.
// A store that does not exist yet reads as empty.
type Reader interface {
	ReadAll(ctx context.Context) ([]Result, error)
}

type Store interface {
	Appender
	Reader
}
