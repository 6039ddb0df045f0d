package quiz

import (
	"bufio"
	"context"
	"io"
)

// lineReader reads lines on its own goroutine so a blocked read can be
// abandoned when the context is cancelled.
type lineReader struct {
	lines chan string
	done  chan struct{}
	err   error
}

func newLineReader(r io.Reader) *lineReader {
	lr := &lineReader{
		lines: make(chan string),
		done:  make(chan struct{}),
	}
	go func() {
		defer close(lr.lines)

		scanner := bufio.NewScanner(r)
		for scanner.Scan() {
			select {
			case lr.lines <- scanner.Text():
			case <-lr.done:
				return
			}
		}
		lr.err = scanner.Err()
		if lr.err == nil {
			lr.err = io.EOF
		}
	}()
	return lr
}

// ReadLine blocks until a line arrives, the input ends, or ctx is done.
func (lr *lineReader) ReadLine(ctx context.Context) (string, error) {
	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case line, ok := <-lr.lines:
		if !ok {
			return "", lr.err
		}
		return line, nil
	}
}

func (lr *lineReader) close() {
	close(lr.done)
}
