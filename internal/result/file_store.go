package result

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
)

// maxLineSize bounds a single record. Longer lines are skipped.
const maxLineSize = 1024 * 1024

// FileStore keeps results as JSON Lines, one record per line.
type FileStore struct {
	path string
}

var _ Store = (*FileStore)(nil)

func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

// Append writes the record and its newline with a single write to a file opened
// in append mode, so concurrent writers never interleave partial lines.
func (s *FileStore) Append(ctx context.Context, r Result) error {
	if err := Validate(r); err != nil {
		return err
	}
	line, err := json.Marshal(r)
	if err != nil {
		return fmt.Errorf("json.Marshal > %w", err)
	}
	line = append(line, '\n')

	if dir := filepath.Dir(s.path); dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("os.MkdirAll(%s) > %w", dir, err)
		}
	}
	file, err := os.OpenFile(s.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return fmt.Errorf("os.OpenFile(%s) > %w", s.path, err)
	}
	if _, err := file.Write(line); err != nil {
		_ = file.Close()
		return fmt.Errorf("file.Write(%s) > %w", s.path, err)
	}
	if err := file.Close(); err != nil {
		return fmt.Errorf("file.Close(%s) > %w", s.path, err)
	}
	return nil
}

// ReadAll skips blank and malformed lines, logging the latter.
func (s *FileStore) ReadAll(ctx context.Context) ([]Result, error) {
	file, err := os.Open(s.path)
	if errors.Is(err, os.ErrNotExist) {
		return []Result{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("os.Open(%s) > %w", s.path, err)
	}
	defer func() {
		_ = file.Close()
	}()

	results := []Result{}
	reader := bufio.NewReader(file)
	lineNumber := 0
	for {
		data, readErr := reader.ReadBytes('\n')
		if readErr != nil && !errors.Is(readErr, io.EOF) {
			return nil, fmt.Errorf("reader.ReadBytes(%s) > %w", s.path, readErr)
		}
		if len(data) > 0 {
			lineNumber++
			if r, ok := s.decodeLine(data, lineNumber); ok {
				results = append(results, r)
			}
		}
		if readErr != nil {
			break
		}
	}
	return results, nil
}

func (s *FileStore) decodeLine(data []byte, lineNumber int) (Result, bool) {
	line := bytes.TrimSpace(data)
	if len(line) == 0 {
		return Result{}, false
	}
	if len(line) > maxLineSize {
		slog.Default().Warn("skipping oversized leaderboard record",
			slog.String("path", s.path),
			slog.Int("line", lineNumber),
			slog.Int("bytes", len(line)),
		)
		return Result{}, false
	}
	r, err := Decode(line)
	if err != nil {
		slog.Default().Warn("skipping malformed leaderboard record",
			slog.String("path", s.path),
			slog.Int("line", lineNumber),
			slog.Any("error", err),
		)
		return Result{}, false
	}
	return r, true
}
