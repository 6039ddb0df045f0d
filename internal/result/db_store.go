package result

import (
	"context"
	"database/sql/driver"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"time"

	"github.com/avast/retry-go"
	"github.com/go-sql-driver/mysql"
	"github.com/jmoiron/sqlx"
)

const (
	createResultsTableQuery = `CREATE TABLE IF NOT EXISTS quiz_results (
	id BIGINT AUTO_INCREMENT PRIMARY KEY,
	player VARCHAR(255) NOT NULL,
	score DOUBLE NOT NULL,
	total INT NOT NULL,
	streak_max INT NOT NULL,
	seconds DOUBLE NOT NULL,
	category VARCHAR(255) NOT NULL,
	played_at VARCHAR(32) NOT NULL,
	hints_used INT NOT NULL DEFAULT 0
)`
	insertResultQuery = `INSERT INTO quiz_results (player, score, total, streak_max, seconds, category, played_at, hints_used)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?)`
	selectResultsQuery = `SELECT player, score, total, streak_max, seconds, category, played_at, hints_used FROM quiz_results ORDER BY id`
)

const (
	mysqlErrLockWaitTimeout = 1205
	mysqlErrDeadlock        = 1213
	mysqlErrNoSuchTable     = 1146
)

// DBStore keeps results in a MySQL table. Rows are only inserted, never updated.
type DBStore struct {
	db            *sqlx.DB
	retryAttempts uint
	retryDelay    time.Duration
}

var _ Store = (*DBStore)(nil)

type DBStoreOption func(*DBStore)

// WithRetry sets how many times a transient insert failure is attempted in total.
func WithRetry(attempts uint, delay time.Duration) DBStoreOption {
	return func(s *DBStore) {
		s.retryAttempts = attempts
		s.retryDelay = delay
	}
}

func NewDBStore(db *sqlx.DB, opts ...DBStoreOption) *DBStore {
	s := &DBStore{
		db:            db,
		retryAttempts: 3,
		retryDelay:    200 * time.Millisecond,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// EnsureSchema creates the results table when it is missing.
func (s *DBStore) EnsureSchema(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, createResultsTableQuery); err != nil {
		return fmt.Errorf("db.ExecContext(create quiz_results) > %w", err)
	}
	return nil
}

func (s *DBStore) Append(ctx context.Context, r Result) error {
	if err := Validate(r); err != nil {
		return err
	}

	if err := retry.Do(
		func() error {
			_, err := s.db.ExecContext(ctx, insertResultQuery,
				r.Player, r.Score, r.Total, r.StreakMax, r.Seconds, r.Category, r.Timestamp, r.HintsUsed)
			if err != nil && !isTransient(err) {
				return retry.Unrecoverable(err)
			}
			return err
		},
		retry.Context(ctx),
		retry.Attempts(s.retryAttempts),
		retry.Delay(s.retryDelay),
		retry.LastErrorOnly(true),
		retry.OnRetry(func(n uint, err error) {
			slog.Default().Warn("retrying result insert",
				slog.Uint64("attempt", uint64(n+1)),
				slog.Any("error", err),
			)
		}),
	); err != nil {
		return fmt.Errorf("db.ExecContext(insert quiz_result) > %w", err)
	}
	return nil
}

// ReadAll returns rows in insertion order. A missing table reads as empty.
func (s *DBStore) ReadAll(ctx context.Context) ([]Result, error) {
	var rows []Result
	if err := s.db.SelectContext(ctx, &rows, selectResultsQuery); err != nil {
		var mysqlErr *mysql.MySQLError
		if errors.As(err, &mysqlErr) && mysqlErr.Number == mysqlErrNoSuchTable {
			return []Result{}, nil
		}
		return nil, fmt.Errorf("db.SelectContext(quiz_results) > %w", err)
	}

	results := make([]Result, 0, len(rows))
	for i, r := range rows {
		if err := Validate(r); err != nil {
			slog.Default().Warn("skipping malformed leaderboard row",
				slog.Int("row", i+1),
				slog.Any("error", err),
			)
			continue
		}
		results = append(results, r)
	}
	return results, nil
}

func isTransient(err error) bool {
	if errors.Is(err, mysql.ErrInvalidConn) || errors.Is(err, driver.ErrBadConn) {
		return true
	}
	var mysqlErr *mysql.MySQLError
	if errors.As(err, &mysqlErr) {
		return mysqlErr.Number == mysqlErrLockWaitTimeout || mysqlErr.Number == mysqlErrDeadlock
	}
	var netErr net.Error
	return errors.As(err, &netErr)
}
