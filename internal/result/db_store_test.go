package result

import (
	"context"
	"database/sql/driver"
	"fmt"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/go-sql-driver/mysql"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var resultColumns = []string{
	"player", "score", "total", "streak_max", "seconds", "category", "played_at", "hints_used",
}

func newMockDBStore(t *testing.T) (*DBStore, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = db.Close()
	})
	return NewDBStore(sqlx.NewDb(db, "mysql"), WithRetry(3, time.Millisecond)), mock
}

func TestDBStore_Append(t *testing.T) {
	r := sampleResult("ana", 1.5, 12)
	r.HintsUsed = 1
	args := []driver.Value{r.Player, r.Score, r.Total, r.StreakMax, r.Seconds, r.Category, r.Timestamp, r.HintsUsed}

	tests := []struct {
		name      string
		setupMock func(mock sqlmock.Sqlmock)
		wantErr   bool
	}{
		{
			name: "inserts the result",
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec(regexp.QuoteMeta(insertResultQuery)).
					WithArgs(args...).
					WillReturnResult(sqlmock.NewResult(1, 1))
			},
		},
		{
			name: "retries a dropped connection",
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec(regexp.QuoteMeta(insertResultQuery)).
					WithArgs(args...).
					WillReturnError(mysql.ErrInvalidConn)
				mock.ExpectExec(regexp.QuoteMeta(insertResultQuery)).
					WithArgs(args...).
					WillReturnResult(sqlmock.NewResult(2, 1))
			},
		},
		{
			name: "gives up after the configured attempts",
			setupMock: func(mock sqlmock.Sqlmock) {
				for i := 0; i < 3; i++ {
					mock.ExpectExec(regexp.QuoteMeta(insertResultQuery)).
						WithArgs(args...).
						WillReturnError(&mysql.MySQLError{Number: mysqlErrDeadlock, Message: "deadlock"})
				}
			},
			wantErr: true,
		},
		{
			name: "does not retry permanent errors",
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec(regexp.QuoteMeta(insertResultQuery)).
					WithArgs(args...).
					WillReturnError(fmt.Errorf("permission denied"))
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store, mock := newMockDBStore(t)
			tt.setupMock(mock)

			err := store.Append(context.Background(), r)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestDBStore_ReadAll(t *testing.T) {
	tests := []struct {
		name      string
		setupMock func(mock sqlmock.Sqlmock)
		want      []Result
		wantErr   bool
	}{
		{
			name: "returns rows in insertion order and skips invalid ones",
			setupMock: func(mock sqlmock.Sqlmock) {
				rows := sqlmock.NewRows(resultColumns).
					AddRow("ana", 8.0, 10, 4, 45.0, "general", "2025-01-01T00:00:00.000000Z", 0).
					AddRow("", 3.0, 10, 1, 20.0, "general", "2025-01-02T00:00:00.000000Z", 0).
					AddRow("bo", 8.0, 10, 5, 40.0, "science", "2025-01-03T00:00:00.000000Z", 2)
				mock.ExpectQuery(regexp.QuoteMeta(selectResultsQuery)).WillReturnRows(rows)
			},
			want: []Result{
				{Player: "ana", Score: 8, Total: 10, StreakMax: 4, Seconds: 45, Category: "general", Timestamp: "2025-01-01T00:00:00.000000Z"},
				{Player: "bo", Score: 8, Total: 10, StreakMax: 5, Seconds: 40, Category: "science", Timestamp: "2025-01-03T00:00:00.000000Z", HintsUsed: 2},
			},
		},
		{
			name: "missing table reads as empty",
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(regexp.QuoteMeta(selectResultsQuery)).
					WillReturnError(&mysql.MySQLError{Number: mysqlErrNoSuchTable, Message: "Table 'trivia.quiz_results' doesn't exist"})
			},
			want: []Result{},
		},
		{
			name: "db error",
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(regexp.QuoteMeta(selectResultsQuery)).
					WillReturnError(fmt.Errorf("connection refused"))
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store, mock := newMockDBStore(t)
			tt.setupMock(mock)

			got, err := store.ReadAll(context.Background())
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestDBStore_EnsureSchema(t *testing.T) {
	store, mock := newMockDBStore(t)
	mock.ExpectExec(regexp.QuoteMeta("CREATE TABLE IF NOT EXISTS quiz_results")).
		WillReturnResult(sqlmock.NewResult(0, 0))

	require.NoError(t, store.EnsureSchema(context.Background()))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestIsTransient(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{name: "invalid connection", err: mysql.ErrInvalidConn, want: true},
		{name: "wrapped invalid connection", err: fmt.Errorf("exec > %w", mysql.ErrInvalidConn), want: true},
		{name: "lock wait timeout", err: &mysql.MySQLError{Number: mysqlErrLockWaitTimeout}, want: true},
		{name: "duplicate key", err: &mysql.MySQLError{Number: 1062}, want: false},
		{name: "plain error", err: fmt.Errorf("boom"), want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, isTransient(tt.err))
		})
	}
}
