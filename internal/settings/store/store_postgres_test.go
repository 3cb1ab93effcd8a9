package store

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/d4rken/cwa-app-android/pkg/platform/sentinel"
)

func setupPostgresMock(t *testing.T) (*PostgresStore, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return NewPostgres(db), mock
}

func TestPostgresStore_Get(t *testing.T) {
	ctx := context.Background()

	t.Run("returns stored value", func(t *testing.T) {
		s, mock := setupPostgresMock(t)
		mock.ExpectQuery(regexp.QuoteMeta(`SELECT value FROM settings WHERE key = $1`)).
			WithArgs("ccl.config").
			WillReturnRows(sqlmock.NewRows([]string{"value"}).AddRow(`{"version":"1"}`))

		v, ok, err := s.Get(ctx, "ccl.config")
		require.NoError(t, err)
		assert.True(t, ok)
		assert.Equal(t, `{"version":"1"}`, v)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("no rows means absent", func(t *testing.T) {
		s, mock := setupPostgresMock(t)
		mock.ExpectQuery(regexp.QuoteMeta(`SELECT value FROM settings WHERE key = $1`)).
			WithArgs("missing").
			WillReturnError(sql.ErrNoRows)

		_, ok, err := s.Get(ctx, "missing")
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("connection failure maps to unavailable", func(t *testing.T) {
		s, mock := setupPostgresMock(t)
		mock.ExpectQuery(regexp.QuoteMeta(`SELECT value FROM settings WHERE key = $1`)).
			WithArgs("k").
			WillReturnError(&pq.Error{Code: "08006", Message: "connection failure"})

		_, _, err := s.Get(ctx, "k")
		require.Error(t, err)
		assert.True(t, errors.Is(err, sentinel.ErrUnavailable))
	})
}

func TestPostgresStore_SetUpserts(t *testing.T) {
	s, mock := setupPostgresMock(t)
	mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO settings (key, value, updated_at)`)).
		WithArgs("polling.initial_timestamp", "0").
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, s.Set(context.Background(), "polling.initial_timestamp", "0"))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresStore_SetConstraintErrorIsNotUnavailable(t *testing.T) {
	s, mock := setupPostgresMock(t)
	mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO settings (key, value, updated_at)`)).
		WithArgs("k", "v").
		WillReturnError(&pq.Error{Code: "23505", Message: "duplicate key"})

	err := s.Set(context.Background(), "k", "v")
	require.Error(t, err)
	assert.False(t, errors.Is(err, sentinel.ErrUnavailable))
}

func TestPostgresStore_Delete(t *testing.T) {
	s, mock := setupPostgresMock(t)
	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM settings WHERE key = $1`)).
		WithArgs("presence_tracing.check_ins").
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, s.Delete(context.Background(), "presence_tracing.check_ins"))
	assert.NoError(t, mock.ExpectationsWereMet())
}
