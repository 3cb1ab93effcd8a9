package store

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/d4rken/cwa-app-android/internal/settings"
)

// exerciseStore runs the behaviour every backend must share.
func exerciseStore(t *testing.T, s settings.Store) {
	t.Helper()
	ctx := context.Background()

	t.Run("absent key reports not ok", func(t *testing.T) {
		_, ok, err := s.Get(ctx, "missing")
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("set then get returns value verbatim", func(t *testing.T) {
		raw := `{"labelText":{"type":"string","parameters":[]}}`
		require.NoError(t, s.Set(ctx, "ccl.admission_check_scenarios", raw))
		got, ok, err := s.Get(ctx, "ccl.admission_check_scenarios")
		require.NoError(t, err)
		assert.True(t, ok)
		assert.Equal(t, raw, got)
	})

	t.Run("set overwrites", func(t *testing.T) {
		require.NoError(t, s.Set(ctx, "k", "one"))
		require.NoError(t, s.Set(ctx, "k", "two"))
		got, _, err := s.Get(ctx, "k")
		require.NoError(t, err)
		assert.Equal(t, "two", got)
	})

	t.Run("empty string is a present value", func(t *testing.T) {
		require.NoError(t, s.Set(ctx, "empty", ""))
		got, ok, err := s.Get(ctx, "empty")
		require.NoError(t, err)
		assert.True(t, ok)
		assert.Equal(t, "", got)
	})

	t.Run("delete removes key and is idempotent", func(t *testing.T) {
		require.NoError(t, s.Set(ctx, "gone", "x"))
		require.NoError(t, s.Delete(ctx, "gone"))
		require.NoError(t, s.Delete(ctx, "gone"))
		_, ok, err := s.Get(ctx, "gone")
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("typed helpers", func(t *testing.T) {
		require.NoError(t, settings.SetBool(ctx, s, "flag", true))
		flag, err := settings.Bool(ctx, s, "flag")
		require.NoError(t, err)
		assert.True(t, flag)

		require.NoError(t, settings.SetInt64(ctx, s, "ts", 1700000000000))
		ts, err := settings.Int64(ctx, s, "ts")
		require.NoError(t, err)
		assert.Equal(t, int64(1700000000000), ts)

		unset, err := settings.Int64(ctx, s, "never-written")
		require.NoError(t, err)
		assert.Zero(t, unset)
	})
}

func TestInMemoryStore(t *testing.T) {
	exerciseStore(t, NewInMemoryStore())
}

func TestInMemoryStore_CancelledContext(t *testing.T) {
	s := NewInMemoryStore()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	assert.Error(t, s.Set(ctx, "k", "v"))
	_, _, err := s.Get(ctx, "k")
	assert.Error(t, err)
}

func TestSQLiteStore(t *testing.T) {
	s, err := OpenSQLite(filepath.Join(t.TempDir(), "settings.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })

	exerciseStore(t, s)
}

func TestSQLiteStore_SurvivesReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.db")
	ctx := context.Background()

	s, err := OpenSQLite(path)
	require.NoError(t, err)
	require.NoError(t, s.Set(ctx, "polling.notification_sent", "true"))
	require.NoError(t, s.Close())

	reopened, err := OpenSQLite(path)
	require.NoError(t, err)
	t.Cleanup(func() { _ = reopened.Close() })

	got, ok, err := reopened.Get(ctx, "polling.notification_sent")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "true", got)
}

func TestSQLiteStore_RequiresPath(t *testing.T) {
	_, err := OpenSQLite("  ")
	require.Error(t, err)
}
