package store

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func exerciseStore(t *testing.T, s Store) {
	t.Helper()
	ctx := context.Background()

	_, ok, err := s.Get(ctx, "missing")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, s.Set(ctx, StateKey, "first"))
	require.NoError(t, s.Set(ctx, StateKey, "second"))
	v, ok, err := s.Get(ctx, StateKey)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "second", v)

	base := time.Date(2026, time.October, 1, 12, 0, 0, 0, time.UTC)
	for i, strategy := range []string{"avalanche", "snowball", "double-double"} {
		require.NoError(t, s.RecordRun(ctx, Run{
			CreatedAt:    base.Add(time.Duration(i) * time.Hour),
			Strategy:     strategy,
			Contribution: decimal.RequireFromString("600"),
			Loans:        2,
			Months:       10 + i,
			TotalPaid:    decimal.RequireFromString("5123.45"),
			Interest:     decimal.RequireFromString("123.45"),
		}))
	}

	runs, err := s.Runs(ctx, 2)
	require.NoError(t, err)
	require.Len(t, runs, 2)
	assert.Equal(t, "double-double", runs[0].Strategy)
	assert.Equal(t, "snowball", runs[1].Strategy)
	assert.Equal(t, 12, runs[0].Months)
	assert.True(t, runs[0].Interest.Equal(decimal.RequireFromString("123.45")))
	assert.True(t, runs[0].CreatedAt.Equal(base.Add(2*time.Hour)))

	all, err := s.Runs(ctx, 0)
	require.NoError(t, err)
	assert.Len(t, all, 3)
}

func TestMemory(t *testing.T) {
	exerciseStore(t, NewMemory())
}

func TestSQLite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "debtburn.db")
	s, err := OpenSQLite(path)
	require.NoError(t, err)
	exerciseStore(t, s)
	require.NoError(t, s.Close())

	// Data survives reopening.
	s, err = OpenSQLite(path)
	require.NoError(t, err)
	defer func() { _ = s.Close() }()
	v, ok, err := s.Get(context.Background(), StateKey)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "second", v)
}

func TestRedis(t *testing.T) {
	addr := os.Getenv("DEBTBURN_TEST_REDIS_ADDR")
	if addr == "" {
		t.Skip("DEBTBURN_TEST_REDIS_ADDR not set")
	}
	ctx := context.Background()
	s, err := OpenRedis(ctx, addr)
	require.NoError(t, err)
	defer func() { _ = s.Close() }()
	require.NoError(t, s.client.FlushDB(ctx).Err())
	exerciseStore(t, s)
}

func TestOpen(t *testing.T) {
	ctx := context.Background()

	s, err := Open(ctx, Options{Backend: BackendMemory})
	require.NoError(t, err)
	assert.IsType(t, &Memory{}, s)

	s, err = Open(ctx, Options{Path: filepath.Join(t.TempDir(), "x.db")})
	require.NoError(t, err)
	assert.IsType(t, &SQLite{}, s)
	require.NoError(t, s.Close())

	_, err = Open(ctx, Options{Backend: "etcd"})
	assert.EqualError(t, err, `unknown storage backend "etcd"`)

	_, err = Open(ctx, Options{Backend: BackendRedis})
	assert.Error(t, err)
}
