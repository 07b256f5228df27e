package sqlite_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bkyoung/gh-summary/internal/adapter/store/sqlite"
)

func newTestStore(t *testing.T) *sqlite.Store {
	t.Helper()
	store, err := sqlite.NewStore(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func TestGetDiffMiss(t *testing.T) {
	store := newTestStore(t)

	diff, ok, err := store.GetDiff(context.Background(), "https://example.com/1.diff")
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Empty(t, diff)
}

func TestPutAndGetDiff(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	const url = "https://example.com/7.diff"
	const raw = "diff --git a/x.py b/x.py\n@@ -1 +1 @@\n-old\n+new\n"

	require.NoError(t, store.PutDiff(ctx, url, raw))

	diff, ok, err := store.GetDiff(ctx, url)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, raw, diff)
}

func TestPutDiffOverwrites(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	const url = "https://example.com/7.diff"

	require.NoError(t, store.PutDiff(ctx, url, "first"))
	require.NoError(t, store.PutDiff(ctx, url, "second"))

	diff, ok, err := store.GetDiff(ctx, url)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "second", diff)
}

func TestPruneOlderThan(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.PutDiff(ctx, "https://example.com/1.diff", "a"))
	require.NoError(t, store.PutDiff(ctx, "https://example.com/2.diff", "b"))

	// Entries were just written, so a past cutoff removes nothing.
	removed, err := store.PruneOlderThan(ctx, time.Now().Add(-time.Hour))
	require.NoError(t, err)
	assert.Zero(t, removed)

	// A future cutoff removes both.
	removed, err = store.PruneOlderThan(ctx, time.Now().Add(time.Hour))
	require.NoError(t, err)
	assert.EqualValues(t, 2, removed)

	_, ok, err := store.GetDiff(ctx, "https://example.com/1.diff")
	require.NoError(t, err)
	assert.False(t, ok)
}
