package repository

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRedisDismissalStore(t *testing.T) {
	ctx := context.Background()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer rdb.Close()

	store := NewRedisDismissalStore(rdb)

	dismissed, err := store.IsDismissed(ctx, 1, "goal-1")
	require.NoError(t, err)
	assert.False(t, dismissed)

	require.NoError(t, store.Dismiss(ctx, 1, "goal-1", time.Hour))
	assert.True(t, mr.Exists("reminder:dismissed:1:goal-1"))

	dismissed, err = store.IsDismissed(ctx, 1, "goal-1")
	require.NoError(t, err)
	assert.True(t, dismissed)

	dismissed, err = store.IsDismissed(ctx, 2, "goal-1")
	require.NoError(t, err)
	assert.False(t, dismissed)

	mr.FastForward(2 * time.Hour)
	dismissed, err = store.IsDismissed(ctx, 1, "goal-1")
	require.NoError(t, err)
	assert.False(t, dismissed)

	require.NoError(t, store.Dismiss(ctx, 1, "goal-2", time.Hour))
	require.NoError(t, store.Reset(ctx, 1, "goal-2"))
	assert.False(t, mr.Exists("reminder:dismissed:1:goal-2"))
}

func TestMemoryDismissalStore(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2024, 5, 15, 12, 0, 0, 0, time.UTC)
	store := NewMemoryDismissalStore(func() time.Time { return now })

	require.NoError(t, store.Dismiss(ctx, 1, "goal-1", 30*time.Minute))
	require.NoError(t, store.Dismiss(ctx, 1, "goal-2", 0))

	dismissed, _ := store.IsDismissed(ctx, 1, "goal-1")
	assert.True(t, dismissed)
	dismissed, _ = store.IsDismissed(ctx, 1, "goal-2")
	assert.False(t, dismissed)

	now = now.Add(30 * time.Minute)
	dismissed, _ = store.IsDismissed(ctx, 1, "goal-1")
	assert.False(t, dismissed)

	require.NoError(t, store.Dismiss(ctx, 1, "goal-1", time.Hour))
	require.NoError(t, store.Reset(ctx, 1, "goal-1"))
	dismissed, _ = store.IsDismissed(ctx, 1, "goal-1")
	assert.False(t, dismissed)
}
