package leaderboard

import (
	"context"
	"fmt"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// exerciseBoard runs the behaviour every Board implementation shares.
func exerciseBoard(t *testing.T, b Board) {
	t.Helper()
	ctx := context.Background()

	rank, err := b.Rank(ctx, "ada")
	require.NoError(t, err)
	assert.Equal(t, 0, rank, "unplayed users are unranked")

	require.NoError(t, b.Record(ctx, "ada", "Ada", 85))
	require.NoError(t, b.Record(ctx, "bo", "Bo", 100))
	require.NoError(t, b.Record(ctx, "ada", "", 50))
	require.NoError(t, b.Record(ctx, "cy", "Cy", 5))

	top, err := b.Top(ctx, 10)
	require.NoError(t, err)
	require.Len(t, top, 3)

	assert.Equal(t, "ada", top[0].UserID)
	assert.Equal(t, "Ada", top[0].DisplayName, "empty name keeps the previous one")
	assert.Equal(t, 135, top[0].TotalScore)
	assert.Equal(t, 2, top[0].Games)
	assert.Equal(t, 85, top[0].BestScore)
	assert.Equal(t, 1, top[0].Rank)
	assert.InDelta(t, 67.5, top[0].AverageScore(), 0.001)

	assert.Equal(t, "bo", top[1].UserID)
	assert.Equal(t, 2, top[1].Rank)
	assert.Equal(t, "cy", top[2].UserID)

	top, err = b.Top(ctx, 2)
	require.NoError(t, err)
	assert.Len(t, top, 2)

	rank, err = b.Rank(ctx, "cy")
	require.NoError(t, err)
	assert.Equal(t, 3, rank)
}

func TestMemoryBoard(t *testing.T) {
	exerciseBoard(t, NewMemoryBoard())
}

// exerciseTieBreak checks the shared tie order on an empty board.
func exerciseTieBreak(t *testing.T, b Board) {
	t.Helper()
	ctx := context.Background()
	require.NoError(t, b.Record(ctx, "zed", "", 50))
	require.NoError(t, b.Record(ctx, "amy", "", 50))
	require.NoError(t, b.Record(ctx, "kit", "", 25))
	require.NoError(t, b.Record(ctx, "kit", "", 25))

	top, err := b.Top(ctx, 0)
	require.NoError(t, err)
	require.Len(t, top, 3)
	assert.Equal(t, []string{"amy", "zed", "kit"}, []string{top[0].UserID, top[1].UserID, top[2].UserID})
	assert.Equal(t, []int{50, 50, 50}, []int{top[0].TotalScore, top[1].TotalScore, top[2].TotalScore})

	rank, err := b.Rank(ctx, "kit")
	require.NoError(t, err)
	assert.Equal(t, 3, rank)
}

func TestMemoryBoard_TieBreak(t *testing.T) {
	exerciseTieBreak(t, NewMemoryBoard())
}

func TestMemoryBoard_Concurrent(t *testing.T) {
	b := NewMemoryBoard()
	ctx := context.Background()
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_ = b.Record(ctx, fmt.Sprintf("u%d", i%5), "", 10)
		}(i)
	}
	wg.Wait()

	top, err := b.Top(ctx, 0)
	require.NoError(t, err)
	require.Len(t, top, 5)
	for _, e := range top {
		assert.Equal(t, 100, e.TotalScore)
		assert.Equal(t, 10, e.Games)
	}
}

func newMiniRedisBoard(t *testing.T) *RedisBoard {
	t.Helper()
	mr := miniredis.RunT(t)
	b := NewRedisBoardFromClient(redis.NewClient(&redis.Options{Addr: mr.Addr()}), "test")
	t.Cleanup(func() { b.Close() })
	return b
}

func TestRedisBoard(t *testing.T) {
	b := newMiniRedisBoard(t)
	require.NoError(t, b.Ping(context.Background()))
	exerciseBoard(t, b)
}

func TestRedisBoard_TieBreak(t *testing.T) {
	exerciseTieBreak(t, newMiniRedisBoard(t))
}

func TestRedisBoard_Empty(t *testing.T) {
	b := newMiniRedisBoard(t)
	top, err := b.Top(context.Background(), 5)
	require.NoError(t, err)
	assert.Empty(t, top)
}

func TestRedisBoard_BestScoreOnlyRises(t *testing.T) {
	b := newMiniRedisBoard(t)
	ctx := context.Background()
	for _, score := range []int{35, 100, 5} {
		require.NoError(t, b.Record(ctx, "ada", "Ada", score))
	}
	top, err := b.Top(ctx, 1)
	require.NoError(t, err)
	require.Len(t, top, 1)
	assert.Equal(t, 100, top[0].BestScore)
	assert.Equal(t, 140, top[0].TotalScore)
	assert.Equal(t, 3, top[0].Games)
}

// TestRedisBoard_Server runs against a real redis when REDIS_ADDR is set.
func TestRedisBoard_Server(t *testing.T) {
	addr := os.Getenv("REDIS_ADDR")
	if addr == "" {
		t.Skip("REDIS_ADDR not set")
	}
	b := NewRedisBoard(addr, "", 0, fmt.Sprintf("fomcpulse-test-%d", time.Now().UnixNano()))
	ctx := context.Background()
	t.Cleanup(func() {
		b.client.Del(ctx, b.keys()...)
		b.Close()
	})
	require.NoError(t, b.Ping(ctx))
	exerciseBoard(t, b)
}
