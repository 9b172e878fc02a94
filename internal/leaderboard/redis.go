package leaderboard

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"

	"FOMCPulse/internal/model"
)

// gamesScale separates the total from the games count in the ranking score.
const gamesScale = 1_000_000

// RedisBoard keeps a ranking sorted set and per-user details in hashes.
// The ranking score is -total*gamesScale + games, read in ascending order, so
// ties fall to fewer games and then to the user id as in MemoryBoard. It
// assumes fewer than gamesScale games per user.
type RedisBoard struct {
	client *redis.Client
	prefix string
}

// bestScoreScript raises the stored best score only when the new score is higher.
var bestScoreScript = redis.NewScript(`
local cur = tonumber(redis.call('HGET', KEYS[1], ARGV[1]) or '-1')
if tonumber(ARGV[2]) > cur then
  redis.call('HSET', KEYS[1], ARGV[1], ARGV[2])
end
return 0`)

func NewRedisBoard(addr, password string, db int, prefix string) *RedisBoard {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
	return NewRedisBoardFromClient(client, prefix)
}

func NewRedisBoardFromClient(client *redis.Client, prefix string) *RedisBoard {
	if prefix == "" {
		prefix = "fomcpulse"
	}
	return &RedisBoard{client: client, prefix: prefix}
}

func (b *RedisBoard) rankingKey() string { return b.prefix + ":ranking" }
func (b *RedisBoard) totalsKey() string  { return b.prefix + ":totals" }
func (b *RedisBoard) namesKey() string   { return b.prefix + ":names" }
func (b *RedisBoard) gamesKey() string   { return b.prefix + ":games" }
func (b *RedisBoard) bestKey() string    { return b.prefix + ":best" }

func (b *RedisBoard) keys() []string {
	return []string{b.rankingKey(), b.totalsKey(), b.namesKey(), b.gamesKey(), b.bestKey()}
}

// Ping checks connectivity.
func (b *RedisBoard) Ping(ctx context.Context) error {
	return b.client.Ping(ctx).Err()
}

func (b *RedisBoard) Record(ctx context.Context, userID, displayName string, score int) error {
	_, err := b.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.ZIncrBy(ctx, b.rankingKey(), float64(-int64(score)*gamesScale+1), userID)
		pipe.HIncrBy(ctx, b.totalsKey(), userID, int64(score))
		pipe.HIncrBy(ctx, b.gamesKey(), userID, 1)
		if displayName != "" {
			pipe.HSet(ctx, b.namesKey(), userID, displayName)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("redis record %s: %w", userID, err)
	}
	if err := bestScoreScript.Run(ctx, b.client, []string{b.bestKey()}, userID, score).Err(); err != nil && !errors.Is(err, redis.Nil) {
		return fmt.Errorf("redis best score %s: %w", userID, err)
	}
	return nil
}

func (b *RedisBoard) Top(ctx context.Context, n int) ([]model.LeaderboardEntry, error) {
	stop := int64(-1)
	if n > 0 {
		stop = int64(n - 1)
	}
	members, err := b.client.ZRangeWithScores(ctx, b.rankingKey(), 0, stop).Result()
	if err != nil {
		return nil, fmt.Errorf("redis top: %w", err)
	}
	if len(members) == 0 {
		return nil, nil
	}

	ids := make([]string, len(members))
	for i, m := range members {
		ids[i] = fmt.Sprint(m.Member)
	}
	names, err := b.client.HMGet(ctx, b.namesKey(), ids...).Result()
	if err != nil {
		return nil, fmt.Errorf("redis names: %w", err)
	}
	totals, err := b.client.HMGet(ctx, b.totalsKey(), ids...).Result()
	if err != nil {
		return nil, fmt.Errorf("redis totals: %w", err)
	}
	games, err := b.client.HMGet(ctx, b.gamesKey(), ids...).Result()
	if err != nil {
		return nil, fmt.Errorf("redis games: %w", err)
	}
	best, err := b.client.HMGet(ctx, b.bestKey(), ids...).Result()
	if err != nil {
		return nil, fmt.Errorf("redis best: %w", err)
	}

	out := make([]model.LeaderboardEntry, len(members))
	for i := range members {
		out[i] = model.LeaderboardEntry{
			Rank:        i + 1,
			UserID:      ids[i],
			DisplayName: asString(names[i]),
			TotalScore:  asInt(totals[i]),
			Games:       asInt(games[i]),
			BestScore:   asInt(best[i]),
		}
	}
	return out, nil
}

func (b *RedisBoard) Rank(ctx context.Context, userID string) (int, error) {
	rank, err := b.client.ZRank(ctx, b.rankingKey(), userID).Result()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("redis rank %s: %w", userID, err)
	}
	return int(rank) + 1, nil
}

func (b *RedisBoard) Close() error {
	log.Info().Msg("closing redis leaderboard")
	return b.client.Close()
}

func asString(v interface{}) string {
	if s, ok := v.(string); ok {
		return s
	}
	return ""
}

func asInt(v interface{}) int {
	s, ok := v.(string)
	if !ok {
		return 0
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0
	}
	return n
}
