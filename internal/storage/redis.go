package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

// redisKeep caps the per-game session list; totals keep counting past it.
const redisKeep = 1000

// Redis stores the play log in Redis so several servers can share it.
type Redis struct {
	client *redis.Client
	now    func() time.Time
}

// OpenRedis connects to the server described by a redis:// URL.
func OpenRedis(ctx context.Context, url string) (*Redis, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("storage: invalid redis url: %w", err)
	}
	return newRedis(ctx, redis.NewClient(opts))
}

func newRedis(ctx context.Context, client *redis.Client) (*Redis, error) {
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("storage: failed to connect to redis: %w", err)
	}
	return &Redis{client: client, now: time.Now}, nil
}

func sessionsKey(gameID string) string { return "tetris:history:" + gameID + ":sessions" }
func totalsKey(gameID string) string   { return "tetris:history:" + gameID + ":totals" }
func seqKey(gameID string) string      { return "tetris:history:" + gameID + ":seq" }

// Close closes the client.
func (r *Redis) Close() error {
	return r.client.Close()
}

// SaveSession pushes the record onto the game's list and bumps its totals.
func (r *Redis) SaveSession(ctx context.Context, rec Record) (int64, error) {
	id, err := r.client.Incr(ctx, seqKey(rec.GameID)).Result()
	if err != nil {
		return 0, fmt.Errorf("storage: failed to allocate session id: %w", err)
	}

	rec.ID = id
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = r.now().UTC()
	}

	data, err := json.Marshal(rec)
	if err != nil {
		return 0, fmt.Errorf("storage: failed to marshal session: %w", err)
	}

	_, err = r.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.LPush(ctx, sessionsKey(rec.GameID), data)
		pipe.LTrim(ctx, sessionsKey(rec.GameID), 0, redisKeep-1)
		pipe.HIncrBy(ctx, totalsKey(rec.GameID), "games", 1)
		pipe.HIncrBy(ctx, totalsKey(rec.GameID), "pieces", int64(rec.Pieces))
		pipe.HIncrBy(ctx, totalsKey(rec.GameID), "rows", int64(rec.Rows))
		pipe.HIncrBy(ctx, totalsKey(rec.GameID), "duration_ms", rec.Duration.Milliseconds())
		pipe.HSet(ctx, totalsKey(rec.GameID), "last_played", rec.CreatedAt.UnixMilli())
		return nil
	})
	if err != nil {
		return 0, fmt.Errorf("storage: failed to save session: %w", err)
	}

	return id, nil
}

// RecentSessions reads the head of the game's list.
func (r *Redis) RecentSessions(ctx context.Context, gameID string, limit int) ([]Record, error) {
	values, err := r.client.LRange(ctx, sessionsKey(gameID), 0, int64(defaultLimit(limit))-1).Result()
	if err != nil {
		return nil, fmt.Errorf("storage: failed to read sessions: %w", err)
	}

	records := make([]Record, 0, len(values))
	for _, v := range values {
		var rec Record
		if err := json.Unmarshal([]byte(v), &rec); err != nil {
			return nil, fmt.Errorf("storage: failed to unmarshal session: %w", err)
		}
		records = append(records, rec)
	}
	return records, nil
}

// Totals reads the game's counters hash.
func (r *Redis) Totals(ctx context.Context, gameID string) (Totals, error) {
	values, err := r.client.HGetAll(ctx, totalsKey(gameID)).Result()
	if errors.Is(err, redis.Nil) {
		return Totals{GameID: gameID}, nil
	}
	if err != nil {
		return Totals{}, fmt.Errorf("storage: failed to read totals: %w", err)
	}

	field := func(name string) int64 {
		n, _ := strconv.ParseInt(values[name], 10, 64)
		return n
	}

	totals := Totals{
		GameID:   gameID,
		Games:    int(field("games")),
		Pieces:   field("pieces"),
		Rows:     field("rows"),
		PlayTime: time.Duration(field("duration_ms")) * time.Millisecond,
	}
	if ms := field("last_played"); ms > 0 {
		totals.LastPlayed = time.UnixMilli(ms).UTC()
	}
	return totals, nil
}

var _ History = (*Redis)(nil)
