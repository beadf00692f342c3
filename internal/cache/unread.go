package cache

import (
	"context"
	"strconv"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

// genTTL outlives any cached count; an expired generation reads as "0".
const genTTL = 24 * time.Hour

// UnreadCounts caches per-user unread notification counts in Redis.
// Each count is stamped with the user's generation, which Invalidate bumps;
// a count stamped with an older generation is a miss.
// Failures are logged and treated as misses.
type UnreadCounts struct {
	rdb *redis.Client
	ttl time.Duration
	log zerolog.Logger
}

func NewUnreadCounts(rdb *redis.Client, ttl time.Duration, log zerolog.Logger) *UnreadCounts {
	if ttl <= 0 {
		ttl = 30 * time.Second
	}
	return &UnreadCounts{rdb: rdb, ttl: ttl, log: log}
}

func unreadKey(userID string) string { return "unread:" + userID }
func genKey(userID string) string    { return "unread:gen:" + userID }

func encodeCount(gen string, n int64) string {
	return gen + ":" + strconv.FormatInt(n, 10)
}

// decodeCount returns the count in raw when it was stamped with gen.
func decodeCount(raw, gen string) (int64, bool) {
	stamp, count, ok := strings.Cut(raw, ":")
	if !ok || stamp != gen {
		return 0, false
	}
	n, err := strconv.ParseInt(count, 10, 64)
	if err != nil {
		return 0, false
	}
	return n, true
}

// Get returns the cached count and the generation to stamp a refill with.
// An empty generation means the cache is unavailable.
func (c *UnreadCounts) Get(ctx context.Context, userID string) (int64, string, bool) {
	vals, err := c.rdb.MGet(ctx, unreadKey(userID), genKey(userID)).Result()
	if err != nil {
		c.log.Warn().Err(err).Str("user_id", userID).Msg("unread cache get")
		return 0, "", false
	}
	gen := "0"
	if g, ok := vals[1].(string); ok {
		gen = g
	}
	raw, ok := vals[0].(string)
	if !ok {
		return 0, gen, false
	}
	n, ok := decodeCount(raw, gen)
	return n, gen, ok
}

func (c *UnreadCounts) Set(ctx context.Context, userID, gen string, n int64) {
	if gen == "" {
		return
	}
	if err := c.rdb.Set(ctx, unreadKey(userID), encodeCount(gen, n), c.ttl).Err(); err != nil {
		c.log.Warn().Err(err).Str("user_id", userID).Msg("unread cache set")
	}
}

func (c *UnreadCounts) Invalidate(ctx context.Context, userID string) {
	pipe := c.rdb.TxPipeline()
	pipe.Incr(ctx, genKey(userID))
	pipe.Expire(ctx, genKey(userID), genTTL)
	if _, err := pipe.Exec(ctx); err != nil {
		c.log.Warn().Err(err).Str("user_id", userID).Msg("unread cache invalidate")
	}
}

// Connect dials Redis and pings it once.
func Connect(ctx context.Context, addr, password string, db int) (*redis.Client, error) {
	rdb := redis.NewClient(&redis.Options{Addr: addr, Password: password, DB: db})
	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := rdb.Ping(pingCtx).Err(); err != nil {
		_ = rdb.Close()
		return nil, err
	}
	return rdb, nil
}
