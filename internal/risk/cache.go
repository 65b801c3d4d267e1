package risk

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"log/slog"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

// Cache is a short-TTL Redis cache for model scores, keyed by a stable hash
// of the feature map. Identical feature sets are frequent during retries and
// checkout re-renders; the cache spares the model service those calls.
//
// The cache is strictly best-effort: a Redis failure is logged and ignored so
// it can never affect a decision.
type Cache struct {
	rdb *redis.Client
	ttl time.Duration
}

const cacheKeyPrefix = "risk:score:"

func NewCache(rdb *redis.Client, ttl time.Duration) *Cache {
	if ttl <= 0 {
		ttl = 30 * time.Second
	}
	return &Cache{rdb: rdb, ttl: ttl}
}

func (c *Cache) Get(ctx context.Context, features map[string]float64) (float64, bool) {
	if c == nil || c.rdb == nil {
		return 0, false
	}
	res, err := c.rdb.Get(ctx, c.key(features)).Result()
	if err != nil {
		if err != redis.Nil {
			slog.Debug("risk cache get failed", "err", err)
		}
		return 0, false
	}
	v, err := strconv.ParseFloat(res, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

func (c *Cache) Set(ctx context.Context, features map[string]float64, score float64) {
	if c == nil || c.rdb == nil {
		return
	}
	if err := c.rdb.Set(ctx, c.key(features), strconv.FormatFloat(score, 'f', -1, 64), c.ttl).Err(); err != nil {
		slog.Debug("risk cache set failed", "err", err)
	}
}

// key serializes the feature map in sorted-key order so identical feature
// sets always hash to the same key.
func (c *Cache) key(features map[string]float64) string {
	names := make([]string, 0, len(features))
	for name := range features {
		names = append(names, name)
	}
	sort.Strings(names)

	var b strings.Builder
	for _, name := range names {
		fmt.Fprintf(&b, "%s=%s;", name, strconv.FormatFloat(features[name], 'g', -1, 64))
	}
	sum := sha256.Sum256([]byte(b.String()))
	return cacheKeyPrefix + hex.EncodeToString(sum[:])
}
