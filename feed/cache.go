package feed

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/go-redis/redis/v8"
)

const (
	feedKeyPrefix = "feed__"
	// feedCacheTTL bounds staleness: a followee's brand-new post shows up in
	// a cached feed at most this much later.
	feedCacheTTL = 30 * time.Second
)

// Cache is a short-TTL redis cache of composed feed post ids, keyed per user.
// It is an optimization only: every method degrades to a miss on redis
// failure and the composer recomputes from the database.
type Cache struct {
	inner *redis.Client
}

// NewCache connects to the redis instance described by env and pings it.
func NewCache() (*Cache, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%s", os.Getenv("REDIS_HOST"), os.Getenv("REDIS_PORT")),
		Password: os.Getenv("REDIS_PASSWD"),
		DB:       0, // use default DB
	})
	if _, err := client.Ping(context.Background()).Result(); err != nil {
		return nil, err
	}
	return &Cache{inner: client}, nil
}

func feedKey(userID string) string {
	return feedKeyPrefix + userID
}

// GetFeedPostIds returns the cached post id sequence for a user, reporting a
// miss on absence or any redis error.
func (c *Cache) GetFeedPostIds(ctx context.Context, userID string) ([]string, bool) {
	raw, err := c.inner.Get(ctx, feedKey(userID)).Result()
	if err != nil {
		return nil, false
	}
	var ids []string
	if err := json.Unmarshal([]byte(raw), &ids); err != nil {
		return nil, false
	}
	return ids, true
}

// SetFeedPostIds stores the composed post id sequence with a short TTL.
func (c *Cache) SetFeedPostIds(ctx context.Context, userID string, ids []string) {
	raw, err := json.Marshal(ids)
	if err != nil {
		return
	}
	c.inner.Set(ctx, feedKey(userID), string(raw), feedCacheTTL)
}

// InvalidateFeed drops a user's cached feed. Called after the user's follow
// set changes so graph edits take effect immediately rather than after TTL.
func (c *Cache) InvalidateFeed(ctx context.Context, userID string) {
	c.inner.Del(ctx, feedKey(userID))
}
