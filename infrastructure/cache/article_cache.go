package cache

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

// Seen-article entries expire after two weeks; the database title check
// still catches older duplicates.
const seenTTL = 14 * 24 * time.Hour

// ArticleCache keeps md5 hashes of fetched articles so the fetcher can skip
// duplicates cheaply. A nil Redis client disables the cache.
type ArticleCache struct {
	client *redis.Client
}

func NewArticleCache(client *redis.Client) *ArticleCache {
	return &ArticleCache{client: client}
}

func (c *ArticleCache) Seen(ctx context.Context, hash string) (bool, error) {
	if c.client == nil {
		return false, nil
	}
	n, err := c.client.Exists(ctx, key(hash)).Result()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func (c *ArticleCache) MarkSeen(ctx context.Context, hash string) error {
	if c.client == nil {
		return nil
	}
	return c.client.Set(ctx, key(hash), 1, seenTTL).Err()
}

func key(hash string) string { return "article:seen:" + hash }
