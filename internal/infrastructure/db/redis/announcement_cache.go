package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/skprofiling/members-api/internal/core/domain"
)

const (
	recentKey = "announcements:recent"
	recentTTL = time.Minute
)

// AnnouncementCache caches the public recent-announcements listing as a JSON
// blob with a short TTL. It implements service.AnnouncementCache.
type AnnouncementCache struct {
	client *redis.Client
}

func NewAnnouncementCache(client *redis.Client) *AnnouncementCache {
	return &AnnouncementCache{client: client}
}

// GetRecent returns the cached listing and whether it was present.
func (c *AnnouncementCache) GetRecent(ctx context.Context) ([]domain.Announcement, bool, error) {
	raw, err := c.client.Get(ctx, recentKey).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("cache get: %w", err)
	}

	var items []domain.Announcement
	if err := json.Unmarshal(raw, &items); err != nil {
		// A corrupt entry behaves like a miss.
		return nil, false, fmt.Errorf("cache decode: %w", err)
	}
	return items, true, nil
}

func (c *AnnouncementCache) SetRecent(ctx context.Context, items []domain.Announcement) error {
	raw, err := json.Marshal(items)
	if err != nil {
		return fmt.Errorf("cache encode: %w", err)
	}
	return c.client.Set(ctx, recentKey, raw, recentTTL).Err()
}

func (c *AnnouncementCache) Invalidate(ctx context.Context) error {
	return c.client.Del(ctx, recentKey).Err()
}
