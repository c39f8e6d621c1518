package redis

import (
	"context"
	"fmt"
	"time"

	goredis "github.com/redis/go-redis/v9"
)

// EventCache implements ports.EventCache using Redis. It is a fast-path
// duplicate filter for gateway webhook deliveries: keys are only marked
// after an event is fully processed, so a crashed delivery stays eligible
// for redelivery.
type EventCache struct {
	client *goredis.Client
	prefix string
	ttl    time.Duration
}

// NewEventCache creates a new Redis-backed webhook event cache.
func NewEventCache(client *goredis.Client) *EventCache {
	return &EventCache{
		client: client,
		prefix: "event:",
		ttl:    72 * time.Hour,
	}
}

// Seen reports whether the event key was already processed.
func (c *EventCache) Seen(ctx context.Context, key string) (bool, error) {
	n, err := c.client.Exists(ctx, c.prefix+key).Result()
	if err != nil {
		return false, fmt.Errorf("redis event seen: %w", err)
	}
	return n > 0, nil
}

// MarkSeen records the event key as processed.
func (c *EventCache) MarkSeen(ctx context.Context, key string) error {
	if err := c.client.Set(ctx, c.prefix+key, "1", c.ttl).Err(); err != nil {
		return fmt.Errorf("redis event mark seen: %w", err)
	}
	return nil
}
