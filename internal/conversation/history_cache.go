package conversation

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/brightdoor/realty-ai-platform/internal/leads"
)

// HistoryCache keeps recent conversation turns in Redis so busy
// conversations do not re-read the durable store on every message. It is
// a cache, not a source of truth: misses and Redis outages are normal
// and callers fall back to the lead record.
type HistoryCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewHistoryCache wraps a Redis client. client may be nil, in which case
// every load misses and every save is a no-op.
func NewHistoryCache(client *redis.Client, ttl time.Duration) *HistoryCache {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &HistoryCache{client: client, ttl: ttl}
}

func historyKey(leadID string) string {
	return "conversation:" + leadID
}

// Load returns the cached turns for a lead, or (nil, nil) on a miss.
func (c *HistoryCache) Load(ctx context.Context, leadID string) ([]leads.Turn, error) {
	if c == nil || c.client == nil {
		return nil, nil
	}

	raw, err := c.client.Get(ctx, historyKey(leadID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("conversation: history cache read: %w", err)
	}

	var turns []leads.Turn
	if err := json.Unmarshal(raw, &turns); err != nil {
		return nil, fmt.Errorf("conversation: history cache decode: %w", err)
	}
	return turns, nil
}

// Save stores the turns for a lead, refreshing the TTL.
func (c *HistoryCache) Save(ctx context.Context, leadID string, turns []leads.Turn) error {
	if c == nil || c.client == nil {
		return nil
	}

	raw, err := json.Marshal(turns)
	if err != nil {
		return fmt.Errorf("conversation: history cache encode: %w", err)
	}
	if err := c.client.Set(ctx, historyKey(leadID), raw, c.ttl).Err(); err != nil {
		return fmt.Errorf("conversation: history cache write: %w", err)
	}
	return nil
}

// Invalidate drops the cached history for a lead.
func (c *HistoryCache) Invalidate(ctx context.Context, leadID string) error {
	if c == nil || c.client == nil {
		return nil
	}
	if err := c.client.Del(ctx, historyKey(leadID)).Err(); err != nil {
		return fmt.Errorf("conversation: history cache invalidate: %w", err)
	}
	return nil
}
