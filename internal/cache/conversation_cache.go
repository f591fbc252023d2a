package cache

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"aligniq/internal/model"
)

const snapshotTTL = 10 * time.Minute

// Snapshot is the cached derived view of a conversation, refreshed after
// every mutation. It exists so chart polling does not hit mongo; the
// response set in mongo stays the source of truth.
type Snapshot struct {
	Status      model.ConversationStatus `json:"status"`
	Totals      model.ScoreVector        `json:"totals"`
	Answered    int                      `json:"answered"`
	NextIndex   int                      `json:"nextIndex"`
	Done        bool                     `json:"done"`
	Recommended model.Category           `json:"recommended,omitempty"`
	UpdatedAt   time.Time                `json:"updatedAt"`
}

type ConversationCache interface {
	Set(ctx context.Context, conversationID string, snap *Snapshot) error
	// Get returns (nil, nil) on a cache miss.
	Get(ctx context.Context, conversationID string) (*Snapshot, error)
	Delete(ctx context.Context, conversationID string) error
}

type conversationCache struct {
	client *redis.Client
}

func NewConversationCache(client *redis.Client) ConversationCache {
	return &conversationCache{
		client: client,
	}
}

func (c *conversationCache) Set(ctx context.Context, conversationID string, snap *Snapshot) error {
	data, err := json.Marshal(snap)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, "conversation:"+conversationID, data, snapshotTTL).Err()
}

func (c *conversationCache) Get(ctx context.Context, conversationID string) (*Snapshot, error) {
	data, err := c.client.Get(ctx, "conversation:"+conversationID).Result()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var snap Snapshot
	if err := json.Unmarshal([]byte(data), &snap); err != nil {
		return nil, err
	}
	return &snap, nil
}

func (c *conversationCache) Delete(ctx context.Context, conversationID string) error {
	return c.client.Del(ctx, "conversation:"+conversationID).Err()
}
