package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"SEOScorer/internal/ports"
)

// RedisPublisher pushes engine events onto Redis pub/sub channels named after
// the event type. Delivery is fire-and-forget; consumers subscribe to the
// channels they care about.
type RedisPublisher struct {
	client  *redis.Client
	prefix  string
	timeout time.Duration
}

var _ ports.EventPublisher = (*RedisPublisher)(nil)

// envelope is the wire shape shared with downstream consumers.
type envelope struct {
	EventType   string    `json:"event_type"`
	WorkspaceID string    `json:"workspace_id,omitempty"`
	Payload     any       `json:"payload"`
	PublishedAt time.Time `json:"published_at"`
}

// NewRedisPublisher connects to Redis at addr; prefix is prepended to every
// channel name (e.g. "seo." yields "seo.article.generate.request").
func NewRedisPublisher(addr, password, prefix string) *RedisPublisher {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
	})
	return NewRedisPublisherWithClient(client, prefix)
}

// NewRedisPublisherWithClient wires an existing client, mainly for tests.
func NewRedisPublisherWithClient(client *redis.Client, prefix string) *RedisPublisher {
	return &RedisPublisher{
		client:  client,
		prefix:  prefix,
		timeout: 5 * time.Second,
	}
}

// Publish marshals the payload into the event envelope and publishes it.
func (p *RedisPublisher) Publish(ctx context.Context, eventType string, payload any, workspaceID uuid.UUID) error {
	if p.client == nil {
		return fmt.Errorf("redis publisher misconfigured")
	}

	env := envelope{
		EventType:   eventType,
		Payload:     payload,
		PublishedAt: time.Now().UTC(),
	}
	if workspaceID != uuid.Nil {
		env.WorkspaceID = workspaceID.String()
	}

	body, err := json.Marshal(env)
	if err != nil {
		return fmt.Errorf("marshal event %s: %w", eventType, err)
	}

	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	if err := p.client.Publish(ctx, p.prefix+eventType, body).Err(); err != nil {
		return fmt.Errorf("publish %s: %w", eventType, err)
	}

	return nil
}

// Close releases the underlying connection pool.
func (p *RedisPublisher) Close() error {
	if p.client == nil {
		return nil
	}
	return p.client.Close()
}
