package notify

import (
	"context"
	"encoding/json"
	"log"

	"github.com/redis/go-redis/v9"
)

// ChangeChannel is the pub/sub channel carrying advisory change signals,
// the server-side replacement for the old cross-tab storage events.
const ChangeChannel = "cleancity.changes"

// RedisPublisher broadcasts change events over Redis pub/sub.
type RedisPublisher struct {
	client *redis.Client
}

// NewRedisPublisher wraps an already-connected Redis client. The client's
// lifecycle is owned by the caller.
func NewRedisPublisher(client *redis.Client) *RedisPublisher {
	return &RedisPublisher{client: client}
}

func (p *RedisPublisher) Publish(ctx context.Context, ev Event) error {
	data, err := json.Marshal(ev)
	if err != nil {
		return err
	}
	return p.client.Publish(ctx, ChangeChannel, data).Err()
}

func (p *RedisPublisher) Close() error { return nil }

// Subscribe returns a channel of change events and a stop function. Malformed
// payloads are logged and skipped. The channel closes when ctx is done or
// stop is called.
func (p *RedisPublisher) Subscribe(ctx context.Context) (<-chan Event, func()) {
	sub := p.client.Subscribe(ctx, ChangeChannel)
	events := make(chan Event)

	go func() {
		defer close(events)
		for msg := range sub.Channel() {
			var ev Event
			if err := json.Unmarshal([]byte(msg.Payload), &ev); err != nil {
				log.Printf("Ignoring malformed change event: %v", err)
				continue
			}
			select {
			case events <- ev:
			case <-ctx.Done():
				return
			}
		}
	}()

	return events, func() {
		if err := sub.Close(); err != nil {
			log.Printf("Failed to close change subscription: %v", err)
		}
	}
}
