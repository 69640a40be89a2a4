package sink

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// LastPayloadPrefix prefixes the key holding the last payload of a channel.
const LastPayloadPrefix = "last:"

// RedisSink publishes every payload on the channel prefix+viewer. When ttl is
// positive the payload is also stored so a client that subscribes late can
// fetch the current state.
type RedisSink struct {
	client redis.UniversalClient
	prefix string
	ttl    time.Duration
}

func NewRedisSink(client redis.UniversalClient, prefix string, ttl time.Duration) *RedisSink {
	return &RedisSink{client: client, prefix: prefix, ttl: ttl}
}

// Channel returns the channel payloads for viewer are published on.
func (s *RedisSink) Channel(viewer string) string {
	return s.prefix + viewer
}

func (s *RedisSink) Send(ctx context.Context, viewer string, payload []byte) error {
	channel := s.Channel(viewer)

	pipe := s.client.TxPipeline()
	pipe.Publish(ctx, channel, payload)
	if s.ttl > 0 {
		pipe.Set(ctx, LastPayloadPrefix+channel, payload, s.ttl)
	}

	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to publish payload for %s: %w", viewer, err)
	}

	return nil
}

// LastPayload returns the last payload stored for viewer.
func (s *RedisSink) LastPayload(ctx context.Context, viewer string) ([]byte, error) {
	b, err := s.client.Get(ctx, LastPayloadPrefix+s.Channel(viewer)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrNoPayload
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get last payload for %s: %w", viewer, err)
	}
	return b, nil
}

// Subscribe listens for the payloads of viewer. The caller closes the
// subscription.
func (s *RedisSink) Subscribe(ctx context.Context, viewer string) *redis.PubSub {
	return s.client.Subscribe(ctx, s.Channel(viewer))
}
