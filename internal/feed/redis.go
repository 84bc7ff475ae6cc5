package feed

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const RedisChannel = "schedule_entries:changes"

type redisEnvelope struct {
	Origin string `json:"origin"`
	Event
}

// RedisRelay shares change events between app instances. Publish delivers to
// the local broker first and then to Redis; Run feeds events from other
// instances into the local broker. Events carry the instance id so an
// instance never re-delivers its own events.
type RedisRelay struct {
	client  *redis.Client
	channel string
	local   Publisher
	origin  string
}

func NewRedisRelay(redisURL string, local Publisher) (*RedisRelay, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("invalid redis url: %w", err)
	}

	return NewRedisRelayWithClient(redis.NewClient(opts), local), nil
}

func NewRedisRelayWithClient(client *redis.Client, local Publisher) *RedisRelay {
	return &RedisRelay{
		client:  client,
		channel: RedisChannel,
		local:   local,
		origin:  uuid.New().String(),
	}
}

func (r *RedisRelay) Name() string { return "redis" }

func (r *RedisRelay) Publish(e Event) {
	r.local.Publish(e)

	payload, err := json.Marshal(redisEnvelope{Origin: r.origin, Event: e})
	if err != nil {
		slog.Error("failed to encode change event for redis", "error", err)
		return
	}

	// Publish must not block the caller on a slow or absent Redis.
	go func() {
		err := r.client.Publish(context.Background(), r.channel, payload).Err()
		if err != nil {
			slog.Warn("failed to relay change event", "error", err, "channel", r.channel)
		}
	}()
}

// Run subscribes to the relay channel until ctx is cancelled.
func (r *RedisRelay) Run(ctx context.Context) error {
	sub := r.client.Subscribe(ctx, r.channel)
	defer sub.Close()

	_, err := sub.Receive(ctx)
	if err != nil {
		if ctx.Err() != nil {
			return nil
		}
		return fmt.Errorf("failed to subscribe to %s: %w", r.channel, err)
	}

	slog.Info("change feed listening", "source", r.Name(), "channel", r.channel)

	ch := sub.Channel()
	for {
		select {
		case <-ctx.Done():
			return nil
		case msg, ok := <-ch:
			if !ok {
				return nil
			}

			var env redisEnvelope
			err := json.Unmarshal([]byte(msg.Payload), &env)
			if err != nil {
				slog.Warn("ignoring malformed relay message", "error", err)
				continue
			}
			if env.Origin == r.origin {
				continue
			}

			event, err := ParseEvent([]byte(msg.Payload))
			if err != nil {
				slog.Warn("ignoring malformed relay message", "error", err)
				continue
			}

			event.Source = r.Name()
			r.local.Publish(event)
		}
	}
}

func (r *RedisRelay) Close() error {
	return r.client.Close()
}
