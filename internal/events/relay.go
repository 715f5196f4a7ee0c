package events

import (
	"context"
	"encoding/json"
	"log/slog"

	"github.com/redis/go-redis/v9"

	"github.com/mcoot/coup-go/internal/model"
	"github.com/mcoot/coup-go/internal/sse"
)

// Relay forwards events from Redis pub/sub into the local SSE hubs. Run one
// per process.
type Relay struct {
	client *redis.Client
	hubs   *sse.HubManager
	logger *slog.Logger
}

// NewRelay creates a relay
func NewRelay(client *redis.Client, hubs *sse.HubManager, logger *slog.Logger) *Relay {
	return &Relay{
		client: client,
		hubs:   hubs,
		logger: logger.With(slog.String("component", "event-relay")),
	}
}

// Run subscribes to every room channel and blocks until ctx is cancelled.
// The subscription is confirmed before the ready channel, if any, is closed.
func (r *Relay) Run(ctx context.Context, ready chan<- struct{}) error {
	pubsub := r.client.PSubscribe(ctx, ChannelPrefix+"*")
	defer pubsub.Close()

	if _, err := pubsub.Receive(ctx); err != nil {
		return err
	}
	if ready != nil {
		close(ready)
	}
	r.logger.Info("event relay subscribed", slog.String("pattern", ChannelPrefix+"*"))

	ch := pubsub.Channel()
	for {
		select {
		case <-ctx.Done():
			r.logger.Info("event relay stopped")
			return nil
		case msg, ok := <-ch:
			if !ok {
				return nil
			}
			r.forward(msg)
		}
	}
}

func (r *Relay) forward(msg *redis.Message) {
	var event model.Event
	if err := json.Unmarshal([]byte(msg.Payload), &event); err != nil {
		r.logger.Warn("dropping malformed event",
			slog.String("channel", msg.Channel),
			slog.Any("error", err))
		return
	}
	if err := deliver(r.hubs, event, r.logger); err != nil {
		r.logger.Warn("failed to deliver event",
			slog.String("room", string(event.RoomCode)),
			slog.Any("error", err))
	}
}
