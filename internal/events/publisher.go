package events

import (
	"context"
	"encoding/json"
	"log/slog"

	"github.com/redis/go-redis/v9"

	"github.com/mcoot/coup-go/internal/model"
	"github.com/mcoot/coup-go/internal/sse"
)

// ChannelPrefix namespaces the Redis pub/sub channels carrying room events
const ChannelPrefix = "coup:events:"

// Channel returns the pub/sub channel for a room
func Channel(code model.RoomCode) string {
	return ChannelPrefix + string(code)
}

// Publisher delivers room events to every subscriber of the room
type Publisher interface {
	Publish(ctx context.Context, event model.Event) error
}

// Nop discards every event
type Nop struct{}

var _ Publisher = Nop{}

func (Nop) Publish(ctx context.Context, event model.Event) error { return nil }

// HubPublisher writes events straight into this process's SSE hubs
type HubPublisher struct {
	hubs   *sse.HubManager
	logger *slog.Logger
}

var _ Publisher = (*HubPublisher)(nil)

// NewHubPublisher creates a publisher for single-instance deployments
func NewHubPublisher(hubs *sse.HubManager, logger *slog.Logger) *HubPublisher {
	return &HubPublisher{
		hubs:   hubs,
		logger: logger.With(slog.String("component", "events")),
	}
}

// Publish broadcasts the event to the room's hub, if anyone is listening
func (p *HubPublisher) Publish(ctx context.Context, event model.Event) error {
	return deliver(p.hubs, event, p.logger)
}

// RedisPublisher publishes events on the room's Redis channel. Every server
// instance running a Relay forwards them to its own clients.
type RedisPublisher struct {
	client *redis.Client
	logger *slog.Logger
}

var _ Publisher = (*RedisPublisher)(nil)

// NewRedisPublisher creates a publisher for multi-instance deployments
func NewRedisPublisher(client *redis.Client, logger *slog.Logger) *RedisPublisher {
	return &RedisPublisher{
		client: client,
		logger: logger.With(slog.String("component", "events")),
	}
}

func (p *RedisPublisher) Publish(ctx context.Context, event model.Event) error {
	data, err := json.Marshal(event)
	if err != nil {
		return err
	}
	receivers, err := p.client.Publish(ctx, Channel(event.RoomCode), data).Result()
	if err != nil {
		return err
	}
	p.logger.Debug("event published",
		slog.String("room", string(event.RoomCode)),
		slog.String("type", string(event.Type)),
		slog.Int64("receivers", receivers))
	return nil
}

func deliver(hubs *sse.HubManager, event model.Event, logger *slog.Logger) error {
	hub := hubs.GetHub(event.RoomCode)
	if hub == nil {
		return nil
	}
	if err := hub.BroadcastModelEvent(event); err != nil {
		return err
	}
	logger.Debug("event delivered",
		slog.String("room", string(event.RoomCode)),
		slog.String("type", string(event.Type)))
	return nil
}
