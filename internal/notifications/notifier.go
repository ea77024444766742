// Package notifications provides real-time engagement event delivery.
package notifications

import (
	"context"
	"encoding/json"
	"log"
	"runtime/debug"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// BroadcastChannel is the Redis channel carrying engagement events to every
// server instance.
const BroadcastChannel = "events:broadcast"

// Notifier provides helpers to publish engagement events into Redis channels.
// Each instance carries a unique id so its subscriber can skip events it
// already delivered to local connections.
type Notifier struct {
	rdb *redis.Client
	id  string
}

// broadcastEnvelope wraps the client-facing payload with the publishing
// instance's identity. Only the payload ever reaches websocket clients.
type broadcastEnvelope struct {
	Origin  string `json:"origin"`
	Payload string `json:"payload"`
}

// NewNotifier creates a new Notifier instance using the provided Redis client.
func NewNotifier(rdb *redis.Client) *Notifier {
	return &Notifier{rdb: rdb, id: uuid.NewString()}
}

// PublishBroadcast sends an event payload to all connected clients across
// every instance. The publisher has already broadcast to its own connections,
// so the envelope lets its subscriber drop the echo.
func (n *Notifier) PublishBroadcast(ctx context.Context, payload string) error {
	if n.rdb == nil {
		return nil
	}
	b, err := json.Marshal(broadcastEnvelope{Origin: n.id, Payload: payload})
	if err != nil {
		return err
	}
	return n.rdb.Publish(ctx, BroadcastChannel, string(b)).Err()
}

// StartBroadcastSubscriber subscribes to the broadcast channel and calls
// onMessage for each event payload published by another instance.
func (n *Notifier) StartBroadcastSubscriber(
	ctx context.Context, onMessage func(payload string),
) error {
	if n.rdb == nil {
		return nil
	}
	sub := n.rdb.Subscribe(ctx, BroadcastChannel)
	ch := sub.Channel()

	go func() {
		defer func() { _ = sub.Close() }()
		for {
			select {
			case <-ctx.Done():
				return
			case msg, ok := <-ch:
				if !ok {
					return
				}
				payload, deliver := n.unwrap(msg.Payload)
				if !deliver {
					continue
				}
				func() {
					defer func() {
						if r := recover(); r != nil {
							log.Printf("PANIC in BroadcastSubscriber: %v\n%s", r, debug.Stack())
						}
					}()
					onMessage(payload)
				}()
			}
		}
	}()

	return nil
}

// unwrap extracts the client payload from an envelope. Self-published
// messages are dropped; messages without an envelope pass through untouched.
func (n *Notifier) unwrap(raw string) (string, bool) {
	var env broadcastEnvelope
	if err := json.Unmarshal([]byte(raw), &env); err != nil || env.Origin == "" {
		return raw, true
	}
	if env.Origin == n.id {
		return "", false
	}
	return env.Payload, true
}
