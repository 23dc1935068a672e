// Package pubsub fans editor state out to live viewers.
package pubsub

import (
	"context"
	"encoding/json"
)

// Topics published by the editor server
const (
	TopicGraph = "graph_state"
)

// EventSnapshot is the only event type on TopicGraph. Each one carries the
// whole picture, settings included, so replaying the last event is enough for
// a new viewer.
const EventSnapshot = "snapshot"

// Event represents a pub/sub event
type Event struct {
	Topic   string          `json:"topic"`   // Subscription topic, e.g. "graph_state"
	Type    string          `json:"type"`    // Event type, e.g. "snapshot"
	Data    json.RawMessage `json:"data"`    // Event payload
	Version int             `json:"version"` // Per-topic sequence number
}

// Subscription represents a client subscription to a topic
type Subscription interface {
	Topic() string

	// Events returns a channel for receiving events
	Events() <-chan Event

	Close() error
}

// Publisher manages subscriptions and event publishing
type Publisher interface {
	// Subscribe creates a new subscription to a topic.
	// Context cancellation closes the subscription.
	Subscribe(ctx context.Context, topic string) (Subscription, error)

	// Publish sends an event to all subscribers of a topic
	Publish(topic string, eventType string, data any) error

	Close() error
}
