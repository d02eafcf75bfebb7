// Package events describes catalog change notifications and how they are published.
package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"
)

// Type names a catalog change.
type Type string

const (
	ProductCreated  Type = "product.created"
	ProductUpdated  Type = "product.updated"
	ProductDeleted  Type = "product.deleted"
	CategoryCreated Type = "category.created"
	CategoryUpdated Type = "category.updated"
	CategoryDeleted Type = "category.deleted"
)

// Event is the message body published for each catalog write.
type Event struct {
	Type       Type      `json:"type"`
	EntityID   uint      `json:"entity_id"`
	Name       string    `json:"name"`
	ActorID    string    `json:"actor_id"`
	OccurredAt time.Time `json:"occurred_at"`
}

// New stamps an event with the current time.
func New(t Type, entityID uint, name, actorID string) Event {
	return Event{Type: t, EntityID: entityID, Name: name, ActorID: actorID, OccurredAt: time.Now().UTC()}
}

// Publisher sends catalog events to interested consumers.
type Publisher interface {
	Publish(ctx context.Context, event Event) error
}

type jsonPublisher interface {
	PublishJSON(ctx context.Context, messageType string, payload any) error
}

// BrokerPublisher publishes events through a message broker client.
type BrokerPublisher struct {
	client jsonPublisher
}

// NewBrokerPublisher wraps a broker client such as *rabbitmq.Client.
func NewBrokerPublisher(client jsonPublisher) *BrokerPublisher {
	return &BrokerPublisher{client: client}
}

func (p *BrokerPublisher) Publish(ctx context.Context, event Event) error {
	return p.client.PublishJSON(ctx, string(event.Type), event)
}

// Noop discards events. Used when no broker is configured.
type Noop struct{}

func (Noop) Publish(context.Context, Event) error { return nil }

// Decode parses a published event body.
func Decode(body []byte) (Event, error) {
	var event Event
	if err := json.Unmarshal(body, &event); err != nil {
		return Event{}, fmt.Errorf("failed to decode catalog event: %w", err)
	}
	if event.Type == "" {
		return Event{}, fmt.Errorf("catalog event has no type")
	}
	return event, nil
}
