// Package events publishes booking lifecycle notifications to Kafka.
package events

import (
	"context"
	"fmt"
	"time"

	"carwash/pkg/kafka"
	"carwash/pkg/middleware"
	"carwash/pkg/model"
)

const (
	TypeCreated = "booking.created"
	TypeUpdated = "booking.updated"
	TypeDeleted = "booking.deleted"

	Source        = "bookings"
	SchemaVersion = "1"
)

// Event is the JSON payload written to the bookings topic. Booking is absent
// for deletions.
type Event struct {
	Type       string         `json:"type"`
	BookingID  string         `json:"bookingId"`
	Booking    *model.Booking `json:"booking,omitempty"`
	OccurredAt time.Time      `json:"occurredAt"`
}

type Publisher interface {
	Publish(ctx context.Context, event Event) error
	Close() error
}

type messagePublisher interface {
	Publish(ctx context.Context, msg kafka.Message) error
	Close() error
}

type kafkaPublisher struct {
	producer messagePublisher
}

func NewKafkaPublisher(producer *kafka.Producer) Publisher {
	return &kafkaPublisher{producer: producer}
}

func (p *kafkaPublisher) Publish(ctx context.Context, event Event) error {
	if event.OccurredAt.IsZero() {
		event.OccurredAt = model.Now()
	}

	msg, err := kafka.NewMessage().
		WithKey(event.BookingID).
		WithEventType(event.Type).
		WithSource(Source).
		WithSchemaVersion(SchemaVersion).
		WithCorrelationID(middleware.RequestIDFromContext(ctx)).
		WithTimestamp(event.OccurredAt).
		WithValue(event).
		Build()
	if err != nil {
		return fmt.Errorf("failed to encode %s event: %w", event.Type, err)
	}

	return p.producer.Publish(ctx, msg)
}

func (p *kafkaPublisher) Close() error {
	return p.producer.Close()
}

type noopPublisher struct{}

// NewNoopPublisher returns a Publisher that drops every event. It is used
// when no Kafka brokers are configured.
func NewNoopPublisher() Publisher {
	return noopPublisher{}
}

func (noopPublisher) Publish(context.Context, Event) error { return nil }
func (noopPublisher) Close() error                         { return nil }
