// Package events publishes booking lifecycle events to Kafka for
// downstream consumers (analytics, messaging). Publishing is best-effort:
// the API flow never fails because the event stream is down.
package events

import (
	"context"
	"encoding/json"
	"time"

	"mounti/pkg/logger"
	"mounti/pkg/model"

	"github.com/google/uuid"
	"github.com/segmentio/kafka-go"
)

const (
	EventBookingCreated       = "booking.created"
	EventBookingStatusChanged = "booking.status_changed"
)

type BookingEvent struct {
	EventID    string              `json:"event_id"`
	EventType  string              `json:"event_type"`
	BookingID  string              `json:"booking_id"`
	TripID     string              `json:"trip_id"`
	ClientID   string              `json:"client_id"`
	Status     model.BookingStatus `json:"status"`
	OccurredAt time.Time           `json:"occurred_at"`
}

// Publisher is nil-safe: a nil *Publisher drops every event, so callers
// never need to check whether the stream is configured.
type Publisher struct {
	writer *kafka.Writer
	log    *logger.Logger
}

func NewPublisher(brokers []string, topic string, log *logger.Logger) *Publisher {
	if len(brokers) == 0 {
		return nil
	}

	writer := &kafka.Writer{
		Addr:         kafka.TCP(brokers...),
		Topic:        topic,
		Balancer:     &kafka.Hash{}, // keyed by trip id for per-trip ordering
		RequiredAcks: kafka.RequireAll,
		Compression:  kafka.Snappy,
		Logger:       kafka.LoggerFunc(func(msg string, args ...any) {}),
		ErrorLogger:  kafka.LoggerFunc(func(msg string, args ...any) { log.Error("kafka: "+msg, "args", args) }),
	}

	log.Info("Booking event publisher enabled", "topic", topic, "brokers", brokers)
	return &Publisher{
		writer: writer,
		log:    log,
	}
}

func (p *Publisher) BookingCreated(ctx context.Context, booking *model.Booking) {
	p.publish(ctx, EventBookingCreated, booking)
}

func (p *Publisher) BookingStatusChanged(ctx context.Context, booking *model.Booking) {
	p.publish(ctx, EventBookingStatusChanged, booking)
}

func (p *Publisher) publish(ctx context.Context, eventType string, booking *model.Booking) {
	if p == nil {
		return
	}

	event := BookingEvent{
		EventID:    uuid.New().String(),
		EventType:  eventType,
		BookingID:  booking.ID,
		TripID:     booking.TripID,
		ClientID:   booking.ClientID,
		Status:     booking.Status,
		OccurredAt: time.Now().UTC(),
	}

	value, err := json.Marshal(event)
	if err != nil {
		p.log.Error("Failed to encode booking event", "event_type", eventType, "error", err)
		return
	}

	err = p.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(booking.TripID),
		Value: value,
		Time:  event.OccurredAt,
	})
	if err != nil {
		p.log.Error("Failed to publish booking event",
			"event_type", eventType,
			"booking_id", booking.ID,
			"error", err,
		)
	}
}

func (p *Publisher) Close() {
	if p == nil {
		return
	}
	if err := p.writer.Close(); err != nil {
		p.log.Error("Failed to close booking event publisher", "error", err)
	}
}
