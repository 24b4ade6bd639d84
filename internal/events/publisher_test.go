package events

import (
	"context"
	"testing"

	"mounti/pkg/logger"
	"mounti/pkg/model"
)

func TestNewPublisher_DisabledWithoutBrokers(t *testing.T) {
	log := logger.New(logger.Config{Level: "error", Format: logger.JSON, Service: "test"})

	if p := NewPublisher(nil, "topic", log); p != nil {
		t.Error("expected nil publisher without brokers")
	}
	if p := NewPublisher([]string{}, "topic", log); p != nil {
		t.Error("expected nil publisher with empty broker list")
	}
}

func TestNilPublisher_IsSafe(t *testing.T) {
	var p *Publisher

	booking := &model.Booking{ID: "booking-1", TripID: "trip-1"}
	p.BookingCreated(context.Background(), booking)
	p.BookingStatusChanged(context.Background(), booking)
	p.Close()
}
