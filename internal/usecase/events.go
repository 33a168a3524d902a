package usecase

import (
	"context"
	"time"

	"go.uber.org/zap"
)

const (
	EventBookingCreated       = "booking.created"
	EventBookingStatusChanged = "booking.status_changed"
	EventBookingDeleted       = "booking.deleted"
	EventPaymentCompleted     = "payment.completed"
	EventPaymentFailed        = "payment.failed"
)

// EventPublisher hands domain events to the notification pipeline.
type EventPublisher interface {
	PublishJSON(ctx context.Context, key string, v any) error
}

type Event struct {
	Type       string         `json:"type"`
	OccurredAt time.Time      `json:"occurred_at"`
	Data       map[string]any `json:"data"`
}

// publish is fire and forget: a broker outage never fails the operation
// that produced the event.
func publish(ctx context.Context, pub EventPublisher, log *zap.Logger, key string, data map[string]any) {
	if pub == nil {
		return
	}
	evt := Event{Type: key, OccurredAt: time.Now().UTC(), Data: data}
	if err := pub.PublishJSON(context.WithoutCancel(ctx), key, evt); err != nil {
		log.Warn("Failed to publish event", zap.String("event", key), zap.Error(err))
	}
}
