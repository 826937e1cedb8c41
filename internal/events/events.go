package events

import (
	"context"
	"time"
	"venuedesk/config"
	"venuedesk/infras/kafka"
	"venuedesk/infras/otel"
	"venuedesk/shared/constant"

	"github.com/rs/zerolog/log"
)

// StatusEvent is broadcast to subscribed clients on every committed booking
// status change, including creation (`submitted`) and cancellation.
type StatusEvent struct {
	BookingID string    `json:"booking_id"`
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
}

// Relay publishes booking status changes. Delivery is best-effort: a failed
// publish never fails the transition that produced it.
type Relay interface {
	PublishStatusChange(ctx context.Context, event StatusEvent)
}

type kafkaRelay struct {
	client kafka.Client
	cfg    *config.Config
	otel   otel.Otel
}

func NewRelay(client kafka.Client, cfg *config.Config, otel otel.Otel) Relay {
	return &kafkaRelay{
		client: client,
		cfg:    cfg,
		otel:   otel,
	}
}

func (r *kafkaRelay) PublishStatusChange(ctx context.Context, event StatusEvent) {
	topic := r.cfg.Kafka.Topics.BookingStatus

	go func() {
		c, scope := r.otel.NewScope(context.WithoutCancel(ctx), constant.OtelEventScopeName, constant.OtelEventScopeName+".PublishStatusChange")
		defer scope.End()

		message := kafka.Message{
			Key:   event.BookingID,
			Value: event,
		}

		if err := r.client.SendMessages(c, topic, message); err != nil {
			scope.TraceError(err)
			log.Error().Err(err).
				Str("booking_id", event.BookingID).
				Str("status", event.Status).
				Msg("failed to publish booking status event")

			return
		}

		scope.AddEvent("Published status " + event.Status + " for booking " + event.BookingID)
	}()
}
