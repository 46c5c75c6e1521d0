package events

import (
	"context"
	"encoding/json"

	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"

	"github.com/stayhub/service-booking/internal/application"
	"github.com/stayhub/service-booking/internal/pkg/domain"
	"github.com/stayhub/service-booking/internal/pkg/events"
	"github.com/stayhub/service-booking/internal/pkg/kafka"
)

// PaymentEventConsumer listens to payment events and confirms the bookings
// they settle. It also reacts to payments completed by an external payment
// service, not just this process.
type PaymentEventConsumer struct {
	consumer *kafka.Consumer
	service  *application.BookingService
	logger   *zap.Logger
}

// NewPaymentEventConsumer creates a new PaymentEventConsumer.
func NewPaymentEventConsumer(
	brokers []string,
	groupID string,
	service *application.BookingService,
	logger *zap.Logger,
) *PaymentEventConsumer {
	consumer := kafka.NewConsumer(brokers, groupID, events.TopicPaymentEvents, logger)
	return &PaymentEventConsumer{
		consumer: consumer,
		service:  service,
		logger:   logger,
	}
}

// Start begins consuming payment events. This blocks until the context is cancelled.
func (c *PaymentEventConsumer) Start(ctx context.Context) error {
	return c.consumer.Consume(ctx, c.handleMessage)
}

// Close closes the underlying Kafka consumer.
func (c *PaymentEventConsumer) Close() error {
	return c.consumer.Close()
}

func (c *PaymentEventConsumer) handleMessage(ctx context.Context, msg kafkago.Message) error {
	var cloudEvent kafka.CloudEvent
	if err := json.Unmarshal(msg.Value, &cloudEvent); err != nil {
		c.logger.Error("failed to parse cloud event from payment topic",
			zap.Error(err),
			zap.String("raw", string(msg.Value)),
		)
		return nil // Don't retry malformed messages
	}

	switch cloudEvent.Type {
	case events.PaymentCompleted:
		return c.handlePaymentCompleted(ctx, cloudEvent)
	default:
		c.logger.Debug("ignoring unhandled payment event type",
			zap.String("type", cloudEvent.Type),
		)
		return nil
	}
}

func (c *PaymentEventConsumer) handlePaymentCompleted(ctx context.Context, cloudEvent kafka.CloudEvent) error {
	var evt events.PaymentCompletedEvent
	if err := cloudEvent.ParseData(&evt); err != nil {
		c.logger.Error("failed to parse PaymentCompletedEvent data",
			zap.Error(err),
		)
		return nil // Don't retry malformed data
	}

	c.logger.Info("processing payment completed event",
		zap.String("booking_id", evt.BookingID.String()),
		zap.String("payment_id", evt.PaymentID.String()),
	)

	_, err := c.service.ConfirmBooking(ctx, evt.BookingID)
	if err != nil {
		// Confirming an already-confirmed booking means this payment was
		// settled in process; the event is a duplicate, not a failure.
		if domain.IsKind(err, domain.KindInvalidState) {
			c.logger.Debug("booking already confirmed, skipping",
				zap.String("booking_id", evt.BookingID.String()),
			)
			return nil
		}
		c.logger.Error("failed to confirm booking after payment",
			zap.String("booking_id", evt.BookingID.String()),
			zap.Error(err),
		)
		return err
	}

	c.logger.Info("booking confirmed after payment",
		zap.String("booking_id", evt.BookingID.String()),
	)
	return nil
}
