package application

import (
	"context"

	"github.com/stayhub/service-booking/internal/pkg/kafka"
)

// eventSource identifies this service in outgoing CloudEvents.
const eventSource = "service-booking"

// EventPublisher abstracts the Kafka producer so services can be tested
// without a broker.
type EventPublisher interface {
	PublishEvent(ctx context.Context, topic string, event kafka.CloudEvent) error
}
