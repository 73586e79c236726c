package messaging

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/thiagodifaria/Begriff/pkg/events"
	pkgkafka "github.com/thiagodifaria/Begriff/pkg/kafka"
)

// KafkaPublisher implements port.EventPublisher using Kafka.
type KafkaPublisher struct {
	producer *pkgkafka.Producer
	logger   *slog.Logger
	topic    string
}

// NewKafkaPublisher creates a new Kafka event publisher.
func NewKafkaPublisher(producer *pkgkafka.Producer, topic string, logger *slog.Logger) *KafkaPublisher {
	return &KafkaPublisher{
		producer: producer,
		topic:    topic,
		logger:   logger,
	}
}

// Publish sends domain events to Kafka. Events are keyed by aggregate ID so
// per-aggregate ordering is preserved.
func (p *KafkaPublisher) Publish(ctx context.Context, evts ...interface{}) error {
	messages := make([]pkgkafka.Message, 0, len(evts))
	for _, evt := range evts {
		eventType := "unknown"
		var key []byte
		if de, ok := evt.(events.DomainEvent); ok {
			eventType = de.EventType()
			key = []byte(de.AggregateID().String())
		}

		payload, err := json.Marshal(evt)
		if err != nil {
			return fmt.Errorf("failed to marshal event %s: %w", eventType, err)
		}

		p.logger.DebugContext(ctx, "publishing event",
			slog.String("event_type", eventType),
			slog.String("topic", p.topic),
			slog.Int("payload_size", len(payload)),
		)

		messages = append(messages, pkgkafka.Message{
			Key:   key,
			Value: payload,
			Headers: map[string]string{
				"event_type": eventType,
			},
		})
	}

	if len(messages) == 0 {
		return nil
	}

	if err := p.producer.Publish(ctx, p.topic, messages...); err != nil {
		return fmt.Errorf("failed to publish events to topic %s: %w", p.topic, err)
	}
	return nil
}
