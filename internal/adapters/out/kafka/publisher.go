// Package kafka publishes lifecycle events to a Kafka topic.
package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"parcelflow/internal/core/ports"

	skafka "github.com/segmentio/kafka-go"
)

// eventTypeHeader carries ports.Event.Type so consumers can route without
// decoding the body.
const eventTypeHeader = "event-type"

// Writer is the subset of *skafka.Writer the publisher needs.
type Writer interface {
	WriteMessages(ctx context.Context, msgs ...skafka.Message) error
	Close() error
}

// Publisher implements ports.EventPublisher. Messages are keyed by
// ports.Event.Key and hashed onto partitions, so events of one parcel or
// rider stay ordered.
type Publisher struct {
	writer Writer
}

// NewPublisher creates a publisher writing to topic on broker.
func NewPublisher(broker, topic string) *Publisher {
	return &Publisher{writer: &skafka.Writer{
		Addr:                   skafka.TCP(broker),
		Topic:                  topic,
		Balancer:               &skafka.Hash{},
		RequiredAcks:           skafka.RequireAll,
		AllowAutoTopicCreation: true,
		WriteTimeout:           5 * time.Second,
	}}
}

// NewPublisherWithWriter allows injecting a test writer.
func NewPublisherWithWriter(w Writer) *Publisher {
	return &Publisher{writer: w}
}

// Publish writes events in one batch.
func (p *Publisher) Publish(ctx context.Context, events ...ports.Event) error {
	if len(events) == 0 {
		return nil
	}

	msgs := make([]skafka.Message, 0, len(events))
	for _, event := range events {
		value, err := json.Marshal(event)
		if err != nil {
			return fmt.Errorf("marshal %s event: %w", event.Type, err)
		}
		msgs = append(msgs, skafka.Message{
			Key:     []byte(event.Key),
			Value:   value,
			Time:    event.OccurredAt,
			Headers: []skafka.Header{{Key: eventTypeHeader, Value: []byte(event.Type)}},
		})
	}

	if err := p.writer.WriteMessages(ctx, msgs...); err != nil {
		return fmt.Errorf("write %d events: %w", len(msgs), err)
	}
	return nil
}

// Close flushes and closes the underlying writer.
func (p *Publisher) Close() error {
	return p.writer.Close()
}
