// Package events publishes generation outcome events to Kafka.
package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/segmentio/kafka-go"

	"github.com/rpggio/labcoats/internal/domain/activity"
)

// DefaultTopic receives generation outcome events.
const DefaultTopic = "labcoats.generations"

// MessageWriter is the subset of *kafka.Writer the publisher needs.
type MessageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// KafkaPublisher implements activity.EventPublisher.
type KafkaPublisher struct {
	writer MessageWriter
}

// NewKafkaPublisher creates a publisher writing to topic on the given brokers.
func NewKafkaPublisher(brokers []string, topic string) *KafkaPublisher {
	if topic == "" {
		topic = DefaultTopic
	}
	writer := &kafka.Writer{
		Addr:                   kafka.TCP(brokers...),
		Topic:                  topic,
		Balancer:               &kafka.LeastBytes{},
		BatchTimeout:           10 * time.Millisecond,
		AllowAutoTopicCreation: true,
		WriteTimeout:           10 * time.Second,
		ReadTimeout:            10 * time.Second,
		MaxAttempts:            3,
	}
	return &KafkaPublisher{writer: writer}
}

// NewPublisherWithWriter wraps an existing writer; tests use it to avoid a broker.
func NewPublisherWithWriter(writer MessageWriter) *KafkaPublisher {
	return &KafkaPublisher{writer: writer}
}

// PublishGeneration writes one event keyed by request ID.
func (p *KafkaPublisher) PublishGeneration(ctx context.Context, event activity.GenerationEvent) error {
	value, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("encoding generation event: %w", err)
	}
	msg := kafka.Message{
		Key:   []byte(event.RequestID),
		Value: value,
		Headers: []kafka.Header{
			{Key: "event_type", Value: []byte("generation." + string(event.Outcome))},
		},
	}
	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("writing generation event: %w", err)
	}
	return nil
}

// Close closes the Kafka writer connection.
func (p *KafkaPublisher) Close() error {
	return p.writer.Close()
}
