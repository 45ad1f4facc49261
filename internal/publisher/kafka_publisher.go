package publisher

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/mrmateussiilva/petstory/config"
	"github.com/mrmateussiilva/petstory/internal/retry"
	kafka "github.com/segmentio/kafka-go"
	"github.com/sirupsen/logrus"
)

// MessageWriter is the part of *kafka.Writer the publisher needs.
type MessageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

type KafkaPublisher struct {
	Writers     map[string]MessageWriter
	RetryConfig config.RetryConfig
}

func NewKafkaPublisher(kafkaURL string, topics []string, retryConfig config.RetryConfig) *KafkaPublisher {
	writers := make(map[string]MessageWriter)
	for _, t := range topics {
		writers[t] = &kafka.Writer{
			Addr:                   kafka.TCP(kafkaURL),
			Topic:                  t,
			Balancer:               &kafka.LeastBytes{},
			AllowAutoTopicCreation: true,
		}
	}

	return &KafkaPublisher{
		Writers:     writers,
		RetryConfig: retry.WithDefaults(retryConfig),
	}
}

// Publish JSON-encodes message and writes it to topic, retrying with backoff.
// Order events are keyed by order id so one order's events stay in one
// partition.
func (p *KafkaPublisher) Publish(ctx context.Context, topic string, message interface{}) error {
	writer, ok := p.Writers[topic]
	if !ok {
		return fmt.Errorf("error no writer configured for topic %s", topic)
	}

	data, err := json.Marshal(message)
	if err != nil {
		return fmt.Errorf("error marshaling message: %w", err)
	}

	msg := kafka.Message{Value: data}
	if keyed, ok := message.(interface{ MessageKey() string }); ok {
		msg.Key = []byte(keyed.MessageKey())
	}

	return retry.Do(ctx, p.RetryConfig, "kafka publish "+topic, func(ctx context.Context) error {
		return writer.WriteMessages(ctx, msg)
	})
}

func (p *KafkaPublisher) Close() error {
	var errs []error
	for topic, w := range p.Writers {
		if err := w.Close(); err != nil {
			errs = append(errs, fmt.Errorf("closing writer for %s: %w", topic, err))
		}
	}
	if len(errs) > 0 {
		logrus.Warnf("kafka publisher closed with %d errors", len(errs))
	}
	return errors.Join(errs...)
}
