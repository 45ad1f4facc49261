package subscriber

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/mrmateussiilva/petstory/config"
	"github.com/mrmateussiilva/petstory/internal/models"
	"github.com/mrmateussiilva/petstory/internal/retry"
	"github.com/segmentio/kafka-go"
	"github.com/sirupsen/logrus"
)

// MessageReader is the part of *kafka.Reader the consumer needs.
type MessageReader interface {
	ReadMessage(ctx context.Context) (kafka.Message, error)
	Close() error
}

// DLQPublisher receives messages whose handler kept failing.
type DLQPublisher interface {
	Publish(ctx context.Context, topic string, message interface{}) error
}

type KafkaConsumer struct {
	Readers      []MessageReader
	DLQPublisher DLQPublisher
	RetryConfig  config.RetryConfig

	wg sync.WaitGroup
}

func NewMultiTopicConsumer(
	brokers []string,
	topics []string,
	groupID string,
	publisher DLQPublisher,
	retryConfig config.RetryConfig,
) *KafkaConsumer {
	readers := make([]MessageReader, len(topics))
	for i, topic := range topics {
		readers[i] = kafka.NewReader(kafka.ReaderConfig{
			Brokers:  brokers,
			GroupID:  groupID,
			Topic:    topic,
			MinBytes: 1,
			MaxBytes: 10e6,
		})
	}

	return &KafkaConsumer{
		Readers:      readers,
		DLQPublisher: publisher,
		RetryConfig:  retry.WithDefaults(retryConfig),
	}
}

// Listen starts one goroutine per reader. Each stops when ctx is done.
func (c *KafkaConsumer) Listen(ctx context.Context, handler func(topic string, value []byte) error) {
	for _, reader := range c.Readers {
		c.wg.Add(1)
		go func(r MessageReader) {
			defer c.wg.Done()
			for {
				msg, err := r.ReadMessage(ctx)
				if err != nil {
					if ctx.Err() != nil || errors.Is(err, context.Canceled) {
						return
					}
					logrus.Errorf("kafka read error: %v", err)
					select {
					case <-time.After(retry.Backoff(c.RetryConfig, 0)):
					case <-ctx.Done():
						return
					}
					continue
				}
				c.processMessage(ctx, msg, handler)
			}
		}(reader)
	}
}

// Close waits for the listeners to stop and closes the readers.
func (c *KafkaConsumer) Close() error {
	c.wg.Wait()
	var errs []error
	for _, r := range c.Readers {
		errs = append(errs, r.Close())
	}
	return errors.Join(errs...)
}

func (c *KafkaConsumer) processMessage(ctx context.Context, msg kafka.Message, handler func(topic string, value []byte) error) {
	err := retry.Do(ctx, c.RetryConfig, "consume "+msg.Topic, func(context.Context) error {
		return handler(msg.Topic, msg.Value)
	})
	if err == nil {
		return
	}

	log := logrus.WithFields(logrus.Fields{"topic": msg.Topic, "key": string(msg.Key)})
	log.Errorf("message failed after %d attempts: %v", c.RetryConfig.MaxAttempts, err)
	if c.DLQPublisher == nil {
		return
	}

	dlqMessage := models.DLQMessage{
		OriginalTopic: msg.Topic,
		Key:           string(msg.Key),
		Value:         string(msg.Value),
		Timestamp:     time.Now().UTC(),
		Attempts:      c.RetryConfig.MaxAttempts,
	}
	if err := c.DLQPublisher.Publish(ctx, models.PaymentsDLQTopic, dlqMessage); err != nil {
		log.Errorf("failed to send message to DLQ: %v", err)
		return
	}
	log.Info("message sent to DLQ")
}
