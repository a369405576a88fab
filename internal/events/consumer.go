package events

import (
	"context"
	"encoding/json"
	"time"

	"github.com/segmentio/kafka-go"

	"github.com/tm-acme-shop/acme-shop-freeshipping-service/internal/config"
	"github.com/tm-acme-shop/acme-shop-freeshipping-service/internal/logging"
	"github.com/tm-acme-shop/acme-shop-freeshipping-service/internal/metrics"
)

// ConfigInvalidator drops a path from the local config cache.
type ConfigInvalidator interface {
	Invalidate(ctx context.Context, path string) error
}

// KafkaConsumer consumes config events from Kafka.
type KafkaConsumer struct {
	reader      *kafka.Reader
	invalidator ConfigInvalidator
	logger      *logging.LoggerV2
	stopCh      chan struct{}
}

// NewKafkaConsumer creates a new Kafka-based event consumer.
func NewKafkaConsumer(cfg config.KafkaConfig, invalidator ConfigInvalidator, logger *logging.LoggerV2) *KafkaConsumer {
	reader := kafka.NewReader(kafka.ReaderConfig{
		Brokers:  cfg.Brokers,
		Topic:    cfg.ConfigTopic,
		GroupID:  cfg.ConsumerGroup,
		MinBytes: 1,
		MaxBytes: 10e6,
		MaxWait:  time.Second,
	})

	return &KafkaConsumer{
		reader:      reader,
		invalidator: invalidator,
		logger:      logger,
		stopCh:      make(chan struct{}),
	}
}

// Start begins consuming events.
func (c *KafkaConsumer) Start(ctx context.Context) error {
	c.logger.Info("Starting Kafka consumer")

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-c.stopCh:
			c.logger.Info("Kafka consumer stopped")
			return nil
		default:
			msg, err := c.reader.ReadMessage(ctx)
			if err != nil {
				if ctx.Err() != nil {
					return ctx.Err()
				}
				select {
				case <-c.stopCh:
					c.logger.Info("Kafka consumer stopped")
					return nil
				default:
				}
				c.logger.Error("Failed to read message", logging.Fields{"error": err.Error()})
				continue
			}

			c.handleMessage(ctx, msg)
		}
	}
}

// Stop stops the consumer.
func (c *KafkaConsumer) Stop() {
	close(c.stopCh)
	c.reader.Close()
}

func (c *KafkaConsumer) handleMessage(ctx context.Context, msg kafka.Message) {
	c.logger.Debug("Received message", logging.Fields{
		"topic":     msg.Topic,
		"partition": msg.Partition,
		"offset":    msg.Offset,
	})

	var event ConfigEvent
	if err := json.Unmarshal(msg.Value, &event); err != nil {
		c.logger.Error("Failed to unmarshal event", logging.Fields{"error": err.Error()})
		return
	}

	switch event.Type {
	case EventTypeConfigChanged:
		metrics.ConfigEvents.WithLabelValues(string(event.Type)).Inc()
		c.handleConfigChanged(ctx, &event)
	default:
		metrics.ConfigEvents.WithLabelValues("unknown").Inc()
		c.logger.Debug("Ignoring unknown event type", logging.Fields{"type": event.Type})
	}
}

func (c *KafkaConsumer) handleConfigChanged(ctx context.Context, event *ConfigEvent) {
	c.logger.Info("Handling config changed event", logging.Fields{
		"event_id": event.ID,
		"path":     event.Path,
		"scope":    event.Scope,
		"scope_id": event.ScopeID,
	})

	if err := c.invalidator.Invalidate(ctx, event.Path); err != nil {
		c.logger.Error("Failed to invalidate config", logging.Fields{
			"path":  event.Path,
			"error": err.Error(),
		})
	}
}
