package events

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/segmentio/kafka-go"

	"github.com/tm-acme-shop/acme-shop-freeshipping-service/internal/config"
	"github.com/tm-acme-shop/acme-shop-freeshipping-service/internal/logging"
	"github.com/tm-acme-shop/acme-shop-freeshipping-service/internal/models"
	"github.com/tm-acme-shop/acme-shop-freeshipping-service/internal/reqctx"
)

// EventType represents the type of config event.
type EventType string

const (
	EventTypeConfigChanged EventType = "config.changed"
)

// ConfigEvent announces a configuration write.
type ConfigEvent struct {
	ID            string           `json:"id"`
	Type          EventType        `json:"type"`
	Path          string           `json:"path"`
	Scope         models.ScopeType `json:"scope"`
	ScopeID       int64            `json:"scope_id"`
	Timestamp     time.Time        `json:"timestamp"`
	CorrelationID string           `json:"correlation_id,omitempty"`
}

// MessageWriter is the subset of *kafka.Writer used by the publisher.
type MessageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// KafkaPublisher publishes config events to Kafka.
type KafkaPublisher struct {
	writer MessageWriter
	topic  string
	logger *logging.LoggerV2
}

// NewKafkaPublisher creates a new Kafka-based event publisher.
func NewKafkaPublisher(cfg config.KafkaConfig, logger *logging.LoggerV2) *KafkaPublisher {
	writer := &kafka.Writer{
		Addr:         kafka.TCP(cfg.Brokers...),
		Topic:        cfg.ConfigTopic,
		Balancer:     &kafka.Hash{},
		WriteTimeout: 10 * time.Second,
		RequiredAcks: kafka.RequireOne,
	}

	return NewPublisherWithWriter(writer, cfg.ConfigTopic, logger)
}

// NewPublisherWithWriter creates a publisher over an existing writer.
func NewPublisherWithWriter(writer MessageWriter, topic string, logger *logging.LoggerV2) *KafkaPublisher {
	return &KafkaPublisher{
		writer: writer,
		topic:  topic,
		logger: logger,
	}
}

// PublishConfigChanged publishes a config.changed event keyed by path.
func (p *KafkaPublisher) PublishConfigChanged(ctx context.Context, value *models.ConfigValue) error {
	p.logger.Debug("Publishing config changed event", logging.Fields{
		"path":     value.Path,
		"scope":    value.Scope,
		"scope_id": value.ScopeID,
	})

	event := &ConfigEvent{
		ID:            uuid.NewString(),
		Type:          EventTypeConfigChanged,
		Path:          value.Path,
		Scope:         value.Scope,
		ScopeID:       value.ScopeID,
		Timestamp:     time.Now().UTC(),
		CorrelationID: reqctx.RequestID(ctx),
	}
	return p.publish(ctx, event)
}

func (p *KafkaPublisher) publish(ctx context.Context, event *ConfigEvent) error {
	eventData, err := json.Marshal(event)
	if err != nil {
		return err
	}

	msg := kafka.Message{
		Key:   []byte(event.Path),
		Value: eventData,
		Headers: []kafka.Header{
			{Key: "event_type", Value: []byte(event.Type)},
			{Key: "event_id", Value: []byte(event.ID)},
		},
	}

	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		p.logger.Error("Failed to publish event", logging.Fields{
			"event_id":   event.ID,
			"event_type": event.Type,
			"path":       event.Path,
			"error":      err.Error(),
		})
		return err
	}

	p.logger.Info("Event published", logging.Fields{
		"event_id":   event.ID,
		"event_type": event.Type,
		"path":       event.Path,
	})

	return nil
}

// Close closes the Kafka writer.
func (p *KafkaPublisher) Close() error {
	p.logger.Info("Closing Kafka publisher")
	return p.writer.Close()
}
